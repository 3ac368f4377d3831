package artspell

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// driveOracle pushes every byte of path, recording lowerBound after each
// push, then returns the final distance alongside those lower bounds so a
// test can compare two oracles step for step rather than just at the end.
func driveOracle(o distanceOracle, path []byte) (bounds []int, dist int, within bool) {
	bounds = make([]int, len(path))
	for i, b := range path {
		o.pushByte(b)
		bounds[i] = o.lowerBound()
	}
	dist, within = o.final()
	return bounds, dist, within
}

func TestDistanceOraclesAgreeOnKnownPairs(t *testing.T) {
	cases := []struct {
		query, word string
		maxDistance int
		wantDist    int
		wantWithin  bool
	}{
		{"cat", "cat", 2, 0, true},
		{"cat", "cats", 2, 1, true},
		{"cat", "car", 2, 1, true},
		{"cat", "act", 2, 1, true},
		{"cat", "dog", 2, 3, false},
		{"kitten", "sitting", 3, 3, true},
		{"", "abc", 3, 3, true},
		{"abc", "", 3, 3, true},
	}

	for _, tc := range cases {
		bp := newBitParallelOracle([]byte(tc.query), tc.maxDistance)
		rd := newRowDPOracle([]byte(tc.query), tc.maxDistance, 8)

		_, bpDist, bpWithin := driveOracle(bp, []byte(tc.word))
		_, rdDist, rdWithin := driveOracle(rd, []byte(tc.word))

		require.Equalf(t, tc.wantDist, rdDist, "row-DP distance for %q/%q", tc.query, tc.word)
		require.Equalf(t, tc.wantWithin, rdWithin, "row-DP within for %q/%q", tc.query, tc.word)
		if len(tc.query) >= 1 && len(tc.query) <= 64 {
			require.Equalf(t, bpWithin, rdWithin, "oracle disagreement (within) for %q/%q", tc.query, tc.word)
			if tc.wantWithin {
				// Once capped past maxDistance the bit-parallel oracle only
				// guarantees a sentinel > maxDistance, not the row-DP
				// oracle's exact (uncapped) value, so compare magnitudes
				// only when both report a distance inside the budget.
				require.Equalf(t, bpDist, rdDist, "oracle disagreement for %q/%q", tc.query, tc.word)
			}
		}
	}
}

func TestDistanceOraclesAgreeOnLowerBoundTrace(t *testing.T) {
	query := []byte("spelling")
	word := []byte("speling")
	bp := newBitParallelOracle(query, 4)
	rd := newRowDPOracle(query, 4, 8)

	bounds1, _, _ := driveOracle(bp, word)
	bounds2, _, _ := driveOracle(rd, word)
	require.Equal(t, bounds2, bounds1)
}

func TestDistanceOraclesAgreeOnPushPopSequences(t *testing.T) {
	query := []byte("approximate")
	rng := rand.New(rand.NewSource(42))
	alphabet := []byte("abcdeimnopqrstux")

	bp := newBitParallelOracle(query, 6)
	rd := newRowDPOracle(query, 6, 16)

	var path []byte
	for i := 0; i < 200; i++ {
		if len(path) > 0 && rng.Intn(3) == 0 {
			b := path[len(path)-1]
			path = path[:len(path)-1]
			bp.popByte()
			rd.popByte()
			_ = b
		} else {
			b := alphabet[rng.Intn(len(alphabet))]
			path = append(path, b)
			bp.pushByte(b)
			rd.pushByte(b)
		}

		require.Equalf(t, rd.lowerBound(), bp.lowerBound(), "lower bound mismatch at step %d, path=%q", i, path)
		bd, bw := bp.final()
		rdd, rdw := rd.final()
		require.Equalf(t, rdw, bw, "final within mismatch at step %d, path=%q", i, path)
		if rdw {
			require.Equalf(t, rdd, bd, "final distance mismatch at step %d, path=%q", i, path)
		}
	}
}

func TestDistanceOraclesAgreeAcrossSixtyFourByteBoundary(t *testing.T) {
	for _, n := range []int{60, 63, 64, 65, 70} {
		query := make([]byte, n)
		for i := range query {
			query[i] = byte('a' + i%26)
		}
		word := append([]byte(nil), query...)
		// Introduce a transposition and a substitution near the boundary.
		word[n-2], word[n-1] = word[n-1], word[n-2]
		word[n/2] = 'z'

		rd := newRowDPOracle(query, 5, n+1)
		_, rdDist, rdWithin := driveOracle(rd, word)

		if n <= 64 {
			bp := newBitParallelOracle(query, 5)
			_, bpDist, bpWithin := driveOracle(bp, word)
			require.Equalf(t, rdWithin, bpWithin, "n=%d", n)
			if rdWithin {
				require.Equalf(t, rdDist, bpDist, "n=%d", n)
			}
		}
		require.GreaterOrEqual(t, rdDist, 2)
	}
}

func TestNewDistanceOracleSelectsImplementationByLength(t *testing.T) {
	short := newDistanceOracle([]byte("hello"), 2, 8)
	_, ok := short.(*bitParallelOracle)
	require.True(t, ok)

	long := newDistanceOracle(make([]byte, 65), 2, 8)
	_, ok = long.(*rowDPOracle)
	require.True(t, ok)
}
