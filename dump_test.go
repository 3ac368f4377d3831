package artspell

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDumpRendersEveryWord(t *testing.T) {
	idx := buildTestIndex(t, []WordFreq{
		{Word: []byte("cart"), Freq: 2},
		{Word: []byte("cat"), Freq: 9},
		{Word: []byte("dog"), Freq: 4},
	})

	out := Dump(idx)
	require.Contains(t, out, "freq=9")
	require.Contains(t, out, "freq=2")
	require.Contains(t, out, "freq=4")
	require.Equal(t, 3, strings.Count(out, "Leaf"))
}

func TestDumpSingleWordImage(t *testing.T) {
	idx := buildTestIndex(t, []WordFreq{{Word: []byte("abcdefg"), Freq: 5}})

	out := Dump(idx)
	require.Contains(t, out, "Leaf")
	require.Contains(t, out, `prefix: "abcdefg"`)
	require.Contains(t, out, "freq=5")
}
