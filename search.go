package artspell

import (
	"bytes"
	"context"
	"sort"

	"github.com/artspell/artspell/internal/config"
	"github.com/pkg/errors"
)

// Match is one dictionary word reachable within a search's distance budget
// (§4.3.3).
type Match struct {
	Word     []byte
	Freq     uint32
	Distance int
}

// SearchResult is the outcome of a single Search call.
type SearchResult struct {
	Matches []Match

	// Interrupted is set when the search's context was cancelled before the
	// whole image could be traversed. It is a result flag, not an error
	// (§10.2): the matches collected before cancellation are still valid.
	Interrupted bool
}

type searchOptions struct {
	maxResults    int
	checkInterval int
	resultCap     int
	rowScratchCap int
}

// SearchOption configures a Search call.
type SearchOption func(*searchOptions)

// WithMaxResults caps the number of matches returned, keeping the closest
// (then most frequent, then lexicographically first) n. n<=0 means
// unlimited.
func WithMaxResults(n int) SearchOption {
	return func(o *searchOptions) { o.maxResults = n }
}

// WithCheckInterval sets how many nodes Search visits between checks of
// ctx.Done(), trading cancellation latency for the cost of the check itself.
func WithCheckInterval(n int) SearchOption {
	return func(o *searchOptions) { o.checkInterval = n }
}

// WithConfig pre-sizes a search's scratch allocations from an ambient
// config.Config (§10.3): ResultScratchCap for the match slice, and
// RowDPScratchCap for the row-DP oracle's stack depth when the query falls
// back to it. A caller that pools one config across many queries avoids the
// repeated small allocations a cold Search would otherwise make.
func WithConfig(cfg config.Config) SearchOption {
	return func(o *searchOptions) {
		o.resultCap = cfg.ResultScratchCap
		o.rowScratchCap = cfg.RowDPScratchCap
	}
}

// Search walks idx depth-first from its root, tracking the Damerau-
// Levenshtein distance to query incrementally and pruning any subtree whose
// lower bound already exceeds maxDistance (§4.3, §4.3.3). Results are
// ordered by ascending distance, then descending frequency, then
// lexicographically.
func Search(ctx context.Context, idx *Index, query []byte, maxDistance int, opts ...SearchOption) (*SearchResult, error) {
	if maxDistance < 0 {
		return nil, errors.New("search: maxDistance must be >= 0")
	}

	o := searchOptions{checkInterval: 256}
	for _, opt := range opts {
		opt(&o)
	}

	w := &walker{
		idx:         idx,
		oracle:      newDistanceOracle(query, maxDistance, o.rowScratchCap),
		maxDistance: maxDistance,
		ctx:         ctx,
		checkEvery:  o.checkInterval,
	}
	if o.resultCap > 0 {
		w.results = make([]Match, 0, o.resultCap)
	}
	w.visit(idx.rootOff)

	sort.Slice(w.results, func(i, j int) bool {
		a, b := w.results[i], w.results[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.Freq != b.Freq {
			return a.Freq > b.Freq
		}
		return bytes.Compare(a.Word, b.Word) < 0
	})
	if o.maxResults > 0 && len(w.results) > o.maxResults {
		w.results = w.results[:o.maxResults]
	}

	return &SearchResult{Matches: w.results, Interrupted: w.interrupted}, nil
}

// walker holds the mutable state threaded through one DFS traversal. It is
// not reusable across searches; a fresh one is built per Search call.
type walker struct {
	idx         *Index
	oracle      distanceOracle
	maxDistance int
	ctx         context.Context
	checkEvery  int

	path        []byte
	results     []Match
	visited     int
	interrupted bool
}

func (w *walker) visit(off uint64) {
	if w.interrupted {
		return
	}
	w.visited++
	if w.checkEvery > 0 && w.visited%w.checkEvery == 0 {
		select {
		case <-w.ctx.Done():
			w.interrupted = true
			return
		default:
		}
	}

	n := decodeNode(w.idx.buf, off)
	prefix := n.prefix[:n.prefixLen]

	pushed := 0
	pruned := false
	for _, b := range prefix {
		w.oracle.pushByte(b)
		w.path = append(w.path, b)
		pushed++
		if w.oracle.lowerBound() > w.maxDistance {
			pruned = true
			break
		}
	}

	if !pruned {
		if n.isTerminal() {
			if d, within := w.oracle.final(); within {
				w.results = append(w.results, Match{
					Word:     append([]byte(nil), w.path...),
					Freq:     n.freq,
					Distance: d,
				})
			}
		}
		n.eachChild(w.idx.buf, func(key byte, childOff uint64) {
			if w.interrupted {
				return
			}
			w.oracle.pushByte(key)
			w.path = append(w.path, key)
			if w.oracle.lowerBound() <= w.maxDistance {
				w.visit(childOff)
			}
			w.path = w.path[:len(w.path)-1]
			w.oracle.popByte()
		})
	}

	for ; pushed > 0; pushed-- {
		w.oracle.popByte()
		w.path = w.path[:len(w.path)-1]
	}
}
