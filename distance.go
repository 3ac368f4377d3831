package artspell

// distanceOracle tracks the Damerau-Levenshtein distance between a fixed
// query and the path bytes of a DFS traversal as they are pushed and popped,
// without restarting the computation from scratch at every node (§4.3.1).
//
// Implementations must agree on every distance they report once that
// distance is within maxDistance. Once a path falls outside the budget,
// each oracle is only obliged to report a value greater than maxDistance,
// not the same value as the other: the bit-parallel oracle tracks error
// counts no higher than maxDistance and reports the sentinel maxDistance+1
// for anything past that, while the row-DP oracle keeps computing the exact
// (and possibly much larger) distance. Both are equally valid for the only
// thing a caller outside this package ever does with an out-of-budget
// result, which is discard it.
type distanceOracle interface {
	// pushByte extends the traversal by one byte, deepest first.
	pushByte(b byte)

	// popByte undoes the most recent pushByte. Callers must never pop past
	// the oracle's construction point.
	popByte()

	// lowerBound returns the minimum number of edits any completion of the
	// current path could still achieve against the query, capped at
	// maxDistance+1. A caller may prune the subtree under the current path
	// once lowerBound() exceeds the search's distance budget.
	lowerBound() int

	// final reports the distance between the query and the path as pushed
	// so far, and whether it is within maxDistance. The distance is exact
	// whenever within is true; otherwise it is only guaranteed to exceed
	// maxDistance.
	final() (distance int, within bool)
}

// newDistanceOracle picks the bit-parallel NFA oracle for non-empty queries
// short enough to fit one machine word (§4.3.1(A)) and falls back to the
// row-DP oracle otherwise, including for an empty query (§4.3.1(B)). Both are built from the same edit model, so
// a caller never observes a difference beyond which one runs faster.
// rowScratchCap hints the row-DP oracle's initial stack depth, sized from
// config.Config.RowDPScratchCap by callers that go through WithConfig; it is
// ignored by the bit-parallel oracle.
func newDistanceOracle(query []byte, maxDistance, rowScratchCap int) distanceOracle {
	if len(query) >= 1 && len(query) <= 64 {
		return newBitParallelOracle(query, maxDistance)
	}
	return newRowDPOracle(query, maxDistance, rowScratchCap)
}
