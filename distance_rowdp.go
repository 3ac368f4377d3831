package artspell

// rowDPOracle is the scalar fallback distance oracle, used whenever a query
// does not fit the bit-parallel oracle's single 64-bit word (§4.3.1(B)). It
// keeps one full int row per pushed byte on an explicit stack so popByte is
// just a truncation, never a recomputation.
type rowDPOracle struct {
	query       []byte
	maxDistance int
	rows        [][]int // rows[0] is the base row (0 bytes pushed)
	pushed      []byte  // pushed[i] is the byte that produced rows[i+1]
}

func newRowDPOracle(query []byte, maxDistance, scratchCap int) *rowDPOracle {
	base := make([]int, len(query)+1)
	for j := range base {
		base[j] = j
	}
	if scratchCap < 1 {
		scratchCap = 1
	}
	rows := make([][]int, 1, scratchCap)
	rows[0] = base
	return &rowDPOracle{
		query:       query,
		maxDistance: maxDistance,
		rows:        rows,
	}
}

func (o *rowDPOracle) pushByte(b byte) {
	prev := o.rows[len(o.rows)-1]
	var prevPrev []int
	if len(o.rows) >= 2 {
		prevPrev = o.rows[len(o.rows)-2]
	}
	havePrevByte := len(o.pushed) > 0
	var prevByte byte
	if havePrevByte {
		prevByte = o.pushed[len(o.pushed)-1]
	}

	row := make([]int, len(o.query)+1)
	row[0] = prev[0] + 1
	for j := 1; j <= len(o.query); j++ {
		subCost := 1
		if o.query[j-1] == b {
			subCost = 0
		}
		v := row[j-1] + 1
		if d := prev[j] + 1; d < v {
			v = d
		}
		if d := prev[j-1] + subCost; d < v {
			v = d
		}
		if prevPrev != nil && j >= 2 && havePrevByte &&
			b == o.query[j-2] && prevByte == o.query[j-1] {
			if d := prevPrev[j-2] + 1; d < v {
				v = d
			}
		}
		row[j] = v
	}

	o.rows = append(o.rows, row)
	o.pushed = append(o.pushed, b)
}

func (o *rowDPOracle) popByte() {
	o.rows = o.rows[:len(o.rows)-1]
	o.pushed = o.pushed[:len(o.pushed)-1]
}

func (o *rowDPOracle) lowerBound() int {
	row := o.rows[len(o.rows)-1]
	min := row[0]
	for _, v := range row[1:] {
		if v < min {
			min = v
		}
	}
	// Capped to mirror the bit-parallel oracle's contract: a caller only ever
	// needs to know whether the budget is exceeded, not by how much, so both
	// oracles report the same sentinel once a subtree is unreachable within
	// maxDistance rather than leaking an arbitrarily large exact minimum.
	if min > o.maxDistance+1 {
		return o.maxDistance + 1
	}
	return min
}

func (o *rowDPOracle) final() (int, bool) {
	d := o.rows[len(o.rows)-1][len(o.query)]
	return d, d <= o.maxDistance
}
