package artspell

import "github.com/bits-and-blooms/bitset"

// bpFrame is one level of the bit-parallel oracle's push/pop stack: the NFA
// frontier after some number of pushed bytes, plus that frontier already
// shifted and seeded for the next byte (base), so pushByte never redoes the
// seeding work of the frame it extends.
type bpFrame struct {
	depth int
	r     []uint64 // r[d]: bit i set iff "d errors, i+1 query bytes matched" is reachable
	base  []uint64 // base[d] = (r[d]<<1) | seed(d, depth)
}

// bitParallelOracle is the NFA-frontier distance oracle for queries of at
// most 64 bytes (§4.3.1(A)). Each query byte occupies exactly one bit of a
// 64-bit mask per error count, so pushByte costs a handful of machine-word
// operations regardless of query length.
//
// The automaton is the standard "k differences" construction (R_0..R_dmax,
// one bit per query byte) anchored at the query's start rather than armed to
// restart at every position the way a substring-search bitap would be, since
// a search match must align the whole query against the whole path from its
// root. Transposition support is the one addition beyond plain insert/
// delete/substitute: a swap ending at the current byte is detected by
// looking two pushes back at the frontier that existed before the swapped
// pair was read.
type bitParallelOracle struct {
	query       []byte
	maxDistance int
	eqTable     [256]uint64
	alphabet    *bitset.BitSet // which bytes appear anywhere in query
	pushed      []byte
	stack       []*bpFrame
}

func newBitParallelOracle(query []byte, maxDistance int) *bitParallelOracle {
	o := &bitParallelOracle{
		query:       query,
		maxDistance: maxDistance,
		alphabet:    bitset.New(256),
	}
	for i, b := range query {
		o.eqTable[b] |= 1 << uint(i)
		o.alphabet.Set(uint(b))
	}
	// Before any path byte is read, d errors can already have been spent
	// deleting up to d leading query bytes: bits 0..d-1 of r[d].
	r0 := make([]uint64, maxDistance+1)
	for d := range r0 {
		r0[d] = uint64(1)<<uint(d) - 1
	}
	o.stack = []*bpFrame{newBPFrame(r0, 0, maxDistance)}
	return o
}

func newBPFrame(r []uint64, depth int, maxDistance int) *bpFrame {
	base := make([]uint64, maxDistance+1)
	for d := 0; d <= maxDistance; d++ {
		var seed uint64
		if d >= depth {
			seed = 1
		}
		base[d] = (r[d] << 1) | seed
	}
	return &bpFrame{depth: depth, r: r, base: base}
}

func (o *bitParallelOracle) eqMask(b byte) uint64 {
	if !o.alphabet.Test(uint(b)) {
		return 0
	}
	return o.eqTable[b]
}

func (o *bitParallelOracle) pushByte(b byte) {
	top := o.stack[len(o.stack)-1]
	var twoBack *bpFrame
	if len(o.stack) >= 2 {
		twoBack = o.stack[len(o.stack)-2]
	}

	var prevByteEq uint64
	haveTrans := twoBack != nil
	if haveTrans {
		prevByteEq = o.eqMask(o.pushed[len(o.pushed)-1])
	}

	eq := o.eqMask(b)
	newDepth := top.depth + 1
	r := make([]uint64, o.maxDistance+1)
	r[0] = top.base[0] & eq

	for d := 1; d <= o.maxDistance; d++ {
		v := (top.base[d] & eq) | top.base[d-1] | top.r[d-1]
		if haveTrans {
			// A transposition reads the swapped pair (prev, cur) where prev
			// lines up with query[i+1] and cur lines up with query[i] (the
			// two query bytes in reverse of their own order), landing on
			// query position i+2 — bit i+1.
			transEq := prevByteEq & (eq << 1)
			v |= (twoBack.base[d-1] << 1) & transEq
		}
		// Deletion: an epsilon step from (d-1, i) to (d, i+1) taken within
		// this same byte, chained off the d-1 row already finalized above.
		v |= r[d-1] << 1
		if (d - 1) >= newDepth {
			v |= 1
		}
		r[d] = v
	}

	o.stack = append(o.stack, newBPFrame(r, newDepth, o.maxDistance))
	o.pushed = append(o.pushed, b)
}

func (o *bitParallelOracle) popByte() {
	o.stack = o.stack[:len(o.stack)-1]
	o.pushed = o.pushed[:len(o.pushed)-1]
}

func (o *bitParallelOracle) lowerBound() int {
	top := o.stack[len(o.stack)-1]
	for d := 0; d <= o.maxDistance; d++ {
		if top.r[d] != 0 || d >= top.depth {
			return d
		}
	}
	return o.maxDistance + 1
}

func (o *bitParallelOracle) final() (int, bool) {
	top := o.stack[len(o.stack)-1]
	m := len(o.query)
	bit := uint64(1) << uint(m-1)
	for d := 0; d <= o.maxDistance; d++ {
		if top.r[d]&bit != 0 {
			return d, true
		}
	}
	return o.maxDistance + 1, false
}
