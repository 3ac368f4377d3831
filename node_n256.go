package artspell

import "encoding/binary"

// node256 body: children:u64[256], 0 meaning NONE (§6.1). Offset 0 can never
// be a real node's offset: Compile reserves it with a one-byte pad before
// writing anything else, so a 0 child slot is unambiguously absent even for
// the first node the streaming compiler ever flushes.
const node256BodySize = 256 * 8

func node256ChildAt(buf []byte, bodyOff uint64, c byte) (uint64, bool) {
	off := bodyOff + uint64(c)*8
	v := getU64(buf, off)
	if v == 0 {
		return 0, false
	}
	return v, true
}

func node256Each(buf []byte, bodyOff uint64, fn func(key byte, childOff uint64)) {
	for b := 0; b < 256; b++ {
		off := bodyOff + uint64(b)*8
		v := getU64(buf, off)
		if v != 0 {
			fn(byte(b), v)
		}
	}
}

// encodeNode256Body writes a node256 body for the given (keys, children)
// pairs, which need not be sorted.
func encodeNode256Body(keys []byte, children []uint64) []byte {
	body := make([]byte, node256BodySize)
	for i, k := range keys {
		binary.LittleEndian.PutUint64(body[int(k)*8:int(k)*8+8], children[i])
	}
	return body
}
