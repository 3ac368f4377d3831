package artspell

import "encoding/binary"

// node4 body: count:u8 keys:u8[4] children:u64[4] (§6.1).
const node4BodySize = 1 + 4 + 4*8

func node4ChildAt(buf []byte, bodyOff uint64, c byte) (uint64, bool) {
	count := int(buf[bodyOff])
	keys := buf[bodyOff+1 : bodyOff+1+4]
	for i := 0; i < count; i++ {
		if keys[i] == c {
			off := bodyOff + 1 + 4 + uint64(i)*8
			return getU64(buf, off), true
		}
	}
	return 0, false
}

func node4Each(buf []byte, bodyOff uint64, fn func(key byte, childOff uint64)) {
	count := int(buf[bodyOff])
	keys := buf[bodyOff+1 : bodyOff+1+4]
	for i := 0; i < count; i++ {
		off := bodyOff + 1 + 4 + uint64(i)*8
		fn(keys[i], getU64(buf, off))
	}
}

// encodeNode4Body writes a node4 body for the given sorted (keys, children)
// pairs. len(keys) must be <= 4 and keys must be strictly ascending (§3.4).
func encodeNode4Body(keys []byte, children []uint64) []byte {
	body := make([]byte, node4BodySize)
	body[0] = byte(len(keys))
	copy(body[1:5], keys)
	for i, off := range children {
		binary.LittleEndian.PutUint64(body[5+i*8:5+i*8+8], off)
	}
	return body
}
