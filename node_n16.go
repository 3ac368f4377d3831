package artspell

import (
	"encoding/binary"
	"sort"
)

// node16 body: count:u8 keys:u8[16] children:u64[16] (§6.1), keys sorted
// ascending so lookup can binary search (§4.1).
const node16BodySize = 1 + 16 + 16*8

func node16ChildAt(buf []byte, bodyOff uint64, c byte) (uint64, bool) {
	count := int(buf[bodyOff])
	keys := buf[bodyOff+1 : bodyOff+1+16]
	idx := sort.Search(count, func(i int) bool { return keys[i] >= c })
	if idx < count && keys[idx] == c {
		off := bodyOff + 1 + 16 + uint64(idx)*8
		return getU64(buf, off), true
	}
	return 0, false
}

func node16Each(buf []byte, bodyOff uint64, fn func(key byte, childOff uint64)) {
	count := int(buf[bodyOff])
	keys := buf[bodyOff+1 : bodyOff+1+16]
	for i := 0; i < count; i++ {
		off := bodyOff + 1 + 16 + uint64(i)*8
		fn(keys[i], getU64(buf, off))
	}
}

// encodeNode16Body writes a node16 body for the given sorted (keys, children)
// pairs. len(keys) must be <= 16 and strictly ascending.
func encodeNode16Body(keys []byte, children []uint64) []byte {
	body := make([]byte, node16BodySize)
	body[0] = byte(len(keys))
	copy(body[1:1+16], keys)
	for i, off := range children {
		p := 1 + 16 + i*8
		binary.LittleEndian.PutUint64(body[p:p+8], off)
	}
	return body
}
