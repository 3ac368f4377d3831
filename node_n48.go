package artspell

import "encoding/binary"

// node48 body: idx:u8[256] count:u8 children:u64[48] (§6.1). idx[b]=0xFF
// means NONE, else idx[b] is the slot in children (§3.4: idx[b]=k implies
// 0<=k<count).
const node48BodySize = 256 + 1 + 48*8

func node48ChildAt(buf []byte, bodyOff uint64, c byte) (uint64, bool) {
	slot := buf[bodyOff+uint64(c)]
	if slot == offsetNone48 {
		return 0, false
	}
	off := bodyOff + 256 + 1 + uint64(slot)*8
	return getU64(buf, off), true
}

func node48Each(buf []byte, bodyOff uint64, fn func(key byte, childOff uint64)) {
	idx := buf[bodyOff : bodyOff+256]
	for b := 0; b < 256; b++ {
		slot := idx[b]
		if slot == offsetNone48 {
			continue
		}
		off := bodyOff + 256 + 1 + uint64(slot)*8
		fn(byte(b), getU64(buf, off))
	}
}

// encodeNode48Body writes a node48 body. keys/children must be parallel
// slices (not necessarily sorted — node48 dispatches by direct index, not
// by scan) of length <= 48.
func encodeNode48Body(keys []byte, children []uint64) []byte {
	body := make([]byte, node48BodySize)
	for i := range body[:256] {
		body[i] = offsetNone48
	}
	for slot, k := range keys {
		body[k] = byte(slot)
	}
	body[256] = byte(len(keys))
	for i, off := range children {
		p := 256 + 1 + i*8
		binary.LittleEndian.PutUint64(body[p:p+8], off)
	}
	return body
}
