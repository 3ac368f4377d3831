package artspell

// encodeNode serializes a single node (header + kind-specific body) given its
// terminal frequency, compressed prefix, and children as parallel
// (keys, childOffsets) slices already in ascending key-byte order (§3.2,
// §4.1). It implements the promotion policy of §4.1: the smallest kind that
// fits the child count is chosen, and a childless node always uses the
// distinct Leaf tag (empty body) rather than an empty N4, since a dictionary
// is mostly leaves and the distinct tag shaves 37 bytes off every one of
// them.
func encodeNode(freq uint32, prefix []byte, keys []byte, children []uint64) []byte {
	var kind uint8
	var body []byte

	switch n := len(keys); {
	case n == 0:
		kind = kindLeaf
	case n <= 4:
		kind = kindNode4
		body = encodeNode4Body(keys, children)
	case n <= 16:
		kind = kindNode16
		body = encodeNode16Body(keys, children)
	case n <= 48:
		kind = kindNode48
		body = encodeNode48Body(keys, children)
	default:
		kind = kindNode256
		body = encodeNode256Body(keys, children)
	}

	buf := make([]byte, headerSize+len(body))
	encodeHeader(buf, kind, freq, prefix)
	copy(buf[headerSize:], body)
	return buf
}
