// Package artspell implements an approximate-match spelling index over a
// static word-frequency dictionary.
//
// An Adaptive Radix Tree (ART) with inline path compression is compiled once
// from a sorted (word, frequency) stream into a byte-exact on-disk image
// (see Compile), then queried by walking the image directly — nodes are
// never parsed back into an owning in-memory tree (see Open and
// (*Index).Search).
//
// The node layout here is heavily based on the node4/node16/node48/node256
// split of github.com/hashicorp/go-immutable-radix's ART branch, reworked
// from in-memory pointers into file offsets so the compiled image can be
// mmap'd and used as is.
package artspell

import "encoding/binary"

const (
	maxPrefixLen = 7

	kindLeaf uint8 = iota
	kindNode4
	kindNode16
	kindNode48
	kindNode256
)

// offsetNone48 is the sentinel for "no child" in node48's index table.
const offsetNone48 = 0xFF

// header is the fixed-size prefix every encoded node carries, regardless of
// kind: 1 (kind) + 4 (freq) + 1 (prefixLen) + 7 (prefix) = 13 bytes.
const headerSize = 1 + 4 + 1 + maxPrefixLen

// node is a decoded copy of a node's header fields, including its prefix
// bytes. The kind-specific body stays in the backing buffer and is read
// from there at bodyOff.
type node struct {
	kind      uint8
	freq      uint32
	prefixLen uint8
	prefix    [maxPrefixLen]byte
	off       uint64 // offset this node was decoded from
	bodyOff   uint64 // offset of the kind-specific body, i.e. off+headerSize
}

// isTerminal reports whether this node stores a word (freq != 0, per §3.2).
func (n *node) isTerminal() bool {
	return n.freq != 0
}

// decodeNode reads the fixed header at off and returns a node ready for
// kind-specific body access via childAt/childCount/eachChild.
func decodeNode(buf []byte, off uint64) node {
	b := buf[off:]
	var n node
	n.off = off
	n.kind = b[0]
	n.freq = binary.LittleEndian.Uint32(b[1:5])
	n.prefixLen = b[5]
	copy(n.prefix[:], b[6:6+maxPrefixLen])
	n.bodyOff = off + headerSize
	return n
}

// childAt returns the file offset of the child reachable via key byte c, or
// (0, false) if there is no such child.
func (n *node) childAt(buf []byte, c byte) (uint64, bool) {
	switch n.kind {
	case kindLeaf:
		return 0, false
	case kindNode4:
		return node4ChildAt(buf, n.bodyOff, c)
	case kindNode16:
		return node16ChildAt(buf, n.bodyOff, c)
	case kindNode48:
		return node48ChildAt(buf, n.bodyOff, c)
	case kindNode256:
		return node256ChildAt(buf, n.bodyOff, c)
	default:
		return 0, false
	}
}

// childCount returns how many children this node has.
func (n *node) childCount(buf []byte) int {
	switch n.kind {
	case kindLeaf:
		return 0
	case kindNode4:
		return int(buf[n.bodyOff])
	case kindNode16:
		return int(buf[n.bodyOff])
	case kindNode48:
		return int(buf[n.bodyOff+256])
	case kindNode256:
		count := 0
		for i := 0; i < 256; i++ {
			off := n.bodyOff + uint64(i)*8
			if binary.LittleEndian.Uint64(buf[off:off+8]) != 0 {
				count++
			}
		}
		return count
	default:
		return 0
	}
}

// eachChild invokes fn(keyByte, childOffset) for every child of n, in
// ascending key-byte order (the order the Node Codec is required to expose
// per §4.1/§4.3).
func (n *node) eachChild(buf []byte, fn func(key byte, childOff uint64)) {
	switch n.kind {
	case kindLeaf:
		return
	case kindNode4:
		node4Each(buf, n.bodyOff, fn)
	case kindNode16:
		node16Each(buf, n.bodyOff, fn)
	case kindNode48:
		node48Each(buf, n.bodyOff, fn)
	case kindNode256:
		node256Each(buf, n.bodyOff, fn)
	}
}

func putU32(buf []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], v)
}

func putU64(buf []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(buf[off:off+8], v)
}

func getU64(buf []byte, off uint64) uint64 {
	return binary.LittleEndian.Uint64(buf[off : off+8])
}

// encodeHeader writes the common header shared by every node kind into buf
// (which must be at least headerSize long) and returns buf.
func encodeHeader(buf []byte, kind uint8, freq uint32, prefix []byte) []byte {
	buf[0] = kind
	putU32(buf, 1, freq)
	buf[5] = byte(len(prefix))
	copy(buf[6:6+maxPrefixLen], prefix)
	return buf
}
