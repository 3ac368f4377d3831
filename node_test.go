package artspell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, freq uint32, prefix []byte, keys []byte, children []uint64) node {
	t.Helper()
	buf := encodeNode(freq, prefix, keys, children)
	n := decodeNode(buf, 0)
	require.Equal(t, freq, n.freq)
	require.Equal(t, prefix, n.prefix[:n.prefixLen])
	require.Equal(t, len(keys), n.childCount(buf))
	return n
}

func TestNodeRoundTripLeaf(t *testing.T) {
	n := roundTrip(t, 7, []byte("cat"), nil, nil)
	require.Equal(t, kindLeaf, n.kind)
	require.True(t, n.isTerminal())
	_, ok := n.childAt(nil, 'x')
	require.False(t, ok)
}

func TestNodeRoundTripNode4(t *testing.T) {
	keys := []byte{'a', 'c', 'd', 'z'}
	children := []uint64{10, 20, 30, 40}
	n := roundTrip(t, 0, nil, keys, children)
	require.Equal(t, kindNode4, n.kind)
	require.False(t, n.isTerminal())

	buf := encodeNode(0, nil, keys, children)
	for i, k := range keys {
		off, ok := n.childAt(buf, k)
		require.True(t, ok)
		require.Equal(t, children[i], off)
	}
	_, ok := n.childAt(buf, 'b')
	require.False(t, ok)
}

func TestNodeRoundTripNode16(t *testing.T) {
	keys := make([]byte, 16)
	children := make([]uint64, 16)
	for i := range keys {
		keys[i] = byte('a' + i)
		children[i] = uint64(i * 100)
	}
	buf := encodeNode(3, []byte("x"), keys, children)
	n := decodeNode(buf, 0)
	require.Equal(t, kindNode16, n.kind)
	for i, k := range keys {
		off, ok := n.childAt(buf, k)
		require.True(t, ok)
		require.Equal(t, children[i], off)
	}
	_, ok := n.childAt(buf, '~')
	require.False(t, ok)
}

func TestNodeRoundTripNode48(t *testing.T) {
	keys := make([]byte, 40)
	children := make([]uint64, 40)
	for i := range keys {
		keys[i] = byte(i + 1)
		children[i] = uint64(i + 1000)
	}
	buf := encodeNode(0, nil, keys, children)
	n := decodeNode(buf, 0)
	require.Equal(t, kindNode48, n.kind)
	require.Equal(t, 40, n.childCount(buf))
	for i, k := range keys {
		off, ok := n.childAt(buf, k)
		require.True(t, ok)
		require.Equal(t, children[i], off)
	}
	_, ok := n.childAt(buf, 0)
	require.False(t, ok)
}

func TestNodeRoundTripNode256(t *testing.T) {
	keys := make([]byte, 200)
	children := make([]uint64, 200)
	for i := range keys {
		keys[i] = byte(i)
		children[i] = uint64(i + 1) // offset 0 is reserved for "no child"
	}
	buf := encodeNode(0, nil, keys, children)
	n := decodeNode(buf, 0)
	require.Equal(t, kindNode256, n.kind)
	require.Equal(t, 200, n.childCount(buf))
	for i, k := range keys {
		off, ok := n.childAt(buf, k)
		require.True(t, ok)
		require.Equal(t, children[i], off)
	}
	_, ok := n.childAt(buf, 255)
	require.False(t, ok)
}

func TestNodeEachChildAscending(t *testing.T) {
	keys := []byte{'a', 'm', 'z'}
	children := []uint64{1, 2, 3}
	buf := encodeNode(0, nil, keys, children)
	n := decodeNode(buf, 0)

	var seen []byte
	n.eachChild(buf, func(k byte, off uint64) {
		seen = append(seen, k)
		idx := int(off - 1)
		require.Equal(t, keys[idx], k)
	})
	require.Equal(t, keys, seen)
}

func TestNodeAtNonZeroOffset(t *testing.T) {
	buf := make([]byte, 5)
	buf = append(buf, encodeNode(9, []byte("ab"), nil, nil)...)
	n := decodeNode(buf, 5)
	require.Equal(t, uint32(9), n.freq)
	require.Equal(t, []byte("ab"), n.prefix[:n.prefixLen])
}
