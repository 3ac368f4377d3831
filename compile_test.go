package artspell

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func compileWords(t *testing.T, entries []WordFreq) ([]byte, *Report) {
	t.Helper()
	var buf bytes.Buffer
	report, err := Compile(NewSliceSource(entries), &buf)
	require.NoError(t, err)
	return buf.Bytes(), report
}

func openImage(t *testing.T, image []byte) *Index {
	t.Helper()
	idx, err := Open(bytes.NewReader(image))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, idx.Close()) })
	return idx
}

func TestCompileSingleSevenByteWord(t *testing.T) {
	// §8.3: a lone 7-byte word compiles to a single Leaf root, no children.
	image, _ := compileWords(t, []WordFreq{{Word: []byte("abcdefg"), Freq: 5}})
	idx := openImage(t, image)
	n := decodeNode(idx.buf, idx.rootOff)
	require.Equal(t, kindLeaf, n.kind)
	require.Equal(t, []byte("abcdefg"), n.prefix[:n.prefixLen])
	require.Equal(t, uint32(5), n.freq)
}

func TestCompileSingleEightByteWord(t *testing.T) {
	// §8.3: an 8-byte word needs a root (7-byte prefix, 1 child) plus the
	// terminal child for the 8th byte — exactly 2 nodes.
	image, _ := compileWords(t, []WordFreq{{Word: []byte("abcdefgh"), Freq: 1}})
	idx := openImage(t, image)
	root := decodeNode(idx.buf, idx.rootOff)
	require.Equal(t, []byte("abcdefg"), root.prefix[:root.prefixLen])
	require.Equal(t, 1, root.childCount(idx.buf))
	require.False(t, root.isTerminal())

	childOff, ok := root.childAt(idx.buf, 'h')
	require.True(t, ok)
	child := decodeNode(idx.buf, childOff)
	require.Equal(t, kindLeaf, child.kind)
	require.Equal(t, uint8(0), child.prefixLen)
	require.True(t, child.isTerminal())
}

func TestCompileBranchingDictionary(t *testing.T) {
	entries := []WordFreq{
		{Word: []byte("cart"), Freq: 2},
		{Word: []byte("cat"), Freq: 9},
		{Word: []byte("dog"), Freq: 4},
	}
	image, report := compileWords(t, entries)
	require.EqualValues(t, 3, report.Words)
	idx := openImage(t, image)

	root := decodeNode(idx.buf, idx.rootOff)
	require.False(t, root.isTerminal())
	require.Equal(t, 2, root.childCount(idx.buf)) // branches on 'c' and 'd'

	cOff, ok := root.childAt(idx.buf, 'c')
	require.True(t, ok)
	cNode := decodeNode(idx.buf, cOff)
	require.Equal(t, []byte("a"), cNode.prefix[:cNode.prefixLen])
	require.Equal(t, 2, cNode.childCount(idx.buf)) // branches on 't' (cat) and 'r' (cart)

	dOff, ok := root.childAt(idx.buf, 'd')
	require.True(t, ok)
	dNode := decodeNode(idx.buf, dOff)
	require.Equal(t, []byte("og"), dNode.prefix[:dNode.prefixLen])
	require.True(t, dNode.isTerminal())
	require.EqualValues(t, 4, dNode.freq)
}

func TestCompileDuplicateWordsMergeFrequency(t *testing.T) {
	entries := []WordFreq{
		{Word: []byte("cat"), Freq: 2},
		{Word: []byte("cat"), Freq: 3},
	}
	image, report := compileWords(t, entries)
	require.EqualValues(t, 2, report.Words)
	idx := openImage(t, image)

	root := decodeNode(idx.buf, idx.rootOff)
	require.Equal(t, []byte("cat"), root.prefix[:root.prefixLen])
	require.EqualValues(t, 5, root.freq)
}

func TestCompileRejectsOutOfOrderInput(t *testing.T) {
	entries := []WordFreq{
		{Word: []byte("zebra"), Freq: 1},
		{Word: []byte("apple"), Freq: 1},
	}
	var buf bytes.Buffer
	_, err := Compile(NewSliceSource(entries), &buf)
	require.Error(t, err)
	var orderErr *BadOrderError
	require.ErrorAs(t, err, &orderErr)
}

func TestCompileRejectsZeroFrequency(t *testing.T) {
	entries := []WordFreq{{Word: []byte("cat"), Freq: 0}}
	var buf bytes.Buffer
	_, err := Compile(NewSliceSource(entries), &buf)
	require.Error(t, err)
	var freqErr *BadFrequencyError
	require.ErrorAs(t, err, &freqErr)
}

func TestCompileDeterministic(t *testing.T) {
	entries := []WordFreq{
		{Word: []byte("ant"), Freq: 1},
		{Word: []byte("anteater"), Freq: 2},
		{Word: []byte("ants"), Freq: 3},
		{Word: []byte("bee"), Freq: 4},
	}
	a, _ := compileWords(t, entries)
	b, _ := compileWords(t, entries)
	require.Equal(t, a, b)
}

func TestOpenRejectsGarbage(t *testing.T) {
	_, err := Open(bytes.NewReader([]byte("not an image")))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrBadImage)
}
