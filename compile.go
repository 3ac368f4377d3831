package artspell

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// footerMagic is the 4-byte magic trailer identifying a compiled image
// (§3.3, §6.1).
var footerMagic = [4]byte{'A', 'R', 'T', 'X'}

// footerVersion is the only version this implementation emits or accepts.
const footerVersion = 1

const footerSize = 4 + 1 + 8

// WordFreq is one entry of a Compile input stream: a word and its
// frequency (§3.1). Freq must be >= 1 and fit in 32 bits; Compile rejects
// anything else with ErrBadFrequency.
type WordFreq struct {
	Word []byte
	Freq uint64
}

// Source is a lazy (word, frequency) stream, lexicographically non-decreasing
// by word (§4.2 input contract). Compile calls Next until it returns
// ok=false or a non-nil error.
type Source interface {
	Next() (entry WordFreq, ok bool, err error)
}

// SliceSource adapts an in-memory slice to Source, for tests and small
// dictionaries.
type SliceSource struct {
	entries []WordFreq
	pos     int
}

// NewSliceSource returns a Source over entries, which must already be sorted
// by Word.
func NewSliceSource(entries []WordFreq) *SliceSource {
	return &SliceSource{entries: entries}
}

func (s *SliceSource) Next() (WordFreq, bool, error) {
	if s.pos >= len(s.entries) {
		return WordFreq{}, false, nil
	}
	e := s.entries[s.pos]
	s.pos++
	return e, true, nil
}

// Report summarizes a single Compile run. It is pure tooling metadata (§10.4)
// never consulted by Open or Search.
type Report struct {
	Words       uint64            `msgpack:"words"`
	Bytes       uint64            `msgpack:"bytes"`
	NodesByKind map[string]uint64 `msgpack:"nodes_by_kind"`
	MaxDepth    int               `msgpack:"max_depth"`
	Elapsed     time.Duration     `msgpack:"elapsed"`
}

// compileOptions holds the functional options accepted by Compile.
type compileOptions struct {
	logger       *zap.Logger
	statsSidecar io.Writer
	xxhSidecar   io.Writer
}

// CompileOption configures a Compile call.
type CompileOption func(*compileOptions)

// WithLogger attaches a structured logger (§10.1). Compile defaults to a
// no-op logger when this option is absent.
func WithLogger(l *zap.Logger) CompileOption {
	return func(o *compileOptions) { o.logger = l }
}

// WithStatsSidecar makes Compile msgpack-encode its Report to w once
// compilation succeeds (§10.4).
func WithStatsSidecar(w io.Writer) CompileOption {
	return func(o *compileOptions) { o.statsSidecar = w }
}

// WithChecksumSidecar makes Compile write the xxhash64 checksum of the
// emitted image to w (§10.5).
func WithChecksumSidecar(w io.Writer) CompileOption {
	return func(o *compileOptions) { o.xxhSidecar = w }
}

// countingWriter tracks the number of bytes written so the compiler can hand
// out offsets without seeking or querying the underlying writer (§4.2 "Why
// post-order": a forward-only writer never needs to know its own position
// any other way).
type countingWriter struct {
	w   io.Writer
	n   uint64
	sum *xxhash.Digest
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += uint64(n)
	if cw.sum != nil {
		cw.sum.Write(p[:n])
	}
	return n, err
}

// Compile streams entries from src into w, emitting a byte-exact ART image
// (§6.1). It holds only the current root-to-word spine in memory (§4.2).
func Compile(src Source, w io.Writer, opts ...CompileOption) (*Report, error) {
	start := time.Now()
	var o compileOptions
	o.logger = zap.NewNop()
	for _, opt := range opts {
		opt(&o)
	}

	bw := bufio.NewWriter(w)
	cw := &countingWriter{w: bw}
	if o.xxhSidecar != nil {
		cw.sum = xxhash.New()
	}

	// Reserve offset 0: node256's child slots use 0 as their NONE sentinel
	// (§6.1), so no real node may ever be written there. A bare one-byte pad
	// guarantees every node offset this compiler hands out is >= 1,
	// regardless of which node happens to be flushed first.
	if _, err := cw.Write([]byte{0}); err != nil {
		return nil, errors.Wrap(ErrIO, err.Error())
	}

	report := &Report{NodesByKind: map[string]uint64{}}

	root := &spineFrame{depth: 0}
	stack := []*spineFrame{root}

	emit := func(f *spineFrame) (uint64, error) {
		sortChildren(f.children)
		keys := make([]byte, len(f.children))
		children := make([]uint64, len(f.children))
		for i, c := range f.children {
			keys[i] = c.key
			children[i] = c.off
		}
		buf := encodeNode(f.freq, f.prefix, keys, children)
		off := cw.n
		if _, err := cw.Write(buf); err != nil {
			return 0, errors.Wrap(ErrIO, err.Error())
		}
		report.NodesByKind[kindName(nodeKindFor(len(f.children)))]++
		return off, nil
	}

	var prev []byte
	haveFirst := false

	for {
		entry, ok, err := src.Next()
		if err != nil {
			return nil, errors.Wrap(ErrIO, err.Error())
		}
		if !ok {
			break
		}
		word, freq := entry.Word, entry.Freq

		if freq == 0 || freq > 1<<32-1 {
			return nil, &BadFrequencyError{Word: word, Freq: freq}
		}
		if haveFirst && bytes.Compare(word, prev) < 0 {
			return nil, &BadOrderError{Word: word, Previous: prev}
		}
		report.Words++

		lcp := 0
		if haveFirst {
			lcp = longestCommonPrefixLen(word, prev)
		}

		// Flush: pop/split frames whose territory no longer matches word.
		for {
			top := stack[len(stack)-1]
			if top.depth > lcp {
				off, err := emit(top)
				if err != nil {
					return nil, err
				}
				stack = stack[:len(stack)-1]
				parent := stack[len(stack)-1]
				parent.addChild(top.branchByte, off)
				continue
			}
			if lcp < top.endDepth() {
				relPos := lcp - top.depth
				remainder := &spineFrame{
					depth:      lcp + 1,
					prefix:     append([]byte(nil), top.prefix[relPos+1:]...),
					freq:       top.freq,
					branchByte: top.prefix[relPos],
					children:   top.children,
				}
				top.prefix = top.prefix[:relPos]
				top.freq = 0
				off, err := emit(remainder)
				if err != nil {
					return nil, err
				}
				top.children = nil
				top.addChild(remainder.branchByte, off)
			}
			break
		}

		// Descend: extend the spine for the unmatched remainder of word.
		pos := lcp
		top := stack[len(stack)-1]
		if pos == len(word) {
			// Duplicate word (or a word equal to an existing internal
			// terminal): merge frequencies (§4.2, decided open question).
			top.freq += uint32(freq)
		} else {
			// A never-touched root has no parent, so it may absorb its
			// first bytes directly as its own compressed prefix instead of
			// spawning a branch+child pair (§3.2: root is a node like any
			// other, and §8.3 requires a lone 7-byte word to compile to a
			// single Leaf root, not a root+child pair).
			if len(stack) == 1 && top.prefix == nil {
				segLen := len(word) - pos
				if segLen > maxPrefixLen {
					segLen = maxPrefixLen
				}
				top.prefix = append([]byte(nil), word[pos:pos+segLen]...)
				pos += segLen
				if pos == len(word) {
					top.freq = uint32(freq)
				}
			}
			for pos < len(word) {
				branch := word[pos]
				segStart := pos + 1
				segLen := len(word) - segStart
				if segLen > maxPrefixLen {
					segLen = maxPrefixLen
				}
				nf := &spineFrame{
					depth:      segStart,
					prefix:     append([]byte(nil), word[segStart:segStart+segLen]...),
					branchByte: branch,
				}
				stack = append(stack, nf)
				pos = segStart + segLen
				if pos == len(word) {
					nf.freq = uint32(freq)
				}
			}
		}

		if depth := len(stack); depth > report.MaxDepth {
			report.MaxDepth = depth
		}

		prev = append(prev[:0], word...)
		haveFirst = true
	}

	// Final flush: close out the entire spine, root last.
	for len(stack) > 1 {
		top := stack[len(stack)-1]
		off, err := emit(top)
		if err != nil {
			return nil, err
		}
		stack = stack[:len(stack)-1]
		parent := stack[len(stack)-1]
		parent.addChild(top.branchByte, off)
	}
	rootOff, err := emit(stack[0])
	if err != nil {
		return nil, err
	}

	footer := make([]byte, footerSize)
	copy(footer[0:4], footerMagic[:])
	footer[4] = footerVersion
	binary.LittleEndian.PutUint64(footer[5:13], rootOff)
	if _, err := cw.Write(footer); err != nil {
		return nil, errors.Wrap(ErrIO, err.Error())
	}

	if err := bw.Flush(); err != nil {
		return nil, errors.Wrap(ErrIO, err.Error())
	}

	report.Bytes = cw.n
	report.Elapsed = time.Since(start)

	o.logger.Info("compile finished",
		zap.Uint64("bytes", report.Bytes),
		zap.Int("max_depth", report.MaxDepth),
		zap.Duration("elapsed", report.Elapsed),
	)

	if o.statsSidecar != nil {
		if err := writeStatsSidecar(o.statsSidecar, report); err != nil {
			return nil, err
		}
	}
	if o.xxhSidecar != nil && cw.sum != nil {
		if err := writeChecksumSidecar(o.xxhSidecar, cw.sum.Sum64()); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func nodeKindFor(childCount int) uint8 {
	switch {
	case childCount == 0:
		return kindLeaf
	case childCount <= 4:
		return kindNode4
	case childCount <= 16:
		return kindNode16
	case childCount <= 48:
		return kindNode48
	default:
		return kindNode256
	}
}

func kindName(k uint8) string {
	switch k {
	case kindLeaf:
		return "leaf"
	case kindNode4:
		return "node4"
	case kindNode16:
		return "node16"
	case kindNode48:
		return "node48"
	case kindNode256:
		return "node256"
	default:
		return "unknown"
	}
}
