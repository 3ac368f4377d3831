package artspell

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/artspell/artspell/internal/config"
	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Index is a handle on a compiled, immutable ART image (§3.3, §5). It may be
// shared read-only across any number of concurrent Search calls.
type Index struct {
	buf      []byte
	mapping  mmap.MMap // non-nil only when the image is memory-mapped
	rootOff  uint64
	fileSize uint64
}

// openOptions configures Open.
type openOptions struct {
	logger         *zap.Logger
	useMmap        bool
	verifyChecksum []byte // expected xxhash64, little-endian, if non-nil
}

// OpenOption configures an Open call.
type OpenOption func(*openOptions)

// WithOpenLogger attaches a structured logger (§10.1).
func WithOpenLogger(l *zap.Logger) OpenOption {
	return func(o *openOptions) { o.logger = l }
}

// WithMmap selects mmap(PROT_READ) loading instead of reading the whole
// image into a buffer (§5 Shared resources). Only valid when Open is given
// an *os.File.
func WithMmap() OpenOption {
	return func(o *openOptions) { o.useMmap = true }
}

// WithChecksum verifies the image against a previously-recorded xxhash64
// sum before trusting it (§10.5). expected is the raw 8-byte little-endian
// digest, e.g. read from a ".xxh64" sidecar.
func WithChecksum(expected []byte) OpenOption {
	return func(o *openOptions) { o.verifyChecksum = expected }
}

// WithOpenConfig applies the loading behavior an ambient config.Config
// describes (§10.3): whether to mmap the image. VerifyChecksum still
// requires the expected digest itself, which a config file does not carry,
// so pair WithOpenConfig with WithChecksum when cfg.VerifyChecksum is set.
func WithOpenConfig(cfg config.Config) OpenOption {
	return func(o *openOptions) { o.useMmap = cfg.Mmap }
}

// Open validates and loads a compiled image (§6.1, §6.2). r is read fully
// unless WithMmap is given and r is an *os.File.
func Open(r io.Reader, opts ...OpenOption) (*Index, error) {
	var o openOptions
	o.logger = zap.NewNop()
	for _, opt := range opts {
		opt(&o)
	}

	var buf []byte
	var mapping mmap.MMap

	if f, ok := r.(*os.File); ok && o.useMmap {
		m, err := mmap.Map(f, mmap.RDONLY, 0)
		if err != nil {
			return nil, errors.Wrap(ErrIO, err.Error())
		}
		buf = m
		mapping = m
	} else {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(ErrIO, err.Error())
		}
		buf = data
	}

	idx, err := loadIndex(buf, mapping, o)
	if err != nil {
		if mapping != nil {
			mapping.Unmap()
		}
		return nil, err
	}
	return idx, nil
}

func loadIndex(buf []byte, mapping mmap.MMap, o openOptions) (*Index, error) {
	if len(buf) < footerSize {
		return nil, errors.Wrap(ErrBadImage, "image shorter than footer")
	}
	footer := buf[len(buf)-footerSize:]
	if string(footer[0:4]) != string(footerMagic[:]) {
		return nil, errors.Wrap(ErrBadImage, "bad magic")
	}
	if footer[4] != footerVersion {
		return nil, errors.Wrapf(ErrBadImage, "unsupported version %d", footer[4])
	}
	rootOff := binary.LittleEndian.Uint64(footer[5:13])
	if rootOff > uint64(len(buf)-footerSize) {
		return nil, errors.Wrap(ErrBadImage, "root offset out of range")
	}

	if o.verifyChecksum != nil {
		sum := xxh64Sum(buf)
		if !checksumEqual(sum, o.verifyChecksum) {
			return nil, errors.Wrap(ErrBadImage, "checksum mismatch")
		}
	}

	o.logger.Info("index opened",
		zap.Uint64("root_offset", rootOff),
		zap.Int("file_size", len(buf)),
	)

	return &Index{
		buf:      buf,
		mapping:  mapping,
		rootOff:  rootOff,
		fileSize: uint64(len(buf)),
	}, nil
}

// Close releases any mmap'd resources. It is a no-op for buffer-backed
// indexes.
func (idx *Index) Close() error {
	if idx.mapping != nil {
		return idx.mapping.Unmap()
	}
	return nil
}
