package artspell

import (
	"encoding/binary"
	"io"

	"github.com/cespare/xxhash/v2"
)

// xxh64Sum computes the xxhash64 digest used by the integrity sidecar
// (§10.5). It is only ever consulted by Open when the caller opts in with
// WithChecksum — the bit-exact image format of §6.1 never depends on it.
func xxh64Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

func checksumEqual(sum uint64, expected []byte) bool {
	if len(expected) != 8 {
		return false
	}
	return binary.LittleEndian.Uint64(expected) == sum
}

// writeChecksumSidecar writes the 8-byte little-endian xxhash64 digest of a
// just-compiled image to w.
func writeChecksumSidecar(w io.Writer, sum uint64) error {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, sum)
	_, err := w.Write(b)
	return err
}
