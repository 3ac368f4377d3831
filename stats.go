package artspell

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// writeStatsSidecar msgpack-encodes report to w (§10.4). The sidecar is pure
// tooling metadata: Open never reads it and its absence is never an error.
func writeStatsSidecar(w io.Writer, report *Report) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(report)
}

// ReadReport decodes a stats sidecar previously written by Compile.
func ReadReport(r io.Reader) (*Report, error) {
	dec := msgpack.NewDecoder(r)
	var report Report
	if err := dec.Decode(&report); err != nil {
		return nil, err
	}
	return &report, nil
}
