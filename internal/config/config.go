// Package config holds the tunables that sit outside the compiled image's
// bit-exact wire format (§6.1): how Open loads an image, and how much
// scratch space Search pre-allocates. None of it is read by the CLI layer
// that remains out of scope for this module — it is a plain struct a caller
// populates however suits it, by flags, by TOML file, or by literal.
package config

import (
	"github.com/BurntSushi/toml"
)

// Config governs ambient behavior not dictated by the on-disk format.
type Config struct {
	// Mmap selects memory-mapped image loading over reading the whole file
	// into a buffer (§5 Shared resources).
	Mmap bool `toml:"mmap"`

	// VerifyChecksum records whether images should be checked against their
	// xxhash64 sidecar (§10.5). Open does not read this field: the check
	// runs only when the caller passes WithChecksum with the expected digest.
	VerifyChecksum bool `toml:"verify_checksum"`

	// ResultScratchCap is the initial capacity of the result slice each
	// Search call allocates when given this config. The slice is not reused
	// across calls.
	ResultScratchCap int `toml:"result_scratch_cap"`

	// RowDPScratchCap is the initial capacity of the row-DP distance
	// oracle's stack of rows (one row per pushed path byte), used for
	// queries longer than 64 bytes (§4.3.1(B)).
	RowDPScratchCap int `toml:"row_dp_scratch_cap"`
}

// DefaultConfig returns sane defaults for embedding without a config file.
func DefaultConfig() Config {
	return Config{
		Mmap:             false,
		VerifyChecksum:   false,
		ResultScratchCap: 64,
		RowDPScratchCap:  128,
	}
}

// Load reads a TOML config file, filling any field not present in the file
// with DefaultConfig's value.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}
