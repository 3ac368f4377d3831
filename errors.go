package artspell

import "github.com/pkg/errors"

// Sentinel errors for the fatal conditions of §7. ErrIO and ErrBadImage are
// wrapped with github.com/pkg/errors before being returned, so callers get a
// stack trace via %+v. ErrBadOrder and ErrBadFrequency reach callers inside
// BadOrderError and BadFrequencyError, which name the offending word but
// carry no stack trace. All of them compare with errors.Is.
var (
	// ErrBadOrder is returned when Compile's input is not lexicographically
	// non-decreasing.
	ErrBadOrder = errors.New("artspell: input word out of order")

	// ErrBadFrequency is returned when a frequency is zero or overflows.
	ErrBadFrequency = errors.New("artspell: invalid frequency")

	// ErrIO wraps a read/write failure encountered while compiling or
	// opening an image.
	ErrIO = errors.New("artspell: i/o error")

	// ErrBadImage is returned by Open when the footer's magic, version, or
	// root offset fail validation.
	ErrBadImage = errors.New("artspell: malformed image")
)

// BadOrderError identifies the offending word for an ErrBadOrder failure.
type BadOrderError struct {
	Word     []byte
	Previous []byte
}

func (e *BadOrderError) Error() string {
	return errors.Wrapf(ErrBadOrder, "word %q is not >= previous word %q", e.Word, e.Previous).Error()
}

func (e *BadOrderError) Unwrap() error { return ErrBadOrder }

// BadFrequencyError identifies the offending word for an ErrBadFrequency
// failure.
type BadFrequencyError struct {
	Word []byte
	Freq uint64
}

func (e *BadFrequencyError) Error() string {
	return errors.Wrapf(ErrBadFrequency, "word %q has frequency %d", e.Word, e.Freq).Error()
}

func (e *BadFrequencyError) Unwrap() error { return ErrBadFrequency }
