package huffzip

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when there is nothing to compress.
	ErrInvalidInput = errors.New("huffzip: invalid input")

	// ErrCodeTooLong is returned when the frequency distribution is so
	// skewed that some code would need more than MaxCodeSize bits.
	ErrCodeTooLong = errors.New("huffzip: code too long")

	// ErrCorruptContainer is returned when a container is truncated,
	// malformed, or internally inconsistent.
	ErrCorruptContainer = errors.New("huffzip: corrupt container")

	// ErrIO is returned when reading the source or writing the
	// destination fails.  The underlying error is still available through
	// errors.As.
	ErrIO = errors.New("huffzip: i/o error")
)

func corruptf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrCorruptContainer, fmt.Sprintf(format, args...))
}

// ioError decorates a filesystem error so that errors.Is(err, ErrIO) holds.
type ioError struct {
	op   string
	path string
	err  error
}

func (e *ioError) Error() string {
	return fmt.Sprintf("huffzip: %s %q: %v", e.op, e.path, e.err)
}

func (e *ioError) Unwrap() error {
	return e.err
}

func (e *ioError) Is(target error) bool {
	return target == ErrIO
}

var _ error = (*ioError)(nil)
