package resample

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for zero-area sources and out-of-range parameters.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDimensionMismatch is returned when buffers that must share a
	// dimension do not.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

func errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}

func validateSource(src *Buffer) error {
	if src == nil {
		return errorf(ErrInvalidInput, "nil source buffer")
	}
	if src.width < 1 || src.height < 1 {
		return errorf(ErrInvalidInput, "source buffer is %dx%d", src.width, src.height)
	}
	return nil
}
