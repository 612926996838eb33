package rmqrgo

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedCharacter is returned when a payload character cannot be
	// represented in the mode it was assigned to.
	ErrUnsupportedCharacter = errors.New("unsupported character")

	// ErrCapacityExceeded is returned when the payload does not fit any
	// symbol the caller permits.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidConfiguration is returned for an unknown error correction
	// level or version, or size constraints that no version satisfies.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrMatrixCapacityMismatch marks an internal fault: the symbol geometry
	// and the codeword table disagree.
	ErrMatrixCapacityMismatch = errors.New("matrix capacity mismatch")

	// ErrChecksum is returned when a symbol's error correction cannot repair it.
	ErrChecksum = errors.New("checksum error")

	// ErrFormat is returned when a symbol cannot be decoded due to format issues.
	ErrFormat = errors.New("format error")

	// ErrWriter is returned when a symbol cannot be rendered.
	ErrWriter = errors.New("writer error")
)

// CapacityMismatchError reports the placeable module count of a version
// that differs from the bits its codeword table produces.
type CapacityMismatchError struct {
	Version  string
	Expected int
	Actual   int
}

func (e *CapacityMismatchError) Error() string {
	return fmt.Sprintf("%s: %s expects %d data modules, found %d",
		ErrMatrixCapacityMismatch, e.Version, e.Expected, e.Actual)
}

// Unwrap lets errors.Is match ErrMatrixCapacityMismatch.
func (e *CapacityMismatchError) Unwrap() error {
	return ErrMatrixCapacityMismatch
}
