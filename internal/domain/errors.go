package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks client input that was rejected before any state changed.
	ErrValidation = errors.New("validation failed")

	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when data read during validation disappeared
	// before the write transaction could use it.
	ErrConflict = errors.New("conflict")

	// ErrConcurrentTransition is returned when the order status changed between
	// the read and the compare-and-set write.
	ErrConcurrentTransition = errors.New("concurrent status transition")

	ErrIllegalTransition = errors.New("illegal status transition")
)

// ValidationErrorf builds an error matching ErrValidation.
func ValidationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
