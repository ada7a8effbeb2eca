package generator

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two failure classes of a run
var (
	// ErrValidation matches any *ValidationError
	ErrValidation = errors.New("validation failed")

	// ErrIO matches any *IOError
	ErrIO = errors.New("io failure")
)

// ValidationError reports bad configuration such as a non-positive count or an empty id range.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IOError reports a failed filesystem or upload operation on Path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func validateCount(field string, count int) error {
	if count <= 0 {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be positive, got %d", count)}
	}
	return nil
}
