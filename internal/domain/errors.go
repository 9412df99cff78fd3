package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals a missing restaurant.
	ErrNotFound = errors.New("restaurant not found")
	// ErrConflict signals a business identifier collision.
	ErrConflict = errors.New("business id already exists")
	// ErrInvalidInput signals malformed or out-of-range input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidID signals a malformed restaurant identifier.
	ErrInvalidID = errors.New("invalid id format")
	// ErrInternal signals a failure to complete an operation already confirmed possible.
	ErrInternal = errors.New("internal error")
)

// ValidationError carries the full list of violated rules from an
// exhaustive validation pass. It unwraps to ErrInvalidInput.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Violations, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError creates a validation error from collected violations.
func NewValidationError(violations []string) error {
	return &ValidationError{Violations: violations}
}
