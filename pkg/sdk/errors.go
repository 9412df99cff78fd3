package restodex

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the API error kinds. Use errors.Is() to check.
var (
	ErrNotFound     = errors.New("restodex: not found")
	ErrConflict     = errors.New("restodex: conflict")
	ErrInvalidInput = errors.New("restodex: invalid input")
	ErrInternal     = errors.New("restodex: internal error")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Violations []string
}

func (e *APIError) Error() string {
	if len(e.Violations) > 0 {
		return fmt.Sprintf("restodex: %s (%d): %s", e.Code, e.StatusCode, strings.Join(e.Violations, "; "))
	}
	return fmt.Sprintf("restodex: %s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// Unwrap maps the error to its sentinel kind.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 400:
		return ErrInvalidInput
	case 404:
		return ErrNotFound
	case 409:
		return ErrConflict
	default:
		return ErrInternal
	}
}
