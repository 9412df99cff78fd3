package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/restodex/internal/domain"
)

// DefaultSortField orders results when no sort is requested.
const DefaultSortField = "name"

// Sort is a normalized sort key and direction.
type Sort struct {
	field string
	desc  bool
}

// NewSort normalizes a raw sort field and order. An absent field falls
// back to the default (name ascending); a supplied-but-blank field is
// rejected. Order accepts asc/desc in any case, defaulting to asc.
// Field names are not checked against a whitelist: unknown fields degrade
// to no-op ordering at the storage layer.
func NewSort(fieldRaw, orderRaw string) (Sort, error) {
	field := strings.TrimSpace(fieldRaw)
	if field == "" {
		if fieldRaw != "" {
			return Sort{}, fmt.Errorf("sort field must not be blank: %w", domain.ErrInvalidInput)
		}
		field = DefaultSortField
	}

	switch strings.ToLower(strings.TrimSpace(orderRaw)) {
	case "", "asc":
		return Sort{field: field}, nil
	case "desc":
		return Sort{field: field, desc: true}, nil
	default:
		return Sort{}, fmt.Errorf("sort order must be asc or desc, got %q: %w", orderRaw, domain.ErrInvalidInput)
	}
}

// DefaultSort returns the implicit name-ascending ordering.
func DefaultSort() Sort {
	return Sort{field: DefaultSortField}
}

// Field returns the sort field name.
func (s Sort) Field() string { return s.field }

// Desc reports whether the ordering is descending.
func (s Sort) Desc() bool { return s.desc }
