// Package query holds the pure normalization of raw filter, sort, and
// pagination parameters into validated query specifications. No I/O.
package query

import "strconv"

const (
	// DefaultPage is the page number used when none is supplied.
	DefaultPage = 1
	// DefaultLimit is the page size used when none is supplied.
	DefaultLimit = 20
	// MaxLimit bounds the page size.
	MaxLimit = 100
)

// Page is a normalized pagination window.
type Page struct {
	number int
	limit  int
}

// NewPage coerces raw page/limit parameters into a valid window.
// Page is coerced to an integer >= 1; limit is clamped to [1, MaxLimit].
// Unparseable values fall back to the defaults.
func NewPage(pageRaw, limitRaw string) Page {
	number := DefaultPage
	if n, err := strconv.Atoi(pageRaw); err == nil && n >= 1 {
		number = n
	}

	limit := DefaultLimit
	if n, err := strconv.Atoi(limitRaw); err == nil {
		switch {
		case n < 1:
			limit = 1
		case n > MaxLimit:
			limit = MaxLimit
		default:
			limit = n
		}
	}

	return Page{number: number, limit: limit}
}

// Number returns the 1-based page number.
func (p Page) Number() int { return p.number }

// Limit returns the page size.
func (p Page) Limit() int { return p.limit }

// Offset returns the skip offset: (page-1) * limit.
func (p Page) Offset() int { return (p.number - 1) * p.limit }

// Meta is the pagination metadata attached to every collection result.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewMeta computes pagination metadata for a total match count.
func NewMeta(p Page, total int) Meta {
	totalPages := (total + p.limit - 1) / p.limit
	return Meta{
		Page:       p.number,
		Limit:      p.limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    p.number < totalPages,
		HasPrev:    p.number > 1,
	}
}
