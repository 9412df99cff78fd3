// Package patch defines the structured partial-update payload for a
// restaurant: every mutable attribute is an explicit optional field, so
// the partial-update contract is statically enumerable.
package patch

import (
	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// Patch holds the fields supplied by an update. Nil means untouched.
// The storage identifier is never part of a patch.
type Patch struct {
	name       *string
	cuisine    *string
	borough    *string
	businessID *int
	address    *restaurant.AddressInput
	grades     *[]restaurant.GradeInput
	comments   *[]restaurant.CommentInput
}

// New validates the supplied fields and creates a Patch.
// Supplied scalar fields must be non-empty; a supplied address is
// revalidated with the same structural rule as create. All violations
// are collected into a single error.
func New(
	name, cuisine, borough *string, businessID *int,
	address *restaurant.AddressInput,
	grades *[]restaurant.GradeInput,
	comments *[]restaurant.CommentInput,
) (Patch, error) {
	var violations []string

	if name != nil && *name == "" {
		violations = append(violations, "name must be a non-empty string")
	}
	if cuisine != nil && *cuisine == "" {
		violations = append(violations, "cuisine must be a non-empty string")
	}
	if borough != nil && *borough == "" {
		violations = append(violations, "borough must be a non-empty string")
	}
	if businessID != nil && *businessID <= 0 {
		violations = append(violations, "businessId must be a positive integer")
	}
	if address != nil {
		violations = append(violations, restaurant.ValidateAddress(address)...)
	}
	if grades != nil {
		violations = append(violations, restaurant.ValidateGrades(*grades)...)
	}
	if comments != nil {
		violations = append(violations, restaurant.ValidateComments(*comments)...)
	}

	if len(violations) > 0 {
		return Patch{}, domain.NewValidationError(violations)
	}

	return Patch{
		name: name, cuisine: cuisine, borough: borough,
		businessID: businessID, address: address,
		grades: grades, comments: comments,
	}, nil
}

// Name returns the new name, or nil.
func (p Patch) Name() *string { return p.name }

// Cuisine returns the new cuisine, or nil.
func (p Patch) Cuisine() *string { return p.cuisine }

// Borough returns the new borough, or nil.
func (p Patch) Borough() *string { return p.borough }

// BusinessID returns the new business identifier, or nil.
func (p Patch) BusinessID() *int { return p.businessID }

// Address returns the new address, or nil.
func (p Patch) Address() *restaurant.AddressInput { return p.address }

// Grades returns the replacement grade sequence, or nil.
func (p Patch) Grades() *[]restaurant.GradeInput { return p.grades }

// Comments returns the replacement comment sequence, or nil.
func (p Patch) Comments() *[]restaurant.CommentInput { return p.comments }

// IsEmpty reports whether the patch touches nothing.
func (p Patch) IsEmpty() bool {
	return p.name == nil && p.cuisine == nil && p.borough == nil &&
		p.businessID == nil && p.address == nil && p.grades == nil && p.comments == nil
}
