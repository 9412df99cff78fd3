// Package manage handles restaurant mutations: create, full and partial
// update, and delete, guarding business-id uniqueness throughout.
package manage

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant/patch"
)

// Service handles restaurant mutations.
type Service struct {
	repo Repository
}

// New creates a manage service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the payload exhaustively, assigns the next business
// id when none is supplied, and persists the restaurant. An explicitly
// supplied business id that is already taken surfaces as a conflict.
func (s *Service) Create(ctx context.Context, in restaurant.Input) (restaurant.Restaurant, error) {
	rest, err := restaurant.New(in)
	if err != nil {
		return restaurant.Restaurant{}, err
	}

	if rest.BusinessID() == 0 {
		next, nextErr := s.repo.NextBusinessID(ctx)
		if nextErr != nil {
			return restaurant.Restaurant{}, fmt.Errorf("next business id: %w", nextErr)
		}
		rest = rest.WithBusinessID(next)
	} else {
		exists, checkErr := s.repo.BusinessIDExists(ctx, rest.BusinessID())
		if checkErr != nil {
			return restaurant.Restaurant{}, fmt.Errorf("check business id: %w", checkErr)
		}
		if exists {
			return restaurant.Restaurant{}, domain.ErrConflict
		}
	}

	created, err := s.repo.Insert(ctx, &rest)
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("insert restaurant: %w", err)
	}
	return created, nil
}

// Get returns a restaurant by its storage identifier.
func (s *Service) Get(ctx context.Context, id string) (restaurant.Restaurant, error) {
	rest, err := s.repo.Get(ctx, id)
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("get restaurant: %w", err)
	}
	return rest, nil
}

// GetByBusinessID returns a restaurant by its business identifier.
func (s *Service) GetByBusinessID(ctx context.Context, businessID int) (restaurant.Restaurant, error) {
	if businessID <= 0 {
		return restaurant.Restaurant{}, fmt.Errorf("business id must be positive: %w", domain.ErrInvalidInput)
	}
	rest, err := s.repo.GetByBusinessID(ctx, businessID)
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("get restaurant by business id: %w", err)
	}
	return rest, nil
}

// Update replaces every mutable field of a restaurant (full update).
// The payload is validated with the same exhaustive rules as create.
// A zero business id keeps the current one.
func (s *Service) Update(ctx context.Context, id string, in restaurant.Input) (restaurant.Restaurant, error) {
	if _, err := restaurant.New(in); err != nil {
		return restaurant.Restaurant{}, err
	}

	var businessID *int
	if in.BusinessID > 0 {
		businessID = &in.BusinessID
	}

	p, err := patch.New(
		&in.Name, &in.Cuisine, &in.Borough, businessID,
		in.Address, &in.Grades, &in.Comments,
	)
	if err != nil {
		return restaurant.Restaurant{}, err
	}

	return s.applyPatch(ctx, id, p)
}

// PartialUpdate applies a structured patch; untouched fields keep their
// values. An empty patch is rejected.
func (s *Service) PartialUpdate(ctx context.Context, id string, p patch.Patch) (restaurant.Restaurant, error) {
	if p.IsEmpty() {
		return restaurant.Restaurant{}, fmt.Errorf("no updatable fields supplied: %w", domain.ErrInvalidInput)
	}
	return s.applyPatch(ctx, id, p)
}

func (s *Service) applyPatch(ctx context.Context, id string, p patch.Patch) (restaurant.Restaurant, error) {
	if err := s.repo.Patch(ctx, id, p); err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("patch restaurant: %w", err)
	}

	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("get patched restaurant: %w", err)
	}
	return updated, nil
}

// Delete removes a restaurant by its storage identifier.
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	if !removed {
		return domain.ErrNotFound
	}
	return nil
}
