// Package browse answers directory listing and filter queries: full
// scans, text search, attribute filters, average-score ranges, and
// proximity search, all with uniform pagination metadata.
package browse

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/restodex/internal/domain/listing"
	"github.com/kailas-cloud/restodex/internal/domain/query"
)

// Stats summarizes the directory.
type Stats struct {
	TotalRestaurants int
}

// Service handles read-side directory queries.
type Service struct {
	repo Repository
}

// New creates a browse service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns a page of the full directory.
func (s *Service) List(ctx context.Context, sort query.Sort, page query.Page) ([]listing.Entry, query.Meta, error) {
	entries, total, err := s.repo.List(ctx, sort, page)
	if err != nil {
		return nil, query.Meta{}, fmt.Errorf("list restaurants: %w", err)
	}
	return entries, query.NewMeta(page, total), nil
}

// Search returns restaurants whose name or cuisine contains the query
// substring.
func (s *Service) Search(ctx context.Context, t query.Text, sort query.Sort, page query.Page) ([]listing.Entry, query.Meta, error) {
	entries, total, err := s.repo.SearchText(ctx, t, sort, page)
	if err != nil {
		return nil, query.Meta{}, fmt.Errorf("search restaurants: %w", err)
	}
	return entries, query.NewMeta(page, total), nil
}

// Filter returns restaurants matching cuisine and/or borough substrings.
func (s *Service) Filter(ctx context.Context, a query.Attribute, sort query.Sort, page query.Page) ([]listing.Entry, query.Meta, error) {
	entries, total, err := s.repo.FilterAttributes(ctx, a, sort, page)
	if err != nil {
		return nil, query.Meta{}, fmt.Errorf("filter restaurants: %w", err)
	}
	return entries, query.NewMeta(page, total), nil
}

// ScoreRange returns restaurants whose average grade score falls in the
// requested range, ordered by ascending average.
func (s *Service) ScoreRange(ctx context.Context, rng query.ScoreRange, page query.Page) ([]listing.Entry, query.Meta, error) {
	entries, total, err := s.repo.AverageScoreInRange(ctx, rng, page)
	if err != nil {
		return nil, query.Meta{}, fmt.Errorf("score range: %w", err)
	}
	return entries, query.NewMeta(page, total), nil
}

// Nearby returns restaurants within a radius of the anchor point,
// ordered by ascending distance.
func (s *Service) Nearby(ctx context.Context, n query.Nearby, page query.Page) ([]listing.Entry, query.Meta, error) {
	entries, total, err := s.repo.Nearby(ctx, n, page)
	if err != nil {
		return nil, query.Meta{}, fmt.Errorf("nearby restaurants: %w", err)
	}
	return entries, query.NewMeta(page, total), nil
}

// Stats returns directory-level counters.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count restaurants: %w", err)
	}
	return Stats{TotalRestaurants: total}, nil
}
