package browse

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/restodex/internal/domain/listing"
	"github.com/kailas-cloud/restodex/internal/domain/query"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

type mockRepo struct {
	listFn   func(ctx context.Context, sort query.Sort, page query.Page) ([]listing.Entry, int, error)
	searchFn func(ctx context.Context, t query.Text, sort query.Sort, page query.Page) ([]listing.Entry, int, error)
	filterFn func(ctx context.Context, a query.Attribute, sort query.Sort, page query.Page) ([]listing.Entry, int, error)
	scoreFn  func(ctx context.Context, rng query.ScoreRange, page query.Page) ([]listing.Entry, int, error)
	nearbyFn func(ctx context.Context, n query.Nearby, page query.Page) ([]listing.Entry, int, error)
	countFn  func(ctx context.Context) (int, error)
}

func (m *mockRepo) List(ctx context.Context, sort query.Sort, page query.Page) ([]listing.Entry, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, sort, page)
	}
	return nil, 0, nil
}

func (m *mockRepo) SearchText(ctx context.Context, t query.Text, sort query.Sort, page query.Page) ([]listing.Entry, int, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, t, sort, page)
	}
	return nil, 0, nil
}

func (m *mockRepo) FilterAttributes(ctx context.Context, a query.Attribute, sort query.Sort, page query.Page) ([]listing.Entry, int, error) {
	if m.filterFn != nil {
		return m.filterFn(ctx, a, sort, page)
	}
	return nil, 0, nil
}

func (m *mockRepo) AverageScoreInRange(ctx context.Context, rng query.ScoreRange, page query.Page) ([]listing.Entry, int, error) {
	if m.scoreFn != nil {
		return m.scoreFn(ctx, rng, page)
	}
	return nil, 0, nil
}

func (m *mockRepo) Nearby(ctx context.Context, n query.Nearby, page query.Page) ([]listing.Entry, int, error) {
	if m.nearbyFn != nil {
		return m.nearbyFn(ctx, n, page)
	}
	return nil, 0, nil
}

func (m *mockRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func testEntry(t *testing.T, name string) listing.Entry {
	t.Helper()
	score := 7
	rest, err := restaurant.New(restaurant.Input{
		Name:       name,
		Cuisine:    "Delicatessen",
		Borough:    "Manhattan",
		BusinessID: 1000,
		Address: &restaurant.AddressInput{
			Building: "265",
			Street:   "Broadway",
			Zipcode:  "10007",
			Coord:    []float64{-73.98, 40.73},
		},
		Grades: []restaurant.GradeInput{
			{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Score: &score},
		},
	})
	if err != nil {
		t.Fatalf("build restaurant: %v", err)
	}
	return listing.New(rest)
}
