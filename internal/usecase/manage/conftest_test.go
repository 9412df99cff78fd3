package manage

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant/patch"
)

const testID = "7d444840-9dc0-11d1-b245-5ffdce74fad2"

type mockRepo struct {
	insertFn   func(ctx context.Context, rest *restaurant.Restaurant) (restaurant.Restaurant, error)
	getFn      func(ctx context.Context, id string) (restaurant.Restaurant, error)
	getByBizFn func(ctx context.Context, businessID int) (restaurant.Restaurant, error)
	patchFn    func(ctx context.Context, id string, p patch.Patch) error
	deleteFn   func(ctx context.Context, id string) (bool, error)
	nextIDFn   func(ctx context.Context) (int, error)
	existsFn   func(ctx context.Context, businessID int) (bool, error)
}

func (m *mockRepo) Insert(ctx context.Context, rest *restaurant.Restaurant) (restaurant.Restaurant, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, rest)
	}
	return *rest, nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (restaurant.Restaurant, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return restaurant.Restaurant{}, nil
}

func (m *mockRepo) GetByBusinessID(ctx context.Context, businessID int) (restaurant.Restaurant, error) {
	if m.getByBizFn != nil {
		return m.getByBizFn(ctx, businessID)
	}
	return restaurant.Restaurant{}, nil
}

func (m *mockRepo) Patch(ctx context.Context, id string, p patch.Patch) error {
	if m.patchFn != nil {
		return m.patchFn(ctx, id, p)
	}
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

func (m *mockRepo) NextBusinessID(ctx context.Context) (int, error) {
	if m.nextIDFn != nil {
		return m.nextIDFn(ctx)
	}
	return restaurant.FirstBusinessID, nil
}

func (m *mockRepo) BusinessIDExists(ctx context.Context, businessID int) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, businessID)
	}
	return false, nil
}

func validInput(businessID int) restaurant.Input {
	score := 12
	return restaurant.Input{
		Name:       "Wilelmina",
		Cuisine:    "Delicatessen",
		Borough:    "Manhattan",
		BusinessID: businessID,
		Address: &restaurant.AddressInput{
			Building: "265",
			Street:   "Broadway",
			Zipcode:  "10007",
			Coord:    []float64{-73.98, 40.73},
		},
		Grades: []restaurant.GradeInput{
			{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Score: &score},
		},
	}
}

func storedRestaurant(t *testing.T, businessID int) restaurant.Restaurant {
	t.Helper()
	rest, err := restaurant.New(validInput(businessID))
	if err != nil {
		t.Fatalf("build restaurant: %v", err)
	}
	return rest
}
