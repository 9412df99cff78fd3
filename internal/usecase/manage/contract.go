package manage

import (
	"context"

	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant/patch"
)

// Repository defines the write-side storage contract for restaurants.
type Repository interface {
	Insert(ctx context.Context, rest *restaurant.Restaurant) (restaurant.Restaurant, error)
	Get(ctx context.Context, id string) (restaurant.Restaurant, error)
	GetByBusinessID(ctx context.Context, businessID int) (restaurant.Restaurant, error)
	Patch(ctx context.Context, id string, p patch.Patch) error
	Delete(ctx context.Context, id string) (removed bool, err error)
	NextBusinessID(ctx context.Context) (int, error)
	BusinessIDExists(ctx context.Context, businessID int) (bool, error)
}
