package browse

import (
	"context"

	"github.com/kailas-cloud/restodex/internal/domain/listing"
	"github.com/kailas-cloud/restodex/internal/domain/query"
)

// Repository defines the read-side storage contract for listings.
type Repository interface {
	List(ctx context.Context, s query.Sort, page query.Page) ([]listing.Entry, int, error)
	SearchText(ctx context.Context, t query.Text, s query.Sort, page query.Page) ([]listing.Entry, int, error)
	FilterAttributes(ctx context.Context, a query.Attribute, s query.Sort, page query.Page) ([]listing.Entry, int, error)
	AverageScoreInRange(ctx context.Context, rng query.ScoreRange, page query.Page) ([]listing.Entry, int, error)
	Nearby(ctx context.Context, n query.Nearby, page query.Page) ([]listing.Entry, int, error)
	Count(ctx context.Context) (int, error)
}
