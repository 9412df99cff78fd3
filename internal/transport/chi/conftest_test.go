package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/domain/listing"
	"github.com/kailas-cloud/restodex/internal/domain/query"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant/patch"
	browseuc "github.com/kailas-cloud/restodex/internal/usecase/browse"
	healthuc "github.com/kailas-cloud/restodex/internal/usecase/health"
	manageuc "github.com/kailas-cloud/restodex/internal/usecase/manage"
)

const testID = "7d444840-9dc0-11d1-b245-5ffdce74fad2"

type mockBrowseRepo struct {
	listFn   func(ctx context.Context, sort query.Sort, page query.Page) ([]listing.Entry, int, error)
	searchFn func(ctx context.Context, t query.Text, sort query.Sort, page query.Page) ([]listing.Entry, int, error)
	filterFn func(ctx context.Context, a query.Attribute, sort query.Sort, page query.Page) ([]listing.Entry, int, error)
	scoreFn  func(ctx context.Context, rng query.ScoreRange, page query.Page) ([]listing.Entry, int, error)
	nearbyFn func(ctx context.Context, n query.Nearby, page query.Page) ([]listing.Entry, int, error)
	countFn  func(ctx context.Context) (int, error)
}

func (m *mockBrowseRepo) List(ctx context.Context, sort query.Sort, page query.Page) ([]listing.Entry, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, sort, page)
	}
	return nil, 0, nil
}

func (m *mockBrowseRepo) SearchText(ctx context.Context, t query.Text, sort query.Sort, page query.Page) ([]listing.Entry, int, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, t, sort, page)
	}
	return nil, 0, nil
}

func (m *mockBrowseRepo) FilterAttributes(ctx context.Context, a query.Attribute, sort query.Sort, page query.Page) ([]listing.Entry, int, error) {
	if m.filterFn != nil {
		return m.filterFn(ctx, a, sort, page)
	}
	return nil, 0, nil
}

func (m *mockBrowseRepo) AverageScoreInRange(ctx context.Context, rng query.ScoreRange, page query.Page) ([]listing.Entry, int, error) {
	if m.scoreFn != nil {
		return m.scoreFn(ctx, rng, page)
	}
	return nil, 0, nil
}

func (m *mockBrowseRepo) Nearby(ctx context.Context, n query.Nearby, page query.Page) ([]listing.Entry, int, error) {
	if m.nearbyFn != nil {
		return m.nearbyFn(ctx, n, page)
	}
	return nil, 0, nil
}

func (m *mockBrowseRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockManageRepo struct {
	insertFn   func(ctx context.Context, rest *restaurant.Restaurant) (restaurant.Restaurant, error)
	getFn      func(ctx context.Context, id string) (restaurant.Restaurant, error)
	getByBizFn func(ctx context.Context, businessID int) (restaurant.Restaurant, error)
	patchFn    func(ctx context.Context, id string, p patch.Patch) error
	deleteFn   func(ctx context.Context, id string) (bool, error)
	nextIDFn   func(ctx context.Context) (int, error)
	existsFn   func(ctx context.Context, businessID int) (bool, error)
}

func (m *mockManageRepo) Insert(ctx context.Context, rest *restaurant.Restaurant) (restaurant.Restaurant, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, rest)
	}
	return *rest, nil
}

func (m *mockManageRepo) Get(ctx context.Context, id string) (restaurant.Restaurant, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return restaurant.Restaurant{}, nil
}

func (m *mockManageRepo) GetByBusinessID(ctx context.Context, businessID int) (restaurant.Restaurant, error) {
	if m.getByBizFn != nil {
		return m.getByBizFn(ctx, businessID)
	}
	return restaurant.Restaurant{}, nil
}

func (m *mockManageRepo) Patch(ctx context.Context, id string, p patch.Patch) error {
	if m.patchFn != nil {
		return m.patchFn(ctx, id, p)
	}
	return nil
}

func (m *mockManageRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

func (m *mockManageRepo) NextBusinessID(ctx context.Context) (int, error) {
	if m.nextIDFn != nil {
		return m.nextIDFn(ctx)
	}
	return restaurant.FirstBusinessID, nil
}

func (m *mockManageRepo) BusinessIDExists(ctx context.Context, businessID int) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, businessID)
	}
	return false, nil
}

type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

type testServer struct {
	browse *mockBrowseRepo
	manage *mockManageRepo
	pinger *mockPinger
	router chi.Router
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		browse: &mockBrowseRepo{},
		manage: &mockManageRepo{},
		pinger: &mockPinger{},
	}
	srv := NewServer(
		browseuc.New(ts.browse),
		manageuc.New(ts.manage),
		healthuc.New(ts.pinger),
		zap.NewNop(),
	)
	ts.router = chi.NewRouter()
	srv.Routes(ts.router)
	return ts
}

func (ts *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func storedRestaurant(t *testing.T, businessID int) restaurant.Restaurant {
	t.Helper()
	score := 12
	rest, err := restaurant.New(restaurant.Input{
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
	})
	if err != nil {
		t.Fatalf("build restaurant: %v", err)
	}
	return rest
}
