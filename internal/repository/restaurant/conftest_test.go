package restaurant

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/kailas-cloud/restodex/internal/db"
	domres "github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetFn      func(ctx context.Context, key, path string, data []byte) error
	jsonGetFn      func(ctx context.Context, key string, paths ...string) ([]byte, error)
	jsonGetMultiFn func(ctx context.Context, keys []string, path string) ([][]byte, error)
	delFn          func(ctx context.Context, key string) (bool, error)
	existsFn       func(ctx context.Context, key string) (bool, error)
	getFn          func(ctx context.Context, key string) ([]byte, error)
	setNXFn        func(ctx context.Context, key string, value []byte) (bool, error)
	searchFn       func(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	searchCountFn  func(ctx context.Context, index, query string) (int, error)
	searchGeoFn    func(ctx context.Context, q *db.GeoQuery) (*db.GeoResult, error)
	createIndexFn  func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn  func(ctx context.Context, name string) (bool, error)
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetFn != nil {
		return m.jsonSetFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) JSONGetMulti(ctx context.Context, keys []string, path string) ([][]byte, error) {
	if m.jsonGetMultiFn != nil {
		return m.jsonGetMultiFn(ctx, keys, path)
	}
	return nil, nil
}

func (m *mockStore) Del(ctx context.Context, key string) (bool, error) {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetNX(ctx context.Context, key string, value []byte) (bool, error) {
	if m.setNXFn != nil {
		return m.setNXFn(ctx, key, value)
	}
	return true, nil
}

func (m *mockStore) Search(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchCount(ctx context.Context, index, query string) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, index, query)
	}
	return 0, nil
}

func (m *mockStore) SearchGeo(ctx context.Context, q *db.GeoQuery) (*db.GeoResult, error) {
	if m.searchGeoFn != nil {
		return m.searchGeoFn(ctx, q)
	}
	return &db.GeoResult{}, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, "")
	return repo, ms
}

// testID is a syntactically valid storage identifier.
const testID = "7d444840-9dc0-11d1-b245-5ffdce74fad2"

func testRestaurant(t *testing.T) domres.Restaurant {
	t.Helper()
	score := 12
	r, err := domres.New(domres.Input{
		Name:       "Wilelmina",
		Cuisine:    "Delicatessen",
		Borough:    "Manhattan",
		BusinessID: 1000,
		Address: &domres.AddressInput{
			Building: "522",
			Street:   "East 20 Street",
			Zipcode:  "10009",
			Coord:    []float64{-73.98, 40.73},
		},
		Grades: []domres.GradeInput{
			{Date: time.Date(2014, 3, 1, 0, 0, 0, 0, time.UTC), Score: &score},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error building restaurant: %v", err)
	}
	return r
}

// storedDoc builds a persisted JSON fixture in the JSON.GET "$" shape.
func storedDoc(businessID int, name, cuisine, borough string, scores ...int) string {
	doc := `{"business_id":` + strconv.Itoa(businessID) +
		`,"name":"` + name + `","cuisine":"` + cuisine + `","borough":"` + borough +
		`","address":{"building":"522","street":"East 20 Street","zipcode":"10009","coord":[-73.98,40.73]}` +
		`,"location":"-73.98,40.73","grades":[` + gradesJSON(scores) + `],"comments":[]}`
	return `[` + doc + `]`
}

func gradesJSON(scores []int) string {
	out := ""
	for i, s := range scores {
		if i > 0 {
			out += ","
		}
		out += `{"date":"2014-03-01T00:00:00Z","score":` + strconv.Itoa(s) + `}`
	}
	return out
}
