// Package restaurant persists restaurant documents as RedisJSON values
// behind an FT index, and owns the business-id uniqueness claims.
package restaurant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/kailas-cloud/restodex/internal/db"
	"github.com/kailas-cloud/restodex/internal/domain"
	domres "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant/patch"
)

const collection = "restaurants"

// store is the consumer interface for restaurant persistence (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string, path string) ([][]byte, error)
	Del(ctx context.Context, key string) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	SetNX(ctx context.Context, key string, value []byte) (bool, error)
	Search(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	SearchGeo(ctx context.Context, q *db.GeoQuery) (*db.GeoResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements the restaurant persistence contracts of the usecases.
type Repo struct {
	store  store
	prefix string
}

// New creates a restaurant repository. An empty keyPrefix falls back to
// the service default.
func New(s store, keyPrefix string) *Repo {
	if keyPrefix == "" {
		keyPrefix = domain.KeyPrefix
	}
	return &Repo{store: s, prefix: keyPrefix}
}

// Insert persists a new restaurant under a fresh identifier after
// claiming its business id. A lost claim means another writer holds the
// business id and surfaces as a conflict. The stored document is read
// back so the caller gets what the store actually holds.
func (r *Repo) Insert(ctx context.Context, rest *domres.Restaurant) (domres.Restaurant, error) {
	id := uuid.NewString()

	claimed, err := r.store.SetNX(ctx, r.claimKey(rest.BusinessID()), []byte(id))
	if err != nil {
		return domres.Restaurant{}, fmt.Errorf("claim business id %d: %w", rest.BusinessID(), err)
	}
	if !claimed {
		return domres.Restaurant{}, domain.ErrConflict
	}

	stored := buildStored(rest)
	ensureCommentIDs(stored)

	data, err := json.Marshal(stored)
	if err != nil {
		return domres.Restaurant{}, fmt.Errorf("marshal restaurant: %w", err)
	}
	if err := r.store.JSONSet(ctx, r.docKey(id), "$", data); err != nil {
		// release the claim so the business id is not orphaned
		_, _ = r.store.Del(ctx, r.claimKey(rest.BusinessID()))
		return domres.Restaurant{}, fmt.Errorf("json.set %s: %w", r.docKey(id), err)
	}

	created, err := r.getByKey(ctx, r.docKey(id))
	if err != nil {
		return domres.Restaurant{}, fmt.Errorf("reread inserted restaurant: %w", err)
	}
	return created, nil
}

// Get returns a restaurant by its storage identifier.
func (r *Repo) Get(ctx context.Context, id string) (domres.Restaurant, error) {
	if uuid.Validate(id) != nil {
		return domres.Restaurant{}, domain.ErrInvalidID
	}
	return r.getByKey(ctx, r.docKey(id))
}

// GetByBusinessID resolves a business id to its document via the claim
// key, then loads the document in one more hop.
func (r *Repo) GetByBusinessID(ctx context.Context, businessID int) (domres.Restaurant, error) {
	idBytes, err := r.store.Get(ctx, r.claimKey(businessID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domres.Restaurant{}, domain.ErrNotFound
		}
		return domres.Restaurant{}, fmt.Errorf("get claim %d: %w", businessID, err)
	}
	return r.getByKey(ctx, r.docKey(string(idBytes)))
}

func (r *Repo) getByKey(ctx context.Context, key string) (domres.Restaurant, error) {
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domres.Restaurant{}, domain.ErrNotFound
		}
		return domres.Restaurant{}, fmt.Errorf("json.get %s: %w", key, err)
	}

	stored, err := decodeStored(raw)
	if err != nil {
		return domres.Restaurant{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return stored.toDomain(r.docID(key)), nil
}

// Patch performs a partial update: JSON.GET, merge supplied fields,
// JSON.SET. A business-id change moves the uniqueness claim first and
// surfaces a taken target id as a conflict.
func (r *Repo) Patch(ctx context.Context, id string, p patch.Patch) error {
	if uuid.Validate(id) != nil {
		return domain.ErrInvalidID
	}
	key := r.docKey(id)

	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("json.get %s: %w", key, err)
	}
	stored, err := decodeStored(raw)
	if err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}

	if next := p.BusinessID(); next != nil && *next != stored.BusinessID {
		claimed, claimErr := r.store.SetNX(ctx, r.claimKey(*next), []byte(id))
		if claimErr != nil {
			return fmt.Errorf("claim business id %d: %w", *next, claimErr)
		}
		if !claimed {
			return domain.ErrConflict
		}
		if _, delErr := r.store.Del(ctx, r.claimKey(stored.BusinessID)); delErr != nil {
			return fmt.Errorf("release claim %d: %w", stored.BusinessID, delErr)
		}
	}

	applyPatch(stored, p)
	ensureCommentIDs(stored)

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal patched restaurant: %w", err)
	}
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// Delete removes a restaurant and releases its business-id claim.
// Returns false when no document was present.
func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	if uuid.Validate(id) != nil {
		return false, domain.ErrInvalidID
	}
	key := r.docKey(id)

	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("json.get %s: %w", key, err)
	}
	stored, err := decodeStored(raw)
	if err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}

	removed, err := r.store.Del(ctx, key)
	if err != nil {
		return false, fmt.Errorf("del %s: %w", key, err)
	}
	if !removed {
		// existence was confirmed above, so a no-op DEL is a storage fault
		return false, fmt.Errorf("del %s removed nothing: %w", key, domain.ErrInternal)
	}
	if _, err := r.store.Del(ctx, r.claimKey(stored.BusinessID)); err != nil {
		return true, fmt.Errorf("release claim %d: %w", stored.BusinessID, err)
	}
	return true, nil
}

// NextBusinessID returns max(business_id)+1, or the first id for an
// empty directory.
func (r *Repo) NextBusinessID(ctx context.Context) (int, error) {
	result, err := r.store.Search(ctx, &db.ListQuery{
		IndexName:    r.indexName(),
		Query:        "*",
		SortBy:       "business_id",
		SortDesc:     true,
		Limit:        1,
		ReturnFields: []string{"business_id"},
	})
	if err != nil {
		return 0, fmt.Errorf("search max business id: %w", err)
	}
	if result.Total == 0 || len(result.Entries) == 0 {
		return domres.FirstBusinessID, nil
	}

	maxID, err := strconv.Atoi(result.Entries[0].Fields["business_id"])
	if err != nil {
		return 0, fmt.Errorf("parse business_id %q: %w", result.Entries[0].Fields["business_id"], err)
	}
	return maxID + 1, nil
}

// BusinessIDExists reports whether a business id is already claimed.
func (r *Repo) BusinessIDExists(ctx context.Context, businessID int) (bool, error) {
	exists, err := r.store.Exists(ctx, r.claimKey(businessID))
	if err != nil {
		return false, fmt.Errorf("check claim %d: %w", businessID, err)
	}
	return exists, nil
}

// Count returns the number of restaurants in the directory.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, r.indexName(), "*")
	if err != nil {
		return 0, fmt.Errorf("search count: %w", err)
	}
	return n, nil
}

// ensureCommentIDs assigns identifiers to comments that lack one.
func ensureCommentIDs(stored *storedRestaurant) {
	for i := range stored.Comments {
		if stored.Comments[i].ID == "" {
			stored.Comments[i].ID = uuid.NewString()
		}
	}
}

func (r *Repo) docKey(id string) string {
	return fmt.Sprintf("%s%s:%s", r.prefix, collection, id)
}

func (r *Repo) docID(key string) string {
	return strings.TrimPrefix(key, fmt.Sprintf("%s%s:", r.prefix, collection))
}

func (r *Repo) indexName() string {
	return fmt.Sprintf("%s%s:idx", r.prefix, collection)
}

func (r *Repo) claimKey(businessID int) string {
	return fmt.Sprintf("%sbizid:%d", r.prefix, businessID)
}
