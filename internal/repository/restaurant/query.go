package restaurant

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kailas-cloud/restodex/internal/db"
	"github.com/kailas-cloud/restodex/internal/domain/geo"
	"github.com/kailas-cloud/restodex/internal/domain/listing"
	"github.com/kailas-cloud/restodex/internal/domain/query"
	domres "github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// geoField is the index alias of the restaurant coordinate.
const geoField = "location"

// scoreScanChunk bounds a single fetch while scanning graded restaurants.
const scoreScanChunk = 100

// gradePresence matches every restaurant with at least one recorded
// grade; the average is undefined for the rest.
const gradePresence = "@grade_score:[-inf +inf]"

// sortAliases maps requested sort fields to sortable index aliases.
// Unknown fields degrade to storage natural order.
var sortAliases = map[string]string{
	"name":        "name",
	"cuisine":     "cuisine",
	"borough":     "borough",
	"businessId":  "business_id",
	"business_id": "business_id",
}

// List returns a page of the full directory.
func (r *Repo) List(ctx context.Context, s query.Sort, page query.Page) ([]listing.Entry, int, error) {
	return r.matching(ctx, "*", s, page)
}

// SearchText returns restaurants whose name or cuisine contains the
// query substring, case-insensitively.
func (r *Repo) SearchText(ctx context.Context, t query.Text, s query.Sort, page query.Page) ([]listing.Entry, int, error) {
	q := fmt.Sprintf("(%s | %s)",
		wildcardContains("name", t.Query()),
		wildcardContains("cuisine", t.Query()),
	)
	return r.matching(ctx, q, s, page)
}

// FilterAttributes returns restaurants matching cuisine and/or borough
// substrings; both present means conjunction.
func (r *Repo) FilterAttributes(ctx context.Context, a query.Attribute, s query.Sort, page query.Page) ([]listing.Entry, int, error) {
	var parts []string
	if a.Cuisine() != "" {
		parts = append(parts, wildcardContains("cuisine", a.Cuisine()))
	}
	if a.Borough() != "" {
		parts = append(parts, wildcardContains("borough", a.Borough()))
	}
	if len(parts) == 0 {
		return r.matching(ctx, "*", s, page)
	}
	return r.matching(ctx, strings.Join(parts, " "), s, page)
}

// matching runs a filter query with sorting and pagination, hydrating
// full documents from the index in one round trip.
func (r *Repo) matching(ctx context.Context, ftQuery string, s query.Sort, page query.Page) ([]listing.Entry, int, error) {
	result, err := r.store.Search(ctx, &db.ListQuery{
		IndexName:    r.indexName(),
		Query:        ftQuery,
		SortBy:       sortAliases[s.Field()],
		SortDesc:     s.Desc(),
		Offset:       page.Offset(),
		Limit:        page.Limit(),
		ReturnFields: []string{"$"},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("search restaurants: %w", err)
	}

	entries := make([]listing.Entry, 0, len(result.Entries))
	for _, e := range result.Entries {
		stored, decodeErr := decodeStored([]byte(e.Fields["$"]))
		if decodeErr != nil {
			continue
		}
		entries = append(entries, annotate(stored.toDomain(r.docID(e.Key))))
	}
	return entries, result.Total, nil
}

// AverageScoreInRange returns restaurants whose average grade score
// falls in the requested range, ordered by ascending average.
//
// The index cannot aggregate over the nested grades array, so graded
// candidates are scanned in chunks and the average is computed here.
// Restaurants without grades never enter the scan.
func (r *Repo) AverageScoreInRange(ctx context.Context, rng query.ScoreRange, page query.Page) ([]listing.Entry, int, error) {
	type scored struct {
		entry      listing.Entry
		avg        float64
		businessID int
	}
	var matched []scored

	for offset := 0; ; offset += scoreScanChunk {
		result, err := r.store.Search(ctx, &db.ListQuery{
			IndexName:    r.indexName(),
			Query:        gradePresence,
			SortBy:       "business_id",
			Offset:       offset,
			Limit:        scoreScanChunk,
			ReturnFields: []string{"$"},
		})
		if err != nil {
			return nil, 0, fmt.Errorf("scan graded restaurants: %w", err)
		}

		for _, e := range result.Entries {
			stored, decodeErr := decodeStored([]byte(e.Fields["$"]))
			if decodeErr != nil {
				continue
			}
			rest := stored.toDomain(r.docID(e.Key))
			avg, ok := rest.AverageScore()
			if !ok || avg < rng.Min() || avg > rng.Max() {
				continue
			}
			matched = append(matched, scored{
				entry:      listing.New(rest).WithAverageScore(geo.RoundScore(avg)),
				avg:        avg,
				businessID: rest.BusinessID(),
			})
		}

		if offset+scoreScanChunk >= result.Total {
			break
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].avg != matched[j].avg {
			return matched[i].avg < matched[j].avg
		}
		return matched[i].businessID < matched[j].businessID
	})

	total := len(matched)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit()
	if end > total {
		end = total
	}

	entries := make([]listing.Entry, 0, end-start)
	for _, m := range matched[start:end] {
		entries = append(entries, m.entry)
	}
	return entries, total, nil
}

// Nearby returns restaurants within the radius of the anchor point,
// ordered by ascending distance. The page scan and the total count run
// concurrently against the same distance bound.
func (r *Repo) Nearby(ctx context.Context, n query.Nearby, page query.Page) ([]listing.Entry, int, error) {
	geoQuery := &db.GeoQuery{
		IndexName:    r.indexName(),
		GeoField:     geoField,
		Lon:          n.Lon(),
		Lat:          n.Lat(),
		RadiusMeters: n.RadiusMeters(),
		Offset:       page.Offset(),
		Limit:        page.Limit(),
	}

	var wg sync.WaitGroup
	var geoRes *db.GeoResult
	var total int
	var scanErr, countErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		geoRes, scanErr = r.store.SearchGeo(ctx, geoQuery)
	}()
	go func() {
		defer wg.Done()
		total, countErr = r.store.SearchCount(ctx, r.indexName(), geoQuery.Filter())
	}()
	wg.Wait()

	if scanErr != nil {
		return nil, 0, fmt.Errorf("search nearby: %w", scanErr)
	}
	if countErr != nil {
		return nil, 0, fmt.Errorf("count nearby: %w", countErr)
	}

	keys := make([]string, len(geoRes.Entries))
	for i, e := range geoRes.Entries {
		keys[i] = e.Key
	}
	docs, err := r.store.JSONGetMulti(ctx, keys, "$")
	if err != nil {
		return nil, 0, fmt.Errorf("hydrate nearby: %w", err)
	}

	entries := make([]listing.Entry, 0, len(docs))
	for i, raw := range docs {
		if raw == nil {
			continue
		}
		stored, decodeErr := decodeStored(raw)
		if decodeErr != nil {
			continue
		}
		entry := annotate(stored.toDomain(r.docID(keys[i])))
		entries = append(entries, entry.WithDistanceKm(geo.MetersToKilometers(geoRes.Entries[i].DistanceMeters)))
	}
	return entries, total, nil
}

// wildcardContains builds a case-insensitive infix match on a TEXT field.
// The index tokenizes field values on whitespace, so a multi-word needle
// must become a conjunction of per-token patterns; a single pattern with
// a space in it can never equal an indexed term. Indexed terms are
// lowercased, so the needle is lowercased to keep matching
// case-insensitive. Wildcard syntax needs query dialect 2 and
// WITHSUFFIXTRIE on the field.
func wildcardContains(field, term string) string {
	tokens := strings.Fields(strings.ToLower(term))
	patterns := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		patterns = append(patterns, fmt.Sprintf("w'*%s*'", escapeWildcard(tok)))
	}
	return fmt.Sprintf("@%s:(%s)", field, strings.Join(patterns, " "))
}

// escapeWildcard escapes characters that terminate or alter a w'' pattern.
func escapeWildcard(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\'', '\\', '*', '?':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// annotate shapes a restaurant into a listing entry, attaching the
// average score when it is defined.
func annotate(rest domres.Restaurant) listing.Entry {
	entry := listing.New(rest)
	if avg, ok := rest.AverageScore(); ok {
		entry = entry.WithAverageScore(geo.RoundScore(avg))
	}
	return entry
}
