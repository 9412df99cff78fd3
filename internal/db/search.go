package db

import "fmt"

// ListQuery is the input for a filtered, sorted, paged FT.SEARCH scan.
type ListQuery struct {
	IndexName    string
	Query        string // FT query string; "*" matches everything
	SortBy       string // empty = storage natural order
	SortDesc     bool
	Offset       int
	Limit        int
	ReturnFields []string
}

// GeoQuery is the input for a radius-bounded proximity scan ordered by
// ascending distance (FT.AGGREGATE with geodistance).
type GeoQuery struct {
	IndexName    string
	GeoField     string
	Lon          float64
	Lat          float64
	RadiusMeters int
	Offset       int
	Limit        int
}

// Filter returns the FT geo predicate "@field:[lon lat radius m]" for
// this query. Usable both for the aggregate scan and for a plain count
// over the same distance bound.
func (q *GeoQuery) Filter() string {
	return fmt.Sprintf("@%s:[%g %g %d m]", q.GeoField, q.Lon, q.Lat, q.RadiusMeters)
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}

// GeoResult is the output of a proximity scan. Total counts every
// document within the distance bound, not just the returned page.
type GeoResult struct {
	Total   int
	Entries []GeoEntry
}

// GeoEntry is a single proximity hit with its distance from the anchor.
type GeoEntry struct {
	Key            string
	DistanceMeters float64
}
