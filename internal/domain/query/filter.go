package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/geo"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// DefaultRadiusMeters bounds a proximity search when no radius is supplied.
const DefaultRadiusMeters = 5000

// Text matches restaurants whose name OR cuisine contains the query
// substring, case-insensitively.
type Text struct {
	query string
}

// NewText validates a raw text-search query. The query is mandatory.
func NewText(raw string) (Text, error) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return Text{}, fmt.Errorf("search query is required: %w", domain.ErrInvalidInput)
	}
	return Text{query: q}, nil
}

// Query returns the search substring.
func (t Text) Query() string { return t.query }

// Attribute matches on cuisine and/or borough substrings, case-insensitively.
// Both set means conjunction.
type Attribute struct {
	cuisine string
	borough string
}

// NewCuisine validates a cuisine-only filter.
func NewCuisine(raw string) (Attribute, error) {
	c := strings.TrimSpace(raw)
	if c == "" {
		return Attribute{}, fmt.Errorf("cuisine is required: %w", domain.ErrInvalidInput)
	}
	return Attribute{cuisine: c}, nil
}

// NewBorough validates a borough-only filter.
func NewBorough(raw string) (Attribute, error) {
	b := strings.TrimSpace(raw)
	if b == "" {
		return Attribute{}, fmt.Errorf("borough is required: %w", domain.ErrInvalidInput)
	}
	return Attribute{borough: b}, nil
}

// NewCuisineBorough validates a compound cuisine+borough filter.
func NewCuisineBorough(cuisineRaw, boroughRaw string) (Attribute, error) {
	c, err := NewCuisine(cuisineRaw)
	if err != nil {
		return Attribute{}, err
	}
	b, err := NewBorough(boroughRaw)
	if err != nil {
		return Attribute{}, err
	}
	return Attribute{cuisine: c.cuisine, borough: b.borough}, nil
}

// Cuisine returns the cuisine substring, empty when not filtered.
func (a Attribute) Cuisine() string { return a.cuisine }

// Borough returns the borough substring, empty when not filtered.
func (a Attribute) Borough() string { return a.borough }

// ScoreRange matches restaurants whose average grade score falls in
// [Min, Max]. Restaurants without grades have no average and never match.
type ScoreRange struct {
	min float64
	max float64
}

// NewScoreRange normalizes raw min/max bounds. Empty values default to
// the full [0, 30] range; min is clamped to >= 0 and max to <= 30.
// A range with min > max after clamping is rejected.
func NewScoreRange(minRaw, maxRaw string) (ScoreRange, error) {
	minScore, err := parseScore(minRaw, restaurant.MinScore)
	if err != nil {
		return ScoreRange{}, err
	}
	maxScore, err := parseScore(maxRaw, restaurant.MaxScore)
	if err != nil {
		return ScoreRange{}, err
	}

	if minScore < restaurant.MinScore {
		minScore = restaurant.MinScore
	}
	if maxScore > restaurant.MaxScore {
		maxScore = restaurant.MaxScore
	}
	if minScore > maxScore {
		return ScoreRange{}, fmt.Errorf(
			"minScore %g must not exceed maxScore %g: %w", minScore, maxScore, domain.ErrInvalidInput)
	}

	return ScoreRange{min: minScore, max: maxScore}, nil
}

func parseScore(raw string, fallback float64) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("score bound %q is not numeric: %w", raw, domain.ErrInvalidInput)
	}
	return v, nil
}

// Min returns the inclusive lower bound.
func (s ScoreRange) Min() float64 { return s.min }

// Max returns the inclusive upper bound.
func (s ScoreRange) Max() float64 { return s.max }

// Nearby is a proximity search anchored at a coordinate with a radius bound.
type Nearby struct {
	lon          float64
	lat          float64
	radiusMeters int
}

// NewNearby validates raw longitude/latitude/radius parameters.
// Coordinates must be numeric and in range; the radius is coerced to an
// integer >= 1, defaulting to DefaultRadiusMeters.
func NewNearby(lngRaw, latRaw, radiusRaw string) (Nearby, error) {
	lon, err := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if err != nil {
		return Nearby{}, fmt.Errorf("longitude %q is not numeric: %w", lngRaw, domain.ErrInvalidInput)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return Nearby{}, fmt.Errorf("latitude %q is not numeric: %w", latRaw, domain.ErrInvalidInput)
	}
	if !geo.ValidateCoordinate(lon, lat) {
		return Nearby{}, fmt.Errorf(
			"coordinate out of range: lng=%g lat=%g: %w", lon, lat, domain.ErrInvalidInput)
	}

	radius := DefaultRadiusMeters
	if strings.TrimSpace(radiusRaw) != "" {
		if n, parseErr := strconv.Atoi(strings.TrimSpace(radiusRaw)); parseErr == nil {
			radius = n
		}
	}
	if radius < 1 {
		radius = 1
	}

	return Nearby{lon: lon, lat: lat, radiusMeters: radius}, nil
}

// Lon returns the anchor longitude.
func (n Nearby) Lon() float64 { return n.lon }

// Lat returns the anchor latitude.
func (n Nearby) Lat() float64 { return n.lat }

// RadiusMeters returns the distance bound in meters.
func (n Nearby) RadiusMeters() int { return n.radiusMeters }
