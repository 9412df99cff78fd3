// Package listing holds the shaped query result entry: a restaurant plus
// the derived fields a query may attach (average score, distance).
package listing

import "github.com/kailas-cloud/restodex/internal/domain/restaurant"

// Entry is a single shaped result.
type Entry struct {
	rest         restaurant.Restaurant
	averageScore *float64
	distanceKm   *float64
}

// New creates an Entry without derived fields.
func New(r restaurant.Restaurant) Entry {
	return Entry{rest: r}
}

// WithAverageScore returns a copy annotated with the computed average score.
func (e Entry) WithAverageScore(v float64) Entry {
	e.averageScore = &v
	return e
}

// WithDistanceKm returns a copy annotated with the distance in kilometers.
func (e Entry) WithDistanceKm(v float64) Entry {
	e.distanceKm = &v
	return e
}

// Restaurant returns the shaped restaurant.
func (e Entry) Restaurant() restaurant.Restaurant { return e.rest }

// AverageScore returns the computed average score, or nil when not derived.
func (e Entry) AverageScore() *float64 { return e.averageScore }

// DistanceKm returns the distance in kilometers, or nil when not derived.
func (e Entry) DistanceKm() *float64 { return e.distanceKm }
