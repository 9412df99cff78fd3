package restaurant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domres "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant/patch"
)

// storedRestaurant is the JSON document shape persisted in the store.
// Location duplicates the address coordinate as "lon,lat" for the GEO
// index field; it is derived, never authoritative.
type storedRestaurant struct {
	BusinessID int             `json:"business_id"`
	Name       string          `json:"name"`
	Cuisine    string          `json:"cuisine"`
	Borough    string          `json:"borough"`
	Address    storedAddress   `json:"address"`
	Location   string          `json:"location"`
	Grades     []storedGrade   `json:"grades"`
	Comments   []storedComment `json:"comments"`
}

type storedAddress struct {
	Building string    `json:"building"`
	Street   string    `json:"street"`
	Zipcode  string    `json:"zipcode"`
	Coord    []float64 `json:"coord"`
}

type storedGrade struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

type storedComment struct {
	ID   string    `json:"id"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

// buildStored converts a domain Restaurant into its persisted shape.
func buildStored(r *domres.Restaurant) *storedRestaurant {
	addr := r.Address()
	stored := &storedRestaurant{
		BusinessID: r.BusinessID(),
		Name:       r.Name(),
		Cuisine:    r.Cuisine(),
		Borough:    r.Borough(),
		Address: storedAddress{
			Building: addr.Building,
			Street:   addr.Street,
			Zipcode:  addr.Zipcode,
			Coord:    []float64{addr.Coord.Lon, addr.Coord.Lat},
		},
		Location: locationField(addr.Coord.Lon, addr.Coord.Lat),
		Grades:   make([]storedGrade, 0, len(r.Grades())),
		Comments: make([]storedComment, 0, len(r.Comments())),
	}
	for _, g := range r.Grades() {
		stored.Grades = append(stored.Grades, storedGrade{Date: g.Date, Score: g.Score})
	}
	for _, c := range r.Comments() {
		stored.Comments = append(stored.Comments, storedComment{ID: c.ID, Text: c.Text, Date: c.Date})
	}
	return stored
}

// toDomain reconstructs a domain Restaurant from its persisted shape.
func (s *storedRestaurant) toDomain(id string) domres.Restaurant {
	var coord domres.Coordinate
	if len(s.Address.Coord) == 2 {
		coord = domres.Coordinate{Lon: s.Address.Coord[0], Lat: s.Address.Coord[1]}
	}

	grades := make([]domres.Grade, 0, len(s.Grades))
	for _, g := range s.Grades {
		grades = append(grades, domres.Grade{Date: g.Date, Score: g.Score})
	}
	comments := make([]domres.Comment, 0, len(s.Comments))
	for _, c := range s.Comments {
		comments = append(comments, domres.Comment{ID: c.ID, Text: c.Text, Date: c.Date})
	}

	return domres.Reconstruct(
		id, s.BusinessID, s.Name, s.Cuisine, s.Borough,
		domres.Address{
			Building: s.Address.Building,
			Street:   s.Address.Street,
			Zipcode:  s.Address.Zipcode,
			Coord:    coord,
		},
		grades, comments,
	)
}

// decodeStored parses a persisted restaurant from either shape the store
// returns: JSON.GET with "$" wraps the document in a one-element array,
// FT.SEARCH RETURN "$" hands back the bare object.
func decodeStored(raw []byte) (*storedRestaurant, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("empty document")
	}

	if trimmed[0] == '[' {
		var docs []storedRestaurant
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, fmt.Errorf("unmarshal restaurant: %w", err)
		}
		if len(docs) == 0 {
			return nil, errors.New("empty json path result")
		}
		return &docs[0], nil
	}

	var doc storedRestaurant
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal restaurant: %w", err)
	}
	return &doc, nil
}

// applyPatch merges supplied patch fields into the persisted shape.
// A replaced address recomputes the derived GEO location field.
func applyPatch(stored *storedRestaurant, p patch.Patch) {
	if v := p.Name(); v != nil {
		stored.Name = *v
	}
	if v := p.Cuisine(); v != nil {
		stored.Cuisine = *v
	}
	if v := p.Borough(); v != nil {
		stored.Borough = *v
	}
	if v := p.BusinessID(); v != nil {
		stored.BusinessID = *v
	}
	if a := p.Address(); a != nil {
		stored.Address = storedAddress{
			Building: a.Building,
			Street:   a.Street,
			Zipcode:  a.Zipcode,
			Coord:    append([]float64(nil), a.Coord...),
		}
		stored.Location = locationField(a.Coord[0], a.Coord[1])
	}
	if gs := p.Grades(); gs != nil {
		stored.Grades = make([]storedGrade, 0, len(*gs))
		for _, g := range *gs {
			stored.Grades = append(stored.Grades, storedGrade{Date: g.Date, Score: *g.Score})
		}
	}
	if cs := p.Comments(); cs != nil {
		stored.Comments = make([]storedComment, 0, len(*cs))
		for _, c := range *cs {
			stored.Comments = append(stored.Comments, storedComment{Text: c.Text, Date: c.Date})
		}
	}
}

// locationField formats a coordinate as the "lon,lat" GEO field value.
func locationField(lon, lat float64) string {
	return fmt.Sprintf("%g,%g", lon, lat)
}
