package chi

import (
	"time"

	"github.com/kailas-cloud/restodex/internal/domain/listing"
	"github.com/kailas-cloud/restodex/internal/domain/query"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/restaurant/patch"
)

type restaurantRequest struct {
	Name       string           `json:"name"`
	Cuisine    string           `json:"cuisine"`
	Borough    string           `json:"borough"`
	BusinessID int              `json:"businessId"`
	Address    *addressRequest  `json:"address"`
	Grades     []gradeRequest   `json:"grades"`
	Comments   []commentRequest `json:"comments"`
}

type addressRequest struct {
	Building string    `json:"building"`
	Street   string    `json:"street"`
	Zipcode  string    `json:"zipcode"`
	Coord    []float64 `json:"coord"`
}

type gradeRequest struct {
	Date  time.Time `json:"date"`
	Score *int      `json:"score"`
}

type commentRequest struct {
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

// patchRequest mirrors restaurantRequest with every field optional.
// Nil means untouched.
type patchRequest struct {
	Name       *string           `json:"name"`
	Cuisine    *string           `json:"cuisine"`
	Borough    *string           `json:"borough"`
	BusinessID *int              `json:"businessId"`
	Address    *addressRequest   `json:"address"`
	Grades     *[]gradeRequest   `json:"grades"`
	Comments   *[]commentRequest `json:"comments"`
}

type restaurantResponse struct {
	ID           string            `json:"id"`
	BusinessID   int               `json:"businessId"`
	Name         string            `json:"name"`
	Cuisine      string            `json:"cuisine"`
	Borough      string            `json:"borough"`
	Address      addressResponse   `json:"address"`
	Grades       []gradeResponse   `json:"grades"`
	Comments     []commentResponse `json:"comments"`
	AverageScore *float64          `json:"averageScore,omitempty"`
	DistanceKm   *float64          `json:"distanceKm,omitempty"`
}

type addressResponse struct {
	Building string     `json:"building"`
	Street   string     `json:"street"`
	Zipcode  string     `json:"zipcode"`
	Coord    [2]float64 `json:"coord"`
}

type gradeResponse struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

type commentResponse struct {
	ID   string    `json:"id"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

type collectionResponse struct {
	Data       []restaurantResponse `json:"data"`
	Pagination query.Meta           `json:"pagination"`
}

type statsResponse struct {
	TotalRestaurants int `json:"totalRestaurants"`
}

type errorResponse struct {
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
}

func inputFromRequest(req restaurantRequest) restaurant.Input {
	in := restaurant.Input{
		Name:       req.Name,
		Cuisine:    req.Cuisine,
		Borough:    req.Borough,
		BusinessID: req.BusinessID,
		Grades:     gradeInputs(req.Grades),
		Comments:   commentInputs(req.Comments),
	}
	if req.Address != nil {
		in.Address = addressInput(req.Address)
	}
	return in
}

func patchFromRequest(req patchRequest) (patch.Patch, error) {
	var grades *[]restaurant.GradeInput
	if req.Grades != nil {
		g := gradeInputs(*req.Grades)
		grades = &g
	}
	var comments *[]restaurant.CommentInput
	if req.Comments != nil {
		c := commentInputs(*req.Comments)
		comments = &c
	}
	var address *restaurant.AddressInput
	if req.Address != nil {
		address = addressInput(req.Address)
	}

	return patch.New(req.Name, req.Cuisine, req.Borough, req.BusinessID, address, grades, comments)
}

func addressInput(a *addressRequest) *restaurant.AddressInput {
	return &restaurant.AddressInput{
		Building: a.Building,
		Street:   a.Street,
		Zipcode:  a.Zipcode,
		Coord:    a.Coord,
	}
}

func gradeInputs(gg []gradeRequest) []restaurant.GradeInput {
	if gg == nil {
		return nil
	}
	out := make([]restaurant.GradeInput, len(gg))
	for i, g := range gg {
		out[i] = restaurant.GradeInput{Date: g.Date, Score: g.Score}
	}
	return out
}

func commentInputs(cc []commentRequest) []restaurant.CommentInput {
	if cc == nil {
		return nil
	}
	out := make([]restaurant.CommentInput, len(cc))
	for i, c := range cc {
		out[i] = restaurant.CommentInput{Text: c.Text, Date: c.Date}
	}
	return out
}

func restaurantToResponse(r restaurant.Restaurant) restaurantResponse {
	addr := r.Address()

	grades := make([]gradeResponse, len(r.Grades()))
	for i, g := range r.Grades() {
		grades[i] = gradeResponse{Date: g.Date, Score: g.Score}
	}
	comments := make([]commentResponse, len(r.Comments()))
	for i, c := range r.Comments() {
		comments[i] = commentResponse{ID: c.ID, Text: c.Text, Date: c.Date}
	}

	return restaurantResponse{
		ID:         r.ID(),
		BusinessID: r.BusinessID(),
		Name:       r.Name(),
		Cuisine:    r.Cuisine(),
		Borough:    r.Borough(),
		Address: addressResponse{
			Building: addr.Building,
			Street:   addr.Street,
			Zipcode:  addr.Zipcode,
			Coord:    [2]float64{addr.Coord.Lon, addr.Coord.Lat},
		},
		Grades:   grades,
		Comments: comments,
	}
}

func entryToResponse(e listing.Entry) restaurantResponse {
	resp := restaurantToResponse(e.Restaurant())
	resp.AverageScore = e.AverageScore()
	resp.DistanceKm = e.DistanceKm()
	return resp
}

func entriesToResponse(entries []listing.Entry) []restaurantResponse {
	out := make([]restaurantResponse, len(entries))
	for i, e := range entries {
		out[i] = entryToResponse(e)
	}
	return out
}
