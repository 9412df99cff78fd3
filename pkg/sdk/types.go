package restodex

import "time"

// Restaurant is a directory entry as returned by the API.
type Restaurant struct {
	ID           string    `json:"id"`
	BusinessID   int       `json:"businessId"`
	Name         string    `json:"name"`
	Cuisine      string    `json:"cuisine"`
	Borough      string    `json:"borough"`
	Address      Address   `json:"address"`
	Grades       []Grade   `json:"grades"`
	Comments     []Comment `json:"comments"`
	AverageScore *float64  `json:"averageScore,omitempty"`
	DistanceKm   *float64  `json:"distanceKm,omitempty"`
}

// Address is the restaurant address. Coord is [longitude, latitude].
type Address struct {
	Building string     `json:"building"`
	Street   string     `json:"street"`
	Zipcode  string     `json:"zipcode"`
	Coord    [2]float64 `json:"coord"`
}

// Grade is a single inspection grade.
type Grade struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

// Comment is a single visitor comment.
type Comment struct {
	ID   string    `json:"id"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

// Pagination is the metadata attached to every collection result.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// RestaurantPage is one page of a collection result.
type RestaurantPage struct {
	Data       []Restaurant `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// Stats holds directory-level counters.
type Stats struct {
	TotalRestaurants int `json:"totalRestaurants"`
}

// RestaurantInput is the creation / full-update payload.
// A zero BusinessID lets the server assign the next available one.
type RestaurantInput struct {
	Name       string         `json:"name"`
	Cuisine    string         `json:"cuisine"`
	Borough    string         `json:"borough"`
	BusinessID int            `json:"businessId,omitempty"`
	Address    AddressInput   `json:"address"`
	Grades     []GradeInput   `json:"grades,omitempty"`
	Comments   []CommentInput `json:"comments,omitempty"`
}

// AddressInput is the address payload. Coord is [longitude, latitude].
type AddressInput struct {
	Building string    `json:"building"`
	Street   string    `json:"street"`
	Zipcode  string    `json:"zipcode"`
	Coord    []float64 `json:"coord"`
}

// GradeInput is a grade payload.
type GradeInput struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

// CommentInput is a comment payload; the server assigns the id.
type CommentInput struct {
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

// RestaurantPatch is the partial-update payload. Nil means untouched.
type RestaurantPatch struct {
	Name       *string         `json:"name,omitempty"`
	Cuisine    *string         `json:"cuisine,omitempty"`
	Borough    *string         `json:"borough,omitempty"`
	BusinessID *int            `json:"businessId,omitempty"`
	Address    *AddressInput   `json:"address,omitempty"`
	Grades     *[]GradeInput   `json:"grades,omitempty"`
	Comments   *[]CommentInput `json:"comments,omitempty"`
}

// ListOptions controls pagination and ordering of collection calls.
// Nil means server defaults (page 1, limit 20, name ascending).
type ListOptions struct {
	Page   int
	Limit  int
	SortBy string
	Order  string // asc or desc
}
