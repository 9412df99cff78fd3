package restaurant

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/geo"
)

// MinScore and MaxScore bound a single inspection grade score.
const (
	MinScore = 0
	MaxScore = 30
)

// FirstBusinessID is assigned to the first restaurant of an empty directory.
const FirstBusinessID = 1000

// Coordinate is a longitude/latitude pair in degrees.
type Coordinate struct {
	Lon float64
	Lat float64
}

// Address is the owned address substructure of a restaurant.
type Address struct {
	Building string
	Street   string
	Zipcode  string
	Coord    Coordinate
}

// Grade is a single inspection grade.
type Grade struct {
	Date  time.Time
	Score int
}

// Comment is a single visitor comment.
type Comment struct {
	ID   string
	Text string
	Date time.Time
}

// Restaurant is the restaurant aggregate (immutable value object).
// The storage identifier is empty until the record is persisted.
type Restaurant struct {
	id         string
	businessID int
	name       string
	cuisine    string
	borough    string
	address    Address
	grades     []Grade
	comments   []Comment
}

// Input is the raw creation payload before validation.
type Input struct {
	Name       string
	Cuisine    string
	Borough    string
	BusinessID int // 0 = assign the next available one
	Address    *AddressInput
	Grades     []GradeInput
	Comments   []CommentInput
}

// AddressInput is the raw address payload; Coord is the pair as received.
type AddressInput struct {
	Building string
	Street   string
	Zipcode  string
	Coord    []float64
}

// GradeInput is a raw grade payload.
type GradeInput struct {
	Date  time.Time
	Score *int
}

// CommentInput is a raw comment payload.
type CommentInput struct {
	Text string
	Date time.Time
}

// New validates an Input exhaustively and creates a Restaurant.
// Every violated rule is collected; the returned error carries the full list.
func New(in Input) (Restaurant, error) {
	violations := ValidateInput(in)
	if len(violations) > 0 {
		return Restaurant{}, domain.NewValidationError(violations)
	}

	grades := make([]Grade, 0, len(in.Grades))
	for _, g := range in.Grades {
		grades = append(grades, Grade{Date: g.Date, Score: *g.Score})
	}
	comments := make([]Comment, 0, len(in.Comments))
	for _, c := range in.Comments {
		comments = append(comments, Comment{Text: c.Text, Date: c.Date})
	}

	return Restaurant{
		businessID: in.BusinessID,
		name:       in.Name,
		cuisine:    in.Cuisine,
		borough:    in.Borough,
		address: Address{
			Building: in.Address.Building,
			Street:   in.Address.Street,
			Zipcode:  in.Address.Zipcode,
			Coord:    Coordinate{Lon: in.Address.Coord[0], Lat: in.Address.Coord[1]},
		},
		grades:   grades,
		comments: comments,
	}, nil
}

// ValidateInput collects every violated creation rule (no fail-fast).
func ValidateInput(in Input) []string {
	var violations []string

	if in.Name == "" {
		violations = append(violations, "name is required and must be a non-empty string")
	}
	if in.Cuisine == "" {
		violations = append(violations, "cuisine is required and must be a non-empty string")
	}
	if in.Borough == "" {
		violations = append(violations, "borough is required and must be a non-empty string")
	}
	if in.BusinessID < 0 {
		violations = append(violations, "businessId must be a positive integer")
	}

	violations = append(violations, ValidateAddress(in.Address)...)
	violations = append(violations, ValidateGrades(in.Grades)...)
	violations = append(violations, ValidateComments(in.Comments)...)

	return violations
}

// ValidateGrades collects structural violations of a grade sequence.
func ValidateGrades(grades []GradeInput) []string {
	var violations []string
	for i, g := range grades {
		violations = append(violations, validateGrade(i, g)...)
	}
	return violations
}

// ValidateComments collects structural violations of a comment sequence.
func ValidateComments(comments []CommentInput) []string {
	var violations []string
	for i, c := range comments {
		violations = append(violations, validateComment(i, c)...)
	}
	return violations
}

// ValidateAddress collects address structure violations; used by both
// create and address-changing updates.
func ValidateAddress(a *AddressInput) []string {
	if a == nil {
		return []string{"address is required"}
	}

	var violations []string
	if a.Building == "" {
		violations = append(violations, "address.building is required")
	}
	if a.Street == "" {
		violations = append(violations, "address.street is required")
	}
	if a.Zipcode == "" {
		violations = append(violations, "address.zipcode is required")
	}

	switch {
	case a.Coord == nil:
		violations = append(violations, "address.coordinate is required")
	case len(a.Coord) != 2:
		violations = append(violations, "address.coordinate must have exactly 2 elements [longitude, latitude]")
	default:
		if !geo.ValidateCoordinate(a.Coord[0], a.Coord[1]) {
			if a.Coord[0] < -180 || a.Coord[0] > 180 {
				violations = append(violations, "longitude must be between -180 and 180")
			}
			if a.Coord[1] < -90 || a.Coord[1] > 90 {
				violations = append(violations, "latitude must be between -90 and 90")
			}
		}
	}

	return violations
}

func validateGrade(i int, g GradeInput) []string {
	var violations []string
	if g.Date.IsZero() {
		violations = append(violations, gradeField(i, "date is required"))
	}
	switch {
	case g.Score == nil:
		violations = append(violations, gradeField(i, "score must be an integer"))
	case *g.Score < MinScore || *g.Score > MaxScore:
		violations = append(violations, gradeField(i, "score must be between 0 and 30"))
	}
	return violations
}

func validateComment(i int, c CommentInput) []string {
	var violations []string
	if c.Text == "" {
		violations = append(violations, commentField(i, "text is required"))
	}
	if c.Date.IsZero() {
		violations = append(violations, commentField(i, "date is required"))
	}
	return violations
}

func gradeField(i int, msg string) string {
	return fmt.Sprintf("grades[%d].%s", i, msg)
}

func commentField(i int, msg string) string {
	return fmt.Sprintf("comments[%d].%s", i, msg)
}

// Reconstruct creates a Restaurant without validation (storage hydration).
func Reconstruct(
	id string, businessID int, name, cuisine, borough string,
	address Address, grades []Grade, comments []Comment,
) Restaurant {
	return Restaurant{
		id: id, businessID: businessID,
		name: name, cuisine: cuisine, borough: borough,
		address: address, grades: grades, comments: comments,
	}
}

// ID returns the opaque storage identifier.
func (r Restaurant) ID() string { return r.id }

// BusinessID returns the external sequential restaurant number.
func (r Restaurant) BusinessID() int { return r.businessID }

// Name returns the restaurant name.
func (r Restaurant) Name() string { return r.name }

// Cuisine returns the cuisine kind.
func (r Restaurant) Cuisine() string { return r.cuisine }

// Borough returns the borough.
func (r Restaurant) Borough() string { return r.borough }

// Address returns the address substructure.
func (r Restaurant) Address() Address { return r.address }

// Grades returns the ordered inspection grades.
func (r Restaurant) Grades() []Grade { return r.grades }

// Comments returns the ordered visitor comments.
func (r Restaurant) Comments() []Comment { return r.comments }

// WithBusinessID returns a copy with the business identifier set.
func (r Restaurant) WithBusinessID(id int) Restaurant {
	c := r
	c.businessID = id
	return c
}

// WithComments returns a copy with the comments replaced.
func (r Restaurant) WithComments(comments []Comment) Restaurant {
	c := r
	c.comments = comments
	return c
}

// AverageScore returns the mean of all grade scores.
// The second return is false when the restaurant has no grades:
// the average is undefined, not zero.
func (r Restaurant) AverageScore() (float64, bool) {
	if len(r.grades) == 0 {
		return 0, false
	}
	sum := 0
	for _, g := range r.grades {
		sum += g.Score
	}
	return float64(sum) / float64(len(r.grades)), true
}
