package models

import (
	"strconv"

	"github.com/uptrace/bun"

	"github.com/padraicbc/golftrip/scoring"
)

// Course is a course played on a tour, copied from the reference catalog
// when it is added.
type Course struct {
	bun.BaseModel `bun:"table:courses,alias:c"`

	ID           int            `bun:"id,pk,autoincrement" json:"id"`
	TourID       int            `bun:"tour_id,notnull" json:"tourID"`
	CatalogKey   string         `bun:"catalog_key,notnull" json:"catalogKey"`
	Name         string         `bun:"name,notnull" json:"name"`
	Par          int            `bun:"par,notnull" json:"par"`
	CourseRating float64        `bun:"course_rating,notnull,default:0" json:"courseRating"`
	SlopeRating  int            `bun:"slope_rating,notnull,default:0" json:"slopeRating"`
	Holes        []scoring.Hole `bun:"holes,type:jsonb,notnull" json:"holes"`
	PlayDate     *string        `bun:"play_date,type:date" json:"playDate,omitempty"`
}

// Key identifies the course in leaderboards. Two rounds on the same catalog
// course on different days are different courses.
func (c *Course) Key() string {
	return strconv.Itoa(c.ID)
}

// Scoring converts the row to the reference form used by the scoring engine.
func (c *Course) Scoring() scoring.Course {
	return scoring.Course{
		Key:          c.Key(),
		Name:         c.Name,
		Par:          c.Par,
		CourseRating: c.CourseRating,
		SlopeRating:  c.SlopeRating,
		Holes:        append([]scoring.Hole(nil), c.Holes...),
	}
}

// NewCourse copies a reference course onto a tour.
func NewCourse(tourID int, ref scoring.Course) *Course {
	return &Course{
		TourID:       tourID,
		CatalogKey:   ref.Key,
		Name:         ref.Name,
		Par:          ref.Par,
		CourseRating: ref.CourseRating,
		SlopeRating:  ref.SlopeRating,
		Holes:        append([]scoring.Hole(nil), ref.Holes...),
	}
}
