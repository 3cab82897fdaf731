package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/padraicbc/golftrip/scoring"
)

// Score is one hole of a player's card. (user_id, course_id, hole_number) is
// unique and saves overwrite.
type Score struct {
	bun.BaseModel `bun:"table:scores,alias:s"`

	ID         int       `bun:"id,pk,autoincrement" json:"id"`
	UserID     uuid.UUID `bun:"user_id,type:uuid,notnull,unique:scores_no_dupes" json:"userID"`
	CourseID   int       `bun:"course_id,notnull,unique:scores_no_dupes" json:"courseID"`
	HoleNumber int       `bun:"hole_number,notnull,unique:scores_no_dupes" json:"holeNumber"`
	Strokes    int       `bun:"strokes,notnull" json:"strokes"`
	ThreePutt  bool      `bun:"three_putt,notnull,default:false" json:"threePutt"`
	Ring       bool      `bun:"ring,notnull,default:false" json:"ring"`
	RecordedBy uuid.UUID `bun:"recorded_by,type:uuid,notnull" json:"recordedBy"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// Entry converts the row for the scoring engine.
func (s *Score) Entry() scoring.ScoreEntry {
	return scoring.ScoreEntry{
		PlayerID:  s.UserID.String(),
		CourseKey: strconv.Itoa(s.CourseID),
		Hole:      s.HoleNumber,
		Strokes:   s.Strokes,
		ThreePutt: s.ThreePutt,
		Ring:      s.Ring,
	}
}
