// Package scoring holds the handicap and scoring rules: course handicaps,
// net scores, handicap stroke allocation, Stableford points and per-round
// statistics. Everything here is pure and never mutates its inputs.
package scoring

import "fmt"

// HolesPerRound is the number of holes on every course the app knows about.
const HolesPerRound = 18

// Hole is one hole of a course.
type Hole struct {
	Number      int `json:"number" yaml:"number"`
	Par         int `json:"par" yaml:"par"`
	StrokeIndex int `json:"strokeIndex" yaml:"hcp"`
}

// Course is immutable reference data for one course.
type Course struct {
	Key          string  `json:"key" yaml:"key"`
	Name         string  `json:"name" yaml:"name"`
	Par          int     `json:"par" yaml:"par"`
	CourseRating float64 `json:"courseRating" yaml:"courseRating"`
	// SlopeRating of 0 means unknown.
	SlopeRating int    `json:"slopeRating" yaml:"slopeRating"`
	Holes       []Hole `json:"holes" yaml:"holes"`
}

// HoleByNumber returns the hole with the given 1-based number.
func (c Course) HoleByNumber(n int) (Hole, bool) {
	for _, h := range c.Holes {
		if h.Number == n {
			return h, true
		}
	}
	return Hole{}, false
}

// ScoreEntry is a single recorded hole for one player on one course.
type ScoreEntry struct {
	PlayerID  string `json:"playerID"`
	CourseKey string `json:"courseKey"`
	Hole      int    `json:"hole"`
	Strokes   int    `json:"strokes"`
	ThreePutt bool   `json:"threePutt"`
	Ring      bool   `json:"ring"`
}

// Mode selects which total a leaderboard is ranked on.
type Mode string

const (
	ModeGross      Mode = "gross"
	ModeNet        Mode = "net"
	ModeStableford Mode = "stableford"
)

// ParseMode accepts "gross", "net" or "stableford". An empty string is gross.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeGross:
		return ModeGross, nil
	case ModeNet:
		return ModeNet, nil
	case ModeStableford:
		return ModeStableford, nil
	}
	return "", fmt.Errorf("unknown score mode %q", s)
}

// Descending reports whether higher totals rank first in this mode.
func (m Mode) Descending() bool {
	return m == ModeStableford
}
