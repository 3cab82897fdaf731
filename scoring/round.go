package scoring

import (
	"cmp"
	"fmt"
	"slices"
)

// RoundSummary is the derived result of one player's card on one course.
type RoundSummary struct {
	PlayerID   string `json:"playerID"`
	CourseKey  string `json:"courseKey"`
	CourseName string `json:"courseName"`

	HolesPlayed int `json:"holesPlayed"`
	Gross       int `json:"gross"`
	FrontNine   int `json:"frontNine"`
	BackNine    int `json:"backNine"`
	Par         int `json:"par"`

	CourseHandicap  int `json:"courseHandicap"`
	HandicapApplied int `json:"handicapApplied"`
	Net             int `json:"net"`

	GrossToPar int   `json:"grossToPar"`
	NetToPar   int   `json:"netToPar"`
	Stableford int   `json:"stableford"`
	Stats      Stats `json:"stats"`
}

// Played reports whether any hole was recorded.
func (r RoundSummary) Played() bool {
	return r.HolesPlayed > 0
}

// coursePar is the declared par, or the sum of the hole pars when the
// declared value is missing.
func coursePar(c Course) int {
	if c.Par > 0 {
		return c.Par
	}
	total := 0
	for _, h := range c.Holes {
		total += h.Par
	}
	return total
}

// latestPerHole keeps the last recorded entry for each hole number in 1..18,
// matching the upsert semantics of the store. The result is in hole order.
func latestPerHole(entries []ScoreEntry) []ScoreEntry {
	byHole := make(map[int]ScoreEntry, len(entries))
	for _, e := range entries {
		if e.Hole < 1 || e.Hole > HolesPerRound || e.Strokes <= 0 {
			continue
		}
		byHole[e.Hole] = e
	}
	out := make([]ScoreEntry, 0, len(byHole))
	for _, e := range byHole {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b ScoreEntry) int { return cmp.Compare(a.Hole, b.Hole) })
	return out
}

// SummarizeRound totals one player's entries for a course. Unrecorded holes
// are left out of every sum. The handicap applied to the net total is the
// share of the course handicap for the holes actually played.
func SummarizeRound(playerID string, index float64, course Course, entries []ScoreEntry) RoundSummary {
	r := RoundSummary{
		PlayerID:       playerID,
		CourseKey:      course.Key,
		CourseName:     course.Name,
		Par:            coursePar(course),
		CourseHandicap: CourseHandicap(index, course.SlopeRating),
	}

	card := latestPerHole(entries)
	if len(card) == 0 {
		return r
	}

	position := make(map[int]int, len(course.Holes))
	for i, h := range course.Holes {
		position[h.Number] = i
	}
	allocated := AllocateHandicapStrokes(r.CourseHandicap, course.Holes)

	for _, e := range card {
		r.HolesPlayed++
		r.Gross += e.Strokes
		if e.Hole <= HolesPerRound/2 {
			r.FrontNine += e.Strokes
		} else {
			r.BackNine += e.Strokes
		}
		if i, ok := position[e.Hole]; ok && i < HolesPerRound {
			r.Stableford += StablefordPoints(e.Strokes-allocated[i], course.Holes[i].Par)
		}
	}

	r.HandicapApplied = RangeHandicap(r.CourseHandicap, r.HolesPlayed)
	r.Net = NetScore(r.Gross, r.HandicapApplied)
	r.GrossToPar = r.Gross - r.Par
	r.NetToPar = r.Net - r.Par
	r.Stats = CollectStats(card, course.Holes)
	return r
}

// FormatScore renders a total against par: "72 (E)", "75 (+3)", "68 (-4)".
// Zero means no data and renders as "-".
func FormatScore(score, par int) string {
	if score == 0 {
		return "-"
	}
	switch toPar := score - par; {
	case toPar == 0:
		return fmt.Sprintf("%d (E)", score)
	case toPar > 0:
		return fmt.Sprintf("%d (+%d)", score, toPar)
	default:
		return fmt.Sprintf("%d (%d)", score, toPar)
	}
}

// FormatPoints renders a Stableford total, "-" when zero.
func FormatPoints(points int) string {
	if points == 0 {
		return "-"
	}
	return fmt.Sprintf("%d pts", points)
}
