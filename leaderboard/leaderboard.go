// Package leaderboard turns teams of players and their recorded cards into a
// ranked team leaderboard. Build is a pure function of its inputs; callers
// fetch everything first and call it once per refresh.
package leaderboard

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/padraicbc/golftrip/scoring"
)

// AllCourses selects every course when used as a course filter.
const AllCourses = "all"

var (
	// ErrCaptainNotMember means a team's captain is missing from its members.
	ErrCaptainNotMember = errors.New("team captain is not a member")
	// ErrMissingMember means a team lists a member without an identity.
	ErrMissingMember = errors.New("team member has no id")
)

// Player is a team member and every card they have recorded, keyed by course key.
type Player struct {
	ID            string
	Name          string
	HandicapIndex float64
	Cards         map[string][]scoring.ScoreEntry
}

// Team is a captain plus members. The captain must be one of the members.
type Team struct {
	ID        string
	Name      string
	CaptainID string
	Members   []Player
}

// PlayerSummary is one member's totals across the courses in scope.
type PlayerSummary struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	HandicapIndex float64                `json:"handicapIndex"`
	Rounds        []scoring.RoundSummary `json:"rounds"`
	Gross         int                    `json:"gross"`
	Net           int                    `json:"net"`
	Stableford    int                    `json:"stableford"`
	Par           int                    `json:"par"`
	CoursesPlayed int                    `json:"coursesPlayed"`
	Stats         scoring.Stats          `json:"stats"`
}

// TeamSummary is a team's summed totals and its ranked members.
type TeamSummary struct {
	Rank          int             `json:"rank"`
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CaptainID     string          `json:"captainID"`
	CaptainName   string          `json:"captainName"`
	Members       []PlayerSummary `json:"members"`
	Gross         int             `json:"gross"`
	Net           int             `json:"net"`
	Stableford    int             `json:"stableford"`
	Par           int             `json:"par"`
	CoursesPlayed int             `json:"coursesPlayed"`
	Stats         scoring.Stats   `json:"stats"`
}

func total(mode scoring.Mode, gross, net, stableford int) int {
	switch mode {
	case scoring.ModeNet:
		return net
	case scoring.ModeStableford:
		return stableford
	default:
		return gross
	}
}

func display(mode scoring.Mode, score, par int) string {
	if mode == scoring.ModeStableford {
		return scoring.FormatPoints(score)
	}
	return scoring.FormatScore(score, par)
}

// Total is the ranking total for mode.
func (p PlayerSummary) Total(mode scoring.Mode) int {
	return total(mode, p.Gross, p.Net, p.Stableford)
}

// Display formats the ranking total for mode.
func (p PlayerSummary) Display(mode scoring.Mode) string {
	return display(mode, p.Total(mode), p.Par)
}

// Round returns the member's round on a course, if one was recorded.
func (p PlayerSummary) Round(courseKey string) (scoring.RoundSummary, bool) {
	for _, r := range p.Rounds {
		if r.CourseKey == courseKey {
			return r, true
		}
	}
	return scoring.RoundSummary{}, false
}

// Total is the ranking total for mode.
func (t TeamSummary) Total(mode scoring.Mode) int {
	return total(mode, t.Gross, t.Net, t.Stableford)
}

// Display formats the ranking total for mode.
func (t TeamSummary) Display(mode scoring.Mode) string {
	return display(mode, t.Total(mode), t.Par)
}

// InScope returns the courses a filter selects. An empty filter or AllCourses
// keeps every course; anything else must match a course key exactly.
func InScope(courses []scoring.Course, courseFilter string) []scoring.Course {
	if courseFilter == "" || courseFilter == AllCourses {
		return courses
	}
	for _, c := range courses {
		if c.Key == courseFilter {
			return []scoring.Course{c}
		}
	}
	return nil
}

func validate(t Team) error {
	captain := false
	for _, m := range t.Members {
		if m.ID == "" {
			return fmt.Errorf("team %q: %w", t.Name, ErrMissingMember)
		}
		if m.ID == t.CaptainID {
			captain = true
		}
	}
	if !captain {
		return fmt.Errorf("team %q captain %q: %w", t.Name, t.CaptainID, ErrCaptainNotMember)
	}
	return nil
}

func summarizePlayer(p Player, scope []scoring.Course) PlayerSummary {
	ps := PlayerSummary{
		ID:            p.ID,
		Name:          p.Name,
		HandicapIndex: p.HandicapIndex,
		Rounds:        []scoring.RoundSummary{},
	}
	for _, course := range scope {
		entries := p.Cards[course.Key]
		if len(entries) == 0 {
			continue
		}
		r := scoring.SummarizeRound(p.ID, p.HandicapIndex, course, entries)
		if !r.Played() {
			continue
		}
		ps.Rounds = append(ps.Rounds, r)
		ps.Gross += r.Gross
		ps.Net += r.Net
		ps.Stableford += r.Stableford
		ps.Par += r.Par
		ps.CoursesPlayed++
		ps.Stats = ps.Stats.Add(r.Stats)
	}
	return ps
}

// Build assembles and ranks the leaderboard. Teams and members are ordered by
// the mode's total (gross and net ascending, Stableford descending); a total
// of zero means nothing recorded yet and always sorts last. Equal totals fall
// back to name, then ID.
func Build(teams []Team, courses []scoring.Course, courseFilter string, mode scoring.Mode) ([]TeamSummary, error) {
	scope := InScope(courses, courseFilter)

	out := make([]TeamSummary, 0, len(teams))
	for _, t := range teams {
		if err := validate(t); err != nil {
			return nil, err
		}

		ts := TeamSummary{
			ID:        t.ID,
			Name:      t.Name,
			CaptainID: t.CaptainID,
			Members:   make([]PlayerSummary, 0, len(t.Members)),
		}
		for _, m := range t.Members {
			ps := summarizePlayer(m, scope)
			if m.ID == t.CaptainID {
				ts.CaptainName = m.Name
			}
			ts.Members = append(ts.Members, ps)
			ts.Gross += ps.Gross
			ts.Net += ps.Net
			ts.Stableford += ps.Stableford
			ts.Par += ps.Par
			ts.Stats = ts.Stats.Add(ps.Stats)
			ts.CoursesPlayed = max(ts.CoursesPlayed, ps.CoursesPlayed)
		}

		slices.SortStableFunc(ts.Members, func(a, b PlayerSummary) int {
			return compareRanked(a.Total(mode), b.Total(mode), mode, a.Name, b.Name, a.ID, b.ID)
		})
		out = append(out, ts)
	}

	slices.SortStableFunc(out, func(a, b TeamSummary) int {
		return compareRanked(a.Total(mode), b.Total(mode), mode, a.Name, b.Name, a.ID, b.ID)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

// compareRanked orders two totals for mode with zero last, then by name and ID.
func compareRanked(a, b int, mode scoring.Mode, nameA, nameB, idA, idB string) int {
	if c := CompareTotals(a, b, mode); c != 0 {
		return c
	}
	if c := cmp.Compare(nameA, nameB); c != 0 {
		return c
	}
	return cmp.Compare(idA, idB)
}

// CompareTotals orders two totals for mode. Zero is the no-data sentinel and
// sorts after every real total in either direction.
func CompareTotals(a, b int, mode scoring.Mode) int {
	switch {
	case a == 0 && b == 0:
		return 0
	case a == 0:
		return 1
	case b == 0:
		return -1
	case mode.Descending():
		return cmp.Compare(b, a)
	default:
		return cmp.Compare(a, b)
	}
}
