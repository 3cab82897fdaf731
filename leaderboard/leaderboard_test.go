package leaderboard

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/golftrip/courses"
	"github.com/padraicbc/golftrip/scoring"
)

func course(t *testing.T, key string) scoring.Course {
	t.Helper()
	c, err := courses.Default().Find(key)
	require.NoError(t, err)
	return c
}

// cardTotalling spreads total strokes over the first n holes of a course key.
func cardTotalling(courseKey string, n, total int) []scoring.ScoreEntry {
	out := make([]scoring.ScoreEntry, n)
	for i := range out {
		out[i] = scoring.ScoreEntry{CourseKey: courseKey, Hole: i + 1, Strokes: total / n}
	}
	for i := 0; i < total%n; i++ {
		out[i].Strokes++
	}
	return out
}

func player(id string, index float64, cards map[string][]scoring.ScoreEntry) Player {
	return Player{ID: id, Name: "Player " + id, HandicapIndex: index, Cards: cards}
}

func TestBuild_TeamAggregation(t *testing.T) {
	faldo := course(t, "amendoeira")
	team := Team{
		ID:        "t1",
		Name:      "Birdie Hunters",
		CaptainID: "a",
		Members: []Player{
			player("a", 18, map[string][]scoring.ScoreEntry{"amendoeira": cardTotalling("amendoeira", 18, 95)}),
			player("b", 24, map[string][]scoring.ScoreEntry{"amendoeira": cardTotalling("amendoeira", 18, 102)}),
		},
	}

	got, err := Build([]Team{team}, []scoring.Course{faldo}, AllCourses, scoring.ModeGross)
	require.NoError(t, err)
	require.Len(t, got, 1)

	ts := got[0]
	assert.Equal(t, 197, ts.Gross)
	assert.Equal(t, 1, ts.CoursesPlayed)
	assert.Equal(t, 144, ts.Par)
	assert.Equal(t, "Player a", ts.CaptainName)
	assert.Equal(t, 1, ts.Rank)
	// 95 - 23 and 102 - 30.
	assert.Equal(t, 72+72, ts.Net)
	assert.Equal(t, "197 (+53)", ts.Display(scoring.ModeGross))

	require.Len(t, ts.Members, 2)
	assert.Equal(t, "a", ts.Members[0].ID)
	assert.Equal(t, "95 (+23)", ts.Members[0].Display(scoring.ModeGross))
}

func TestBuild_PartialCardCountsAsPlayed(t *testing.T) {
	faldo := course(t, "amendoeira")
	team := Team{
		ID: "t1", Name: "Solo", CaptainID: "a",
		Members: []Player{
			player("a", 18, map[string][]scoring.ScoreEntry{"amendoeira": cardTotalling("amendoeira", 17, 90)}),
		},
	}

	got, err := Build([]Team{team}, []scoring.Course{faldo}, "", scoring.ModeGross)
	require.NoError(t, err)

	m := got[0].Members[0]
	assert.Equal(t, 90, m.Gross)
	assert.Equal(t, 1, m.CoursesPlayed)
	r, ok := m.Round("amendoeira")
	require.True(t, ok)
	assert.Equal(t, 17, r.HolesPlayed)
}

func TestBuild_CoursesPlayedIsMaxAcrossMembers(t *testing.T) {
	all := courses.Default().All()
	team := Team{
		ID: "t1", Name: "Mixed", CaptainID: "a",
		Members: []Player{
			player("a", 10, map[string][]scoring.ScoreEntry{
				"morgado":    cardTotalling("morgado", 18, 85),
				"amendoeira": cardTotalling("amendoeira", 18, 88),
			}),
			player("b", 10, map[string][]scoring.ScoreEntry{
				"morgado": cardTotalling("morgado", 18, 90),
			}),
			player("c", 10, nil),
		},
	}

	got, err := Build([]Team{team}, all, AllCourses, scoring.ModeGross)
	require.NoError(t, err)

	ts := got[0]
	assert.Equal(t, 2, ts.CoursesPlayed)
	assert.Equal(t, 85+88+90, ts.Gross)
	assert.Equal(t, 72+72+72, ts.Par)
	// The member without a card sorts last.
	assert.Equal(t, "c", ts.Members[2].ID)
	assert.Equal(t, "-", ts.Members[2].Display(scoring.ModeGross))
}

func TestBuild_CourseFilter(t *testing.T) {
	all := courses.Default().All()
	team := Team{
		ID: "t1", Name: "Filter", CaptainID: "a",
		Members: []Player{
			player("a", 0, map[string][]scoring.ScoreEntry{
				"morgado":      cardTotalling("morgado", 18, 80),
				"quintadolago": cardTotalling("quintadolago", 18, 77),
			}),
		},
	}

	got, err := Build([]Team{team}, all, "quintadolago", scoring.ModeGross)
	require.NoError(t, err)
	assert.Equal(t, 77, got[0].Gross)
	assert.Equal(t, 71, got[0].Par)

	got, err = Build([]Team{team}, all, "quinta", scoring.ModeGross)
	require.NoError(t, err)
	assert.Zero(t, got[0].Gross)
	assert.Zero(t, got[0].CoursesPlayed)

	// Cards for courses outside the list are ignored.
	got, err = Build([]Team{team}, all[:1], AllCourses, scoring.ModeGross)
	require.NoError(t, err)
	assert.Equal(t, 80, got[0].Gross)
}

func TestBuild_ZeroSentinelSortsLast(t *testing.T) {
	faldo := course(t, "amendoeira")
	mk := func(id string, gross int) Team {
		var cards map[string][]scoring.ScoreEntry
		if gross > 0 {
			cards = map[string][]scoring.ScoreEntry{"amendoeira": cardTotalling("amendoeira", 18, gross)}
		}
		return Team{ID: id, Name: "Team " + id, CaptainID: id + "-cap", Members: []Player{player(id+"-cap", 0, cards)}}
	}
	teams := []Team{mk("zero", 0), mk("mid", 150), mk("low", 140)}

	for _, mode := range []scoring.Mode{scoring.ModeGross, scoring.ModeNet} {
		got, err := Build(teams, []scoring.Course{faldo}, AllCourses, mode)
		require.NoError(t, err)

		var totals []int
		for _, ts := range got {
			totals = append(totals, ts.Total(mode))
		}
		if diff := cmp.Diff([]int{140, 150, 0}, totals); diff != "" {
			t.Errorf("mode %s order mismatch (-want +got):\n%s", mode, diff)
		}
		assert.Equal(t, []int{1, 2, 3}, []int{got[0].Rank, got[1].Rank, got[2].Rank})
	}
}

func TestBuild_StablefordRanksHighestFirst(t *testing.T) {
	faldo := course(t, "amendoeira")
	pars := make([]scoring.ScoreEntry, 0, 18)
	bogeys := make([]scoring.ScoreEntry, 0, 18)
	for _, h := range faldo.Holes {
		pars = append(pars, scoring.ScoreEntry{Hole: h.Number, Strokes: h.Par})
		bogeys = append(bogeys, scoring.ScoreEntry{Hole: h.Number, Strokes: h.Par + 1})
	}
	teams := []Team{
		{ID: "none", Name: "A", CaptainID: "n", Members: []Player{player("n", 0, nil)}},
		{ID: "bogey", Name: "B", CaptainID: "b", Members: []Player{player("b", 0, map[string][]scoring.ScoreEntry{"amendoeira": bogeys})}},
		{ID: "par", Name: "C", CaptainID: "p", Members: []Player{player("p", 0, map[string][]scoring.ScoreEntry{"amendoeira": pars})}},
	}

	got, err := Build(teams, []scoring.Course{faldo}, AllCourses, scoring.ModeStableford)
	require.NoError(t, err)

	assert.Equal(t, []string{"par", "bogey", "none"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, "36 pts", got[0].Display(scoring.ModeStableford))
	assert.Equal(t, "18 pts", got[1].Display(scoring.ModeStableford))
	assert.Equal(t, "-", got[2].Display(scoring.ModeStableford))
}

func TestBuild_TiesAreDeterministic(t *testing.T) {
	faldo := course(t, "amendoeira")
	cards := map[string][]scoring.ScoreEntry{"amendoeira": cardTotalling("amendoeira", 18, 90)}
	teams := []Team{
		{ID: "2", Name: "Same", CaptainID: "x", Members: []Player{player("x", 0, cards)}},
		{ID: "1", Name: "Same", CaptainID: "y", Members: []Player{player("y", 0, cards)}},
		{ID: "3", Name: "Alpha", CaptainID: "z", Members: []Player{player("z", 0, cards)}},
	}

	got, err := Build(teams, []scoring.Course{faldo}, AllCourses, scoring.ModeGross)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1", "2"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestBuild_StructuralErrors(t *testing.T) {
	_, err := Build([]Team{{ID: "t", Name: "T", CaptainID: "ghost", Members: []Player{player("a", 0, nil)}}}, nil, "", scoring.ModeGross)
	assert.ErrorIs(t, err, ErrCaptainNotMember)

	_, err = Build([]Team{{ID: "t", Name: "T", CaptainID: "a", Members: []Player{player("a", 0, nil), {Name: "anon"}}}}, nil, "", scoring.ModeGross)
	assert.ErrorIs(t, err, ErrMissingMember)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	faldo := course(t, "amendoeira")
	entries := []scoring.ScoreEntry{{Hole: 2, Strokes: 5}, {Hole: 1, Strokes: 4}}
	teams := []Team{{ID: "t", Name: "T", CaptainID: "a", Members: []Player{
		player("b", 0, nil),
		player("a", 0, map[string][]scoring.ScoreEntry{"amendoeira": entries}),
	}}}

	_, err := Build(teams, []scoring.Course{faldo}, AllCourses, scoring.ModeGross)
	require.NoError(t, err)

	assert.Equal(t, "b", teams[0].Members[0].ID)
	assert.Equal(t, 2, entries[0].Hole)
}

func TestBuild_RandomTeamsSumMembers(t *testing.T) {
	faker := gofakeit.New(7)
	all := courses.Default().All()

	var teams []Team
	for ti := 0; ti < 6; ti++ {
		team := Team{ID: fmt.Sprintf("t%d", ti), Name: faker.Company()}
		for mi := 0; mi < faker.IntRange(1, 4); mi++ {
			cards := map[string][]scoring.ScoreEntry{}
			for _, c := range all {
				if faker.Bool() {
					cards[c.Key] = cardTotalling(c.Key, faker.IntRange(1, 18), faker.IntRange(70, 120))
				}
			}
			id := fmt.Sprintf("t%d-m%d", ti, mi)
			team.Members = append(team.Members, Player{
				ID:            id,
				Name:          faker.Name(),
				HandicapIndex: faker.Float64Range(0, 54),
				Cards:         cards,
			})
		}
		team.CaptainID = team.Members[0].ID
		teams = append(teams, team)
	}

	for _, mode := range []scoring.Mode{scoring.ModeGross, scoring.ModeNet, scoring.ModeStableford} {
		got, err := Build(teams, all, AllCourses, mode)
		require.NoError(t, err)
		require.Len(t, got, len(teams))

		for i, ts := range got {
			gross, net, played := 0, 0, 0
			for _, m := range ts.Members {
				gross += m.Gross
				net += m.Net
				played = max(played, m.CoursesPlayed)
				for _, r := range m.Rounds {
					require.GreaterOrEqual(t, r.Net, 1)
				}
			}
			assert.Equal(t, gross, ts.Gross)
			assert.Equal(t, net, ts.Net)
			assert.Equal(t, played, ts.CoursesPlayed)
			if i > 0 {
				assert.LessOrEqual(t, CompareTotals(got[i-1].Total(mode), ts.Total(mode), mode), 0)
			}
		}
	}
}
