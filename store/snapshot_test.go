package store_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/golftrip/courses"
	"github.com/padraicbc/golftrip/models"
	"github.com/padraicbc/golftrip/scoring"
	"github.com/padraicbc/golftrip/store"
	"github.com/padraicbc/golftrip/store/storetest"
)

type fixture struct {
	fake    *storetest.FakeStore
	tour    *models.Tour
	courses []*models.Course
	users   []*models.User
	team    *models.Team
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	fx := &fixture{fake: storetest.New(4)}

	fx.tour = &models.Tour{Name: "Algarve", Year: 2026, IsActive: true}
	require.NoError(t, fx.fake.CreateTour(ctx, fx.tour))

	for _, ref := range courses.Default().All() {
		c := models.NewCourse(fx.tour.ID, ref)
		require.NoError(t, fx.fake.CreateCourse(ctx, c))
		fx.courses = append(fx.courses, c)
	}

	for _, name := range []string{"Padraic", "Mike"} {
		u := &models.User{Username: name, Name: name, Handicap: 18}
		require.NoError(t, fx.fake.UpsertUser(ctx, u))
		fx.users = append(fx.users, u)
	}

	fx.team = &models.Team{TourID: fx.tour.ID, Name: "Birdie Hunters", CaptainID: fx.users[0].ID}
	require.NoError(t, fx.fake.CreateTeam(ctx, fx.team))
	require.NoError(t, fx.fake.AddTeamMember(ctx, fx.team.ID, fx.users[1].ID))
	return fx
}

func (fx *fixture) card(t *testing.T, course *models.Course, user *models.User, strokes ...int) {
	t.Helper()
	scores := make([]models.Score, 0, len(strokes))
	for i, s := range strokes {
		scores = append(scores, models.Score{UserID: user.ID, CourseID: course.ID, HoleNumber: i + 1, Strokes: s, RecordedBy: user.ID})
	}
	require.NoError(t, fx.fake.SaveRound(context.Background(), scores))
}

func evenCard(total int) []int {
	out := make([]int, 18)
	for i := range out {
		out[i] = total / 18
		if i < total%18 {
			out[i]++
		}
	}
	return out
}

func TestLoadSnapshot_BuildsTeams(t *testing.T) {
	fx := newFixture(t)
	fx.card(t, fx.courses[0], fx.users[0], evenCard(95)...)
	fx.card(t, fx.courses[0], fx.users[1], evenCard(102)...)
	fx.card(t, fx.courses[1], fx.users[0], evenCard(90)...)

	snap, err := store.LoadSnapshot(context.Background(), fx.fake, fx.tour.ID, "", 2)
	require.NoError(t, err)
	require.Len(t, snap.Courses, 3)
	require.Len(t, snap.Teams, 1)

	team := snap.Teams[0]
	assert.Equal(t, fx.users[0].ID.String(), team.CaptainID)
	require.Len(t, team.Members, 2)
	assert.Equal(t, "Padraic", team.Members[0].Name)
	assert.Len(t, team.Members[0].Cards, 2)
	assert.Len(t, team.Members[1].Cards, 1)

	got, err := snap.Build("", scoring.ModeGross)
	require.NoError(t, err)
	assert.Equal(t, 95+102+90, got[0].Gross)
	assert.Equal(t, 2, got[0].CoursesPlayed)
}

func TestLoadSnapshot_CourseFilterLimitsFetches(t *testing.T) {
	fx := newFixture(t)
	fx.card(t, fx.courses[0], fx.users[0], evenCard(95)...)
	fx.card(t, fx.courses[1], fx.users[0], evenCard(90)...)

	var calls atomic.Int32
	fx.fake.ScoresFunc = func(ctx context.Context, courseID int, userID uuid.UUID) ([]models.Score, error) {
		calls.Add(1)
		assert.Equal(t, fx.courses[1].ID, courseID)
		return nil, nil
	}

	_, err := store.LoadSnapshot(context.Background(), fx.fake, fx.tour.ID, fx.courses[1].Key(), 4)
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestLoadSnapshot_BoundsConcurrency(t *testing.T) {
	fx := newFixture(t)

	var inFlight, peak atomic.Int32
	fx.fake.ScoresFunc = func(ctx context.Context, courseID int, userID uuid.UUID) ([]models.Score, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		return nil, nil
	}

	_, err := store.LoadSnapshot(context.Background(), fx.fake, fx.tour.ID, "", 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, peak.Load())
}

func TestLoadSnapshot_FetchFailureAbortsBuild(t *testing.T) {
	fx := newFixture(t)
	boom := errors.New("connection reset")
	fx.fake.ScoresFunc = func(ctx context.Context, courseID int, userID uuid.UUID) ([]models.Score, error) {
		return nil, boom
	}

	snap, err := store.LoadSnapshot(context.Background(), fx.fake, fx.tour.ID, "", 3)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, snap)
}

func TestLoadSnapshot_EmptyTour(t *testing.T) {
	fake := storetest.New(4)
	snap, err := store.LoadSnapshot(context.Background(), fake, 99, "", 8)
	require.NoError(t, err)
	assert.Empty(t, snap.Teams)

	got, err := snap.Build("", scoring.ModeNet)
	require.NoError(t, err)
	assert.Empty(t, got)
}
