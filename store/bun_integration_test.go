//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"

	"github.com/padraicbc/golftrip/courses"
	"github.com/padraicbc/golftrip/db"
	"github.com/padraicbc/golftrip/models"
	"github.com/padraicbc/golftrip/scoring"
	"github.com/padraicbc/golftrip/store"
)

func setupPostgres(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("golftrip"),
		postgres.WithUsername("golftrip"),
		postgres.WithPassword("golftrip"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(45*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	bdb, err := db.Open(ctx, dsn, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bdb.Close() })

	require.NoError(t, db.CreateTables(ctx, bdb))
	return bdb
}

func TestBunStore(t *testing.T) {
	ctx := context.Background()
	s := store.New(setupPostgres(t), 2)

	_, err := s.ActiveTour(ctx)
	assert.ErrorIs(t, err, store.ErrNoActiveTour)

	old := &models.Tour{Name: "Kerry", Year: 2025, IsActive: true}
	require.NoError(t, s.CreateTour(ctx, old))
	tour := &models.Tour{Name: "Algarve", Year: 2026, IsActive: true}
	require.NoError(t, s.CreateTour(ctx, tour))

	active, err := s.ActiveTour(ctx)
	require.NoError(t, err)
	assert.Equal(t, tour.ID, active.ID)
	tours, err := s.Tours(ctx)
	require.NoError(t, err)
	require.Len(t, tours, 2)
	assert.False(t, tours[1].IsActive)

	ref, err := courses.Default().Find("amendoeira")
	require.NoError(t, err)
	course := models.NewCourse(tour.ID, ref)
	require.NoError(t, s.CreateCourse(ctx, course))
	loaded, err := s.CourseByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, ref.Holes, loaded.Holes)

	var users []*models.User
	for _, name := range []string{"padraic", "mike", "john"} {
		u := &models.User{ID: uuid.New(), Username: name, Password: "x", Name: name, Handicap: 18}
		require.NoError(t, s.UpsertUser(ctx, u))
		users = append(users, u)
	}
	again := &models.User{ID: uuid.New(), Username: "padraic", Password: "y", Name: "Padraic", Handicap: 12.4}
	require.NoError(t, s.UpsertUser(ctx, again))
	assert.Equal(t, users[0].ID, again.ID)

	require.NoError(t, s.UpdateHandicap(ctx, users[1].ID, 24))
	mike, err := s.UserByUsername(ctx, "mike")
	require.NoError(t, err)
	assert.Equal(t, 24.0, mike.Handicap)
	assert.ErrorIs(t, s.UpdateHandicap(ctx, uuid.New(), 10), store.ErrNotFound)

	team := &models.Team{TourID: tour.ID, Name: "Birdie Hunters", CaptainID: users[0].ID}
	require.NoError(t, s.CreateTeam(ctx, team))
	twin := &models.Team{TourID: tour.ID, Name: "Birdie Hunters", CaptainID: users[2].ID}
	assert.ErrorIs(t, s.CreateTeam(ctx, twin), store.ErrDuplicate)
	orphan := &models.Team{TourID: tour.ID + 100, Name: "Ghosts", CaptainID: users[2].ID}
	assert.ErrorIs(t, s.CreateTeam(ctx, orphan), store.ErrNotFound)
	require.NoError(t, s.AddTeamMember(ctx, team.ID, users[1].ID))
	assert.ErrorIs(t, s.AddTeamMember(ctx, team.ID, users[2].ID), store.ErrTeamFull)
	assert.ErrorIs(t, s.RemoveTeamMember(ctx, team.ID, users[0].ID), store.ErrCaptainRemoval)

	teams, err := s.Teams(ctx, tour.ID)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	require.Len(t, teams[0].Members, 2)
	assert.Equal(t, "Padraic", teams[0].Captain.Name)
	assert.Equal(t, "mike", teams[0].Members[1].User.Username)

	first := []models.Score{
		{UserID: users[0].ID, CourseID: course.ID, HoleNumber: 1, Strokes: 7, RecordedBy: users[0].ID},
		{UserID: users[0].ID, CourseID: course.ID, HoleNumber: 2, Strokes: 4, RecordedBy: users[0].ID},
	}
	require.NoError(t, s.SaveRound(ctx, first))
	require.NoError(t, s.SaveRound(ctx, []models.Score{
		{UserID: users[0].ID, CourseID: course.ID, HoleNumber: 1, Strokes: 5, ThreePutt: true, RecordedBy: users[1].ID},
	}))
	scores, err := s.Scores(ctx, course.ID, users[0].ID)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, 5, scores[0].Strokes)
	assert.True(t, scores[0].ThreePutt)

	snap, err := store.LoadSnapshot(ctx, s, tour.ID, "", 4)
	require.NoError(t, err)
	board, err := snap.Build("", scoring.ModeGross)
	require.NoError(t, err)
	assert.Equal(t, 9, board[0].Gross)

	require.NoError(t, s.DeleteRound(ctx, course.ID, users[0].ID))
	scores, err = s.Scores(ctx, course.ID, users[0].ID)
	require.NoError(t, err)
	assert.Empty(t, scores)

	desc := "lost ball in the water"
	require.NoError(t, s.AddFine(ctx, &models.Fine{TourID: tour.ID, UserID: users[1].ID, Category: "Water", Amount: 1, Description: &desc, RecordedBy: users[0].ID}))
	fines, err := s.Fines(ctx, tour.ID)
	require.NoError(t, err)
	require.Len(t, fines, 1)
	assert.Equal(t, "mike", fines[0].User.Username)

	_, err = s.TourByID(ctx, tour.ID+100)
	assert.ErrorIs(t, err, store.ErrNotFound)
	lost := &models.Fine{TourID: tour.ID + 100, UserID: users[1].ID, Category: "Woody", Amount: 1, RecordedBy: users[0].ID}
	assert.ErrorIs(t, s.AddFine(ctx, lost), store.ErrNotFound)
}
