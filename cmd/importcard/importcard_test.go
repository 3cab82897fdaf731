package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/golftrip/courses"
	"github.com/padraicbc/golftrip/models"
	"github.com/padraicbc/golftrip/report"
	"github.com/padraicbc/golftrip/store"
	"github.com/padraicbc/golftrip/store/storetest"
)

func setup(t *testing.T) (*storetest.FakeStore, *models.Course, map[string]*models.User) {
	t.Helper()
	ctx := context.Background()
	fake := storetest.New(4)

	tour := &models.Tour{Name: "Algarve", Year: 2026, IsActive: true}
	require.NoError(t, fake.CreateTour(ctx, tour))
	ref, err := courses.Default().Find("quintadolago")
	require.NoError(t, err)
	course := models.NewCourse(tour.ID, ref)
	require.NoError(t, fake.CreateCourse(ctx, course))

	users := map[string]*models.User{}
	for _, name := range []string{"padraic", "mike"} {
		u := &models.User{Username: name, Handicap: 12}
		require.NoError(t, fake.UpsertUser(ctx, u))
		users[name] = u
	}
	team := &models.Team{TourID: tour.ID, Name: "Fairway Finders", CaptainID: users["padraic"].ID}
	require.NoError(t, fake.CreateTeam(ctx, team))
	require.NoError(t, fake.AddTeamMember(ctx, team.ID, users["mike"].ID))
	return fake, course, users
}

func TestBlankCardRoundTrip(t *testing.T) {
	ctx := context.Background()
	fake, course, users := setup(t)

	data, err := blankCard(ctx, fake, course.ID)
	require.NoError(t, err)

	card, err := report.ParseScorecard(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, card.Players, 2)
	assert.Equal(t, "padraic", card.Players[0].Username)

	card.Players[1].Strokes[0] = 4
	card.Players[1].Strokes[1] = 6

	saved, err := importCard(ctx, fake, course.ID, card, "padraic")
	require.NoError(t, err)
	require.Len(t, saved, 1, "a blank row saves nothing")
	assert.Equal(t, savedRound{username: "mike", holes: 2}, saved[0])

	scores, err := fake.Scores(ctx, course.ID, users["mike"].ID)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, users["padraic"].ID, scores[0].RecordedBy)
}

func TestImportCardRejects(t *testing.T) {
	ctx := context.Background()
	fake, course, _ := setup(t)

	var pars [18]int
	for i, h := range course.Holes {
		pars[i] = h.Par
	}

	wrongPar := &report.Scorecard{Pars: pars}
	wrongPar.Pars[0]++
	_, err := importCard(ctx, fake, course.ID, wrongPar, "")
	assert.ErrorIs(t, err, errParMismatch)

	stranger := &report.Scorecard{Pars: pars, Players: []report.PlayerCard{{Username: "mike", Strokes: [18]int{5}}, {Username: "tiger", Strokes: [18]int{3}}}}
	_, err = importCard(ctx, fake, course.ID, stranger, "")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NotContains(t, fake.Trace(), "SaveRound", "nothing is written when a player is unknown")

	_, err = importCard(ctx, fake, course.ID+100, stranger, "")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
