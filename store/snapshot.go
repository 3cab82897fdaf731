package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/padraicbc/golftrip/leaderboard"
	"github.com/padraicbc/golftrip/models"
	"github.com/padraicbc/golftrip/scoring"
)

// Snapshot is everything leaderboard.Build needs for one tour, fetched in one
// pass and never modified afterwards.
type Snapshot struct {
	TourID  int
	Courses []scoring.Course
	Teams   []leaderboard.Team
}

// Build ranks the snapshot.
func (s *Snapshot) Build(courseFilter string, mode scoring.Mode) ([]leaderboard.TeamSummary, error) {
	return leaderboard.Build(s.Teams, s.Courses, courseFilter, mode)
}

type cardFetch struct {
	playerIndex int
	userID      uuid.UUID
	course      models.Course
	scores      []models.Score
}

// LoadSnapshot reads a tour's courses and teams, then fetches the card of
// every (course in scope, player) pair with at most concurrency requests in
// flight. The first failed fetch cancels the rest and no snapshot is returned.
func LoadSnapshot(ctx context.Context, s Store, tourID int, courseFilter string, concurrency int) (*Snapshot, error) {
	courseRows, err := s.Courses(ctx, tourID)
	if err != nil {
		return nil, err
	}
	teamRows, err := s.Teams(ctx, tourID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{TourID: tourID, Courses: make([]scoring.Course, 0, len(courseRows))}
	for i := range courseRows {
		snap.Courses = append(snap.Courses, courseRows[i].Scoring())
	}

	// A player on two teams is fetched once.
	var (
		players     []leaderboard.Player
		userIDs     []uuid.UUID
		playerIndex = make(map[string]int)
	)
	for _, t := range teamRows {
		for _, m := range t.Members {
			id := m.UserID.String()
			if _, ok := playerIndex[id]; ok {
				continue
			}
			p := leaderboard.Player{ID: id, Cards: make(map[string][]scoring.ScoreEntry)}
			if m.User != nil {
				p.Name = m.User.FullName()
				p.HandicapIndex = m.User.Handicap
			}
			playerIndex[id] = len(players)
			players = append(players, p)
			userIDs = append(userIDs, m.UserID)
		}
	}

	inScope := make(map[string]bool)
	for _, c := range leaderboard.InScope(snap.Courses, courseFilter) {
		inScope[c.Key] = true
	}

	var fetches []*cardFetch
	for i := range courseRows {
		if !inScope[courseRows[i].Key()] {
			continue
		}
		for pi := range players {
			fetches = append(fetches, &cardFetch{playerIndex: pi, userID: userIDs[pi], course: courseRows[i]})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for _, f := range fetches {
		g.Go(func() error {
			scores, err := s.Scores(gctx, f.course.ID, f.userID)
			if err != nil {
				return fmt.Errorf("loading card: %w", err)
			}
			f.scores = scores
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, f := range fetches {
		if len(f.scores) == 0 {
			continue
		}
		entries := make([]scoring.ScoreEntry, 0, len(f.scores))
		for i := range f.scores {
			entries = append(entries, f.scores[i].Entry())
		}
		players[f.playerIndex].Cards[f.course.Key()] = entries
	}

	for _, t := range teamRows {
		team := leaderboard.Team{
			ID:        strconv.Itoa(t.ID),
			Name:      t.Name,
			CaptainID: t.CaptainID.String(),
			Members:   make([]leaderboard.Player, 0, len(t.Members)),
		}
		for _, m := range t.Members {
			team.Members = append(team.Members, players[playerIndex[m.UserID.String()]])
		}
		snap.Teams = append(snap.Teams, team)
	}
	return snap, nil
}
