package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/padraicbc/golftrip/models"
	"github.com/padraicbc/golftrip/report"
	"github.com/padraicbc/golftrip/store"
)

var errParMismatch = errors.New("scorecard pars do not match the course")

type savedRound struct {
	username string
	holes    int
}

// blankCard writes a scorecard for the course listing every member of the
// course's tour teams.
func blankCard(ctx context.Context, s store.Store, courseID int) ([]byte, error) {
	course, err := s.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	teams, err := s.Teams(ctx, course.TourID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool)
	var usernames []string
	for _, t := range teams {
		for _, m := range t.Members {
			if m.User == nil || seen[m.UserID] {
				continue
			}
			seen[m.UserID] = true
			usernames = append(usernames, m.User.Username)
		}
	}
	return report.ScorecardTemplate(course.Scoring(), usernames)
}

// importCard checks the card against the course and saves one round per
// player row. Every username is resolved before anything is written.
func importCard(ctx context.Context, s store.Store, courseID int, card *report.Scorecard, recorder string) ([]savedRound, error) {
	course, err := s.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	for i, h := range course.Holes {
		if i < len(card.Pars) && card.Pars[i] != h.Par {
			return nil, fmt.Errorf("%w: hole %d is par %d, card says %d", errParMismatch, h.Number, h.Par, card.Pars[i])
		}
	}

	var recordedBy uuid.UUID
	if recorder != "" {
		u, err := s.UserByUsername(ctx, recorder)
		if err != nil {
			return nil, fmt.Errorf("recorder %q: %w", recorder, err)
		}
		recordedBy = u.ID
	}

	rounds := make([][]models.Score, 0, len(card.Players))
	for _, p := range card.Players {
		u, err := s.UserByUsername(ctx, p.Username)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", p.Username, err)
		}
		by := recordedBy
		if by == uuid.Nil {
			by = u.ID
		}
		entries := p.Entries(u.ID.String(), course.Key())
		round := make([]models.Score, 0, len(entries))
		for _, e := range entries {
			round = append(round, models.Score{
				UserID:     u.ID,
				CourseID:   courseID,
				HoleNumber: e.Hole,
				Strokes:    e.Strokes,
				RecordedBy: by,
			})
		}
		rounds = append(rounds, round)
	}

	saved := make([]savedRound, 0, len(rounds))
	for i, round := range rounds {
		if len(round) == 0 {
			continue
		}
		if err := s.SaveRound(ctx, round); err != nil {
			return saved, fmt.Errorf("saving %q: %w", card.Players[i].Username, err)
		}
		saved = append(saved, savedRound{username: card.Players[i].Username, holes: len(round)})
	}
	return saved, nil
}
