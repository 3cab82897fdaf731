// Package store is the persistence boundary of the trip: tours, courses,
// teams, players, scorecards and fines, backed by Postgres through bun.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/padraicbc/golftrip/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrNoActiveTour   = errors.New("no active tour")
	ErrTeamFull       = errors.New("team is full")
	ErrCaptainRemoval = errors.New("the captain cannot leave their team")
	ErrDuplicate      = errors.New("already exists")
)

// Store is everything the HTTP layer and the CLIs read and write.
type Store interface {
	ActiveTour(ctx context.Context) (*models.Tour, error)
	Tours(ctx context.Context) ([]models.Tour, error)
	TourByID(ctx context.Context, id int) (*models.Tour, error)
	// CreateTour inserts a tour. An active tour deactivates every other tour.
	CreateTour(ctx context.Context, tour *models.Tour) error

	Courses(ctx context.Context, tourID int) ([]models.Course, error)
	CourseByID(ctx context.Context, id int) (*models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) error

	// Teams returns a tour's teams with captain, members and member users loaded.
	Teams(ctx context.Context, tourID int) ([]models.Team, error)
	TeamByID(ctx context.Context, id int) (*models.Team, error)
	// CreateTeam inserts the team and its captain as the first member.
	CreateTeam(ctx context.Context, team *models.Team) error
	AddTeamMember(ctx context.Context, teamID int, userID uuid.UUID) error
	RemoveTeamMember(ctx context.Context, teamID int, userID uuid.UUID) error

	Users(ctx context.Context) ([]models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	// UpsertUser inserts a user or updates the one with the same username.
	UpsertUser(ctx context.Context, user *models.User) error
	UpdateHandicap(ctx context.Context, userID uuid.UUID, handicap float64) error

	Scores(ctx context.Context, courseID int, userID uuid.UUID) ([]models.Score, error)
	// SaveRound upserts every hole in scores on (user_id, course_id, hole_number).
	SaveRound(ctx context.Context, scores []models.Score) error
	DeleteRound(ctx context.Context, courseID int, userID uuid.UUID) error

	Fines(ctx context.Context, tourID int) ([]models.Fine, error)
	AddFine(ctx context.Context, fine *models.Fine) error
}
