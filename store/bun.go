package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/padraicbc/golftrip/models"
)

// BunStore implements Store on a Postgres database.
type BunStore struct {
	db         *bun.DB
	maxMembers int
}

var _ Store = (*BunStore)(nil)

// New returns a BunStore that caps teams at maxMembers.
func New(db *bun.DB, maxMembers int) *BunStore {
	return &BunStore{db: db, maxMembers: maxMembers}
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel
	}
	return err
}

func isDuplicate(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}

// isMissingRef reports a foreign key violation: the referenced tour, course
// or user does not exist.
func isMissingRef(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23503"
}

// insertErr maps constraint violations on insert to store sentinels.
func insertErr(what string, err error) error {
	switch {
	case isDuplicate(err):
		return fmt.Errorf("%s: %w", what, ErrDuplicate)
	case isMissingRef(err):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func (s *BunStore) ActiveTour(ctx context.Context) (*models.Tour, error) {
	tour := &models.Tour{}
	err := s.db.NewSelect().Model(tour).
		Where("tr.is_active").
		OrderExpr("tr.id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("active tour: %w", notFound(err, ErrNoActiveTour))
	}
	return tour, nil
}

func (s *BunStore) Tours(ctx context.Context) ([]models.Tour, error) {
	var tours []models.Tour
	if err := s.db.NewSelect().Model(&tours).OrderExpr("tr.year DESC, tr.id DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("tours: %w", err)
	}
	return tours, nil
}

func (s *BunStore) CreateTour(ctx context.Context, tour *models.Tour) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if tour.IsActive {
			_, err := tx.NewUpdate().Model((*models.Tour)(nil)).
				Set("is_active = FALSE").
				Where("is_active").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("deactivating tours: %w", err)
			}
		}
		if _, err := tx.NewInsert().Model(tour).Returning("*").Exec(ctx); err != nil {
			return fmt.Errorf("inserting tour: %w", err)
		}
		return nil
	})
}

func (s *BunStore) TourByID(ctx context.Context, id int) (*models.Tour, error) {
	tour := &models.Tour{}
	if err := s.db.NewSelect().Model(tour).Where("tr.id = ?", id).Scan(ctx); err != nil {
		return nil, fmt.Errorf("tour %d: %w", id, notFound(err, ErrNotFound))
	}
	return tour, nil
}

func (s *BunStore) Courses(ctx context.Context, tourID int) ([]models.Course, error) {
	var courses []models.Course
	err := s.db.NewSelect().Model(&courses).
		Where("c.tour_id = ?", tourID).
		OrderExpr("c.play_date ASC NULLS LAST, c.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("courses of tour %d: %w", tourID, err)
	}
	return courses, nil
}

func (s *BunStore) CourseByID(ctx context.Context, id int) (*models.Course, error) {
	course := &models.Course{}
	if err := s.db.NewSelect().Model(course).Where("c.id = ?", id).Scan(ctx); err != nil {
		return nil, fmt.Errorf("course %d: %w", id, notFound(err, ErrNotFound))
	}
	return course, nil
}

func (s *BunStore) CreateCourse(ctx context.Context, course *models.Course) error {
	if _, err := s.db.NewInsert().Model(course).Returning("*").Exec(ctx); err != nil {
		return insertErr(fmt.Sprintf("inserting course %q", course.Name), err)
	}
	return nil
}

func (s *BunStore) Teams(ctx context.Context, tourID int) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.NewSelect().Model(&teams).
		Relation("Captain").
		Relation("Members", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("tm.id ASC")
		}).
		Relation("Members.User").
		Where("t.tour_id = ?", tourID).
		OrderExpr("t.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("teams of tour %d: %w", tourID, err)
	}
	return teams, nil
}

func (s *BunStore) TeamByID(ctx context.Context, id int) (*models.Team, error) {
	team := &models.Team{}
	err := s.db.NewSelect().Model(team).
		Relation("Captain").
		Relation("Members", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("tm.id ASC")
		}).
		Relation("Members.User").
		Where("t.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("team %d: %w", id, notFound(err, ErrNotFound))
	}
	return team, nil
}

func (s *BunStore) CreateTeam(ctx context.Context, team *models.Team) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(team).Returning("*").Exec(ctx); err != nil {
			return insertErr(fmt.Sprintf("team %q", team.Name), err)
		}
		captain := &models.TeamMember{TeamID: team.ID, UserID: team.CaptainID}
		if _, err := tx.NewInsert().Model(captain).Returning("*").Exec(ctx); err != nil {
			return fmt.Errorf("adding captain: %w", err)
		}
		team.Members = []*models.TeamMember{captain}
		return nil
	})
}

func (s *BunStore) AddTeamMember(ctx context.Context, teamID int, userID uuid.UUID) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		// Lock the team row so concurrent adds cannot both pass the cap.
		err := tx.NewSelect().Model((*models.Team)(nil)).
			ColumnExpr("t.id").
			Where("t.id = ?", teamID).
			For("UPDATE").
			Scan(ctx, new(int))
		if err != nil {
			return fmt.Errorf("team %d: %w", teamID, notFound(err, ErrNotFound))
		}

		count, err := tx.NewSelect().Model((*models.TeamMember)(nil)).
			Where("tm.team_id = ?", teamID).
			Count(ctx)
		if err != nil {
			return fmt.Errorf("counting members of team %d: %w", teamID, err)
		}
		if count >= s.maxMembers {
			return fmt.Errorf("team %d has %d members: %w", teamID, count, ErrTeamFull)
		}

		member := &models.TeamMember{TeamID: teamID, UserID: userID}
		if _, err := tx.NewInsert().Model(member).Exec(ctx); err != nil {
			return insertErr(fmt.Sprintf("member %s of team %d", userID, teamID), err)
		}
		return nil
	})
}

func (s *BunStore) RemoveTeamMember(ctx context.Context, teamID int, userID uuid.UUID) error {
	team := &models.Team{}
	if err := s.db.NewSelect().Model(team).Where("t.id = ?", teamID).Scan(ctx); err != nil {
		return fmt.Errorf("team %d: %w", teamID, notFound(err, ErrNotFound))
	}
	if team.CaptainID == userID {
		return ErrCaptainRemoval
	}

	res, err := s.db.NewDelete().Model((*models.TeamMember)(nil)).
		Where("team_id = ?", teamID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("removing member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("member %s of team %d: %w", userID, teamID, ErrNotFound)
	}
	return nil
}

func (s *BunStore) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.NewSelect().Model(&users).OrderExpr("u.name ASC, u.surname ASC, u.username ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	return users, nil
}

func (s *BunStore) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	if err := s.db.NewSelect().Model(user).Where("u.id = ?", id).Scan(ctx); err != nil {
		return nil, fmt.Errorf("user %s: %w", id, notFound(err, ErrNotFound))
	}
	return user, nil
}

func (s *BunStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	if err := s.db.NewSelect().Model(user).Where("u.username = ?", username).Scan(ctx); err != nil {
		return nil, fmt.Errorf("user %q: %w", username, notFound(err, ErrNotFound))
	}
	return user, nil
}

func (s *BunStore) UpsertUser(ctx context.Context, user *models.User) error {
	_, err := s.db.NewInsert().Model(user).
		On("CONFLICT (username) DO UPDATE").
		Set("password = EXCLUDED.password").
		Set("name = EXCLUDED.name").
		Set("surname = EXCLUDED.surname").
		Set("email = EXCLUDED.email").
		Set("handicap = EXCLUDED.handicap").
		Set("is_admin = EXCLUDED.is_admin").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("saving user %q: %w", user.Username, err)
	}
	return nil
}

func (s *BunStore) UpdateHandicap(ctx context.Context, userID uuid.UUID, handicap float64) error {
	res, err := s.db.NewUpdate().Model((*models.User)(nil)).
		Set("handicap = ?", handicap).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("updating handicap: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return nil
}

func (s *BunStore) Scores(ctx context.Context, courseID int, userID uuid.UUID) ([]models.Score, error) {
	var scores []models.Score
	err := s.db.NewSelect().Model(&scores).
		Where("s.course_id = ?", courseID).
		Where("s.user_id = ?", userID).
		OrderExpr("s.hole_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scores of %s on course %d: %w", userID, courseID, err)
	}
	return scores, nil
}

func (s *BunStore) SaveRound(ctx context.Context, scores []models.Score) error {
	if len(scores) == 0 {
		return nil
	}
	now := time.Now()
	for i := range scores {
		scores[i].UpdatedAt = now
	}
	_, err := s.db.NewInsert().Model(&scores).
		On("CONFLICT (user_id, course_id, hole_number) DO UPDATE").
		Set("strokes = EXCLUDED.strokes").
		Set("three_putt = EXCLUDED.three_putt").
		Set("ring = EXCLUDED.ring").
		Set("recorded_by = EXCLUDED.recorded_by").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return insertErr("saving round", err)
	}
	return nil
}

func (s *BunStore) DeleteRound(ctx context.Context, courseID int, userID uuid.UUID) error {
	_, err := s.db.NewDelete().Model((*models.Score)(nil)).
		Where("course_id = ?", courseID).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("deleting round: %w", err)
	}
	return nil
}

func (s *BunStore) Fines(ctx context.Context, tourID int) ([]models.Fine, error) {
	var fines []models.Fine
	err := s.db.NewSelect().Model(&fines).
		Relation("User").
		Where("f.tour_id = ?", tourID).
		OrderExpr("f.created_at DESC, f.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("fines of tour %d: %w", tourID, err)
	}
	return fines, nil
}

func (s *BunStore) AddFine(ctx context.Context, fine *models.Fine) error {
	if _, err := s.db.NewInsert().Model(fine).Returning("*").Exec(ctx); err != nil {
		return insertErr("inserting fine", err)
	}
	return nil
}
