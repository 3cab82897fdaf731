// Package storetest provides an in-memory store.Store for tests.
package storetest

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/padraicbc/golftrip/models"
	"github.com/padraicbc/golftrip/store"
)

type scoreKey struct {
	userID   uuid.UUID
	courseID int
	hole     int
}

// FakeStore keeps everything in maps and follows the same rules as the
// Postgres store. Set a XxxFunc field to override one method.
type FakeStore struct {
	MaxMembers int

	ScoresFunc  func(ctx context.Context, courseID int, userID uuid.UUID) ([]models.Score, error)
	TeamsFunc   func(ctx context.Context, tourID int) ([]models.Team, error)
	SaveRoundFn func(ctx context.Context, scores []models.Score) error

	mu      sync.Mutex
	trace   []string
	nextID  int
	tours   []*models.Tour
	courses []*models.Course
	teams   []*models.Team
	members []*models.TeamMember
	users   map[uuid.UUID]*models.User
	scores  map[scoreKey]*models.Score
	fines   []*models.Fine
}

var _ store.Store = (*FakeStore)(nil)

// New returns an empty FakeStore capping teams at maxMembers.
func New(maxMembers int) *FakeStore {
	return &FakeStore{
		MaxMembers: maxMembers,
		users:      make(map[uuid.UUID]*models.User),
		scores:     make(map[scoreKey]*models.Score),
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeStore) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.trace)
}

func (f *FakeStore) record(name string) {
	f.mu.Lock()
	f.trace = append(f.trace, name)
	f.mu.Unlock()
}

func (f *FakeStore) id() int {
	f.nextID++
	return f.nextID
}

func (f *FakeStore) ActiveTour(ctx context.Context) (*models.Tour, error) {
	f.record("ActiveTour")
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.tours) - 1; i >= 0; i-- {
		if f.tours[i].IsActive {
			t := *f.tours[i]
			return &t, nil
		}
	}
	return nil, store.ErrNoActiveTour
}

func (f *FakeStore) Tours(ctx context.Context) ([]models.Tour, error) {
	f.record("Tours")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Tour, 0, len(f.tours))
	for _, t := range f.tours {
		out = append(out, *t)
	}
	slices.SortFunc(out, func(a, b models.Tour) int {
		if c := cmp.Compare(b.Year, a.Year); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (f *FakeStore) CreateTour(ctx context.Context, tour *models.Tour) error {
	f.record("CreateTour")
	f.mu.Lock()
	defer f.mu.Unlock()
	if tour.IsActive {
		for _, t := range f.tours {
			t.IsActive = false
		}
	}
	tour.ID = f.id()
	tour.CreatedAt = time.Now()
	t := *tour
	f.tours = append(f.tours, &t)
	return nil
}

func (f *FakeStore) TourByID(ctx context.Context, id int) (*models.Tour, error) {
	f.record("TourByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	if t := f.tour(id); t != nil {
		out := *t
		return &out, nil
	}
	return nil, fmt.Errorf("tour %d: %w", id, store.ErrNotFound)
}

// tour finds a tour by ID; f.mu must be held.
func (f *FakeStore) tour(id int) *models.Tour {
	for _, t := range f.tours {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (f *FakeStore) Courses(ctx context.Context, tourID int) ([]models.Course, error) {
	f.record("Courses")
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Course
	for _, c := range f.courses {
		if c.TourID == tourID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *FakeStore) CourseByID(ctx context.Context, id int) (*models.Course, error) {
	f.record("CourseByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.courses {
		if c.ID == id {
			out := *c
			return &out, nil
		}
	}
	return nil, fmt.Errorf("course %d: %w", id, store.ErrNotFound)
}

func (f *FakeStore) CreateCourse(ctx context.Context, course *models.Course) error {
	f.record("CreateCourse")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tour(course.TourID) == nil {
		return fmt.Errorf("course on tour %d: %w", course.TourID, store.ErrNotFound)
	}
	course.ID = f.id()
	c := *course
	f.courses = append(f.courses, &c)
	return nil
}

// team assembles a team with its relations; f.mu must be held.
func (f *FakeStore) team(t *models.Team) models.Team {
	out := *t
	out.Members = nil
	if u, ok := f.users[t.CaptainID]; ok {
		captain := *u
		out.Captain = &captain
	}
	for _, m := range f.members {
		if m.TeamID != t.ID {
			continue
		}
		member := *m
		if u, ok := f.users[m.UserID]; ok {
			user := *u
			member.User = &user
		}
		out.Members = append(out.Members, &member)
	}
	return out
}

func (f *FakeStore) Teams(ctx context.Context, tourID int) ([]models.Team, error) {
	f.record("Teams")
	if f.TeamsFunc != nil {
		return f.TeamsFunc(ctx, tourID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Team
	for _, t := range f.teams {
		if t.TourID == tourID {
			out = append(out, f.team(t))
		}
	}
	return out, nil
}

func (f *FakeStore) TeamByID(ctx context.Context, id int) (*models.Team, error) {
	f.record("TeamByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.teams {
		if t.ID == id {
			out := f.team(t)
			return &out, nil
		}
	}
	return nil, fmt.Errorf("team %d: %w", id, store.ErrNotFound)
}

func (f *FakeStore) CreateTeam(ctx context.Context, team *models.Team) error {
	f.record("CreateTeam")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tour(team.TourID) == nil {
		return fmt.Errorf("team on tour %d: %w", team.TourID, store.ErrNotFound)
	}
	if _, ok := f.users[team.CaptainID]; !ok {
		return fmt.Errorf("captain %s: %w", team.CaptainID, store.ErrNotFound)
	}
	for _, t := range f.teams {
		if t.TourID == team.TourID && t.Name == team.Name {
			return fmt.Errorf("team %q: %w", team.Name, store.ErrDuplicate)
		}
	}
	team.ID = f.id()
	t := *team
	t.Members = nil
	t.Captain = nil
	f.teams = append(f.teams, &t)

	captain := &models.TeamMember{ID: f.id(), TeamID: team.ID, UserID: team.CaptainID}
	f.members = append(f.members, captain)
	team.Members = []*models.TeamMember{captain}
	return nil
}

func (f *FakeStore) AddTeamMember(ctx context.Context, teamID int, userID uuid.UUID) error {
	f.record("AddTeamMember")
	f.mu.Lock()
	defer f.mu.Unlock()
	if !slices.ContainsFunc(f.teams, func(t *models.Team) bool { return t.ID == teamID }) {
		return fmt.Errorf("team %d: %w", teamID, store.ErrNotFound)
	}
	count := 0
	for _, m := range f.members {
		if m.TeamID != teamID {
			continue
		}
		if m.UserID == userID {
			return fmt.Errorf("member %s of team %d: %w", userID, teamID, store.ErrDuplicate)
		}
		count++
	}
	if count >= f.MaxMembers {
		return fmt.Errorf("team %d has %d members: %w", teamID, count, store.ErrTeamFull)
	}
	f.members = append(f.members, &models.TeamMember{ID: f.id(), TeamID: teamID, UserID: userID})
	return nil
}

func (f *FakeStore) RemoveTeamMember(ctx context.Context, teamID int, userID uuid.UUID) error {
	f.record("RemoveTeamMember")
	f.mu.Lock()
	defer f.mu.Unlock()
	i := slices.IndexFunc(f.teams, func(t *models.Team) bool { return t.ID == teamID })
	if i < 0 {
		return fmt.Errorf("team %d: %w", teamID, store.ErrNotFound)
	}
	if f.teams[i].CaptainID == userID {
		return store.ErrCaptainRemoval
	}
	j := slices.IndexFunc(f.members, func(m *models.TeamMember) bool {
		return m.TeamID == teamID && m.UserID == userID
	})
	if j < 0 {
		return fmt.Errorf("member %s of team %d: %w", userID, teamID, store.ErrNotFound)
	}
	f.members = slices.Delete(f.members, j, j+1)
	return nil
}

func (f *FakeStore) Users(ctx context.Context) ([]models.User, error) {
	f.record("Users")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	slices.SortFunc(out, func(a, b models.User) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Surname, b.Surname), cmp.Compare(a.Username, b.Username))
	})
	return out, nil
}

func (f *FakeStore) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	f.record("UserByID")
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, store.ErrNotFound)
	}
	out := *u
	return &out, nil
}

func (f *FakeStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	f.record("UserByUsername")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, store.ErrNotFound)
}

func (f *FakeStore) UpsertUser(ctx context.Context, user *models.User) error {
	f.record("UpsertUser")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			user.ID = u.ID
			user.CreatedAt = u.CreatedAt
			saved := *user
			f.users[u.ID] = &saved
			return nil
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	saved := *user
	f.users[user.ID] = &saved
	return nil
}

func (f *FakeStore) UpdateHandicap(ctx context.Context, userID uuid.UUID, handicap float64) error {
	f.record("UpdateHandicap")
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID, store.ErrNotFound)
	}
	u.Handicap = handicap
	return nil
}

func (f *FakeStore) Scores(ctx context.Context, courseID int, userID uuid.UUID) ([]models.Score, error) {
	f.record("Scores")
	if f.ScoresFunc != nil {
		return f.ScoresFunc(ctx, courseID, userID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Score
	for k, s := range f.scores {
		if k.courseID == courseID && k.userID == userID {
			out = append(out, *s)
		}
	}
	slices.SortFunc(out, func(a, b models.Score) int { return cmp.Compare(a.HoleNumber, b.HoleNumber) })
	return out, nil
}

func (f *FakeStore) SaveRound(ctx context.Context, scores []models.Score) error {
	f.record("SaveRound")
	if f.SaveRoundFn != nil {
		return f.SaveRoundFn(ctx, scores)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range scores {
		if _, ok := f.users[s.UserID]; !ok {
			return fmt.Errorf("score for user %s: %w", s.UserID, store.ErrNotFound)
		}
		if !slices.ContainsFunc(f.courses, func(c *models.Course) bool { return c.ID == s.CourseID }) {
			return fmt.Errorf("score on course %d: %w", s.CourseID, store.ErrNotFound)
		}
	}
	now := time.Now()
	for _, s := range scores {
		k := scoreKey{userID: s.UserID, courseID: s.CourseID, hole: s.HoleNumber}
		if existing, ok := f.scores[k]; ok {
			s.ID = existing.ID
		} else {
			s.ID = f.id()
		}
		s.UpdatedAt = now
		f.scores[k] = &s
	}
	return nil
}

func (f *FakeStore) DeleteRound(ctx context.Context, courseID int, userID uuid.UUID) error {
	f.record("DeleteRound")
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.scores {
		if k.courseID == courseID && k.userID == userID {
			delete(f.scores, k)
		}
	}
	return nil
}

func (f *FakeStore) Fines(ctx context.Context, tourID int) ([]models.Fine, error) {
	f.record("Fines")
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Fine
	for i := len(f.fines) - 1; i >= 0; i-- {
		fine := *f.fines[i]
		if fine.TourID != tourID {
			continue
		}
		if u, ok := f.users[fine.UserID]; ok {
			user := *u
			fine.User = &user
		}
		out = append(out, fine)
	}
	return out, nil
}

func (f *FakeStore) AddFine(ctx context.Context, fine *models.Fine) error {
	f.record("AddFine")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tour(fine.TourID) == nil {
		return fmt.Errorf("fine on tour %d: %w", fine.TourID, store.ErrNotFound)
	}
	if _, ok := f.users[fine.UserID]; !ok {
		return fmt.Errorf("fine for user %s: %w", fine.UserID, store.ErrNotFound)
	}
	fine.ID = f.id()
	fine.CreatedAt = time.Now()
	saved := *fine
	f.fines = append(f.fines, &saved)
	return nil
}
