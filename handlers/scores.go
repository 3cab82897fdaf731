package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/padraicbc/golftrip/models"
	"github.com/padraicbc/golftrip/scoring"
)

const (
	minStrokes = 1
	maxStrokes = 12
)

type holeData struct {
	Number          int  `json:"number"`
	Par             int  `json:"par"`
	StrokeIndex     int  `json:"strokeIndex"`
	HandicapStrokes int  `json:"handicapStrokes"`
	Strokes         *int `json:"strokes"`
	ThreePutt       bool `json:"threePutt"`
	Ring            bool `json:"ring"`
	Points          *int `json:"points"`
}

type scorecardData struct {
	Course  courseData           `json:"course"`
	Player  playerData           `json:"player"`
	Holes   []holeData           `json:"holes"`
	Summary scoring.RoundSummary `json:"summary"`
	Display string               `json:"display"`
}

type holeScore struct {
	Hole      int  `json:"hole"`
	Strokes   int  `json:"strokes"`
	ThreePutt bool `json:"threePutt"`
	Ring      bool `json:"ring"`
}

type saveRoundRequest struct {
	Holes []holeScore `json:"holes"`
}

func buildScorecard(course *models.Course, user *models.User, scores []models.Score) scorecardData {
	ref := course.Scoring()
	entries := make([]scoring.ScoreEntry, len(scores))
	byHole := make(map[int]scoring.ScoreEntry, len(scores))
	for i := range scores {
		entries[i] = scores[i].Entry()
		byHole[scores[i].HoleNumber] = entries[i]
	}

	summary := scoring.SummarizeRound(user.ID.String(), user.Handicap, ref, entries)
	allocated := scoring.AllocateHandicapStrokes(summary.CourseHandicap, ref.Holes)

	holes := make([]holeData, 0, len(ref.Holes))
	for i, h := range ref.Holes {
		hd := holeData{Number: h.Number, Par: h.Par, StrokeIndex: h.StrokeIndex}
		if i < scoring.HolesPerRound {
			hd.HandicapStrokes = allocated[i]
		}
		if e, ok := byHole[h.Number]; ok {
			strokes := e.Strokes
			points := scoring.StablefordPoints(strokes-hd.HandicapStrokes, h.Par)
			hd.Strokes = &strokes
			hd.Points = &points
			hd.ThreePutt = e.ThreePutt
			hd.Ring = e.Ring
		}
		holes = append(holes, hd)
	}

	return scorecardData{
		Course:  toCourseData(course),
		Player:  toPlayerData(user),
		Holes:   holes,
		Summary: summary,
		Display: scoring.FormatScore(summary.Gross, summary.Par),
	}
}

func (h *Handler) scorecard(c echo.Context, courseID int, userID uuid.UUID) (scorecardData, error) {
	ctx := c.Request().Context()
	course, err := h.store.CourseByID(ctx, courseID)
	if err != nil {
		return scorecardData{}, h.fail(c, err)
	}
	user, err := h.store.UserByID(ctx, userID)
	if err != nil {
		return scorecardData{}, h.fail(c, err)
	}
	scores, err := h.store.Scores(ctx, courseID, userID)
	if err != nil {
		return scorecardData{}, h.fail(c, err)
	}
	return buildScorecard(course, user, scores), nil
}

func scorecardParams(c echo.Context) (int, uuid.UUID, error) {
	courseID, err := intParam(c, "courseID")
	if err != nil {
		return 0, uuid.Nil, err
	}
	userID, err := uuidParam(c, "userID")
	if err != nil {
		return 0, uuid.Nil, err
	}
	return courseID, userID, nil
}

// GetScorecard returns a player's card on a course with per-hole handicap
// strokes and Stableford points plus the round summary.
func (h *Handler) GetScorecard(c echo.Context) error {
	courseID, userID, err := scorecardParams(c)
	if err != nil {
		return err
	}
	card, err := h.scorecard(c, courseID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, card)
}

// SaveScorecard records holes for a player. Any signed-in player may keep the
// card for their group; each hole overwrites what was there.
func (h *Handler) SaveScorecard(c echo.Context) error {
	courseID, userID, err := scorecardParams(c)
	if err != nil {
		return err
	}
	recorder, err := currentUser(c)
	if err != nil {
		return err
	}

	var req saveRoundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Holes) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no holes to save")
	}

	ctx := c.Request().Context()
	course, err := h.store.CourseByID(ctx, courseID)
	if err != nil {
		return h.fail(c, err)
	}
	ref := course.Scoring()

	// Later entries for the same hole win.
	latest := make(map[int]int, len(req.Holes))
	scores := make([]models.Score, 0, len(req.Holes))
	for _, hs := range req.Holes {
		if _, ok := ref.HoleByNumber(hs.Hole); !ok {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s has no hole %d", course.Name, hs.Hole))
		}
		if hs.Strokes < minStrokes || hs.Strokes > maxStrokes {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("hole %d: strokes must be between %d and %d", hs.Hole, minStrokes, maxStrokes))
		}
		score := models.Score{
			UserID:     userID,
			CourseID:   courseID,
			HoleNumber: hs.Hole,
			Strokes:    hs.Strokes,
			ThreePutt:  hs.ThreePutt,
			Ring:       hs.Ring,
			RecordedBy: recorder,
		}
		if i, ok := latest[hs.Hole]; ok {
			scores[i] = score
			continue
		}
		latest[hs.Hole] = len(scores)
		scores = append(scores, score)
	}

	if _, err := h.store.UserByID(ctx, userID); err != nil {
		return h.fail(c, err)
	}
	if err := h.store.SaveRound(ctx, scores); err != nil {
		return h.fail(c, err)
	}

	card, err := h.scorecard(c, courseID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, card)
}

// DeleteScorecard removes every hole of a player's round on a course.
func (h *Handler) DeleteScorecard(c echo.Context) error {
	courseID, userID, err := scorecardParams(c)
	if err != nil {
		return err
	}
	if err := h.store.DeleteRound(c.Request().Context(), courseID, userID); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
