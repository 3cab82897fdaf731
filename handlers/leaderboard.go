package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/golftrip/leaderboard"
	"github.com/padraicbc/golftrip/report"
	"github.com/padraicbc/golftrip/scoring"
	"github.com/padraicbc/golftrip/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type memberRow struct {
	leaderboard.PlayerSummary
	Display string `json:"display"`
}

type teamRow struct {
	leaderboard.TeamSummary
	Display string      `json:"display"`
	Members []memberRow `json:"members"`
}

type leaderboardData struct {
	TourID  int              `json:"tourID"`
	Mode    scoring.Mode     `json:"mode"`
	Course  string           `json:"course"`
	Courses []scoring.Course `json:"courses"`
	Teams   []teamRow        `json:"teams"`
}

type board struct {
	tourID int
	mode   scoring.Mode
	filter string
	scope  []scoring.Course
	teams  []leaderboard.TeamSummary
}

// loadBoard reads ?course= and ?mode=, loads the tour snapshot and ranks it.
func (h *Handler) loadBoard(c echo.Context) (*board, error) {
	tourID, err := h.tourParam(c)
	if err != nil {
		return nil, err
	}

	mode := h.cfg.DefaultScoreMode
	if m := strings.TrimSpace(c.QueryParam("mode")); m != "" {
		if mode, err = scoring.ParseMode(strings.ToLower(m)); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	filter := strings.TrimSpace(c.QueryParam("course"))
	if filter == "" {
		filter = leaderboard.AllCourses
	}

	snap, err := store.LoadSnapshot(c.Request().Context(), h.store, tourID, filter, h.cfg.SnapshotFetchConcurrency)
	if err != nil {
		return nil, h.fail(c, err)
	}
	teams, err := snap.Build(filter, mode)
	if err != nil {
		return nil, h.fail(c, err)
	}

	h.logger.Debug("leaderboard built",
		zap.Int("tour_id", tourID),
		zap.String("mode", string(mode)),
		zap.String("course", filter),
		zap.Int("teams", len(teams)),
	)

	return &board{
		tourID: tourID,
		mode:   mode,
		filter: filter,
		scope:  leaderboard.InScope(snap.Courses, filter),
		teams:  teams,
	}, nil
}

// Leaderboard returns the ranked team leaderboard as JSON.
func (h *Handler) Leaderboard(c echo.Context) error {
	b, err := h.loadBoard(c)
	if err != nil {
		return err
	}

	out := leaderboardData{
		TourID:  b.tourID,
		Mode:    b.mode,
		Course:  b.filter,
		Courses: b.scope,
		Teams:   make([]teamRow, 0, len(b.teams)),
	}
	if out.Courses == nil {
		out.Courses = []scoring.Course{}
	}
	for _, t := range b.teams {
		row := teamRow{TeamSummary: t, Display: t.Display(b.mode), Members: make([]memberRow, 0, len(t.Members))}
		for _, m := range t.Members {
			row.Members = append(row.Members, memberRow{PlayerSummary: m, Display: m.Display(b.mode)})
		}
		out.Teams = append(out.Teams, row)
	}
	return c.JSON(http.StatusOK, out)
}

// LeaderboardXLSX downloads the leaderboard as a workbook.
func (h *Handler) LeaderboardXLSX(c echo.Context) error {
	b, err := h.loadBoard(c)
	if err != nil {
		return err
	}

	data, err := report.LeaderboardWorkbook(b.teams, b.scope, b.mode)
	if err != nil {
		return h.fail(c, err)
	}

	filename := fmt.Sprintf("leaderboard-%d-%s.xlsx", b.tourID, b.mode)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, xlsxContentType, data)
}

// LeaderboardPNG renders team totals as a bar chart.
func (h *Handler) LeaderboardPNG(c echo.Context) error {
	b, err := h.loadBoard(c)
	if err != nil {
		return err
	}

	data, err := report.TeamChart(b.teams, b.mode)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", data)
}
