package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/golftrip/config"
	"github.com/padraicbc/golftrip/courses"
	"github.com/padraicbc/golftrip/leaderboard"
	mw "github.com/padraicbc/golftrip/middleware"
	"github.com/padraicbc/golftrip/store"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	store   store.Store
	catalog *courses.Catalog
	cfg     *config.Config
	logger  *zap.Logger
	JWTKey  []byte
}

// New creates a Handler.
func New(s store.Store, cfg *config.Config, catalog *courses.Catalog, logger *zap.Logger) *Handler {
	return &Handler{
		store:   s,
		catalog: catalog,
		cfg:     cfg,
		logger:  logger,
		JWTKey:  cfg.JWTKey(),
	}
}

// fail maps store and leaderboard errors to HTTP errors. Anything unexpected
// is logged and returned as a 500.
func (h *Handler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrNoActiveTour):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrTeamFull), errors.Is(err, store.ErrDuplicate):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrCaptainRemoval):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, leaderboard.ErrCaptainNotMember), errors.Is(err, leaderboard.ErrMissingMember):
		h.logger.Error("inconsistent team data", zap.Error(err), zap.String("uri", c.Request().RequestURI))
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.logger.Error("request failed", zap.Error(err), zap.String("uri", c.Request().RequestURI))
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// AdminUser reports whether a player is an admin right now, by their user
// row or by ADMIN_USERS. Unknown players are not admins.
func (h *Handler) AdminUser(ctx context.Context, id uuid.UUID) (bool, error) {
	user, err := h.store.UserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin || h.cfg.IsAdmin(user.Username), nil
}

func intParam(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return v, nil
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	v, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return v, nil
}

func currentUser(c echo.Context) (uuid.UUID, error) {
	id, ok := mw.UserID(c)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}

// tourParam resolves :tourID to an existing tour, where "active" means the
// active tour.
func (h *Handler) tourParam(c echo.Context) (int, error) {
	if c.Param("tourID") == "active" {
		tour, err := h.store.ActiveTour(c.Request().Context())
		if err != nil {
			return 0, h.fail(c, err)
		}
		return tour.ID, nil
	}
	id, err := intParam(c, "tourID")
	if err != nil {
		return 0, err
	}
	if _, err := h.store.TourByID(c.Request().Context(), id); err != nil {
		return 0, h.fail(c, err)
	}
	return id, nil
}
