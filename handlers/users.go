package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/golftrip/models"
)

const maxHandicapIndex = 54.0

type playerData struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	FullName string  `json:"fullName"`
	Handicap float64 `json:"handicap"`
	IsAdmin  bool    `json:"isAdmin"`
}

type handicapRequest struct {
	Handicap *float64 `json:"handicap"`
}

func toPlayerData(u *models.User) playerData {
	return playerData{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		FullName: u.FullName(),
		Handicap: u.Handicap,
		IsAdmin:  u.IsAdmin,
	}
}

// Users lists every player.
func (h *Handler) Users(c echo.Context) error {
	users, err := h.store.Users(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}

	result := make([]playerData, len(users))
	for i := range users {
		result[i] = toPlayerData(&users[i])
	}
	return c.JSON(http.StatusOK, result)
}

// Me returns the signed-in player.
func (h *Handler) Me(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}
	user, err := h.store.UserByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toPlayerData(user))
}

// UpdateMyHandicap sets the signed-in player's handicap index.
func (h *Handler) UpdateMyHandicap(c echo.Context) error {
	id, err := currentUser(c)
	if err != nil {
		return err
	}

	var req handicapRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Handicap == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "handicap is required")
	}
	if *req.Handicap < 0 || *req.Handicap > maxHandicapIndex {
		return echo.NewHTTPError(http.StatusBadRequest, "handicap must be between 0 and 54")
	}

	ctx := c.Request().Context()
	if err := h.store.UpdateHandicap(ctx, id, *req.Handicap); err != nil {
		return h.fail(c, err)
	}
	user, err := h.store.UserByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toPlayerData(user))
}
