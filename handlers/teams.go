package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/golftrip/middleware"
	"github.com/padraicbc/golftrip/models"
)

type teamData struct {
	TeamID    int          `json:"teamID"`
	TourID    int          `json:"tourID"`
	Name      string       `json:"name"`
	CaptainID string       `json:"captainID"`
	Captain   *playerData  `json:"captain,omitempty"`
	Members   []playerData `json:"members"`
}

type createTeamRequest struct {
	Name      string `json:"name"`
	CaptainID string `json:"captainID"`
}

type memberRequest struct {
	UserID string `json:"userID"`
}

func toTeamData(t *models.Team) teamData {
	out := teamData{
		TeamID:    t.ID,
		TourID:    t.TourID,
		Name:      t.Name,
		CaptainID: t.CaptainID.String(),
		Members:   make([]playerData, 0, len(t.Members)),
	}
	if t.Captain != nil {
		captain := toPlayerData(t.Captain)
		out.Captain = &captain
	}
	for _, m := range t.Members {
		if m.User != nil {
			out.Members = append(out.Members, toPlayerData(m.User))
		} else {
			out.Members = append(out.Members, playerData{ID: m.UserID.String()})
		}
	}
	return out
}

// Teams returns a tour's teams with their members.
func (h *Handler) Teams(c echo.Context) error {
	tourID, err := h.tourParam(c)
	if err != nil {
		return err
	}

	teams, err := h.store.Teams(c.Request().Context(), tourID)
	if err != nil {
		return h.fail(c, err)
	}

	result := make([]teamData, len(teams))
	for i := range teams {
		result[i] = toTeamData(&teams[i])
	}
	return c.JSON(http.StatusOK, result)
}

// CreateTeam creates a team on a tour. The captain becomes its first member.
func (h *Handler) CreateTeam(c echo.Context) error {
	tourID, err := h.tourParam(c)
	if err != nil {
		return err
	}

	var req createTeamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	captainID, err := uuid.Parse(req.CaptainID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid captainID")
	}

	ctx := c.Request().Context()
	if _, err := h.store.UserByID(ctx, captainID); err != nil {
		return h.fail(c, err)
	}

	team := &models.Team{TourID: tourID, Name: req.Name, CaptainID: captainID}
	if err := h.store.CreateTeam(ctx, team); err != nil {
		return h.fail(c, err)
	}

	created, err := h.store.TeamByID(ctx, team.ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toTeamData(created))
}

// canManage reports whether the signed-in player may change a team's members.
func (h *Handler) canManage(c echo.Context, team *models.Team) (bool, error) {
	id, _ := mw.UserID(c)
	if id == team.CaptainID {
		return true, nil
	}
	admin, err := h.AdminUser(c.Request().Context(), id)
	if err != nil {
		return false, h.fail(c, err)
	}
	return admin, nil
}

// AddMember adds a player to a team, up to the configured team size.
func (h *Handler) AddMember(c echo.Context) error {
	teamID, err := intParam(c, "teamID")
	if err != nil {
		return err
	}

	var req memberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid userID")
	}

	ctx := c.Request().Context()
	team, err := h.store.TeamByID(ctx, teamID)
	if err != nil {
		return h.fail(c, err)
	}
	allowed, err := h.canManage(c, team)
	if err != nil {
		return err
	}
	if !allowed {
		return echo.NewHTTPError(http.StatusForbidden, "only the captain or an admin can add members")
	}
	if _, err := h.store.UserByID(ctx, userID); err != nil {
		return h.fail(c, err)
	}
	if err := h.store.AddTeamMember(ctx, teamID, userID); err != nil {
		return h.fail(c, err)
	}

	updated, err := h.store.TeamByID(ctx, teamID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toTeamData(updated))
}

// RemoveMember takes a player off a team. Players may leave on their own;
// otherwise the captain or an admin must ask. The captain cannot be removed.
func (h *Handler) RemoveMember(c echo.Context) error {
	teamID, err := intParam(c, "teamID")
	if err != nil {
		return err
	}
	userID, err := uuidParam(c, "userID")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	team, err := h.store.TeamByID(ctx, teamID)
	if err != nil {
		return h.fail(c, err)
	}
	if self, _ := mw.UserID(c); self != userID {
		allowed, err := h.canManage(c, team)
		if err != nil {
			return err
		}
		if !allowed {
			return echo.NewHTTPError(http.StatusForbidden, "only the captain or an admin can remove members")
		}
	}
	if err := h.store.RemoveTeamMember(ctx, teamID, userID); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
