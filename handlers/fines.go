package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/padraicbc/golftrip/fines"
	"github.com/padraicbc/golftrip/models"
)

type fineData struct {
	ID          int     `json:"id"`
	PlayerID    string  `json:"playerID"`
	PlayerName  string  `json:"playerName"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description *string `json:"description,omitempty"`
	RecordedBy  string  `json:"recordedBy"`
	CreatedAt   string  `json:"createdAt"`
}

type finesResponse struct {
	Fines  []fineData    `json:"fines"`
	Totals []fines.Total `json:"totals"`
}

type addFineRequest struct {
	UserID      string `json:"userID"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func toFineData(f *models.Fine) fineData {
	out := fineData{
		ID:          f.ID,
		PlayerID:    f.UserID.String(),
		Category:    f.Category,
		Amount:      f.Amount,
		Description: f.Description,
		RecordedBy:  f.RecordedBy.String(),
		CreatedAt:   f.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if f.User != nil {
		out.PlayerName = f.User.FullName()
	}
	return out
}

// FineCategories returns the fixed fine table.
func (h *Handler) FineCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, fines.Categories())
}

// Fines returns a tour's fines, newest first, with per-player totals.
func (h *Handler) Fines(c echo.Context) error {
	tourID, err := h.tourParam(c)
	if err != nil {
		return err
	}

	list, err := h.store.Fines(c.Request().Context(), tourID)
	if err != nil {
		return h.fail(c, err)
	}

	out := finesResponse{Fines: make([]fineData, len(list))}
	entries := make([]fines.Entry, len(list))
	for i := range list {
		out.Fines[i] = toFineData(&list[i])
		entries[i] = fines.Entry{PlayerID: out.Fines[i].PlayerID, PlayerName: out.Fines[i].PlayerName, Amount: list[i].Amount}
	}
	out.Totals = fines.Totals(entries)
	return c.JSON(http.StatusOK, out)
}

// AddFine records a fine against a player. The amount comes from the category.
func (h *Handler) AddFine(c echo.Context) error {
	tourID, err := h.tourParam(c)
	if err != nil {
		return err
	}
	recorder, err := currentUser(c)
	if err != nil {
		return err
	}

	var req addFineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid userID")
	}
	category, ok := fines.Lookup(req.Category)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown fine category")
	}

	ctx := c.Request().Context()
	user, err := h.store.UserByID(ctx, userID)
	if err != nil {
		return h.fail(c, err)
	}

	fine := &models.Fine{
		TourID:     tourID,
		UserID:     userID,
		Category:   category.Name,
		Amount:     category.Amount,
		RecordedBy: recorder,
	}
	if d := strings.TrimSpace(req.Description); d != "" {
		fine.Description = &d
	}
	if err := h.store.AddFine(ctx, fine); err != nil {
		return h.fail(c, err)
	}
	fine.User = user
	return c.JSON(http.StatusCreated, toFineData(fine))
}
