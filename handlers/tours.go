package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/golftrip/models"
)

type createTourRequest struct {
	Name     string `json:"name"`
	Year     int    `json:"year"`
	IsActive *bool  `json:"isActive"`
}

// Tours lists every tour, newest first.
func (h *Handler) Tours(c echo.Context) error {
	tours, err := h.store.Tours(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	if tours == nil {
		tours = []models.Tour{}
	}
	return c.JSON(http.StatusOK, tours)
}

// ActiveTour returns the tour currently being played.
func (h *Handler) ActiveTour(c echo.Context) error {
	tour, err := h.store.ActiveTour(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, tour)
}

// CreateTour inserts a tour. New tours are active unless isActive is false.
func (h *Handler) CreateTour(c echo.Context) error {
	var req createTourRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.Year == 0 {
		req.Year = time.Now().Year()
	}
	if req.Year < 2000 || req.Year > 2100 {
		return echo.NewHTTPError(http.StatusBadRequest, "year is out of range")
	}

	tour := &models.Tour{Name: req.Name, Year: req.Year, IsActive: req.IsActive == nil || *req.IsActive}
	if err := h.store.CreateTour(c.Request().Context(), tour); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, tour)
}
