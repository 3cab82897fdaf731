package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/golftrip/models"
	"github.com/padraicbc/golftrip/scoring"
)

type courseData struct {
	CourseID     int            `json:"courseID"`
	TourID       int            `json:"tourID"`
	Key          string         `json:"key"`
	CatalogKey   string         `json:"catalogKey"`
	Name         string         `json:"name"`
	Par          int            `json:"par"`
	CourseRating float64        `json:"courseRating"`
	SlopeRating  int            `json:"slopeRating"`
	Holes        []scoring.Hole `json:"holes"`
	PlayDate     *string        `json:"playDate,omitempty"`
}

type createCourseRequest struct {
	Key      string `json:"key"`
	PlayDate string `json:"playDate"`
}

func toCourseData(c *models.Course) courseData {
	return courseData{
		CourseID:     c.ID,
		TourID:       c.TourID,
		Key:          c.Key(),
		CatalogKey:   c.CatalogKey,
		Name:         c.Name,
		Par:          c.Par,
		CourseRating: c.CourseRating,
		SlopeRating:  c.SlopeRating,
		Holes:        c.Holes,
		PlayDate:     c.PlayDate,
	}
}

// ReferenceCourses returns the embedded course catalog.
func (h *Handler) ReferenceCourses(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.All())
}

// TourCourses returns the courses of a tour in playing order.
func (h *Handler) TourCourses(c echo.Context) error {
	tourID, err := h.tourParam(c)
	if err != nil {
		return err
	}

	courses, err := h.store.Courses(c.Request().Context(), tourID)
	if err != nil {
		return h.fail(c, err)
	}

	result := make([]courseData, len(courses))
	for i := range courses {
		result[i] = toCourseData(&courses[i])
	}
	return c.JSON(http.StatusOK, result)
}

// CreateCourse adds a catalog course to a tour, optionally with a play date.
func (h *Handler) CreateCourse(c echo.Context) error {
	tourID, err := h.tourParam(c)
	if err != nil {
		return err
	}

	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ref, ok := h.catalog.Lookup(strings.TrimSpace(req.Key))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown course key")
	}

	course := models.NewCourse(tourID, ref)
	if req.PlayDate != "" {
		if _, err := time.Parse(time.DateOnly, req.PlayDate); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "playDate must be YYYY-MM-DD")
		}
		course.PlayDate = &req.PlayDate
	}

	if err := h.store.CreateCourse(c.Request().Context(), course); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, toCourseData(course))
}
