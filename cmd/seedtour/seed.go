package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/padraicbc/golftrip/courses"
	"github.com/padraicbc/golftrip/models"
	"github.com/padraicbc/golftrip/scoring"
	"github.com/padraicbc/golftrip/store"
)

// pick returns the catalog courses named in keys, or all of them when keys is empty.
func pick(catalog *courses.Catalog, keys string) ([]scoring.Course, error) {
	if strings.TrimSpace(keys) == "" {
		return catalog.All(), nil
	}
	var out []scoring.Course
	for _, k := range strings.Split(keys, ",") {
		c, err := catalog.Find(strings.TrimSpace(k))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func seed(ctx context.Context, s store.Store, tour *models.Tour, refs []scoring.Course) error {
	if err := s.CreateTour(ctx, tour); err != nil {
		return fmt.Errorf("creating tour: %w", err)
	}
	for _, ref := range refs {
		if err := s.CreateCourse(ctx, models.NewCourse(tour.ID, ref)); err != nil {
			return fmt.Errorf("adding course %s: %w", ref.Key, err)
		}
	}
	return nil
}
