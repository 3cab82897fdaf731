// cmd/seedtour/main.go
// Creates an active tour and adds every course in the embedded catalog to it.
//
// Usage:
//
//	go run ./cmd/seedtour -name "Algarve 2026" -year 2026
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/padraicbc/golftrip/config"
	"github.com/padraicbc/golftrip/courses"
	bundb "github.com/padraicbc/golftrip/db"
	applog "github.com/padraicbc/golftrip/logger"
	"github.com/padraicbc/golftrip/models"
	"github.com/padraicbc/golftrip/store"
)

func main() {
	name := flag.String("name", "", "tour name (required)")
	year := flag.Int("year", time.Now().Year(), "tour year")
	only := flag.String("courses", "", "comma-separated catalog keys, default all")
	flag.Parse()

	if *name == "" {
		log.Fatal("-name is required")
	}

	refs, err := pick(courses.Default(), *only)
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.Load()
	logger := applog.Must("seedtour", cfg.Debug)
	defer func() { _ = logger.Sync() }()

	db := bundb.Setup(cfg)
	defer db.Close()

	ctx := context.Background()
	if err := bundb.CreateTables(ctx, db); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	st := store.New(db, cfg.TeamMaxMembers)
	tour := &models.Tour{Name: *name, Year: *year, IsActive: true}
	if err := seed(ctx, st, tour, refs); err != nil {
		logger.Fatal("seeding tour failed", zap.Error(err))
	}
	logger.Info("tour seeded",
		zap.Int("tour_id", tour.ID),
		zap.String("name", tour.Name),
		zap.Int("courses", len(refs)),
	)
}
