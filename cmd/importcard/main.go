// cmd/importcard/main.go
// Imports a typed-up XLSX scorecard for one course, or writes a blank one.
//
// Usage:
//
//	go run ./cmd/importcard -course 3 -template card.xlsx
//	go run ./cmd/importcard -course 3 -file card.xlsx -recorder padraic
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/padraicbc/golftrip/config"
	bundb "github.com/padraicbc/golftrip/db"
	applog "github.com/padraicbc/golftrip/logger"
	"github.com/padraicbc/golftrip/report"
	"github.com/padraicbc/golftrip/store"
)

func main() {
	courseID := flag.Int("course", 0, "course id within the tour (required)")
	file := flag.String("file", "", "scorecard to import")
	template := flag.String("template", "", "write a blank scorecard for the course to this path instead")
	recorder := flag.String("recorder", "", "username recorded as the scorer, default each player")
	flag.Parse()

	if *courseID < 1 || (*file == "") == (*template == "") {
		log.Fatal("-course and exactly one of -file or -template are required")
	}

	cfg := config.Load()
	logger := applog.Must("importcard", cfg.Debug)
	defer func() { _ = logger.Sync() }()

	db := bundb.Setup(cfg)
	defer db.Close()

	ctx := context.Background()
	st := store.New(db, cfg.TeamMaxMembers)

	if *template != "" {
		data, err := blankCard(ctx, st, *courseID)
		if err != nil {
			logger.Fatal("building template failed", zap.Error(err))
		}
		if err := os.WriteFile(*template, data, 0o644); err != nil {
			logger.Fatal("writing template failed", zap.Error(err))
		}
		logger.Info("template written", zap.String("path", *template), zap.Int("course_id", *courseID))
		return
	}

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatal("open scorecard failed", zap.Error(err))
	}
	defer f.Close()

	card, err := report.ParseScorecard(f)
	if err != nil {
		logger.Fatal("parse scorecard failed", zap.Error(err))
	}

	saved, err := importCard(ctx, st, *courseID, card, *recorder)
	if err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}
	for _, s := range saved {
		logger.Info("round saved", zap.String("username", s.username), zap.Int("holes", s.holes))
	}
}
