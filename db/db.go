package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/padraicbc/golftrip/config"
	"github.com/padraicbc/golftrip/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	db, err := Open(context.Background(), cfg.PostgresDSN(), cfg.Debug)
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}
	return db
}

// Open connects to dsn and pings it.
func Open(ctx context.Context, dsn string, debug bool) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// CreateTables creates all tables in dependency order.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Tour)(nil),
		(*models.Course)(nil),
		(*models.Team)(nil),
		(*models.TeamMember)(nil),
		(*models.Score)(nil),
		(*models.Fine)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	constraints := []string{
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'courses_tour_fk') THEN ALTER TABLE courses ADD CONSTRAINT courses_tour_fk FOREIGN KEY (tour_id) REFERENCES tours (id) ON DELETE CASCADE; END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'teams_tour_fk') THEN ALTER TABLE teams ADD CONSTRAINT teams_tour_fk FOREIGN KEY (tour_id) REFERENCES tours (id) ON DELETE CASCADE; END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'team_members_team_fk') THEN ALTER TABLE team_members ADD CONSTRAINT team_members_team_fk FOREIGN KEY (team_id) REFERENCES teams (id) ON DELETE CASCADE; END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'scores_course_fk') THEN ALTER TABLE scores ADD CONSTRAINT scores_course_fk FOREIGN KEY (course_id) REFERENCES courses (id) ON DELETE CASCADE; END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'teams_captain_fk') THEN ALTER TABLE teams ADD CONSTRAINT teams_captain_fk FOREIGN KEY (captain_id) REFERENCES users (id) ON DELETE CASCADE; END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'team_members_user_fk') THEN ALTER TABLE team_members ADD CONSTRAINT team_members_user_fk FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE; END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'scores_user_fk') THEN ALTER TABLE scores ADD CONSTRAINT scores_user_fk FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE; END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fines_tour_fk') THEN ALTER TABLE fines ADD CONSTRAINT fines_tour_fk FOREIGN KEY (tour_id) REFERENCES tours (id) ON DELETE CASCADE; END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fines_user_fk') THEN ALTER TABLE fines ADD CONSTRAINT fines_user_fk FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE; END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'scores_hole_range') THEN ALTER TABLE scores ADD CONSTRAINT scores_hole_range CHECK (hole_number BETWEEN 1 AND 18 AND strokes BETWEEN 1 AND 12); END IF; END $$`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'users_handicap_range') THEN ALTER TABLE users ADD CONSTRAINT users_handicap_range CHECK (handicap BETWEEN 0 AND 54); END IF; END $$`,
		`CREATE UNIQUE INDEX IF NOT EXISTS tours_single_active ON tours (is_active) WHERE is_active`,
	}
	for _, stmt := range constraints {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Printf("constraint: %v", err)
		}
	}

	return nil
}
