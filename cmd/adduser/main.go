// cmd/adduser/main.go
// Creates or updates a player in the database.
//
// Usage:
//
//	go run ./cmd/adduser -username padraic -password testing -name Padraic -handicap 14.2
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/padraicbc/golftrip/config"
	bundb "github.com/padraicbc/golftrip/db"
	"github.com/padraicbc/golftrip/handlers"
	"github.com/padraicbc/golftrip/models"
	"github.com/padraicbc/golftrip/store"
)

func main() {
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "plain-text password (required)")
	name := flag.String("name", "", "first name")
	surname := flag.String("surname", "", "surname")
	email := flag.String("email", "", "email address")
	handicap := flag.Float64("handicap", 18, "handicap index, 0 to 54")
	admin := flag.Bool("admin", false, "grant admin rights")
	flag.Parse()

	hash, err := handlers.HashPasswordForUser(*username, *password)
	if err != nil {
		log.Fatal("-username and -password: ", err)
	}
	if *handicap < 0 || *handicap > 54 {
		log.Fatal("-handicap must be between 0 and 54")
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	ctx := context.Background()
	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatal("create tables: ", err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Username: *username,
		Password: hash,
		Name:     *name,
		Surname:  *surname,
		Email:    *email,
		Handicap: *handicap,
		IsAdmin:  *admin,
	}
	if err := store.New(db, cfg.TeamMaxMembers).UpsertUser(ctx, user); err != nil {
		log.Fatal("save user: ", err)
	}

	fmt.Printf("user %q saved (%s)\n", user.Username, user.ID)
}
