// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/padraicbc/golftrip/scoring"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// JWT signing secret (required in production).
	JWTSecret string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	// Usernames allowed to create tours and teams, compared case-insensitively.
	AdminUsers []string

	// Scoring
	TeamMaxMembers           int
	DefaultScoreMode         scoring.Mode
	SnapshotFetchConcurrency int
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	cfg := fromViper(newViper())
	if err := cfg.validate(); err != nil {
		log.Fatal("config: ", err)
	}
	return cfg
}

func fromViper(v *viper.Viper) *Config {
	// Defaults
	v.SetDefault("DB_USER", "golftrip")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "golftrip")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "golftrip.app,www.golftrip.app")
	v.SetDefault("DEBUG", false)
	v.SetDefault("ADMIN_USERS", "admin")
	v.SetDefault("TEAM_MAX_MEMBERS", 4)
	v.SetDefault("DEFAULT_SCORE_MODE", string(scoring.ModeGross))
	v.SetDefault("SNAPSHOT_FETCH_CONCURRENCY", 8)

	return &Config{
		DatabaseURL:              v.GetString("DATABASE_URL"),
		DBUser:                   v.GetString("DB_USER"),
		DBPass:                   v.GetString("DB_PASS"),
		DBHost:                   v.GetString("DB_HOST"),
		DBPort:                   v.GetString("DB_PORT"),
		DBName:                   v.GetString("DB_NAME"),
		DBSSLMode:                v.GetString("DB_SSLMODE"),
		JWTSecret:                v.GetString("JWT_SECRET"),
		Debug:                    v.GetBool("DEBUG"),
		Port:                     v.GetString("PORT"),
		TLSDomains:               splitTrimmed(v.GetString("TLS_DOMAINS")),
		AdminUsers:               splitTrimmed(strings.ToLower(v.GetString("ADMIN_USERS"))),
		TeamMaxMembers:           v.GetInt("TEAM_MAX_MEMBERS"),
		DefaultScoreMode:         scoring.Mode(strings.ToLower(strings.TrimSpace(v.GetString("DEFAULT_SCORE_MODE")))),
		SnapshotFetchConcurrency: v.GetInt("SNAPSHOT_FETCH_CONCURRENCY"),
	}
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

// IsAdmin reports whether username is listed in ADMIN_USERS.
func (c *Config) IsAdmin(username string) bool {
	normalized := strings.ToLower(strings.TrimSpace(username))
	for _, admin := range c.AdminUsers {
		if normalized == admin {
			return true
		}
	}
	return false
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" && c.DBPass == "" {
		return errors.New("DATABASE_URL or DB_PASS must be set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.TeamMaxMembers < 1 {
		return fmt.Errorf("TEAM_MAX_MEMBERS must be positive, got %d", c.TeamMaxMembers)
	}
	if c.SnapshotFetchConcurrency < 1 {
		return fmt.Errorf("SNAPSHOT_FETCH_CONCURRENCY must be positive, got %d", c.SnapshotFetchConcurrency)
	}
	if _, err := scoring.ParseMode(string(c.DefaultScoreMode)); err != nil {
		return fmt.Errorf("DEFAULT_SCORE_MODE: %w", err)
	}
	return nil
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
