package main

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/golftrip/config"
	"github.com/padraicbc/golftrip/courses"
	"github.com/padraicbc/golftrip/db"
	"github.com/padraicbc/golftrip/handlers"
	applog "github.com/padraicbc/golftrip/logger"
	mw "github.com/padraicbc/golftrip/middleware"
	"github.com/padraicbc/golftrip/store"
)

//go:embed all:build/*
var embeddedFiles embed.FS

func main() {
	cfg := config.Load()
	logger, err := applog.New("server", cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	h := handlers.New(store.New(bdb, cfg.TeamMaxMembers), cfg, courses.Default(), logger)

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	requireAdmin := mw.RequireAdmin(h.AdminUser)

	// Public
	e.POST("/api/signin", h.Signin)

	// Protected – require valid JWT in Authorization header
	api := e.Group("/api", mw.JWT(cfg.JWTKey()))
	api.GET("/reference/courses", h.ReferenceCourses)
	api.GET("/reference/fines", h.FineCategories)

	api.GET("/users", h.Users)
	api.GET("/users/me", h.Me)
	api.PUT("/users/me/handicap", h.UpdateMyHandicap)

	api.GET("/tours", h.Tours)
	api.GET("/tours/active", h.ActiveTour)
	api.POST("/tours", h.CreateTour, requireAdmin)

	api.GET("/tours/:tourID/courses", h.TourCourses)
	api.POST("/tours/:tourID/courses", h.CreateCourse, requireAdmin)
	api.GET("/tours/:tourID/teams", h.Teams)
	api.POST("/tours/:tourID/teams", h.CreateTeam, requireAdmin)
	api.POST("/teams/:teamID/members", h.AddMember)
	api.DELETE("/teams/:teamID/members/:userID", h.RemoveMember)

	api.GET("/courses/:courseID/scores/:userID", h.GetScorecard)
	api.PUT("/courses/:courseID/scores/:userID", h.SaveScorecard)
	api.DELETE("/courses/:courseID/scores/:userID", h.DeleteScorecard)

	api.GET("/tours/:tourID/leaderboard", h.Leaderboard)
	api.GET("/tours/:tourID/leaderboard.xlsx", h.LeaderboardXLSX)
	api.GET("/tours/:tourID/leaderboard.png", h.LeaderboardPNG)

	api.GET("/tours/:tourID/fines", h.Fines)
	api.POST("/tours/:tourID/fines", h.AddFine)

	admin := api.Group("/admin", requireAdmin)
	admin.POST("/password-hash", h.PasswordHash)

	// Strip the "build/" prefix so URLs work correctly
	subFS, err := fs.Sub(embeddedFiles, "build")
	if err != nil {
		logger.Fatal("open embedded build fs failed", zap.Error(err))
	}
	// Serve static files correctly using Echo's WrapHandler
	fileServer := http.FileServer(http.FS(subFS))
	e.GET("/*", func(c echo.Context) error {
		path := c.Request().URL.Path

		// If request is for a static file, serve it
		if strings.Contains(path, ".") { // Matches JS, CSS, images, etc.
			http.StripPrefix("/", fileServer).ServeHTTP(c.Response(), c.Request())
			return nil
		}
		// Otherwise, serve `index.html` for client-side routing (SPA fallback)
		indexFile, err := subFS.Open("index.html")

		if err != nil {
			return c.NoContent(http.StatusNotFound)
		}
		defer indexFile.Close()

		return c.Stream(http.StatusOK, "text/html", indexFile)
	})

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
