package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/watchlist/internal/api"
	"github.com/isdelr/watchlist/internal/auth"
	"github.com/isdelr/watchlist/internal/config"
	"github.com/isdelr/watchlist/internal/database"
	"github.com/isdelr/watchlist/internal/logger"
	"github.com/isdelr/watchlist/internal/monitoring"
	"github.com/isdelr/watchlist/internal/services"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWatchlist()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.MigrateWatchlist(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	eventService := services.NewEventService(db)
	userService := services.NewUserService(db, eventService)
	movieService := services.NewMovieService(db, eventService)

	// Set up and run the background scheduler
	scheduler, err := monitoring.NewScheduler("watchlist", eventService, cfg.PruneSchedule, cfg.EventRetention)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure scheduler")
	}
	scheduler.Run()

	// Set up router
	router := api.NewWatchlistRouter(api.WatchlistDeps{
		Users:          userService,
		Movies:         movieService,
		Sessions:       auth.NewSessionManager(cfg.SecretKey, cfg.IsProduction()),
		LoginRateLimit: cfg.LoginRateLimit,
	})

	if cfg.SecretKey == "dev" && cfg.IsProduction() {
		log.Warn().Msg("SECRET_KEY is the development default; sessions can be forged")
	}

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Watchlist server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
