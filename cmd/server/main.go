package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/api"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/auth"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/config"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/db"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/health"
	"github.com/Edward-Shanks/Shivank-ent-tracker-sub001/internal/logging"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger := logging.Logger()
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})
	log := logging.Logger()

	database, err := db.New(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	cols, err := database.ProbeColumns(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to probe schema columns")
	}

	users := db.NewUserRepository(database)
	service := auth.NewService(users, cfg)

	checker := health.NewChecker(&health.CheckerConfig{
		DB:      database.DB,
		Version: version,
	})

	deps := &api.Deps{
		Auth:        auth.NewHandlers(service),
		AuthService: service,
		Anime:       api.NewAnimeHandlers(db.NewAnimeRepository(database)),
		Movies:      api.NewMovieHandlers(db.NewMovieRepository(database, cols)),
		KDramas:     api.NewKDramaHandlers(db.NewKDramaRepository(database)),
		Games:       api.NewGameHandlers(db.NewGameRepository(database, cols)),
		Websites:    api.NewWebsiteHandlers(db.NewWebsiteRepository(database)),
		Credentials: api.NewCredentialHandlers(db.NewCredentialRepository(database)),
		Genshin:     api.NewGenshinHandlers(db.NewGenshinRepository(database)),
		Health:      health.NewHandler(checker),
	}

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      api.NewRouter(cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", cfg.ServerAddr).
			Str("environment", cfg.Environment).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
