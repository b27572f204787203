package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/mjiang93/user-service/internal/config"
	"github.com/mjiang93/user-service/internal/handler"
	"github.com/mjiang93/user-service/internal/repository/sqlite"
	"github.com/mjiang93/user-service/internal/service"
	"github.com/mjiang93/user-service/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Config failed before the logger exists; a bare writer must do.
		fallback := zerolog.New(os.Stderr)
		fallback.Error().Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty || cfg.IsDevelopment(),
	})

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DatabasePath).Msg("failed to open database")
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Error().Err(err).Msg("failed to run migrations")
		os.Exit(1)
	}
	log.Info().Msg("database migrations applied")

	userService := service.NewUserService(db.Users())

	// Seed default users so a fresh database is demonstrable (idempotent).
	if err := userService.SeedDefaults(ctx); err != nil {
		log.Error().Err(err).Msg("failed to seed default users")
		os.Exit(1)
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.NewUserHandler(userService, log))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handler.Recover(log,
			handler.RequestLogger(log, corsHandler.Handler(mux))),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
