// Package main implements the entry point for the language portal API
// server, which keeps the append-only study ledger and serves derived
// vocabulary statistics.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/api"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/cache"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/config"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/platform/logger"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/platform/postgres"
	"github.com/jduartex/free-genai-bootcamp-2025-sub003/internal/service/study"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run wires the application together: configuration, logging, database,
// migrations, stores, cache, the study service, and the HTTP server.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}

	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	appLogger.Info("database migrations applied")

	statsCache := cache.NewLRUCache(
		cfg.Cache.MaxEntries,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		appLogger,
	)

	studyService := study.NewStudyService(
		postgres.NewPostgresWordStore(db, appLogger),
		postgres.NewPostgresGroupStore(db, appLogger),
		postgres.NewPostgresSessionStore(db, appLogger),
		postgres.NewPostgresActivityStore(db, appLogger),
		postgres.NewPostgresReviewStore(db, appLogger),
		statsCache,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		cfg.Admin.ResetConfirmToken,
		appLogger,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(cfg, studyService, appLogger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("HTTP server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case sig := <-stop:
		appLogger.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	appLogger.Info("server stopped")
	return nil
}
