// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Api is the entry point for the corengine demonlist API server.

The server provides the ranking engine backing a competitive demonlist:
a ranked catalogue of "demon" levels, the players who beat them, and the
submission/review pipeline that feeds the list.

Usage:

	go run cmd/api/main.go [flags]

The flags/environment variables are:

	PORT            Port to listen on (default: 8080)
	ENVIRONMENT     deployment environment (development, production)
	DATABASE_URL    Postgres connection string (required)
	REDIS_URL       Redis connection string (required)

Startup Sequence:

 1. Logger: Initialize structured JSON logging (slog).
 2. Config: Load and validate environment variables.
 3. Storage: Establish connections to Postgres and Redis.
 4. Migration: Run idempotent schema updates.
 5. Wiring: Inject dependencies into domain services/handlers.
 6. Server: Bind HTTP listener and handle graceful shutdown.

No business logic lives here. This file is strictly for orchestration and wiring.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pointercrate-rs/corengine/internal/api"
	"github.com/pointercrate-rs/corengine/internal/core/demonlist"
	"github.com/pointercrate-rs/corengine/internal/platform/config"
	"github.com/pointercrate-rs/corengine/internal/platform/constants"
	"github.com/pointercrate-rs/corengine/internal/platform/migration"
	pgstore "github.com/pointercrate-rs/corengine/internal/platform/postgres"
	"github.com/pointercrate-rs/corengine/internal/platform/ratelimit"
	redisstore "github.com/pointercrate-rs/corengine/internal/platform/redis"
	"github.com/pointercrate-rs/corengine/internal/platform/sec"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application_startup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// # 1. Logger
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries for trace correlation
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// # 2. Configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Adjust log level if debug mode is explicitly enabled
	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. A 30s deadline prevents the app from hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// # 3. PostgreSQL
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// # 4. Redis
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// # 5. Migrations
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// # 6. Platform Services
	jwtSvc, err := sec.NewTokenService(cfg.SecretFile)
	if err != nil {
		return fmt.Errorf("initialize jwt service: %w", err)
	}
	limiter := ratelimit.NewRegistry()

	// # 7. Health Wiring
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// # 8. Demonlist Repositories
	demons := demonlist.NewPostgresDemonRepository(pool)
	players := demonlist.NewPostgresPlayerRepository(pool)
	records := demonlist.NewPostgresRecordRepository(pool)
	submitters := demonlist.NewPostgresSubmitterRepository(pool)
	nationalities := demonlist.NewPostgresNationalityRepository(pool)
	claims := demonlist.NewPostgresClaimRepository(pool)
	audit := demonlist.NewPostgresAuditRepository(pool)
	unitOfWork := demonlist.NewPostgresUnitOfWork(pool)

	// # 9. Demonlist Service
	demonlistSvc := demonlist.NewService(demonlist.Dependencies{
		Demons:        demons,
		Players:       players,
		Records:       records,
		Submitters:    submitters,
		Nationalities: nationalities,
		Claims:        claims,
		Audit:         audit,
		UnitOfWork:    unitOfWork,
		Limiter:       limiter,
	}, demonlist.Config{
		ListSize:         cfg.ListSize,
		ExtendedListSize: cfg.ExtendedListSize,
	}, log)

	// # 10. Demonlist Handlers
	demonHdl := demonlist.NewDemonHandler(demonlistSvc)
	playerHdl := demonlist.NewPlayerHandler(demonlistSvc)
	recordHdl := demonlist.NewRecordHandler(demonlistSvc)
	claimHdl := demonlist.NewClaimHandler(demonlistSvc)
	nationalityHdl := demonlist.NewNationalityHandler(demonlistSvc)

	// # 11. API Assembly
	handlers := api.Handlers{
		Liveness:      liveness,
		Readiness:     readiness,
		Demons:        demonHdl,
		Players:       playerHdl,
		Records:       recordHdl,
		Claims:        claimHdl,
		Nationalities: nationalityHdl,
	}

	// Create a background context for the whole application lifecycle
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// # 12. Lifecycle Handling
	shutdownErr := make(chan error, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownErr <- fmt.Errorf("http_server_crash: %w", err)
		}
	}()

	log.Info("corengine_api_running", slog.String("port", cfg.ServerPort))

	// Block until signal or error
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-shutdownErr:
		return err
	}

	// Start Graceful Shutdown Sequence
	appCancel() // Signal background workers to stop

	log.Info("shutting_down_api_server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("server_shutdown_failed: %w", err)
	}

	log.Info("graceful_shutdown_complete")
	return nil
}
