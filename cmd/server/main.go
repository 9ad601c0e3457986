// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package main is the entry point for the Marquee recommendation server.
//
// Marquee serves movie recommendations from an Elasticsearch catalog. It
// derives per-user genre affinities from viewing history, turns them into
// boosted catalog queries, and answers "more like this" lookups.
//
// # Startup Order
//
//  1. Configuration (Koanf v2: defaults, config.yaml, environment)
//  2. Logging (zerolog)
//  3. Elasticsearch client with circuit breaker
//  4. History store (Elasticsearch user_preferences index or DuckDB)
//  5. Recommendation orchestrator
//  6. Supervisor tree: dependency monitors and the HTTP server
//
// # Example Usage
//
//	export ELASTICSEARCH_URLS=http://localhost:9200
//	export LOG_FORMAT=console
//	./marquee
//
// Reading history from DuckDB instead of the user_preferences index:
//
//	export HISTORY_BACKEND=duckdb
//	export DUCKDB_PATH=/data/marquee.duckdb
//	./marquee
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
// accepting connections and drains in-flight requests for up to
// SHUTDOWN_TIMEOUT before the process exits.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// dependencyCheckInterval is how often backend monitors run.
const dependencyCheckInterval = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logger := logging.Logger()

	logger.Info().
		Str("version", version).
		Str("config", cfg.String()).
		Msg("Starting Marquee")
	if cfg.ShouldWarnAboutCORS() {
		logger.Warn().Msg("CORS_ORIGINS=* in production allows any website to call this API")
	}

	deps, err := buildDependencies(cfg, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize dependencies")
	}
	defer deps.Close()

	handler := api.NewHandler(deps.Orchestrator, api.HandlerOptions{
		Version:     version,
		DefaultSize: cfg.Recommend.DefaultSize,
		Checks:      deps.ReadinessChecks(),
		Details: map[string]func() string{
			"search_breaker": deps.Search.BreakerState,
		},
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	for _, check := range deps.ReadinessChecks() {
		tree.AddBackendService(services.NewDependencyMonitorService(
			check.Name, services.HealthCheck(check.Check), dependencyCheckInterval, 5*time.Second, logger,
		))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("Supervisor tree exited with error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logger.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logger.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logger.Info().Msg("Marquee stopped")
}
