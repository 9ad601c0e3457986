// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/search"
)

// dependencies holds the components built from configuration.
type dependencies struct {
	Search       *search.Client
	DuckDB       *database.DB // nil unless HISTORY_BACKEND=duckdb
	History      recommend.HistoryStore
	Orchestrator *recommend.Orchestrator
	logger       zerolog.Logger
}

// buildDependencies wires the search client, history store and orchestrator.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func buildDependencies(cfg *config.Config, logger zerolog.Logger) (*dependencies, error) {
	client, err := search.NewClient(searchOptions(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("create search client: %w", err)
	}

	deps := &dependencies{Search: client, History: client, logger: logger}

	if cfg.UsesDuckDBHistory() {
		db, err := database.New(database.Config{
			Path:      cfg.Database.Path,
			Threads:   cfg.Database.Threads,
			MaxMemory: cfg.Database.MaxMemory,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("open history database: %w", err)
		}
		deps.DuckDB = db
		deps.History = db
	}

	orch, err := recommend.NewOrchestrator(orchestratorConfig(cfg), client, deps.History, client, logger)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("create orchestrator: %w", err)
	}
	deps.Orchestrator = orch

	logger.Info().
		Strs("elasticsearch", cfg.Elasticsearch.Addresses).
		Str("history_backend", cfg.History.Backend).
		Str("movies_index", cfg.Elasticsearch.MoviesIndex).
		Msg("Recommendation engine initialized")

	return deps, nil
}

func searchOptions(cfg *config.Config) search.Options {
	es := cfg.Elasticsearch
	return search.Options{
		Addresses:        es.Addresses,
		Username:         es.Username,
		Password:         es.Password,
		APIKey:           es.APIKey,
		MoviesIndex:      es.MoviesIndex,
		PreferencesIndex: es.PreferencesIndex,
		HistoryPageSize:  cfg.History.PageSize,
		MaxRetries:       es.MaxRetries,
		Breaker: search.BreakerSettings{
			MaxRequests:  es.Breaker.MaxRequests,
			Interval:     es.Breaker.Interval,
			Timeout:      es.Breaker.Timeout,
			MinRequests:  es.Breaker.MinRequests,
			FailureRatio: es.Breaker.FailureRatio,
		},
	}
}

func orchestratorConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		MoviesIndex:       cfg.Elasticsearch.MoviesIndex,
		DefaultSize:       cfg.Recommend.DefaultSize,
		MaxSize:           cfg.Recommend.MaxSize,
		RequestTimeout:    cfg.Recommend.RequestTimeout,
		LookupConcurrency: cfg.Recommend.LookupConcurrency,
	}
}

// ReadinessChecks lists the backends /health/ready and the monitors poll.
func (d *dependencies) ReadinessChecks() []api.ReadinessCheck {
	checks := []api.ReadinessCheck{{Name: "elasticsearch", Check: d.Search.Ping}}
	if d.DuckDB != nil {
		checks = append(checks, api.ReadinessCheck{Name: "duckdb", Check: d.DuckDB.Ping})
	}
	return checks
}

// Close releases resources owned by the dependencies.
func (d *dependencies) Close() {
	if d.DuckDB != nil {
		if err := d.DuckDB.Close(); err != nil {
			d.logger.Error().Err(err).Msg("Error closing history database")
		}
	}
}
