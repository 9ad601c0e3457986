// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Command marquee-import loads interaction history into the DuckDB history
// store used when HISTORY_BACKEND=duckdb.
//
// Input is newline-delimited JSON, one InteractionRecord per line, in the
// same shape as the user_preferences index:
//
//	{"id":"p-9001","userId":7,"movieId":"m42","rating":5,"watchedAt":"2026-09-30T21:14:00Z"}
//
// Usage:
//
//	marquee-import history.ndjson [more.ndjson ...]
//	cat history.ndjson | marquee-import -
//
// Records are upserted by id, so re-running an import is safe. Database
// settings come from the same configuration as the server (DUCKDB_PATH,
// DUCKDB_MAX_MEMORY, DUCKDB_THREADS).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/logging"
)

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

	paths := os.Args[1:]
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: marquee-import FILE... (use - for stdin)")
		os.Exit(2)
	}

	db, err := database.New(database.Config{
		Path:      cfg.Database.Path,
		Threads:   cfg.Database.Threads,
		MaxMemory: cfg.Database.MaxMemory,
	}, logger)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open history database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	imp := newImporter(db, defaultBatchSize, logger)

	var total int
	for _, path := range paths {
		n, err := importPath(ctx, imp, path)
		total += n
		if err != nil {
			logger.Error().Err(err).Str("file", path).Int("imported", n).Msg("Import failed")
			stop()
			db.Close() //nolint:errcheck
			os.Exit(1)
		}
		logger.Info().Str("file", path).Int("imported", n).Msg("File imported")
	}
	stop()

	if err := db.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing history database")
	}
	logger.Info().Int("records", total).Int("files", len(paths)).Msg("Import complete")
}

func importPath(ctx context.Context, imp *importer, path string) (int, error) {
	if path == "-" {
		return imp.Import(ctx, os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return imp.Import(ctx, f)
}
