// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// Orchestrator is the entry point for all recommendation strategies.
//
// Each public method builds one Strategy, executes the resulting request
// through the Searcher, and folds every error into a Result. Callers never
// see a Go error from an Orchestrator method: a search failure, a missing
// reference movie or an invalid argument all come back as a failed Result
// carrying a FailureReason that the HTTP layer maps to a status code.
//
// An Orchestrator holds no per-call state and is safe for concurrent use.
type Orchestrator struct {
	config     *Config
	searcher   Searcher
	aggregator *PreferenceAggregator
	composer   Composer
	logger     zerolog.Logger
}

// NewOrchestrator wires the collaborators. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewOrchestrator(cfg *Config, searcher Searcher, history HistoryStore, catalog Catalog, logger zerolog.Logger) (*Orchestrator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if searcher == nil || history == nil || catalog == nil {
		return nil, errors.New("searcher, history and catalog are required")
	}

	logger = logger.With().Str("component", "recommend").Logger()
	return &Orchestrator{
		config:     cfg,
		searcher:   searcher,
		aggregator: NewPreferenceAggregator(history, catalog, cfg.LookupConcurrency, logger),
		composer:   Composer{MoviesIndex: cfg.MoviesIndex},
		logger:     logger,
	}, nil
}

// Personalized recommends well-rated movies the user has not watched,
// boosted by the genres they rate highly.
func (o *Orchestrator) Personalized(ctx context.Context, userID int64, size int) []models.MovieItem {
	s := Personalized{
		Aggregator: o.aggregator,
		Composer:   o.composer,
		UserID:     userID,
		Size:       o.config.clampSize(size),
	}
	return o.serve(ctx, s, func(c zerolog.Context) zerolog.Context { return c.Int64("user_id", userID) })
}

// Similar recommends movies whose text resembles movieID.
func (o *Orchestrator) Similar(ctx context.Context, movieID string, size int) []models.MovieItem {
	s := Similar{Composer: o.composer, MovieID: movieID, Size: o.config.clampSize(size)}
	return o.serve(ctx, s, func(c zerolog.Context) zerolog.Context { return c.Str("movie_id", movieID) })
}

// Trending recommends the most viewed releases of the last 30 days.
func (o *Orchestrator) Trending(ctx context.Context, size int) []models.MovieItem {
	s := Trending{MoviesIndex: o.config.MoviesIndex, Size: o.config.clampSize(size)}
	return o.serve(ctx, s, nil)
}

// Seasonal recommends top-rated movies tagged with season.
func (o *Orchestrator) Seasonal(ctx context.Context, season string, size int) []models.MovieItem {
	s := Seasonal{MoviesIndex: o.config.MoviesIndex, Season: season, Size: o.config.clampSize(size)}
	return o.serve(ctx, s, func(c zerolog.Context) zerolog.Context { return c.Str("season", season) })
}

// serve runs s and applies the fail-open policy.
func (o *Orchestrator) serve(ctx context.Context, s Strategy, subject func(zerolog.Context) zerolog.Context) []models.MovieItem {
	start := time.Now()
	res := o.Recommend(ctx, s)
	elapsed := time.Since(start)

	lc := o.logger.With().Str("strategy", s.Name())
	if id := logging.RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	if subject != nil {
		lc = subject(lc)
	}
	logger := lc.Logger()

	if f, failed := res.Failure(); failed {
		metrics.RecordRecommendation(s.Name(), string(f.Reason), elapsed, 0)
		logger.Error().
			Err(f.Err).
			Str("reason", string(f.Reason)).
			Dur("elapsed", elapsed).
			Msg("recommendation failed, serving empty result")
		return res.Items()
	}

	items := res.Items()
	metrics.RecordRecommendation(s.Name(), "", elapsed, len(items))
	logger.Debug().
		Int("returned", len(items)).
		Dur("elapsed", elapsed).
		Msg("recommendation complete")
	return items
}

// Recommend runs one strategy under the configured timeout and reports the
// outcome as a Result. It never panics into the caller.
func (o *Orchestrator) Recommend(ctx context.Context, s Strategy) (res Result) {
	ctx, cancel := context.WithTimeout(ctx, o.config.RequestTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			res = Failed(ReasonInternal, fmt.Errorf("panic in %s strategy: %v", s.Name(), r))
		}
	}()

	req, err := s.Build(ctx)
	if err != nil {
		return Failed(classify(err), fmt.Errorf("build %s request: %w", s.Name(), err))
	}
	if err := req.Validate(); err != nil {
		return Failed(ReasonInvalidRequest, err)
	}

	hits, err := o.searcher.Search(ctx, req)
	if err != nil {
		return Failed(classify(err), fmt.Errorf("search: %w", err))
	}

	items := make([]models.MovieItem, 0, len(hits))
	for _, h := range hits {
		if m, ok := h.Source.Get(); ok {
			items = append(items, m)
		}
	}
	if dropped := len(hits) - len(items); dropped > 0 {
		o.logger.Debug().
			Str("strategy", s.Name()).
			Int("dropped", dropped).
			Msg("discarded hits without a source document")
	}
	return Success(items)
}
