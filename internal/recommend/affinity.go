// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// PreferenceAggregator derives CategoryAffinity from interaction history.
//
// It reads the user's whole history from the HistoryStore, resolves each
// distinct movie through the Catalog, and averages the ratings per genre.
// Movies that no longer exist in the catalog are skipped. When the Catalog
// also implements BatchCatalog the movies are resolved in one call;
// otherwise lookups fan out with at most concurrency requests in flight.
type PreferenceAggregator struct {
	history     HistoryStore
	catalog     Catalog
	concurrency int
	logger      zerolog.Logger
}

// NewPreferenceAggregator creates an aggregator. concurrency below 1 is
// treated as 1.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPreferenceAggregator(history HistoryStore, catalog Catalog, concurrency int, logger zerolog.Logger) *PreferenceAggregator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &PreferenceAggregator{
		history:     history,
		catalog:     catalog,
		concurrency: concurrency,
		logger:      logger.With().Str("component", "affinity").Logger(),
	}
}

// ComputeAffinities loads the user's history and aggregates it.
func (a *PreferenceAggregator) ComputeAffinities(ctx context.Context, userID int64) (CategoryAffinity, error) {
	records, err := a.loadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return a.Aggregate(ctx, records)
}

func (a *PreferenceAggregator) loadHistory(ctx context.Context, userID int64) ([]models.InteractionRecord, error) {
	records, err := a.history.InteractionsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %d: %w", ErrHistoryUnavailable, userID, err)
	}
	return records, nil
}

// Aggregate folds records into per-genre mean ratings. Each record
// contributes its rating once to every genre of the movie it refers to.
// Records whose movie no longer exists are skipped. Any other catalog error
// aborts the aggregation.
func (a *PreferenceAggregator) Aggregate(ctx context.Context, records []models.InteractionRecord) (CategoryAffinity, error) {
	affinities := make(CategoryAffinity)
	if len(records) == 0 {
		return affinities, nil
	}

	movies, err := a.resolve(ctx, models.WatchedMovieIDs(records))
	if err != nil {
		return nil, err
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	skipped := 0
	for i := range records {
		movie, ok := movies[records[i].MovieID]
		if !ok {
			skipped++
			continue
		}
		for _, genre := range movie.Genres {
			sums[genre] += records[i].Rating
			counts[genre]++
		}
	}

	for genre, n := range counts {
		affinities[genre] = sums[genre] / float64(n)
	}

	metrics.RecordAffinityProfile(len(affinities), skipped)
	a.logger.Debug().
		Int("records", len(records)).
		Int("skipped", skipped).
		Int("genres", len(affinities)).
		Msg("computed affinities")

	return affinities, nil
}

// resolve looks up each distinct id once. Missing movies are absent from the
// returned map.
func (a *PreferenceAggregator) resolve(ctx context.Context, ids []string) (map[string]models.MovieItem, error) {
	if batch, ok := a.catalog.(BatchCatalog); ok {
		movies, err := batch.Movies(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("%w: %d movies: %w", ErrCatalogUnavailable, len(ids), err)
		}
		return movies, nil
	}
	return a.resolveEach(ctx, ids)
}

// resolveEach issues one Movie call per id with bounded parallelism.
func (a *PreferenceAggregator) resolveEach(ctx context.Context, ids []string) (map[string]models.MovieItem, error) {
	found := make([]Maybe[models.MovieItem], len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			m, err := a.catalog.Movie(gctx, id)
			if err != nil {
				return fmt.Errorf("%w: movie %s: %w", ErrCatalogUnavailable, id, err)
			}
			found[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]models.MovieItem, len(ids))
	for i, id := range ids {
		if m, ok := found[i].Get(); ok {
			out[id] = m
		}
	}
	return out, nil
}
