// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend/query"
)

// Strategy names, used in logs, metrics and API payloads.
const (
	StrategyPersonalized = "personalized"
	StrategySimilar      = "similar"
	StrategyTrending     = "trending"
	StrategySeasonal     = "seasonal"
)

// Strategy produces the retrieval request for one recommendation call.
//
// Build may perform I/O, as Personalized does when it loads affinities, but
// it never executes the final search. Errors returned by Build are already
// classified: a *Failure passes through the Orchestrator unchanged and any
// other error is reported as an internal failure.
type Strategy interface {
	Name() string
	Build(ctx context.Context) (query.Request, error)
}

// Personalized ranks by the user's genre affinities.
type Personalized struct {
	Aggregator *PreferenceAggregator
	Composer   Composer
	UserID     int64
	Size       int
}

// Name implements Strategy.
func (Personalized) Name() string { return StrategyPersonalized }

// Build reads the history once and derives both the affinities and the
// watched-movie exclusions from it.
func (s Personalized) Build(ctx context.Context) (query.Request, error) {
	records, err := s.Aggregator.loadHistory(ctx, s.UserID)
	if err != nil {
		return query.Request{}, err
	}
	affinities, err := s.Aggregator.Aggregate(ctx, records)
	if err != nil {
		return query.Request{}, err
	}
	return s.Composer.ComposePersonalized(affinities, models.WatchedMovieIDs(records), s.Size), nil
}

// Similar ranks by content similarity to one movie.
type Similar struct {
	Composer Composer
	MovieID  string
	Size     int
}

// Name implements Strategy.
func (Similar) Name() string { return StrategySimilar }

// Build implements Strategy.
func (s Similar) Build(_ context.Context) (query.Request, error) {
	if strings.TrimSpace(s.MovieID) == "" {
		return query.Request{}, fmt.Errorf("%w: movie id is required", query.ErrInvalidRequest)
	}
	return s.Composer.ComposeSimilar(s.MovieID, s.Size), nil
}

// Trending ranks recent releases by popularity.
type Trending struct {
	MoviesIndex string
	Size        int
}

// Name implements Strategy.
func (Trending) Name() string { return StrategyTrending }

// Build implements Strategy.
func (s Trending) Build(_ context.Context) (query.Request, error) {
	return query.New(s.MoviesIndex).
		WithMust(
			query.ReleasedWithin(TrendingWindowDays),
			query.RatingAtLeast(0),
		).
		SortBy(
			query.Desc(models.FieldViewCount),
			query.Desc(models.FieldRating),
			query.Desc(models.FieldReleaseDate),
		).
		WithSize(s.Size), nil
}

// Seasonal ranks well-rated movies tagged for a season.
type Seasonal struct {
	MoviesIndex string
	Season      string
	Size        int
}

// Name implements Strategy.
func (Seasonal) Name() string { return StrategySeasonal }

// Build implements Strategy.
func (s Seasonal) Build(_ context.Context) (query.Request, error) {
	season := strings.TrimSpace(s.Season)
	if season == "" {
		return query.Request{}, fmt.Errorf("%w: season is required", query.ErrInvalidRequest)
	}
	return query.New(s.MoviesIndex).
		WithMust(
			query.TagEquals(models.FieldSeasonTags, season),
			query.RatingAtLeast(SeasonalMinRating),
		).
		SortBy(query.Desc(models.FieldRating)).
		WithSize(s.Size), nil
}
