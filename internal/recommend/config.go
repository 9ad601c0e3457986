// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"time"
)

// Ranking rules. These are product decisions rather than tuning knobs.
const (
	// PersonalizedMinRating is the rating floor for personalized results.
	PersonalizedMinRating = 4.0

	// SeasonalMinRating is the rating floor for seasonal results.
	SeasonalMinRating = 4.0

	// TrendingWindowDays is how far back trending looks for releases.
	TrendingWindowDays = 30

	// SimilarMinTermFreq and SimilarMaxQueryTerms parameterise term
	// extraction from the reference movie.
	SimilarMinTermFreq   = 1
	SimilarMaxQueryTerms = 12
)

// Config contains runtime configuration for the orchestrator.
type Config struct {
	// MoviesIndex is the index holding MovieItem documents.
	MoviesIndex string

	// DefaultSize replaces a non-positive requested size.
	DefaultSize int

	// MaxSize caps the requested size.
	MaxSize int

	// RequestTimeout bounds one orchestrator call including all
	// collaborator round trips.
	RequestTimeout time.Duration

	// LookupConcurrency bounds parallel catalog lookups while computing
	// affinities.
	LookupConcurrency int
}

// DefaultConfig returns production defaults.
func DefaultConfig() *Config {
	return &Config{
		MoviesIndex:       "movies",
		DefaultSize:       10,
		MaxSize:           100,
		RequestTimeout:    5 * time.Second,
		LookupConcurrency: 8,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.MoviesIndex == "" {
		return fmt.Errorf("movies_index must not be empty")
	}
	if c.DefaultSize < 1 {
		return fmt.Errorf("default_size must be positive, got %d", c.DefaultSize)
	}
	if c.MaxSize < c.DefaultSize {
		return fmt.Errorf("max_size must be >= default_size, got %d < %d", c.MaxSize, c.DefaultSize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %v", c.RequestTimeout)
	}
	if c.LookupConcurrency < 1 {
		return fmt.Errorf("lookup_concurrency must be positive, got %d", c.LookupConcurrency)
	}
	return nil
}

// clampSize applies DefaultSize and MaxSize to a requested size.
func (c *Config) clampSize(size int) int {
	switch {
	case size <= 0:
		return c.DefaultSize
	case size > c.MaxSize:
		return c.MaxSize
	default:
		return size
	}
}
