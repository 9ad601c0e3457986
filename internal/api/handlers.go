// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"time"

	"github.com/tomtom215/marquee/internal/models"
)

// Recommender is the engine surface the handlers call. Both methods return
// an empty slice on any internal failure.
type Recommender interface {
	Personalized(ctx context.Context, userID int64, size int) []models.MovieItem
	Similar(ctx context.Context, movieID string, size int) []models.MovieItem
}

// ReadinessCheck is a dependency checked by /health/ready.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	Version     string
	DefaultSize int
	// CheckTimeout bounds each readiness check.
	CheckTimeout time.Duration
	Checks       []ReadinessCheck
	// Details are reported by /health/ready without affecting readiness,
	// such as the search circuit breaker state.
	Details map[string]func() string
}

// Handler serves the HTTP endpoints.
type Handler struct {
	recommender Recommender
	opts        HandlerOptions
	startTime   time.Time
}

// NewHandler creates a Handler.
func NewHandler(rec Recommender, opts HandlerOptions) *Handler {
	if opts.DefaultSize <= 0 {
		opts.DefaultSize = 10
	}
	if opts.CheckTimeout <= 0 {
		opts.CheckTimeout = 2 * time.Second
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	return &Handler{
		recommender: rec,
		opts:        opts,
		startTime:   time.Now(),
	}
}
