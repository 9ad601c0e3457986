// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/metrics"
)

// HealthCheck checks one backend. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

// DependencyMonitorService checks a backend on a fixed interval, exports the
// result as marquee_dependency_up, and logs state changes.
type DependencyMonitorService struct {
	name     string
	check    HealthCheck
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger

	// up is nil until the first check completes.
	up *bool
}

// NewDependencyMonitorService creates a monitor. Non-positive durations fall
// back to a 15s interval and a 5s check timeout.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewDependencyMonitorService(name string, check HealthCheck, interval, timeout time.Duration, logger zerolog.Logger) *DependencyMonitorService {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &DependencyMonitorService{
		name:     name,
		check:    check,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With().Str("component", "dependency-monitor").Str("dependency", name).Logger(),
	}
}

// Serve implements suture.Service. It checks once immediately, then on every
// tick until ctx is canceled.
func (d *DependencyMonitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.poll(ctx)
		}
	}
}

func (d *DependencyMonitorService) poll(ctx context.Context) {
	checkCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	err := d.check(checkCtx)
	if ctx.Err() != nil {
		// Shutting down; a canceled check says nothing about the backend.
		return
	}
	metrics.RecordDependencyCheck(d.name, err)

	up := err == nil
	switch {
	case d.up == nil && !up:
		d.logger.Warn().Err(err).Msg("Dependency unavailable at startup")
	case d.up != nil && *d.up && !up:
		d.logger.Warn().Err(err).Msg("Dependency became unavailable")
	case d.up != nil && !*d.up && up:
		d.logger.Info().Msg("Dependency recovered")
	}
	d.up = &up
}

func (d *DependencyMonitorService) String() string {
	return "monitor-" + d.name
}
