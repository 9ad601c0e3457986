// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

// HealthLive reports that the process is up, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:    "alive",
			Version:   h.opts.Version,
			Uptime:    time.Since(h.startTime).Round(time.Second).String(),
			Timestamp: time.Now(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady checks every dependency concurrently and returns 503 when any
// check fails.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string, len(h.opts.Checks)+len(h.opts.Details))
	ready := true

	var mu sync.Mutex
	var g errgroup.Group
	for _, c := range h.opts.Checks {
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(r.Context(), h.opts.CheckTimeout)
			defer cancel()

			err := c.Check(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				ready = false
				checks[c.Name] = "error: " + sanitizeLogValue(err.Error())
				logging.Ctx(r.Context()).Warn().Err(err).Str("check", c.Name).Msg("Readiness check failed")
				return nil
			}
			checks[c.Name] = "ok"
			return nil
		})
	}
	g.Wait() //nolint:errcheck // checks always return nil

	for name, detail := range h.opts.Details {
		checks[name] = detail()
	}

	statusCode, status := http.StatusOK, "ready"
	if !ready {
		statusCode, status = http.StatusServiceUnavailable, "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:    status,
			Version:   h.opts.Version,
			Uptime:    time.Since(h.startTime).Round(time.Second).String(),
			Checks:    checks,
			Timestamp: time.Now(),
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
