// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// HTTPServer is the subset of *http.Server the service drives.
//
// Close is only called when Shutdown cannot drain in-flight requests before
// the shutdown timeout; it drops whatever connections remain.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Close() error
}

// HTTPServerService runs the recommendation API under the supervisor.
//
// Each call to Serve starts the listener once. When the supervisor cancels
// the context the service stops accepting connections and drains in-flight
// recommendation requests for up to the shutdown timeout. Requests still
// running after that are cut off with Close, so a stuck Elasticsearch call
// cannot hold the process open past the deadline the operator configured.
//
// A listener failure (for example the port being taken) is returned to the
// supervisor, which restarts the service with backoff. Starts counts those
// attempts.
//
//	server := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
//	svc := services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logger)
//	tree.AddAPIService(svc)
type HTTPServerService struct {
	server          HTTPServer
	addr            string
	shutdownTimeout time.Duration
	logger          zerolog.Logger
	starts          atomic.Int64
}

// NewHTTPServerService wraps server. addr is used for logging only. A
// non-positive shutdownTimeout becomes 10s.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHTTPServerService(server HTTPServer, addr string, shutdownTimeout time.Duration, logger zerolog.Logger) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server:          server,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		logger:          logger.With().Str("service", "http-server").Str("addr", addr).Logger(),
	}
}

// Serve implements suture.Service. It returns ctx.Err() after a graceful
// shutdown and a wrapped error if the listener fails or the drain had to be
// cut short.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	attempt := h.starts.Add(1)
	errCh := make(chan error, 1)
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	h.logger.Info().Int64("attempt", attempt).Msg("HTTP server listening")

	select {
	case err := <-errCh:
		if err != nil {
			h.logger.Error().Err(err).Msg("HTTP server failed")
			return fmt.Errorf("http server on %s failed: %w", h.addr, err)
		}
		return nil

	case <-ctx.Done():
		return h.drain(ctx, errCh)
	}
}

func (h *HTTPServerService) drain(ctx context.Context, errCh <-chan error) error {
	start := time.Now()
	h.logger.Info().Dur("timeout", h.shutdownTimeout).Msg("Draining HTTP connections")

	// ctx is already canceled; shut down on a fresh deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(shutdownCtx); err != nil {
		h.logger.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("Drain incomplete, closing remaining connections")
		if cerr := h.server.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		<-errCh
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	<-errCh
	h.logger.Info().Dur("elapsed", time.Since(start)).Msg("HTTP server stopped")
	return ctx.Err()
}

// Starts reports how many times Serve has been called.
func (h *HTTPServerService) Starts() int64 {
	return h.starts.Load()
}

func (h *HTTPServerService) String() string {
	return "http-server"
}
