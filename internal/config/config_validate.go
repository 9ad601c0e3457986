// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
)

// Validate checks that the configuration is complete and within bounds.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateElasticsearch,
		c.validateHistory,
		c.validateRecommend,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateElasticsearch() error {
	es := c.Elasticsearch
	if len(es.Addresses) == 0 {
		return errors.New("ELASTICSEARCH_URLS is required")
	}
	for _, addr := range es.Addresses {
		u, err := url.Parse(addr)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("ELASTICSEARCH_URLS contains an invalid URL: %q", addr)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("ELASTICSEARCH_URLS must use http or https: %q", addr)
		}
	}
	if es.MoviesIndex == "" {
		return errors.New("ES_MOVIES_INDEX is required")
	}
	if es.PreferencesIndex == "" && !c.UsesDuckDBHistory() {
		return errors.New("ES_PREFERENCES_INDEX is required when HISTORY_BACKEND=elasticsearch")
	}
	if es.MaxRetries < 0 {
		return errors.New("ES_MAX_RETRIES must be non-negative")
	}
	if es.Breaker.FailureRatio <= 0 || es.Breaker.FailureRatio > 1 {
		return errors.New("ES_BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	if es.Breaker.Timeout <= 0 {
		return errors.New("ES_BREAKER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateHistory() error {
	switch c.History.Backend {
	case HistoryBackendElasticsearch:
	case HistoryBackendDuckDB:
		if c.Database.Path == "" {
			return errors.New("DUCKDB_PATH is required when HISTORY_BACKEND=duckdb")
		}
		if c.Database.Threads < 0 {
			return errors.New("DUCKDB_THREADS must be non-negative")
		}
	default:
		return fmt.Errorf("HISTORY_BACKEND must be one of: elasticsearch, duckdb (got %q)", c.History.Backend)
	}
	if c.History.PageSize < 1 || c.History.PageSize > maxHistoryPageSize {
		return fmt.Errorf("HISTORY_PAGE_SIZE must be between 1 and %d (got %d)", maxHistoryPageSize, c.History.PageSize)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MaxSize < 1 {
		return errors.New("RECOMMEND_MAX_SIZE must be at least 1")
	}
	if r.DefaultSize < 1 || r.DefaultSize > r.MaxSize {
		return fmt.Errorf("RECOMMEND_DEFAULT_SIZE must be between 1 and %d", r.MaxSize)
	}
	if r.RequestTimeout <= 0 {
		return errors.New("RECOMMEND_TIMEOUT must be positive")
	}
	if r.LookupConcurrency < 1 {
		return errors.New("RECOMMEND_LOOKUP_CONCURRENCY must be at least 1")
	}
	return nil
}

// maxHistoryPageSize matches the default index.max_result_window.
const maxHistoryPageSize = 10000

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	if c.hasWildcardCORS() && len(c.Security.CORSOrigins) > 1 {
		return errors.New("CORS_ORIGINS cannot mix * with explicit origins")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	return slices.Contains(c.Security.CORSOrigins, "*")
}

// ShouldWarnAboutCORS reports whether a production server allows any origin.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.IsProduction() && c.hasWildcardCORS()
}

var validLogFormats = map[string]bool{"json": true, "console": true}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic")
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
