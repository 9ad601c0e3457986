// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// History backends.
const (
	HistoryBackendElasticsearch = "elasticsearch"
	HistoryBackendDuckDB        = "duckdb"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Elasticsearch ElasticsearchConfig `koanf:"elasticsearch"`
	History       HistoryConfig       `koanf:"history"`
	Database      DatabaseConfig      `koanf:"database"`
	Recommend     RecommendConfig     `koanf:"recommend"`
	Security      SecurityConfig      `koanf:"security"`
	Logging       LoggingConfig       `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ElasticsearchConfig holds the search cluster connection.
type ElasticsearchConfig struct {
	Addresses        []string      `koanf:"addresses"`
	Username         string        `koanf:"username"`
	Password         string        `koanf:"password"`
	APIKey           string        `koanf:"api_key"`
	MoviesIndex      string        `koanf:"movies_index"`
	PreferencesIndex string        `koanf:"preferences_index"`
	MaxRetries       int           `koanf:"max_retries"`
	Breaker          BreakerConfig `koanf:"breaker"`
}

// BreakerConfig mirrors gobreaker settings for the search client.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// HistoryConfig selects where interaction history is read from.
type HistoryConfig struct {
	Backend string `koanf:"backend"`

	// PageSize is how many records one Elasticsearch history request
	// returns. Every page is read, so it never limits the history used.
	PageSize int `koanf:"page_size"`
}

// DatabaseConfig holds DuckDB settings for the duckdb history backend.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = runtime.NumCPU()
}

// RecommendConfig holds recommendation request limits.
type RecommendConfig struct {
	DefaultSize       int           `koanf:"default_size"`
	MaxSize           int           `koanf:"max_size"`
	RequestTimeout    time.Duration `koanf:"request_timeout"`
	LookupConcurrency int           `koanf:"lookup_concurrency"`
}

// SecurityConfig holds HTTP exposure controls.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// UsesDuckDBHistory reports whether history comes from DuckDB.
func (c *Config) UsesDuckDBHistory() bool {
	return c.History.Backend == HistoryBackendDuckDB
}

// String returns a redacted summary suitable for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("server=%s env=%s es=%v movies=%s history=%s",
		c.Server.Addr(), c.Server.Environment, c.Elasticsearch.Addresses,
		c.Elasticsearch.MoviesIndex, c.History.Backend)
}
