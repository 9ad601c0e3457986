// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/metrics"
)

// DefaultHistoryPageSize is the page size used when Options leaves it unset.
const DefaultHistoryPageSize = 1000

// Options configures a Client.
//
// Zero values are replaced by defaults in NewClient. HistoryPageSize bounds
// one page of a history read, not the history itself.
type Options struct {
	Addresses []string
	Username  string
	Password  string
	APIKey    string

	// MoviesIndex holds MovieItem documents.
	MoviesIndex string
	// PreferencesIndex holds InteractionRecord documents.
	PreferencesIndex string
	// HistoryPageSize is the number of records fetched per history page.
	// All pages are read; this only bounds the size of one response.
	HistoryPageSize int

	// MaxRetries is the transport retry count for 502/503/504. Zero
	// disables retries.
	MaxRetries int

	Breaker BreakerSettings

	// Transport overrides the HTTP transport. Tests use it to point at an
	// httptest server.
	Transport http.RoundTripper
}

// Client is an Elasticsearch-backed Searcher, Catalog and HistoryStore.
//
// Every call goes through a circuit breaker. Once the cluster has failed
// enough consecutive requests the breaker opens and calls fail fast with
// ErrBreakerOpen until the cooldown elapses, which keeps a dead cluster
// from tying up request goroutines.
//
// Per-call latency and outcome are recorded in the Prometheus metrics of
// this package. A Client is safe for concurrent use.
type Client struct {
	es      *elasticsearch.Client
	opts    Options
	breaker *breaker
	logger  zerolog.Logger
}

// NewClient creates a Client. It does not contact the cluster; use Ping.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(opts Options, logger zerolog.Logger) (*Client, error) {
	if len(opts.Addresses) == 0 {
		return nil, errors.New("at least one elasticsearch address is required")
	}
	if opts.MoviesIndex == "" || opts.PreferencesIndex == "" {
		return nil, errors.New("movies and preferences index names are required")
	}
	if opts.HistoryPageSize <= 0 {
		opts.HistoryPageSize = DefaultHistoryPageSize
	}
	if opts.Breaker == (BreakerSettings{}) {
		opts.Breaker = DefaultBreakerSettings()
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    opts.Addresses,
		Username:     opts.Username,
		Password:     opts.Password,
		APIKey:       opts.APIKey,
		MaxRetries:   opts.MaxRetries,
		DisableRetry: opts.MaxRetries == 0,
		Transport:    opts.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	logger = logger.With().Str("component", "search").Logger()
	return &Client{
		es:      es,
		opts:    opts,
		breaker: newBreaker("elasticsearch", opts.Breaker, logger),
		logger:  logger,
	}, nil
}

// Ping checks the cluster answers. It bypasses the circuit breaker so that
// readiness reflects the cluster rather than the breaker.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping elasticsearch: %w", err)
	}
	defer drain(res)
	if res.IsError() {
		return fmt.Errorf("ping elasticsearch: status %d", res.StatusCode)
	}
	return nil
}

// BreakerState reports the circuit breaker state.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

// call runs one request under the breaker and returns the response body.
// A 404 yields found=false and no error.
func (c *Client) call(ctx context.Context, operation, index string, do func() (*esapi.Response, error)) (body []byte, found bool, err error) {
	start := time.Now()
	err = c.breaker.do(func() error {
		res, rerr := do()
		if rerr != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("%s %s: %w", operation, index, ctx.Err())
			}
			return fmt.Errorf("%s %s: %w", operation, index, rerr)
		}
		defer drain(res)

		if res.StatusCode == http.StatusNotFound {
			found = false
			return nil
		}

		data, rerr := io.ReadAll(res.Body)
		if rerr != nil {
			return fmt.Errorf("%s %s: read body: %w", operation, index, rerr)
		}
		if res.IsError() {
			return responseError(operation, index, res.StatusCode, data)
		}
		body, found = data, true
		return nil
	})
	metrics.RecordSearch(operation, index, time.Since(start), err)
	return body, found, err
}

func responseError(operation, index string, status int, body []byte) error {
	var er errorResponse
	reason := http.StatusText(status)
	if json.Unmarshal(body, &er) == nil && er.Error.Reason != "" {
		reason = er.Error.Type + ": " + er.Error.Reason
	}
	err := fmt.Errorf("%s %s: status %d: %s", operation, index, status, reason)
	if status >= 400 && status < 500 && status != http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", errClientSide, err)
	}
	return err
}

func drain(res *esapi.Response) {
	if res == nil || res.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
}
