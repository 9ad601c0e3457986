// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
)

// fakeRecommender records the last call and returns canned movies.
type fakeRecommender struct {
	mu      sync.Mutex
	movies  []models.MovieItem
	userID  int64
	movieID string
	size    int
	calls   int
}

func (f *fakeRecommender) Personalized(_ context.Context, userID int64, size int) []models.MovieItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.userID, f.size = userID, size
	return f.movies
}

func (f *fakeRecommender) Similar(_ context.Context, movieID string, size int) []models.MovieItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.movieID, f.size = movieID, size
	return f.movies
}

type envelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

func newTestServer(t *testing.T, rec Recommender, opts HandlerOptions, mwCfg *ChiMiddlewareConfig) http.Handler {
	t.Helper()
	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
	}
	return NewRouter(NewHandler(rec, opts), NewChiMiddleware(mwCfg)).SetupChi()
}

func doGet(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not JSON: %q (%v)", rec.Body.String(), err)
	}
	return rec, env
}

func TestPersonalized(t *testing.T) {
	fake := &fakeRecommender{movies: []models.MovieItem{{ID: "m1", Title: "Heat", Rating: 4.6}}}
	srv := newTestServer(t, fake, HandlerOptions{DefaultSize: 10}, nil)

	rec, env := doGet(t, srv, "/recommendations/personalized/42?size=5")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if fake.userID != 42 || fake.size != 5 {
		t.Errorf("recommender called with user=%d size=%d", fake.userID, fake.size)
	}

	var list models.RecommendationList
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if list.Strategy != "personalized" || list.Count != 1 || list.Movies[0].ID != "m1" {
		t.Errorf("unexpected payload: %+v", list)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers on recommendation routes")
	}
}

func TestPersonalized_DefaultSize(t *testing.T) {
	fake := &fakeRecommender{}
	srv := newTestServer(t, fake, HandlerOptions{DefaultSize: 10}, nil)

	rec, env := doGet(t, srv, "/recommendations/personalized/7")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if fake.size != 10 {
		t.Errorf("size = %d, want default 10", fake.size)
	}

	var list models.RecommendationList
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if list.Movies == nil || list.Count != 0 {
		t.Errorf("empty result should serialize as an empty list, got %+v", list)
	}
}

func TestRecommendations_BadInput(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		rawPath  string
		wantCode string
	}{
		{name: "non numeric user", target: "/recommendations/personalized/abc", wantCode: "INVALID_USER_ID"},
		{name: "user overflow", target: "/recommendations/personalized/99999999999999999999", wantCode: "INVALID_USER_ID"},
		{name: "size zero", target: "/recommendations/personalized/1?size=0", wantCode: "VALIDATION_ERROR"},
		{name: "size too large", target: "/recommendations/personalized/1?size=101", wantCode: "VALIDATION_ERROR"},
		{name: "size not a number", target: "/recommendations/personalized/1?size=ten", wantCode: "VALIDATION_ERROR"},
		{name: "similar size negative", target: "/recommendations/similar/m1?size=-3", wantCode: "VALIDATION_ERROR"},
		{name: "similar blank id", target: "/recommendations/similar/%20%20", wantCode: "VALIDATION_ERROR"},
		{name: "similar bad escape", rawPath: "/recommendations/similar/%zz", wantCode: "INVALID_MOVIE_ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRecommender{}
			srv := newTestServer(t, fake, HandlerOptions{}, nil)

			rec := httptest.NewRecorder()
			var req *http.Request
			if tt.rawPath != "" {
				// url.Parse rejects malformed escapes, so set the raw path directly.
				req = httptest.NewRequest(http.MethodGet, "/recommendations/similar/x", nil)
				req.URL.Path = tt.rawPath
				req.URL.RawPath = tt.rawPath
			} else {
				req = httptest.NewRequest(http.MethodGet, tt.target, nil)
			}
			srv.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			var env envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Status != "error" || env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
			if fake.calls != 0 {
				t.Error("recommender should not be called for invalid input")
			}
		})
	}
}

func TestSimilar_DecodesMovieID(t *testing.T) {
	fake := &fakeRecommender{movies: []models.MovieItem{{ID: "m9"}}}
	srv := newTestServer(t, fake, HandlerOptions{}, nil)

	rec, _ := doGet(t, srv, "/recommendations/similar/tt%3A0111161?size=3")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if fake.movieID != "tt:0111161" || fake.size != 3 {
		t.Errorf("recommender called with id=%q size=%d", fake.movieID, fake.size)
	}
}

func TestHealthLive(t *testing.T) {
	srv := newTestServer(t, &fakeRecommender{}, HandlerOptions{Version: "1.2.3"}, nil)

	rec, env := doGet(t, srv, "/health/live")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var hs models.HealthStatus
	if err := json.Unmarshal(env.Data, &hs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if hs.Status != "alive" || hs.Version != "1.2.3" {
		t.Errorf("unexpected health: %+v", hs)
	}
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name       string
		checks     []ReadinessCheck
		wantStatus int
		wantChecks map[string]string
	}{
		{
			name:       "all healthy",
			checks:     []ReadinessCheck{{Name: "elasticsearch", Check: func(context.Context) error { return nil }}},
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"elasticsearch": "ok", "search_breaker": "closed"},
		},
		{
			name: "one failing",
			checks: []ReadinessCheck{
				{Name: "elasticsearch", Check: func(context.Context) error { return errors.New("connection refused") }},
				{Name: "duckdb", Check: func(context.Context) error { return nil }},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"elasticsearch": "error: connection refused", "duckdb": "ok", "search_breaker": "closed"},
		},
		{
			name: "check times out",
			checks: []ReadinessCheck{{Name: "elasticsearch", Check: func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			}}},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"elasticsearch": "error: context deadline exceeded", "search_breaker": "closed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &fakeRecommender{}, HandlerOptions{
				CheckTimeout: 20 * time.Millisecond,
				Checks:       tt.checks,
				Details:      map[string]func() string{"search_breaker": func() string { return "closed" }},
			}, nil)

			rec, env := doGet(t, srv, "/health/ready")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var hs models.HealthStatus
			if err := json.Unmarshal(env.Data, &hs); err != nil {
				t.Fatalf("decode: %v", err)
			}
			for k, v := range tt.wantChecks {
				if hs.Checks[k] != v {
					t.Errorf("checks[%s] = %q, want %q", k, hs.Checks[k], v)
				}
			}
		})
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	srv := newTestServer(t, &fakeRecommender{}, HandlerOptions{}, nil)

	rec, env := doGet(t, srv, "/recommendations/trending")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("unbound route: status=%d error=%+v", rec.Code, env.Error)
	}

	post := httptest.NewRecorder()
	srv.ServeHTTP(post, httptest.NewRequest(http.MethodPost, "/recommendations/personalized/1", nil))
	if post.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", post.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	srv := newTestServer(t, &fakeRecommender{}, HandlerOptions{}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
