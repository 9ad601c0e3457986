// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestOrchestrator(t *testing.T, s Searcher, h HistoryStore, c Catalog) *Orchestrator {
	t.Helper()
	cfg := DefaultConfig()
	cfg.RequestTimeout = 200 * time.Millisecond
	o, err := NewOrchestrator(cfg, s, h, c, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}
	return o
}

func TestNewOrchestrator_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewOrchestrator(nil, nil, &mockHistory{}, &mockCatalog{}, zerolog.Nop()); err == nil {
		t.Error("expected error for nil searcher")
	}
	bad := DefaultConfig()
	bad.MaxSize = 1
	if _, err := NewOrchestrator(bad, &memorySearcher{}, &mockHistory{}, &mockCatalog{}, zerolog.Nop()); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestPersonalized_TieBreakOnViewCount(t *testing.T) {
	t.Parallel()

	catalog := &mockCatalog{movies: map[string]models.MovieItem{
		"seen": {ID: "seen", Genres: []string{"Drama"}},
	}}
	history := &mockHistory{records: map[int64][]models.InteractionRecord{
		1: {{MovieID: "seen", Rating: 5}},
	}}
	searcher := &memorySearcher{now: testNow, movies: []models.MovieItem{
		{ID: "X", Rating: 4.5, ViewCount: 100},
		{ID: "Y", Rating: 4.5, ViewCount: 500},
		{ID: "low", Rating: 3.0, ViewCount: 9999},
		{ID: "seen", Rating: 5.0, ViewCount: 1},
	}}

	got := newTestOrchestrator(t, searcher, history, catalog).Personalized(context.Background(), 1, 10)

	if !equalIDs(got, "Y", "X") {
		t.Errorf("got %v, want [Y X]", movieIDs(got))
	}
}

func TestPersonalized_NoHistoryStillFiltersRating(t *testing.T) {
	t.Parallel()

	searcher := &memorySearcher{now: testNow, movies: []models.MovieItem{
		{ID: "good", Rating: 4.2},
		{ID: "bad", Rating: 2.0},
	}}
	o := newTestOrchestrator(t, searcher, &mockHistory{}, &mockCatalog{})

	got := o.Personalized(context.Background(), 404, 10)
	if !equalIDs(got, "good") {
		t.Errorf("got %v, want [good]", movieIDs(got))
	}

	req, ok := searcher.lastRequest()
	if !ok {
		t.Fatal("expected a search call")
	}
	if len(req.Should()) != 0 || len(req.MustNot()) != 0 || len(req.Must()) != 1 {
		t.Errorf("unexpected request shape: should=%d must=%d mustNot=%d",
			len(req.Should()), len(req.Must()), len(req.MustNot()))
	}
}

func TestTrending_ThreeLevelTieBreak(t *testing.T) {
	t.Parallel()

	d1 := testNow.AddDate(0, 0, -10)
	d2 := testNow.AddDate(0, 0, -5)
	searcher := &memorySearcher{now: testNow, movies: []models.MovieItem{
		{ID: "X", ViewCount: 1000, Rating: 4.0, ReleaseDate: d1},
		{ID: "Y", ViewCount: 1000, Rating: 4.0, ReleaseDate: d2},
		{ID: "Z", ViewCount: 1000, Rating: 4.2, ReleaseDate: d1},
		{ID: "old", ViewCount: 9000, Rating: 5.0, ReleaseDate: testNow.AddDate(0, 0, -90)},
	}}

	got := newTestOrchestrator(t, searcher, &mockHistory{}, &mockCatalog{}).Trending(context.Background(), 10)
	if !equalIDs(got, "Z", "Y", "X") {
		t.Errorf("got %v, want [Z Y X]", movieIDs(got))
	}
}

func TestSeasonal_FiltersAndSorts(t *testing.T) {
	t.Parallel()

	searcher := &memorySearcher{now: testNow, movies: []models.MovieItem{
		{ID: "a", Rating: 4.1, SeasonTags: []string{"winter"}},
		{ID: "b", Rating: 4.9, SeasonTags: []string{"winter", "holiday"}},
		{ID: "c", Rating: 3.5, SeasonTags: []string{"winter"}},
		{ID: "d", Rating: 5.0, SeasonTags: []string{"summer"}},
	}}

	got := newTestOrchestrator(t, searcher, &mockHistory{}, &mockCatalog{}).Seasonal(context.Background(), "winter", 10)
	if !equalIDs(got, "b", "a") {
		t.Errorf("got %v, want [b a]", movieIDs(got))
	}
}

func TestSimilar_RelevanceOrderAndNullSources(t *testing.T) {
	t.Parallel()

	searcher := &memorySearcher{hits: []Hit{
		{ID: "s1", Score: 9, Source: Some(models.MovieItem{ID: "s1"})},
		{ID: "ghost", Score: 8, Source: None[models.MovieItem]()},
		{ID: "s2", Score: 7, Source: Some(models.MovieItem{ID: "s2"})},
	}}

	got := newTestOrchestrator(t, searcher, &mockHistory{}, &mockCatalog{}).Similar(context.Background(), "m42", 10)
	if !equalIDs(got, "s1", "s2") {
		t.Errorf("got %v, want [s1 s2]", movieIDs(got))
	}
}

func TestOrchestrator_FailOpen(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	history := &mockHistory{records: map[int64][]models.InteractionRecord{1: {{MovieID: "A", Rating: 5}}}}

	tests := []struct {
		name     string
		searcher *memorySearcher
		history  *mockHistory
		catalog  *mockCatalog
		call     func(o *Orchestrator) []models.MovieItem
	}{
		{
			name:     "personalized search failure",
			searcher: &memorySearcher{err: boom},
			history:  &mockHistory{},
			catalog:  &mockCatalog{},
			call:     func(o *Orchestrator) []models.MovieItem { return o.Personalized(context.Background(), 1, 10) },
		},
		{
			name:     "personalized history failure",
			searcher: &memorySearcher{},
			history:  &mockHistory{err: boom},
			catalog:  &mockCatalog{},
			call:     func(o *Orchestrator) []models.MovieItem { return o.Personalized(context.Background(), 1, 10) },
		},
		{
			name:     "personalized catalog failure",
			searcher: &memorySearcher{},
			history:  history,
			catalog:  &mockCatalog{err: boom},
			call:     func(o *Orchestrator) []models.MovieItem { return o.Personalized(context.Background(), 1, 10) },
		},
		{
			name:     "similar search failure",
			searcher: &memorySearcher{err: boom},
			history:  &mockHistory{},
			catalog:  &mockCatalog{},
			call:     func(o *Orchestrator) []models.MovieItem { return o.Similar(context.Background(), "m1", 10) },
		},
		{
			name:     "trending search failure",
			searcher: &memorySearcher{err: boom},
			history:  &mockHistory{},
			catalog:  &mockCatalog{},
			call:     func(o *Orchestrator) []models.MovieItem { return o.Trending(context.Background(), 10) },
		},
		{
			name:     "seasonal search failure",
			searcher: &memorySearcher{err: boom},
			history:  &mockHistory{},
			catalog:  &mockCatalog{},
			call:     func(o *Orchestrator) []models.MovieItem { return o.Seasonal(context.Background(), "winter", 10) },
		},
		{
			name:     "searcher panic",
			searcher: &memorySearcher{panics: true},
			history:  &mockHistory{},
			catalog:  &mockCatalog{},
			call:     func(o *Orchestrator) []models.MovieItem { return o.Trending(context.Background(), 10) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			o := newTestOrchestrator(t, tt.searcher, tt.history, tt.catalog)
			got := tt.call(o)
			if got == nil {
				t.Fatal("expected non-nil empty slice")
			}
			if len(got) != 0 {
				t.Errorf("expected empty result, got %v", movieIDs(got))
			}
		})
	}
}

func TestRecommend_FailureReasons(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	history := &mockHistory{records: map[int64][]models.InteractionRecord{1: {{MovieID: "A", Rating: 5}}}}

	tests := []struct {
		name     string
		searcher *memorySearcher
		history  *mockHistory
		catalog  *mockCatalog
		strategy func(o *Orchestrator) Strategy
		want     FailureReason
	}{
		{
			name:     "search",
			searcher: &memorySearcher{err: boom},
			history:  &mockHistory{},
			catalog:  &mockCatalog{},
			strategy: func(o *Orchestrator) Strategy { return Trending{MoviesIndex: "movies", Size: 5} },
			want:     ReasonSearch,
		},
		{
			name:     "history",
			searcher: &memorySearcher{},
			history:  &mockHistory{err: boom},
			catalog:  &mockCatalog{},
			strategy: func(o *Orchestrator) Strategy {
				return Personalized{Aggregator: o.aggregator, Composer: o.composer, UserID: 1, Size: 5}
			},
			want: ReasonHistory,
		},
		{
			name:     "catalog",
			searcher: &memorySearcher{},
			history:  history,
			catalog:  &mockCatalog{err: boom},
			strategy: func(o *Orchestrator) Strategy {
				return Personalized{Aggregator: o.aggregator, Composer: o.composer, UserID: 1, Size: 5}
			},
			want: ReasonCatalog,
		},
		{
			name:     "timeout",
			searcher: &memorySearcher{block: true},
			history:  &mockHistory{},
			catalog:  &mockCatalog{},
			strategy: func(o *Orchestrator) Strategy { return Trending{MoviesIndex: "movies", Size: 5} },
			want:     ReasonTimeout,
		},
		{
			name:     "invalid request",
			searcher: &memorySearcher{},
			history:  &mockHistory{},
			catalog:  &mockCatalog{},
			strategy: func(o *Orchestrator) Strategy { return Seasonal{MoviesIndex: "movies", Season: "", Size: 5} },
			want:     ReasonInvalidRequest,
		},
		{
			name:     "zero size rejected by validation",
			searcher: &memorySearcher{},
			history:  &mockHistory{},
			catalog:  &mockCatalog{},
			strategy: func(o *Orchestrator) Strategy { return Trending{MoviesIndex: "movies", Size: 0} },
			want:     ReasonInvalidRequest,
		},
		{
			name:     "panic",
			searcher: &memorySearcher{panics: true},
			history:  &mockHistory{},
			catalog:  &mockCatalog{},
			strategy: func(o *Orchestrator) Strategy { return Trending{MoviesIndex: "movies", Size: 5} },
			want:     ReasonInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			o := newTestOrchestrator(t, tt.searcher, tt.history, tt.catalog)
			res := o.Recommend(context.Background(), tt.strategy(o))
			f, failed := res.Failure()
			if !failed {
				t.Fatal("expected a failure")
			}
			if f.Reason != tt.want {
				t.Errorf("reason = %s, want %s (err: %v)", f.Reason, tt.want, f.Err)
			}
			if items := res.Items(); items == nil || len(items) != 0 {
				t.Errorf("failed result must expose empty items, got %v", items)
			}
		})
	}
}

func TestOrchestrator_SizeClamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		requested int
		want      int
	}{
		{0, 10},
		{-3, 10},
		{25, 25},
		{5000, 100},
	}

	for _, tt := range tests {
		searcher := &memorySearcher{}
		o := newTestOrchestrator(t, searcher, &mockHistory{}, &mockCatalog{})
		o.Trending(context.Background(), tt.requested)

		req, ok := searcher.lastRequest()
		if !ok {
			t.Fatalf("requested %d: no search call", tt.requested)
		}
		if req.Size() != tt.want {
			t.Errorf("requested %d: size = %d, want %d", tt.requested, req.Size(), tt.want)
		}
	}
}

func TestOrchestrator_LogsFailureContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := DefaultConfig()
	o, err := NewOrchestrator(cfg, &memorySearcher{err: errors.New("cluster red")}, &mockHistory{}, &mockCatalog{}, logging.NewTestLogger(&buf))
	if err != nil {
		t.Fatalf("NewOrchestrator() error = %v", err)
	}

	ctx := logging.ContextWithRequestID(context.Background(), "req-77")
	o.Similar(ctx, "m9", 3)

	out := buf.String()
	for _, want := range []string{`"strategy":"similar"`, `"movie_id":"m9"`, `"reason":"search"`, `"request_id":"req-77"`, "cluster red"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in log output: %s", want, out)
		}
	}
}
