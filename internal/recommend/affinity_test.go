// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/models"
)

func newTestAggregator(h *mockHistory, c *mockCatalog) *PreferenceAggregator {
	return NewPreferenceAggregator(h, c, 4, zerolog.Nop())
}

func TestComputeAffinities_MeanPerGenre(t *testing.T) {
	t.Parallel()

	history := &mockHistory{records: map[int64][]models.InteractionRecord{
		7: {
			{MovieID: "A", Rating: 5.0},
			{MovieID: "B", Rating: 3.0},
		},
	}}
	catalog := &mockCatalog{movies: map[string]models.MovieItem{
		"A": {ID: "A", Genres: []string{"Drama"}},
		"B": {ID: "B", Genres: []string{"Drama", "Comedy"}},
	}}

	aff, err := newTestAggregator(history, catalog).ComputeAffinities(context.Background(), 7)
	if err != nil {
		t.Fatalf("ComputeAffinities() error = %v", err)
	}

	if len(aff) != 2 {
		t.Fatalf("expected 2 genres, got %v", aff)
	}
	if math.Abs(aff["Drama"]-4.0) > 1e-9 {
		t.Errorf("Drama = %v, want 4.0", aff["Drama"])
	}
	if math.Abs(aff["Comedy"]-3.0) > 1e-9 {
		t.Errorf("Comedy = %v, want 3.0", aff["Comedy"])
	}
}

func TestComputeAffinities_EmptyHistory(t *testing.T) {
	t.Parallel()

	catalog := &mockCatalog{}
	aff, err := newTestAggregator(&mockHistory{}, catalog).ComputeAffinities(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aff == nil || len(aff) != 0 {
		t.Errorf("expected empty non-nil map, got %v", aff)
	}
	if len(catalog.lookups) != 0 {
		t.Errorf("expected no catalog lookups, got %v", catalog.lookups)
	}
}

func TestComputeAffinities_MissingMovieSkipped(t *testing.T) {
	t.Parallel()

	history := &mockHistory{records: map[int64][]models.InteractionRecord{
		3: {
			{MovieID: "gone", Rating: 1.0},
			{MovieID: "A", Rating: 4.0},
		},
	}}
	catalog := &mockCatalog{movies: map[string]models.MovieItem{
		"A": {ID: "A", Genres: []string{"Horror"}},
	}}

	aff, err := newTestAggregator(history, catalog).ComputeAffinities(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(aff) != 1 || aff["Horror"] != 4.0 {
		t.Errorf("expected only Horror=4.0, got %v", aff)
	}
}

func TestComputeAffinities_RepeatWatchCountsTwice(t *testing.T) {
	t.Parallel()

	history := &mockHistory{records: map[int64][]models.InteractionRecord{
		5: {
			{MovieID: "A", Rating: 5.0},
			{MovieID: "A", Rating: 2.0},
			{MovieID: "B", Rating: 2.0},
		},
	}}
	catalog := &mockCatalog{movies: map[string]models.MovieItem{
		"A": {ID: "A", Genres: []string{"Action"}},
		"B": {ID: "B", Genres: []string{"Action"}},
	}}

	aff, err := newTestAggregator(history, catalog).ComputeAffinities(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aff["Action"] != 3.0 {
		t.Errorf("Action = %v, want 3.0", aff["Action"])
	}
	if catalog.lookups["A"] != 1 {
		t.Errorf("expected one lookup for A, got %d", catalog.lookups["A"])
	}
}

func TestComputeAffinities_Errors(t *testing.T) {
	t.Parallel()

	history := &mockHistory{records: map[int64][]models.InteractionRecord{
		1: {{MovieID: "A", Rating: 5}},
	}}

	tests := []struct {
		name    string
		history *mockHistory
		catalog *mockCatalog
		want    error
	}{
		{
			name:    "history failure",
			history: &mockHistory{err: errors.New("connection refused")},
			catalog: &mockCatalog{},
			want:    ErrHistoryUnavailable,
		},
		{
			name:    "catalog failure",
			history: history,
			catalog: &mockCatalog{err: errors.New("503")},
			want:    ErrCatalogUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := newTestAggregator(tt.history, tt.catalog).ComputeAffinities(context.Background(), 1)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAggregate_ManyRecordsConcurrent(t *testing.T) {
	t.Parallel()

	movies := make(map[string]models.MovieItem)
	records := make([]models.InteractionRecord, 0, 200)
	for i := 0; i < 200; i++ {
		id := string(rune('a'+i%26)) + string(rune('A'+i/26))
		movies[id] = models.MovieItem{ID: id, Genres: []string{"Drama"}}
		records = append(records, models.InteractionRecord{MovieID: id, Rating: float64(i%5 + 1)})
	}

	agg := NewPreferenceAggregator(&mockHistory{}, &mockCatalog{movies: movies}, 3, zerolog.Nop())
	aff, err := agg.Aggregate(context.Background(), records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aff["Drama"] != 3.0 {
		t.Errorf("Drama = %v, want 3.0", aff["Drama"])
	}
}

func TestAggregate_BatchCatalog(t *testing.T) {
	t.Parallel()

	records := []models.InteractionRecord{
		{MovieID: "A", Rating: 5},
		{MovieID: "B", Rating: 2},
		{MovieID: "A", Rating: 3},
		{MovieID: "gone", Rating: 1},
	}
	catalog := &mockBatchCatalog{mockCatalog: mockCatalog{movies: map[string]models.MovieItem{
		"A": {ID: "A", Genres: []string{"Drama"}},
		"B": {ID: "B", Genres: []string{"Comedy"}},
	}}}

	agg := NewPreferenceAggregator(&mockHistory{}, catalog, 4, zerolog.Nop())
	aff, err := agg.Aggregate(context.Background(), records)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	if len(catalog.batches) != 1 {
		t.Fatalf("expected one batch lookup, got %d", len(catalog.batches))
	}
	if got := catalog.batches[0]; len(got) != 3 {
		t.Errorf("batch ids = %v, want the 3 distinct ids", got)
	}
	if len(catalog.lookups) != 0 {
		t.Errorf("per-id lookups = %v, want none", catalog.lookups)
	}
	if aff["Drama"] != 4.0 || aff["Comedy"] != 2.0 || len(aff) != 2 {
		t.Errorf("affinities = %v", aff)
	}
}

func TestAggregate_BatchCatalogError(t *testing.T) {
	t.Parallel()

	catalog := &mockBatchCatalog{mockCatalog: mockCatalog{err: errors.New("503")}}
	agg := NewPreferenceAggregator(&mockHistory{}, catalog, 4, zerolog.Nop())

	_, err := agg.Aggregate(context.Background(), []models.InteractionRecord{{MovieID: "A", Rating: 4}})
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Errorf("expected ErrCatalogUnavailable, got %v", err)
	}
}
