// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend/query"
)

func TestTrending_Build(t *testing.T) {
	t.Parallel()

	req, err := Trending{MoviesIndex: "movies", Size: 20}.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	must := req.Must()
	if len(must) != 2 {
		t.Fatalf("expected 2 must clauses, got %+v", must)
	}
	if must[0].Kind != query.KindWithinDays || must[0].Field != models.FieldReleaseDate || must[0].Since() != "now-30d" {
		t.Errorf("unexpected window clause: %+v", must[0])
	}
	if must[1].Kind != query.KindAtLeast || must[1].Min != 0 {
		t.Errorf("unexpected rating clause: %+v", must[1])
	}

	sortKeys := req.Sort()
	want := []string{models.FieldViewCount, models.FieldRating, models.FieldReleaseDate}
	if len(sortKeys) != 3 {
		t.Fatalf("expected 3 sort keys, got %+v", sortKeys)
	}
	for i, f := range want {
		if sortKeys[i].Field != f || sortKeys[i].Order != query.Descending {
			t.Errorf("sort[%d] = %+v, want %s desc", i, sortKeys[i], f)
		}
	}
}

func TestSeasonal_Build(t *testing.T) {
	t.Parallel()

	req, err := Seasonal{MoviesIndex: "movies", Season: "winter", Size: 5}.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	must := req.Must()
	if len(must) != 2 {
		t.Fatalf("expected 2 must clauses, got %+v", must)
	}
	if must[0].Kind != query.KindMatch || must[0].Field != models.FieldSeasonTags || must[0].Value != "winter" {
		t.Errorf("unexpected tag clause: %+v", must[0])
	}
	if must[1].Min != 4.0 {
		t.Errorf("expected rating >= 4.0, got %+v", must[1])
	}
	sortKeys := req.Sort()
	if len(sortKeys) != 1 || sortKeys[0] != query.Desc(models.FieldRating) {
		t.Errorf("sort = %+v", sortKeys)
	}
}

func TestStrategies_RejectBlankInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    Strategy
	}{
		{"seasonal", Seasonal{MoviesIndex: "movies", Season: "  ", Size: 5}},
		{"similar", Similar{Composer: testComposer, MovieID: "", Size: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.s.Build(context.Background())
			if !errors.Is(err, query.ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestPersonalized_Build_ReadsHistoryOnce(t *testing.T) {
	t.Parallel()

	history := &mockHistory{records: map[int64][]models.InteractionRecord{
		9: {{MovieID: "A", Rating: 5}, {MovieID: "B", Rating: 3}},
	}}
	catalog := &mockCatalog{movies: map[string]models.MovieItem{
		"A": {ID: "A", Genres: []string{"Drama"}},
		"B": {ID: "B", Genres: []string{"Drama"}},
	}}
	s := Personalized{
		Aggregator: NewPreferenceAggregator(history, catalog, 2, zerolog.Nop()),
		Composer:   testComposer,
		UserID:     9,
		Size:       10,
	}

	req, err := s.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := history.calls.Load(); got != 1 {
		t.Errorf("expected one history read, got %d", got)
	}

	should := req.Should()
	if len(should) != 1 || should[0].Value != "Drama" || should[0].Weight != 4.0 {
		t.Errorf("unexpected boosts: %+v", should)
	}
	mustNot := req.MustNot()
	if len(mustNot) != 1 || len(mustNot[0].IDs) != 2 {
		t.Errorf("expected A and B excluded, got %+v", mustNot)
	}
}

func TestStrategyNames(t *testing.T) {
	t.Parallel()

	names := map[string]Strategy{
		StrategyPersonalized: Personalized{},
		StrategySimilar:      Similar{},
		StrategyTrending:     Trending{},
		StrategySeasonal:     Seasonal{},
	}
	for want, s := range names {
		if s.Name() != want {
			t.Errorf("Name() = %s, want %s", s.Name(), want)
		}
	}
}
