// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend/query"
	"github.com/tomtom215/marquee/internal/recommend/recommendtest"
)

// mockHistory implements HistoryStore for testing.
type mockHistory struct {
	records map[int64][]models.InteractionRecord
	err     error
	calls   atomic.Int32
}

func (m *mockHistory) InteractionsForUser(ctx context.Context, userID int64) ([]models.InteractionRecord, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	if recs, ok := m.records[userID]; ok {
		return recs, nil
	}
	return []models.InteractionRecord{}, nil
}

// mockCatalog implements Catalog for testing.
type mockCatalog struct {
	movies map[string]models.MovieItem
	err    error
	failOn string

	mu      sync.Mutex
	lookups map[string]int
}

func (m *mockCatalog) Movie(ctx context.Context, id string) (Maybe[models.MovieItem], error) {
	m.mu.Lock()
	if m.lookups == nil {
		m.lookups = make(map[string]int)
	}
	m.lookups[id]++
	m.mu.Unlock()

	if m.err != nil && (m.failOn == "" || m.failOn == id) {
		return None[models.MovieItem](), m.err
	}
	if mv, ok := m.movies[id]; ok {
		return Some(mv), nil
	}
	return None[models.MovieItem](), nil
}

// mockBatchCatalog implements BatchCatalog. Movie must not be reached when
// the batch path is taken, so it counts its calls.
type mockBatchCatalog struct {
	mockCatalog
	batches [][]string
}

func (m *mockBatchCatalog) Movies(ctx context.Context, ids []string) (map[string]models.MovieItem, error) {
	m.mu.Lock()
	m.batches = append(m.batches, append([]string(nil), ids...))
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]models.MovieItem, len(ids))
	for _, id := range ids {
		if mv, ok := m.movies[id]; ok {
			out[id] = mv
		}
	}
	return out, nil
}

// memorySearcher evaluates requests against an in-memory catalog with the
// same filter and sort semantics as the index.
type memorySearcher struct {
	movies []models.MovieItem
	now    time.Time
	err    error
	hits   []Hit // returned verbatim when set
	block  bool  // wait for ctx cancellation
	panics bool

	mu   sync.Mutex
	last *query.Request
}

func (s *memorySearcher) Search(ctx context.Context, req query.Request) ([]Hit, error) {
	s.mu.Lock()
	s.last = &req
	s.mu.Unlock()

	if s.panics {
		panic("searcher exploded")
	}
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.hits != nil {
		return s.hits, nil
	}

	now := s.now
	if now.IsZero() {
		now = time.Now()
	}
	candidates := recommendtest.Filter(req, s.movies, now)
	if mlt, ok := req.Similar(); ok {
		kept := candidates[:0]
		for _, m := range candidates {
			if m.ID != mlt.ID {
				kept = append(kept, m)
			}
		}
		candidates = kept
	}
	recommendtest.SortMovies(candidates, req.Sort())
	if len(candidates) > req.Size() {
		candidates = candidates[:req.Size()]
	}

	hits := make([]Hit, len(candidates))
	for i, m := range candidates {
		hits[i] = Hit{ID: m.ID, Score: 1, Source: Some(m)}
	}
	return hits, nil
}

func (s *memorySearcher) lastRequest() (query.Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return query.Request{}, false
	}
	return *s.last, true
}

func movieIDs(items []models.MovieItem) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func equalIDs(got []models.MovieItem, want ...string) bool {
	ids := movieIDs(got)
	if len(ids) != len(want) {
		return false
	}
	for i := range ids {
		if ids[i] != want[i] {
			return false
		}
	}
	return true
}
