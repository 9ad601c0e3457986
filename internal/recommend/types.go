// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend/query"
)

// CategoryAffinity maps a genre to the mean rating the user gave movies of
// that genre. A genre is present only if at least one rated movie carries it.
type CategoryAffinity map[string]float64

// Maybe holds a value that may be absent.
type Maybe[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Maybe[T] { return Maybe[T]{value: v, ok: true} }

// None is the absent value.
func None[T any]() Maybe[T] { return Maybe[T]{} }

// Get returns the value and whether it is present.
func (m Maybe[T]) Get() (T, bool) { return m.value, m.ok }

// IsSome reports whether a value is present.
func (m Maybe[T]) IsSome() bool { return m.ok }

// Hit is one search result. Source is None when the engine returned a hit
// without a usable document body.
type Hit struct {
	ID     string
	Score  float64
	Source Maybe[models.MovieItem]
}

// Searcher executes retrieval requests against the movies index.
//
// Implementations translate a query.Request into the engine's query
// language. The search package provides the Elasticsearch implementation;
// tests use an in-memory fake built on package recommendtest.
type Searcher interface {
	// Search returns hits in engine order: by the request's sort keys when
	// it has any, otherwise by descending relevance. At most req.Size() hits
	// are returned. No matches is an empty slice and a nil error.
	Search(ctx context.Context, req query.Request) ([]Hit, error)
}

// HistoryStore reads interaction records.
//
// Two backends exist: the Elasticsearch user_preferences index and the
// embedded DuckDB store. Both return the complete history of a user, so an
// affinity is never computed from a truncated prefix.
type HistoryStore interface {
	// InteractionsForUser returns every record of userID, most recent watch
	// first. A user with no history yields an empty slice and a nil error.
	InteractionsForUser(ctx context.Context, userID int64) ([]models.InteractionRecord, error)
}

// Catalog resolves movies by id.
type Catalog interface {
	// Movie returns None, not an error, when id does not exist.
	Movie(ctx context.Context, id string) (Maybe[models.MovieItem], error)
}

// BatchCatalog is a Catalog that can resolve many movies in one round trip.
// PreferenceAggregator prefers it over per-id lookups when available.
type BatchCatalog interface {
	Catalog
	// Movies returns the movies that exist, keyed by id. Unknown ids are
	// absent from the map rather than reported as errors.
	Movies(ctx context.Context, ids []string) (map[string]models.MovieItem, error)
}
