// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend/query"
)

var (
	// ErrHistoryUnavailable wraps failures reading interaction history.
	ErrHistoryUnavailable = errors.New("interaction history unavailable")

	// ErrCatalogUnavailable wraps failures resolving movies (not a missing movie).
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// FailureReason tags why a recommendation call produced nothing.
type FailureReason string

const (
	ReasonHistory        FailureReason = "history"
	ReasonCatalog        FailureReason = "catalog"
	ReasonSearch         FailureReason = "search"
	ReasonTimeout        FailureReason = "timeout"
	ReasonInvalidRequest FailureReason = "invalid_request"
	ReasonInternal       FailureReason = "internal"
)

// Failure is the error side of a Result.
type Failure struct {
	Reason FailureReason
	Err    error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Reason, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Result is either an ordered list of movies or a Failure.
//
// The zero value is a successful, empty Result. Items never returns nil,
// which keeps the JSON encoding of an empty list as [] rather than null.
type Result struct {
	items   []models.MovieItem
	failure *Failure
}

// Success wraps items. A nil slice is stored as empty.
func Success(items []models.MovieItem) Result {
	if items == nil {
		items = []models.MovieItem{}
	}
	return Result{items: items}
}

// Failed builds a failed Result.
func Failed(reason FailureReason, err error) Result {
	return Result{failure: &Failure{Reason: reason, Err: err}}
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.failure == nil }

// Failure returns the failure, if any.
func (r Result) Failure() (*Failure, bool) {
	return r.failure, r.failure != nil
}

// Items returns the movies, or an empty non-nil slice for a failure.
func (r Result) Items() []models.MovieItem {
	if r.failure != nil || r.items == nil {
		return []models.MovieItem{}
	}
	return r.items
}

// classify maps an error chain to a FailureReason. Deadlines win over the
// collaborator that happened to be running when the deadline hit.
func classify(err error) FailureReason {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.Is(err, query.ErrInvalidRequest):
		return ReasonInvalidRequest
	case errors.Is(err, ErrHistoryUnavailable):
		return ReasonHistory
	case errors.Is(err, ErrCatalogUnavailable):
		return ReasonCatalog
	default:
		return ReasonSearch
	}
}
