// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package query

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidRequest is returned by Validate.
var ErrInvalidRequest = errors.New("invalid retrieval request")

// Order is a sort direction.
type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// SortKey orders results by Field. Keys are applied in sequence, each
// breaking ties left by the previous one.
type SortKey struct {
	Field string
	Order Order
}

// Desc is shorthand for a descending SortKey.
func Desc(field string) SortKey { return SortKey{Field: field, Order: Descending} }

// Asc is shorthand for an ascending SortKey.
func Asc(field string) SortKey { return SortKey{Field: field, Order: Ascending} }

// Boost is an optional match clause: documents whose Field matches Value
// gain Weight in relevance scoring but are not required to match.
type Boost struct {
	Field  string
	Value  string
	Weight float64
}

// MoreLikeThis asks the engine to extract significant terms from a reference
// document and find documents sharing them.
type MoreLikeThis struct {
	Fields        []string
	Index         string
	ID            string
	MinTermFreq   int
	MaxQueryTerms int
}

// Request is an immutable ranked-retrieval request. The zero value is not
// useful; start from New.
//
// Every builder method returns a modified copy and leaves the receiver
// untouched, so a partially built Request can be shared as a template.
// Slices are cloned on write for the same reason.
//
// A Request describes intent only. Filters in Must and MustNot restrict the
// result set without affecting scores; Should boosts raise the relevance of
// matching documents without excluding the rest. How those map onto a
// concrete engine is the business of the Searcher implementation.
type Request struct {
	index   string
	should  []Boost
	must    []Constraint
	mustNot []Constraint
	similar *MoreLikeThis
	sort    []SortKey
	size    int
}

// New starts a request against index.
func New(index string) Request {
	return Request{index: index}
}

// WithShould appends optional weighted clauses.
func (r Request) WithShould(b ...Boost) Request {
	r.should = appendClone(r.should, b)
	return r
}

// WithMust appends mandatory constraints.
func (r Request) WithMust(c ...Constraint) Request {
	r.must = appendClone(r.must, c)
	return r
}

// WithMustNot appends exclusion constraints. Passing nothing leaves the
// request unchanged, so an empty ExcludeIDs result adds no clause.
func (r Request) WithMustNot(c ...Constraint) Request {
	if len(c) == 0 {
		return r
	}
	r.mustNot = appendClone(r.mustNot, c)
	return r
}

// WithSimilar sets the more-like-this clause.
func (r Request) WithSimilar(m MoreLikeThis) Request {
	m.Fields = slices.Clone(m.Fields)
	r.similar = &m
	return r
}

// SortBy appends sort keys.
func (r Request) SortBy(keys ...SortKey) Request {
	r.sort = appendClone(r.sort, keys)
	return r
}

// WithSize sets the result cap.
func (r Request) WithSize(n int) Request {
	r.size = n
	return r
}

// Index returns the target index.
func (r Request) Index() string { return r.index }

// Size returns the result cap.
func (r Request) Size() int { return r.size }

// Should returns a copy of the optional clauses.
func (r Request) Should() []Boost { return slices.Clone(r.should) }

// Must returns a copy of the mandatory constraints.
func (r Request) Must() []Constraint { return slices.Clone(r.must) }

// MustNot returns a copy of the exclusion constraints.
func (r Request) MustNot() []Constraint { return slices.Clone(r.mustNot) }

// Sort returns a copy of the sort keys.
func (r Request) Sort() []SortKey { return slices.Clone(r.sort) }

// Similar returns the more-like-this clause, if any.
func (r Request) Similar() (MoreLikeThis, bool) {
	if r.similar == nil {
		return MoreLikeThis{}, false
	}
	m := *r.similar
	m.Fields = slices.Clone(m.Fields)
	return m, true
}

// Validate checks the request is executable.
func (r Request) Validate() error {
	if r.index == "" {
		return fmt.Errorf("%w: index is required", ErrInvalidRequest)
	}
	if r.size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidRequest, r.size)
	}
	if r.similar != nil && r.similar.ID == "" {
		return fmt.Errorf("%w: similarity reference id is required", ErrInvalidRequest)
	}
	for _, s := range r.sort {
		if s.Order != Ascending && s.Order != Descending {
			return fmt.Errorf("%w: bad sort order %q on %s", ErrInvalidRequest, s.Order, s.Field)
		}
	}
	return nil
}

// appendClone never writes into dst's backing array.
func appendClone[T any](dst, src []T) []T {
	out := make([]T, 0, len(dst)+len(src))
	out = append(out, dst...)
	return append(out, src...)
}
