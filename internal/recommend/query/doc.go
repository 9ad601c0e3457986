// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package query describes ranked-retrieval requests independently of the
// search engine that executes them.
//
// A Request is an immutable value. Every builder method has a value receiver
// and returns a new Request whose slices are freshly allocated, so a partly
// built request can be shared and extended by several strategies without
// interference:
//
//	base := query.New("movies").WithMust(query.RatingAtLeast(4.0))
//	a := base.WithSize(10)
//	b := base.SortBy(query.Desc(models.FieldRating)).WithSize(5)
//
// Constraint values are produced by the ConstraintBuilder functions in
// constraints.go. The Elasticsearch translation lives in internal/search;
// this package only knows field names and semantics. Package recommendtest
// evaluates the same semantics in memory for search fakes.
package query
