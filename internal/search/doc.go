// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package search adapts Elasticsearch to the collaborator interfaces of
// internal/recommend.
//
// One Client serves three roles:
//
//   - recommend.Searcher: translates a query.Request to the Elasticsearch
//     query DSL (dsl.go) and decodes ranked hits.
//   - recommend.Catalog: GET /{movies}/_doc/{id}; a 404 is "not found", not
//     an error. Bulk resolution (recommend.BatchCatalog) uses _mget in
//     chunks of mgetChunkSize ids.
//   - recommend.HistoryStore: term query on userId against the
//     user_preferences index, newest watch first.
//
// Every call goes through a circuit breaker (sony/gobreaker). While the
// breaker is open calls fail immediately with ErrBreakerOpen, which the
// orchestrator treats like any other search failure. Client-side mistakes
// (HTTP 400) and caller cancellation do not count against the breaker.
//
// Documents are decoded with goccy/go-json. Date fields accept RFC 3339,
// plain dates and epoch milliseconds, since indices populated by other
// writers use all three.
package search
