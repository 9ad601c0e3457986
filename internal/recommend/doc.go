// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend turns a user's viewing history and a set of business
// rules into ranked movie lists.
//
// # Architecture
//
// The package is a stateless, per-request layer over three collaborators,
// each reached through a narrow interface declared in types.go:
//
//   - Searcher executes a query.Request and returns ordered hits.
//   - HistoryStore returns a user's interaction records.
//   - Catalog resolves one movie by id.
//
// Four strategies build requests:
//
//   - Personalized: one boosted genre clause per category the user has
//     rated, weight = mean rating; rating >= 4.0; watched movies excluded;
//     sorted by rating then view count.
//   - Similar: more-like-this over title, description, genres, actors and
//     directors of a reference movie; relevance order.
//   - Trending: released in the last 30 days; sorted by view count, rating,
//     then release date.
//   - Seasonal: tagged with the season label; rating >= 4.0; sorted by rating.
//
// # Failure policy
//
// Orchestrator methods never return an error. Any collaborator fault,
// timeout or malformed request is logged with the strategy and subject id,
// counted in metrics, and turned into an empty (non-nil) slice. Callers that
// need the reason use Orchestrator.Recommend, which returns a Result.
//
// # Usage
//
//	orch, err := recommend.NewOrchestrator(cfg, searcher, history, catalog, logger)
//	movies := orch.Personalized(ctx, userID, 10)
//
// # Thread Safety
//
// Orchestrator holds no mutable state after construction and is safe for
// concurrent use. The only fan-out inside a request is per-id catalog
// resolution in PreferenceAggregator, bounded by Config.LookupConcurrency.
// A BatchCatalog replaces the fan-out with a single call.
package recommend
