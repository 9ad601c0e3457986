// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package testinfra provides container-backed infrastructure for integration tests.
//
// It uses testcontainers-go to run a single-node Elasticsearch cluster and
// to seed the movies and user_preferences indices with known documents, so
// the search adapter is exercised against the real query DSL rather than a
// recorded response.
//
// # Elasticsearch Container
//
//	func TestSearchIntegration(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//
//	    es, err := testinfra.NewElasticsearchContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, es)
//
//	    if err := es.SeedMovies(ctx, "movies", movies); err != nil {
//	        t.Fatal(err)
//	    }
//	}
//
// # Build Tag
//
// Everything in this package is compiled only with -tags integration. The
// tests need Docker and are skipped when the daemon is unavailable. The
// first run downloads the Elasticsearch image.
package testinfra
