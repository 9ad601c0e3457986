// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP middleware shared by the API router.

All middleware uses the func(http.Handler) http.Handler shape so it can be
passed straight to chi's r.Use().

Key Components:

  - RequestID: accepts or generates X-Request-ID and seeds the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge per route pattern
  - AccessLog: one structured log line per request, warning above a latency threshold
  - SecurityHeaders: nosniff, frame denial, no-store and HSTS behind TLS

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.SecurityHeaders)

Metrics are labelled with the chi route pattern (for example
/recommendations/personalized/{userId}) rather than the raw path, which keeps
label cardinality bounded.
*/
package middleware
