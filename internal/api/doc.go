// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api exposes the recommendation service over HTTP using the chi router.

# Endpoints

	GET /recommendations/personalized/{userId}?size=N
	GET /recommendations/similar/{movieId}?size=N
	GET /health/live
	GET /health/ready
	GET /metrics

Every JSON response uses the models.APIResponse envelope:

	{
	    "status": "success",
	    "data": {"strategy": "personalized", "count": 2, "movies": [...]},
	    "metadata": {"timestamp": "...", "query_time_ms": 12}
	}

Recommendation failures inside the engine never surface as 5xx. The engine
logs them and returns an empty list, which is served as a normal success with
count 0. Only malformed input is rejected, with 400 and one of the codes
INVALID_USER_ID, INVALID_MOVIE_ID or VALIDATION_ERROR.

# Middleware

Global: request id, real IP, access log, panic recovery, CORS.
Recommendation routes add rate limiting (go-chi/httprate), security headers and
Prometheus request metrics labelled by route pattern.
*/
package api
