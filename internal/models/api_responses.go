// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "time"

// APIResponse wraps every HTTP response body.
//
// Status is "success" or "error". On success Data holds the payload; on
// error Error is set and Data is null.
//
// Example:
//
//	{
//	  "status": "success",
//	  "data": {"strategy": "personalized", "count": 2, "movies": [...]},
//	  "metadata": {"timestamp": "2026-10-18T12:00:00Z", "query_time_ms": 12}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is the machine-readable error body.
//
// Codes used by Marquee:
//   - VALIDATION_ERROR: bad query parameter
//   - INVALID_USER_ID: userId is not a positive integer
//   - METHOD_NOT_ALLOWED
//   - NOT_FOUND
//   - RATE_LIMIT_EXCEEDED
//   - SERVICE_UNAVAILABLE: readiness check failed
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RecommendationList is the Data payload of the recommendation endpoints.
// Movies is never null; a degraded request yields an empty array.
type RecommendationList struct {
	Strategy string      `json:"strategy"`
	Count    int         `json:"count"`
	Movies   []MovieItem `json:"movies"`
}

// NewRecommendationList builds the payload, normalising a nil slice to empty.
func NewRecommendationList(strategy string, movies []MovieItem) RecommendationList {
	if movies == nil {
		movies = []MovieItem{}
	}
	return RecommendationList{Strategy: strategy, Count: len(movies), Movies: movies}
}

// HealthStatus is the Data payload of the health endpoints.
type HealthStatus struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
