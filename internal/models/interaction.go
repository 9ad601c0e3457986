// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "time"

// Field names of the user_preferences index.
const (
	FieldUserID    = "userId"
	FieldMovieID   = "movieId"
	FieldWatchedAt = "watchedAt"
)

// InteractionRecord is one user's rating of one watched movie.
//
// Records are written by the viewing application; Marquee only reads them.
// Rating uses the same 0.0 to 5.0 scale as MovieItem.Rating. WatchDuration is
// in minutes.
//
// Example document:
//
//	{
//	  "id": "p-9001",
//	  "userId": 7,
//	  "movieId": "m42",
//	  "rating": 5.0,
//	  "watchedAt": "2026-09-30T21:14:00Z",
//	  "watchDuration": 148.0,
//	  "completed": true
//	}
type InteractionRecord struct {
	ID            string    `json:"id"`
	UserID        int64     `json:"userId"`
	MovieID       string    `json:"movieId"`
	Rating        float64   `json:"rating"`
	WatchedAt     time.Time `json:"watchedAt"`
	WatchDuration float64   `json:"watchDuration"`
	Completed     bool      `json:"completed"`
}

// WatchedMovieIDs returns the distinct movie ids in records, in first-seen
// order. Returns nil for an empty history.
func WatchedMovieIDs(records []InteractionRecord) []string {
	if len(records) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(records))
	ids := make([]string, 0, len(records))
	for i := range records {
		id := records[i].MovieID
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
