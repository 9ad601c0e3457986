// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package testinfra

import (
	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
)

type fieldMapping map[string]any

// MoviesMapping returns the create-index body for the movies index. genres
// and seasonTags stay analysed so match clauses behave as in production,
// releaseDate is a date for range filters, and movieVector is a dense_vector
// sized by models.MovieVectorDims.
func MoviesMapping() ([]byte, error) {
	return indexBody(map[string]fieldMapping{
		models.FieldID:          {"type": "keyword"},
		models.FieldTitle:       {"type": "text"},
		models.FieldGenres:      {"type": "text", "fields": map[string]any{"raw": fieldMapping{"type": "keyword"}}},
		models.FieldDescription: {"type": "text"},
		models.FieldReleaseDate: {"type": "date"},
		models.FieldActors:      {"type": "text"},
		models.FieldDirectors:   {"type": "text"},
		models.FieldRating:      {"type": "float"},
		models.FieldViewCount:   {"type": "long"},
		models.FieldSeasonTags:  {"type": "text"},
		models.FieldMovieVector: {"type": "dense_vector", "dims": models.MovieVectorDims},
	})
}

// PreferencesMapping returns the create-index body for user_preferences.
func PreferencesMapping() ([]byte, error) {
	return indexBody(map[string]fieldMapping{
		"id":            {"type": "keyword"},
		"userId":        {"type": "long"},
		"movieId":       {"type": "keyword"},
		"rating":        {"type": "float"},
		"watchedAt":     {"type": "date"},
		"watchDuration": {"type": "float"},
		"completed":     {"type": "boolean"},
	})
}

func indexBody(properties map[string]fieldMapping) ([]byte, error) {
	return json.Marshal(map[string]any{
		"mappings": map[string]any{"properties": properties},
	})
}
