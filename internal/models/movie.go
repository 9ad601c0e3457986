// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "time"

// MovieVectorDims is the dimension of MovieItem.MovieVector as mapped in the
// movies index.
const MovieVectorDims = 100

// Field names of the movies index. Query builders refer to fields through
// these constants so a typo cannot silently match nothing.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldGenres      = "genres"
	FieldDescription = "description"
	FieldReleaseDate = "releaseDate"
	FieldActors      = "actors"
	FieldDirectors   = "directors"
	FieldRating      = "rating"
	FieldViewCount   = "viewCount"
	FieldMovieVector = "movieVector"
	FieldSeasonTags  = "seasonTags"
)

// MovieItem is one document of the movies index.
//
// Rating is on a 0.0 to 5.0 scale. ViewCount only ever grows. MovieVector is
// reserved for embedding similarity and is carried through unchanged; no
// ranking path reads it. SeasonTags holds the labels ("winter", "halloween")
// the seasonal strategy matches against; documents without it never appear
// in seasonal results.
//
// Example document:
//
//	{
//	  "id": "m42",
//	  "title": "Inception",
//	  "genres": ["Sci-Fi", "Thriller"],
//	  "releaseDate": "2010-07-16T00:00:00Z",
//	  "rating": 4.7,
//	  "viewCount": 120345
//	}
type MovieItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Genres      []string  `json:"genres"`
	Description string    `json:"description"`
	ReleaseDate time.Time `json:"releaseDate"`
	Actors      []string  `json:"actors"`
	Directors   []string  `json:"directors"`
	Rating      float64   `json:"rating"`
	ViewCount   int64     `json:"viewCount"`
	MovieVector []float32 `json:"movieVector,omitempty"`
	SeasonTags  []string  `json:"seasonTags,omitempty"`
}

// HasGenre reports whether genre is one of the movie's genres (exact match).
func (m *MovieItem) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if g == genre {
			return true
		}
	}
	return false
}
