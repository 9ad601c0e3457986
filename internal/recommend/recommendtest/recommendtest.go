// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommendtest evaluates query.Request values against in-memory
// movies, for fakes that stand in for the search engine in tests.
//
// The evaluation follows the engine where the recommendation strategies
// depend on it:
//   - Range constraints are inclusive, release windows count back from now.
//   - Match constraints use analyzed-text semantics: field and query are
//     split into lowercase alphanumeric tokens, and any shared token
//     matches ("sci-fi" matches the genre "Sci-Fi", "winter" matches
//     "Winter Holidays").
//   - Sorting is stable, so hits equal on every key keep relevance order.
//
// Should boosts and more-like-this scoring are not modelled; fakes decide
// relevance order themselves.
package recommendtest

import (
	"cmp"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend/query"
)

// Filter returns the items satisfying every must constraint of req and none
// of its must-not constraints, as of now.
func Filter(req query.Request, items []models.MovieItem, now time.Time) []models.MovieItem {
	must, mustNot := req.Must(), req.MustNot()
	out := make([]models.MovieItem, 0, len(items))
	for i := range items {
		if admits(&items[i], must, mustNot, now) {
			out = append(out, items[i])
		}
	}
	return out
}

func admits(m *models.MovieItem, must, mustNot []query.Constraint, now time.Time) bool {
	for _, c := range must {
		if !Matches(c, m, now) {
			return false
		}
	}
	for _, c := range mustNot {
		if Matches(c, m, now) {
			return false
		}
	}
	return true
}

// Matches evaluates one constraint against m as of now. Unknown kinds and
// fields never match.
func Matches(c query.Constraint, m *models.MovieItem, now time.Time) bool {
	switch c.Kind {
	case query.KindAtLeast:
		v, ok := numericField(m, c.Field)
		return ok && v >= c.Min
	case query.KindWithinDays:
		if c.Field != models.FieldReleaseDate {
			return false
		}
		return !m.ReleaseDate.Before(now.AddDate(0, 0, -c.Days))
	case query.KindMatch:
		return sharesToken(textField(m, c.Field), c.Value)
	case query.KindIDs:
		return slices.Contains(c.IDs, m.ID)
	default:
		return false
	}
}

// SortMovies orders items in place by keys.
func SortMovies(items []models.MovieItem, keys []query.SortKey) {
	if len(keys) == 0 {
		return
	}
	slices.SortStableFunc(items, func(a, b models.MovieItem) int {
		for _, k := range keys {
			c := compareField(&a, &b, k.Field)
			if k.Order == query.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

func numericField(m *models.MovieItem, field string) (float64, bool) {
	switch field {
	case models.FieldRating:
		return m.Rating, true
	case models.FieldViewCount:
		return float64(m.ViewCount), true
	default:
		return 0, false
	}
}

func textField(m *models.MovieItem, field string) []string {
	switch field {
	case models.FieldTitle:
		return []string{m.Title}
	case models.FieldDescription:
		return []string{m.Description}
	case models.FieldGenres:
		return m.Genres
	case models.FieldActors:
		return m.Actors
	case models.FieldDirectors:
		return m.Directors
	case models.FieldSeasonTags:
		return m.SeasonTags
	default:
		return nil
	}
}

// tokens approximates the standard analyzer.
func tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func sharesToken(values []string, q string) bool {
	want := tokens(q)
	if len(want) == 0 {
		return false
	}
	for _, v := range values {
		for _, tok := range tokens(v) {
			if slices.Contains(want, tok) {
				return true
			}
		}
	}
	return false
}

func compareField(a, b *models.MovieItem, field string) int {
	switch field {
	case models.FieldRating:
		return cmp.Compare(a.Rating, b.Rating)
	case models.FieldViewCount:
		return cmp.Compare(a.ViewCount, b.ViewCount)
	case models.FieldReleaseDate:
		return a.ReleaseDate.Compare(b.ReleaseDate)
	case models.FieldTitle:
		return cmp.Compare(a.Title, b.Title)
	case models.FieldID:
		return cmp.Compare(a.ID, b.ID)
	default:
		return 0
	}
}
