// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"maps"
	"slices"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend/query"
)

// similarFields are the text fields terms are extracted from for similarity.
var similarFields = []string{
	models.FieldTitle,
	models.FieldDescription,
	models.FieldGenres,
	models.FieldActors,
	models.FieldDirectors,
}

// Composer builds retrieval requests against one movies index.
//
// Its methods are pure: they turn strategy inputs into a query.Request and
// never touch the network. Keeping request construction here lets the
// strategy tests assert on the built request without a running engine.
type Composer struct {
	MoviesIndex string
}

// ComposePersonalized merges affinities and exclusions into one request.
// Genre clauses are emitted in lexical order so equal inputs produce equal
// requests.
func (c Composer) ComposePersonalized(affinities CategoryAffinity, excludedIDs []string, size int) query.Request {
	boosts := make([]query.Boost, 0, len(affinities))
	for _, genre := range slices.Sorted(maps.Keys(affinities)) {
		boosts = append(boosts, query.Boost{
			Field:  models.FieldGenres,
			Value:  genre,
			Weight: affinities[genre],
		})
	}

	return query.New(c.MoviesIndex).
		WithShould(boosts...).
		WithMust(query.RatingAtLeast(PersonalizedMinRating)).
		WithMustNot(query.ExcludeIDs(excludedIDs)...).
		SortBy(query.Desc(models.FieldRating), query.Desc(models.FieldViewCount)).
		WithSize(size)
}

// ComposeSimilar builds a more-like-this request seeded by referenceID. The
// term extraction parameters do not depend on size. No sort keys are set, so
// results come back in relevance order.
func (c Composer) ComposeSimilar(referenceID string, size int) query.Request {
	return query.New(c.MoviesIndex).
		WithSimilar(query.MoreLikeThis{
			Fields:        similarFields,
			Index:         c.MoviesIndex,
			ID:            referenceID,
			MinTermFreq:   SimilarMinTermFreq,
			MaxQueryTerms: SimilarMaxQueryTerms,
		}).
		WithSize(size)
}
