// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package query

import (
	"fmt"
	"slices"

	"github.com/tomtom215/marquee/internal/models"
)

// DateFormat is the date format attached to relative date ranges.
const DateFormat = "strict_date_optional_time"

// ConstraintKind identifies how a Constraint filters documents.
type ConstraintKind string

const (
	// KindAtLeast keeps documents whose numeric Field is >= Min.
	KindAtLeast ConstraintKind = "at_least"
	// KindWithinDays keeps documents whose date Field is within the trailing Days.
	KindWithinDays ConstraintKind = "within_days"
	// KindMatch keeps documents whose Field contains Value.
	KindMatch ConstraintKind = "match"
	// KindIDs keeps documents whose id is one of IDs. Used as an exclusion.
	KindIDs ConstraintKind = "ids"
)

// Constraint is a single filter fragment. Build it with the functions below
// rather than by hand.
//
// Only the fields relevant to Kind are set. A Searcher that meets a Kind it
// cannot translate must fail the request rather than drop the filter.
type Constraint struct {
	Kind  ConstraintKind
	Field string
	Min   float64
	Days  int
	Value string
	IDs   []string
}

// RatingAtLeast keeps movies rated threshold or higher.
func RatingAtLeast(threshold float64) Constraint {
	return Constraint{Kind: KindAtLeast, Field: models.FieldRating, Min: threshold}
}

// ReleasedWithin keeps movies released in the trailing window of days,
// measured from the moment the engine evaluates the query.
func ReleasedWithin(days int) Constraint {
	return Constraint{Kind: KindWithinDays, Field: models.FieldReleaseDate, Days: days}
}

// TagEquals keeps movies whose field contains value.
func TagEquals(field, value string) Constraint {
	return Constraint{Kind: KindMatch, Field: field, Value: value}
}

// ExcludeIDs returns the exclusion fragment for ids, or nil when ids is
// empty so that no exclusion clause is emitted at all.
func ExcludeIDs(ids []string) []Constraint {
	if len(ids) == 0 {
		return nil
	}
	return []Constraint{{Kind: KindIDs, Field: models.FieldID, IDs: slices.Clone(ids)}}
}

// Since renders a KindWithinDays window as engine date math ("now-30d").
func (c Constraint) Since() string {
	return fmt.Sprintf("now-%dd", c.Days)
}
