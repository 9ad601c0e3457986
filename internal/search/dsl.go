// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package search

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/recommend/query"
)

// ErrUnsupportedConstraint is returned for a constraint kind the DSL
// translation does not know.
var ErrUnsupportedConstraint = errors.New("unsupported constraint")

// EncodeRequest renders req as an Elasticsearch _search body.
func EncodeRequest(req query.Request) ([]byte, error) {
	body, err := buildBody(req)
	if err != nil {
		return nil, err
	}
	return json.Marshal(body)
}

func buildBody(req query.Request) (map[string]any, error) {
	q, err := buildQuery(req)
	if err != nil {
		return nil, err
	}
	body := map[string]any{
		"size":  req.Size(),
		"query": q,
	}
	if keys := req.Sort(); len(keys) > 0 {
		sorts := make([]map[string]any, 0, len(keys))
		for _, k := range keys {
			sorts = append(sorts, map[string]any{
				k.Field: map[string]any{"order": string(k.Order)},
			})
		}
		body["sort"] = sorts
	}
	return body, nil
}

func buildQuery(req query.Request) (map[string]any, error) {
	should := req.Should()
	must := req.Must()
	mustNot := req.MustNot()
	mlt, similar := req.Similar()

	if similar && len(should) == 0 && len(must) == 0 && len(mustNot) == 0 {
		return moreLikeThisClause(mlt), nil
	}

	b := map[string]any{}
	if len(should) > 0 {
		clauses := make([]map[string]any, 0, len(should))
		for _, s := range should {
			clauses = append(clauses, map[string]any{
				"match": map[string]any{
					s.Field: map[string]any{"query": s.Value, "boost": s.Weight},
				},
			})
		}
		b["should"] = clauses
	}

	mustClauses, err := constraintClauses(must)
	if err != nil {
		return nil, err
	}
	if similar {
		mustClauses = append(mustClauses, moreLikeThisClause(mlt))
	}
	if len(mustClauses) > 0 {
		b["must"] = mustClauses
	}

	notClauses, err := constraintClauses(mustNot)
	if err != nil {
		return nil, err
	}
	if len(notClauses) > 0 {
		b["must_not"] = notClauses
	}

	if len(b) == 0 {
		return map[string]any{"match_all": map[string]any{}}, nil
	}
	return map[string]any{"bool": b}, nil
}

func constraintClauses(cs []query.Constraint) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(cs))
	for _, c := range cs {
		clause, err := constraintClause(c)
		if err != nil {
			return nil, err
		}
		out = append(out, clause)
	}
	return out, nil
}

func constraintClause(c query.Constraint) (map[string]any, error) {
	switch c.Kind {
	case query.KindAtLeast:
		return map[string]any{
			"range": map[string]any{c.Field: map[string]any{"gte": c.Min}},
		}, nil
	case query.KindWithinDays:
		return map[string]any{
			"range": map[string]any{c.Field: map[string]any{
				"gte":    c.Since(),
				"format": query.DateFormat,
			}},
		}, nil
	case query.KindMatch:
		return map[string]any{
			"match": map[string]any{c.Field: map[string]any{"query": c.Value}},
		}, nil
	case query.KindIDs:
		return map[string]any{
			"ids": map[string]any{"values": c.IDs},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedConstraint, c.Kind)
	}
}

func moreLikeThisClause(m query.MoreLikeThis) map[string]any {
	return map[string]any{
		"more_like_this": map[string]any{
			"fields":          m.Fields,
			"like":            []map[string]any{{"_index": m.Index, "_id": m.ID}},
			"min_term_freq":   m.MinTermFreq,
			"max_query_terms": m.MaxQueryTerms,
		},
	}
}

// historyBody is the point-in-time _search body for one page of a user's
// interactions. after is the sort array of the previous page's last hit and
// is omitted for the first page. _shard_doc breaks ties between records
// watched at the same instant.
func historyBody(field string, userID int64, sortField string, size int, pitID string, after json.RawMessage) ([]byte, error) {
	body := map[string]any{
		"size":  size,
		"query": map[string]any{"term": map[string]any{field: userID}},
		"pit":   map[string]any{"id": pitID, "keep_alive": historyKeepAlive},
		"sort": []map[string]any{
			{sortField: map[string]any{"order": "desc"}},
			{"_shard_doc": map[string]any{"order": "asc"}},
		},
	}
	if len(after) > 0 {
		body["search_after"] = after
	}
	return json.Marshal(body)
}
