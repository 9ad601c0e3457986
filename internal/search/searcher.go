// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package search

import (
	"bytes"
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/recommend/query"
)

// Search implements recommend.Searcher.
func (c *Client) Search(ctx context.Context, req query.Request) ([]recommend.Hit, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	body, err := EncodeRequest(req)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", req.Index(), err)
	}

	data, found, err := c.call(ctx, "search", req.Index(), func() (*esapi.Response, error) {
		return c.es.Search(
			c.es.Search.WithContext(ctx),
			c.es.Search.WithIndex(req.Index()),
			c.es.Search.WithBody(bytes.NewReader(body)),
			c.es.Search.WithTrackTotalHits(false),
		)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("search %s: index not found", req.Index())
	}

	var sr searchResponse
	if err := json.Unmarshal(data, &sr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]recommend.Hit, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		hit := recommend.Hit{ID: h.ID, Source: recommend.None[models.MovieItem]()}
		if h.Score != nil {
			hit.Score = *h.Score
		}
		movie, ok, derr := decodeMovie(h.ID, h.Source)
		if derr != nil {
			c.logger.Warn().Err(derr).Str("id", h.ID).Msg("skipping undecodable hit")
		} else if ok {
			hit.Source = recommend.Some(movie)
		}
		hits = append(hits, hit)
	}
	return hits, nil
}
