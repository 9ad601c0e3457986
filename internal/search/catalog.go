// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package search

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
)

// Movie implements recommend.Catalog.
func (c *Client) Movie(ctx context.Context, id string) (recommend.Maybe[models.MovieItem], error) {
	none := recommend.None[models.MovieItem]()
	if id == "" {
		return none, nil
	}

	data, found, err := c.call(ctx, "get", c.opts.MoviesIndex, func() (*esapi.Response, error) {
		return c.es.Get(c.opts.MoviesIndex, id, c.es.Get.WithContext(ctx))
	})
	if err != nil {
		return none, err
	}
	if !found {
		return none, nil
	}

	var gr getResponse
	if err := json.Unmarshal(data, &gr); err != nil {
		return none, fmt.Errorf("decode movie %s: %w", id, err)
	}
	if !gr.Found {
		return none, nil
	}
	movie, ok, err := decodeMovie(gr.ID, gr.Source)
	if err != nil {
		return none, err
	}
	if !ok {
		return none, nil
	}
	return recommend.Some(movie), nil
}

// mgetChunkSize bounds the ids sent in one _mget request.
const mgetChunkSize = 500

// Movies implements recommend.BatchCatalog with _mget, splitting large id
// lists into several requests. A missing movies index resolves nothing.
func (c *Client) Movies(ctx context.Context, ids []string) (map[string]models.MovieItem, error) {
	ids = slices.DeleteFunc(slices.Clone(ids), func(id string) bool { return id == "" })
	out := make(map[string]models.MovieItem, len(ids))

	for chunk := range slices.Chunk(ids, mgetChunkSize) {
		body, err := json.Marshal(mgetRequest{IDs: chunk})
		if err != nil {
			return nil, fmt.Errorf("encode mget: %w", err)
		}
		data, found, err := c.call(ctx, "mget", c.opts.MoviesIndex, func() (*esapi.Response, error) {
			return c.es.Mget(bytes.NewReader(body),
				c.es.Mget.WithContext(ctx),
				c.es.Mget.WithIndex(c.opts.MoviesIndex),
			)
		})
		if err != nil {
			return nil, err
		}
		if !found {
			return out, nil
		}

		var mr mgetResponse
		if err := json.Unmarshal(data, &mr); err != nil {
			return nil, fmt.Errorf("decode mget: %w", err)
		}
		for _, doc := range mr.Docs {
			if !doc.Found {
				continue
			}
			movie, ok, err := decodeMovie(doc.ID, doc.Source)
			if err != nil {
				return nil, err
			}
			if ok {
				out[doc.ID] = movie
			}
		}
	}

	c.logger.Debug().Int("requested", len(ids)).Int("found", len(out)).Msg("movies resolved")
	return out, nil
}
