// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package search

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
)

// historyKeepAlive is how long the point in time survives between pages.
const historyKeepAlive = "1m"

// InteractionsForUser implements recommend.HistoryStore.
//
// Every record of the user is returned, newest watch first. The history is
// read in pages of Options.HistoryPageSize under a point in time, so the
// result is a consistent snapshot even while new interactions are indexed,
// and is not limited by the index's max_result_window. Pages are chained
// with search_after on (watchedAt desc, _shard_doc asc).
func (c *Client) InteractionsForUser(ctx context.Context, userID int64) ([]models.InteractionRecord, error) {
	index := c.opts.PreferencesIndex

	pitID, err := c.openPointInTime(ctx, index)
	if err != nil {
		return nil, err
	}
	defer func() { c.closePointInTime(ctx, pitID) }()

	records := make([]models.InteractionRecord, 0)
	var after json.RawMessage
	pages := 0
	for {
		page, err := c.historyPage(ctx, index, userID, pitID, after)
		if err != nil {
			return nil, err
		}
		pages++
		if page.PitID != "" {
			pitID = page.PitID
		}

		hits := page.Hits.Hits
		for _, h := range hits {
			rec, ok, derr := decodeInteraction(h.ID, h.Source)
			if derr != nil {
				c.logger.Warn().Err(derr).Str("id", h.ID).Int64("user_id", userID).Msg("skipping undecodable interaction")
				continue
			}
			if ok {
				records = append(records, rec)
			}
		}

		if len(hits) < c.opts.HistoryPageSize {
			break
		}
		after = hits[len(hits)-1].Sort
		if len(after) == 0 {
			return nil, fmt.Errorf("history %s: page %d has no sort values to continue from", index, pages)
		}
	}

	c.logger.Debug().
		Int64("user_id", userID).
		Int("records", len(records)).
		Int("pages", pages).
		Msg("history loaded")
	return records, nil
}

func (c *Client) historyPage(ctx context.Context, index string, userID int64, pitID string, after json.RawMessage) (*historyResponse, error) {
	body, err := historyBody(models.FieldUserID, userID, models.FieldWatchedAt, c.opts.HistoryPageSize, pitID, after)
	if err != nil {
		return nil, fmt.Errorf("encode history request: %w", err)
	}

	// A point-in-time search names no index in the path.
	data, found, err := c.call(ctx, "history", index, func() (*esapi.Response, error) {
		return c.es.Search(
			c.es.Search.WithContext(ctx),
			c.es.Search.WithBody(bytes.NewReader(body)),
			c.es.Search.WithTrackTotalHits(false),
		)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("history %s: point in time expired or index not found", index)
	}

	var hr historyResponse
	if err := json.Unmarshal(data, &hr); err != nil {
		return nil, fmt.Errorf("decode history response: %w", err)
	}
	return &hr, nil
}

func (c *Client) openPointInTime(ctx context.Context, index string) (string, error) {
	data, found, err := c.call(ctx, "open_pit", index, func() (*esapi.Response, error) {
		return c.es.OpenPointInTime(
			[]string{index},
			historyKeepAlive,
			c.es.OpenPointInTime.WithContext(ctx),
		)
	})
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("history %s: index not found", index)
	}

	var pr pitResponse
	if err := json.Unmarshal(data, &pr); err != nil {
		return "", fmt.Errorf("decode point in time: %w", err)
	}
	if pr.ID == "" {
		return "", fmt.Errorf("history %s: empty point in time id", index)
	}
	return pr.ID, nil
}

// closePointInTime releases the snapshot. Failure only delays cleanup until
// the keep-alive lapses, so it is logged rather than returned. It runs even
// when the request context is already cancelled.
func (c *Client) closePointInTime(ctx context.Context, pitID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	body, err := json.Marshal(map[string]string{"id": pitID})
	if err != nil {
		return
	}
	res, err := c.es.ClosePointInTime(
		c.es.ClosePointInTime.WithContext(ctx),
		c.es.ClosePointInTime.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		c.logger.Debug().Err(err).Msg("close point in time failed")
		return
	}
	defer drain(res)
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		c.logger.Debug().Int("status", res.StatusCode).Msg("close point in time rejected")
	}
}
