// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package search

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
)

// esDate decodes the date encodings found in the indices.
type esDate struct {
	time.Time
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (d *esDate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] != '"' {
		ms, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("parse epoch millis %s: %w", data, err)
		}
		d.Time = time.UnixMilli(ms).UTC()
		return nil
	}

	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("unquote date: %w", err)
	}
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, perr := time.Parse(layout, s); perr == nil {
			d.Time = t
			return nil
		}
	}
	if ms, perr := strconv.ParseInt(s, 10, 64); perr == nil {
		d.Time = time.UnixMilli(ms).UTC()
		return nil
	}
	return fmt.Errorf("unrecognised date %q", s)
}

type movieDoc struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Genres      []string  `json:"genres"`
	Description string    `json:"description"`
	ReleaseDate esDate    `json:"releaseDate"`
	Actors      []string  `json:"actors"`
	Directors   []string  `json:"directors"`
	Rating      float64   `json:"rating"`
	ViewCount   int64     `json:"viewCount"`
	MovieVector []float32 `json:"movieVector"`
	SeasonTags  []string  `json:"seasonTags"`
}

// decodeMovie turns a _source body into a MovieItem. ok is false for an
// absent or null source. The document id falls back to the hit's _id.
func decodeMovie(hitID string, source json.RawMessage) (models.MovieItem, bool, error) {
	if isNullSource(source) {
		return models.MovieItem{}, false, nil
	}
	var d movieDoc
	if err := json.Unmarshal(source, &d); err != nil {
		return models.MovieItem{}, false, fmt.Errorf("decode movie %s: %w", hitID, err)
	}
	id := d.ID
	if id == "" {
		id = hitID
	}
	return models.MovieItem{
		ID:          id,
		Title:       d.Title,
		Genres:      d.Genres,
		Description: d.Description,
		ReleaseDate: d.ReleaseDate.Time,
		Actors:      d.Actors,
		Directors:   d.Directors,
		Rating:      d.Rating,
		ViewCount:   d.ViewCount,
		MovieVector: d.MovieVector,
		SeasonTags:  d.SeasonTags,
	}, true, nil
}

type interactionDoc struct {
	ID            string  `json:"id"`
	UserID        int64   `json:"userId"`
	MovieID       string  `json:"movieId"`
	Rating        float64 `json:"rating"`
	WatchedAt     esDate  `json:"watchedAt"`
	WatchDuration float64 `json:"watchDuration"`
	Completed     bool    `json:"completed"`
}

func decodeInteraction(hitID string, source json.RawMessage) (models.InteractionRecord, bool, error) {
	if isNullSource(source) {
		return models.InteractionRecord{}, false, nil
	}
	var d interactionDoc
	if err := json.Unmarshal(source, &d); err != nil {
		return models.InteractionRecord{}, false, fmt.Errorf("decode interaction %s: %w", hitID, err)
	}
	id := d.ID
	if id == "" {
		id = hitID
	}
	return models.InteractionRecord{
		ID:            id,
		UserID:        d.UserID,
		MovieID:       d.MovieID,
		Rating:        d.Rating,
		WatchedAt:     d.WatchedAt.Time,
		WatchDuration: d.WatchDuration,
		Completed:     d.Completed,
	}, true, nil
}

func isNullSource(source json.RawMessage) bool {
	trimmed := bytes.TrimSpace(source)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// searchResponse is the subset of a _search response Marquee reads.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string          `json:"_id"`
			Score  *float64        `json:"_score"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// historyResponse is one page of a point-in-time search. Sort is kept raw
// so _shard_doc values round-trip without float conversion.
type historyResponse struct {
	PitID string `json:"pit_id"`
	Hits  struct {
		Hits []struct {
			ID     string          `json:"_id"`
			Source json.RawMessage `json:"_source"`
			Sort   json.RawMessage `json:"sort"`
		} `json:"hits"`
	} `json:"hits"`
}

// pitResponse is the body of an open point-in-time call.
type pitResponse struct {
	ID string `json:"id"`
}

// getResponse is the subset of a GET _doc response Marquee reads.
type getResponse struct {
	ID     string          `json:"_id"`
	Found  bool            `json:"found"`
	Source json.RawMessage `json:"_source"`
}

// mgetRequest is the body of a _mget call against a single index.
type mgetRequest struct {
	IDs []string `json:"ids"`
}

// mgetResponse lists one entry per requested id, in request order.
type mgetResponse struct {
	Docs []getResponse `json:"docs"`
}

// errorResponse is the body Elasticsearch sends with 4xx/5xx statuses.
type errorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}
