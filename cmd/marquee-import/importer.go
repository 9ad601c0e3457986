// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/models"
)

const defaultBatchSize = 500

// interactionWriter is the subset of database.DB the importer needs.
type interactionWriter interface {
	InsertInteractions(ctx context.Context, records []models.InteractionRecord) error
}

type importer struct {
	store     interactionWriter
	batchSize int
	logger    zerolog.Logger
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newImporter(store interactionWriter, batchSize int, logger zerolog.Logger) *importer {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &importer{store: store, batchSize: batchSize, logger: logger}
}

// Import decodes a stream of JSON records and writes them in batches. It
// returns the number of records written. A malformed record aborts the
// import; batches already written stay written.
func (imp *importer) Import(ctx context.Context, r io.Reader) (int, error) {
	dec := json.NewDecoder(r)
	batch := make([]models.InteractionRecord, 0, imp.batchSize)
	written := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := imp.store.InsertInteractions(ctx, batch); err != nil {
			return fmt.Errorf("write batch at record %d: %w", written, err)
		}
		written += len(batch)
		imp.logger.Debug().Int("batch", len(batch)).Int("written", written).Msg("Batch written")
		batch = batch[:0]
		return nil
	}

	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		var rec models.InteractionRecord
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return written, fmt.Errorf("decode record %d: %w", n, err)
		}
		if err := checkRecord(&rec); err != nil {
			return written, fmt.Errorf("record %d: %w", n, err)
		}

		batch = append(batch, rec)
		if len(batch) == imp.batchSize {
			if err := flush(); err != nil {
				return written, err
			}
		}
	}

	return written, flush()
}

func checkRecord(rec *models.InteractionRecord) error {
	switch {
	case rec.ID == "":
		return errors.New("id is required")
	case rec.MovieID == "":
		return fmt.Errorf("%s: movieId is required", rec.ID)
	case rec.Rating < 0 || rec.Rating > 5:
		return fmt.Errorf("%s: rating %.2f outside 0-5", rec.ID, rec.Rating)
	}
	return nil
}
