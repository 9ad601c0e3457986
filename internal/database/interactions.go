// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// InteractionsForUser returns every record of the user, most recent watch
// first, ties broken by id. Rows are streamed from one query, so there is no
// page size to tune. It satisfies recommend.HistoryStore.
func (db *DB) InteractionsForUser(ctx context.Context, userID int64) (records []models.InteractionRecord, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", interactionsTable, time.Since(start), err) }()

	const q = `
		SELECT
			id,
			user_id,
			movie_id,
			rating,
			watched_at,
			COALESCE(watch_duration, 0),
			COALESCE(completed, false)
		FROM interactions
		WHERE user_id = ?
		ORDER BY watched_at DESC, id
	`

	rows, err := db.conn.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	records = make([]models.InteractionRecord, 0)
	for rows.Next() {
		var r models.InteractionRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.MovieID, &r.Rating, &r.WatchedAt, &r.WatchDuration, &r.Completed); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return records, nil
}

// InsertInteractions upserts records in one transaction. Records without an
// id are rejected before anything is written.
func (db *DB) InsertInteractions(ctx context.Context, records []models.InteractionRecord) (err error) {
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		if records[i].ID == "" {
			return fmt.Errorf("record %d: id is required", i)
		}
	}

	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", interactionsTable, time.Since(start), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO interactions
			(id, user_id, movie_id, rating, watched_at, watch_duration, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		r := &records[i]
		if _, err = stmt.ExecContext(ctx, r.ID, r.UserID, r.MovieID, r.Rating, r.WatchedAt.UTC(), r.WatchDuration, r.Completed); err != nil {
			return fmt.Errorf("insert interaction %s: %w", r.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	db.logger.Debug().Int("records", len(records)).Msg("inserted interactions")
	return nil
}
