// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"fmt"
)

const interactionsTable = "interactions"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS interactions (
		id             VARCHAR PRIMARY KEY,
		user_id        BIGINT NOT NULL,
		movie_id       VARCHAR NOT NULL,
		rating         DOUBLE NOT NULL,
		watched_at     TIMESTAMP NOT NULL,
		watch_duration DOUBLE,
		completed      BOOLEAN
	)`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_user ON interactions(user_id)`,
}

func (db *DB) createSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}
