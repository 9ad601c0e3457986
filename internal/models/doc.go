// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package models defines the data shapes shared across Marquee.
//
// Two groups live here:
//
//   - Index documents: MovieItem (the "movies" index) and InteractionRecord
//     (the "user_preferences" index or the DuckDB interactions table). Their
//     JSON field names are a compatibility contract with existing indices and
//     must not be renamed.
//   - API envelopes: APIResponse, Metadata and APIError, used by every HTTP
//     handler so clients always see the same outer structure.
//
// Types in this package carry no behaviour beyond small helpers. Scoring and
// query composition live in internal/recommend.
package models
