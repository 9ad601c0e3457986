// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package search

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestESDate_Formats(t *testing.T) {
	t.Parallel()

	want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		raw  string
	}{
		{"rfc3339", `"2026-09-01T00:00:00Z"`},
		{"millis fraction", `"2026-09-01T00:00:00.000Z"`},
		{"plain date", `"2026-09-01"`},
		{"epoch millis number", `1788220800000`},
		{"epoch millis string", `"1788220800000"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var d esDate
			if err := json.Unmarshal([]byte(tt.raw), &d); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.raw, err)
			}
			if !d.Time.Equal(want) {
				t.Errorf("got %v, want %v", d.Time, want)
			}
		})
	}
}

func TestESDate_NullAndInvalid(t *testing.T) {
	t.Parallel()

	var d esDate
	if err := json.Unmarshal([]byte(`null`), &d); err != nil || !d.Time.IsZero() {
		t.Errorf("null: err=%v time=%v", err, d.Time)
	}
	if err := json.Unmarshal([]byte(`"next tuesday"`), &d); err == nil {
		t.Error("expected error for unparseable date")
	}
}

func TestDecodeMovie(t *testing.T) {
	t.Parallel()

	m, ok, err := decodeMovie("hit-1", json.RawMessage(`{"title":"Up","genres":["Animation"],"rating":4.4,"viewCount":12,"releaseDate":"2009-05-29"}`))
	if err != nil || !ok {
		t.Fatalf("decodeMovie: ok=%v err=%v", ok, err)
	}
	if m.ID != "hit-1" {
		t.Errorf("expected id to fall back to _id, got %q", m.ID)
	}
	if m.ReleaseDate.Year() != 2009 || m.ViewCount != 12 {
		t.Errorf("unexpected movie: %+v", m)
	}

	for _, raw := range []string{``, `null`, ` null `} {
		if _, ok, err := decodeMovie("x", json.RawMessage(raw)); ok || err != nil {
			t.Errorf("source %q: ok=%v err=%v, want absent", raw, ok, err)
		}
	}

	if _, _, err := decodeMovie("bad", json.RawMessage(`{"rating":"high"}`)); err == nil {
		t.Error("expected decode error for string rating")
	}
}

func TestDecodeInteraction(t *testing.T) {
	t.Parallel()

	r, ok, err := decodeInteraction("p1", json.RawMessage(`{"userId":7,"movieId":"m1","rating":4.5,"watchedAt":1788220800000,"watchDuration":95.5,"completed":true}`))
	if err != nil || !ok {
		t.Fatalf("decodeInteraction: ok=%v err=%v", ok, err)
	}
	if r.ID != "p1" || r.UserID != 7 || r.MovieID != "m1" || !r.Completed {
		t.Errorf("unexpected record: %+v", r)
	}
	if r.WatchedAt.IsZero() {
		t.Error("expected watchedAt to decode from epoch millis")
	}
}
