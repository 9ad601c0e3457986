// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor runs Marquee's long-lived components under a suture v4
supervisor tree.

The tree has two layers:

	marquee (root)
	├── backend-layer   dependency monitors (search cluster, history store)
	└── api-layer       HTTP server

A service that returns an error or panics is restarted with suture's
failure-decay backoff. Failures in one layer do not stop the other, so the
API keeps answering (with empty recommendation lists) while a backend monitor
is restarting.

Supervisor events are logged through sutureslog, which writes to the
application's zerolog logger via logging.NewSlogLogger.
*/
package supervisor
