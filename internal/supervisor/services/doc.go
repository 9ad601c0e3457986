// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package services adapts Marquee components to suture.Service so they can
// run under the supervisor tree.
//
//   - HTTPServerService: wraps *http.Server, draining connections on stop and
//     forcing them closed when the drain times out
//   - DependencyMonitorService: periodically pings a backend and exports
//     marquee_dependency_up
package services
