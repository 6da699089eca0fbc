// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package recovery provides panic recovery middleware for HTTP handlers.
//
// The middleware recovers from panics in HTTP handlers, logs the panic value
// and stack trace, and returns a 500 Internal Server Error response to the
// client. This prevents a single panicking request from crashing the entire
// server.
//
// # Basic Usage
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/", handler)
//	wrapped := recovery.Middleware(logger)(mux)
//	http.ListenAndServe(":8080", wrapped)
package recovery
