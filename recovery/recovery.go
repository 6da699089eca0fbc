// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Middleware returns an HTTP middleware that recovers from panics in the
// wrapped handler. A recovered panic is logged with its stack trace and the
// client receives a 500 Internal Server Error, so one bad request cannot
// take the server down.
//
// A nil logger disables panic logging but still recovers.
func Middleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if logger != nil {
						logger.Error("panic recovered",
							"panic", v,
							"method", r.Method,
							"path", r.URL.Path,
							"stack", string(debug.Stack()),
						)
					}
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
