// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware_NoPanic(t *testing.T) {
	t.Parallel()

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	})

	wrappedHandler := Middleware(nil)(testHandler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", rec.Body.String())
}

func TestMiddleware_RecoverFromPanic(t *testing.T) {
	t.Parallel()

	testHandler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("test panic")
	})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	wrappedHandler := Middleware(logger)(testHandler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	// Must not propagate the panic.
	wrappedHandler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "test panic")
	assert.Contains(t, buf.String(), "/test")
}

func TestMiddleware_NilLoggerStillRecovers(t *testing.T) {
	t.Parallel()

	testHandler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		panic("unlogged panic")
	})

	wrappedHandler := Middleware(nil)(testHandler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMiddleware_PreservesRequestContext(t *testing.T) {
	t.Parallel()

	type contextKey string
	const key contextKey = "test-key"
	const value = "test-value"

	var receivedValue string

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v := r.Context().Value(key); v != nil {
			receivedValue = v.(string)
		}
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := Middleware(nil)(testHandler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	ctx := context.WithValue(req.Context(), key, value)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	wrappedHandler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, value, receivedValue)
}
