// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package httperr carries HTTP status codes on errors for API handlers.
package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

// CodedError pairs an error with the HTTP status code it should map to,
// letting handlers resolve the response code in one place.
type CodedError struct {
	err  error
	code int
}

// Error implements the error interface.
func (e *CodedError) Error() string {
	return e.err.Error()
}

// Unwrap returns the underlying error so errors.Is and errors.As see
// through the wrapper.
func (e *CodedError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code associated with this error.
func (e *CodedError) HTTPCode() int {
	return e.code
}

// WithCode wraps err with an HTTP status code. A nil err returns nil.
func WithCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &CodedError{err: err, code: code}
}

// New creates an error with the given message and HTTP status code.
func New(message string, code int) error {
	return &CodedError{err: errors.New(message), code: code}
}

// Newf creates an error with a formatted message and HTTP status code.
func Newf(code int, format string, args ...any) error {
	return &CodedError{err: fmt.Errorf(format, args...), code: code}
}

// Code extracts the HTTP status code from an error chain. Errors without a
// CodedError anywhere in the chain map to 500; a nil error maps to 200.
func Code(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.code
	}
	return http.StatusInternalServerError
}

// IsClient reports whether the error maps to a 4xx status code.
func IsClient(err error) bool {
	code := Code(err)
	return code >= 400 && code < 500
}
