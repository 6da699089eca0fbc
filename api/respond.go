// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skillmesh/registry-core/catalog"
	"github.com/skillmesh/registry-core/filter"
	"github.com/skillmesh/registry-core/httperr"
	"github.com/skillmesh/registry-core/publish"
	"github.com/skillmesh/registry-core/resolver"
	"github.com/skillmesh/registry-core/semver"
	"github.com/skillmesh/registry-core/specifier"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`

	// Violations carries the bucketed dependency violations on failed
	// publishes, absent otherwise.
	Violations *publish.DependencyValidationError `json:"violations,omitempty"`

	// Issues carries filter expression issue locations, absent otherwise.
	Issues []filter.Issue `json:"issues,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil && s.logger != nil {
		s.logger.Error("writing response", "error", err)
	}
}

// respondError maps a domain error to its HTTP response. Coded errors keep
// their code; known domain errors get their canonical status; everything
// else is a 500 with a generic body so internals do not leak.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)

	body := errorBody{Error: err.Error()}
	var depErr *publish.DependencyValidationError
	if errors.As(err, &depErr) {
		body.Violations = depErr
	}
	var exprErr *filter.ExpressionError
	if errors.As(err, &exprErr) {
		body.Issues = exprErr.Issues
	}

	if status == http.StatusInternalServerError {
		if s.logger != nil {
			s.logger.Error("internal error", "error", err)
		}
		body = errorBody{Error: "internal server error"}
	}

	s.writeJSON(w, status, body)
}

func statusFor(err error) int {
	var coded *httperr.CodedError
	if errors.As(err, &coded) {
		return coded.HTTPCode()
	}

	switch {
	case errors.Is(err, catalog.ErrPackageNotFound),
		errors.Is(err, catalog.ErrVersionNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrSlugConflict),
		errors.Is(err, catalog.ErrVersionExists),
		errors.Is(err, catalog.ErrVersionNotMonotonic):
		return http.StatusConflict
	case errors.Is(err, catalog.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, catalog.ErrPackageDeleted):
		return http.StatusGone
	case errors.Is(err, filter.ErrInvalidExpression):
		return http.StatusBadRequest
	}

	var (
		valErr      *publish.ValidationError
		depErr      *publish.DependencyValidationError
		specErr     *specifier.InvalidSpecifierError
		verErr      *semver.InvalidVersionError
		notFound    *resolver.NotFoundError
		noSatisfy   *resolver.NoSatisfyingVersionError
		circularDep *resolver.CircularDependencyError
	)
	switch {
	case errors.As(err, &valErr),
		errors.As(err, &depErr),
		errors.As(err, &specErr),
		errors.As(err, &verErr),
		errors.As(err, &notFound),
		errors.As(err, &noSatisfy),
		errors.As(err, &circularDep):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
