// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package httperr carries HTTP status codes on errors for API handlers.

Domain code returns plain errors; the API layer wraps them with the status
code the response should use, and a single response writer resolves the
code at the edge. CodedError supports the standard wrapping pattern, so
errors.Is and errors.As keep working through it.

# Basic Usage

	err := httperr.New("package not found", http.StatusNotFound)
	err = httperr.WithCode(catalog.ErrNotOwner, http.StatusForbidden)

# Resolving Codes

	code := httperr.Code(err)
	// the wrapped code, 500 when no CodedError is in the chain,
	// 200 when err is nil

# Error Wrapping

	err := httperr.WithCode(catalog.ErrPackageNotFound, http.StatusNotFound)
	errors.Is(err, catalog.ErrPackageNotFound) // true
*/
package httperr
