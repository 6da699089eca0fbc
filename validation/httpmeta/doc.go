// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package httpmeta provides security-focused validation for HTTP request
metadata used by the registry API.

This package helps prevent HTTP header injection (CRLF injection) and
control-character smuggling by validating input against RFC specifications.

# Header Validation

Validate HTTP header values per RFC 7230:

	if err := httpmeta.ValidateHeaderValue(value); err != nil {
		// reject the request
	}

The validator checks for:
  - CRLF injection attempts (\r\n sequences)
  - Control characters
  - Length limits to prevent DoS (8192 bytes for values)

# Bearer Actors

The registry API identifies the publishing actor through a Bearer token in
the Authorization header:

	actor, err := httpmeta.ParseBearerActor(r.Header.Get("Authorization"))
	if err != nil {
		// respond 401
	}
*/
package httpmeta
