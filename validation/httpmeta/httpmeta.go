// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package httpmeta provides validation functions for HTTP request metadata.
package httpmeta

import (
	"fmt"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const (
	// MaxHeaderValueLength limits header values to a common server limit.
	MaxHeaderValueLength = 8192
	// MaxActorIDLength limits actor identifiers carried in bearer tokens.
	MaxActorIDLength = 256

	bearerPrefix = "Bearer "
)

// ValidateHeaderValue validates that a string is a valid HTTP header value
// per RFC 7230. It checks for CRLF injection and control characters.
func ValidateHeaderValue(value string) error {
	if value == "" {
		return fmt.Errorf("header value cannot be empty")
	}
	if len(value) > MaxHeaderValueLength {
		return fmt.Errorf("header value exceeds maximum length of %d bytes", MaxHeaderValueLength)
	}
	// Same validation as Go's HTTP/2 implementation
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("invalid HTTP header value: contains control characters")
	}
	return nil
}

// ParseBearerActor extracts the actor identifier from an Authorization
// header using the Bearer scheme. The scheme name is matched
// case-insensitively per RFC 6750.
func ParseBearerActor(authorization string) (string, error) {
	if authorization == "" {
		return "", fmt.Errorf("authorization header is missing")
	}
	if err := ValidateHeaderValue(authorization); err != nil {
		return "", err
	}
	if len(authorization) < len(bearerPrefix) ||
		!strings.EqualFold(authorization[:len(bearerPrefix)], bearerPrefix) {
		return "", fmt.Errorf("authorization header must use the Bearer scheme")
	}

	actor := strings.TrimSpace(authorization[len(bearerPrefix):])
	if actor == "" {
		return "", fmt.Errorf("bearer token cannot be empty")
	}
	if len(actor) > MaxActorIDLength {
		return "", fmt.Errorf("bearer token exceeds maximum length of %d bytes", MaxActorIDLength)
	}
	return actor, nil
}
