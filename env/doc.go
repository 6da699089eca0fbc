// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env provides an interface-based abstraction for environment variable
access and loads the registry server configuration from SKILLMESH_* variables.

# Basic Usage

Use OSReader to read environment variables via the standard os package:

	reader := &env.OSReader{}
	cfg, err := env.Load(reader)

# Configuration Variables

	SKILLMESH_LISTEN_ADDR   HTTP listen address (default ":8400")
	SKILLMESH_LOG_FORMAT    "json" or "text" (default "json")
	SKILLMESH_LOG_LEVEL     "debug", "info", "warn", or "error" (default "info")
	SKILLMESH_BLOB_ROOT     blob store directory (default: XDG data directory)

Unset variables take defaults. Set but malformed values fail Load so a typo
in deployment configuration surfaces at startup instead of being ignored.

# Testing

The Reader interface allows injecting a fake in tests to avoid relying on
real environment variables:

	cfg, err := env.Load(mapReader{"SKILLMESH_LOG_LEVEL": "debug"})

# Design

This package follows the interface-based dependency injection pattern used
throughout registry-core. Production code accepts an env.Reader, while tests
substitute a fake.
*/
package env
