// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

import (
	"fmt"
	"log/slog"

	"github.com/skillmesh/registry-core/logging"
)

// Environment variable names read by Load.
const (
	// EnvListenAddr is the address the HTTP server binds to.
	EnvListenAddr = "SKILLMESH_LISTEN_ADDR"
	// EnvLogFormat selects the log output format, "json" or "text".
	EnvLogFormat = "SKILLMESH_LOG_FORMAT"
	// EnvLogLevel selects the minimum log level.
	EnvLogLevel = "SKILLMESH_LOG_LEVEL"
	// EnvBlobRoot overrides the on-disk blob store location.
	EnvBlobRoot = "SKILLMESH_BLOB_ROOT"
)

// DefaultListenAddr is used when EnvListenAddr is unset.
const DefaultListenAddr = ":8400"

// Config is the server configuration resolved from the environment.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string
	// LogFormat is the log output format.
	LogFormat logging.Format
	// LogLevel is the minimum log level.
	LogLevel slog.Level
	// BlobRoot is the blob store directory. Empty means the caller should
	// fall back to the XDG data directory default.
	BlobRoot string
}

// Load resolves the server configuration from the given environment
// reader. Unset variables take defaults; set but malformed values are
// errors rather than silent fallbacks.
func Load(reader Reader) (*Config, error) {
	cfg := &Config{
		ListenAddr: DefaultListenAddr,
		LogFormat:  logging.FormatJSON,
		LogLevel:   slog.LevelInfo,
	}

	if addr := reader.Getenv(EnvListenAddr); addr != "" {
		cfg.ListenAddr = addr
	}
	if format := reader.Getenv(EnvLogFormat); format != "" {
		parsed, err := logging.ParseFormat(format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogFormat, err)
		}
		cfg.LogFormat = parsed
	}
	if level := reader.Getenv(EnvLogLevel); level != "" {
		parsed, err := logging.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = parsed
	}
	cfg.BlobRoot = reader.Getenv(EnvBlobRoot)

	return cfg, nil
}
