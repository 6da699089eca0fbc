// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/dependencies.schema.json
var embeddedSchemaFS embed.FS

// ValidateDependenciesJSON validates a raw dependencies payload against the
// embedded dependency lists schema.
func ValidateDependenciesJSON(data []byte) error {
	return validateAgainstSchema(data, "data/dependencies.schema.json", "dependencies schema validation failed")
}

// validateAgainstSchema validates data against a named embedded schema file.
func validateAgainstSchema(data []byte, schemaFile, errPrefix string) error {
	schemaData, err := embeddedSchemaFS.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("failed to read embedded schema %s: %w", schemaFile, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errPrefix, err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return formatNumberedErrors(errPrefix, msgs)
}

// formatNumberedErrors formats a list of messages as a single error with a numbered list.
func formatNumberedErrors(prefix string, msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	if len(msgs) == 1 {
		return fmt.Errorf("%s: %s", prefix, msgs[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s with %d errors:\n", prefix, len(msgs))
	for i, msg := range msgs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return errors.New(strings.TrimSuffix(b.String(), "\n"))
}
