// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// maxFrontmatterSize limits frontmatter to prevent YAML parsing attacks.
const maxFrontmatterSize = 64 * 1024

// frontmatter is the typed view of the YAML frontmatter at the top of a
// package's primary file (SKILL.md or ROLE.md).
type frontmatter struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Version     string   `yaml:"version,omitempty"`
	Dependencies []string `yaml:"dependencies,omitempty"`
}

var frontmatterDelimiter = []byte("---")

// parseFrontmatter extracts the YAML frontmatter from a primary file.
//
// A file without a leading "---" block simply has no metadata; that is not
// an error. Malformed YAML inside a present block is. The second return
// value is the raw decoded mapping, preserved verbatim as the version's
// parsed metadata.
func parseFrontmatter(content []byte) (*frontmatter, map[string]any, error) {
	trimmed := bytes.TrimSpace(content)
	if !bytes.HasPrefix(trimmed, frontmatterDelimiter) {
		return nil, nil, nil
	}

	rest := trimmed[len(frontmatterDelimiter):]
	rest = bytes.TrimPrefix(rest, []byte("\n"))

	endIdx := bytes.Index(rest, frontmatterDelimiter)
	if endIdx == -1 {
		return nil, nil, fmt.Errorf("frontmatter missing closing delimiter (---)")
	}

	fmBytes := rest[:endIdx]
	if len(fmBytes) > maxFrontmatterSize {
		return nil, nil, fmt.Errorf("frontmatter exceeds maximum size of %d bytes", maxFrontmatterSize)
	}

	var fm frontmatter
	if err := yaml.Unmarshal(fmBytes, &fm); err != nil {
		return nil, nil, fmt.Errorf("parsing frontmatter YAML: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(fmBytes, &raw); err != nil {
		return nil, nil, fmt.Errorf("parsing frontmatter YAML: %w", err)
	}

	return &fm, raw, nil
}
