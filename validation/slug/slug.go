// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package slug

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MaxSlugLength is the maximum slug length in characters.
	MaxSlugLength = 64
	// MaxTagLength is the maximum custom tag length in characters.
	MaxTagLength = 32
	// MaxDisplayNameLength is the maximum display name length in characters.
	MaxDisplayNameLength = 100
	// MaxChangelogLength is the maximum changelog length in characters.
	MaxChangelogLength = 10000
)

var validSlugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Validate checks that a slug is well-formed: 1 to 64 characters, lowercase
// alphanumeric plus hyphens, starting with an alphanumeric character.
func Validate(s string) error {
	if s == "" {
		return fmt.Errorf("slug cannot be empty")
	}
	if len(s) > MaxSlugLength {
		return fmt.Errorf("slug exceeds maximum length of %d characters: %q", MaxSlugLength, s)
	}
	if !validSlugRegex.MatchString(s) {
		return fmt.Errorf("slug must be lowercase alphanumeric plus hyphens and start alphanumeric: %q", s)
	}
	return nil
}

// ValidateTag checks a custom tag name: same character rules as slugs, at
// most 32 characters, and "latest" is reserved.
func ValidateTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("tag cannot be empty")
	}
	if tag == "latest" {
		return fmt.Errorf("tag %q is reserved", tag)
	}
	if len(tag) > MaxTagLength {
		return fmt.Errorf("tag exceeds maximum length of %d characters: %q", MaxTagLength, tag)
	}
	if !validSlugRegex.MatchString(tag) {
		return fmt.Errorf("tag must be lowercase alphanumeric plus hyphens and start alphanumeric: %q", tag)
	}
	return nil
}

// ValidateDisplayName checks a human-readable display name: non-blank, at
// most 100 characters, no control characters or null bytes.
func ValidateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("display name cannot be empty or consist only of whitespace")
	}
	if len(name) > MaxDisplayNameLength {
		return fmt.Errorf("display name exceeds maximum length of %d characters", MaxDisplayNameLength)
	}
	if strings.ContainsFunc(name, func(r rune) bool { return r < 0x20 || r == 0x7f }) {
		return fmt.Errorf("display name cannot contain control characters")
	}
	return nil
}

// ValidateChangelog checks a changelog body's length.
func ValidateChangelog(changelog string) error {
	if len(changelog) > MaxChangelogLength {
		return fmt.Errorf("changelog exceeds maximum length of %d characters", MaxChangelogLength)
	}
	return nil
}
