// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package slug provides validation functions for the registry's user-supplied
identifiers and text fields.

Slugs name skills and roles in specifiers, URLs, and the shared slug
namespace; tags label versions. Both follow consistent naming conventions so
they stay unambiguous across systems.

# Slug Validation

	if err := slug.Validate("code-reviewer"); err != nil {
		// Handle invalid slug
	}

Valid slugs must:
  - Be 1 to 64 characters long
  - Contain only lowercase alphanumeric characters and hyphens
  - Start with an alphanumeric character

# Examples

Valid slugs:

	"websearch"
	"web-search"
	"3d-render"

Invalid slugs:

	""                  // empty
	"WebSearch"         // uppercase
	"-web-search"       // leading hyphen
	"web_search"        // underscore
*/
package slug
