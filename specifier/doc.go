// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package specifier parses dependency specifier strings into structured form.

A specifier names a skill or role together with a version requirement:

	spec       = ["role:"] slug [operator version]
	operator   = "==" / ">=" / "^"
	slug       = lowercase alphanumeric plus hyphens
	version    = "X.Y.Z"

A bare slug means "latest". The "role:" prefix marks a role dependency;
everything else is a skill dependency.

# Basic Usage

	spec, err := specifier.Parse("role:code-reviewer>=1.2.0")
	// spec.Kind == specifier.KindRole
	// spec.Slug == "code-reviewer"
	// spec.Operator == specifier.OpAtLeast
	// spec.Version == "1.2.0"

Specifiers are persisted as their original string form inside version records
and parsed on demand; this package is the single parsing boundary. Nothing
downstream of it should ever see a stringly-typed dependency.
*/
package specifier
