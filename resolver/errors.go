// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"fmt"

	"github.com/skillmesh/registry-core/specifier"
)

// NotFoundError means a declared dependency does not exist in the catalog
// (or has been soft-deleted).
type NotFoundError struct {
	Kind specifier.Kind
	Slug string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dependency not found: %s %q", e.Kind, e.Slug)
}

// NoSatisfyingVersionError means the dependency exists but none of its
// versions satisfies the specifier.
type NoSatisfyingVersionError struct {
	Kind specifier.Kind
	Slug string
	// Spec is the canonical form of the unsatisfiable specifier.
	Spec string
}

func (e *NoSatisfyingVersionError) Error() string {
	return fmt.Sprintf("no version of %s %q satisfies %q", e.Kind, e.Slug, e.Spec)
}

// CircularDependencyError means the dependency graph contains a cycle
// through the named slug.
type CircularDependencyError struct {
	Slug string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected at %q", e.Slug)
}
