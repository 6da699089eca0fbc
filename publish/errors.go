// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"fmt"
	"strings"

	"github.com/skillmesh/registry-core/specifier"
)

// ValidationError reports a malformed request field. It fails immediately;
// only dependency checks are batched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// DependencyViolation is one problem with one declared dependency.
type DependencyViolation struct {
	// Kind is the namespace the dependency was declared in.
	Kind specifier.Kind
	// Raw is the specifier string as declared.
	Raw string
}

func (v DependencyViolation) String() string {
	return fmt.Sprintf("%s %q", v.Kind, v.Raw)
}

// DependencyValidationError aggregates every dependency violation found
// during publish pre-flight, bucketed by category. The publisher sees the
// complete set of problems in a single error rather than one per round trip.
type DependencyValidationError struct {
	Invalid        []DependencyViolation
	NotFound       []DependencyViolation
	NoSatisfying   []DependencyViolation
	SelfDependency []DependencyViolation
}

// Empty reports whether no violations were recorded.
func (e *DependencyValidationError) Empty() bool {
	return len(e.Invalid) == 0 && len(e.NotFound) == 0 &&
		len(e.NoSatisfying) == 0 && len(e.SelfDependency) == 0
}

func (e *DependencyValidationError) Error() string {
	var parts []string
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid specifier: "+joinViolations(e.Invalid))
	}
	if len(e.NotFound) > 0 {
		parts = append(parts, "not found: "+joinViolations(e.NotFound))
	}
	if len(e.NoSatisfying) > 0 {
		parts = append(parts, "no satisfying version: "+joinViolations(e.NoSatisfying))
	}
	if len(e.SelfDependency) > 0 {
		parts = append(parts, "self dependency: "+joinViolations(e.SelfDependency))
	}
	return "dependency validation failed: " + strings.Join(parts, "; ")
}

func joinViolations(vs []DependencyViolation) string {
	strs := make([]string, len(vs))
	for i, v := range vs {
		strs[i] = v.String()
	}
	return strings.Join(strs, ", ")
}
