// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package semver parses and orders the registry's version strings and decides
specifier satisfaction.

The registry deliberately supports a much smaller grammar than full semantic
versioning: exactly three dot-separated non-negative integers, no "v" prefix,
no pre-release or build metadata. Comparison is delegated to
github.com/Masterminds/semver/v3; this package is the strict-format gate in
front of it.
*/
package semver

import (
	"fmt"
	"regexp"

	mm "github.com/Masterminds/semver/v3"

	"github.com/skillmesh/registry-core/specifier"
)

// Version is a registry version: major.minor.patch, nothing else.
type Version struct {
	v *mm.Version
}

// InvalidVersionError reports a string that is not a well-formed X.Y.Z
// version.
type InvalidVersionError struct {
	Raw string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version: %q", e.Raw)
}

// strictRe rejects everything Masterminds would coerce: partial versions,
// "v" prefixes, pre-release tags, build metadata.
var strictRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Parse parses a strict X.Y.Z version string.
func Parse(raw string) (Version, error) {
	if !strictRe.MatchString(raw) {
		return Version{}, &InvalidVersionError{Raw: raw}
	}
	v, err := mm.NewVersion(raw)
	if err != nil {
		return Version{}, &InvalidVersionError{Raw: raw}
	}
	return Version{v: v}, nil
}

// MustParse parses a version known to be valid, panicking otherwise.
// Intended for tests and compile-time constants.
func MustParse(raw string) Version {
	v, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// Major returns the major component.
func (v Version) Major() uint64 { return v.v.Major() }

// Minor returns the minor component.
func (v Version) Minor() uint64 { return v.v.Minor() }

// Patch returns the patch component.
func (v Version) Patch() uint64 { return v.v.Patch() }

// String returns the canonical "X.Y.Z" form.
func (v Version) String() string {
	if v.v == nil {
		return "0.0.0"
	}
	return v.v.String()
}

// NextPatch returns the version with the patch component incremented.
func (v Version) NextPatch() Version {
	next := v.v.IncPatch()
	return Version{v: &next}
}

// Compare totally orders two versions: -1 if a < b, 0 if equal, 1 if a > b.
// Order is lexicographic on (major, minor, patch).
func Compare(a, b Version) int {
	return a.v.Compare(b.v)
}

// Satisfies reports whether a candidate version satisfies a parsed
// dependency specifier.
//
// A malformed candidate or specifier version is a hard error, never a
// silent "false": callers must propagate it.
func Satisfies(candidate string, spec specifier.Spec) (bool, error) {
	if spec.Operator == specifier.OpLatest || spec.Version == "" {
		return true, nil
	}

	cand, err := Parse(candidate)
	if err != nil {
		return false, err
	}
	floor, err := Parse(spec.Version)
	if err != nil {
		return false, err
	}

	switch spec.Operator {
	case specifier.OpExact:
		return Compare(cand, floor) == 0, nil
	case specifier.OpAtLeast:
		return Compare(cand, floor) >= 0, nil
	case specifier.OpCompatible:
		return cand.Major() == floor.Major() && Compare(cand, floor) >= 0, nil
	default:
		return false, fmt.Errorf("unsupported operator: %q", spec.Operator)
	}
}
