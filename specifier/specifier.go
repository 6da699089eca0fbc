// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package specifier

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies which namespace a specifier refers to.
type Kind string

const (
	// KindSkill is a skill dependency.
	KindSkill Kind = "skill"
	// KindRole is a role dependency.
	KindRole Kind = "role"
)

// Operator is the version-matching policy of a specifier.
type Operator string

const (
	// OpLatest matches the dependency's current newest version.
	OpLatest Operator = "latest"
	// OpExact matches exactly one version ("==").
	OpExact Operator = "=="
	// OpAtLeast matches any version greater than or equal to the floor (">=").
	OpAtLeast Operator = ">="
	// OpCompatible matches versions with the same major component at or
	// above the floor ("^").
	OpCompatible Operator = "^"
)

// RolePrefix marks a role dependency in a raw specifier string.
const RolePrefix = "role:"

// Spec is a parsed dependency specifier.
//
// Version is empty when Operator is OpLatest; otherwise it holds the raw
// "X.Y.Z" string exactly as written in the specifier.
type Spec struct {
	Kind     Kind
	Slug     string
	Operator Operator
	Version  string
}

// String re-serializes the specifier in canonical form. Parse(s.String())
// yields a Spec equal to s for every valid Spec.
func (s Spec) String() string {
	var b strings.Builder
	if s.Kind == KindRole {
		b.WriteString(RolePrefix)
	}
	b.WriteString(s.Slug)
	if s.Operator != OpLatest {
		b.WriteString(string(s.Operator))
		b.WriteString(s.Version)
	}
	return b.String()
}

// Key returns the "<kind>:<slug>" identity used to deduplicate dependency
// graph nodes across both namespaces.
func (s Spec) Key() string {
	return string(s.Kind) + ":" + s.Slug
}

// InvalidSpecifierError reports a specifier string that does not match the
// grammar.
type InvalidSpecifierError struct {
	// Raw is the original specifier string, after whitespace trimming.
	Raw string
}

func (e *InvalidSpecifierError) Error() string {
	return fmt.Sprintf("invalid dependency specifier: %q", e.Raw)
}

var (
	versionedRe = regexp.MustCompile(`^([a-z0-9][a-z0-9-]*)(==|>=|\^)(\d+\.\d+\.\d+)$`)
	bareSlugRe  = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
)

// Parse parses a raw dependency specifier string.
//
// Leading and trailing whitespace is ignored. A "role:" prefix selects the
// role namespace; everything else is a skill. The remainder must be either a
// bare slug (operator "latest") or slug+operator+version.
func Parse(raw string) (Spec, error) {
	trimmed := strings.TrimSpace(raw)

	kind := KindSkill
	body := trimmed
	if rest, ok := strings.CutPrefix(trimmed, RolePrefix); ok {
		kind = KindRole
		body = rest
	}

	if m := versionedRe.FindStringSubmatch(body); m != nil {
		return Spec{
			Kind:     kind,
			Slug:     m[1],
			Operator: Operator(m[2]),
			Version:  m[3],
		}, nil
	}

	if bareSlugRe.MatchString(body) {
		return Spec{Kind: kind, Slug: body, Operator: OpLatest}, nil
	}

	return Spec{}, &InvalidSpecifierError{Raw: trimmed}
}

// ExtractSlug returns the slug of a raw specifier string.
//
// This is a convenience for display linking. Callers that need validation
// must use Parse directly: ExtractSlug propagates the parse error rather
// than swallowing it.
func ExtractSlug(raw string) (string, error) {
	spec, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return spec.Slug, nil
}

// DependencyLists is the two-bucket on-disk shape of a version record's
// declared dependencies. Entries are raw specifier strings; role entries
// have their "role:" prefix stripped.
type DependencyLists struct {
	Skills []string `json:"skills,omitempty" yaml:"skills,omitempty"`
	Roles  []string `json:"roles,omitempty"  yaml:"roles,omitempty"`
}

// SplitDependencies partitions a flat author-declared dependency list into
// skill and role buckets by the "role:" prefix.
//
// It does not parse or validate individual specifiers; malformed entries are
// carried through untouched and surface later at the parsing boundary.
func SplitDependencies(flat []string) DependencyLists {
	var out DependencyLists
	for _, raw := range flat {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(entry, RolePrefix); ok {
			out.Roles = append(out.Roles, rest)
			continue
		}
		out.Skills = append(out.Skills, entry)
	}
	return out
}
