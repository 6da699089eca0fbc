// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/skillmesh/registry-core/catalog"
	"github.com/skillmesh/registry-core/semver"
	"github.com/skillmesh/registry-core/specifier"
	slugvalidation "github.com/skillmesh/registry-core/validation/slug"
)

const (
	// MaxFiles is the maximum number of files per version.
	MaxFiles = 20
	// MaxFileSize is the maximum size of a single file in bytes (5 MiB).
	MaxFileSize = 5 * 1024 * 1024
	// RoleFileName is the single file a role version must consist of.
	RoleFileName = "ROLE.md"
)

// skillFileExtensions is the extension allow-list for skill files.
var skillFileExtensions = map[string]bool{
	".md":   true,
	".txt":  true,
	".json": true,
	".yaml": true,
	".yml":  true,
	".sh":   true,
	".py":   true,
}

func hasExtension(filePath, ext string) bool {
	return strings.EqualFold(path.Ext(filePath), ext)
}

// validateRequest checks everything about a request that needs no catalog
// access: actor, slug, text fields, tags, and files. The first problem fails
// the request; only dependency checks are batched.
func validateRequest(req Request) error {
	if req.ActorID == "" {
		return &ValidationError{Field: "actorId", Reason: "required"}
	}
	if req.Kind != specifier.KindSkill && req.Kind != specifier.KindRole {
		return &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown kind %q", req.Kind)}
	}
	if err := slugvalidation.Validate(req.Slug); err != nil {
		return &ValidationError{Field: "slug", Reason: err.Error()}
	}
	if req.DisplayName != "" {
		if err := slugvalidation.ValidateDisplayName(req.DisplayName); err != nil {
			return &ValidationError{Field: "displayName", Reason: err.Error()}
		}
	}
	if err := slugvalidation.ValidateChangelog(req.Changelog); err != nil {
		return &ValidationError{Field: "changelog", Reason: err.Error()}
	}
	for _, tag := range req.CustomTags {
		if err := slugvalidation.ValidateTag(tag); err != nil {
			return &ValidationError{Field: "customTags", Reason: err.Error()}
		}
	}
	return validateFiles(req.Kind, req.Files)
}

func validateFiles(kind specifier.Kind, files []File) error {
	if len(files) == 0 {
		return &ValidationError{Field: "files", Reason: "at least one file is required"}
	}
	if len(files) > MaxFiles {
		return &ValidationError{Field: "files", Reason: fmt.Sprintf("at most %d files allowed", MaxFiles)}
	}

	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if f.Path == "" {
			return &ValidationError{Field: "files", Reason: "file path cannot be empty"}
		}
		cleaned := path.Clean(f.Path)
		if path.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
			return &ValidationError{Field: "files", Reason: fmt.Sprintf("unsafe file path %q", f.Path)}
		}
		if seen[cleaned] {
			return &ValidationError{Field: "files", Reason: fmt.Sprintf("duplicate file path %q", f.Path)}
		}
		seen[cleaned] = true
		if int64(len(f.Content)) > MaxFileSize {
			return &ValidationError{Field: "files", Reason: fmt.Sprintf("%s exceeds maximum size of %d bytes", f.Path, int64(MaxFileSize))}
		}
		if kind == specifier.KindSkill && !skillFileExtensions[strings.ToLower(path.Ext(cleaned))] {
			return &ValidationError{Field: "files", Reason: fmt.Sprintf("file type not allowed for skills: %q", f.Path)}
		}
	}

	if kind == specifier.KindRole {
		if len(files) != 1 || files[0].Path != RoleFileName {
			return &ValidationError{Field: "files", Reason: fmt.Sprintf("roles must consist of exactly one file named %s", RoleFileName)}
		}
	}
	return nil
}

// validateDependencies runs the publish pre-flight over every declared
// dependency, non-recursively, collecting all violations before failing.
//
// Violations land in category buckets (invalid specifier, not found, no
// satisfying version, self dependency); hard infrastructure errors and
// malformed stored versions still abort immediately, since they say nothing
// the publisher can fix.
func validateDependencies(ctx context.Context, reader catalog.Reader, kind specifier.Kind, slug string, deps specifier.DependencyLists) error {
	var violations DependencyValidationError

	check := func(raw string, depKind specifier.Kind) error {
		spec, err := specifier.Parse(raw)
		if err != nil {
			violations.Invalid = append(violations.Invalid, DependencyViolation{Kind: depKind, Raw: raw})
			return nil
		}
		spec.Kind = depKind

		if spec.Kind == kind && spec.Slug == slug {
			violations.SelfDependency = append(violations.SelfDependency, DependencyViolation{Kind: depKind, Raw: raw})
			return nil
		}

		pkg, err := reader.GetPackage(ctx, spec.Kind, spec.Slug)
		switch {
		case errors.Is(err, catalog.ErrPackageNotFound):
			violations.NotFound = append(violations.NotFound, DependencyViolation{Kind: depKind, Raw: raw})
			return nil
		case err != nil:
			return fmt.Errorf("looking up %s %q: %w", spec.Kind, spec.Slug, err)
		case pkg.Deleted():
			violations.NotFound = append(violations.NotFound, DependencyViolation{Kind: depKind, Raw: raw})
			return nil
		}

		satisfied, err := hasSatisfyingVersion(ctx, reader, pkg, spec)
		if err != nil {
			return err
		}
		if !satisfied {
			violations.NoSatisfying = append(violations.NoSatisfying, DependencyViolation{Kind: depKind, Raw: raw})
		}
		return nil
	}

	for _, raw := range deps.Skills {
		if err := check(raw, specifier.KindSkill); err != nil {
			return err
		}
	}
	for _, raw := range deps.Roles {
		if err := check(raw, specifier.KindRole); err != nil {
			return err
		}
	}

	if violations.Empty() {
		return nil
	}
	return &violations
}

// hasSatisfyingVersion mirrors the resolver's version selection without
// recursing: it only answers whether some version would resolve.
func hasSatisfyingVersion(ctx context.Context, reader catalog.Reader, pkg *catalog.Package, spec specifier.Spec) (bool, error) {
	if spec.Operator == specifier.OpLatest {
		if pkg.LatestVersionID == "" {
			return false, nil
		}
		version, err := reader.GetVersionByID(ctx, pkg.LatestVersionID)
		if err != nil {
			if errors.Is(err, catalog.ErrVersionNotFound) {
				return false, nil
			}
			return false, err
		}
		return !version.Deleted(), nil
	}

	versions, err := reader.ListVersions(ctx, pkg.ID)
	if err != nil {
		return false, fmt.Errorf("listing versions of %s %q: %w", pkg.Kind, pkg.Slug, err)
	}
	for _, version := range versions {
		ok, err := semver.Satisfies(version.Version, spec)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
