// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"time"

	"github.com/skillmesh/registry-core/specifier"
)

// TagLatest is the reserved tag that always points at a package's newest
// version. It is maintained by the publish path and cannot be supplied as a
// custom tag.
const TagLatest = "latest"

// Stats holds a package's running counters.
type Stats struct {
	// Downloads is the total download count across all versions.
	Downloads int64 `json:"downloads" yaml:"downloads"`
	// Stars is the number of users who starred the package.
	Stars int64 `json:"stars" yaml:"stars"`
	// Versions is the number of published versions, including soft-deleted ones.
	Versions int64 `json:"versions" yaml:"versions"`
	// Comments is the number of comments across all versions.
	Comments int64 `json:"comments" yaml:"comments"`
}

// Package is a skill or role in the catalog.
type Package struct {
	// ID is the opaque unique identifier of the package.
	ID string `json:"id" yaml:"id"`
	// Kind is the package kind, "skill" or "role".
	// The slug namespace is shared across both kinds: a non-deleted skill
	// and a non-deleted role can never hold the same slug.
	Kind specifier.Kind `json:"kind" yaml:"kind"`
	// Slug is the unique, case-sensitive identifier used in specifiers and URLs.
	Slug string `json:"slug" yaml:"slug"`
	// DisplayName is the human-readable name. It is frozen after the first publish.
	DisplayName string `json:"displayName" yaml:"display_name"`
	// OwnerID identifies the user who first published the slug.
	// Only the owner may publish further versions.
	OwnerID string `json:"ownerId" yaml:"owner_id"`
	// Summary is a short human-readable description.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
	// LatestVersionID points at the version with the greatest semver among
	// the package's non-deleted versions.
	LatestVersionID string `json:"latestVersionId" yaml:"latest_version_id"`
	// Tags maps tag names to version ids. The "latest" tag is maintained
	// automatically; the rest are caller-supplied.
	Tags map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	// Stats holds the package's running counters.
	Stats Stats `json:"stats" yaml:"stats"`
	// CreatedAt is when the slug was first published.
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	// UpdatedAt is when the package last changed (most recently published).
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`
	// SoftDeletedAt, when set, hides the package from queries and resolution.
	// The slug stays reserved for this kind; the other kind may reclaim it.
	SoftDeletedAt *time.Time `json:"softDeletedAt,omitempty" yaml:"soft_deleted_at,omitempty"`
}

// Deleted reports whether the package has been soft-deleted.
func (p *Package) Deleted() bool {
	return p.SoftDeletedAt != nil
}

// FileRef describes one stored file of a package version.
type FileRef struct {
	// Path is the file's relative path within the package.
	Path string `json:"path" yaml:"path"`
	// Size is the file size in bytes.
	Size int64 `json:"size" yaml:"size"`
	// ContentRef is the content-addressed reference (a digest) into blob storage.
	ContentRef string `json:"contentRef" yaml:"content_ref"`
	// Checksum is the file's content digest as verified at publish time.
	Checksum string `json:"checksum" yaml:"checksum"`
}

// PackageVersion is one published, immutable version of a package.
type PackageVersion struct {
	// ID is the opaque unique identifier of the version.
	ID string `json:"id" yaml:"id"`
	// PackageID is the owning package's id. (PackageID, Version) is unique.
	PackageID string `json:"packageId" yaml:"package_id"`
	// Version is the canonical "X.Y.Z" version string.
	Version string `json:"version" yaml:"version"`
	// Changelog describes what changed in this version.
	Changelog string `json:"changelog,omitempty" yaml:"changelog,omitempty"`
	// Files lists the stored files of this version.
	Files []FileRef `json:"files" yaml:"files"`
	// Dependencies holds the declared dependencies as raw specifier strings,
	// bucketed by kind. Specifiers are parsed on demand, never normalized on
	// disk, so the source of truth stays human-readable.
	Dependencies specifier.DependencyLists `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	// ParsedMetadata carries the frontmatter parsed from the version's
	// primary file, as an opaque payload.
	ParsedMetadata map[string]any `json:"parsedMetadata,omitempty" yaml:"parsed_metadata,omitempty"`
	// CreatedBy identifies the publishing user.
	CreatedBy string `json:"createdBy" yaml:"created_by"`
	// CreatedAt is when the version was published.
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	// SoftDeletedAt, when set, hides the version from listings and resolution
	// without freeing the version number for reuse.
	SoftDeletedAt *time.Time `json:"softDeletedAt,omitempty" yaml:"soft_deleted_at,omitempty"`
}

// Deleted reports whether the version has been soft-deleted.
func (v *PackageVersion) Deleted() bool {
	return v.SoftDeletedAt != nil
}
