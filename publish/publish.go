// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opencontainers/go-digest"

	"github.com/skillmesh/registry-core/catalog"
	"github.com/skillmesh/registry-core/semver"
	"github.com/skillmesh/registry-core/specifier"
)

// BlobStore is the slice of blob storage the publish path needs.
// blob.Store satisfies it.
type BlobStore interface {
	PutBlob(ctx context.Context, content []byte) (digest.Digest, error)
}

// File is one uploaded file of a publish request.
type File struct {
	// Path is the file's relative path within the package.
	Path string
	// Content is the raw file content.
	Content []byte
	// Checksum, when non-empty, is the client-computed digest of Content.
	// It must match the server-computed digest or the publish fails.
	Checksum string
}

// Request carries everything a publish needs.
type Request struct {
	// ActorID is the authenticated publishing user.
	ActorID string
	// Kind selects the skill or role namespace.
	Kind specifier.Kind
	// Slug is the package identifier being published to.
	Slug string
	// DisplayName is required on first publish and frozen afterwards.
	DisplayName string
	// Version is the explicit version to publish. Empty means auto-increment
	// the patch component of the current latest (1.0.0 for a new package).
	Version string
	// Changelog describes the version.
	Changelog string
	// Files are the uploaded files.
	Files []File
	// Dependencies, when non-nil, takes precedence over dependencies declared
	// in the primary file's frontmatter.
	Dependencies *specifier.DependencyLists
	// CustomTags are extra tags to point at the new version.
	CustomTags []string
}

// Result identifies the committed package and version.
type Result struct {
	PackageID string `json:"packageId"`
	VersionID string `json:"versionId"`
	// Version is the canonical version string that was published.
	Version string `json:"version"`
}

// Service executes publish transactions against a catalog store and blob
// storage. It is safe for concurrent use.
type Service struct {
	store catalog.Store
	blobs BlobStore

	now   func() time.Time
	newID func() string
}

// NewService creates a publish service.
func NewService(store catalog.Store, blobs BlobStore) *Service {
	return &Service{
		store: store,
		blobs: blobs,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Publish validates the request and commits a new package version.
//
// All catalog writes happen inside a single store transaction, so no
// concurrent reader ever observes a package without its version or a stale
// latest pointer. Blob writes happen first, outside the transaction: blobs
// are content-addressed and idempotent, so an aborted publish leaves no
// visible garbage behind.
func (s *Service) Publish(ctx context.Context, req Request) (*Result, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	deps, meta, err := s.resolveDependencies(req)
	if err != nil {
		return nil, err
	}
	summary, _ := meta["description"].(string)
	if req.Kind == specifier.KindSkill && len(deps.Roles) > 0 {
		return nil, &ValidationError{Field: "dependencies", Reason: "skills cannot depend on roles"}
	}

	fileRefs, err := s.storeFiles(ctx, req.Files)
	if err != nil {
		return nil, err
	}

	var result *Result
	err = s.store.Update(ctx, func(tx catalog.Tx) error {
		if err := validateDependencies(ctx, tx, req.Kind, req.Slug, deps); err != nil {
			return err
		}

		pkg, created, err := s.packageForPublish(ctx, tx, req, summary)
		if err != nil {
			return err
		}

		version, err := s.nextVersion(ctx, tx, pkg, req.Version)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		ver := &catalog.PackageVersion{
			ID:             s.newID(),
			PackageID:      pkg.ID,
			Version:        version.String(),
			Changelog:      req.Changelog,
			Files:          fileRefs,
			Dependencies:   deps,
			ParsedMetadata: meta,
			CreatedBy:      req.ActorID,
			CreatedAt:      now,
		}
		if err := tx.CreateVersion(ver); err != nil {
			return err
		}

		pkg.LatestVersionID = ver.ID
		if pkg.Tags == nil {
			pkg.Tags = make(map[string]string)
		}
		pkg.Tags[catalog.TagLatest] = ver.ID
		for _, tag := range req.CustomTags {
			pkg.Tags[tag] = ver.ID
		}
		pkg.Stats.Versions++
		pkg.UpdatedAt = now

		if created {
			pkg.CreatedAt = now
			if err := tx.CreatePackage(pkg); err != nil {
				return err
			}
		} else if err := tx.PutPackage(pkg); err != nil {
			return err
		}

		result = &Result{PackageID: pkg.ID, VersionID: ver.ID, Version: ver.Version}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveDependencies determines the version's dependency lists: the explicit
// request argument wins, otherwise they come from the primary file's
// frontmatter. Frontmatter metadata is returned either way.
func (s *Service) resolveDependencies(req Request) (specifier.DependencyLists, map[string]any, error) {
	var meta map[string]any
	var fm *frontmatter

	if primary := primaryFile(req.Kind, req.Files); primary != nil {
		parsed, raw, err := parseFrontmatter(primary.Content)
		if err != nil {
			return specifier.DependencyLists{}, nil, &ValidationError{
				Field:  "files",
				Reason: fmt.Sprintf("%s: %v", primary.Path, err),
			}
		}
		fm = parsed
		meta = raw
	}

	if req.Dependencies != nil {
		return *req.Dependencies, meta, nil
	}
	if fm != nil {
		return specifier.SplitDependencies(fm.Dependencies), meta, nil
	}
	return specifier.DependencyLists{}, meta, nil
}

// packageForPublish loads the existing package row or prepares a fresh one,
// enforcing ownership, soft-delete, and cross-kind slug exclusivity.
func (s *Service) packageForPublish(ctx context.Context, tx catalog.Tx, req Request, summary string) (*catalog.Package, bool, error) {
	pkg, err := tx.GetPackage(ctx, req.Kind, req.Slug)
	switch {
	case err == nil:
		if pkg.Deleted() {
			return nil, false, fmt.Errorf("%s %q: %w", req.Kind, req.Slug, catalog.ErrPackageDeleted)
		}
		if pkg.OwnerID != req.ActorID {
			return nil, false, fmt.Errorf("%s %q: %w", req.Kind, req.Slug, catalog.ErrNotOwner)
		}
		// Display name and summary are frozen after the first publish.
		return pkg, false, nil
	case errors.Is(err, catalog.ErrPackageNotFound):
		// Cross-kind exclusivity is enforced again by CreatePackage at commit;
		// checking here yields the cleaner error before any version work.
		other := specifier.KindRole
		if req.Kind == specifier.KindRole {
			other = specifier.KindSkill
		}
		if existing, err := tx.GetPackage(ctx, other, req.Slug); err == nil && !existing.Deleted() {
			return nil, false, fmt.Errorf("%s %q: %w", req.Kind, req.Slug, catalog.ErrSlugConflict)
		}
		if req.DisplayName == "" {
			return nil, false, &ValidationError{Field: "displayName", Reason: "required on first publish"}
		}
		return &catalog.Package{
			ID:          s.newID(),
			Kind:        req.Kind,
			Slug:        req.Slug,
			DisplayName: req.DisplayName,
			OwnerID:     req.ActorID,
			Summary:     summary,
			Tags:        make(map[string]string),
		}, true, nil
	default:
		return nil, false, fmt.Errorf("looking up %s %q: %w", req.Kind, req.Slug, err)
	}
}

// nextVersion resolves the version to publish: the validated explicit version
// if one was supplied (it must exceed the current latest), otherwise the
// latest version with its patch component incremented, defaulting to 1.0.0.
func (s *Service) nextVersion(ctx context.Context, tx catalog.Tx, pkg *catalog.Package, explicit string) (semver.Version, error) {
	var latest *semver.Version
	if pkg.LatestVersionID != "" {
		latestVer, err := tx.GetVersionByID(ctx, pkg.LatestVersionID)
		if err != nil {
			return semver.Version{}, fmt.Errorf("loading latest version: %w", err)
		}
		parsed, err := semver.Parse(latestVer.Version)
		if err != nil {
			return semver.Version{}, fmt.Errorf("stored latest version: %w", err)
		}
		latest = &parsed
	}

	if explicit == "" {
		if latest == nil {
			return semver.MustParse("1.0.0"), nil
		}
		return latest.NextPatch(), nil
	}

	v, err := semver.Parse(explicit)
	if err != nil {
		return semver.Version{}, err
	}
	// Republishing the exact latest version falls through to the uniqueness
	// guard, which reports the more precise "version already exists".
	if latest != nil && semver.Compare(v, *latest) < 0 {
		return semver.Version{}, fmt.Errorf("%s is not greater than %s: %w",
			v, *latest, catalog.ErrVersionNotMonotonic)
	}
	return v, nil
}

// storeFiles writes file contents to blob storage and builds the version's
// file references, verifying client-supplied checksums.
func (s *Service) storeFiles(ctx context.Context, files []File) ([]catalog.FileRef, error) {
	refs := make([]catalog.FileRef, 0, len(files))
	for _, f := range files {
		d, err := s.blobs.PutBlob(ctx, f.Content)
		if err != nil {
			return nil, fmt.Errorf("storing %s: %w", f.Path, err)
		}
		if f.Checksum != "" && f.Checksum != d.String() {
			return nil, &ValidationError{
				Field:  "files",
				Reason: fmt.Sprintf("checksum mismatch for %s", f.Path),
			}
		}
		refs = append(refs, catalog.FileRef{
			Path:       f.Path,
			Size:       int64(len(f.Content)),
			ContentRef: d.String(),
			Checksum:   d.String(),
		})
	}
	return refs, nil
}

// primaryFile picks the file whose frontmatter carries the package metadata:
// ROLE.md for roles, SKILL.md for skills, else the first markdown file.
func primaryFile(kind specifier.Kind, files []File) *File {
	want := "SKILL.md"
	if kind == specifier.KindRole {
		want = "ROLE.md"
	}
	for i := range files {
		if files[i].Path == want {
			return &files[i]
		}
	}
	for i := range files {
		if hasExtension(files[i].Path, ".md") {
			return &files[i]
		}
	}
	return nil
}
