// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/require"

	"github.com/skillmesh/registry-core/catalog"
	"github.com/skillmesh/registry-core/specifier"
)

// memBlobs is an in-memory BlobStore for tests.
type memBlobs struct {
	blobs map[digest.Digest][]byte
}

func newMemBlobs() *memBlobs {
	return &memBlobs{blobs: make(map[digest.Digest][]byte)}
}

func (m *memBlobs) PutBlob(_ context.Context, content []byte) (digest.Digest, error) {
	d := digest.FromBytes(content)
	m.blobs[d] = content
	return d, nil
}

func newTestService(store catalog.Store) *Service {
	s := NewService(store, newMemBlobs())
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("id-%03d", seq)
	}
	return s
}

func skillRequest(slug string) Request {
	return Request{
		ActorID:     "user-1",
		Kind:        specifier.KindSkill,
		Slug:        slug,
		DisplayName: "Test " + slug,
		Changelog:   "Initial release.",
		Files: []File{
			{Path: "SKILL.md", Content: []byte("---\nname: " + slug + "\n---\n# " + slug + "\n")},
		},
	}
}

func roleRequest(slug string, deps *specifier.DependencyLists) Request {
	return Request{
		ActorID:      "user-1",
		Kind:         specifier.KindRole,
		Slug:         slug,
		DisplayName:  "Role " + slug,
		Changelog:    "Initial release.",
		Files:        []File{{Path: "ROLE.md", Content: []byte("---\nname: " + slug + "\n---\n")}},
		Dependencies: deps,
	}
}

func TestPublish_FirstVersion(t *testing.T) {
	t.Parallel()

	store := catalog.NewMemStore()
	svc := newTestService(store)

	res, err := svc.Publish(context.Background(), skillRequest("web-search"))
	require.NoError(t, err)
	require.Equal(t, "1.0.0", res.Version)

	pkg, err := store.GetPackage(context.Background(), specifier.KindSkill, "web-search")
	require.NoError(t, err)
	require.Equal(t, res.PackageID, pkg.ID)
	require.Equal(t, "user-1", pkg.OwnerID)
	require.Equal(t, "Test web-search", pkg.DisplayName)
	require.Equal(t, res.VersionID, pkg.LatestVersionID)
	require.Equal(t, res.VersionID, pkg.Tags[catalog.TagLatest])
	require.Equal(t, int64(1), pkg.Stats.Versions)

	ver, err := store.GetVersionByID(context.Background(), res.VersionID)
	require.NoError(t, err)
	require.Equal(t, "1.0.0", ver.Version)
	require.Equal(t, "user-1", ver.CreatedBy)
	require.Len(t, ver.Files, 1)
	require.NotEmpty(t, ver.Files[0].ContentRef)
	require.Equal(t, ver.Files[0].ContentRef, ver.Files[0].Checksum)
}

func TestPublish_AutoIncrementsPatch(t *testing.T) {
	t.Parallel()

	store := catalog.NewMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Publish(ctx, skillRequest("web-search"))
	require.NoError(t, err)

	req := skillRequest("web-search")
	req.Changelog = "Fixes."
	res, err := svc.Publish(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "1.0.1", res.Version)

	req.Version = "2.0.0"
	res, err = svc.Publish(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "2.0.0", res.Version)

	res, err = svc.Publish(ctx, skillRequest("web-search"))
	require.NoError(t, err)
	require.Equal(t, "2.0.1", res.Version)
}

func TestPublish_VersionInvariants(t *testing.T) {
	t.Parallel()

	store := catalog.NewMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	first := skillRequest("web-search")
	first.Version = "1.0.0"
	_, err := svc.Publish(ctx, first)
	require.NoError(t, err)

	t.Run("same version again is VersionAlreadyExists", func(t *testing.T) {
		dup := skillRequest("web-search")
		dup.Version = "1.0.0"
		_, err := svc.Publish(ctx, dup)
		require.ErrorIs(t, err, catalog.ErrVersionExists)
	})

	t.Run("lower version is VersionNotMonotonic", func(t *testing.T) {
		lower := skillRequest("web-search")
		lower.Version = "0.9.0"
		_, err := svc.Publish(ctx, lower)
		require.ErrorIs(t, err, catalog.ErrVersionNotMonotonic)
	})

	t.Run("malformed version is InvalidVersion", func(t *testing.T) {
		bad := skillRequest("web-search")
		bad.Version = "1.0"
		_, err := svc.Publish(ctx, bad)
		require.Contains(t, err.Error(), "invalid version")
	})
}

func TestPublish_Ownership(t *testing.T) {
	t.Parallel()

	store := catalog.NewMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Publish(ctx, skillRequest("web-search"))
	require.NoError(t, err)

	stolen := skillRequest("web-search")
	stolen.ActorID = "user-2"
	_, err = svc.Publish(ctx, stolen)
	require.ErrorIs(t, err, catalog.ErrNotOwner)
}

func TestPublish_SlugSharedAcrossKinds(t *testing.T) {
	t.Parallel()

	store := catalog.NewMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Publish(ctx, skillRequest("shared"))
	require.NoError(t, err)

	_, err = svc.Publish(ctx, roleRequest("shared", nil))
	require.ErrorIs(t, err, catalog.ErrSlugConflict)
}

func TestPublish_DeletedPackageRejectsPublish(t *testing.T) {
	t.Parallel()

	store := catalog.NewMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Publish(ctx, skillRequest("web-search"))
	require.NoError(t, err)

	pkg, err := store.GetPackage(ctx, specifier.KindSkill, "web-search")
	require.NoError(t, err)
	ts := time.Now().UTC()
	pkg.SoftDeletedAt = &ts
	require.NoError(t, store.Update(ctx, func(tx catalog.Tx) error {
		return tx.PutPackage(pkg)
	}))

	_, err = svc.Publish(ctx, skillRequest("web-search"))
	require.ErrorIs(t, err, catalog.ErrPackageDeleted)
}

func TestPublish_DisplayNameAndSummaryFrozenAfterFirstPublish(t *testing.T) {
	t.Parallel()

	store := catalog.NewMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	first := skillRequest("web-search")
	first.Files = []File{{
		Path:    "SKILL.md",
		Content: []byte("---\nname: web-search\ndescription: Original summary.\n---\n"),
	}}
	_, err := svc.Publish(ctx, first)
	require.NoError(t, err)

	renamed := skillRequest("web-search")
	renamed.DisplayName = "Shiny New Name"
	renamed.Files = []File{{
		Path:    "SKILL.md",
		Content: []byte("---\nname: web-search\ndescription: Rewritten summary.\n---\n"),
	}}
	_, err = svc.Publish(ctx, renamed)
	require.NoError(t, err)

	pkg, err := store.GetPackage(ctx, specifier.KindSkill, "web-search")
	require.NoError(t, err)
	require.Equal(t, "Test web-search", pkg.DisplayName)
	require.Equal(t, "Original summary.", pkg.Summary)
}

func TestPublish_DependencyPreflight(t *testing.T) {
	t.Parallel()

	store := catalog.NewMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Publish(ctx, skillRequest("exists"))
	require.NoError(t, err)

	t.Run("valid dependency", func(t *testing.T) {
		_, err := svc.Publish(ctx, roleRequest("happy", &specifier.DependencyLists{
			Skills: []string{"exists>=1.0.0"},
		}))
		require.NoError(t, err)
	})

	t.Run("all violations reported together", func(t *testing.T) {
		_, err := svc.Publish(ctx, roleRequest("unhappy", &specifier.DependencyLists{
			Skills: []string{"ghost", "exists>=9.0.0", "!!!bad"},
			Roles:  []string{"unhappy"},
		}))

		var depErr *DependencyValidationError
		require.ErrorAs(t, err, &depErr)
		require.Len(t, depErr.NotFound, 1)
		require.Len(t, depErr.NoSatisfying, 1)
		require.Len(t, depErr.Invalid, 1)
		require.Len(t, depErr.SelfDependency, 1)
		require.Contains(t, err.Error(), "not found")
		require.Contains(t, err.Error(), "no satisfying version")
		require.Contains(t, err.Error(), "self dependency")
	})

	t.Run("self dependency without graph cycle", func(t *testing.T) {
		_, err := svc.Publish(ctx, roleRequest("narcissist", &specifier.DependencyLists{
			Roles: []string{"narcissist"},
		}))
		var depErr *DependencyValidationError
		require.ErrorAs(t, err, &depErr)
		require.Len(t, depErr.SelfDependency, 1)
	})

	t.Run("failed preflight commits nothing", func(t *testing.T) {
		_, err := store.GetPackage(ctx, specifier.KindRole, "unhappy")
		require.ErrorIs(t, err, catalog.ErrPackageNotFound)
	})
}

func TestPublish_DependenciesFromFrontmatter(t *testing.T) {
	t.Parallel()

	store := catalog.NewMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Publish(ctx, skillRequest("tokenize"))
	require.NoError(t, err)
	_, err = svc.Publish(ctx, roleRequest("helper", nil))
	require.NoError(t, err)

	req := roleRequest("composed", nil)
	req.Files = []File{{
		Path: "ROLE.md",
		Content: []byte(`---
name: composed
description: A composed role.
dependencies:
  - tokenize>=1.0.0
  - role:helper
---
# Composed
`),
	}}

	res, err := svc.Publish(ctx, req)
	require.NoError(t, err)

	ver, err := store.GetVersionByID(ctx, res.VersionID)
	require.NoError(t, err)
	require.Equal(t, []string{"tokenize>=1.0.0"}, ver.Dependencies.Skills)
	require.Equal(t, []string{"helper"}, ver.Dependencies.Roles)
	require.Equal(t, "A composed role.", ver.ParsedMetadata["description"])

	pkg, err := store.GetPackage(ctx, specifier.KindRole, "composed")
	require.NoError(t, err)
	require.Equal(t, "A composed role.", pkg.Summary)
}

func TestPublish_ExplicitDependenciesWinOverFrontmatter(t *testing.T) {
	t.Parallel()

	store := catalog.NewMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Publish(ctx, skillRequest("present"))
	require.NoError(t, err)

	req := roleRequest("chooser", &specifier.DependencyLists{Skills: []string{"present"}})
	req.Files = []File{{
		Path:    "ROLE.md",
		Content: []byte("---\nname: chooser\ndependencies:\n  - absent-skill\n---\n"),
	}}

	res, err := svc.Publish(ctx, req)
	require.NoError(t, err)

	ver, err := store.GetVersionByID(ctx, res.VersionID)
	require.NoError(t, err)
	require.Equal(t, []string{"present"}, ver.Dependencies.Skills)
}

func TestPublish_CustomTags(t *testing.T) {
	t.Parallel()

	store := catalog.NewMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	req := skillRequest("tagged")
	req.CustomTags = []string{"stable", "rc-1"}
	res, err := svc.Publish(ctx, req)
	require.NoError(t, err)

	pkg, err := store.GetPackage(ctx, specifier.KindSkill, "tagged")
	require.NoError(t, err)
	require.Equal(t, res.VersionID, pkg.Tags["stable"])
	require.Equal(t, res.VersionID, pkg.Tags["rc-1"])
	require.Equal(t, res.VersionID, pkg.Tags[catalog.TagLatest])
}

func TestPublish_ChecksumMismatch(t *testing.T) {
	t.Parallel()

	store := catalog.NewMemStore()
	svc := newTestService(store)

	req := skillRequest("checked")
	req.Files[0].Checksum = "sha256:0000000000000000000000000000000000000000000000000000000000000000"
	_, err := svc.Publish(context.Background(), req)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Contains(t, valErr.Reason, "checksum mismatch")
}

func TestPublish_SkillsCannotDependOnRoles(t *testing.T) {
	t.Parallel()

	store := catalog.NewMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Publish(ctx, roleRequest("helper", nil))
	require.NoError(t, err)

	req := skillRequest("confused")
	req.Dependencies = &specifier.DependencyLists{Roles: []string{"helper"}}
	_, err = svc.Publish(ctx, req)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Equal(t, "dependencies", valErr.Field)
}
