// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillmesh/registry-core/specifier"
)

func testPackage(kind specifier.Kind, slug, id string) *Package {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Package{
		ID:          id,
		Kind:        kind,
		Slug:        slug,
		DisplayName: "Test " + slug,
		OwnerID:     "user-1",
		Tags:        map[string]string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func testVersion(pkgID, id, version string) *PackageVersion {
	return &PackageVersion{
		ID:        id,
		PackageID: pkgID,
		Version:   version,
		CreatedBy: "user-1",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func mustCreate(t *testing.T, s *MemStore, pkg *Package, versions ...*PackageVersion) {
	t.Helper()
	err := s.Update(context.Background(), func(tx Tx) error {
		if err := tx.CreatePackage(pkg); err != nil {
			return err
		}
		for _, v := range versions {
			if err := tx.CreateVersion(v); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestMemStore_GetPackage(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	mustCreate(t, s, testPackage(specifier.KindSkill, "web-search", "pkg-1"))

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		pkg, err := s.GetPackage(context.Background(), specifier.KindSkill, "web-search")
		require.NoError(t, err)
		require.Equal(t, "pkg-1", pkg.ID)
	})

	t.Run("wrong kind is not found", func(t *testing.T) {
		t.Parallel()

		_, err := s.GetPackage(context.Background(), specifier.KindRole, "web-search")
		require.ErrorIs(t, err, ErrPackageNotFound)
	})

	t.Run("unknown slug", func(t *testing.T) {
		t.Parallel()

		_, err := s.GetPackage(context.Background(), specifier.KindSkill, "missing")
		require.ErrorIs(t, err, ErrPackageNotFound)
	})

	t.Run("returned row is a copy", func(t *testing.T) {
		t.Parallel()

		pkg, err := s.GetPackage(context.Background(), specifier.KindSkill, "web-search")
		require.NoError(t, err)
		pkg.DisplayName = "mutated"
		pkg.Tags["rogue"] = "v"

		again, err := s.GetPackage(context.Background(), specifier.KindSkill, "web-search")
		require.NoError(t, err)
		require.Equal(t, "Test web-search", again.DisplayName)
		require.Empty(t, again.Tags)
	})
}

func TestMemStore_CreatePackage_SlugExclusivity(t *testing.T) {
	t.Parallel()

	t.Run("cross-kind conflict", func(t *testing.T) {
		t.Parallel()

		s := NewMemStore()
		mustCreate(t, s, testPackage(specifier.KindSkill, "shared", "pkg-1"))

		err := s.Update(context.Background(), func(tx Tx) error {
			return tx.CreatePackage(testPackage(specifier.KindRole, "shared", "pkg-2"))
		})
		require.ErrorIs(t, err, ErrSlugConflict)
	})

	t.Run("soft-deleted slug reclaimable by other kind", func(t *testing.T) {
		t.Parallel()

		s := NewMemStore()
		deleted := testPackage(specifier.KindSkill, "shared", "pkg-1")
		ts := time.Now().UTC()
		deleted.SoftDeletedAt = &ts
		mustCreate(t, s, deleted)

		err := s.Update(context.Background(), func(tx Tx) error {
			return tx.CreatePackage(testPackage(specifier.KindRole, "shared", "pkg-2"))
		})
		require.NoError(t, err)
	})

	t.Run("same-kind duplicate", func(t *testing.T) {
		t.Parallel()

		s := NewMemStore()
		mustCreate(t, s, testPackage(specifier.KindSkill, "dup", "pkg-1"))

		err := s.Update(context.Background(), func(tx Tx) error {
			return tx.CreatePackage(testPackage(specifier.KindSkill, "dup", "pkg-2"))
		})
		require.ErrorIs(t, err, ErrSlugConflict)
	})
}

func TestMemStore_CreateVersion(t *testing.T) {
	t.Parallel()

	t.Run("duplicate version rejected", func(t *testing.T) {
		t.Parallel()

		s := NewMemStore()
		mustCreate(t, s, testPackage(specifier.KindSkill, "web-search", "pkg-1"),
			testVersion("pkg-1", "ver-1", "1.0.0"))

		err := s.Update(context.Background(), func(tx Tx) error {
			return tx.CreateVersion(testVersion("pkg-1", "ver-2", "1.0.0"))
		})
		require.ErrorIs(t, err, ErrVersionExists)
	})

	t.Run("soft-deleted version number stays reserved", func(t *testing.T) {
		t.Parallel()

		s := NewMemStore()
		v := testVersion("pkg-1", "ver-1", "1.0.0")
		ts := time.Now().UTC()
		v.SoftDeletedAt = &ts
		mustCreate(t, s, testPackage(specifier.KindSkill, "web-search", "pkg-1"), v)

		err := s.Update(context.Background(), func(tx Tx) error {
			return tx.CreateVersion(testVersion("pkg-1", "ver-2", "1.0.0"))
		})
		require.ErrorIs(t, err, ErrVersionExists)
	})

	t.Run("list excludes soft-deleted, keeps order", func(t *testing.T) {
		t.Parallel()

		s := NewMemStore()
		deleted := testVersion("pkg-1", "ver-2", "1.0.1")
		ts := time.Now().UTC()
		deleted.SoftDeletedAt = &ts
		mustCreate(t, s, testPackage(specifier.KindSkill, "web-search", "pkg-1"),
			testVersion("pkg-1", "ver-1", "1.0.0"),
			deleted,
			testVersion("pkg-1", "ver-3", "1.1.0"))

		vers, err := s.ListVersions(context.Background(), "pkg-1")
		require.NoError(t, err)
		require.Len(t, vers, 2)
		require.Equal(t, "1.0.0", vers[0].Version)
		require.Equal(t, "1.1.0", vers[1].Version)
	})
}

func TestMemStore_Update_Atomicity(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	failure := errors.New("mid-transaction failure")

	err := s.Update(context.Background(), func(tx Tx) error {
		if err := tx.CreatePackage(testPackage(specifier.KindRole, "triage", "pkg-1")); err != nil {
			return err
		}
		if err := tx.CreateVersion(testVersion("pkg-1", "ver-1", "1.0.0")); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	// Nothing committed.
	_, err = s.GetPackage(context.Background(), specifier.KindRole, "triage")
	require.ErrorIs(t, err, ErrPackageNotFound)
	_, err = s.GetVersionByID(context.Background(), "ver-1")
	require.ErrorIs(t, err, ErrVersionNotFound)
}

func TestMemStore_Update_ReadsSeeStagedWrites(t *testing.T) {
	t.Parallel()

	s := NewMemStore()

	err := s.Update(context.Background(), func(tx Tx) error {
		if err := tx.CreatePackage(testPackage(specifier.KindSkill, "web-search", "pkg-1")); err != nil {
			return err
		}
		pkg, err := tx.GetPackage(context.Background(), specifier.KindSkill, "web-search")
		if err != nil {
			return err
		}
		if err := tx.CreateVersion(testVersion(pkg.ID, "ver-1", "1.0.0")); err != nil {
			return err
		}
		vers, err := tx.ListVersions(context.Background(), pkg.ID)
		if err != nil {
			return err
		}
		require.Len(t, vers, 1)
		return nil
	})
	require.NoError(t, err)

	vers, err := s.ListVersions(context.Background(), "pkg-1")
	require.NoError(t, err)
	require.Len(t, vers, 1)
}

func TestMemStore_ConcurrentFirstPublish(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	const racers = 8

	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := range racers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Update(context.Background(), func(tx Tx) error {
				pkg := testPackage(specifier.KindSkill, "contested", "pkg-"+string(rune('a'+i)))
				if err := tx.CreatePackage(pkg); err != nil {
					return err
				}
				return tx.CreateVersion(testVersion(pkg.ID, "ver-"+string(rune('a'+i)), "1.0.0"))
			})
		}(i)
	}
	wg.Wait()

	var won int
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			require.ErrorIs(t, err, ErrSlugConflict)
		}
	}
	require.Equal(t, 1, won, "exactly one racer creates the package")
}

func TestMemStore_ListPackages(t *testing.T) {
	t.Parallel()

	s := NewMemStore()
	mustCreate(t, s, testPackage(specifier.KindSkill, "alpha", "pkg-1"))
	deleted := testPackage(specifier.KindRole, "beta", "pkg-2")
	ts := time.Now().UTC()
	deleted.SoftDeletedAt = &ts
	mustCreate(t, s, deleted)
	mustCreate(t, s, testPackage(specifier.KindRole, "gamma", "pkg-3"))

	pkgs, err := s.ListPackages(context.Background())
	require.NoError(t, err)
	require.Len(t, pkgs, 2)
	require.Equal(t, "alpha", pkgs[0].Slug)
	require.Equal(t, "gamma", pkgs[1].Slug)
}
