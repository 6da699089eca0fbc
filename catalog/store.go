// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package catalog

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

import (
	"context"

	"github.com/skillmesh/registry-core/specifier"
)

// Reader provides snapshot reads of catalog data.
//
// Lookups return rows with SoftDeletedAt populated rather than filtering
// them out: the publish path must distinguish "absent" from "deleted", so
// the filtering policy belongs to callers. ListVersions is the exception
// and returns only non-deleted versions, in insertion order.
type Reader interface {
	// GetPackage returns the package with the given kind and slug, deleted
	// or not. Returns ErrPackageNotFound if no row exists.
	GetPackage(ctx context.Context, kind specifier.Kind, slug string) (*Package, error)

	// GetVersion returns the version row for (packageID, version), deleted
	// or not. Returns ErrVersionNotFound if no row exists.
	GetVersion(ctx context.Context, packageID, version string) (*PackageVersion, error)

	// GetVersionByID returns a version row by its id.
	// Returns ErrVersionNotFound if no row exists.
	GetVersionByID(ctx context.Context, versionID string) (*PackageVersion, error)

	// ListVersions returns the package's non-deleted versions in insertion
	// order. An unknown packageID yields an empty list, not an error.
	ListVersions(ctx context.Context, packageID string) ([]*PackageVersion, error)

	// ListPackages returns all non-deleted packages in insertion order.
	ListPackages(ctx context.Context) ([]*Package, error)
}

// Tx is the unit of work acquired by Store.Update. Reads within the
// transaction observe earlier writes of the same transaction.
type Tx interface {
	Reader

	// CreatePackage inserts a new package row. Returns ErrSlugConflict if a
	// non-deleted package of either kind already holds the slug.
	CreatePackage(pkg *Package) error

	// PutPackage replaces an existing package row, keyed by id.
	PutPackage(pkg *Package) error

	// CreateVersion inserts a new version row. Returns ErrVersionExists if a
	// row for (PackageID, Version) already exists, soft-deleted or not.
	CreateVersion(v *PackageVersion) error
}

// Store is the transactional catalog store contract.
//
// Update runs fn inside a serializable unit of work: either every write fn
// performs is applied atomically, or (when fn returns an error) none is.
// No concurrent reader may observe a partial application.
type Store interface {
	Reader

	// Update executes fn within a transaction and commits its writes iff fn
	// returns nil.
	Update(ctx context.Context, fn func(tx Tx) error) error
}
