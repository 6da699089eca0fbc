// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package resolver

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_catalog.go -package=mocks

import (
	"context"

	"github.com/skillmesh/registry-core/catalog"
	"github.com/skillmesh/registry-core/specifier"
)

// Catalog is the read-only slice of the catalog store the resolver needs.
// catalog.Store satisfies it.
type Catalog interface {
	// GetPackage returns the package with the given kind and slug, deleted
	// or not. Returns catalog.ErrPackageNotFound if no row exists.
	GetPackage(ctx context.Context, kind specifier.Kind, slug string) (*catalog.Package, error)

	// GetVersionByID returns a version row by id.
	GetVersionByID(ctx context.Context, versionID string) (*catalog.PackageVersion, error)

	// ListVersions returns a package's non-deleted versions in the catalog's
	// natural listing order.
	ListVersions(ctx context.Context, packageID string) ([]*catalog.PackageVersion, error)
}
