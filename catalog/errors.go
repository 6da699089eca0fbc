// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package catalog

import "errors"

// Sentinel errors returned by Store and Tx implementations. API handlers map
// these onto HTTP status codes in one place; everything in between just wraps
// them with fmt.Errorf("%w").
var (
	// ErrPackageNotFound means no package row exists for the given kind and slug.
	ErrPackageNotFound = errors.New("package not found")

	// ErrVersionNotFound means no version row exists for the given reference.
	ErrVersionNotFound = errors.New("version not found")

	// ErrSlugConflict means the slug is held by a non-deleted package of the
	// other kind. The slug namespace is shared across skills and roles.
	ErrSlugConflict = errors.New("slug already in use by a package of the other kind")

	// ErrNotOwner means the acting user does not own the package.
	ErrNotOwner = errors.New("not the package owner")

	// ErrPackageDeleted means the package exists but has been soft-deleted.
	ErrPackageDeleted = errors.New("package has been deleted")

	// ErrVersionExists means a version row with the same (package, version)
	// pair already exists, possibly soft-deleted.
	ErrVersionExists = errors.New("version already exists")

	// ErrVersionNotMonotonic means a supplied version does not exceed the
	// package's current latest version.
	ErrVersionNotMonotonic = errors.New("version must be greater than the current latest version")
)
