// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package blob provides content-addressed storage for uploaded package files,
backed by an OCI image layout on local disk.

Every uploaded file is stored once under its SHA-256 digest; version records
reference blobs by digest, so identical content across versions and packages
is deduplicated for free and a stored file can never change under a
reference.

# Basic Usage

	store, err := blob.NewStore(blob.DefaultStoreRoot())
	d, err := store.PutBlob(ctx, content)
	data, err := store.GetBlob(ctx, d)

# Archives

The package also builds reproducible tar.gz archives of a version's files
for download endpoints. Archives are deterministic: fixed epoch timestamps,
sorted entries, and normalized gzip headers, so the same version always
yields byte-identical bytes.
*/
package blob
