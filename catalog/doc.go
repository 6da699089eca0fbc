// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package catalog defines the registry's persistent data model and the store
contract the rest of the system is written against.

A Package is a skill or a role identified by a slug that is unique across
both kinds. Each publish appends an immutable PackageVersion; the Package row
tracks the latest version, tags, and running stats. Neither entity is ever
hard-deleted: soft-delete sets a timestamp and hides the row from queries and
resolution without freeing the slug for reuse by the same kind.

# Store Contract

The transactional document store itself is an external collaborator. This
package specifies it as the Store and Tx interfaces: plain snapshot reads
plus a serializable unit of work for the publish path. MemStore is the
in-process implementation used by the server binary and by tests.

# Versions

Version strings are stored in canonical "X.Y.Z" form. A package's versions
are listed in insertion order, which monotonic versioning makes ascending
semver order.
*/
package catalog
