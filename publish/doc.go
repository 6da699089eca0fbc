// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package publish implements the registry's only mutating path: validating and
committing a new package version.

A publish validates the request's slug, files, and declared dependencies,
stores file contents in blob storage, and then applies all catalog writes
(package create-or-update plus version insert) inside a single unit of work.
Either the whole publish is visible or none of it is.

Dependency pre-flight checks direct dependencies only; transitive soundness
is the resolver's concern at resolve time. Unlike the resolver, the
pre-flight does not fail fast: every violation is collected so the publisher
sees the complete set of problems in one round trip.
*/
package publish
