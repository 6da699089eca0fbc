// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package resolver walks a role's declared dependencies transitively and
produces an ordered, de-duplicated installation list.

The walk is depth-first with explicit visiting/resolved sets keyed by
"<kind>:<slug>", so one resolution's state is fully isolated from concurrent
resolutions of other roots. Output is post-order: a dependency appears only
after all of its own transitive dependencies, which is a safe installation
order. Skills may depend only on skills; roles may depend on both.

Resolution is read-only and fail-fast. The first unresolved node aborts the
whole walk and partial results are discarded: a partial dependency set is
never safe to install.
*/
package resolver
