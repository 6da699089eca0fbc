// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package filter evaluates CEL expressions against catalog packages, powering
server-side filtering of package listings.

Filter expressions see a fixed set of variables describing one package:

	kind        string  "skill" or "role"
	slug        string
	displayName string
	downloads   int
	stars       int
	versions    int
	tags        list of tag names pointing at some version

An expression must evaluate to a boolean:

	eng := filter.NewEngine()
	f, err := eng.Compile(`kind == "skill" && downloads > 100`)
	if err != nil {
	    // bad expression, report to the caller
	}
	keep, err := f.Match(pkg)

# Limits

Expressions are bounded in length and runtime cost so an untrusted query
cannot stall the server. The defaults suit API query parameters; see
WithMaxExpressionLength and WithCostLimit.

# Concurrency

Engine and Filter are safe for concurrent use. A compiled filter can be
matched against many packages from many goroutines at once.
*/
package filter
