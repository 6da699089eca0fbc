// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillmesh/registry-core/catalog"
	"github.com/skillmesh/registry-core/semver"
	"github.com/skillmesh/registry-core/specifier"
)

// Resolved is one entry of a resolution list: a dependency pinned to the
// version the walk selected for it.
type Resolved struct {
	Kind    specifier.Kind `json:"kind"`
	Slug    string         `json:"slug"`
	Version string         `json:"version"`
}

// Resolver resolves dependency graphs against a catalog.
// It is stateless and safe for concurrent use; each Resolve call carries its
// own visited-set state.
type Resolver struct {
	catalog Catalog
}

// New creates a resolver over the given catalog.
func New(cat Catalog) *Resolver {
	return &Resolver{catalog: cat}
}

// Resolve walks the root role's declared dependencies and returns the full
// transitive set in post-order. The root itself is not part of the result.
//
// Dependency lookups happen synchronously during the walk against whatever
// catalog state each read observes; the resolver takes no locks.
func (r *Resolver) Resolve(ctx context.Context, root *catalog.Package, deps specifier.DependencyLists) ([]Resolved, error) {
	walk := &walker{
		catalog:  r.catalog,
		visiting: make(map[string]bool),
		resolved: make(map[string]bool),
	}
	// Seed the root so any chain leading back to it is reported as a cycle.
	walk.visiting[string(root.Kind)+":"+root.Slug] = true

	if err := walk.visitAll(ctx, deps, true); err != nil {
		return nil, err
	}
	if walk.out == nil {
		return []Resolved{}, nil
	}
	return walk.out, nil
}

// walker holds one resolution's mutable state.
type walker struct {
	catalog  Catalog
	visiting map[string]bool
	resolved map[string]bool
	out      []Resolved
}

// visitAll visits a node's declared dependencies. Role dependencies are only
// followed when the node itself is a role.
func (w *walker) visitAll(ctx context.Context, deps specifier.DependencyLists, fromRole bool) error {
	for _, raw := range deps.Skills {
		if err := w.visit(ctx, raw, specifier.KindSkill); err != nil {
			return err
		}
	}
	if !fromRole {
		return nil
	}
	for _, raw := range deps.Roles {
		if err := w.visit(ctx, raw, specifier.KindRole); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) visit(ctx context.Context, raw string, kind specifier.Kind) error {
	spec, err := specifier.Parse(raw)
	if err != nil {
		return err
	}
	// Bucketed role entries carry no "role:" prefix; the bucket decides.
	spec.Kind = kind

	key := spec.Key()
	if w.resolved[key] {
		return nil
	}
	if w.visiting[key] {
		return &CircularDependencyError{Slug: spec.Slug}
	}
	w.visiting[key] = true

	pkg, err := w.catalog.GetPackage(ctx, spec.Kind, spec.Slug)
	switch {
	case errors.Is(err, catalog.ErrPackageNotFound):
		return &NotFoundError{Kind: spec.Kind, Slug: spec.Slug}
	case err != nil:
		return fmt.Errorf("looking up %s %q: %w", spec.Kind, spec.Slug, err)
	case pkg.Deleted():
		return &NotFoundError{Kind: spec.Kind, Slug: spec.Slug}
	}

	version, err := w.selectVersion(ctx, pkg, spec)
	if err != nil {
		return err
	}

	if err := w.visitAll(ctx, version.Dependencies, spec.Kind == specifier.KindRole); err != nil {
		return err
	}

	delete(w.visiting, key)
	w.resolved[key] = true
	w.out = append(w.out, Resolved{Kind: spec.Kind, Slug: spec.Slug, Version: version.Version})
	return nil
}

// selectVersion picks the version a specifier resolves to: the package's
// current latest for "latest" specifiers, otherwise the first satisfying
// version in the catalog's natural listing order.
func (w *walker) selectVersion(ctx context.Context, pkg *catalog.Package, spec specifier.Spec) (*catalog.PackageVersion, error) {
	if spec.Operator == specifier.OpLatest {
		if pkg.LatestVersionID == "" {
			return nil, &NoSatisfyingVersionError{Kind: spec.Kind, Slug: spec.Slug, Spec: spec.String()}
		}
		version, err := w.catalog.GetVersionByID(ctx, pkg.LatestVersionID)
		if err != nil || version.Deleted() {
			return nil, &NoSatisfyingVersionError{Kind: spec.Kind, Slug: spec.Slug, Spec: spec.String()}
		}
		return version, nil
	}

	versions, err := w.catalog.ListVersions(ctx, pkg.ID)
	if err != nil {
		return nil, fmt.Errorf("listing versions of %s %q: %w", spec.Kind, spec.Slug, err)
	}
	for _, version := range versions {
		ok, err := semver.Satisfies(version.Version, spec)
		if err != nil {
			// Malformed version data is a hard error, not an unsatisfied spec.
			return nil, err
		}
		if ok {
			return version, nil
		}
	}
	return nil, &NoSatisfyingVersionError{Kind: spec.Kind, Slug: spec.Slug, Spec: spec.String()}
}
