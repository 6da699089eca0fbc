// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/skillmesh/registry-core/specifier"
)

// MemStore is an in-memory Store implementation.
//
// A single RWMutex provides the isolation contract: Update holds the write
// lock for the whole unit of work, so transactions are trivially serializable
// and readers never observe a partial application. Writes are staged in the
// transaction and only merged into the store's maps on commit.
type MemStore struct {
	mu sync.RWMutex

	// packages is keyed by "<kind>:<slug>". Soft-deleted rows stay in the
	// map; only a package of the other kind may reclaim a deleted slug, and
	// that replaces the row under the other kind's key.
	packages map[string]*Package
	// packagesByID indexes the same rows by id.
	packagesByID map[string]*Package
	// packageOrder preserves insertion order for listings.
	packageOrder []string

	// versions is keyed by package id, in insertion order.
	versions map[string][]*PackageVersion
	// versionsByID indexes version rows by id.
	versionsByID map[string]*PackageVersion
}

var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory catalog store.
func NewMemStore() *MemStore {
	return &MemStore{
		packages:     make(map[string]*Package),
		packagesByID: make(map[string]*Package),
		versions:     make(map[string][]*PackageVersion),
		versionsByID: make(map[string]*PackageVersion),
	}
}

func packageKey(kind specifier.Kind, slug string) string {
	return string(kind) + ":" + slug
}

// GetPackage implements Reader.
func (s *MemStore) GetPackage(_ context.Context, kind specifier.Kind, slug string) (*Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPackageLocked(kind, slug)
}

func (s *MemStore) getPackageLocked(kind specifier.Kind, slug string) (*Package, error) {
	pkg, ok := s.packages[packageKey(kind, slug)]
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", kind, slug, ErrPackageNotFound)
	}
	return clonePackage(pkg), nil
}

// GetVersion implements Reader.
func (s *MemStore) GetVersion(_ context.Context, packageID, version string) (*PackageVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getVersionLocked(packageID, version)
}

func (s *MemStore) getVersionLocked(packageID, version string) (*PackageVersion, error) {
	for _, v := range s.versions[packageID] {
		if v.Version == version {
			return cloneVersion(v), nil
		}
	}
	return nil, fmt.Errorf("%s@%s: %w", packageID, version, ErrVersionNotFound)
}

// GetVersionByID implements Reader.
func (s *MemStore) GetVersionByID(_ context.Context, versionID string) (*PackageVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getVersionByIDLocked(versionID)
}

func (s *MemStore) getVersionByIDLocked(versionID string) (*PackageVersion, error) {
	v, ok := s.versionsByID[versionID]
	if !ok {
		return nil, fmt.Errorf("version id %q: %w", versionID, ErrVersionNotFound)
	}
	return cloneVersion(v), nil
}

// ListVersions implements Reader.
func (s *MemStore) ListVersions(_ context.Context, packageID string) ([]*PackageVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listVersionsLocked(packageID), nil
}

func (s *MemStore) listVersionsLocked(packageID string) []*PackageVersion {
	var out []*PackageVersion
	for _, v := range s.versions[packageID] {
		if v.Deleted() {
			continue
		}
		out = append(out, cloneVersion(v))
	}
	return out
}

// ListPackages implements Reader.
func (s *MemStore) ListPackages(_ context.Context) ([]*Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listPackagesLocked(), nil
}

func (s *MemStore) listPackagesLocked() []*Package {
	var out []*Package
	for _, key := range s.packageOrder {
		pkg, ok := s.packages[key]
		if !ok || pkg.Deleted() {
			continue
		}
		out = append(out, clonePackage(pkg))
	}
	return out
}

// Update implements Store. fn's writes are staged in the transaction and
// merged into the store only when fn returns nil.
func (s *MemStore) Update(_ context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		store:       s,
		stagedPkgs:  make(map[string]*Package),
		stagedByID:  make(map[string]*Package),
		stagedVers:  make(map[string][]*PackageVersion),
		stagedVByID: make(map[string]*PackageVersion),
	}

	if err := fn(tx); err != nil {
		return err
	}

	tx.commit()
	return nil
}

// memTx stages writes on top of a locked MemStore.
type memTx struct {
	store *MemStore

	stagedPkgs  map[string]*Package
	stagedByID  map[string]*Package
	stagedOrder []string
	stagedVers  map[string][]*PackageVersion
	stagedVByID map[string]*PackageVersion
}

var _ Tx = (*memTx)(nil)

func (t *memTx) GetPackage(_ context.Context, kind specifier.Kind, slug string) (*Package, error) {
	if pkg, ok := t.stagedPkgs[packageKey(kind, slug)]; ok {
		return clonePackage(pkg), nil
	}
	return t.store.getPackageLocked(kind, slug)
}

func (t *memTx) GetVersion(_ context.Context, packageID, version string) (*PackageVersion, error) {
	for _, v := range t.stagedVers[packageID] {
		if v.Version == version {
			return cloneVersion(v), nil
		}
	}
	return t.store.getVersionLocked(packageID, version)
}

func (t *memTx) GetVersionByID(_ context.Context, versionID string) (*PackageVersion, error) {
	if v, ok := t.stagedVByID[versionID]; ok {
		return cloneVersion(v), nil
	}
	return t.store.getVersionByIDLocked(versionID)
}

func (t *memTx) ListVersions(_ context.Context, packageID string) ([]*PackageVersion, error) {
	out := t.store.listVersionsLocked(packageID)
	for _, v := range t.stagedVers[packageID] {
		if !v.Deleted() {
			out = append(out, cloneVersion(v))
		}
	}
	return out, nil
}

func (t *memTx) ListPackages(_ context.Context) ([]*Package, error) {
	out := t.store.listPackagesLocked()
	for _, key := range t.stagedOrder {
		if pkg, ok := t.stagedPkgs[key]; ok && !pkg.Deleted() {
			out = append(out, clonePackage(pkg))
		}
	}
	return out, nil
}

func (t *memTx) CreatePackage(pkg *Package) error {
	// Same-kind uniqueness, then cross-kind exclusivity over non-deleted rows.
	if _, err := t.GetPackage(context.Background(), pkg.Kind, pkg.Slug); err == nil {
		return fmt.Errorf("%s %q: %w", pkg.Kind, pkg.Slug, ErrSlugConflict)
	}
	other := specifier.KindSkill
	if pkg.Kind == specifier.KindSkill {
		other = specifier.KindRole
	}
	if existing, err := t.GetPackage(context.Background(), other, pkg.Slug); err == nil && !existing.Deleted() {
		return fmt.Errorf("%s %q held by %s: %w", pkg.Kind, pkg.Slug, other, ErrSlugConflict)
	}

	key := packageKey(pkg.Kind, pkg.Slug)
	cloned := clonePackage(pkg)
	t.stagedPkgs[key] = cloned
	t.stagedByID[pkg.ID] = cloned
	t.stagedOrder = append(t.stagedOrder, key)
	return nil
}

func (t *memTx) PutPackage(pkg *Package) error {
	if _, staged := t.stagedByID[pkg.ID]; !staged {
		if _, ok := t.store.packagesByID[pkg.ID]; !ok {
			return fmt.Errorf("package id %q: %w", pkg.ID, ErrPackageNotFound)
		}
	}
	key := packageKey(pkg.Kind, pkg.Slug)
	cloned := clonePackage(pkg)
	t.stagedPkgs[key] = cloned
	t.stagedByID[pkg.ID] = cloned
	return nil
}

func (t *memTx) CreateVersion(v *PackageVersion) error {
	// Uniqueness spans soft-deleted rows: a deleted version number is never reused.
	for _, existing := range t.store.versions[v.PackageID] {
		if existing.Version == v.Version {
			return fmt.Errorf("%s@%s: %w", v.PackageID, v.Version, ErrVersionExists)
		}
	}
	for _, staged := range t.stagedVers[v.PackageID] {
		if staged.Version == v.Version {
			return fmt.Errorf("%s@%s: %w", v.PackageID, v.Version, ErrVersionExists)
		}
	}

	cloned := cloneVersion(v)
	t.stagedVers[v.PackageID] = append(t.stagedVers[v.PackageID], cloned)
	t.stagedVByID[v.ID] = cloned
	return nil
}

// commit merges staged writes into the store. Caller holds the write lock.
func (t *memTx) commit() {
	s := t.store
	for _, key := range t.stagedOrder {
		s.packageOrder = append(s.packageOrder, key)
	}
	for key, pkg := range t.stagedPkgs {
		s.packages[key] = pkg
		s.packagesByID[pkg.ID] = pkg
	}
	for pkgID, vers := range t.stagedVers {
		s.versions[pkgID] = append(s.versions[pkgID], vers...)
		for _, v := range vers {
			s.versionsByID[v.ID] = v
		}
	}
}

func clonePackage(p *Package) *Package {
	out := *p
	if p.Tags != nil {
		out.Tags = make(map[string]string, len(p.Tags))
		for k, v := range p.Tags {
			out.Tags[k] = v
		}
	}
	if p.SoftDeletedAt != nil {
		ts := *p.SoftDeletedAt
		out.SoftDeletedAt = &ts
	}
	return &out
}

func cloneVersion(v *PackageVersion) *PackageVersion {
	out := *v
	out.Files = slices.Clone(v.Files)
	out.Dependencies.Skills = slices.Clone(v.Dependencies.Skills)
	out.Dependencies.Roles = slices.Clone(v.Dependencies.Roles)
	if v.ParsedMetadata != nil {
		out.ParsedMetadata = make(map[string]any, len(v.ParsedMetadata))
		for k, val := range v.ParsedMetadata {
			out.ParsedMetadata[k] = val
		}
	}
	if v.SoftDeletedAt != nil {
		ts := *v.SoftDeletedAt
		out.SoftDeletedAt = &ts
	}
	return &out
}
