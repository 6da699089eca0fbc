// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2/content/oci"
	"oras.land/oras-go/v2/errdef"
)

// Store is local content-addressed blob storage backed by an OCI Image Layout.
type Store struct {
	root  string
	inner *oci.Store
}

// NewStore creates a blob store at the given root directory.
// The directory is initialized as an OCI Image Layout with blobs/,
// oci-layout, and index.json.
func NewStore(root string) (*Store, error) {
	inner, err := oci.New(root)
	if err != nil {
		return nil, fmt.Errorf("creating blob store at %s: %w", root, err)
	}
	return &Store{root: root, inner: inner}, nil
}

// StoreRoot returns the blob store root within the given data home directory.
// This is the injectable, testable form. For the standard XDG location, use
// DefaultStoreRoot.
func StoreRoot(dataHome string) string {
	return filepath.Join(dataHome, "skillmesh", "blobs")
}

// DefaultStoreRoot returns the default store root directory using XDG base
// directory conventions.
func DefaultStoreRoot() string {
	return StoreRoot(xdg.DataHome)
}

// PutBlob stores a blob and returns its digest. Storing content that already
// exists is a no-op.
func (s *Store) PutBlob(ctx context.Context, content []byte) (digest.Digest, error) {
	d := digest.FromBytes(content)
	desc := ocispec.Descriptor{
		MediaType: "application/octet-stream",
		Digest:    d,
		Size:      int64(len(content)),
	}

	if err := s.inner.Push(ctx, desc, bytes.NewReader(content)); err != nil {
		if errors.Is(err, errdef.ErrAlreadyExists) {
			return d, nil
		}
		return "", fmt.Errorf("writing blob: %w", err)
	}

	return d, nil
}

// GetBlob retrieves a blob by digest.
func (s *Store) GetBlob(ctx context.Context, d digest.Digest) ([]byte, error) {
	// oci.Store's Fetch only uses the Digest field to locate blobs in blobs/<algo>/<hex>.
	rc, err := s.inner.Fetch(ctx, ocispec.Descriptor{Digest: d})
	if err != nil {
		return nil, fmt.Errorf("blob not found: %s: %w", d, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", d, err)
	}
	return data, nil
}

// Exists reports whether a blob with the given digest is stored.
func (s *Store) Exists(ctx context.Context, d digest.Digest) (bool, error) {
	ok, err := s.inner.Exists(ctx, ocispec.Descriptor{Digest: d})
	if err != nil {
		return false, fmt.Errorf("checking blob %s: %w", d, err)
	}
	return ok, nil
}

// Root returns the store root directory.
func (s *Store) Root() string {
	return s.root
}
