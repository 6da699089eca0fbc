// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/opencontainers/go-digest"

	"github.com/skillmesh/registry-core/blob"
	"github.com/skillmesh/registry-core/catalog"
	"github.com/skillmesh/registry-core/httperr"
	"github.com/skillmesh/registry-core/publish"
	"github.com/skillmesh/registry-core/resolver"
	"github.com/skillmesh/registry-core/specifier"
	"github.com/skillmesh/registry-core/validation/httpmeta"
)

// maxPublishMemory bounds in-memory multipart parsing. Individual file
// limits are enforced downstream by the publish service.
const maxPublishMemory = 64 << 20

type listPackagesResponse struct {
	Packages []*catalog.Package `json:"packages"`
}

type listVersionsResponse struct {
	Versions []*catalog.PackageVersion `json:"versions"`
}

type resolveResponse struct {
	Slug         string              `json:"slug"`
	Version      string              `json:"version"`
	Dependencies []resolver.Resolved `json:"dependencies"`
}

func (s *Server) handleListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := s.store.ListPackages(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	if expr := r.URL.Query().Get("filter"); expr != "" {
		f, err := s.filters.Compile(expr)
		if err != nil {
			s.respondError(w, err)
			return
		}
		kept := packages[:0]
		for _, pkg := range packages {
			match, err := f.Match(pkg)
			if err != nil {
				s.respondError(w, httperr.WithCode(err, http.StatusBadRequest))
				return
			}
			if match {
				kept = append(kept, pkg)
			}
		}
		packages = kept
	}

	if packages == nil {
		packages = []*catalog.Package{}
	}
	s.writeJSON(w, http.StatusOK, listPackagesResponse{Packages: packages})
}

func (s *Server) handleGetSkill(w http.ResponseWriter, r *http.Request) {
	s.handleGetPackage(w, r, specifier.KindSkill)
}

func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	s.handleGetPackage(w, r, specifier.KindRole)
}

func (s *Server) handleGetPackage(w http.ResponseWriter, r *http.Request, kind specifier.Kind) {
	pkg, err := s.livePackage(r, kind)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pkg)
}

func (s *Server) handleListSkillVersions(w http.ResponseWriter, r *http.Request) {
	s.handleListVersions(w, r, specifier.KindSkill)
}

func (s *Server) handleListRoleVersions(w http.ResponseWriter, r *http.Request) {
	s.handleListVersions(w, r, specifier.KindRole)
}

func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request, kind specifier.Kind) {
	pkg, err := s.livePackage(r, kind)
	if err != nil {
		s.respondError(w, err)
		return
	}
	versions, err := s.store.ListVersions(r.Context(), pkg.ID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if versions == nil {
		versions = []*catalog.PackageVersion{}
	}
	s.writeJSON(w, http.StatusOK, listVersionsResponse{Versions: versions})
}

func (s *Server) handleResolveRole(w http.ResponseWriter, r *http.Request) {
	pkg, err := s.livePackage(r, specifier.KindRole)
	if err != nil {
		s.respondError(w, err)
		return
	}

	latest, err := s.store.GetVersionByID(r.Context(), pkg.LatestVersionID)
	if err != nil {
		s.respondError(w, err)
		return
	}

	resolved, err := s.resolver.Resolve(r.Context(), pkg, latest.Dependencies)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, resolveResponse{
		Slug:         pkg.Slug,
		Version:      latest.Version,
		Dependencies: resolved,
	})
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	actor, err := httpmeta.ParseBearerActor(r.Header.Get("Authorization"))
	if err != nil {
		s.respondError(w, httperr.WithCode(err, http.StatusUnauthorized))
		return
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		s.respondError(w, httperr.New("expected multipart/form-data", http.StatusUnsupportedMediaType))
		return
	}
	if err := r.ParseMultipartForm(maxPublishMemory); err != nil {
		s.respondError(w, httperr.WithCode(fmt.Errorf("parsing multipart form: %w", err), http.StatusBadRequest))
		return
	}

	req, err := s.publishRequest(r, actor)
	if err != nil {
		s.respondError(w, err)
		return
	}

	result, err := s.publisher.Publish(r.Context(), *req)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, result)
}

// publishRequest assembles a publish.Request from a parsed multipart form.
func (s *Server) publishRequest(r *http.Request, actor string) (*publish.Request, error) {
	req := &publish.Request{
		ActorID:     actor,
		Kind:        specifier.Kind(r.FormValue("kind")),
		Slug:        r.FormValue("slug"),
		DisplayName: r.FormValue("displayName"),
		Version:     r.FormValue("version"),
		Changelog:   r.FormValue("changelog"),
		CustomTags:  r.Form["customTags"],
	}

	if raw := r.FormValue("dependencies"); raw != "" {
		if err := ValidateDependenciesJSON([]byte(raw)); err != nil {
			return nil, httperr.WithCode(err, http.StatusBadRequest)
		}
		var deps specifier.DependencyLists
		if err := json.Unmarshal([]byte(raw), &deps); err != nil {
			return nil, httperr.WithCode(fmt.Errorf("parsing dependencies: %w", err), http.StatusBadRequest)
		}
		req.Dependencies = &deps
	}

	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("opening uploaded file %q: %w", header.Filename, err)
		}
		content, err := io.ReadAll(io.LimitReader(f, publish.MaxFileSize+1))
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading uploaded file %q: %w", header.Filename, err)
		}
		req.Files = append(req.Files, publish.File{
			Path:    header.Filename,
			Content: content,
		})
	}

	return req, nil
}

func (s *Server) handleSkillArchive(w http.ResponseWriter, r *http.Request) {
	s.handleArchive(w, r, specifier.KindSkill)
}

func (s *Server) handleRoleArchive(w http.ResponseWriter, r *http.Request) {
	s.handleArchive(w, r, specifier.KindRole)
}

// handleArchive streams a deterministic tar.gz of one version's files.
func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request, kind specifier.Kind) {
	pkg, err := s.livePackage(r, kind)
	if err != nil {
		s.respondError(w, err)
		return
	}

	version, err := s.store.GetVersion(r.Context(), pkg.ID, r.PathValue("version"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	if version.Deleted() {
		s.respondError(w, httperr.WithCode(catalog.ErrVersionNotFound, http.StatusNotFound))
		return
	}

	entries := make([]blob.FileEntry, 0, len(version.Files))
	for _, ref := range version.Files {
		content, err := s.blobs.GetBlob(r.Context(), digest.Digest(ref.ContentRef))
		if err != nil {
			s.respondError(w, fmt.Errorf("reading blob for %s: %w", ref.Path, err))
			return
		}
		entries = append(entries, blob.FileEntry{Path: ref.Path, Content: content})
	}

	archive, err := blob.BuildArchive(entries, version.CreatedAt)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.countDownload(r.Context(), pkg)

	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s-%s.tar.gz", pkg.Slug, version.Version)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(archive); err != nil && s.logger != nil {
		s.logger.Error("writing archive", "error", err)
	}
}

// countDownload bumps the package's download counter. Counting is best
// effort and never fails the download itself.
func (s *Server) countDownload(ctx context.Context, pkg *catalog.Package) {
	err := s.store.Update(ctx, func(tx catalog.Tx) error {
		current, err := tx.GetPackage(ctx, pkg.Kind, pkg.Slug)
		if err != nil {
			return err
		}
		current.Stats.Downloads++
		return tx.PutPackage(current)
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("counting download", "slug", pkg.Slug, "error", err)
	}
}

// livePackage loads the package named in the request path and hides
// soft-deleted rows behind a 404.
func (s *Server) livePackage(r *http.Request, kind specifier.Kind) (*catalog.Package, error) {
	pkg, err := s.store.GetPackage(r.Context(), kind, r.PathValue("slug"))
	if err != nil {
		return nil, err
	}
	if pkg.Deleted() {
		return nil, httperr.WithCode(catalog.ErrPackageNotFound, http.StatusNotFound)
	}
	return pkg, nil
}
