// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/opencontainers/go-digest"

	"github.com/skillmesh/registry-core/catalog"
	"github.com/skillmesh/registry-core/filter"
	"github.com/skillmesh/registry-core/publish"
	"github.com/skillmesh/registry-core/recovery"
	"github.com/skillmesh/registry-core/resolver"
)

// Blobs is the content-addressed storage the server reads archives from and
// the publish path writes files to.
type Blobs interface {
	PutBlob(ctx context.Context, content []byte) (digest.Digest, error)
	GetBlob(ctx context.Context, d digest.Digest) ([]byte, error)
}

// Server wires the catalog, resolver, publisher, and blob store behind the
// HTTP surface.
type Server struct {
	store     catalog.Store
	blobs     Blobs
	resolver  *resolver.Resolver
	publisher *publish.Service
	filters   *filter.Engine
	logger    *slog.Logger
}

// NewServer creates a Server over the given store and blob storage.
// A nil logger disables request and panic logging.
func NewServer(store catalog.Store, blobs Blobs, logger *slog.Logger) *Server {
	return &Server{
		store:     store,
		blobs:     blobs,
		resolver:  resolver.New(store),
		publisher: publish.NewService(store, blobs),
		filters:   filter.NewEngine(),
		logger:    logger,
	}
}

// Handler returns the fully wired HTTP handler, middleware included.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/packages", s.handleListPackages)
	mux.HandleFunc("POST /v1/packages", s.handlePublish)
	mux.HandleFunc("GET /v1/skills/{slug}", s.handleGetSkill)
	mux.HandleFunc("GET /v1/roles/{slug}", s.handleGetRole)
	mux.HandleFunc("GET /v1/skills/{slug}/versions", s.handleListSkillVersions)
	mux.HandleFunc("GET /v1/roles/{slug}/versions", s.handleListRoleVersions)
	mux.HandleFunc("GET /v1/roles/{slug}/resolve", s.handleResolveRole)
	mux.HandleFunc("GET /v1/skills/{slug}/versions/{version}/archive", s.handleSkillArchive)
	mux.HandleFunc("GET /v1/roles/{slug}/versions/{version}/archive", s.handleRoleArchive)

	var handler http.Handler = mux
	handler = s.logRequests(handler)
	handler = recovery.Middleware(s.logger)(handler)
	return handler
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	if s.logger == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
		)
	})
}
