// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

// Command registryd runs the Skillmesh registry HTTP server.
//
// All configuration comes from SKILLMESH_* environment variables; see the
// env package for the full list.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillmesh/registry-core/api"
	"github.com/skillmesh/registry-core/blob"
	"github.com/skillmesh/registry-core/catalog"
	"github.com/skillmesh/registry-core/env"
	"github.com/skillmesh/registry-core/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "registryd:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := env.Load(&env.OSReader{})
	if err != nil {
		return err
	}

	logger := logging.New(
		logging.WithFormat(cfg.LogFormat),
		logging.WithLevel(cfg.LogLevel),
	)

	blobRoot := cfg.BlobRoot
	if blobRoot == "" {
		blobRoot = blob.DefaultStoreRoot()
	}
	blobs, err := blob.NewStore(blobRoot)
	if err != nil {
		return fmt.Errorf("opening blob store at %s: %w", blobRoot, err)
	}

	server := api.NewServer(catalog.NewMemStore(), blobs, logger)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr, "blobRoot", blobRoot)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
