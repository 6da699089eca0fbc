// SPDX-FileCopyrightText: Copyright 2026 Skillmesh, Inc.
// SPDX-License-Identifier: Apache-2.0

package blob

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"
)

// gzipOSUnknown is the OS value for "unknown" in gzip headers (RFC 1952).
// Using this value keeps archives byte-identical across platforms.
const gzipOSUnknown = 255

// MaxExtractFileSize is the maximum size of a single extracted file (100MB).
// This prevents decompression bombs.
const MaxExtractFileSize = 100 * 1024 * 1024

// FileEntry is one file of an archive.
type FileEntry struct {
	// Path is the file's path within the archive.
	Path string
	// Content is the file content.
	Content []byte
}

// BuildArchive creates a reproducible tar.gz of the given files. Entries are
// sorted by path, all timestamps are set to epoch, and gzip headers are
// normalized, so the same input always yields identical bytes.
func BuildArchive(files []FileEntry, epoch time.Time) ([]byte, error) {
	if epoch.IsZero() {
		epoch = time.Unix(0, 0).UTC()
	}

	sorted := make([]FileEntry, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)
	for _, f := range sorted {
		hdr := &tar.Header{
			Name:     f.Path,
			Size:     int64(len(f.Content)),
			Mode:     0644,
			ModTime:  epoch,
			Typeflag: tar.TypeReg,
			Format:   tar.FormatPAX,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, fmt.Errorf("writing tar header for %s: %w", f.Path, err)
		}
		if _, err := tw.Write(f.Content); err != nil {
			return nil, fmt.Errorf("writing tar content for %s: %w", f.Path, err)
		}
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("closing tar writer: %w", err)
	}

	var gzBuf bytes.Buffer
	gw, err := gzip.NewWriterLevel(&gzBuf, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("creating gzip writer: %w", err)
	}
	gw.ModTime = epoch
	gw.Name = ""
	gw.Comment = ""
	gw.OS = gzipOSUnknown

	if _, err := gw.Write(tarBuf.Bytes()); err != nil {
		return nil, fmt.Errorf("compressing archive: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("closing gzip writer: %w", err)
	}

	return gzBuf.Bytes(), nil
}

// ExtractArchive extracts files from a tar.gz archive. It rejects symlinks,
// hardlinks, device entries, and paths containing traversal sequences.
func ExtractArchive(data []byte) ([]FileEntry, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating gzip reader: %w", err)
	}
	defer func() { _ = gr.Close() }()

	tr := tar.NewReader(gr)
	var files []FileEntry

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar header: %w", err)
		}

		if err := validateArchivePath(hdr.Name); err != nil {
			return nil, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			continue
		case tar.TypeSymlink, tar.TypeLink:
			return nil, fmt.Errorf("archive contains disallowed link type: %s", hdr.Name)
		case tar.TypeReg:
		default:
			return nil, fmt.Errorf("archive contains disallowed entry type %d: %s", hdr.Typeflag, hdr.Name)
		}

		if hdr.Size > MaxExtractFileSize {
			return nil, fmt.Errorf("file %s exceeds maximum size of %d bytes", hdr.Name, int64(MaxExtractFileSize))
		}

		content, err := io.ReadAll(io.LimitReader(tr, MaxExtractFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("reading tar content for %s: %w", hdr.Name, err)
		}
		if int64(len(content)) > MaxExtractFileSize {
			return nil, fmt.Errorf("file %s exceeds maximum size of %d bytes", hdr.Name, int64(MaxExtractFileSize))
		}

		files = append(files, FileEntry{Path: hdr.Name, Content: content})
	}

	return files, nil
}

// validateArchivePath checks that a tar entry path is safe.
func validateArchivePath(p string) error {
	// path.Clean resolves ".." segments; any remaining leading ".." means
	// the path escapes the archive root.
	cleaned := path.Clean(p)
	if strings.HasPrefix(cleaned, "..") {
		return fmt.Errorf("path traversal detected in archive: %s", p)
	}
	if path.IsAbs(cleaned) {
		return fmt.Errorf("absolute path not allowed in archive: %s", p)
	}
	return nil
}
