// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/coursehub/internal/model"
	"github.com/olegiv/coursehub/internal/store"
	"github.com/olegiv/coursehub/internal/util"
)

// DefaultUploadDir is used when no upload root is configured.
const DefaultUploadDir = "./uploads"

// maxNameAttempts bounds the collision-suffix retries.
const maxNameAttempts = 5

// UploadInput is a validated upload request. File is nil when the client
// sent no file part.
type UploadInput struct {
	Title       string
	Description string
	ContentType string
	Filename    string
	File        io.Reader
}

// ContentService stores uploaded course files and their metadata.
type ContentService struct {
	db        *sql.DB
	queries   *store.Queries
	uploadDir string
}

// NewContentService creates a new content service.
func NewContentService(db *sql.DB, uploadDir string) *ContentService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	return &ContentService{
		db:        db,
		queries:   store.New(db),
		uploadDir: uploadDir,
	}
}

// UploadDir returns the upload root.
func (s *ContentService) UploadDir() string {
	return s.uploadDir
}

// EnsureDirs creates one subdirectory per content type under the upload root.
func (s *ContentService) EnsureDirs() error {
	for _, ct := range model.ContentTypes {
		if err := os.MkdirAll(filepath.Join(s.uploadDir, ct.Dir()), 0o755); err != nil {
			return fmt.Errorf("creating %s directory: %w", ct.Dir(), err)
		}
	}
	return nil
}

// Upload writes the file under <root>/<type>s/ and records it. An existing
// file is never overwritten; a short random suffix is added instead.
func (s *ContentService) Upload(ctx context.Context, lecturer store.User, in UploadInput) (store.Content, error) {
	if lecturer.Role != model.RoleLecturer {
		return store.Content{}, ErrForbidden
	}

	contentType, err := model.ParseContentType(in.ContentType)
	if err != nil {
		return store.Content{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return store.Content{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if in.File == nil || in.Filename == "" {
		return store.Content{}, ErrNoFile
	}

	filename := util.SecureFilename(in.Filename)
	if filename == "" {
		return store.Content{}, fmt.Errorf("%w: unusable filename %q", ErrInvalidInput, in.Filename)
	}
	if !contentType.Accepts(filename) {
		return store.Content{}, fmt.Errorf("%w: %s files must end in one of %s",
			ErrInvalidInput, contentType, strings.Join(contentType.Extensions(), ", "))
	}

	dir := filepath.Join(s.uploadDir, contentType.Dir())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return store.Content{}, fmt.Errorf("creating upload directory: %w", err)
	}

	out, stored, err := createUnique(dir, filename)
	if err != nil {
		return store.Content{}, err
	}
	path := filepath.Join(dir, stored)

	if _, err := io.Copy(out, in.File); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return store.Content{}, fmt.Errorf("writing file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return store.Content{}, fmt.Errorf("closing file: %w", err)
	}

	content, err := s.queries.CreateContent(ctx, store.CreateContentParams{
		Title:       title,
		Description: util.NullStringFromValue(in.Description),
		Filename:    stored,
		ContentType: contentType,
		UploadDate:  time.Now().UTC(),
		LecturerID:  lecturer.ID,
	})
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			slog.Warn("failed to remove orphaned upload", "path", path, "error", rmErr)
		}
		return store.Content{}, fmt.Errorf("creating content record: %w", err)
	}

	return content, nil
}

// Open returns the stored file for a content type and filename. Unknown
// types, unsafe names and missing files all return ErrNotFound.
func (s *ContentService) Open(contentTypeValue, filename string) (*os.File, fs.FileInfo, error) {
	contentType, err := model.ParseContentType(contentTypeValue)
	if err != nil {
		return nil, nil, ErrNotFound
	}
	if filename == "" || util.SecureFilename(filename) != filename {
		return nil, nil, ErrNotFound
	}

	path, err := util.SafeJoinPath(filepath.Join(s.uploadDir, contentType.Dir()), filename)
	if err != nil {
		return nil, nil, ErrNotFound
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, nil, ErrNotFound
	}

	return f, info, nil
}

// URL returns the retrieval path for a stored content item.
func URL(contentType model.ContentType, filename string) string {
	return "/uploads/" + contentType.String() + "/" + filename
}

// createUnique creates dir/name exclusively, falling back to name with a
// random suffix before the extension when the name is taken.
func createUnique(dir, name string) (*os.File, string, error) {
	candidate := name
	for range maxNameAttempts {
		f, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("creating file: %w", err)
		}
		// Re-secure so a device-name prefix cannot leave a name Open refuses.
		candidate = util.SecureFilename(withSuffix(name, uuid.NewString()[:8]))
	}
	return nil, "", fmt.Errorf("creating file: no free name for %q", name)
}

func withSuffix(name, suffix string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + suffix + ext
}
