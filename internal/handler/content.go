// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/coursehub/internal/middleware"
	"github.com/olegiv/coursehub/internal/render"
	"github.com/olegiv/coursehub/internal/service"
)

// ContentHandler handles lecturer uploads and file retrieval.
type ContentHandler struct {
	content  *service.ContentService
	renderer *render.Renderer
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(content *service.ContentService, renderer *render.Renderer) *ContentHandler {
	return &ContentHandler{
		content:  content,
		renderer: renderer,
	}
}

// UploadForm renders the upload page.
func (h *ContentHandler) UploadForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, "upload", render.TemplateData{
		Title: "Upload content",
		User:  middleware.GetUser(r),
	})
}

// Upload handles the multipart upload submission.
func (h *ContentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isTooLarge(err) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		slog.Warn("failed to parse multipart form", "error", err, "user_id", user.ID)
		flashError(w, r, h.renderer, RouteUpload, MsgInvalidForm)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	form := newUploadForm(r)
	if msg := validateForm(form); msg != "" {
		flashError(w, r, h.renderer, RouteUpload, msg)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			flashError(w, r, h.renderer, RouteUpload, MsgNoFile)
			return
		}
		logAndInternalError(w, "failed to read uploaded file", "error", err)
		return
	}
	defer func() { _ = file.Close() }()

	content, err := h.content.Upload(r.Context(), *user, service.UploadInput{
		Title:       form.Title,
		Description: form.Description,
		ContentType: form.ContentType,
		Filename:    header.Filename,
		File:        file,
	})
	switch {
	case errors.Is(err, service.ErrForbidden):
		flashError(w, r, h.renderer, RouteDashboard, MsgLecturersUploadOnly)
	case errors.Is(err, service.ErrNoFile):
		flashError(w, r, h.renderer, RouteUpload, MsgNoFile)
	case errors.Is(err, service.ErrInvalidInput):
		flashError(w, r, h.renderer, RouteUpload, inputMessage(err, MsgInvalidForm))
	case err != nil:
		if isTooLarge(err) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		logAndInternalError(w, "failed to store upload", "error", err, "user_id", user.ID)
	default:
		slog.Info("content uploaded",
			"content_id", content.ID,
			"content_type", content.ContentType,
			"filename", content.Filename,
			"user_id", user.ID,
		)
		flashSuccess(w, r, h.renderer, RouteDashboard, MsgUploaded)
	}
}

// ServeFile streams a stored upload to any logged-in user.
func (h *ContentHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	f, info, err := h.content.Open(chi.URLParam(r, paramContentType), chi.URLParam(r, paramFilename))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to open upload", "error", err)
		return
	}
	defer func() { _ = f.Close() }()

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
