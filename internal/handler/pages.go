// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/olegiv/coursehub/internal/middleware"
	"github.com/olegiv/coursehub/internal/render"
	"github.com/olegiv/coursehub/internal/service"
)

// PagesHandler serves the landing page and the dashboard.
type PagesHandler struct {
	qa       *service.QAService
	renderer *render.Renderer
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(qa *service.QAService, renderer *render.Renderer) *PagesHandler {
	return &PagesHandler{
		qa:       qa,
		renderer: renderer,
	}
}

// Index renders the landing page.
func (h *PagesHandler) Index(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, "index", render.TemplateData{
		Title: "Home",
		User:  middleware.GetUser(r),
	})
}

// Dashboard renders the role-dependent view of contents and questions.
func (h *PagesHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	dashboard, err := h.qa.Dashboard(r.Context(), *user)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			logAndHTTPError(w, http.StatusText(http.StatusForbidden), http.StatusForbidden,
				"dashboard requested with unknown role", "user_id", user.ID, "role", user.Role)
			return
		}
		logAndInternalError(w, "failed to load dashboard", "error", err, "user_id", user.ID)
		return
	}

	renderPage(w, r, h.renderer, "dashboard", render.TemplateData{
		Title: "Dashboard",
		User:  user,
		Data:  dashboard,
	})
}
