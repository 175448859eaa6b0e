// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/coursehub/internal/middleware"
	"github.com/olegiv/coursehub/internal/model"
	"github.com/olegiv/coursehub/internal/render"
	"github.com/olegiv/coursehub/internal/service"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	accounts       *service.AccountService
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *service.AccountService, renderer *render.Renderer, sm *scs.SessionManager) *AuthHandler {
	return &AuthHandler{
		accounts:       accounts,
		renderer:       renderer,
		sessionManager: sm,
	}
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, "register", render.TemplateData{Title: "Register"})
}

// Register handles the registration form submission.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteRegister) {
		return
	}

	form := newRegisterForm(r)
	if msg := validateForm(form); msg != "" {
		flashError(w, r, h.renderer, RouteRegister, msg)
		return
	}

	user, err := h.accounts.Register(r.Context(), service.RegisterInput{
		Email:    form.Email,
		Password: form.Password,
		Name:     form.Name,
		Role:     model.Role(form.Role),
	})
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		flashError(w, r, h.renderer, RouteRegister, MsgEmailTaken)
	case errors.Is(err, service.ErrInvalidInput):
		flashError(w, r, h.renderer, RouteRegister, inputMessage(err, MsgInvalidForm))
	case err != nil:
		logAndInternalError(w, "failed to register user", "error", err)
	default:
		slog.Info("user registered", "user_id", user.ID, "role", user.Role)
		flashSuccess(w, r, h.renderer, RouteLogin, MsgRegistered)
	}
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, "login", render.TemplateData{Title: "Log in"})
}

// Login handles the login form submission. Unknown emails and wrong
// passwords get the same notice.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteLogin) {
		return
	}

	form := newLoginForm(r)
	if validateForm(form) != "" {
		flashError(w, r, h.renderer, RouteLogin, MsgInvalidCredentials)
		return
	}

	user, err := h.accounts.Authenticate(r.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			slog.Debug("failed login attempt", "email", service.NormalizeEmail(form.Email))
			flashError(w, r, h.renderer, RouteLogin, MsgInvalidCredentials)
			return
		}
		logAndInternalError(w, "failed to authenticate user", "error", err)
		return
	}

	// Renew the token to prevent session fixation.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "failed to renew session token", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "role", user.Role)
	http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
}

// Logout destroys the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		logAndInternalError(w, "failed to destroy session", "error", err)
		return
	}

	slog.Info("user logged out", "user_id", userID)
	http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
}
