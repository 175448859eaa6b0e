// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"io/fs"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/coursehub/internal/config"
	"github.com/olegiv/coursehub/internal/middleware"
	"github.com/olegiv/coursehub/internal/model"
	"github.com/olegiv/coursehub/internal/render"
	"github.com/olegiv/coursehub/internal/service"
)

// RouterConfig carries everything the router needs. All fields except
// LoginProtection and Static are required.
type RouterConfig struct {
	DB              *sql.DB
	SessionManager  *scs.SessionManager
	Renderer        *render.Renderer
	Accounts        *service.AccountService
	Content         *service.ContentService
	QA              *service.QAService
	LoginProtection *middleware.LoginProtection
	CSRF            middleware.CSRFConfig
	Security        middleware.SecurityHeadersConfig
	Static          fs.FS
	Version         string
	// AccessLog enables chi's request logger.
	AccessLog bool
}

// NewRouter builds the chi router with the global middleware chain and
// every route.
func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.Accounts, cfg.Renderer, cfg.SessionManager)
	pagesHandler := NewPagesHandler(cfg.QA, cfg.Renderer)
	contentHandler := NewContentHandler(cfg.Content, cfg.Renderer)
	questionHandler := NewQuestionHandler(cfg.QA, cfg.Renderer)
	healthHandler := NewHealthHandler(cfg.DB, cfg.Content.UploadDir(), cfg.Version)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.AccessLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Use(middleware.SecurityHeaders(cfg.Security))
	r.Use(middleware.MaxBodySize(config.MaxRequestBodyBytes))

	if cfg.Static != nil {
		staticServer := http.StripPrefix("/static/", http.FileServerFS(cfg.Static))
		r.With(middleware.CacheControl("public, max-age=3600")).Handle(RouteStatic, staticServer)
	}

	r.Group(func(r chi.Router) {
		r.Use(cfg.SessionManager.LoadAndSave)
		r.Use(middleware.CSRF(cfg.CSRF))
		r.Use(middleware.LoadUser(cfg.SessionManager, cfg.Accounts))

		r.Get(RouteRoot, pagesHandler.Index)
		r.Get(RouteHealth, healthHandler.Health)

		// Guest-only pages.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RedirectIfAuthenticated)
			if cfg.LoginProtection != nil {
				r.Use(cfg.LoginProtection.Middleware())
			}

			r.Get(RouteRegister, authHandler.RegisterForm)
			r.Post(RouteRegister, authHandler.Register)
			r.Get(RouteLogin, authHandler.LoginForm)
			r.Post(RouteLogin, authHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth)

			r.Get(RouteLogout, authHandler.Logout)
			r.Get(RouteDashboard, pagesHandler.Dashboard)
			r.Get(RouteUploads, contentHandler.ServeFile)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(cfg.Renderer, model.RoleLecturer, MsgLecturersUploadOnly))
				r.Get(RouteUpload, contentHandler.UploadForm)
				r.Post(RouteUpload, contentHandler.Upload)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(cfg.Renderer, model.RoleStudent, MsgStudentsAskOnly))
				r.Get(RouteAskQuestion, questionHandler.AskForm)
				r.Post(RouteAskQuestion, questionHandler.Ask)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(cfg.Renderer, model.RoleLecturer, MsgLecturersAnswerOnly))
				r.Get(RouteAnswerQuestion, questionHandler.AnswerForm)
				r.Post(RouteAnswerQuestion, questionHandler.Answer)
			})
		})
	})

	return r
}
