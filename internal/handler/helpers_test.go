// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/coursehub/internal/middleware"
	"github.com/olegiv/coursehub/internal/render"
	"github.com/olegiv/coursehub/internal/service"
	"github.com/olegiv/coursehub/internal/session"
	"github.com/olegiv/coursehub/internal/testutil"
	"github.com/olegiv/coursehub/web"
)

// testApp is the full router backed by a temporary database and upload root.
type testApp struct {
	t         *testing.T
	db        *sql.DB
	uploadDir string
	router    http.Handler
	server    *httptest.Server
}

type appOption func(*RouterConfig)

func withLoginProtection(cfg middleware.LoginProtectionConfig) appOption {
	return func(rc *RouterConfig) {
		rc.LoginProtection = middleware.NewLoginProtection(cfg, rc.Renderer)
	}
}

func newTestApp(t *testing.T, opts ...appOption) *testApp {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	sm := session.New(db, nil, true)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sm,
		IsDev:          true,
	})
	require.NoError(t, err)

	uploadDir := t.TempDir()
	content := service.NewContentService(db, uploadDir)
	require.NoError(t, content.EnsureDirs())

	cfg := RouterConfig{
		DB:             db,
		SessionManager: sm,
		Renderer:       renderer,
		Accounts:       service.NewAccountService(db),
		Content:        content,
		QA:             service.NewQAService(db),
		CSRF:           middleware.DefaultCSRFConfig("test-secret", "", false),
		Security:       middleware.DefaultSecurityHeadersConfig(true),
		Version:        "test",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	router := NewRouter(cfg)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testApp{
		t:         t,
		db:        db,
		uploadDir: uploadDir,
		router:    router,
		server:    server,
	}
}

// testClient is a browser-like client with its own cookie jar. It does
// not follow redirects so tests can assert on them.
type testClient struct {
	t    *testing.T
	app  *testApp
	http *http.Client
}

func (a *testApp) client() *testClient {
	a.t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(a.t, err)
	return &testClient{
		t:   a.t,
		app: a,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *testClient) do(req *http.Request) (*http.Response, string) {
	c.t.Helper()
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, string(body)
}

func (c *testClient) get(path string) (*http.Response, string) {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodGet, c.app.server.URL+path, nil)
	require.NoError(c.t, err)
	return c.do(req)
}

func (c *testClient) postForm(path string, values url.Values) *http.Response {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodPost, c.app.server.URL+path, strings.NewReader(values.Encode()))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, _ := c.do(req)
	return resp
}

// postUpload sends a multipart form. No file part is written when
// filename is empty.
func (c *testClient) postUpload(fields map[string]string, filename string, data []byte) *http.Response {
	c.t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(c.t, mw.WriteField(k, v))
	}
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(c.t, err)
		_, err = part.Write(data)
		require.NoError(c.t, err)
	}
	require.NoError(c.t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, c.app.server.URL+RouteUpload, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, _ := c.do(req)
	return resp
}

// follow fetches the redirect target of resp and returns its body.
func (c *testClient) follow(resp *http.Response) string {
	c.t.Helper()
	require.Equal(c.t, http.StatusSeeOther, resp.StatusCode)
	_, body := c.get(resp.Header.Get("Location"))
	return body
}

// login signs in and asserts the redirect to the dashboard.
func (c *testClient) login(email, password string) {
	c.t.Helper()
	resp := c.postForm(RouteLogin, url.Values{"email": {email}, "password": {password}})
	assertRedirect(c.t, resp, RouteDashboard)
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode, "status")
	require.Equal(t, location, resp.Header.Get("Location"), "Location")
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
