// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/coursehub/internal/config"
	"github.com/olegiv/coursehub/internal/model"
	"github.com/olegiv/coursehub/internal/testutil"
)

func uploadFields(title, contentType string) map[string]string {
	return map[string]string{
		"title":        title,
		"description":  "Week one",
		"content_type": contentType,
	}
}

func TestUpload_Lecturer(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.db, "lecturer@example.com", model.RoleLecturer)
	c := app.client()
	c.login("lecturer@example.com", testutil.TestPassword)

	data := []byte("%PDF-1.4 lecture notes")
	resp := c.postUpload(uploadFields("Intro notes", "document"), "Lecture Notes.pdf", data)
	assertRedirect(t, resp, RouteDashboard)

	body := c.follow(resp)
	assert.Contains(t, body, MsgUploaded)
	assert.Contains(t, body, "Intro notes")
	assert.Contains(t, body, "/uploads/document/Lecture_Notes.pdf")

	assert.Equal(t, int64(1), testutil.CountRows(t, app.db, "contents"))

	stored, err := os.ReadFile(filepath.Join(app.uploadDir, "documents", "Lecture_Notes.pdf"))
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	resp, got := c.get("/uploads/document/Lecture_Notes.pdf")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(data), got)
}

func TestUpload_GetForm(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.db, "lecturer@example.com", model.RoleLecturer)
	c := app.client()
	c.login("lecturer@example.com", testutil.TestPassword)

	resp, body := c.get(RouteUpload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `enctype="multipart/form-data"`)
}

func TestUpload_StudentCreatesNoRow(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.db, "student@example.com", model.RoleStudent)
	c := app.client()
	c.login("student@example.com", testutil.TestPassword)

	resp := c.postUpload(uploadFields("Sneaky", "video"), "clip.mp4", []byte("video"))
	assertRedirect(t, resp, RouteDashboard)
	assert.Contains(t, c.follow(resp), MsgLecturersUploadOnly)

	resp, _ = c.get(RouteUpload)
	assertRedirect(t, resp, RouteDashboard)

	assert.Equal(t, int64(0), testutil.CountRows(t, app.db, "contents"))
	entries, err := os.ReadDir(filepath.Join(app.uploadDir, "videos"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpload_NoFile(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.db, "lecturer@example.com", model.RoleLecturer)
	c := app.client()
	c.login("lecturer@example.com", testutil.TestPassword)

	resp := c.postUpload(uploadFields("Empty", "document"), "", nil)
	assertRedirect(t, resp, RouteUpload)
	assert.Contains(t, c.follow(resp), MsgNoFile)
	assert.Equal(t, int64(0), testutil.CountRows(t, app.db, "contents"))
}

func TestUpload_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]string
		filename string
		want     string
	}{
		{"extension mismatch", uploadFields("Clip", "video"), "notes.pdf", "Video files must end in one of"},
		{"unknown type", uploadFields("Clip", "image"), "photo.png", "Content_type must be one of"},
		{"blank title", uploadFields("  ", "document"), "notes.pdf", "Title cannot be blank"},
		{"unusable name", uploadFields("Dots", "document"), "...", "Unusable filename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			testutil.CreateUser(t, app.db, "lecturer@example.com", model.RoleLecturer)
			c := app.client()
			c.login("lecturer@example.com", testutil.TestPassword)

			resp := c.postUpload(tt.fields, tt.filename, []byte("data"))
			assertRedirect(t, resp, RouteUpload)
			assert.Contains(t, c.follow(resp), tt.want)
			assert.Equal(t, int64(0), testutil.CountRows(t, app.db, "contents"))
		})
	}
}

func TestUpload_TooLarge(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, RouteUpload, bytes.NewReader([]byte("x")))
	req.ContentLength = config.MaxRequestBodyBytes + 1
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()

	app.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, int64(0), testutil.CountRows(t, app.db, "contents"))
}

func TestServeFile_NotFound(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateUser(t, app.db, "student@example.com", model.RoleStudent)
	c := app.client()
	c.login("student@example.com", testutil.TestPassword)

	secret := filepath.Join(app.uploadDir, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("top secret"), 0o600))

	for _, path := range []string{
		"/uploads/document/missing.pdf",
		"/uploads/image/photo.png",
		"/uploads/document/..%2Fsecret.txt",
		"/uploads/documents/secret.txt",
	} {
		resp, body := c.get(path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.NotContains(t, body, "top secret", path)
	}
}

func TestServeFile_RequiresLogin(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(app.uploadDir, "documents", "a.pdf"), []byte("pdf"), 0o644))

	resp, _ := app.client().get("/uploads/document/a.pdf")
	assertRedirect(t, resp, RouteLogin)
}
