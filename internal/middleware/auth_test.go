// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/coursehub/internal/model"
	"github.com/olegiv/coursehub/internal/service"
	"github.com/olegiv/coursehub/internal/store"
)

type fakeUsers map[int64]store.User

func (f fakeUsers) UserByID(_ context.Context, id int64) (store.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return store.User{}, service.ErrNotFound
}

type failingUsers struct{}

func (failingUsers) UserByID(context.Context, int64) (store.User, error) {
	return store.User{}, errors.New("database is locked")
}

type recordingFlasher struct {
	messages []string
}

func (f *recordingFlasher) SetFlash(_ *http.Request, message, _ string) {
	f.messages = append(f.messages, message)
}

// requestWithSession loads an empty session into the request context.
func requestWithSession(t *testing.T, sm *scs.SessionManager, r *http.Request) *http.Request {
	t.Helper()
	ctx, err := sm.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	return r.WithContext(ctx)
}

func withUser(r *http.Request, user store.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ContextKeyUser, user))
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestGetUser(t *testing.T) {
	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if user := GetUser(req); user != nil {
			t.Errorf("GetUser() = %v, want nil", user)
		}
		if id := GetUserID(req); id != 0 {
			t.Errorf("GetUserID() = %d, want 0", id)
		}
	})

	t.Run("user in context", func(t *testing.T) {
		req := withUser(httptest.NewRequest(http.MethodGet, "/", nil), store.User{
			ID:    123,
			Email: "test@example.com",
			Role:  model.RoleStudent,
		})

		user := GetUser(req)
		if user == nil {
			t.Fatal("GetUser() = nil, want user")
		}
		if user.ID != 123 || GetUserID(req) != 123 {
			t.Errorf("GetUser().ID = %d, want 123", user.ID)
		}
	})
}

func TestAuth(t *testing.T) {
	handler := Auth(okHandler)

	t.Run("anonymous redirects to login", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		if w.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
		}
		if loc := w.Header().Get("Location"); loc != "/login" {
			t.Errorf("Location = %q, want /login", loc)
		}
	})

	t.Run("authenticated passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, withUser(httptest.NewRequest(http.MethodGet, "/dashboard", nil), store.User{ID: 1}))

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})
}

func TestLoadUser(t *testing.T) {
	sm := scs.New()
	users := fakeUsers{7: {ID: 7, Email: "s@x.com", Role: model.RoleStudent}}

	var got *store.User
	handler := LoadUser(sm, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUser(r)
	}))

	t.Run("known user", func(t *testing.T) {
		got = nil
		req := requestWithSession(t, sm, httptest.NewRequest(http.MethodGet, "/", nil))
		sm.Put(req.Context(), SessionKeyUserID, int64(7))

		handler.ServeHTTP(httptest.NewRecorder(), req)

		if got == nil || got.ID != 7 {
			t.Fatalf("user = %v, want ID 7", got)
		}
	})

	t.Run("no session user", func(t *testing.T) {
		got = nil
		req := requestWithSession(t, sm, httptest.NewRequest(http.MethodGet, "/", nil))

		handler.ServeHTTP(httptest.NewRecorder(), req)

		if got != nil {
			t.Errorf("user = %v, want nil", got)
		}
	})

	t.Run("deleted user clears session", func(t *testing.T) {
		got = nil
		req := requestWithSession(t, sm, httptest.NewRequest(http.MethodGet, "/", nil))
		sm.Put(req.Context(), SessionKeyUserID, int64(99))

		handler.ServeHTTP(httptest.NewRecorder(), req)

		if got != nil {
			t.Errorf("user = %v, want nil", got)
		}
		if id := sm.GetInt64(req.Context(), SessionKeyUserID); id != 0 {
			t.Errorf("session user_id = %d, want 0 after destroy", id)
		}
	})
}

func TestLoadUser_StoreError(t *testing.T) {
	sm := scs.New()
	handler := LoadUser(sm, failingUsers{})(okHandler)

	req := requestWithSession(t, sm, httptest.NewRequest(http.MethodGet, "/", nil))
	sm.Put(req.Context(), SessionKeyUserID, int64(1))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name         string
		user         *store.User
		wantStatus   int
		wantLocation string
		wantFlash    bool
	}{
		{name: "anonymous", wantStatus: http.StatusSeeOther, wantLocation: "/login"},
		{
			name:       "matching role",
			user:       &store.User{ID: 1, Role: model.RoleLecturer},
			wantStatus: http.StatusOK,
		},
		{
			name:         "other role",
			user:         &store.User{ID: 2, Role: model.RoleStudent},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/dashboard",
			wantFlash:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flasher := &recordingFlasher{}
			handler := RequireRole(flasher, model.RoleLecturer, "Only lecturers can upload content")(okHandler)

			req := httptest.NewRequest(http.MethodPost, "/upload", nil)
			if tt.user != nil {
				req = withUser(req, *tt.user)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if loc := w.Header().Get("Location"); loc != tt.wantLocation {
				t.Errorf("Location = %q, want %q", loc, tt.wantLocation)
			}
			if tt.wantFlash && (len(flasher.messages) != 1 || flasher.messages[0] != "Only lecturers can upload content") {
				t.Errorf("flash = %v", flasher.messages)
			}
			if !tt.wantFlash && len(flasher.messages) != 0 {
				t.Errorf("unexpected flash %v", flasher.messages)
			}
		})
	}
}

func TestRedirectIfAuthenticated(t *testing.T) {
	handler := RedirectIfAuthenticated(okHandler)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	if w.Code != http.StatusOK {
		t.Errorf("anonymous status = %d, want %d", w.Code, http.StatusOK)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, withUser(httptest.NewRequest(http.MethodGet, "/login", nil), store.User{ID: 1}))
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/dashboard" {
		t.Errorf("authenticated: status = %d, Location = %q", w.Code, w.Header().Get("Location"))
	}
}
