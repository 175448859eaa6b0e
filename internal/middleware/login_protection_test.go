// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDefaultLoginProtectionConfig(t *testing.T) {
	cfg := DefaultLoginProtectionConfig()

	if cfg.IPRateLimit != 1 {
		t.Errorf("IPRateLimit = %v, want 1", cfg.IPRateLimit)
	}
	if cfg.IPBurst != 10 {
		t.Errorf("IPBurst = %d, want 10", cfg.IPBurst)
	}
}

func TestNewLoginProtectionDefaultValues(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{}, &recordingFlasher{})

	if lp.ipLimiters.burst != 10 {
		t.Errorf("burst = %d, want 10 (default)", lp.ipLimiters.burst)
	}
}

func TestLoginProtection_AllowBurstThenBlock(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 0.001, IPBurst: 3}, &recordingFlasher{})

	for i := range 3 {
		if !lp.Allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if lp.Allow("10.0.0.1") {
		t.Error("attempt beyond burst should be blocked")
	}
	if !lp.Allow("10.0.0.2") {
		t.Error("a different IP should have its own budget")
	}
}

func TestLoginProtection_Middleware(t *testing.T) {
	flasher := &recordingFlasher{}
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 0.001, IPBurst: 1}, flasher)
	handler := lp.Middleware()(okHandler)

	post := func(email string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		req.Form = map[string][]string{"email": {email}}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	if w := post("a@x.com"); w.Code != http.StatusOK {
		t.Fatalf("first POST status = %d, want 200", w.Code)
	}

	w := post("b@x.com")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("throttled POST status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
	if len(flasher.messages) != 1 || flasher.messages[0] != TooManyAttemptsMessage {
		t.Errorf("flash = %v", flasher.messages)
	}

	// GET is never throttled.
	getReq := httptest.NewRequest(http.MethodGet, "/login", nil)
	getReq.RemoteAddr = "192.0.2.1:1234"
	gw := httptest.NewRecorder()
	handler.ServeHTTP(gw, getReq)
	if gw.Code != http.StatusOK {
		t.Errorf("GET status = %d, want 200", gw.Code)
	}
}

func TestLimiterCache_ClearIfExceeds(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	for i := range 5 {
		lc.get(fmt.Sprintf("10.0.0.%d", i))
	}

	if lc.clearIfExceeds(10) {
		t.Error("should not clear below the limit")
	}
	if !lc.clearIfExceeds(3) {
		t.Error("should clear above the limit")
	}
	if lc.len() != 0 {
		t.Errorf("len = %d, want 0", lc.len())
	}
}

func TestLoginProtection_RunStopsOnCancel(t *testing.T) {
	lp := NewLoginProtection(DefaultLoginProtectionConfig(), &recordingFlasher{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		lp.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	if ip := clientIP(req); ip != "203.0.113.9" {
		t.Errorf("clientIP = %q", ip)
	}

	req.RemoteAddr = "203.0.113.9"
	if ip := clientIP(req); ip != "203.0.113.9" {
		t.Errorf("clientIP without port = %q", ip)
	}
}
