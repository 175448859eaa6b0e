// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		in    string
		want  Role
		valid bool
	}{
		{"lecturer", RoleLecturer, true},
		{"student", RoleStudent, true},
		{"", "", false},
		{"admin", "", false},
		{"Lecturer", "", false},
		{"STUDENT", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if (err == nil) != tt.valid {
				t.Fatalf("ParseRole(%q) error = %v, valid = %v", tt.in, err, tt.valid)
			}
			if got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRole_Label(t *testing.T) {
	if got := RoleLecturer.Label(); got != "Lecturer" {
		t.Errorf("RoleLecturer.Label() = %q, want %q", got, "Lecturer")
	}
	if got := RoleStudent.Label(); got != "Student" {
		t.Errorf("RoleStudent.Label() = %q, want %q", got, "Student")
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range Roles {
		if !r.Valid() {
			t.Errorf("%q.Valid() = false", r)
		}
	}
	if Role("guest").Valid() {
		t.Error(`Role("guest").Valid() = true`)
	}
}

func TestParseContentType(t *testing.T) {
	if ct, err := ParseContentType("video"); err != nil || ct != ContentVideo {
		t.Errorf("ParseContentType(video) = %q, %v", ct, err)
	}
	if ct, err := ParseContentType("document"); err != nil || ct != ContentDocument {
		t.Errorf("ParseContentType(document) = %q, %v", ct, err)
	}
	for _, bad := range []string{"", "videos", "image", "../video"} {
		if _, err := ParseContentType(bad); err == nil {
			t.Errorf("ParseContentType(%q) should fail", bad)
		}
	}
}

func TestContentType_Dir(t *testing.T) {
	if got := ContentVideo.Dir(); got != "videos" {
		t.Errorf("ContentVideo.Dir() = %q", got)
	}
	if got := ContentDocument.Dir(); got != "documents" {
		t.Errorf("ContentDocument.Dir() = %q", got)
	}
}

func TestContentType_Accepts(t *testing.T) {
	tests := []struct {
		ct       ContentType
		filename string
		want     bool
	}{
		{ContentVideo, "lecture1.mp4", true},
		{ContentVideo, "LECTURE1.MP4", true},
		{ContentVideo, "notes.pdf", false},
		{ContentDocument, "syllabus.pdf", true},
		{ContentDocument, "slides.pptx", true},
		{ContentDocument, "movie.mp4", false},
		{ContentDocument, "noextension", false},
		{ContentDocument, "script.sh", false},
	}

	for _, tt := range tests {
		if got := tt.ct.Accepts(tt.filename); got != tt.want {
			t.Errorf("%s.Accepts(%q) = %v, want %v", tt.ct, tt.filename, got, tt.want)
		}
	}
}
