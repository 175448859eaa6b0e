// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ContentType is the kind of uploaded course material.
type ContentType string

// Supported content types.
const (
	ContentVideo    ContentType = "video"
	ContentDocument ContentType = "document"
)

// ContentTypes lists every valid content type in display order.
var ContentTypes = []ContentType{ContentVideo, ContentDocument}

// allowedExtensions maps each content type to the file extensions it accepts.
var allowedExtensions = map[ContentType][]string{
	ContentVideo:    {".mp4", ".webm", ".mov", ".m4v", ".mkv", ".avi", ".ogv"},
	ContentDocument: {".pdf", ".txt", ".md", ".rtf", ".doc", ".docx", ".odt", ".ppt", ".pptx", ".odp", ".xls", ".xlsx", ".ods", ".csv", ".zip"},
}

// ParseContentType converts a stored or submitted value into a ContentType.
func ParseContentType(s string) (ContentType, error) {
	switch ContentType(s) {
	case ContentVideo, ContentDocument:
		return ContentType(s), nil
	default:
		return "", fmt.Errorf("unknown content type %q", s)
	}
}

// Dir returns the storage subdirectory for the content type ("videos", "documents").
func (c ContentType) Dir() string {
	return string(c) + "s"
}

// Extensions returns the accepted file extensions, lower-case with a leading dot.
func (c ContentType) Extensions() []string {
	return allowedExtensions[c]
}

// Accepts reports whether filename has an extension allowed for c.
func (c ContentType) Accepts(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return false
	}
	for _, allowed := range allowedExtensions[c] {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Label returns the content type for display, e.g. "Video".
func (c ContentType) Label() string {
	return titleCaser.String(string(c))
}

func (c ContentType) String() string {
	return string(c)
}
