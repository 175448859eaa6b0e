// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides filename and path helpers for stored uploads.
package util

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	// unsafeFilenameChars matches everything outside [A-Za-z0-9_.-].
	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

	// windowsDeviceNames are reserved on Windows regardless of extension.
	windowsDeviceNames = map[string]bool{
		"CON": true, "AUX": true, "COM1": true, "COM2": true, "COM3": true,
		"COM4": true, "LPT1": true, "LPT2": true, "LPT3": true, "PRN": true,
		"NUL": true,
	}
)

// SecureFilename reduces a client-supplied filename to a flat ASCII name
// that is safe to store on disk. Non-ASCII letters are transliterated,
// path separators become underscores, whitespace collapses into a single
// underscore and leading dots or underscores are stripped. The result may
// be empty, in which case the caller must reject the upload.
func SecureFilename(filename string) string {
	s := unidecode.Unidecode(filename)

	s = strings.NewReplacer("/", " ", "\\", " ").Replace(s)
	s = strings.Join(strings.Fields(s), "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")
	s = strings.TrimLeft(s, "._")
	s = strings.TrimRight(s, ".")

	if s == "" {
		return ""
	}

	stem := strings.ToUpper(strings.SplitN(s, ".", 2)[0])
	if windowsDeviceNames[stem] {
		s = "_" + s
	}

	return s
}

// ValidatePathWithinBase ensures that targetPath resolves to basePath or
// somewhere below it.
func ValidatePathWithinBase(basePath, targetPath string) error {
	absBase, err := filepath.Abs(filepath.Clean(basePath))
	if err != nil {
		return fmt.Errorf("invalid base path: %w", err)
	}

	absTarget, err := filepath.Abs(filepath.Clean(targetPath))
	if err != nil {
		return fmt.Errorf("invalid target path: %w", err)
	}

	// Trailing separator so /uploads-other does not match /uploads.
	if absTarget != absBase && !strings.HasPrefix(absTarget, absBase+string(filepath.Separator)) {
		return fmt.Errorf("path traversal detected: path escapes base directory")
	}

	return nil
}

// SafeJoinPath joins path components and validates the result is within
// the base directory.
func SafeJoinPath(basePath string, components ...string) (string, error) {
	fullPath := filepath.Join(append([]string{basePath}, components...)...)

	if err := ValidatePathWithinBase(basePath, fullPath); err != nil {
		return "", err
	}

	return fullPath, nil
}
