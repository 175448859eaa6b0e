// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the account, content and Q&A business rules.
// Handlers call services; services own the store and the upload directory.
package service

import "errors"

// Sentinel errors returned by the services. Callers match them with errors.Is.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("operation not allowed for this role")
	ErrNotFound           = errors.New("not found")
	ErrNoFile             = errors.New("no file selected")
	ErrInvalidInput       = errors.New("invalid input")
)
