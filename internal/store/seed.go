// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/coursehub/internal/auth"
	"github.com/olegiv/coursehub/internal/model"
)

// Demo account credentials created by Seed.
const (
	DemoLecturerEmail = "lecturer@example.com"
	DemoStudentEmail  = "student@example.com"
	DemoPassword      = "changeme"
)

type seedAccount struct {
	email string
	name  string
	role  model.Role
}

var demoAccounts = []seedAccount{
	{email: DemoLecturerEmail, name: "Demo Lecturer", role: model.RoleLecturer},
	{email: DemoStudentEmail, name: "Demo Student", role: model.RoleStudent},
}

// Seed creates one demo lecturer and one demo student when enabled.
// Existing accounts are left alone.
func Seed(ctx context.Context, db *sql.DB, enabled bool) error {
	if !enabled {
		return nil
	}

	queries := New(db)

	for _, acc := range demoAccounts {
		_, err := queries.GetUserByEmail(ctx, acc.email)
		if err == nil {
			slog.Info("demo account already exists, skipping", "email", acc.email)
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking for %s: %w", acc.email, err)
		}

		passwordHash, err := auth.HashPassword(DemoPassword)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}

		user, err := queries.CreateUser(ctx, CreateUserParams{
			Email:        acc.email,
			PasswordHash: passwordHash,
			Name:         acc.name,
			Role:         acc.role,
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("creating %s: %w", acc.email, err)
		}

		slog.Info("created demo account",
			"id", user.ID,
			"email", user.Email,
			"role", user.Role,
		)
	}

	return nil
}
