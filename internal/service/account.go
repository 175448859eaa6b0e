// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/coursehub/internal/auth"
	"github.com/olegiv/coursehub/internal/model"
	"github.com/olegiv/coursehub/internal/store"
)

// RegisterInput is a validated registration request.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     model.Role
}

// AccountService registers and authenticates users.
type AccountService struct {
	db      *sql.DB
	queries *store.Queries
}

// NewAccountService creates a new account service.
func NewAccountService(db *sql.DB) *AccountService {
	return &AccountService{
		db:      db,
		queries: store.New(db),
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account with a hashed password.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (store.User, error) {
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || in.Password == "" {
		return store.User{}, ErrInvalidInput
	}
	if !in.Role.Valid() {
		return store.User{}, fmt.Errorf("%w: role %q", ErrInvalidInput, in.Role)
	}

	_, err := s.queries.GetUserByEmail(ctx, email)
	if err == nil {
		return store.User{}, ErrDuplicateEmail
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return store.User{}, fmt.Errorf("checking email: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return store.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.queries.CreateUser(ctx, store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         in.Role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// Lost a race with a concurrent registration.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.User{}, ErrDuplicateEmail
		}
		return store.User{}, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the credentials. Unknown email and wrong password
// both return ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (store.User, error) {
	user, err := s.queries.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			auth.BurnCheck(password)
			return store.User{}, ErrInvalidCredentials
		}
		return store.User{}, fmt.Errorf("loading user: %w", err)
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return store.User{}, fmt.Errorf("checking password for user %d: %w", user.ID, err)
	}
	if !valid {
		return store.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// UserByID loads a user for the session user loader.
func (s *AccountService) UserByID(ctx context.Context, id int64) (store.User, error) {
	user, err := s.queries.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.User{}, ErrNotFound
		}
		return store.User{}, fmt.Errorf("loading user %d: %w", id, err)
	}
	return user, nil
}
