// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads coursehub settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// InsecureDefaultSecret is used when SECRET_KEY is unset. It is accepted in
// development only.
const InsecureDefaultSecret = "your-secret-key"

// MaxRequestBodyBytes caps every request body (16 MiB).
const MaxRequestBodyBytes int64 = 16 << 20

// Config holds the application configuration loaded from environment variables.
type Config struct {
	SecretKey  string `env:"SECRET_KEY" envDefault:"your-secret-key"`
	DBPath     string `env:"COURSEHUB_DB_PATH" envDefault:"./data/education.db"`
	UploadsDir string `env:"COURSEHUB_UPLOADS_DIR" envDefault:"./uploads"`
	ServerHost string `env:"COURSEHUB_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"COURSEHUB_SERVER_PORT" envDefault:"5000"`
	Env        string `env:"COURSEHUB_ENV" envDefault:"development"`
	LogLevel   string `env:"COURSEHUB_LOG_LEVEL" envDefault:"info"`

	// Optional Redis URL; sessions are kept in SQLite when empty.
	RedisURL string `env:"COURSEHUB_REDIS_URL"`

	// Per-IP throttle for login and registration submissions.
	LoginRate  float64 `env:"COURSEHUB_LOGIN_RATE" envDefault:"1"`
	LoginBurst int     `env:"COURSEHUB_LOGIN_BURST" envDefault:"10"`

	// Cron schedule for the orphaned upload sweep; "off" disables it.
	SweepSchedule string `env:"COURSEHUB_SWEEP_SCHEDULE" envDefault:"@hourly"`

	// Create a demo lecturer and student on startup.
	DoSeed bool `env:"COURSEHUB_DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisSessions returns true if a Redis session store is configured.
func (c Config) UseRedisSessions() bool {
	return c.RedisURL != ""
}

// SweepEnabled reports whether the orphaned upload sweep should run.
func (c Config) SweepEnabled() bool {
	return c.SweepSchedule != "" && c.SweepSchedule != "off"
}

// UsesInsecureSecret reports whether SECRET_KEY still holds the built-in default.
func (c Config) UsesInsecureSecret() bool {
	return c.SecretKey == InsecureDefaultSecret
}

// StorageConfig is the subset of settings needed by offline tools that
// only touch the database and the upload root.
type StorageConfig struct {
	DBPath     string `env:"COURSEHUB_DB_PATH" envDefault:"./data/education.db"`
	UploadsDir string `env:"COURSEHUB_UPLOADS_DIR" envDefault:"./uploads"`
}

// LoadStorage parses only the storage locations. It does not look at
// SECRET_KEY.
func LoadStorage() (*StorageConfig, error) {
	cfg := &StorageConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.SecretKey == "" {
		return nil, errors.New("SECRET_KEY must not be empty")
	}
	if cfg.UsesInsecureSecret() {
		if !cfg.IsDevelopment() {
			return nil, errors.New("SECRET_KEY is the insecure default and must be set in production; " +
				"generate one with: openssl rand -base64 32")
		}
		slog.Warn("SECRET_KEY is not set; using an insecure default secret")
	}

	if cfg.LoginRate <= 0 {
		return nil, fmt.Errorf("COURSEHUB_LOGIN_RATE must be positive, got %v", cfg.LoginRate)
	}
	if cfg.LoginBurst <= 0 {
		return nil, fmt.Errorf("COURSEHUB_LOGIN_BURST must be positive, got %d", cfg.LoginBurst)
	}

	return cfg, nil
}
