// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic housekeeping for coursehub.
package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/coursehub/internal/model"
	"github.com/olegiv/coursehub/internal/store"
)

// DefaultSchedule runs the orphan sweep once an hour.
const DefaultSchedule = "@hourly"

// DefaultGracePeriod protects files that may still belong to an upload in
// flight.
const DefaultGracePeriod = time.Hour

// Scheduler removes stored upload files that no content record refers to.
type Scheduler struct {
	queries   *store.Queries
	uploadDir string
	grace     time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a new scheduler instance.
func New(db *sql.DB, uploadDir string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		queries:   store.New(db),
		uploadDir: uploadDir,
		grace:     DefaultGracePeriod,
		cron:      cron.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// Start registers the sweep under schedule and starts the cron runner.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.SweepOrphans(context.Background()); err != nil {
			s.logger.Error("failed to sweep orphaned uploads", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()), "schedule", schedule)
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// SweepOrphans deletes files under each content type directory that have
// no matching content record and are older than the grace period. It
// returns how many files were removed.
func (s *Scheduler) SweepOrphans(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.grace)
	removed := 0

	for _, ct := range model.ContentTypes {
		dir := filepath.Join(s.uploadDir, ct.Dir())
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, fmt.Errorf("reading %s: %w", dir, err)
		}

		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			info, err := entry.Info()
			if err != nil || info.ModTime().After(cutoff) {
				continue
			}

			exists, err := s.queries.ContentFileExists(ctx, store.ContentFileExistsParams{
				ContentType: ct,
				Filename:    entry.Name(),
			})
			if err != nil {
				return removed, fmt.Errorf("looking up %s: %w", entry.Name(), err)
			}
			if exists != 0 {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				s.logger.Warn("failed to remove orphaned upload", "path", path, "error", err)
				continue
			}
			removed++
			s.logger.Info("removed orphaned upload", "path", path)
		}
	}

	return removed, nil
}
