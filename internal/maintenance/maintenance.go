// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package maintenance implements the destructive operator tasks behind
// coursehub-cleardb.
package maintenance

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/olegiv/coursehub/internal/store"
)

// ConfirmPrompt is shown before any data is deleted.
const ConfirmPrompt = "This will delete ALL data from the database. Are you sure? (yes/no): "

// CancelledMessage is printed when the operator does not confirm.
const CancelledMessage = "Operation cancelled."

// Confirm writes the prompt to out and reads one line from in. Only a
// case-insensitive "yes" confirms; EOF or anything else declines.
func Confirm(in io.Reader, out io.Writer) bool {
	_, _ = fmt.Fprint(out, ConfirmPrompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes")
}

// ClearAll deletes every answer, question, content record and user in one
// transaction, children first, and reports each step on out. Sessions are
// left alone; their user ids no longer resolve and are dropped on next use.
func ClearAll(ctx context.Context, db *sql.DB, out io.Writer) error {
	_, _ = fmt.Fprintln(out, "Clearing database...")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := store.New(db).WithTx(tx)

	steps := []struct {
		table string
		run   func(context.Context) (int64, error)
	}{
		{"Answer", q.DeleteAllAnswers},
		{"Question", q.DeleteAllQuestions},
		{"Content", q.DeleteAllContents},
		{"User", q.DeleteAllUsers},
	}

	for _, step := range steps {
		n, err := step.run(ctx)
		if err != nil {
			return fmt.Errorf("clearing %s table: %w", step.table, err)
		}
		slog.Debug("table cleared", "table", step.table, "rows", n)
		_, _ = fmt.Fprintf(out, "Cleared %s table\n", step.table)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	_, _ = fmt.Fprintln(out, "Database cleared successfully!")
	return nil
}

// ClearUploads removes every stored file and subdirectory under dir but
// keeps dir itself. A missing dir is not an error.
func ClearUploads(dir string, out io.Writer) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	}

	_, _ = fmt.Fprintf(out, "Cleared uploads in %s\n", dir)
	return nil
}
