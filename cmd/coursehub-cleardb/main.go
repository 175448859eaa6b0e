// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command coursehub-cleardb deletes every row from the coursehub database
// after an interactive confirmation.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/olegiv/coursehub/internal/config"
	"github.com/olegiv/coursehub/internal/maintenance"
	"github.com/olegiv/coursehub/internal/store"
)

func main() {
	clearUploads := flag.Bool("uploads", false, "Also delete stored upload files")
	flag.Parse()

	if err := run(*clearUploads); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(clearUploads bool) error {
	_ = godotenv.Load()

	cfg, err := config.LoadStorage()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !maintenance.Confirm(os.Stdin, os.Stdout) {
		_, _ = fmt.Println(maintenance.CancelledMessage)
		return nil
	}

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	if err := maintenance.ClearAll(context.Background(), db, os.Stdout); err != nil {
		return err
	}

	if clearUploads {
		return maintenance.ClearUploads(cfg.UploadsDir, os.Stdout)
	}
	return nil
}
