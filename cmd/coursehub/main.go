// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/olegiv/coursehub/internal/config"
	"github.com/olegiv/coursehub/internal/handler"
	"github.com/olegiv/coursehub/internal/middleware"
	"github.com/olegiv/coursehub/internal/render"
	"github.com/olegiv/coursehub/internal/scheduler"
	"github.com/olegiv/coursehub/internal/service"
	"github.com/olegiv/coursehub/internal/session"
	"github.com/olegiv/coursehub/internal/store"
	"github.com/olegiv/coursehub/internal/version"
	"github.com/olegiv/coursehub/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() { printUsage(os.Stderr) }

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Println(versionInfo.String())
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// printUsage writes the flag and environment reference to w.
func printUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "coursehub - course content and Q&A for lecturers and students\n\n")
	_, _ = fmt.Fprintf(w, "Usage: %s [options]\n\n", os.Args[0])
	_, _ = fmt.Fprintf(w, "Options:\n")
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(w, "\nEnvironment Variables:\n")
	_, _ = fmt.Fprintf(w, "  SECRET_KEY               Session and CSRF secret (required in production)\n")
	_, _ = fmt.Fprintf(w, "  COURSEHUB_DB_PATH        SQLite database path (default: ./data/education.db)\n")
	_, _ = fmt.Fprintf(w, "  COURSEHUB_UPLOADS_DIR    Upload root (default: ./uploads)\n")
	_, _ = fmt.Fprintf(w, "  COURSEHUB_SERVER_HOST    Listen host (default: localhost)\n")
	_, _ = fmt.Fprintf(w, "  COURSEHUB_SERVER_PORT    Listen port (default: 5000)\n")
	_, _ = fmt.Fprintf(w, "  COURSEHUB_ENV            Environment: development|production (default: development)\n")
	_, _ = fmt.Fprintf(w, "  COURSEHUB_LOG_LEVEL      debug|info|warn|error (default: info)\n")
	_, _ = fmt.Fprintf(w, "  COURSEHUB_REDIS_URL      Redis URL for sessions (optional)\n")
	_, _ = fmt.Fprintf(w, "  COURSEHUB_LOGIN_RATE     Login/register submissions per second per IP (default: 1)\n")
	_, _ = fmt.Fprintf(w, "  COURSEHUB_LOGIN_BURST    Login/register burst per IP (default: 10)\n")
	_, _ = fmt.Fprintf(w, "  COURSEHUB_SWEEP_SCHEDULE Cron schedule for orphaned upload cleanup, \"off\" disables (default: @hourly)\n")
	_, _ = fmt.Fprintf(w, "  COURSEHUB_DO_SEED        Create a demo lecturer and student (default: false)\n")
}

func run(versionInfo version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if err := store.Seed(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	var redisClient *redis.Client
	sessionStore := "sqlite"
	if cfg.UseRedisSessions() {
		redisClient, err = session.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("initializing redis: %w", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("error closing redis client", "error", err)
			}
		}()
		sessionStore = "redis"
	}
	sessionManager := session.New(db, redisClient, cfg.IsDevelopment())
	slog.Info("session manager initialized", "store", sessionStore)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	contentService := service.NewContentService(db, cfg.UploadsDir)
	if err := contentService.EnsureDirs(); err != nil {
		return fmt.Errorf("creating upload directories: %w", err)
	}

	if cfg.SweepEnabled() {
		sched := scheduler.New(db, cfg.UploadsDir, logger)
		if err := sched.Start(cfg.SweepSchedule); err != nil {
			return fmt.Errorf("starting scheduler: %w", err)
		}
		defer sched.Stop()
	}

	loginProtection := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit: cfg.LoginRate,
		IPBurst:     cfg.LoginBurst,
	}, renderer)
	go loginProtection.Run(ctx, time.Minute)

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}

	router := handler.NewRouter(handler.RouterConfig{
		DB:              db,
		SessionManager:  sessionManager,
		Renderer:        renderer,
		Accounts:        service.NewAccountService(db),
		Content:         contentService,
		QA:              service.NewQAService(db),
		LoginProtection: loginProtection,
		CSRF:            middleware.DefaultCSRFConfig(cfg.SecretKey, cfg.ServerAddr(), cfg.IsDevelopment()),
		Security:        middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment()),
		Static:          staticFS,
		Version:         versionInfo.Name(),
		AccessLog:       true,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
