// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pollwidget/cliparse"
	"github.com/danielhkuo/pollwidget/db"
	"github.com/danielhkuo/pollwidget/document"
	"github.com/danielhkuo/pollwidget/page"
	"github.com/danielhkuo/pollwidget/registry"
	"github.com/danielhkuo/pollwidget/store"
	"github.com/danielhkuo/pollwidget/tui"
	"github.com/danielhkuo/pollwidget/widget"
)

const teardownTimeout = 5 * time.Second

func main() {
	// A missing .env is fine; real environment variables still apply
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "failed to load .env:", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing flags:", err)
		os.Exit(2)
	}

	// The terminal UI owns stdout, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to open log file:", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg.Verbose)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("pollwidget failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With("session_id", uuid.NewString())
}

func run(cfg cliparse.Config, logger *slog.Logger) error {
	ctx := context.Background()

	def, err := page.Load(cfg.PagePath)
	if err != nil {
		return err
	}
	doc, err := page.Build(def)
	if err != nil {
		return err
	}

	durable, closeDurable, err := openDurable(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDurable()

	// Session votes live for this run only
	votes := store.New(store.NewMemoryBackend(), durable, logger)
	reg := registry.New(logger)

	widgets := make([]*widget.Widget, 0, len(def.Widgets))
	for _, wd := range def.Widgets {
		w, err := widget.New(ctx, doc, wd.Container, wd.Questions, widget.Options{
			Registry: reg,
			Store:    votes,
			Logger:   logger,
		})
		if err != nil {
			return fmt.Errorf("widget %s: %w", wd.Container, err)
		}
		if _, err := w.Render(); err != nil {
			return fmt.Errorf("widget %s: %w", wd.Container, err)
		}
		widgets = append(widgets, w)
	}
	defer teardown(reg, logger)

	if cfg.ExportPath != "" {
		return export(doc, cfg.ExportPath, logger)
	}

	title := def.Title
	if title == "" {
		title = "Polls"
	}
	p := tea.NewProgram(tui.New(ctx, title, widgets, logger), tea.WithAltScreen())

	// signal.Notify requires the channel to be buffered
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)
	done := make(chan struct{})
	go func() {
		select {
		case <-stop:
			logger.Info("signal received, quitting")
			p.Quit()
		case <-done:
		}
	}()

	logger.Info("terminal host started", "widgets", len(widgets), "store", cfg.Store)
	_, err = p.Run()
	close(done)
	if err != nil {
		return fmt.Errorf("terminal host: %w", err)
	}
	return nil
}

// openDurable connects the configured durable scope backend
func openDurable(ctx context.Context, cfg cliparse.Config, logger *slog.Logger) (store.Backend, func(), error) {
	switch cfg.Store {
	case cliparse.StoreSQLite, cliparse.StorePostgres:
		driver := db.DriverSQLite
		if cfg.Store == cliparse.StorePostgres {
			driver = db.DriverPostgres
		}
		conn, err := db.Open(driver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("database schema ready", "driver", driver)
		return store.NewSQLBackend(conn), func() { conn.Close() }, nil

	case cliparse.StoreRedis:
		rb := store.NewRedisBackend(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rb.Ping(ctx); err != nil {
			rb.Close()
			return nil, nil, fmt.Errorf("redis ping failed: %w", err)
		}
		logger.Info("redis connected", "addr", cfg.RedisAddr)
		return rb, func() { rb.Close() }, nil

	default:
		logger.Warn("durable votes are kept in memory and lost on exit")
		return store.NewMemoryBackend(), func() {}, nil
	}
}

func export(doc *document.Document, path string, logger *slog.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := doc.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	logger.Info("page exported", "path", path)
	return nil
}

// teardown clears session votes the way a page unload does
func teardown(reg *registry.Registry, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
	defer cancel()

	if err := reg.UnregisterAll(ctx); err != nil {
		logger.Error("teardown incomplete", "error", err)
		return
	}
	logger.Info("teardown complete")
}
