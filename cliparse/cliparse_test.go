// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"POLL_STORE", "DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"POLL_PAGE", "POLL_EXPORT", "POLL_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-page", "polls.yaml"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Store != StoreSQLite {
		t.Errorf("expected sqlite store, got %q", cfg.Store)
	}
	if cfg.DatabaseURL != "file:pollwidget.db" {
		t.Errorf("expected default database URL, got %q", cfg.DatabaseURL)
	}
	if cfg.LogFile != "pollwidget.log" {
		t.Errorf("expected default log file, got %q", cfg.LogFile)
	}
	if cfg.ExportPath != "" || cfg.Verbose {
		t.Errorf("unexpected export/verbose settings: %+v", cfg)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("POLL_STORE", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_PASSWORD", "secret")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("POLL_PAGE", "env.yaml")
	t.Setenv("POLL_EXPORT", "out.html")
	t.Setenv("POLL_LOG_FILE", "env.log")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Store != StoreRedis || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("redis settings not read from env: %+v", cfg)
	}
	if cfg.RedisPassword != "secret" || cfg.RedisDB != 2 {
		t.Errorf("redis credentials not read from env: %+v", cfg)
	}
	if cfg.PagePath != "env.yaml" || cfg.ExportPath != "out.html" || cfg.LogFile != "env.log" {
		t.Errorf("paths not read from env: %+v", cfg)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("POLL_STORE", "memory")
	t.Setenv("POLL_PAGE", "env.yaml")

	cfg, err := ParseFlags([]string{"-store", "postgres", "-d", "postgres://test", "-page", "cli.yaml", "-v"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Store != StorePostgres {
		t.Errorf("CLI should override env: expected postgres, got %q", cfg.Store)
	}
	if cfg.PagePath != "cli.yaml" {
		t.Errorf("CLI should override env: expected cli.yaml, got %q", cfg.PagePath)
	}
	if !cfg.Verbose {
		t.Error("expected verbose")
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"missing page", nil, nil},
		{"unknown store", []string{"-page", "p.yaml", "-store", "mongo"}, nil},
		{"postgres without url", []string{"-page", "p.yaml", "-store", "postgres"}, nil},
		{"redis without addr", []string{"-page", "p.yaml", "-store", "redis"}, nil},
		{"bad redis db", []string{"-page", "p.yaml"}, map[string]string{"REDIS_DB": "two"}},
		{"unknown flag", []string{"-p", "8080"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}
