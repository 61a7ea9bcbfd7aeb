// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Store kinds for the durable scope
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

type Config struct {
	Store         string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PagePath      string
	ExportPath    string
	LogFile       string
	Verbose       bool
}

// ParseFlags reads flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("pollwidget", flag.ContinueOnError)

	// Storage
	fs.StringVar(&cfg.Store, "store", "", "Durable vote store (sqlite, postgres, redis or memory)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL for sqlite or postgres")
	fs.StringVar(&cfg.RedisAddr, "redis", "", "Redis address (host:port)")
	fs.IntVar(&cfg.RedisDB, "redis-db", -1, "Redis database number")

	// Page and output
	fs.StringVar(&cfg.PagePath, "page", "", "Page definition file (YAML)")
	fs.StringVar(&cfg.ExportPath, "export", "", "Write the rendered page as HTML to this file and exit")
	fs.StringVar(&cfg.LogFile, "log", "", "Log file")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Store == "" {
		cfg.Store = os.Getenv("POLL_STORE")
		if cfg.Store == "" {
			cfg.Store = StoreSQLite
		}
	}
	switch cfg.Store {
	case StoreSQLite, StorePostgres, StoreRedis, StoreMemory:
	default:
		return Config{}, fmt.Errorf("unknown store %q (use sqlite, postgres, redis or memory)", cfg.Store)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		switch cfg.Store {
		case StoreSQLite:
			cfg.DatabaseURL = "file:pollwidget.db"
		case StorePostgres:
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	}

	if cfg.RedisAddr == "" {
		cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	}
	if cfg.Store == StoreRedis && cfg.RedisAddr == "" {
		return Config{}, errors.New("redis address required (use -redis or REDIS_ADDR env)")
	}
	// Secrets only come from the environment
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if cfg.RedisDB < 0 {
		cfg.RedisDB = 0
		if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
			n, err := strconv.Atoi(dbStr)
			if err != nil || n < 0 {
				return Config{}, errors.New("invalid REDIS_DB env variable")
			}
			cfg.RedisDB = n
		}
	}

	if cfg.PagePath == "" {
		cfg.PagePath = os.Getenv("POLL_PAGE")
	}
	if cfg.PagePath == "" {
		return Config{}, errors.New("page file required (use -page or POLL_PAGE env)")
	}

	if cfg.ExportPath == "" {
		cfg.ExportPath = os.Getenv("POLL_EXPORT")
	}

	if cfg.LogFile == "" {
		cfg.LogFile = os.Getenv("POLL_LOG_FILE")
		if cfg.LogFile == "" {
			cfg.LogFile = "pollwidget.log"
		}
	}

	return cfg, nil
}
