// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Store: Durable vote store, one of sqlite, postgres, redis, memory (default: sqlite)
  - DatabaseURL: sqlite or postgres DSN (default for sqlite: file:pollwidget.db)
  - RedisAddr, RedisPassword, RedisDB: Redis connection
  - PagePath: YAML page definition (required)
  - ExportPath: Write rendered HTML here and exit instead of starting the terminal UI
  - LogFile: Log destination (default: pollwidget.log)
  - Verbose: Debug logging

# CLI Flags

	-store     Durable vote store
	-d         Database URL
	-redis     Redis address
	-redis-db  Redis database number
	-page      Page definition file
	-export    HTML export path
	-log       Log file
	-v         Verbose logging

# Environment Variables

Flags fall back to environment variables:

	POLL_STORE     → -store
	DATABASE_URL   → -d
	REDIS_ADDR     → -redis
	REDIS_DB       → -redis-db
	POLL_PAGE      → -page
	POLL_EXPORT    → -export
	POLL_LOG_FILE  → -log

REDIS_PASSWORD is read from the environment only. CLI flags take precedence
over environment variables. main loads a .env file before parsing, so any of
these may also live there.

# Validation

ParseFlags returns an error when:

  - the page file is not given
  - the store kind is unknown
  - postgres is selected without a database URL
  - redis is selected without an address
  - REDIS_DB is not a non-negative integer
*/
package cliparse
