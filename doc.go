// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pollwidget terminal host.

pollwidget shows one or more polls described in a YAML page file, lets the
user vote once per question and keeps running totals in local storage.

# Running

	POLL_PAGE=polls.yaml go run .

Or with flags:

	go run . -page polls.yaml -store sqlite -d file:pollwidget.db

Write the rendered page as HTML instead of starting the terminal UI:

	go run . -page polls.yaml -export polls.html

# Configuration

See package cliparse. A .env file in the working directory is loaded first.

# Storage

Votes are kept in two scopes. Session votes block a second vote on the same
question and live only for the current run; they are cleared on exit and on
SIGINT/SIGTERM. Durable totals persist in sqlite (default), postgres, redis or
memory.

# Architecture

  - models: Questions, vote records and page definitions
  - store: Session and durable scopes over key-value backends
  - db: Schema creation for the SQL backend
  - ledger: Per-widget votes, deduplication and tallies
  - registry: Page-wide render signatures and teardown
  - document: HTML tree and selector lookup
  - render: Question blocks, result updates and reveal animation
  - widget: The poll widget composing the above
  - page: YAML page definitions
  - tui: Terminal host
  - cliparse: Configuration parsing

Logs are written to a file (default pollwidget.log), one session_id per run.
*/
package main
