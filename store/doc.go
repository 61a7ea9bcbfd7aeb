// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists vote records in two key-value scopes.

# Scopes

A VoteStore has a session scope and a durable scope:

	vs := store.New(store.NewMemoryBackend(), store.NewSQLBackend(conn), logger)

	records, err := vs.Durable.Load(ctx, store.DurableKey("poll-container"))
	err = vs.Session.Save(ctx, store.SessionKey("poll-container"), records)
	err = vs.Session.Clear(ctx, store.SessionKey("poll-container"))

Session entries live for one host run and are purged on teardown. Durable
entries are never purged by the widget.

# Keys

	poll_responses_{containerId}        session scope
	total_poll_responses_{containerId}  durable scope

# Malformed Data

Load treats missing keys and content that is not a JSON array of records as
an empty list. Malformed content is logged and never returned as an error.
Only backend failures (I/O, connection) are reported.

# Backends

  - MemoryBackend: process memory, guarded by a RWMutex
  - SQLBackend: poll_storage table on sqlite or postgres
  - RedisBackend: plain redis strings

Save is a single SetItem call, so readers see either the old or the new list.
*/
package store
