// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation for durable
poll storage.

# Opening a Database

Open connects, pings and creates the schema in one step:

	conn, err := db.Open(db.DriverSQLite, "file:pollwidget.db")
	if err != nil {
		log.Fatal(err)
	}

The caller imports the driver: modernc.org/sqlite registers "sqlite" and
github.com/lib/pq registers "postgres".

# Schema Creation

CreateSchema initializes the storage table:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

  - poll_storage: storage_key → JSON value, mirroring browser key-value storage

Keys follow the poll storage naming convention:

	poll_responses_{containerId}        session scope
	total_poll_responses_{containerId}  durable scope
*/
package db
