// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SQLBackend stores entries in the poll_storage table.
// The queries run unchanged on sqlite and postgres.
type SQLBackend struct {
	db *sql.DB
}

// NewSQLBackend expects a connection whose schema was created by db.CreateSchema.
func NewSQLBackend(db *sql.DB) *SQLBackend {
	return &SQLBackend{db: db}
}

func (b *SQLBackend) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := b.db.QueryRowContext(ctx, `
		SELECT value FROM poll_storage WHERE storage_key = $1
	`, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (b *SQLBackend) SetItem(ctx context.Context, key, value string) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO poll_storage (storage_key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (storage_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	return err
}

func (b *SQLBackend) RemoveItem(ctx context.Context, key string) error {
	_, err := b.db.ExecContext(ctx, `DELETE FROM poll_storage WHERE storage_key = $1`, key)
	return err
}
