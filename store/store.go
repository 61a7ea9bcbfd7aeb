// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/pollwidget/models"
)

// Key prefixes are part of the durable format. Renaming them orphans stored votes.
const (
	SessionKeyPrefix = "poll_responses_"
	DurableKeyPrefix = "total_poll_responses_"
)

// Scope names
const (
	ScopeSession = "session"
	ScopeDurable = "durable"
)

// Backend is a raw string key-value store with Web Storage semantics.
type Backend interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// SessionKey returns the session-scope key for a widget
func SessionKey(widgetID string) string {
	return SessionKeyPrefix + widgetID
}

// DurableKey returns the durable-scope key for a widget
func DurableKey(widgetID string) string {
	return DurableKeyPrefix + widgetID
}

// Scope stores vote record lists as JSON on top of a Backend.
type Scope struct {
	name    string
	backend Backend
	logger  *slog.Logger
}

// NewScope wraps a backend. A nil logger falls back to slog.Default().
func NewScope(name string, backend Backend, logger *slog.Logger) *Scope {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scope{name: name, backend: backend, logger: logger}
}

// Name returns the scope name
func (s *Scope) Name() string {
	return s.name
}

// Load returns the records stored under key.
// Absent or malformed content yields an empty list; only backend failures are errors.
func (s *Scope) Load(ctx context.Context, key string) ([]models.VoteRecord, error) {
	raw, ok, err := s.backend.GetItem(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s %q: %w", s.name, key, err)
	}
	if !ok {
		return []models.VoteRecord{}, nil
	}

	var records []models.VoteRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Warn("malformed stored data, treating as empty",
			"scope", s.name,
			"key", key,
			"error", err,
		)
		return []models.VoteRecord{}, nil
	}
	if records == nil {
		// a stored JSON null
		records = []models.VoteRecord{}
	}

	return records, nil
}

// Save replaces the full record list under key with a single write.
func (s *Scope) Save(ctx context.Context, key string, records []models.VoteRecord) error {
	if records == nil {
		records = []models.VoteRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s %q: %w", s.name, key, err)
	}
	if err := s.backend.SetItem(ctx, key, string(data)); err != nil {
		return fmt.Errorf("save %s %q: %w", s.name, key, err)
	}
	return nil
}

// Clear removes all records under key.
func (s *Scope) Clear(ctx context.Context, key string) error {
	if err := s.backend.RemoveItem(ctx, key); err != nil {
		return fmt.Errorf("clear %s %q: %w", s.name, key, err)
	}
	return nil
}

// VoteStore groups the session and durable scopes.
type VoteStore struct {
	Session *Scope
	Durable *Scope
}

// New builds a VoteStore from two backends.
func New(session, durable Backend, logger *slog.Logger) *VoteStore {
	return &VoteStore{
		Session: NewScope(ScopeSession, session, logger),
		Durable: NewScope(ScopeDurable, durable, logger),
	}
}
