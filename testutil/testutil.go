// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pollwidget/db"
	"github.com/danielhkuo/pollwidget/document"
	"github.com/danielhkuo/pollwidget/models"
	"github.com/danielhkuo/pollwidget/store"
)

// SetupTestDB opens an in-memory sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// DiscardLogger returns a logger that drops everything
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SampleQuestions returns the question set used across tests
func SampleQuestions() []models.Question {
	return []models.Question{
		{Text: "How you feel today:", Options: []string{"Great", "Okay", "Not so good"}},
		{Text: "Coffee or tea?", Options: []string{"Coffee", "Tea"}},
	}
}

// NewMemoryVoteStore returns a vote store whose two scopes are in-memory backends
func NewMemoryVoteStore() (*store.VoteStore, *store.MemoryBackend, *store.MemoryBackend) {
	session := store.NewMemoryBackend()
	durable := store.NewMemoryBackend()
	return store.New(session, durable, DiscardLogger()), session, durable
}

// SeedDurable writes records into the durable scope for widgetID
func SeedDurable(t *testing.T, vs *store.VoteStore, widgetID string, records ...models.VoteRecord) {
	t.Helper()

	if err := vs.Durable.Save(context.Background(), store.DurableKey(widgetID), records); err != nil {
		t.Fatalf("Failed to seed durable votes: %v", err)
	}
}

// SeedSession writes records into the session scope for widgetID
func SeedSession(t *testing.T, vs *store.VoteStore, widgetID string, records ...models.VoteRecord) {
	t.Helper()

	if err := vs.Session.Save(context.Background(), store.SessionKey(widgetID), records); err != nil {
		t.Fatalf("Failed to seed session votes: %v", err)
	}
}

// Votes builds n identical records
func Votes(widgetID string, questionIndex, optionIndex, n int) []models.VoteRecord {
	records := make([]models.VoteRecord, n)
	for i := range records {
		records[i] = models.VoteRecord{QuestionIndex: questionIndex, OptionIndex: optionIndex, WidgetID: widgetID}
	}
	return records
}

// FailingBackend wraps a backend and fails SetItem for keys listed in FailKeys
type FailingBackend struct {
	store.Backend
	FailKeys map[string]error
}

func (f *FailingBackend) SetItem(ctx context.Context, key, value string) error {
	if err, ok := f.FailKeys[key]; ok {
		return err
	}
	return f.Backend.SetItem(ctx, key, value)
}

// NewTestDocument parses a page containing one empty div per container id
func NewTestDocument(t *testing.T, containerIDs ...string) *document.Document {
	t.Helper()

	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><title>test</title></head><body>")
	for _, id := range containerIDs {
		b.WriteString(`<div id="` + id + `"></div>`)
	}
	b.WriteString("</body></html>")

	doc, err := document.Parse(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("Failed to parse test document: %v", err)
	}
	return doc
}
