// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollwidget/models"
)

type failingBackend struct {
	err error
}

func (f failingBackend) GetItem(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingBackend) SetItem(context.Context, string, string) error         { return f.err }
func (f failingBackend) RemoveItem(context.Context, string) error               { return f.err }

func TestKeys(t *testing.T) {
	require.Equal(t, "poll_responses_poll-container", SessionKey("poll-container"))
	require.Equal(t, "total_poll_responses_poll-container", DurableKey("poll-container"))
}

func TestScope_LoadMissingKey(t *testing.T) {
	scope := NewScope(ScopeSession, NewMemoryBackend(), nil)

	records, err := scope.Load(context.Background(), SessionKey("absent"))
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestScope_LoadMalformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not json", "definitely not json"},
		{"object instead of array", `{"questionIndex":0}`},
		{"truncated", `[{"questionIndex":0,`},
		{"wrong field types", `[{"questionIndex":"zero"}]`},
		{"json null", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			backend := NewMemoryBackend()
			require.NoError(t, backend.SetItem(ctx, "k", tt.value))

			records, err := NewScope(ScopeDurable, backend, nil).Load(ctx, "k")
			require.NoError(t, err)
			require.NotNil(t, records)
			require.Empty(t, records)
		})
	}
}

func TestScope_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	scope := NewScope(ScopeDurable, backend, nil)
	key := DurableKey("w1")

	records := []models.VoteRecord{
		{QuestionIndex: 0, OptionIndex: 1, WidgetID: "w1"},
		{QuestionIndex: 1, OptionIndex: 0, WidgetID: "w1"},
	}
	require.NoError(t, scope.Save(ctx, key, records))

	raw, ok, err := backend.GetItem(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[
		{"questionIndex":0,"optionIndex":1,"containerId":"w1"},
		{"questionIndex":1,"optionIndex":0,"containerId":"w1"}
	]`, raw)

	loaded, err := scope.Load(ctx, key)
	require.NoError(t, err)
	require.Equal(t, records, loaded)

	require.NoError(t, scope.Clear(ctx, key))
	loaded, err = scope.Load(ctx, key)
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestScope_SaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, NewScope(ScopeSession, backend, nil).Save(ctx, "k", nil))

	raw, _, _ := backend.GetItem(ctx, "k")
	require.Equal(t, "[]", raw)
}

func TestScope_BackendErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("quota exceeded")
	scope := NewScope(ScopeDurable, failingBackend{err: boom}, nil)

	_, err := scope.Load(ctx, "k")
	require.ErrorIs(t, err, boom)

	err = scope.Save(ctx, "k", []models.VoteRecord{{WidgetID: "w"}})
	require.ErrorIs(t, err, boom)

	err = scope.Clear(ctx, "k")
	require.ErrorIs(t, err, boom)
}

func TestNew_ScopeNames(t *testing.T) {
	vs := New(NewMemoryBackend(), NewMemoryBackend(), nil)
	require.Equal(t, ScopeSession, vs.Session.Name())
	require.Equal(t, ScopeDurable, vs.Durable.Name())
}
