// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollwidget/models"
)

// Requires a reachable redis server; set TEST_REDIS_ADDR to run.
func TestRedisBackend_DurableScope(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	backend := NewRedisBackend(addr, "", 0)
	defer backend.Close()
	require.NoError(t, backend.Ping(ctx))

	scope := NewScope(ScopeDurable, backend, nil)
	key := DurableKey("redis-test-widget")
	t.Cleanup(func() { _ = scope.Clear(context.Background(), key) })

	loaded, err := scope.Load(ctx, key)
	require.NoError(t, err)
	require.Empty(t, loaded)

	records := []models.VoteRecord{{QuestionIndex: 1, OptionIndex: 0, WidgetID: "redis-test-widget"}}
	require.NoError(t, scope.Save(ctx, key, records))

	loaded, err = scope.Load(ctx, key)
	require.NoError(t, err)
	require.Equal(t, records, loaded)
}
