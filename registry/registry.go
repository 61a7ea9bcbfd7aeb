// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Instance is a live widget the registry can tear down
type Instance interface {
	WidgetID() string
	PurgeSession(ctx context.Context) error
}

// Registry tracks live widgets and the question sets already rendered.
// One registry is shared by every widget on a page.
type Registry struct {
	mu        sync.Mutex
	instances []Instance
	rendered  map[string]bool
	logger    *slog.Logger
}

// New creates an empty registry. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		rendered: make(map[string]bool),
		logger:   logger,
	}
}

// HasRendered reports whether sig was marked rendered
func (r *Registry) HasRendered(sig string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rendered[sig]
}

// MarkRendered records sig as rendered for the life of the registry
func (r *Registry) MarkRendered(sig string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rendered[sig] = true
}

// Register adds a live widget
func (r *Registry) Register(inst Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances = append(r.instances, inst)
}

// Len returns the number of registered widgets
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}

// UnregisterAll purges the session votes of every registered widget and
// forgets them. Durable votes are left alone. Purge failures are joined
// and returned after every widget has been tried.
func (r *Registry) UnregisterAll(ctx context.Context) error {
	r.mu.Lock()
	instances := r.instances
	r.instances = nil
	r.mu.Unlock()

	var errs []error
	for _, inst := range instances {
		if err := inst.PurgeSession(ctx); err != nil {
			r.logger.Error("failed to purge session votes", "widget_id", inst.WidgetID(), "error", err)
			errs = append(errs, fmt.Errorf("widget %s: %w", inst.WidgetID(), err))
			continue
		}
		r.logger.Debug("session votes purged", "widget_id", inst.WidgetID())
	}
	return errors.Join(errs...)
}

// Reset forgets all widgets and rendered signatures without purging anything
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances = nil
	r.rendered = make(map[string]bool)
}
