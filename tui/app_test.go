// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielhkuo/pollwidget/models"
	"github.com/danielhkuo/pollwidget/registry"
	"github.com/danielhkuo/pollwidget/render"
	"github.com/danielhkuo/pollwidget/testutil"
	"github.com/danielhkuo/pollwidget/widget"
)

func newTestApp(t *testing.T, seed ...models.VoteRecord) (*App, *widget.Widget) {
	t.Helper()

	doc := testutil.NewTestDocument(t, "poll-container")
	vs, _, _ := testutil.NewMemoryVoteStore()
	if len(seed) > 0 {
		testutil.SeedDurable(t, vs, "poll-container", seed...)
	}

	w, err := widget.New(context.Background(), doc, "#poll-container", testutil.SampleQuestions(), widget.Options{
		Registry: registry.New(testutil.DiscardLogger()),
		Store:    vs,
		Logger:   testutil.DiscardLogger(),
	})
	if err != nil {
		t.Fatalf("widget.New() error = %v", err)
	}
	w.Renderer().(*render.DOMRenderer).SetTiming(30*time.Millisecond, 10*time.Millisecond)
	if _, err := w.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	return New(context.Background(), "Polls", []*widget.Widget{w}, testutil.DiscardLogger()), w
}

func press(t *testing.T, a *App, msg tea.KeyMsg) tea.Cmd {
	t.Helper()
	_, cmd := a.Update(msg)
	return cmd
}

// runFrames delivers frame messages until the app stops asking for them
func runFrames(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		if i > 100 {
			t.Fatal("animation did not finish")
		}
		_, cmd = a.Update(frameMsg(time.Now()))
	}
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestNew_CollectsOptions(t *testing.T) {
	a, _ := newTestApp(t)
	if len(a.options) != 5 {
		t.Fatalf("options = %d, want 5", len(a.options))
	}
	last := a.options[4]
	if last.question != 1 || last.option != 1 {
		t.Errorf("last option = %+v, want question 1 option 1", last)
	}
}

func TestCursorMovement(t *testing.T) {
	a, _ := newTestApp(t)

	press(t, a, keyUp)
	if a.cursor != 0 {
		t.Errorf("cursor moved above the first option: %d", a.cursor)
	}
	for i := 0; i < 10; i++ {
		press(t, a, keyDown)
	}
	if a.cursor != 4 {
		t.Errorf("cursor = %d, want 4", a.cursor)
	}
}

func TestVote_AnimatesAndUpdatesView(t *testing.T) {
	a, w := newTestApp(t)

	press(t, a, keyDown)
	cmd := press(t, a, keyEnter)
	if cmd == nil {
		t.Fatal("vote should start the animation tick")
	}
	if w.OptionTally(0, 1) != 1 {
		t.Fatalf("OptionTally(0, 1) = %d, want 1", w.OptionTally(0, 1))
	}
	runFrames(t, a, cmd)

	view := a.View()
	for _, want := range []string{"Votes: 1", "100%", "(1 vote)", "Vote recorded.", "Coffee or tea?"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestVote_AlreadyVoted(t *testing.T) {
	a, w := newTestApp(t)

	runFrames(t, a, press(t, a, keyEnter))
	press(t, a, keyDown)
	if cmd := press(t, a, keySpace); cmd != nil {
		t.Error("rejected vote should not animate")
	}

	if w.Tally(0) != 1 {
		t.Errorf("Tally(0) = %d, want 1", w.Tally(0))
	}
	if !strings.Contains(a.status, "already voted") {
		t.Errorf("status = %q", a.status)
	}
}

func TestView_FormatsCounts(t *testing.T) {
	a, _ := newTestApp(t, testutil.Votes("poll-container", 1, 0, 1234)...)

	view := a.View()
	if !strings.Contains(view, "(1,234 votes)") {
		t.Errorf("view missing formatted count:\n%s", view)
	}
	if !strings.Contains(view, "Total Votes: 1234") {
		t.Errorf("view missing total:\n%s", view)
	}
}

func TestQuit(t *testing.T) {
	a, _ := newTestApp(t)

	cmd := press(t, a, keyQuit)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
