// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/net/html"

	"github.com/danielhkuo/pollwidget/document"
	"github.com/danielhkuo/pollwidget/render"
	"github.com/danielhkuo/pollwidget/widget"
)

// Clickable is a renderer the terminal can drive: it dispatches option
// selections and advances result animations frame by frame.
type Clickable interface {
	Select(ctx context.Context, questionIndex, optionIndex int) bool
	Step() bool
	Animating() bool
}

type frameMsg time.Time

type optionRef struct {
	widget   int
	question int
	option   int
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")).MarginBottom(1)
	questionStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	winnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	boxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// App shows every rendered widget of a page and lets the user vote from the keyboard.
type App struct {
	ctx       context.Context
	title     string
	widgets   []*widget.Widget
	clickable []Clickable
	options   []optionRef
	cursor    int
	status    string
	keys      keyMap
	help      help.Model
	ticking   bool
	logger    *slog.Logger
}

// New builds the app over rendered widgets. Widgets whose renderer cannot be
// driven from the terminal are shown but not selectable.
func New(ctx context.Context, title string, widgets []*widget.Widget, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		ctx:       ctx,
		title:     title,
		widgets:   widgets,
		clickable: make([]Clickable, len(widgets)),
		keys:      defaultKeyMap(),
		help:      help.New(),
		logger:    logger,
	}

	for i, w := range widgets {
		c, ok := w.Renderer().(Clickable)
		if !ok {
			logger.Warn("renderer is not selectable from the terminal", "widget_id", w.WidgetID())
			continue
		}
		a.clickable[i] = c
		for q, block := range document.QuerySelectorAll(w.Container(), ".poll") {
			for o := range document.QuerySelectorAll(block, ".poll-choice") {
				a.options = append(a.options, optionRef{widget: i, question: q, option: o})
			}
		}
	}
	if len(a.options) == 0 {
		a.status = "Nothing to vote on."
	}
	return a
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update handles key presses and animation frames.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.help.Width = msg.Width
		return a, nil

	case frameMsg:
		running := false
		for _, c := range a.clickable {
			if c != nil && c.Animating() && c.Step() {
				running = true
			}
		}
		if !running {
			a.ticking = false
			return a, nil
		}
		return a, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
		case key.Matches(msg, a.keys.Up):
			if a.cursor > 0 {
				a.cursor--
			}
		case key.Matches(msg, a.keys.Down):
			if a.cursor < len(a.options)-1 {
				a.cursor++
			}
		case key.Matches(msg, a.keys.Vote):
			return a, a.vote()
		}
	}
	return a, nil
}

func (a *App) vote() tea.Cmd {
	if len(a.options) == 0 {
		return nil
	}
	ref := a.options[a.cursor]
	w := a.widgets[ref.widget]

	if w.HasVoted(ref.question) {
		a.status = "You already voted on this question."
		return nil
	}
	a.clickable[ref.widget].Select(a.ctx, ref.question, ref.option)
	if !w.HasVoted(ref.question) {
		a.status = "Your vote could not be saved, see the log for details."
		return nil
	}
	a.status = "Vote recorded."

	if a.ticking {
		return nil
	}
	a.ticking = true
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(render.FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// View renders the polls as they currently appear in the document.
func (a *App) View() string {
	sections := []string{titleStyle.Render(a.title)}

	next := 0
	for i, w := range a.widgets {
		var b strings.Builder
		for q, block := range document.QuerySelectorAll(w.Container(), ".poll") {
			if q > 0 {
				b.WriteString("\n")
			}
			b.WriteString(questionStyle.Render(document.Text(document.QuerySelector(block, "p"))))
			b.WriteString("\n")
			for o, choice := range document.QuerySelectorAll(block, ".poll-choice") {
				selected := a.clickable[i] != nil && next < len(a.options) && next == a.cursor
				if a.clickable[i] != nil {
					next++
				}
				b.WriteString(a.renderChoice(w, q, o, choice, selected))
				b.WriteString("\n")
			}
			b.WriteString(mutedStyle.Render(document.Text(document.QuerySelector(block, ".result"))))
			b.WriteString("\n")
		}
		if b.Len() == 0 {
			continue
		}
		sections = append(sections, boxStyle.Render(strings.TrimRight(b.String(), "\n")))
	}

	if a.status != "" {
		sections = append(sections, mutedStyle.Render(a.status))
	}
	sections = append(sections, a.help.View(a.keys))
	return strings.Join(sections, "\n")
}

func (a *App) renderChoice(w *widget.Widget, q, o int, choice *html.Node, selected bool) string {
	marker := "  "
	if selected {
		marker = cursorStyle.Render("> ")
	}

	answer := document.Text(document.QuerySelector(choice, ".answer"))
	if document.HasClass(choice, "winner") {
		answer = winnerStyle.Render(answer)
	}

	percent := document.Text(document.QuerySelector(choice, ".poll-percent"))
	count := w.OptionTally(q, o)
	votes := "votes"
	if count == 1 {
		votes = "vote"
	}

	return fmt.Sprintf("%s%s  %s  %s", marker, answer, percent,
		mutedStyle.Render(fmt.Sprintf("(%s %s)", humanize.Comma(int64(count)), votes)))
}
