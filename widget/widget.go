// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package widget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/net/html"

	"github.com/danielhkuo/pollwidget/document"
	"github.com/danielhkuo/pollwidget/ledger"
	"github.com/danielhkuo/pollwidget/models"
	"github.com/danielhkuo/pollwidget/registry"
	"github.com/danielhkuo/pollwidget/render"
	"github.com/danielhkuo/pollwidget/store"
)

// State is the lifecycle stage of a widget
type State int

const (
	Uninitialized State = iota
	Constructed
	Rendered
)

func (s State) String() string {
	switch s {
	case Constructed:
		return "constructed"
	case Rendered:
		return "rendered"
	default:
		return "uninitialized"
	}
}

var (
	ErrNoRegistry = errors.New("registry is required")
	ErrNoStore    = errors.New("vote store is required")
	ErrMissingID  = errors.New("container element has no id")
)

// Options are the collaborators of a widget.
// Registry and Store are required; Renderer defaults to a DOMRenderer on the container.
type Options struct {
	Registry *registry.Registry
	Store    *store.VoteStore
	Renderer render.Renderer
	Logger   *slog.Logger
}

// Widget is one poll bound to a container element
type Widget struct {
	id        string
	container *html.Node
	questions []models.Question
	ledger    *ledger.Ledger
	registry  *registry.Registry
	renderer  render.Renderer
	logger    *slog.Logger
	state     State
}

// New resolves the container, loads persisted votes and registers the widget.
// It fails with document.ErrElementNotFound when selector matches nothing.
func New(ctx context.Context, doc *document.Document, selector string, questions []models.Question, opts Options) (*Widget, error) {
	if opts.Registry == nil {
		return nil, ErrNoRegistry
	}
	if opts.Store == nil {
		return nil, ErrNoStore
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	questions = cloneQuestions(questions)

	container, err := doc.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	id, _ := document.GetAttr(container, "id")
	if id == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingID, selector)
	}
	logger = logger.With("widget_id", id)

	l, err := ledger.Load(ctx, id, questions, opts.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load votes for %s: %w", id, err)
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.NewDOMRenderer(container, logger)
	}

	w := &Widget{
		id:        id,
		container: container,
		questions: questions,
		ledger:    l,
		registry:  opts.Registry,
		renderer:  renderer,
		logger:    logger,
		state:     Constructed,
	}
	opts.Registry.Register(w)

	return w, nil
}

// Render draws the question blocks once per page for this widget and question set.
// It reports whether anything was drawn.
func (w *Widget) Render() (bool, error) {
	if len(w.questions) == 0 {
		w.logger.Info("no questions to render")
		return false, nil
	}

	sig, err := registry.Signature(w.id, w.questions)
	if err != nil {
		return false, fmt.Errorf("failed to compute render signature: %w", err)
	}
	if w.registry.HasRendered(sig) {
		w.logger.Debug("question set already rendered")
		return false, nil
	}

	for q, question := range w.questions {
		block := w.renderer.BuildQuestionBlock(question, q, w.ledger.Snapshot(q))
		w.container.AppendChild(block)

		for o := range question.Options {
			w.renderer.AttachOptionHandler(block, q, o, func(ctx context.Context) {
				if _, err := w.Vote(ctx, q, o); err != nil {
					w.logger.Error("vote failed", "question_index", q, "option_index", o, "error", err)
				}
			})
		}
	}

	w.registry.MarkRendered(sig)
	w.state = Rendered
	w.logger.Info("widget rendered", "questions", len(w.questions))
	return true, nil
}

// Vote records a vote for option o of question q.
// Rejections are reported in the result; err is non-nil only when persisting failed.
func (w *Widget) Vote(ctx context.Context, q, o int) (models.VoteResult, error) {
	result, err := w.ledger.RecordVote(ctx, q, o)
	if err != nil {
		return result, err
	}
	if !result.Accepted() {
		return result, nil
	}

	if w.state == Rendered {
		w.renderer.UpdateResultDisplay(q, w.ledger.Tally(q), w.ledger.Percentages(q))
	}
	return result, nil
}

// PurgeSession clears this widget's session votes from storage
func (w *Widget) PurgeSession(ctx context.Context) error {
	return w.ledger.PurgeSession(ctx)
}

// WidgetID returns the container id
func (w *Widget) WidgetID() string {
	return w.id
}

func (w *Widget) State() State {
	return w.state
}

func (w *Widget) Tally(q int) int {
	return w.ledger.Tally(q)
}

func (w *Widget) OptionTally(q, o int) int {
	return w.ledger.OptionTally(q, o)
}

func (w *Widget) Percentages(q int) []float64 {
	return w.ledger.Percentages(q)
}

func (w *Widget) HasVoted(q int) bool {
	return w.ledger.HasVoted(q)
}

// Container returns the element the widget renders into
func (w *Widget) Container() *html.Node {
	return w.container
}

// Renderer returns the renderer in use
func (w *Widget) Renderer() render.Renderer {
	return w.renderer
}

func cloneQuestions(questions []models.Question) []models.Question {
	if questions == nil {
		return nil
	}
	out := make([]models.Question, len(questions))
	for i, q := range questions {
		out[i] = models.Question{Text: q.Text, Options: slices.Clone(q.Options)}
	}
	return out
}
