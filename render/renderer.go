// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/net/html"

	"github.com/danielhkuo/pollwidget/document"
	"github.com/danielhkuo/pollwidget/models"
)

// Renderer draws poll blocks and reflects vote results.
// The widget decides when these are called and with what data.
type Renderer interface {
	BuildQuestionBlock(question models.Question, index int, tally models.QuestionTally) *html.Node
	AttachOptionHandler(block *html.Node, questionIndex, optionIndex int, onSelect func(ctx context.Context))
	UpdateResultDisplay(questionIndex int, tally int, percentages []float64)
}

type optionKey struct {
	question int
	option   int
}

type animation struct {
	node   *html.Node
	frames []float64
	next   int
}

// DOMRenderer renders into a container element of a Document.
// Result animations advance one frame per Step call.
type DOMRenderer struct {
	container  *html.Node
	handlers   map[optionKey]func(ctx context.Context)
	animations []*animation
	duration   time.Duration
	frame      time.Duration
	logger     *slog.Logger
}

// NewDOMRenderer renders into container. A nil logger falls back to slog.Default().
func NewDOMRenderer(container *html.Node, logger *slog.Logger) *DOMRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &DOMRenderer{
		container: container,
		handlers:  make(map[optionKey]func(ctx context.Context)),
		duration:  RevealDuration,
		frame:     FrameInterval,
		logger:    logger,
	}
}

// SetTiming overrides the reveal duration and frame interval
func (r *DOMRenderer) SetTiming(duration, frame time.Duration) {
	r.duration = duration
	r.frame = frame
}

// BuildQuestionBlock creates the block for one question:
//
//	div.poll-wrapper > div.poll > p, ul.poll-choices, div.result
func (r *DOMRenderer) BuildQuestionBlock(question models.Question, index int, tally models.QuestionTally) *html.Node {
	wrapper := document.Element("div", []string{"poll-wrapper"})
	poll := document.Element("div", []string{"poll"})

	text := document.Element("p", nil)
	document.SetText(text, question.Text)
	poll.AppendChild(text)

	ul := document.Element("ul", []string{"poll-choices"})
	for optionIndex, option := range question.Options {
		percentage := 0.0
		if optionIndex < len(tally.Percentages) {
			percentage = tally.Percentages[optionIndex]
		}
		ul.AppendChild(buildOption(option, optionIndex, percentage))
	}
	poll.AppendChild(ul)

	result := document.Element("div", []string{"result"},
		document.Attr("data-question-index", strconv.Itoa(index)),
	)
	document.SetText(result, fmt.Sprintf("Total Votes: %d", tally.Total))
	poll.AppendChild(result)

	wrapper.AppendChild(poll)
	return wrapper
}

func buildOption(option string, optionIndex int, percentage float64) *html.Node {
	choiceID := "choice-" + strconv.Itoa(optionIndex)

	li := document.Element("li", []string{"poll-choice", choiceID})
	label := document.Element("label", nil, document.Attr("for", choiceID))

	resultDiv := document.Element("div", []string{"poll-result"},
		document.Attr("style", "--percent: "+formatPercent(percentage)+"%"),
	)
	star := document.Element("div", []string{"star"})
	star.AppendChild(document.Element("div", nil))
	resultDiv.AppendChild(star)

	pollLabel := document.Element("div", []string{"poll-label"})
	radio := document.Element("div", []string{"radio"})
	radio.AppendChild(document.Element("input", nil,
		document.Attr("type", "radio"),
		document.Attr("id", choiceID),
		document.Attr("name", "poll"),
	))
	answer := document.Element("div", []string{"answer"})
	document.SetText(answer, option)
	percent := document.Element("div", []string{"poll-percent"})
	document.SetText(percent, formatPercent(percentage))

	pollLabel.AppendChild(radio)
	pollLabel.AppendChild(answer)
	pollLabel.AppendChild(percent)

	label.AppendChild(resultDiv)
	label.AppendChild(pollLabel)
	li.AppendChild(label)
	return li
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

// AttachOptionHandler registers onSelect for the option's label inside block.
func (r *DOMRenderer) AttachOptionHandler(block *html.Node, questionIndex, optionIndex int, onSelect func(ctx context.Context)) {
	sel := fmt.Sprintf(".choice-%d label", optionIndex)
	if document.QuerySelector(block, sel) == nil {
		r.logger.Warn("no option element to attach handler to",
			"question_index", questionIndex,
			"option_index", optionIndex,
		)
		return
	}
	r.handlers[optionKey{question: questionIndex, option: optionIndex}] = onSelect
}

// Select dispatches a selection to the option's handler, like a click on its label.
// It reports whether a handler was attached.
func (r *DOMRenderer) Select(ctx context.Context, questionIndex, optionIndex int) bool {
	h, ok := r.handlers[optionKey{question: questionIndex, option: optionIndex}]
	if !ok {
		return false
	}
	h(ctx)
	return true
}

// HandlerCount returns the number of attached option handlers
func (r *DOMRenderer) HandlerCount() int {
	return len(r.handlers)
}

// UpdateResultDisplay writes the new tally and starts the reveal animation.
// Without a rendered result element for the question the update is skipped.
func (r *DOMRenderer) UpdateResultDisplay(questionIndex int, tally int, percentages []float64) {
	sel := fmt.Sprintf(`.result[data-question-index="%d"]`, questionIndex)
	result := document.QuerySelector(r.container, sel)
	if result == nil {
		r.logger.Debug("no rendered result element, skipping update", "question_index", questionIndex)
		return
	}
	document.SetText(result, fmt.Sprintf("Votes: %d", tally))

	poll := document.Closest(result, ".poll")
	if poll == nil {
		return
	}
	document.AddClass(poll, "answered")

	winners := Winners(percentages)
	for i, choice := range document.QuerySelectorAll(poll, ".poll-choice") {
		if i >= len(percentages) {
			break
		}
		document.ToggleClass(choice, "winner", winners[i])
		if bar := document.QuerySelector(choice, ".poll-result"); bar != nil {
			document.SetStyleProperty(bar, "--percent", formatPercent(percentages[i])+"%")
		}
		if label := document.QuerySelector(choice, ".poll-percent"); label != nil {
			r.startAnimation(label, percentages[i])
		}
	}
}

// startAnimation shows the first frame immediately and queues the rest
func (r *DOMRenderer) startAnimation(node *html.Node, target float64) {
	a := &animation{
		node:   node,
		frames: Interpolate(0, target, r.duration, r.frame, EaseQuad),
	}
	a.step()
	if a.next < len(a.frames) {
		r.animations = append(r.animations, a)
	}
}

func (a *animation) step() {
	document.SetText(a.node, FormatFrame(a.frames[a.next]))
	a.next++
}

// Step advances every running animation by one frame.
// It reports whether any animation is still running.
func (r *DOMRenderer) Step() bool {
	running := r.animations[:0]
	for _, a := range r.animations {
		a.step()
		if a.next < len(a.frames) {
			running = append(running, a)
		}
	}
	r.animations = running
	return len(r.animations) > 0
}

// Animating reports whether a reveal animation is in flight
func (r *DOMRenderer) Animating() bool {
	return len(r.animations) > 0
}

// Flush runs all animations to completion
func (r *DOMRenderer) Flush() {
	for r.Step() {
	}
}
