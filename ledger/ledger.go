// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/pollwidget/models"
	"github.com/danielhkuo/pollwidget/store"
)

// PersistenceError reports a failed write. The ledger is rolled back when it is returned.
type PersistenceError struct {
	Scope string
	Key   string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s votes under %q: %v", e.Scope, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Ledger holds session and total votes for one widget.
// It assumes a single writer.
type Ledger struct {
	widgetID  string
	questions []models.Question
	store     *store.VoteStore
	logger    *slog.Logger

	session []models.VoteRecord
	total   []models.VoteRecord
}

// Load builds a ledger from the records persisted for widgetID.
func Load(ctx context.Context, widgetID string, questions []models.Question, vs *store.VoteStore, logger *slog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = slog.Default()
	}

	session, err := vs.Session.Load(ctx, store.SessionKey(widgetID))
	if err != nil {
		return nil, fmt.Errorf("failed to load session votes: %w", err)
	}
	total, err := vs.Durable.Load(ctx, store.DurableKey(widgetID))
	if err != nil {
		return nil, fmt.Errorf("failed to load total votes: %w", err)
	}

	l := &Ledger{
		widgetID:  widgetID,
		questions: questions,
		store:     vs,
		logger:    logger,
		session:   session,
		total:     total,
	}
	l.dropOrphanedSessionVotes()
	l.warnOutOfRangeVotes()

	return l, nil
}

// warnOutOfRangeVotes logs stored votes that no current question or option
// matches. They stay in storage but are left out of every tally.
func (l *Ledger) warnOutOfRangeVotes() {
	for _, r := range l.total {
		if r.WidgetID == l.widgetID && !l.validIndex(r.QuestionIndex, r.OptionIndex) {
			l.logger.Warn("ignoring stored vote outside the question set",
				"widget_id", l.widgetID,
				"question_index", r.QuestionIndex,
				"option_index", r.OptionIndex,
			)
		}
	}
}

// dropOrphanedSessionVotes keeps session votes a subset of total votes.
// Session records without a matching total record are discarded in memory only.
func (l *Ledger) dropOrphanedSessionVotes() {
	available := make(map[models.VoteRecord]int)
	for _, r := range l.total {
		available[r]++
	}

	kept := l.session[:0]
	for _, r := range l.session {
		if available[r] > 0 {
			available[r]--
			kept = append(kept, r)
			continue
		}
		l.logger.Warn("dropping session vote with no matching total",
			"widget_id", l.widgetID,
			"question_index", r.QuestionIndex,
			"option_index", r.OptionIndex,
		)
	}
	l.session = kept
}

// WidgetID returns the id votes are recorded under
func (l *Ledger) WidgetID() string {
	return l.widgetID
}

// RecordVote accepts at most one vote per question per session.
// Rejections are reported in the result; the error is non-nil only for persistence failures.
func (l *Ledger) RecordVote(ctx context.Context, questionIndex, optionIndex int) (models.VoteResult, error) {
	result := models.VoteResult{
		Status:        models.VoteRejected,
		QuestionIndex: questionIndex,
		OptionIndex:   optionIndex,
	}

	if !l.validIndex(questionIndex, optionIndex) {
		l.logger.Warn("vote rejected: invalid index",
			"widget_id", l.widgetID,
			"question_index", questionIndex,
			"option_index", optionIndex,
		)
		result.Reason = models.ReasonInvalidIndex
		return result, nil
	}

	if l.HasVoted(questionIndex) {
		l.logger.Info("vote rejected: already voted for this question in this session",
			"widget_id", l.widgetID,
			"question_index", questionIndex,
		)
		result.Reason = models.ReasonAlreadyVoted
		return result, nil
	}

	record := models.VoteRecord{
		QuestionIndex: questionIndex,
		OptionIndex:   optionIndex,
		WidgetID:      l.widgetID,
	}

	prevSession := l.session
	prevTotal := l.total
	l.session = appendRecord(l.session, record)
	l.total = appendRecord(l.total, record)

	if err := l.persist(ctx, prevSession); err != nil {
		l.session = prevSession
		l.total = prevTotal
		l.logger.Error("vote rolled back", "widget_id", l.widgetID, "error", err)
		return result, err
	}

	l.logger.Info("vote recorded",
		"widget_id", l.widgetID,
		"question_index", questionIndex,
		"option_index", optionIndex,
		"total", l.Tally(questionIndex),
	)

	result.Status = models.VoteAccepted
	return result, nil
}

// persist writes the session scope, then the durable scope. If the durable write
// fails, the session scope is restored to prevSession.
func (l *Ledger) persist(ctx context.Context, prevSession []models.VoteRecord) error {
	sessionKey := store.SessionKey(l.widgetID)
	if err := l.store.Session.Save(ctx, sessionKey, l.session); err != nil {
		return &PersistenceError{Scope: store.ScopeSession, Key: sessionKey, Err: err}
	}

	durableKey := store.DurableKey(l.widgetID)
	if err := l.store.Durable.Save(ctx, durableKey, l.total); err != nil {
		if restoreErr := l.store.Session.Save(ctx, sessionKey, prevSession); restoreErr != nil {
			l.logger.Error("failed to restore session votes", "widget_id", l.widgetID, "error", restoreErr)
		}
		return &PersistenceError{Scope: store.ScopeDurable, Key: durableKey, Err: err}
	}

	return nil
}

// appendRecord never writes into a backing array shared with a previous slice,
// so a rollback can restore the old slice header.
func appendRecord(records []models.VoteRecord, r models.VoteRecord) []models.VoteRecord {
	out := make([]models.VoteRecord, len(records), len(records)+1)
	copy(out, records)
	return append(out, r)
}

func (l *Ledger) validIndex(questionIndex, optionIndex int) bool {
	if questionIndex < 0 || questionIndex >= len(l.questions) {
		return false
	}
	return optionIndex >= 0 && optionIndex < len(l.questions[questionIndex].Options)
}

// HasVoted reports whether this session already voted on the question
func (l *Ledger) HasVoted(questionIndex int) bool {
	for _, r := range l.session {
		if r.QuestionIndex == questionIndex && r.WidgetID == l.widgetID {
			return true
		}
	}
	return false
}

// Tally counts total votes for a question.
// Stored votes for options the question no longer has are not counted.
func (l *Ledger) Tally(questionIndex int) int {
	count := 0
	for _, r := range l.total {
		if r.QuestionIndex == questionIndex && r.WidgetID == l.widgetID && l.validIndex(r.QuestionIndex, r.OptionIndex) {
			count++
		}
	}
	return count
}

// OptionTally counts total votes for one option of a question
func (l *Ledger) OptionTally(questionIndex, optionIndex int) int {
	count := 0
	for _, r := range l.total {
		if r.QuestionIndex == questionIndex && r.OptionIndex == optionIndex && r.WidgetID == l.widgetID {
			count++
		}
	}
	return count
}

// Percentages returns each option's share of the question's votes, in option order.
// All entries are 0 when the question has no votes.
func (l *Ledger) Percentages(questionIndex int) []float64 {
	n := l.optionCount(questionIndex)
	percentages := make([]float64, n)

	tally := l.Tally(questionIndex)
	if tally == 0 {
		return percentages
	}
	for i := range percentages {
		percentages[i] = float64(l.OptionTally(questionIndex, i)) / float64(tally) * 100
	}
	return percentages
}

// Snapshot returns the counts a renderer needs for one question
func (l *Ledger) Snapshot(questionIndex int) models.QuestionTally {
	n := l.optionCount(questionIndex)
	options := make([]int, n)
	for i := range options {
		options[i] = l.OptionTally(questionIndex, i)
	}
	return models.QuestionTally{
		Total:       l.Tally(questionIndex),
		Options:     options,
		Percentages: l.Percentages(questionIndex),
	}
}

func (l *Ledger) optionCount(questionIndex int) int {
	if questionIndex < 0 || questionIndex >= len(l.questions) {
		return 0
	}
	return len(l.questions[questionIndex].Options)
}

// SessionVotes returns a copy of this session's votes
func (l *Ledger) SessionVotes() []models.VoteRecord {
	return append([]models.VoteRecord(nil), l.session...)
}

// TotalVotes returns a copy of all persisted votes
func (l *Ledger) TotalVotes() []models.VoteRecord {
	return append([]models.VoteRecord(nil), l.total...)
}

// PurgeSession removes this widget's session votes from storage and memory.
// Total votes are kept.
func (l *Ledger) PurgeSession(ctx context.Context) error {
	if err := l.store.Session.Clear(ctx, store.SessionKey(l.widgetID)); err != nil {
		return fmt.Errorf("failed to purge session votes: %w", err)
	}
	l.session = nil
	return nil
}
