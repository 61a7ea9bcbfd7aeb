// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/danielhkuo/pollwidget/models"
	"github.com/danielhkuo/pollwidget/store"
	"github.com/danielhkuo/pollwidget/testutil"
)

var propertyQuestions = []models.Question{
	{Text: "first", Options: []string{"a", "b", "c"}},
	{Text: "second", Options: []string{"d", "e"}},
}

// TestPercentagesSumProperty verifies percentages sum to 100 when votes exist.
// Property: Tally(q) > 0 => sum(Percentages(q)) == 100
func TestPercentagesSumProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("percentages sum to 100 or are all zero", prop.ForAll(
		func(options []int) bool {
			vs, _, _ := testutil.NewMemoryVoteStore()
			records := make([]models.VoteRecord, len(options))
			for i, o := range options {
				records[i] = models.VoteRecord{QuestionIndex: 0, OptionIndex: o, WidgetID: "p"}
			}
			if err := vs.Durable.Save(context.Background(), store.DurableKey("p"), records); err != nil {
				return false
			}

			l, err := Load(context.Background(), "p", propertyQuestions, vs, testutil.DiscardLogger())
			if err != nil {
				return false
			}

			sum := 0.0
			for _, p := range l.Percentages(0) {
				sum += p
			}
			if l.Tally(0) == 0 {
				return sum == 0
			}
			return math.Abs(sum-100.0) < 1e-9
		},
		gen.SliceOf(gen.IntRange(0, 2)),
	))

	properties.TestingRun(t)
}

// TestOneVotePerQuestionProperty verifies the session dedup rule.
// Property: any vote sequence accepts at most one vote per question
func TestOneVotePerQuestionProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("at most one accepted vote per question per session", prop.ForAll(
		func(questions []int, options []int) bool {
			vs, _, _ := testutil.NewMemoryVoteStore()
			l, err := Load(context.Background(), "p", propertyQuestions, vs, testutil.DiscardLogger())
			if err != nil {
				return false
			}

			accepted := make(map[int]int)
			for i := 0; i < len(questions) && i < len(options); i++ {
				result, err := l.RecordVote(context.Background(), questions[i], options[i])
				if err != nil {
					return false
				}
				if result.Accepted() {
					accepted[questions[i]]++
				}
			}

			for q, n := range accepted {
				if n > 1 || l.Tally(q) != n {
					return false
				}
			}
			return len(l.SessionVotes()) == len(accepted)
		},
		gen.SliceOf(gen.IntRange(-1, 2)),
		gen.SliceOf(gen.IntRange(-1, 3)),
	))

	properties.TestingRun(t)
}
