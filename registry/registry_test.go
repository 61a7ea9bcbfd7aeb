// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollwidget/models"
	"github.com/danielhkuo/pollwidget/testutil"
)

type fakeInstance struct {
	id     string
	err    error
	purged int
}

func (f *fakeInstance) WidgetID() string { return f.id }

func (f *fakeInstance) PurgeSession(context.Context) error {
	f.purged++
	return f.err
}

func TestSignature_OrderIndependent(t *testing.T) {
	questions := testutil.SampleQuestions()
	reversed := []models.Question{questions[1], questions[0]}

	a, err := Signature("poll-container", questions)
	require.NoError(t, err)
	b, err := Signature("poll-container", reversed)
	require.NoError(t, err)

	require.Equal(t, a, b)
	require.True(t, strings.HasPrefix(a, "poll-container"))
}

func TestSignature_OrderIndependent_DuplicateText(t *testing.T) {
	tests := []struct {
		name      string
		questions []models.Question
	}{
		{"different options", []models.Question{
			{Text: "Pick one", Options: []string{"a", "b"}},
			{Text: "Pick one", Options: []string{"c", "d"}},
		}},
		{"option prefix", []models.Question{
			{Text: "Pick one", Options: []string{"a", "b", "c"}},
			{Text: "Pick one", Options: []string{"a", "b"}},
		}},
		{"case only", []models.Question{
			{Text: "Pick one", Options: []string{"a"}},
			{Text: "Pick one", Options: []string{"A"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			swapped := []models.Question{tt.questions[1], tt.questions[0]}

			a, err := Signature("poll-container", tt.questions)
			require.NoError(t, err)
			b, err := Signature("poll-container", swapped)
			require.NoError(t, err)
			require.Equal(t, a, b)
		})
	}
}

func TestSignature_CanonicalForm(t *testing.T) {
	sig, err := Signature("w", []models.Question{{Text: "<b>&", Options: []string{"x"}}})
	require.NoError(t, err)
	require.Equal(t, `w[{"options":["x"],"question":"<b>&"}]`, sig)
}

func TestSignature_Distinguishes(t *testing.T) {
	questions := testutil.SampleQuestions()
	base, err := Signature("poll-container", questions)
	require.NoError(t, err)

	tests := []struct {
		name      string
		widgetID  string
		questions []models.Question
	}{
		{"other widget", "other-container", questions},
		{"fewer questions", "poll-container", questions[:1]},
		{"option order", "poll-container", []models.Question{
			{Text: questions[0].Text, Options: []string{"Okay", "Great", "Not so good"}},
			questions[1],
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, err := Signature(tt.widgetID, tt.questions)
			require.NoError(t, err)
			require.NotEqual(t, base, sig)
		})
	}
}

func TestSignature_DoesNotReorderInput(t *testing.T) {
	questions := testutil.SampleQuestions()
	first := questions[0].Text

	_, err := Signature("poll-container", questions)
	require.NoError(t, err)
	require.Equal(t, first, questions[0].Text)
}

func TestSignature_CollatorOrder(t *testing.T) {
	// collation ignores case, byte order would put "b" after "C"
	a, err := Signature("w", []models.Question{{Text: "b"}, {Text: "C"}})
	require.NoError(t, err)
	require.Equal(t, `w[{"options":null,"question":"b"},{"options":null,"question":"C"}]`, a)
}

func TestRegistry_Rendered(t *testing.T) {
	reg := New(testutil.DiscardLogger())

	require.False(t, reg.HasRendered("sig"))
	reg.MarkRendered("sig")
	require.True(t, reg.HasRendered("sig"))
	require.False(t, reg.HasRendered("other"))

	reg.Reset()
	require.False(t, reg.HasRendered("sig"))
}

func TestRegistry_UnregisterAll(t *testing.T) {
	reg := New(testutil.DiscardLogger())
	a := &fakeInstance{id: "a"}
	b := &fakeInstance{id: "b"}
	reg.Register(a)
	reg.Register(b)
	reg.MarkRendered("sig")
	require.Equal(t, 2, reg.Len())

	require.NoError(t, reg.UnregisterAll(context.Background()))

	require.Equal(t, 1, a.purged)
	require.Equal(t, 1, b.purged)
	require.Zero(t, reg.Len())
	require.True(t, reg.HasRendered("sig"), "rendered signatures survive teardown")

	require.NoError(t, reg.UnregisterAll(context.Background()))
	require.Equal(t, 1, a.purged, "teardown forgets instances")
}

func TestRegistry_UnregisterAll_JoinsErrors(t *testing.T) {
	reg := New(testutil.DiscardLogger())
	errBoom := errors.New("boom")
	failing := &fakeInstance{id: "a", err: errBoom}
	ok := &fakeInstance{id: "b"}
	reg.Register(failing)
	reg.Register(ok)

	err := reg.UnregisterAll(context.Background())

	require.ErrorIs(t, err, errBoom)
	require.Contains(t, err.Error(), "widget a")
	require.Equal(t, 1, ok.purged, "remaining widgets are still purged")
	require.Zero(t, reg.Len())
}
