// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"cmp"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/gowebpki/jcs"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/danielhkuo/pollwidget/models"
)

// Signature identifies a question set rendered into a widget.
// Questions are ordered by text, then by options, so the same set in a
// different order yields the same signature.
//
// The signature is the widget id followed by the RFC 8785 canonical JSON of
// the ordered questions. That form is stable across encoders: keys are
// sorted and text is not HTML-escaped, so a signature computed by another
// canonicalizing implementation compares equal.
func Signature(widgetID string, questions []models.Question) (string, error) {
	sorted := make([]models.Question, len(questions))
	copy(sorted, questions)

	c := collate.New(language.Und)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareQuestions(c, sorted[i], sorted[j]) < 0
	})

	raw, err := json.Marshal(sorted)
	if err != nil {
		return "", fmt.Errorf("failed to encode questions: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize questions: %w", err)
	}

	return widgetID + string(canonical), nil
}

// compareQuestions orders by text, then option by option, then by option count.
// Texts equal under the collator fall back to byte order so distinct
// questions never compare equal.
func compareQuestions(c *collate.Collator, a, b models.Question) int {
	if d := compareText(c, a.Text, b.Text); d != 0 {
		return d
	}
	for i := 0; i < len(a.Options) && i < len(b.Options); i++ {
		if d := compareText(c, a.Options[i], b.Options[i]); d != 0 {
			return d
		}
	}
	return cmp.Compare(len(a.Options), len(b.Options))
}

func compareText(c *collate.Collator, a, b string) int {
	if d := c.CompareString(a, b); d != 0 {
		return d
	}
	return strings.Compare(a, b)
}
