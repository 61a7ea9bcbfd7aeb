// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Vote status constants
const (
	VoteAccepted = "accepted"
	VoteRejected = "rejected"
)

// Rejection reasons
const (
	ReasonAlreadyVoted = "already_voted"
	ReasonInvalidIndex = "invalid_index"
)

// Domain types

// Question is one poll question with its ordered options.
// The JSON/YAML field name "question" matches previously persisted pages.
type Question struct {
	Text    string   `json:"question" yaml:"question"`
	Options []string `json:"options" yaml:"options"`
}

// VoteRecord is a single accepted vote. The JSON layout is the storage
// format and must stay stable: existing session and durable entries use it.
type VoteRecord struct {
	QuestionIndex int    `json:"questionIndex"`
	OptionIndex   int    `json:"optionIndex"`
	WidgetID      string `json:"containerId"`
}

// VoteResult is the outcome of a vote attempt
type VoteResult struct {
	Status        string `json:"status"`
	Reason        string `json:"reason,omitempty"`
	QuestionIndex int    `json:"question_index"`
	OptionIndex   int    `json:"option_index"`
}

// Accepted reports whether the vote was recorded
func (r VoteResult) Accepted() bool {
	return r.Status == VoteAccepted
}

// QuestionTally is the current count state of one question, as handed to renderers.
type QuestionTally struct {
	Total       int       `json:"total"`
	Options     []int     `json:"options"`
	Percentages []float64 `json:"percentages"`
}

// Page types

// WidgetDefinition binds a container element to a question set.
type WidgetDefinition struct {
	Container string     `yaml:"container"`
	Questions []Question `yaml:"questions"`
}

// PageDefinition describes a document hosting one or more poll widgets.
type PageDefinition struct {
	Title   string             `yaml:"title"`
	Widgets []WidgetDefinition `yaml:"widgets"`
}
