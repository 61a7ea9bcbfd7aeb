// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and page types shared by every package.

# Domain Types

  - Question: question text and ordered options
  - VoteRecord: one accepted vote (questionIndex, optionIndex, containerId)
  - VoteResult: accepted or rejected outcome of a vote attempt
  - QuestionTally: total, per-option counts and percentages for one question

# Storage Format

VoteRecord lists are stored as JSON arrays:

	[{"questionIndex":0,"optionIndex":1,"containerId":"poll-container"}]

The field names are part of the persisted format and must not change.

# Page Types

  - PageDefinition: page title and the widgets it hosts
  - WidgetDefinition: container selector and question set

# Constants

Vote status values:

	VoteAccepted = "accepted"
	VoteRejected = "rejected"

Rejection reasons:

	ReasonAlreadyVoted = "already_voted"
	ReasonInvalidIndex = "invalid_index"
*/
package models
