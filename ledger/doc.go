// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger tracks the votes of one widget: the current session's votes and
the durable total across sessions.

# Loading

	l, err := ledger.Load(ctx, "poll-container", questions, vs, logger)

Session votes that have no matching total vote are dropped on load, so the
session list is always a subset of the totals.

# Voting

	result, err := l.RecordVote(ctx, questionIndex, optionIndex)

A session gets one vote per question. A second vote on the same question, for
any option, returns a rejected result with ReasonAlreadyVoted. Indices outside
the question set return ReasonInvalidIndex. Neither case writes to storage.

An accepted vote is appended to both lists and both scopes are saved before
RecordVote returns. If a save fails, RecordVote returns a *PersistenceError and
the in-memory lists are restored to their previous state.

# Tallies

	l.Tally(q)          // votes for question q
	l.OptionTally(q, o) // votes for option o of question q
	l.Percentages(q)    // share per option, all zero when Tally(q) == 0

Tallies only count records carrying this ledger's widget id.
*/
package ledger
