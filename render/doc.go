// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package render draws poll widgets and plays the result reveal animation.

# Renderer Contract

The widget calls three methods and never touches presentation details itself:

  - BuildQuestionBlock(question, index, tally): returns the block for one question
  - AttachOptionHandler(block, q, o, onSelect): wires an option to a callback
  - UpdateResultDisplay(q, tally, percentages): shows new counts after a vote

# DOM Renderer

DOMRenderer renders into a document.Document container. Each block is

	div.poll-wrapper
	  div.poll
	    p                                  question text
	    ul.poll-choices
	      li.poll-choice.choice-N
	        label[for=choice-N]
	          div.poll-result[style=--percent: P%] > div.star
	          div.poll-label > div.radio > input, div.answer, div.poll-percent
	    div.result[data-question-index=N]  "Total Votes: N"

Select(ctx, q, o) plays the role of a click on an option label.

# Animation

After a vote the percent labels count up from 0 to their final value over
RevealDuration using EaseQuad. The first frame is applied immediately; the
host calls Step once per frame until it returns false. Options holding the
maximum percentage get the "winner" class, and ties are all winners.

Animations cannot be cancelled. A second vote on the same question while its
animation runs starts another animation on the same labels; both run to
completion and the later frames win.
*/
package render
