// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package document is a small DOM over golang.org/x/net/html nodes.

Widgets render into a Document the way the browser version rendered into a
page: elements are found with CSS selectors and changed through class,
attribute, style and text helpers.

	doc, err := document.Parse(strings.NewReader(page))
	container, err := doc.QuerySelector("#poll-container")

	result := document.QuerySelector(container, `.result[data-question-index="0"]`)
	document.SetText(result, "Votes: 3")

Selectors support type, #id, .class and [attr=value] compounds joined by
descendant whitespace. That covers everything the renderer looks up.
*/
package document
