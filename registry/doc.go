// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registry keeps page-wide widget state.

A Registry is created once by the host and passed to every widget. It holds
the signatures of question sets already rendered, so a widget constructed a
second time for the same container and questions does not draw its blocks
twice, and the list of live widgets torn down on exit.

# Signatures

	sig, err := registry.Signature("poll-container", questions)

The signature is the widget id followed by the questions, sorted by text with
a locale-aware collator, as canonical JSON (RFC 8785). Question order does not
change the signature; option order does.

# Teardown

	defer reg.UnregisterAll(ctx)

UnregisterAll clears every widget's session votes and keeps durable totals.
Rendered signatures survive teardown; only Reset clears them.
*/
package registry
