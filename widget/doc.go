// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package widget is the poll widget a host page creates per container.

# Lifecycle

	Uninitialized -> Constructed -> Rendered

New resolves the container, loads the votes persisted for its id and
registers the widget with the page Registry. Render draws the question blocks
and attaches option handlers. Rendering the same question set into the same
container a second time, even from a new Widget, is a no-op.

Vote is legal in both Constructed and Rendered. Only a rendered widget updates
its result display after an accepted vote.

# Example

	reg := registry.New(logger)
	w, err := widget.New(ctx, doc, "#poll-container", questions, widget.Options{
		Registry: reg,
		Store:    votes,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	if _, err := w.Render(); err != nil {
		return err
	}
	defer reg.UnregisterAll(ctx)

# Errors

  - document.ErrElementNotFound: selector matched nothing
  - ErrMissingID: the container has no id attribute to key storage by
  - *ledger.PersistenceError: a vote could not be saved and was rolled back

Rejected votes (already voted, invalid index) are not errors; they are
reported in models.VoteResult.
*/
package widget
