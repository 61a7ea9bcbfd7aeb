// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package tui is the terminal host for a page of polls.
//
// It reads everything it shows from the widgets' documents, so what the
// terminal displays is what an HTML export of the same page would contain.
// Pressing enter on an option goes through the same option handler a click
// would, and the reveal animation is advanced by a tick per frame until every
// renderer reports it is done.
package tui
