// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package page loads the YAML file describing which polls a host shows.
//
//	title: Team check-in
//	widgets:
//	  - container: "#poll-container"
//	    questions:
//	      - question: "How you feel today:"
//	        options: [Great, Okay, Not so good]
//
// Build turns a definition into a document with one div per container.
package page
