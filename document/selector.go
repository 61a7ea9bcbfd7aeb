// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package document

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Selector is a compiled CSS selector. Supported syntax: type, #id, .class,
// [attr], [attr=value], [attr="value"] compounds joined by descendant whitespace.
type Selector struct {
	parts []compound
}

type attrMatch struct {
	key      string
	value    string
	hasValue bool
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

// Compile parses sel
func Compile(sel string) (Selector, error) {
	fields, err := splitDescendants(sel)
	if err != nil {
		return Selector{}, err
	}
	if len(fields) == 0 {
		return Selector{}, fmt.Errorf("empty selector")
	}

	s := Selector{parts: make([]compound, 0, len(fields))}
	for _, f := range fields {
		c, err := parseCompound(f)
		if err != nil {
			return Selector{}, fmt.Errorf("invalid selector %q: %w", sel, err)
		}
		s.parts = append(s.parts, c)
	}
	return s, nil
}

// splitDescendants splits on whitespace outside of brackets and quotes
func splitDescendants(sel string) ([]string, error) {
	var fields []string
	var cur strings.Builder
	depth := 0
	var quote rune

	for _, r := range sel {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '[':
			depth++
		case r == ']':
			depth--
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n'):
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
			continue
		}
		cur.WriteRune(r)
	}
	if depth != 0 || quote != 0 {
		return nil, fmt.Errorf("unbalanced selector %q", sel)
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields, nil
}

func parseCompound(s string) (compound, error) {
	var c compound
	i := 0
	readName := func() string {
		start := i
		for i < len(s) && s[i] != '#' && s[i] != '.' && s[i] != '[' {
			i++
		}
		return s[start:i]
	}

	c.tag = strings.ToLower(readName())
	for i < len(s) {
		switch s[i] {
		case '#':
			i++
			c.id = readName()
			if c.id == "" {
				return c, fmt.Errorf("empty id")
			}
		case '.':
			i++
			class := readName()
			if class == "" {
				return c, fmt.Errorf("empty class")
			}
			c.classes = append(c.classes, class)
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return c, fmt.Errorf("unterminated attribute")
			}
			body := s[i+1 : i+end]
			i += end + 1

			key, value, hasValue := strings.Cut(body, "=")
			key = strings.TrimSpace(key)
			if key == "" {
				return c, fmt.Errorf("empty attribute name")
			}
			value = strings.Trim(strings.TrimSpace(value), `"'`)
			c.attrs = append(c.attrs, attrMatch{key: key, value: value, hasValue: hasValue})
		default:
			return c, fmt.Errorf("unexpected %q", s[i])
		}
	}
	return c, nil
}

func (c compound) match(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if c.tag != "" && c.tag != "*" && n.Data != c.tag {
		return false
	}
	if c.id != "" {
		if id, _ := GetAttr(n, "id"); id != c.id {
			return false
		}
	}
	for _, class := range c.classes {
		if !HasClass(n, class) {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := GetAttr(n, a.key)
		if !ok || (a.hasValue && v != a.value) {
			return false
		}
	}
	return true
}

// Match reports whether n matches the selector
func (s Selector) Match(n *html.Node) bool {
	last := len(s.parts) - 1
	if last < 0 || !s.parts[last].match(n) {
		return false
	}
	// remaining compounds must match ancestors, right to left
	i := last - 1
	for p := n.Parent; p != nil && i >= 0; p = p.Parent {
		if s.parts[i].match(p) {
			i--
		}
	}
	return i < 0
}

// First returns the first descendant of root matching the selector, in document order
func (s Selector) First(root *html.Node) *html.Node {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if s.Match(c) {
			return c
		}
		if found := s.First(c); found != nil {
			return found
		}
	}
	return nil
}

// All returns every descendant of root matching the selector, in document order
func (s Selector) All(root *html.Node) []*html.Node {
	var out []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if s.Match(c) {
			out = append(out, c)
		}
		out = append(out, s.All(c)...)
	}
	return out
}

// QuerySelector returns the first match under root, or nil if none or sel is invalid
func QuerySelector(root *html.Node, sel string) *html.Node {
	s, err := Compile(sel)
	if err != nil {
		return nil
	}
	return s.First(root)
}

// QuerySelectorAll returns all matches under root
func QuerySelectorAll(root *html.Node, sel string) []*html.Node {
	s, err := Compile(sel)
	if err != nil {
		return nil
	}
	return s.All(root)
}

// Closest returns n or its nearest ancestor matching sel
func Closest(n *html.Node, sel string) *html.Node {
	s, err := Compile(sel)
	if err != nil {
		return nil
	}
	for ; n != nil; n = n.Parent {
		if s.Match(n) {
			return n
		}
	}
	return nil
}
