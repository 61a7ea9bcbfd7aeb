// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package document

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var ErrElementNotFound = errors.New("no element matches the selector")

// Document is a parsed HTML page that widgets render into.
type Document struct {
	root *html.Node
}

// Parse reads an HTML page
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{root: root}, nil
}

// New returns an empty page with the given title
func New(title string) *Document {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := Element("html", nil)
	head := Element("head", nil)
	titleEl := Element("title", nil)
	SetText(titleEl, title)
	head.AppendChild(titleEl)
	htmlEl.AppendChild(head)
	htmlEl.AppendChild(Element("body", nil))
	root.AppendChild(htmlEl)

	return &Document{root: root}
}

// Root returns the document node
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the body element, or nil for fragments without one
func (d *Document) Body() *html.Node {
	return QuerySelector(d.root, "body")
}

// QuerySelector returns the first element matching sel.
func (d *Document) QuerySelector(sel string) (*html.Node, error) {
	s, err := Compile(sel)
	if err != nil {
		return nil, err
	}
	n := s.First(d.root)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, sel)
	}
	return n, nil
}

// Render writes the document as HTML
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning "" on failure
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// Element creates an element node with classes and attributes in the given order.
func Element(tag string, classes []string, attrs ...html.Attribute) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if len(classes) > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: strings.Join(classes, " ")})
	}
	n.Attr = append(n.Attr, attrs...)
	return n
}

// Attr builds an attribute
func Attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// GetAttr returns an attribute value
func GetAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Classes returns the element's class list
func Classes(n *html.Node) []string {
	v, _ := GetAttr(n, "class")
	return strings.Fields(v)
}

func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

func AddClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	SetAttr(n, "class", strings.Join(append(Classes(n), class), " "))
}

func RemoveClass(n *html.Node, class string) {
	var kept []string
	for _, c := range Classes(n) {
		if c != class {
			kept = append(kept, c)
		}
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// ToggleClass adds class when on is true and removes it otherwise
func ToggleClass(n *html.Node, class string, on bool) {
	if on {
		AddClass(n, class)
	} else {
		RemoveClass(n, class)
	}
}

// SetText replaces all children with a single text node
func SetText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Text returns the concatenated text of n and its descendants
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// SetStyleProperty sets one declaration in the inline style attribute,
// e.g. SetStyleProperty(n, "--percent", "50%").
func SetStyleProperty(n *html.Node, property, value string) {
	style, _ := GetAttr(n, "style")
	var decls []string
	replaced := false
	for _, d := range strings.Split(style, ";") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		name, _, _ := strings.Cut(d, ":")
		if strings.TrimSpace(name) == property {
			d = property + ": " + value
			replaced = true
		}
		decls = append(decls, d)
	}
	if !replaced {
		decls = append(decls, property+": "+value)
	}
	SetAttr(n, "style", strings.Join(decls, "; "))
}

// StyleProperty reads one declaration from the inline style attribute
func StyleProperty(n *html.Node, property string) (string, bool) {
	style, _ := GetAttr(n, "style")
	for _, d := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(d, ":")
		if ok && strings.TrimSpace(name) == property {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

// Count returns the number of elements under root matching sel
func Count(root *html.Node, sel string) int {
	return len(QuerySelectorAll(root, sel))
}
