// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package page

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/pollwidget/document"
	"github.com/danielhkuo/pollwidget/models"
)

var (
	ErrNoWidgets        = errors.New("page defines no widgets")
	ErrInvalidContainer = errors.New("container must be an #id selector")
	ErrDuplicateID      = errors.New("container id used more than once")
)

// Load reads a page definition file
func Load(path string) (models.PageDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.PageDefinition{}, fmt.Errorf("failed to open page file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses and validates a page definition
func Decode(r io.Reader) (models.PageDefinition, error) {
	var def models.PageDefinition
	if err := yaml.NewDecoder(r).Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return models.PageDefinition{}, ErrNoWidgets
		}
		return models.PageDefinition{}, fmt.Errorf("failed to parse page file: %w", err)
	}
	if err := Validate(def); err != nil {
		return models.PageDefinition{}, err
	}
	return def, nil
}

// Validate checks that every widget names a distinct #id container.
// Widgets with no questions are allowed and render nothing.
func Validate(def models.PageDefinition) error {
	if len(def.Widgets) == 0 {
		return ErrNoWidgets
	}

	seen := make(map[string]bool, len(def.Widgets))
	for i, w := range def.Widgets {
		id, err := ContainerID(w.Container)
		if err != nil {
			return fmt.Errorf("widget %d: %w", i, err)
		}
		if seen[id] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = true
	}
	return nil
}

// ContainerID returns the element id named by an #id selector
func ContainerID(selector string) (string, error) {
	id, ok := strings.CutPrefix(strings.TrimSpace(selector), "#")
	if !ok || id == "" || strings.ContainsAny(id, " .#[>") {
		return "", fmt.Errorf("%w: %q", ErrInvalidContainer, selector)
	}
	return id, nil
}

// Build creates a document with one empty container element per widget
func Build(def models.PageDefinition) (*document.Document, error) {
	title := def.Title
	if title == "" {
		title = "Polls"
	}
	doc := document.New(title)
	body := doc.Body()

	for _, w := range def.Widgets {
		id, err := ContainerID(w.Container)
		if err != nil {
			return nil, err
		}
		body.AppendChild(document.Element("div", []string{"poll-container"}, document.Attr("id", id)))
	}
	return doc, nil
}
