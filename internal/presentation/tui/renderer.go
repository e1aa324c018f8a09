package tui

import (
	"github.com/charmbracelet/glamour"
)

// Glamour standard style names.
const (
	StyleAuto  = ""
	StyleNoTTY = "notty"
)

// NewRenderer returns a function that renders markdown using glamour.
// StyleAuto detects a light or dark background; any other value names a
// glamour standard style.
func NewRenderer(style string) (func(string) (string, error), error) {
	opt := glamour.WithAutoStyle()
	if style != StyleAuto {
		opt = glamour.WithStandardStyle(style)
	}

	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(80))
	if err != nil {
		return nil, err
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}
