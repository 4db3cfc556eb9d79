package tui

import (
	"github.com/charmbracelet/glamour"
)

// DefaultMarkdownWidth is the word-wrap column used when the terminal width is unknown.
const DefaultMarkdownWidth = 80

// RenderMarkdown renders text as terminal markdown, wrapping at width columns.
// A width <= 0 falls back to DefaultMarkdownWidth.
func RenderMarkdown(text string, width int) (string, error) {
	if width <= 0 {
		width = DefaultMarkdownWidth
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if HasColorSupport() {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}
