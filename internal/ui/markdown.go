package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownWidth is the wrap width for rendered prompts
const markdownWidth = 80

// RenderMarkdown renders text as terminal markdown in interactive mode.
// Plain output, and any renderer failure, returns the text unchanged.
func (ui *UI) RenderMarkdown(text string) string {
	if !ui.IsInteractive() {
		return text
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(markdownWidth),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
