package diff

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// HTML renders segments as inline HTML: added text in <ins>, removed text in
// <del> and unchanged text in <span>.
func HTML(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		safe := htmlEscaper.Replace(s.Text)
		switch s.Op {
		case OpAdd:
			b.WriteString("<ins>" + safe + "</ins>")
		case OpRemove:
			b.WriteString("<del>" + safe + "</del>")
		default:
			b.WriteString("<span>" + safe + "</span>")
		}
	}
	return b.String()
}

// Theme holds the styles used by Terminal
type Theme struct {
	Add    lipgloss.Style
	Remove lipgloss.Style

	// Plain marks changes with {+ +} and [- -] when colors are unavailable.
	Plain bool
}

// NewTheme returns the default theme. When color is false the theme falls back
// to textual markers.
func NewTheme(color bool) Theme {
	if !color {
		return Theme{
			Add:    lipgloss.NewStyle(),
			Remove: lipgloss.NewStyle(),
			Plain:  true,
		}
	}
	return Theme{
		Add:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Underline(true),
		Remove: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Strikethrough(true),
	}
}

// Terminal renders segments for a terminal. Whitespace tokens are never
// styled so line breaks stay intact.
func Terminal(segments []Segment, theme Theme) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Op == OpEqual || isSpace(s.Text) {
			if s.Op == OpRemove {
				continue
			}
			b.WriteString(s.Text)
			continue
		}
		switch s.Op {
		case OpAdd:
			if theme.Plain {
				b.WriteString("{+" + s.Text + "+}")
			} else {
				b.WriteString(theme.Add.Render(s.Text))
			}
		case OpRemove:
			if theme.Plain {
				b.WriteString("[-" + s.Text + "-]")
			} else {
				b.WriteString(theme.Remove.Render(s.Text))
			}
		}
	}
	return b.String()
}
