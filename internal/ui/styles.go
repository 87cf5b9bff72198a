package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pthm/promptly/internal/diff"
	"github.com/pthm/promptly/internal/rules"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Severity styles
	High    lipgloss.Style
	Med     lipgloss.Style
	Low     lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Path      lipgloss.Style
	Rule      lipgloss.Style
	Separator lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconHigh    string
	IconMed     string
	IconLow     string
	IconInfo    string
	IconSuccess string

	Diff diff.Theme
}

// NewStyles creates a new Styles instance
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled, Diff: diff.NewTheme(enabled)}

	if enabled {
		s.High = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))     // Red
		s.Med = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))     // Yellow
		s.Low = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))     // Cyan
		s.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))    // Blue
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green

		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
		s.Subheader = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Path = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Rule = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

		// Unicode icons
		s.IconHigh = "\u2717"
		s.IconMed = "\u26a0"
		s.IconLow = "\u2022"
		s.IconInfo = "\u2139"
		s.IconSuccess = "\u2713"
	} else {
		s.High = lipgloss.NewStyle()
		s.Med = lipgloss.NewStyle()
		s.Low = lipgloss.NewStyle()
		s.Info = lipgloss.NewStyle()
		s.Success = lipgloss.NewStyle()

		s.Header = lipgloss.NewStyle()
		s.Subheader = lipgloss.NewStyle()
		s.Path = lipgloss.NewStyle()
		s.Rule = lipgloss.NewStyle()
		s.Separator = lipgloss.NewStyle()

		s.IconHigh = "HIGH:"
		s.IconMed = "MED:"
		s.IconLow = "LOW:"
		s.IconInfo = "INFO:"
		s.IconSuccess = "OK:"
	}

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}

// Severity returns the style and icon for a suggestion severity
func (s *Styles) Severity(sev rules.Severity) (lipgloss.Style, string) {
	switch sev {
	case rules.High:
		return s.High, s.IconHigh
	case rules.Med:
		return s.Med, s.IconMed
	default:
		return s.Low, s.IconLow
	}
}

// Score picks a style for a 0-100 score using the label bands
func (s *Styles) Score(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return s.Success
	case score >= 60:
		return s.Med
	default:
		return s.High
	}
}
