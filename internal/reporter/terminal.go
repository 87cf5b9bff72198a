package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/pthm/promptly/internal/analyzer"
	"github.com/pthm/promptly/internal/rules"
)

// TerminalReporter outputs results to the terminal with colors
type TerminalReporter struct {
	w       io.Writer
	verbose bool
}

// NewTerminalReporter creates a new terminal reporter. In verbose mode each
// suggestion includes why it matters and its evidence.
func NewTerminalReporter(w io.Writer, verbose bool) *TerminalReporter {
	return &TerminalReporter{w: w, verbose: verbose}
}

// Report outputs reports to the terminal
func (r *TerminalReporter) Report(reports []FileReport) error {
	for _, report := range reports {
		r.printReport(report)
	}
	if len(reports) > 1 {
		r.printSummary(reports)
	}
	return nil
}

func scoreColor(label analyzer.Label) *color.Color {
	switch label {
	case analyzer.LabelStrong:
		return color.New(color.FgGreen, color.Bold)
	case analyzer.LabelFair:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func (r *TerminalReporter) printReport(report FileReport) {
	res := report.Result

	fmt.Fprintln(r.w)
	color.New(color.FgWhite, color.Bold).Fprintf(r.w, "%s\n", report.Path)
	scoreColor(res.Label).Fprintf(r.w, "  %d/100 %s", res.Score, res.Label.Title())
	color.New(color.FgHiBlack).Fprintf(r.w, "  (%d of %d rules triggered, intent %s)\n",
		res.RuleStats.Triggered, res.RuleStats.Evaluated, res.Meta.Intent)
	fmt.Fprintf(r.w, "  %s\n", res.Summary)

	if len(res.Suggestions) == 0 {
		color.New(color.FgGreen).Fprintln(r.w, "  ✓ No suggestions")
	}
	for _, s := range res.Suggestions {
		r.printSuggestion(s)
	}

	if report.Metrics != nil {
		r.printMetrics(report)
	}
}

func (r *TerminalReporter) printSuggestion(s rules.Suggestion) {
	var severityColor *color.Color
	var icon string

	switch s.Severity {
	case rules.High:
		severityColor = color.New(color.FgRed)
		icon = "✗"
	case rules.Med:
		severityColor = color.New(color.FgYellow)
		icon = "⚠"
	default:
		severityColor = color.New(color.FgCyan)
		icon = "•"
	}

	fmt.Fprintln(r.w)
	severityColor.Fprintf(r.w, "  %s %s", icon, s.Title)
	color.New(color.FgHiBlack).Fprintf(r.w, " [%s %s]", s.RuleID, s.Severity)
	if s.Autofixable {
		color.New(color.FgGreen).Fprint(r.w, " fixable")
	}
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "    %s\n", s.Description)
	fmt.Fprintf(r.w, "    Fix: %s\n", s.SuggestedFix)

	if r.verbose {
		color.New(color.FgHiBlack).Fprintf(r.w, "    Why: %s\n", s.WhyItMatters)
		for _, e := range s.Evidence {
			color.New(color.FgHiBlack).Fprintf(r.w, "    > %s: %q\n", e.Kind, e.Text)
		}
	}
}

func (r *TerminalReporter) printMetrics(report FileReport) {
	m := report.Metrics

	fmt.Fprintln(r.w)
	color.New(color.FgWhite, color.Bold).Fprintln(r.w, "  Metrics")
	fmt.Fprintf(r.w, "    Characters: %d  Words: %d  Lines: %d  ~Tokens: %d\n",
		m.Characters, m.Words, m.Lines, m.EstimatedTokens)
	if report.Sections > 0 {
		fmt.Fprintf(r.w, "    Sections: %d\n", report.Sections)
	}
	fmt.Fprintf(r.w, "    By severity: %s\n", formatCounts(m.SuggestionsBySeverity, []string{"high", "med", "low"}))
	if len(m.SuggestionsByCategory) > 0 {
		fmt.Fprintf(r.w, "    By category: %s\n", formatCounts(m.SuggestionsByCategory, rules.Categories()))
	}
	fmt.Fprintf(r.w, "    Autofixable: %d\n", m.Autofixable)
}

// formatCounts renders counts in the given key order, skipping zeros
func formatCounts(counts map[string]int, order []string) string {
	var parts []string
	for _, k := range order {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", k, n))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

func (r *TerminalReporter) printSummary(reports []FileReport) {
	summary := ComputeSummary(reports)

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "─────────────────────────────────────")

	parts := []string{}
	if summary.High > 0 {
		parts = append(parts, color.RedString("%d high", summary.High))
	}
	if summary.Med > 0 {
		parts = append(parts, color.YellowString("%d med", summary.Med))
	}
	if summary.Low > 0 {
		parts = append(parts, color.CyanString("%d low", summary.Low))
	}

	fmt.Fprintf(r.w, "Analyzed %d prompts (average %d, lowest %d): ",
		summary.Files, summary.AverageScore, summary.LowestScore)
	if len(parts) == 0 {
		fmt.Fprint(r.w, "no suggestions")
	}
	for i, part := range parts {
		if i > 0 {
			fmt.Fprint(r.w, ", ")
		}
		fmt.Fprint(r.w, part)
	}
	fmt.Fprintln(r.w)
}
