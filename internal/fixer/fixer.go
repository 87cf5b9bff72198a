package fixer

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/pthm/promptly/internal/analyzer"
	"github.com/pthm/promptly/internal/diff"
	"github.com/pthm/promptly/internal/parser"
	"github.com/pthm/promptly/internal/rules"
	"github.com/pthm/promptly/internal/ui"
)

// Options configures the fixer behavior
type Options struct {
	DryRun bool
	// Rules restricts fixing to these rule ids. Empty means every fixable rule.
	Rules []string
	// Output writes the fixed file here instead of overwriting the input.
	Output string
}

// Fixer applies autofixes to prompt files
type Fixer struct {
	opts   Options
	ui     *ui.UI
	logger *zap.Logger
}

// Result describes the outcome of fixing one prompt
type Result struct {
	Path     string         `json:"path" yaml:"path"`
	Original string         `json:"original" yaml:"original"`
	Fixed    string         `json:"fixed" yaml:"fixed"`
	Applied  []string       `json:"applied" yaml:"applied"`
	Skipped  []string       `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Diff     []diff.Segment `json:"diff" yaml:"diff"`
	Written  string         `json:"written,omitempty" yaml:"written,omitempty"`
}

// Changed reports whether any transform modified the prompt
func (r *Result) Changed() bool {
	return len(r.Applied) > 0
}

// New creates a new Fixer
func New(opts Options, u *ui.UI, logger *zap.Logger) *Fixer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fixer{opts: opts, ui: u, logger: logger}
}

// Fix analyzes the file's prompt and applies the selected autofixes in
// severity order. Unless DryRun is set the result is written back.
func (f *Fixer) Fix(file *parser.PromptFile, intent rules.Intent) (*Result, error) {
	for _, id := range f.opts.Rules {
		if _, ok := rules.Lookup(id); !ok {
			return nil, fmt.Errorf("unknown rule %q", id)
		}
	}

	analysis := analyzer.Analyze(file.Prompt, intent)

	var selected []rules.Suggestion
	res := &Result{Path: file.Path, Original: strings.TrimSpace(file.Prompt)}
	for _, s := range analysis.Suggestions {
		if len(f.opts.Rules) > 0 && !slices.Contains(f.opts.Rules, s.RuleID) {
			continue
		}
		if !Fixable(s.RuleID) {
			res.Skipped = append(res.Skipped, s.RuleID)
			continue
		}
		selected = append(selected, s)
	}

	fixed, applied := ApplyAll(file.Prompt, selected)
	res.Fixed = strings.TrimSpace(fixed)
	res.Applied = applied
	if res.Applied == nil {
		res.Applied = []string{}
	}
	res.Diff = diff.Words(res.Original, res.Fixed)

	f.logger.Debug("fixed prompt",
		zap.String("path", file.Path),
		zap.Strings("applied", res.Applied),
		zap.Strings("skipped", res.Skipped),
	)

	if f.opts.DryRun || !res.Changed() {
		return res, nil
	}

	target := f.opts.Output
	if target == "" {
		target = file.Path
	}
	if err := f.write(file, target, res.Fixed); err != nil {
		return nil, err
	}
	res.Written = target
	return res, nil
}

func (f *Fixer) write(file *parser.PromptFile, target, prompt string) error {
	content, err := parser.Render(file, prompt)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", file.Path, err)
	}
	if target == parser.StdinPath {
		_, err := f.ui.Writer.Write(content)
		return err
	}
	if err := os.WriteFile(target, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}

// Print writes a human-readable summary of res
func (f *Fixer) Print(res *Result) {
	w := f.ui.Writer
	styles := f.ui.Styles

	if !res.Changed() {
		fmt.Fprintln(w, styles.Success.Render(
			fmt.Sprintf("%s Nothing to fix in %s", styles.IconSuccess, res.Path),
		))
		f.printSkipped(res)
		return
	}

	verb := "Fixed"
	if f.opts.DryRun {
		verb = "Would fix"
	}
	fmt.Fprintln(w, styles.Header.Render(fmt.Sprintf("%s %s", verb, res.Path)))
	for _, id := range res.Applied {
		rule, _ := rules.Lookup(id)
		fmt.Fprintf(w, "  %s %s %s\n", styles.IconSuccess, styles.Rule.Render(id), rule.Name)
	}
	f.printSkipped(res)

	fmt.Fprintln(w)
	fmt.Fprintln(w, diff.Terminal(res.Diff, styles.Diff))
	fmt.Fprintln(w)

	st := diff.Count(res.Diff)
	fmt.Fprintln(w, styles.Subheader.Render(
		fmt.Sprintf("%d words added, %d removed", st.Added, st.Removed),
	))
	if res.Written != "" && res.Written != parser.StdinPath {
		fmt.Fprintln(w, styles.Path.Render("Wrote "+res.Written))
	}
}

func (f *Fixer) printSkipped(res *Result) {
	if len(res.Skipped) == 0 {
		return
	}
	fmt.Fprintln(f.ui.Writer, f.ui.Styles.Subheader.Render(
		fmt.Sprintf("  Hint-only (no autofix): %s", strings.Join(res.Skipped, ", ")),
	))
}
