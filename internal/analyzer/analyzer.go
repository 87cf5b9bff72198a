// Package analyzer scores a prompt against the rule catalog.
package analyzer

import (
	"sort"
	"strings"
	"time"

	"github.com/pthm/promptly/internal/rules"
)

// Label is a coarse score bucket
type Label string

const (
	LabelNeedsWork Label = "needs_work"
	LabelFair      Label = "fair"
	LabelStrong    Label = "strong"
)

// labelBound is the inclusive score range of a label
type labelBound struct {
	Label Label
	Min   int
	Max   int
	Title string
}

var labelBounds = []labelBound{
	{LabelNeedsWork, 0, 59, "Needs work"},
	{LabelFair, 60, 79, "Fair"},
	{LabelStrong, 80, 100, "Strong"},
}

// Title returns the display title of the label
func (l Label) Title() string {
	for _, b := range labelBounds {
		if b.Label == l {
			return b.Title
		}
	}
	return "Needs work"
}

const (
	maxScore = 100

	// shortPromptLength is the normalized length below which the score is
	// raised to shortPromptFloor.
	shortPromptLength = 20
	shortPromptFloor  = 20

	// lowOnlyFloor applies when every triggered suggestion is low severity.
	lowOnlyFloor = 60

	summaryTitles = 3

	clearSummary = "Prompt is clear and well-structured. Add optional examples if you want even tighter output control."
)

// RuleStats counts rule evaluations
type RuleStats struct {
	Evaluated int `json:"evaluated" yaml:"evaluated"`
	Triggered int `json:"triggered" yaml:"triggered"`
}

// Meta describes how a result was produced
type Meta struct {
	Intent    rules.Intent `json:"intent" yaml:"intent"`
	RulesOnly bool         `json:"rules_only" yaml:"rules_only"`
	Model     string       `json:"model" yaml:"model"`
}

// Result is the outcome of analyzing one prompt. A new Result is created on
// every call and never modified afterwards.
type Result struct {
	Prompt      string             `json:"prompt" yaml:"prompt"`
	Score       int                `json:"score" yaml:"score"`
	Label       Label              `json:"label" yaml:"label"`
	Summary     string             `json:"summary" yaml:"summary"`
	Suggestions []rules.Suggestion `json:"suggestions" yaml:"suggestions"`
	RuleStats   RuleStats          `json:"rule_stats" yaml:"rule_stats"`
	Meta        Meta               `json:"meta" yaml:"meta"`
	AnalyzedAt  time.Time          `json:"analyzed_at" yaml:"analyzed_at"`
}

// Analyzer evaluates prompts against a rule registry
type Analyzer struct {
	registry *rules.Registry
	now      func() time.Time
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithRegistry overrides the rule registry
func WithRegistry(r *rules.Registry) Option {
	return func(a *Analyzer) {
		a.registry = r
	}
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

// New creates an Analyzer over the default catalog
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		registry: rules.DefaultRegistry(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var defaultAnalyzer = New()

// Analyze evaluates prompt with the default analyzer
func Analyze(prompt string, intent rules.Intent) *Result {
	return defaultAnalyzer.Analyze(prompt, intent)
}

// Analyze builds the context for prompt, evaluates every rule and scores the result.
func (a *Analyzer) Analyze(prompt string, intent rules.Intent) *Result {
	ctx := rules.BuildContext(prompt, intent)
	suggestions := a.registry.Evaluate(ctx)

	SortSuggestions(suggestions)

	score := Score(ctx.Prompt, suggestions)
	label := LabelFor(score)

	return &Result{
		Prompt:      ctx.Prompt,
		Score:       score,
		Label:       label,
		Summary:     Summarize(label, suggestions),
		Suggestions: suggestions,
		RuleStats: RuleStats{
			Evaluated: a.registry.Len(),
			Triggered: len(suggestions),
		},
		Meta: Meta{
			Intent:    ctx.Intent,
			RulesOnly: true,
			Model:     "",
		},
		AnalyzedAt: a.now().UTC(),
	}
}

// SortSuggestions orders suggestions by severity, highest first. Suggestions of
// equal severity keep their relative order.
func SortSuggestions(suggestions []rules.Suggestion) {
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Severity.Rank() > suggestions[j].Severity.Rank()
	})
}

// Score computes the health score for a normalized prompt and its suggestions.
func Score(prompt string, suggestions []rules.Suggestion) int {
	score := maxScore
	for _, s := range suggestions {
		score -= s.Severity.Penalty()
	}
	score = max(0, min(maxScore, score))

	// Very short prompts trip most missing-feature rules at once.
	if len([]rune(strings.TrimSpace(prompt))) < shortPromptLength {
		score = max(score, shortPromptFloor)
	}

	if len(suggestions) > 0 && allLow(suggestions) {
		score = max(score, lowOnlyFloor)
	}

	return score
}

func allLow(suggestions []rules.Suggestion) bool {
	for _, s := range suggestions {
		if s.Severity != rules.Low {
			return false
		}
	}
	return true
}

// LabelFor maps a score to its label
func LabelFor(score int) Label {
	for _, b := range labelBounds[:len(labelBounds)-1] {
		if score <= b.Max {
			return b.Label
		}
	}
	return LabelStrong
}

// Summarize builds the one-line summary for sorted suggestions.
func Summarize(label Label, suggestions []rules.Suggestion) string {
	if len(suggestions) == 0 {
		return clearSummary
	}

	n := min(summaryTitles, len(suggestions))
	titles := make([]string, 0, n)
	for _, s := range suggestions[:n] {
		titles = append(titles, strings.ToLower(s.Title))
	}

	return label.Title() + ": fix " + strings.Join(titles, ", ") + " to improve response reliability."
}
