package rules

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a suggestion
type Severity int

const (
	Low Severity = iota + 1
	Med
	High
)

func (s Severity) String() string {
	switch s {
	case Low:
		return "low"
	case Med:
		return "med"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// Penalty is the number of points a triggered suggestion costs
func (s Severity) Penalty() int {
	switch s {
	case High:
		return 12
	case Med:
		return 7
	case Low:
		return 4
	default:
		return 0
	}
}

// Rank orders severities for sorting: high=3, med=2, low=1
func (s Severity) Rank() int {
	switch s {
	case High, Med, Low:
		return int(s)
	default:
		return 0
	}
}

// ParseSeverity parses the text form of a severity.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "low":
		return Low, true
	case "med":
		return Med, true
	case "high":
		return High, true
	default:
		return 0, false
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	if s.Rank() == 0 {
		return nil, fmt.Errorf("invalid severity: %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("invalid severity: %q", string(text))
	}
	*s = parsed
	return nil
}

// Category is a free-form grouping tag for rules
type Category string

const (
	CategoryGoalClarity  Category = "goal_clarity"
	CategoryContext      Category = "context"
	CategoryConstraints  Category = "constraints"
	CategoryOutputFormat Category = "output_format"
	CategoryInputs       Category = "inputs"
	CategoryStructure    Category = "structure"
	CategoryVerification Category = "verification"
)

// Categories lists the catalog's categories in display order
func Categories() []string {
	return []string{
		string(CategoryGoalClarity),
		string(CategoryContext),
		string(CategoryInputs),
		string(CategoryConstraints),
		string(CategoryStructure),
		string(CategoryOutputFormat),
		string(CategoryVerification),
	}
}

// Rule is a deterministic prompt quality check
type Rule struct {
	ID           string
	Name         string
	Severity     Severity
	Category     Category
	Description  string
	WhyItMatters string
	Fix          string
	Autofixable  bool
	Confidence   float64

	// Detect reports whether the rule fires for the context. It must not panic.
	Detect func(ctx *Context) bool

	// Evidence optionally returns the phrase that made the rule fire.
	Evidence func(ctx *Context) string
}

// Evidence is a piece of text backing a suggestion
type Evidence struct {
	Kind string `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`
}

// Suggestion is a rule's finding against a specific prompt
type Suggestion struct {
	ID           string     `json:"id" yaml:"id"`
	RuleID       string     `json:"rule_id" yaml:"rule_id"`
	Title        string     `json:"title" yaml:"title"`
	Description  string     `json:"description" yaml:"description"`
	Severity     Severity   `json:"severity" yaml:"severity"`
	Category     Category   `json:"category" yaml:"category"`
	WhyItMatters string     `json:"why_it_matters" yaml:"why_it_matters"`
	SuggestedFix string     `json:"suggested_fix" yaml:"suggested_fix"`
	Autofixable  bool       `json:"autofixable" yaml:"autofixable"`
	Confidence   float64    `json:"confidence" yaml:"confidence"`
	Evidence     []Evidence `json:"evidence" yaml:"evidence"`
}

// SuggestionID builds the id of a suggestion from the rule id and its
// zero-based position in the catalog.
func SuggestionID(ruleID string, index int) string {
	return fmt.Sprintf("sug_%s_%02d", strings.ToLower(ruleID), index+1)
}

// Suggest builds the suggestion for a rule that fired at catalog position index.
func (r *Rule) Suggest(ctx *Context, index int) Suggestion {
	s := Suggestion{
		ID:           SuggestionID(r.ID, index),
		RuleID:       r.ID,
		Title:        r.Name,
		Description:  r.Description,
		Severity:     r.Severity,
		Category:     r.Category,
		WhyItMatters: r.WhyItMatters,
		SuggestedFix: r.Fix,
		Autofixable:  r.Autofixable,
		Confidence:   r.Confidence,
		Evidence:     []Evidence{},
	}

	if r.Evidence != nil {
		if phrase := r.Evidence(ctx); phrase != "" {
			s.Evidence = append(s.Evidence, Evidence{Kind: "phrase", Text: phrase})
		}
	}

	return s
}

// Definition is the public description of a rule
type Definition struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Category    Category `json:"category" yaml:"category"`
	Autofixable bool     `json:"autofixable" yaml:"autofixable"`
}
