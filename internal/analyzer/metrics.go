package analyzer

import (
	"strings"
	"unicode/utf8"

	"github.com/pthm/promptly/internal/rules"
)

// Metrics contains computed metrics about an analyzed prompt
type Metrics struct {
	Characters            int            `json:"characters" yaml:"characters"`
	Words                 int            `json:"words" yaml:"words"`
	Lines                 int            `json:"lines" yaml:"lines"`
	EstimatedTokens       int            `json:"estimated_tokens" yaml:"estimated_tokens"`
	SuggestionsBySeverity map[string]int `json:"suggestions_by_severity" yaml:"suggestions_by_severity"`
	SuggestionsByCategory map[string]int `json:"suggestions_by_category" yaml:"suggestions_by_category"`
	Autofixable           int            `json:"autofixable" yaml:"autofixable"`
}

// ComputeMetrics computes metrics for the raw prompt text and its analysis result
func ComputeMetrics(raw string, result *Result) *Metrics {
	m := &Metrics{
		SuggestionsBySeverity: make(map[string]int),
		SuggestionsByCategory: make(map[string]int),
	}

	m.Characters = utf8.RuneCountInString(raw)
	m.Words = len(strings.Fields(raw))
	if strings.TrimSpace(raw) != "" {
		m.Lines = strings.Count(strings.TrimRight(raw, "\n"), "\n") + 1
	}

	// Estimate tokens (rough: ~4 chars per token)
	m.EstimatedTokens = (m.Characters + 3) / 4

	if result == nil {
		return m
	}

	for _, s := range result.Suggestions {
		m.SuggestionsBySeverity[s.Severity.String()]++
		m.SuggestionsByCategory[string(s.Category)]++
		if s.Autofixable {
			m.Autofixable++
		}
	}

	return m
}

// CountBySeverity returns how many suggestions have the given severity
func (m *Metrics) CountBySeverity(sev rules.Severity) int {
	return m.SuggestionsBySeverity[sev.String()]
}
