package fixer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pthm/promptly/internal/rules"
)

// Transform rewrites a prompt to address one rule
type Transform func(prompt string) string

const placeholderValue = "[insert value]"

var (
	taskSeparatorPattern = regexp.MustCompile(`(?i)\band then\b|\bthen\b|\band\b|;`)
	stepLeadPattern      = regexp.MustCompile(`^[,\-\s]+`)

	mustachePattern   = regexp.MustCompile(`\{\{[^}]+\}\}`)
	bracketPattern    = regexp.MustCompile(`\[[^\]]+\]`)
	todoMarkerPattern = regexp.MustCompile(`\b(TODO|TBD|FIXME)\b`)
)

func appendBlock(block string) Transform {
	return func(prompt string) string {
		return strings.TrimSpace(prompt) + "\n\n" + block
	}
}

// transforms maps rule ids to their autofix. Rules without an entry are
// hint-only.
var transforms = map[string]Transform{
	"R004": appendBlock("Output format: Return the answer as concise bullet points with clear headings."),
	"R007": orderTasks,
	"R010": func(prompt string) string {
		return "Act as a domain specialist for this task.\n\n" + strings.TrimSpace(prompt)
	},
	"R013": appendBlock("Verification: Flag uncertain claims and state what should be verified."),
	"R014": appendBlock("Sources: Provide citations or links for factual claims."),
	"R016": appendBlock("JSON schema:\n{\n  \"summary\": \"string\",\n  \"items\": [\"string\"],\n  \"score\": 0\n}"),
	"R017": sectionize,
	"R018": fillPlaceholders,
	"R020": appendBlock("Length: Keep the response between 90 and 120 words."),
}

// splitTasks splits a prompt on sequencing words into trimmed, non-empty parts.
func splitTasks(prompt string) []string {
	var parts []string
	for _, part := range taskSeparatorPattern.Split(prompt, -1) {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func orderTasks(prompt string) string {
	parts := splitTasks(prompt)
	if len(parts) < 2 {
		return prompt
	}

	steps := make([]string, 0, len(parts))
	for i, part := range parts {
		steps = append(steps, fmt.Sprintf("%d. %s", i+1, stepLeadPattern.ReplaceAllString(part, "")))
	}
	return "Complete the task in this order:\n" + strings.Join(steps, "\n")
}

func sectionize(prompt string) string {
	return "Goal:\n" + strings.TrimSpace(prompt) +
		"\n\nContext:\n[insert context]" +
		"\n\nInputs:\n[insert data or references]" +
		"\n\nConstraints:\n[insert limits]" +
		"\n\nOutput format:\n[insert desired structure]"
}

func fillPlaceholders(prompt string) string {
	out := mustachePattern.ReplaceAllLiteralString(prompt, placeholderValue)
	out = bracketPattern.ReplaceAllLiteralString(out, placeholderValue)
	return todoMarkerPattern.ReplaceAllLiteralString(out, placeholderValue)
}

// Fixable reports whether a rule has a registered autofix
func Fixable(ruleID string) bool {
	_, ok := transforms[ruleID]
	return ok
}

// Apply rewrites prompt to address the suggestion. When no transform is
// registered for the suggestion's rule the prompt is returned unchanged.
func Apply(prompt string, s rules.Suggestion) string {
	transform, ok := transforms[s.RuleID]
	if !ok {
		return prompt
	}
	return strings.TrimSpace(transform(prompt))
}

// ApplyAll applies every fixable suggestion in order, feeding each result into
// the next transform. It returns the final text and the rule ids that changed it.
func ApplyAll(prompt string, suggestions []rules.Suggestion) (string, []string) {
	var applied []string
	out := prompt
	for _, s := range suggestions {
		if !Fixable(s.RuleID) {
			continue
		}
		next := Apply(out, s)
		if next != out {
			applied = append(applied, s.RuleID)
		}
		out = next
	}
	return out, applied
}
