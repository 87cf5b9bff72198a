package rewrite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pthm/promptly/internal/rules"
)

// CriticSystemPrompt instructs a model to critique a prompt only
const CriticSystemPrompt = `You are Promptly Critic, an expert prompt quality evaluator.

Your job:
1) Evaluate a user prompt for clarity, completeness, and reliability.
2) Use provided lint findings when available. Do not contradict deterministic rule findings unless clearly irrelevant.
3) Produce concise, actionable feedback that preserves the user's intent.

Rules:
- Never invent missing user intent.
- Prefer specific fixes over generic advice.
- Prioritize high-impact issues first.
- Emphasize schema completeness when structured output is requested.
- For factual tasks, suggest uncertainty handling and citation behavior.

Output only valid JSON.`

// RewriterSystemPrompt instructs a model to rewrite a prompt only
const RewriterSystemPrompt = `You are Promptly Rewriter, an expert at rewriting prompts while preserving user intent.

Your job:
1) Rewrite the user's prompt to improve clarity, constraints, and output reliability.
2) Incorporate critic/lint findings when provided.
3) Return copy-paste-ready variants: default, short, and strict_format (only when structured output is requested).

Hard constraints:
- Preserve original goal and constraints.
- Do not add facts that were not provided.
- Keep rewrite concise and actionable.
- Use explicit placeholders for missing context.

Output only valid JSON.`

// CombinedSystemPrompt asks for critique and rewrite in one response. It is
// the prompt Service uses.
const CombinedSystemPrompt = `You are Promptly Assistant. First critique the prompt, then rewrite it.

Instructions:
1) Preserve the user's original intent and constraints.
2) Use deterministic lint findings when provided.
3) Output variants:
   - default
   - short
   - strict_format (only if structured output was requested)
4) Never fabricate facts that are not present.

Output only valid JSON.`

const (
	userMessagePreamble = "Rewrite this prompt according to the JSON schema. Return JSON only.\n\n"
	maxLintFindings     = 8
)

var structuredOutputPattern = regexp.MustCompile(`(?i)\b(json|table|schema|csv|yaml|xml)\b`)

// WantsStructuredOutput reports whether the prompt asks for a machine-readable
// or tabular format
func WantsStructuredOutput(prompt string) bool {
	return structuredOutputPattern.MatchString(prompt)
}

// Request is the input to a rewrite
type Request struct {
	Prompt                string
	Intent                rules.Intent
	Suggestions           []rules.Suggestion
	WantsStructuredOutput bool
}

// NewRequest builds a request, detecting structured output from the prompt
func NewRequest(prompt string, intent rules.Intent, suggestions []rules.Suggestion) Request {
	return Request{
		Prompt:                prompt,
		Intent:                intent,
		Suggestions:           suggestions,
		WantsStructuredOutput: WantsStructuredOutput(prompt),
	}
}

// Field order below is the order keys appear in the user message.

type lintFinding struct {
	RuleID   string         `json:"rule_id"`
	Severity rules.Severity `json:"severity"`
	Title    string         `json:"title"`
	Fix      string         `json:"fix"`
}

type issueSchema struct {
	Title        string `json:"title"`
	Reason       string `json:"reason"`
	FixHint      string `json:"fix_hint"`
	Severity     string `json:"severity"`
	LinkedRuleID string `json:"linked_rule_id"`
}

type criticSchema struct {
	Summary        string        `json:"summary"`
	PriorityIssues []issueSchema `json:"priority_issues"`
}

type variantsSchema struct {
	Default      string `json:"default"`
	Short        string `json:"short"`
	StrictFormat string `json:"strict_format"`
}

type rewriterSchema struct {
	ImprovedPrompt string         `json:"improved_prompt"`
	Variants       variantsSchema `json:"variants"`
	ChangeNotes    []string       `json:"change_notes"`
}

type responseSchema struct {
	Critic   criticSchema   `json:"critic"`
	Rewriter rewriterSchema `json:"rewriter"`
}

type payload struct {
	Prompt                string         `json:"prompt"`
	Intent                rules.Intent   `json:"intent"`
	WantsStructuredOutput bool           `json:"wants_structured_output"`
	LintFindings          []lintFinding  `json:"lint_findings"`
	ResponseSchema        responseSchema `json:"response_schema"`
}

var schema = responseSchema{
	Critic: criticSchema{
		Summary: "string",
		PriorityIssues: []issueSchema{{
			Title:        "string",
			Reason:       "string",
			FixHint:      "string",
			Severity:     "low|med|high",
			LinkedRuleID: "optional string",
		}},
	},
	Rewriter: rewriterSchema{
		ImprovedPrompt: "string",
		Variants: variantsSchema{
			Default:      "string",
			Short:        "string",
			StrictFormat: "optional string",
		},
		ChangeNotes: []string{"max 3 strings"},
	},
}

// BuildUserMessage renders the user message for a rewrite: a fixed preamble
// followed by the pretty-printed payload. At most eight suggestions are sent,
// reduced to id, severity, title and fix.
func BuildUserMessage(req Request) (string, error) {
	suggestions := req.Suggestions
	if len(suggestions) > maxLintFindings {
		suggestions = suggestions[:maxLintFindings]
	}

	findings := make([]lintFinding, 0, len(suggestions))
	for _, s := range suggestions {
		findings = append(findings, lintFinding{
			RuleID:   s.RuleID,
			Severity: s.Severity,
			Title:    s.Title,
			Fix:      s.SuggestedFix,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	err := enc.Encode(payload{
		Prompt:                req.Prompt,
		Intent:                req.Intent,
		WantsStructuredOutput: req.WantsStructuredOutput,
		LintFindings:          findings,
		ResponseSchema:        schema,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode rewrite payload: %w", err)
	}

	return userMessagePreamble + strings.TrimSuffix(buf.String(), "\n"), nil
}
