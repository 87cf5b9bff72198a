package rewrite

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pthm/promptly/internal/rules"
)

const (
	maxPriorityIssues = 8
	maxChangeNotes    = 3
)

// PriorityIssue is one critic finding
type PriorityIssue struct {
	Title        string         `json:"title" yaml:"title"`
	Reason       string         `json:"reason" yaml:"reason"`
	FixHint      string         `json:"fix_hint" yaml:"fix_hint"`
	Severity     rules.Severity `json:"severity" yaml:"severity"`
	LinkedRuleID string         `json:"linked_rule_id" yaml:"linked_rule_id"`
}

// Critic holds the critique half of a rewrite response
type Critic struct {
	Summary        string          `json:"summary" yaml:"summary"`
	PriorityIssues []PriorityIssue `json:"priority_issues" yaml:"priority_issues"`
}

// Variants are the copy-ready rewrites
type Variants struct {
	Default      string `json:"default" yaml:"default"`
	Short        string `json:"short" yaml:"short"`
	StrictFormat string `json:"strict_format" yaml:"strict_format"`
}

// Rewriter holds the rewrite half of a response
type Rewriter struct {
	ImprovedPrompt string   `json:"improved_prompt" yaml:"improved_prompt"`
	Variants       Variants `json:"variants" yaml:"variants"`
	ChangeNotes    []string `json:"change_notes" yaml:"change_notes"`
}

// NormalizedRewrite is a model rewrite response in canonical form
type NormalizedRewrite struct {
	Critic   Critic   `json:"critic" yaml:"critic"`
	Rewriter Rewriter `json:"rewriter" yaml:"rewriter"`
}

// Variant names accepted by NormalizedRewrite.Variant
const (
	VariantDefault      = "default"
	VariantShort        = "short"
	VariantStrictFormat = "strict_format"
)

// Variant returns the named variant. strict_format is only present when the
// model produced one.
func (n *NormalizedRewrite) Variant(name string) (string, bool) {
	switch name {
	case VariantDefault, "":
		return n.Rewriter.Variants.Default, true
	case VariantShort:
		return n.Rewriter.Variants.Short, true
	case VariantStrictFormat:
		v := n.Rewriter.Variants.StrictFormat
		return v, v != ""
	default:
		return "", false
	}
}

// asString returns v's text when v is a JSON string, otherwise fallback
func asString(v gjson.Result, fallback string) string {
	if v.Type == gjson.String {
		return v.Str
	}
	return fallback
}

// Normalize coerces a parsed model response into a NormalizedRewrite. It
// returns nil when parsed is not an object or no non-blank improved prompt can
// be found in rewriter.improved_prompt, rewriter.variants.default or
// rewriter.variants.short.
func Normalize(parsed gjson.Result) *NormalizedRewrite {
	if !parsed.IsObject() {
		return nil
	}

	rw := parsed.Get("rewriter")
	raw := ""
	for _, path := range []string{"improved_prompt", "variants.default", "variants.short"} {
		if raw = asString(rw.Get(path), ""); raw != "" {
			break
		}
	}

	improved := strings.TrimSpace(raw)
	if improved == "" {
		return nil
	}

	critic := parsed.Get("critic")
	return &NormalizedRewrite{
		Critic: Critic{
			Summary:        asString(critic.Get("summary"), ""),
			PriorityIssues: normalizeIssues(critic.Get("priority_issues")),
		},
		Rewriter: Rewriter{
			ImprovedPrompt: improved,
			Variants:       normalizeVariants(rw.Get("variants"), improved),
			ChangeNotes:    normalizeNotes(rw.Get("change_notes")),
		},
	}
}

// normalizeIssues caps the list before filtering, so valid entries past the
// eighth are dropped even when earlier ones are invalid.
func normalizeIssues(v gjson.Result) []PriorityIssue {
	issues := []PriorityIssue{}
	if !v.IsArray() {
		return issues
	}

	items := v.Array()
	if len(items) > maxPriorityIssues {
		items = items[:maxPriorityIssues]
	}
	for _, item := range items {
		issue := PriorityIssue{
			Title:        asString(item.Get("title"), ""),
			Reason:       asString(item.Get("reason"), ""),
			FixHint:      asString(item.Get("fix_hint"), ""),
			Severity:     issueSeverity(item.Get("severity")),
			LinkedRuleID: asString(item.Get("linked_rule_id"), ""),
		}
		if issue.Title == "" || issue.FixHint == "" {
			continue
		}
		issues = append(issues, issue)
	}
	return issues
}

// issueSeverity accepts exactly "low", "med" or "high"; anything else is med
func issueSeverity(v gjson.Result) rules.Severity {
	switch asString(v, "") {
	case "low":
		return rules.Low
	case "high":
		return rules.High
	default:
		return rules.Med
	}
}

func normalizeVariants(v gjson.Result, improved string) Variants {
	out := Variants{Default: improved, Short: improved}
	if v.IsObject() {
		out.Default = asString(v.Get("default"), improved)
		out.Short = asString(v.Get("short"), improved)
		out.StrictFormat = asString(v.Get("strict_format"), "")
	}
	if out.Default == "" {
		out.Default = improved
	}
	if out.Short == "" {
		out.Short = improved
	}
	return out
}

func normalizeNotes(v gjson.Result) []string {
	notes := []string{}
	if !v.IsArray() {
		return notes
	}

	items := v.Array()
	if len(items) > maxChangeNotes {
		items = items[:maxChangeNotes]
	}
	for _, item := range items {
		if s := asString(item, ""); s != "" {
			notes = append(notes, s)
		}
	}
	return notes
}
