package rules

import (
	"fmt"
	"strings"
	"testing"
)

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	if len(defs) != 20 {
		t.Fatalf("len(Definitions()) = %d, want 20", len(defs))
	}

	seen := make(map[string]bool)
	for i, def := range defs {
		want := fmt.Sprintf("R%03d", i+1)
		if def.ID != want {
			t.Errorf("Definitions()[%d].ID = %q, want %q", i, def.ID, want)
		}
		if seen[def.ID] {
			t.Errorf("duplicate rule id %q", def.ID)
		}
		seen[def.ID] = true
		if def.Severity.Rank() == 0 {
			t.Errorf("rule %s has invalid severity %d", def.ID, def.Severity)
		}
	}
}

func TestCatalog_RuleMetadata(t *testing.T) {
	autofixable := map[string]bool{
		"R004": true, "R007": true, "R010": true, "R013": true, "R014": true,
		"R016": true, "R017": true, "R018": true, "R020": true,
	}

	for _, rule := range Catalog() {
		if rule.Detect == nil {
			t.Errorf("rule %s has no detector", rule.ID)
		}
		if rule.Confidence < 0 || rule.Confidence > 1 {
			t.Errorf("rule %s confidence = %v, want within [0,1]", rule.ID, rule.Confidence)
		}
		if rule.Autofixable != autofixable[rule.ID] {
			t.Errorf("rule %s autofixable = %v, want %v", rule.ID, rule.Autofixable, autofixable[rule.ID])
		}
		if rule.Name == "" || rule.Description == "" || rule.WhyItMatters == "" || rule.Fix == "" {
			t.Errorf("rule %s has empty display text", rule.ID)
		}
	}
}

func TestDetectors(t *testing.T) {
	tests := []struct {
		name   string
		rule   string
		prompt string
		intent Intent
		want   bool
	}{
		{"no goal verb", "R001", "hello there", IntentOther, true},
		{"goal verb", "R001", "Write a poem", IntentOther, false},

		{"writing without audience", "R002", "Write a poem", IntentOther, true},
		{"writing with audience", "R002", "Write a poem for new users", IntentOther, false},
		{"write intent without audience", "R002", "A poem about rain", IntentWrite, true},

		{"long without scope", "R003", strings.Repeat("word ", 20), IntentOther, true},
		{"long with scope", "R003", strings.Repeat("word ", 20) + "in 3 bullets", IntentOther, false},
		{"short without scope", "R003", "word word", IntentOther, false},

		{"no format", "R004", "Write a poem", IntentOther, true},
		{"list format", "R004", "Write a poem as a list", IntentOther, false},

		{"vague adjective", "R005", "Write a good poem", IntentOther, true},
		{"vague adjective with criteria", "R005", "Write a good poem based on these criteria", IntentOther, false},

		{"analysis without inputs", "R006", "Summarize the meeting", IntentOther, true},
		{"analysis with inputs", "R006", "Summarize the notes below", IntentOther, false},

		{"several tasks unordered", "R007", "Write a summary and review the draft", IntentOther, true},
		{"several tasks ordered", "R007", "First write the intro, second review it", IntentOther, false},
		{"single task", "R007", "Write a summary", IntentOther, false},

		{"short and detailed", "R008", "Give a short but detailed answer", IntentOther, true},
		{"exclude and include", "R008", "Do not include prices", IntentOther, true},
		{"no conflict", "R008", "Give a short answer", IntentOther, false},

		{"write intent without tone", "R009", "Draft a poem", IntentWrite, true},
		{"write intent with tone", "R009", "Draft a poem in a friendly tone", IntentWrite, false},

		{"specialist domain without role", "R010", "Review this contract", IntentOther, true},
		{"specialist domain with role", "R010", "Act as a lawyer and review this contract", IntentOther, false},

		{"selection without criteria", "R011", "Recommend a laptop", IntentOther, true},
		{"selection with criteria", "R011", "Recommend a laptop based on battery life", IntentOther, false},

		{"process without fallback", "R012", "Design an onboarding process", IntentOther, true},
		{"process with fallback", "R012", "Design an onboarding process with a fallback", IntentOther, false},

		{"factual without verification", "R013", "Forecast sales trends", IntentOther, true},
		{"factual with verification", "R013", "Forecast sales trends and flag uncertain numbers", IntentOther, false},

		{"research without citations", "R014", "Research the market", IntentOther, true},
		{"research with citations", "R014", "Research the market and cite sources", IntentOther, false},

		{"user facing without locale", "R015", "Write an email to a customer", IntentOther, true},
		{"user facing with locale", "R015", "Write an email to a customer in US English", IntentOther, false},

		{"json without schema", "R016", "Return JSON for this analysis.", IntentAnalyze, true},
		{"json with keys", "R016", "Return JSON with keys name and age", IntentOther, false},

		{"overlong unstructured", "R017", strings.Repeat("lorem ipsum ", 70), IntentOther, true},
		{"overlong with sections", "R017", "Goal: " + strings.Repeat("lorem ipsum ", 70), IntentOther, false},

		{"mustache placeholder", "R018", "Email {{name}} about the launch", IntentOther, true},
		{"bracket placeholder", "R018", "Email [customer] about the launch", IntentOther, true},
		{"todo marker", "R018", "Email Sam about TODO", IntentOther, true},
		{"lowercase todo is prose", "R018", "Email Sam about my todo list", IntentOther, false},

		{"ambiguous reference", "R019", "Please summarize this", IntentOther, true},
		{"explicit reference", "R019", "Summarize the report", IntentOther, false},

		{"reply without length", "R020", "Reply to the message", IntentOther, true},
		{"reply with length", "R020", "Reply to the message in under 50 words", IntentOther, false},
	}

	for _, tt := range tests {
		t.Run(tt.rule+"/"+tt.name, func(t *testing.T) {
			rule, ok := Lookup(tt.rule)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.rule)
			}
			got := rule.Detect(BuildContext(tt.prompt, tt.intent))
			if got != tt.want {
				t.Errorf("%s.Detect(%q) = %v, want %v", tt.rule, tt.prompt, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Evidence(t *testing.T) {
	tests := []struct {
		prompt string
		rule   string
		want   string
	}{
		{"Write a good poem", "R005", "good"},
		{"Email {{name}} about the launch", "R018", "{{name}}"},
		{"Please summarize this", "R019", "summarize this"},
	}

	for _, tt := range tests {
		suggestions := DefaultRegistry().Evaluate(BuildContext(tt.prompt, IntentOther))
		var found *Suggestion
		for i := range suggestions {
			if suggestions[i].RuleID == tt.rule {
				found = &suggestions[i]
			}
		}
		if found == nil {
			t.Fatalf("Evaluate(%q) did not trigger %s", tt.prompt, tt.rule)
		}
		if len(found.Evidence) != 1 || found.Evidence[0].Text != tt.want || found.Evidence[0].Kind != "phrase" {
			t.Errorf("%s evidence = %+v, want phrase %q", tt.rule, found.Evidence, tt.want)
		}
	}
}

func TestEvaluate_CatalogOrderAndIDs(t *testing.T) {
	suggestions := DefaultRegistry().Evaluate(BuildContext("Write a good launch plan for my product.", IntentWrite))
	if len(suggestions) == 0 {
		t.Fatal("Evaluate() returned no suggestions")
	}

	prev := ""
	for _, s := range suggestions {
		if s.RuleID <= prev {
			t.Errorf("suggestion %s out of catalog order after %s", s.RuleID, prev)
		}
		prev = s.RuleID
		if s.Evidence == nil {
			t.Errorf("suggestion %s has nil evidence", s.RuleID)
		}
	}

	for _, s := range suggestions {
		if s.RuleID == "R004" && s.ID != "sug_r004_04" {
			t.Errorf("R004 suggestion id = %q, want %q", s.ID, "sug_r004_04")
		}
	}
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		sev     Severity
		text    string
		penalty int
		rank    int
	}{
		{High, "high", 12, 3},
		{Med, "med", 7, 2},
		{Low, "low", 4, 1},
	}

	for _, tt := range tests {
		if got := tt.sev.String(); got != tt.text {
			t.Errorf("String() = %q, want %q", got, tt.text)
		}
		if got := tt.sev.Penalty(); got != tt.penalty {
			t.Errorf("%s.Penalty() = %d, want %d", tt.text, got, tt.penalty)
		}
		if got := tt.sev.Rank(); got != tt.rank {
			t.Errorf("%s.Rank() = %d, want %d", tt.text, got, tt.rank)
		}
		parsed, ok := ParseSeverity(tt.text)
		if !ok || parsed != tt.sev {
			t.Errorf("ParseSeverity(%q) = %v, %v", tt.text, parsed, ok)
		}
	}

	if _, ok := ParseSeverity("critical"); ok {
		t.Error("ParseSeverity(critical) ok = true, want false")
	}
}
