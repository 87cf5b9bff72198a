package rules

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Intent is the task category a prompt belongs to
type Intent string

const (
	IntentWrite      Intent = "write"
	IntentAnalyze    Intent = "analyze"
	IntentSummarize  Intent = "summarize"
	IntentCode       Intent = "code"
	IntentBrainstorm Intent = "brainstorm"
	IntentOther      Intent = "other"
)

// Intents lists the recognized intents in display order.
var Intents = []Intent{IntentWrite, IntentAnalyze, IntentSummarize, IntentCode, IntentBrainstorm, IntentOther}

// ParseIntent maps s to a known intent. Unknown values become IntentOther.
func ParseIntent(s string) Intent {
	in := Intent(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Intents {
		if in == known {
			return in
		}
	}
	return IntentOther
}

// Context holds the features derived from a prompt. It is built once per
// analysis and never modified afterwards.
type Context struct {
	Prompt string
	Lower  string
	Tokens []string
	Intent Intent
	Length int

	HasGoalVerb            bool
	HasAudience            bool
	HasScope               bool
	HasOutputFormat        bool
	HasTone                bool
	HasRole                bool
	HasCriteria            bool
	HasVerification        bool
	HasCitationInstruction bool
	HasLocale              bool
	HasLengthControl       bool
	HasSections            bool
}

const audienceNouns = `(new|beginner|advanced|technical|non-technical|executive|customer|user|founder|student|marketer|analyst|team|manager)s?`

var (
	goalVerbPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(create|write|draft|explain|summarize|analyze|compare|generate|plan|design|review|brainstorm|list|improve|rewrite|build|debug)\b`),
	}
	audiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\baudience\b`),
		regexp.MustCompile(`\bfor\s+` + audienceNouns + `\b`),
		regexp.MustCompile(`\bto\s+` + audienceNouns + `\b`),
	}
	scopePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d+\s*(words?|chars?|characters?|sentences?|paragraphs?|bullets?|steps?|items?|minutes?)\b`),
		regexp.MustCompile(`\b(top|max(?:imum)?|at most|no more than|under|within)\b`),
	}
	outputFormatPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(json|table|bullet|list|markdown|yaml|csv|xml|schema|rubric|sections?)\b`),
	}
	tonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(tone|voice|style|formal|casual|friendly|professional|neutral|concise|persuasive|empathetic|direct)\b`),
	}
	rolePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(act as|you are|as a|as an|assume the role|role:)\b`),
	}
	criteriaPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(criteria|based on|rank by|prioritize|score by|evaluate by|trade[- ]?off)\b`),
	}
	verificationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(verify|double-check|uncertain|confidence|assumption|fact-check|cite|sources?)\b`),
	}
	citationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(cite|citation|source|references?|links?)\b`),
	}
	localePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(english|spanish|french|german|hindi|us|uk|locale|regional|usd|eur|aud)\b`),
	}
	lengthControlPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d+\s*(words?|characters?|chars?)\b`),
		regexp.MustCompile(`\b(concise|brief|short|under|within|max(?:imum)?|no more than)\b`),
	}
	sectionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(goal|context|inputs?|constraints?|output format|steps?)\s*:`),
	}
)

// NormalizeWhitespace collapses whitespace runs to single spaces and trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hasAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// BuildContext derives the feature context for a prompt. It never fails; an
// empty prompt yields a context with every feature false.
func BuildContext(prompt string, intent Intent) *Context {
	normalized := NormalizeWhitespace(prompt)
	lower := strings.ToLower(normalized)

	return &Context{
		Prompt: normalized,
		Lower:  lower,
		Tokens: strings.Fields(lower),
		Intent: ParseIntent(string(intent)),
		Length: utf8.RuneCountInString(normalized),

		HasGoalVerb:            hasAny(lower, goalVerbPatterns),
		HasAudience:            hasAny(lower, audiencePatterns),
		HasScope:               hasAny(lower, scopePatterns),
		HasOutputFormat:        hasAny(lower, outputFormatPatterns),
		HasTone:                hasAny(lower, tonePatterns),
		HasRole:                hasAny(lower, rolePatterns),
		HasCriteria:            hasAny(lower, criteriaPatterns),
		HasVerification:        hasAny(lower, verificationPatterns),
		HasCitationInstruction: hasAny(lower, citationPatterns),
		HasLocale:              hasAny(lower, localePatterns),
		HasLengthControl:       hasAny(lower, lengthControlPatterns),
		HasSections:            hasAny(lower, sectionPatterns),
	}
}
