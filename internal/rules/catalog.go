package rules

import (
	"regexp"
	"strings"
)

var (
	audienceTaskPattern     = regexp.MustCompile(`\b(write|explain|draft|email|post|copy)\b`)
	vagueAdjectivePattern   = regexp.MustCompile(`\b(good|best|better|nice|great|high-quality)\b`)
	analysisTaskPattern     = regexp.MustCompile(`\b(analyze|summarize|compare|review|trend|insight)\b`)
	inputReferencePattern   = regexp.MustCompile(`\b(based on|using|from|attached|below|following|dataset|csv|table|notes?)\b`)
	taskVerbPattern         = regexp.MustCompile(`\b(write|draft|summarize|analyze|compare|plan|research|generate|list|review|rewrite)\b`)
	orderingPattern         = regexp.MustCompile(`\b(step\s*\d+|first|second|third|1\.|2\.)\b`)
	brevityPattern          = regexp.MustCompile(`\b(short|brief|concise)\b`)
	depthPattern            = regexp.MustCompile(`\b(detailed|comprehensive|thorough|deep)\b`)
	exclusionPattern        = regexp.MustCompile(`\b(do not|don't|without)\b`)
	inclusionPattern        = regexp.MustCompile(`\b(include|with)\b`)
	toneTaskPattern         = regexp.MustCompile(`\b(email|post|copy|message|announcement|reply)\b`)
	specialistDomainPattern = regexp.MustCompile(`\b(contract|legal|architecture|finance|security|migration|compliance|incident|pricing|roadmap)\b`)
	selectionPattern        = regexp.MustCompile(`\b(best|recommend|pick|choose|rank|prioritize)\b`)
	processPattern          = regexp.MustCompile(`\b(plan|workflow|process|onboarding|runbook|steps?)\b`)
	edgeCasePattern         = regexp.MustCompile(`\b(edge case|fallback|if missing|if unavailable|exception)\b`)
	factualTaskPattern      = regexp.MustCompile(`\b(trends?|facts?|analysis|forecast|compare|evidence|research)\b`)
	researchTaskPattern     = regexp.MustCompile(`\b(research|compare|benchmark|report|study|market)\b`)
	userFacingPattern       = regexp.MustCompile(`\b(email|ad|copy|support|customer|announcement|landing page)\b`)
	jsonPattern             = regexp.MustCompile(`\bjson\b`)
	schemaDetailPattern     = regexp.MustCompile(`\b(fields?|keys?|schema|type|shape|required)\b`)
	placeholderPattern      = regexp.MustCompile(`\[[^\]]+\]|\{\{[^}]+\}\}|\b(TODO|TBD|FIXME)\b`)
	ambiguousRefPattern     = regexp.MustCompile(`\b(summarize|improve|fix|analyze|rewrite)\s+(it|this|that)\b`)
	communicationPattern    = regexp.MustCompile(`\b(email|reply|response|message|cold email|outreach)\b`)
)

// catalog is the ordered rule set. Its order is the evaluation order and the
// tie-break order for suggestions of equal severity.
var catalog = []Rule{
	{
		ID:           "R001",
		Name:         "Missing explicit goal",
		Severity:     High,
		Category:     CategoryGoalClarity,
		Confidence:   0.83,
		Description:  "The prompt lacks a clear action + outcome statement.",
		WhyItMatters: "A clear goal reduces broad, low-signal responses.",
		Fix:          "Start with one sentence describing the exact output you want.",
		Detect:       func(ctx *Context) bool { return !ctx.HasGoalVerb },
	},
	{
		ID:           "R002",
		Name:         "Missing audience",
		Severity:     Med,
		Category:     CategoryContext,
		Confidence:   0.7,
		Description:  "The prompt does not define who the response is for.",
		WhyItMatters: "Audience cues help the model match tone and complexity.",
		Fix:          "Add a target audience clause (for example: 'for first-time SaaS founders').",
		Detect: func(ctx *Context) bool {
			return (ctx.Intent == IntentWrite || audienceTaskPattern.MatchString(ctx.Lower)) && !ctx.HasAudience
		},
	},
	{
		ID:           "R003",
		Name:         "Missing scope boundary",
		Severity:     Med,
		Category:     CategoryConstraints,
		Confidence:   0.72,
		Description:  "The prompt is broad but has no scope limits.",
		WhyItMatters: "Scope limits keep outputs focused and practical.",
		Fix:          "Add limits such as length, number of items, or time window.",
		Detect:       func(ctx *Context) bool { return ctx.Length > 80 && !ctx.HasScope },
	},
	{
		ID:           "R004",
		Name:         "Missing output format",
		Severity:     High,
		Category:     CategoryOutputFormat,
		Autofixable:  true,
		Confidence:   0.85,
		Description:  "No explicit response format is defined.",
		WhyItMatters: "A format request makes output easier to reuse and compare.",
		Fix:          "Specify output format (bullets, table, JSON, markdown sections).",
		Detect:       func(ctx *Context) bool { return !ctx.HasOutputFormat },
	},
	{
		ID:           "R005",
		Name:         "Vague quality adjectives",
		Severity:     Med,
		Category:     CategoryConstraints,
		Confidence:   0.78,
		Description:  "Subjective adjectives appear without measurable criteria.",
		WhyItMatters: "Words like 'good' or 'best' are interpreted inconsistently.",
		Fix:          "Replace vague adjectives with measurable requirements.",
		Detect: func(ctx *Context) bool {
			return vagueAdjectivePattern.MatchString(ctx.Lower) && !ctx.HasCriteria
		},
		Evidence: func(ctx *Context) string { return vagueAdjectivePattern.FindString(ctx.Lower) },
	},
	{
		ID:           "R006",
		Name:         "Missing source/input references",
		Severity:     High,
		Category:     CategoryInputs,
		Confidence:   0.71,
		Description:  "The task expects analysis but does not define source inputs.",
		WhyItMatters: "Without input references, the model fills gaps with assumptions.",
		Fix:          "Add data/source context ('using this report', 'based on attached notes').",
		Detect: func(ctx *Context) bool {
			return analysisTaskPattern.MatchString(ctx.Lower) && !inputReferencePattern.MatchString(ctx.Lower)
		},
	},
	{
		ID:           "R007",
		Name:         "Multi-task without ordering",
		Severity:     Med,
		Category:     CategoryStructure,
		Autofixable:  true,
		Confidence:   0.67,
		Description:  "Prompt asks for multiple tasks but no execution order.",
		WhyItMatters: "Ordered tasks reduce partial or mixed outputs.",
		Fix:          "Break tasks into numbered steps in sequence.",
		Detect: func(ctx *Context) bool {
			taskCount := len(taskVerbPattern.FindAllStringIndex(ctx.Lower, -1))
			return taskCount >= 2 && !orderingPattern.MatchString(ctx.Lower)
		},
	},
	{
		ID:           "R008",
		Name:         "Conflicting constraints",
		Severity:     High,
		Category:     CategoryConstraints,
		Confidence:   0.82,
		Description:  "The prompt includes constraints that directly conflict.",
		WhyItMatters: "Conflicts force arbitrary compromises and unstable results.",
		Fix:          "Resolve contradictory constraints or separate them into options.",
		Detect: func(ctx *Context) bool {
			shortAndDetailed := brevityPattern.MatchString(ctx.Lower) && depthPattern.MatchString(ctx.Lower)
			noAndYes := exclusionPattern.MatchString(ctx.Lower) && inclusionPattern.MatchString(ctx.Lower)
			return shortAndDetailed || noAndYes
		},
	},
	{
		ID:           "R009",
		Name:         "Missing tone/style instruction",
		Severity:     Low,
		Category:     CategoryContext,
		Confidence:   0.63,
		Description:  "The writing task has no tone/style guidance.",
		WhyItMatters: "Tone control reduces rewrites for audience fit.",
		Fix:          "Add style guidance (for example: neutral, professional, friendly).",
		Detect: func(ctx *Context) bool {
			return (ctx.Intent == IntentWrite || toneTaskPattern.MatchString(ctx.Lower)) && !ctx.HasTone
		},
	},
	{
		ID:           "R010",
		Name:         "Unclear role framing",
		Severity:     Low,
		Category:     CategoryContext,
		Autofixable:  true,
		Confidence:   0.64,
		Description:  "A specialized task is requested without role framing.",
		WhyItMatters: "Role framing improves assumptions in domain-heavy tasks.",
		Fix:          "Add role context (for example: 'Act as a product marketer').",
		Detect: func(ctx *Context) bool {
			return specialistDomainPattern.MatchString(ctx.Lower) && !ctx.HasRole
		},
	},
	{
		ID:           "R011",
		Name:         "No success criteria",
		Severity:     Med,
		Category:     CategoryConstraints,
		Confidence:   0.69,
		Description:  "Prompt asks for selection/recommendation without evaluation criteria.",
		WhyItMatters: "Criteria are needed for reproducible prioritization.",
		Fix:          "Add ranking dimensions (for example: effort, impact, risk).",
		Detect: func(ctx *Context) bool {
			return selectionPattern.MatchString(ctx.Lower) && !ctx.HasCriteria
		},
	},
	{
		ID:           "R012",
		Name:         "Missing edge-case instruction",
		Severity:     Low,
		Category:     CategoryVerification,
		Confidence:   0.57,
		Description:  "Process-like prompt lacks fallback/edge-case handling.",
		WhyItMatters: "Edge-case instructions improve real-world usability.",
		Fix:          "Add a fallback step for missing or invalid inputs.",
		Detect: func(ctx *Context) bool {
			return processPattern.MatchString(ctx.Lower) && !edgeCasePattern.MatchString(ctx.Lower)
		},
	},
	{
		ID:           "R013",
		Name:         "Missing verification request",
		Severity:     Med,
		Category:     CategoryVerification,
		Autofixable:  true,
		Confidence:   0.73,
		Description:  "Factual task has no verification or uncertainty instruction.",
		WhyItMatters: "Verification prompts reduce overconfident wrong claims.",
		Fix:          "Ask the model to mark uncertain claims and verify key facts.",
		Detect: func(ctx *Context) bool {
			return factualTaskPattern.MatchString(ctx.Lower) && !ctx.HasVerification
		},
	},
	{
		ID:           "R014",
		Name:         "No citation requirement",
		Severity:     Med,
		Category:     CategoryVerification,
		Autofixable:  true,
		Confidence:   0.72,
		Description:  "Research-like request does not ask for sources.",
		WhyItMatters: "Source requirements make outputs auditable.",
		Fix:          "Require inline citations or a source list.",
		Detect: func(ctx *Context) bool {
			return researchTaskPattern.MatchString(ctx.Lower) && !ctx.HasCitationInstruction
		},
	},
	{
		ID:           "R015",
		Name:         "No output language/locale",
		Severity:     Low,
		Category:     CategoryContext,
		Confidence:   0.54,
		Description:  "User-facing writing task omits language/locale.",
		WhyItMatters: "Locale mismatches can make copy unusable.",
		Fix:          "Specify language and locale (for example: US English).",
		Detect: func(ctx *Context) bool {
			return userFacingPattern.MatchString(ctx.Lower) && !ctx.HasLocale
		},
	},
	{
		ID:           "R016",
		Name:         "Missing JSON schema when JSON requested",
		Severity:     High,
		Category:     CategoryOutputFormat,
		Autofixable:  true,
		Confidence:   0.88,
		Description:  "Prompt asks for JSON but does not define keys/types.",
		WhyItMatters: "Schema detail reduces malformed output.",
		Fix:          "Specify required fields with expected types and constraints.",
		Detect: func(ctx *Context) bool {
			return jsonPattern.MatchString(ctx.Lower) && !schemaDetailPattern.MatchString(ctx.Lower)
		},
	},
	{
		ID:           "R017",
		Name:         "Overlong unstructured prompt",
		Severity:     Med,
		Category:     CategoryStructure,
		Autofixable:  true,
		Confidence:   0.66,
		Description:  "Prompt is long and lacks section structure.",
		WhyItMatters: "Sectioning improves comprehension and output quality.",
		Fix:          "Split prompt into Goal, Context, Inputs, Constraints, Output sections.",
		Detect: func(ctx *Context) bool {
			return ctx.Length > 700 && !ctx.HasSections && strings.Count(ctx.Prompt, "\n") < 4
		},
	},
	{
		ID:           "R018",
		Name:         "Placeholder leakage",
		Severity:     High,
		Category:     CategoryInputs,
		Autofixable:  true,
		Confidence:   0.9,
		Description:  "Prompt includes unresolved placeholders.",
		WhyItMatters: "Unresolved placeholders make outputs generic or broken.",
		Fix:          "Replace placeholders with concrete values before sending.",
		// Placeholders are matched case-sensitively against the normalized prompt.
		Detect:   func(ctx *Context) bool { return placeholderPattern.MatchString(ctx.Prompt) },
		Evidence: func(ctx *Context) string { return placeholderPattern.FindString(ctx.Prompt) },
	},
	{
		ID:           "R019",
		Name:         "Ambiguous pronouns/references",
		Severity:     Med,
		Category:     CategoryGoalClarity,
		Confidence:   0.56,
		Description:  "Prompt uses ambiguous references like 'it' or 'this'.",
		WhyItMatters: "Ambiguity increases the chance of targeting the wrong content.",
		Fix:          "Replace pronouns with explicit object names.",
		Detect:       func(ctx *Context) bool { return ambiguousRefPattern.MatchString(ctx.Lower) },
		Evidence:     func(ctx *Context) string { return ambiguousRefPattern.FindString(ctx.Lower) },
	},
	{
		ID:           "R020",
		Name:         "Missing response length control",
		Severity:     Low,
		Category:     CategoryConstraints,
		Autofixable:  true,
		Confidence:   0.68,
		Description:  "Communication task has no response length guidance.",
		WhyItMatters: "Length controls keep outputs usable in real chat workflows.",
		Fix:          "Add target word count or maximum length.",
		Detect: func(ctx *Context) bool {
			return communicationPattern.MatchString(ctx.Lower) && !ctx.HasLengthControl
		},
	},
}
