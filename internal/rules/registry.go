package rules

// Registry holds an ordered set of rules
type Registry struct {
	rules []Rule
	byID  map[string]int
}

// NewRegistry creates a registry over the given rules, preserving their order
func NewRegistry(rules ...Rule) *Registry {
	r := &Registry{
		rules: make([]Rule, 0, len(rules)),
		byID:  make(map[string]int, len(rules)),
	}
	for _, rule := range rules {
		r.register(rule)
	}
	return r
}

func (r *Registry) register(rule Rule) {
	if _, exists := r.byID[rule.ID]; exists {
		return
	}
	r.byID[rule.ID] = len(r.rules)
	r.rules = append(r.rules, rule)
}

// defaultRegistry is built once and only read afterwards.
var defaultRegistry = NewRegistry(catalog...)

// DefaultRegistry returns the registry with the built-in catalog
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Len returns the number of rules
func (r *Registry) Len() int {
	return len(r.rules)
}

// Rules returns a copy of the rules in evaluation order
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Get returns a rule by id
func (r *Registry) Get(id string) (Rule, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return Rule{}, false
	}
	return r.rules[idx], true
}

// Definitions describes every rule in evaluation order
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.rules))
	for _, rule := range r.rules {
		defs = append(defs, Definition{
			ID:          rule.ID,
			Name:        rule.Name,
			Severity:    rule.Severity,
			Category:    rule.Category,
			Autofixable: rule.Autofixable,
		})
	}
	return defs
}

// Evaluate runs every detector against ctx in order and returns a suggestion
// for each rule that fired. The result is in evaluation order.
func (r *Registry) Evaluate(ctx *Context) []Suggestion {
	suggestions := make([]Suggestion, 0)
	for i := range r.rules {
		rule := &r.rules[i]
		if rule.Detect == nil || !rule.Detect(ctx) {
			continue
		}
		suggestions = append(suggestions, rule.Suggest(ctx, i))
	}
	return suggestions
}

// Catalog returns the built-in rules in evaluation order
func Catalog() []Rule {
	return defaultRegistry.Rules()
}

// Definitions describes the built-in rules in evaluation order
func Definitions() []Definition {
	return defaultRegistry.Definitions()
}

// Lookup returns a built-in rule by id
func Lookup(id string) (Rule, bool) {
	return defaultRegistry.Get(id)
}
