package rules

import (
	"fmt"

	"pybindgen/internal/analyze"
	"pybindgen/internal/config"
	"pybindgen/internal/diagnostic"
	"pybindgen/internal/match"
)

// maxSuggestions caps the "did you mean" hints on unknown directives.
const maxSuggestions = 2

// Registry maps directive names to their rules. Names are unique per rule,
// so lookup is never ambiguous.
type Registry struct {
	rules map[string]*Rule
	names []string
}

// NewRegistry returns a registry holding the builtin rule set.
func NewRegistry() *Registry {
	r := &Registry{rules: make(map[string]*Rule)}

	for _, rule := range builtin() {
		r.rules[rule.Name] = rule
		r.names = append(r.names, rule.Name)
	}

	return r
}

// Lookup returns the rule registered under the directive name.
func (r *Registry) Lookup(name string) (*Rule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// Names returns the registered directive names in registration order.
func (r *Registry) Names() []string {
	return r.names
}

// Dispatch runs every directive of a block through its rule and returns the
// synthesized snippets in directive order. Any error diagnostic voids the
// whole block (the transform is all-or-nothing per call site); unknown
// directives only warn and leave the block's other directives untouched.
func (r *Registry) Dispatch(b *analyze.Block, cfg *config.Config, diags *diagnostic.Diagnostics) []Snippet {
	var (
		snippets []Snippet
		failed   bool
	)

	for _, dir := range b.Directives {
		rule, ok := r.Lookup(dir.Name)
		if !ok {
			d := diagnostic.Diagnostic{
				Severity:    diagnostic.SeverityWarning,
				Code:        diagnostic.CodeUnknownDirective,
				Message:     fmt.Sprintf("no rule for directive %q", dir.Name),
				Block:       b.TypeName,
				Position:    dir.Pos,
				Suggestions: match.Suggest(dir.Name, r.names, maxSuggestions),
			}
			diags.Warnings = append(diags.Warnings, d)

			continue
		}

		if rule.Kind != b.Kind {
			diags.AddError(diagnostic.CodeMalformedTarget,
				fmt.Sprintf("rule %q expects an %s block, but %s is an %s", rule.Name, rule.Kind, b.TypeName, b.Kind),
				b.TypeName, dir.Pos)
			failed = true

			continue
		}

		if rule.NeedsArg && dir.Arg == "" {
			diags.AddError(diagnostic.CodeMalformedTarget,
				fmt.Sprintf("rule %q requires the paired enum as an argument", rule.Name),
				b.TypeName, dir.Pos)
			failed = true

			continue
		}

		if !rule.NeedsArg && dir.Arg != "" {
			diags.AddError(diagnostic.CodeMalformedTarget,
				fmt.Sprintf("rule %q takes no argument, got %q", rule.Name, dir.Arg),
				b.TypeName, dir.Pos)
			failed = true

			continue
		}

		if cfg.DelegateChecks() && !checkDelegates(rule, b, dir.Pos, diags) {
			failed = true

			continue
		}

		rendered, err := rule.Apply(b, dir.Arg)
		if err != nil {
			diags.AddError(diagnostic.CodeMalformedTarget, err.Error(), b.TypeName, dir.Pos)
			failed = true

			continue
		}

		for _, sn := range rendered {
			if b.HasItem(sn.Name) || b.HasFileFunc(sn.Name) {
				diags.AddError(diagnostic.CodeDuplicateItem,
					fmt.Sprintf("%s already exists; was rule %q applied twice?", sn.Name, rule.Name),
					b.TypeName, dir.Pos)
				failed = true
			}
		}

		snippets = append(snippets, rendered...)
	}

	if failed {
		return nil
	}

	return snippets
}

// checkDelegates verifies, by name only, that the block declares the
// delegates the rule's output calls. Signature mismatches still surface
// from the compiler downstream.
func checkDelegates(rule *Rule, b *analyze.Block, pos string, diags *diagnostic.Diagnostics) bool {
	ok := true

	for _, d := range rule.Delegates {
		found := false
		if d.Func != "" {
			found = b.HasFileFunc(d.describe(b.TypeName))
		} else {
			found = b.HasItem(d.Method)
		}

		if !found {
			diags.AddError(diagnostic.CodeMissingDelegate,
				fmt.Sprintf("rule %q expects %s to define %s", rule.Name, b.TypeName, d.describe(b.TypeName)),
				b.TypeName, pos)
			ok = false
		}
	}

	return ok
}
