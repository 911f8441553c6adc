package rules

import (
	"fmt"
	"strings"
	"text/template"

	"pybindgen/internal/analyze"
)

// PybindPkgPath is the import path of the conventions package generated
// code refers to.
const PybindPkgPath = "pybindgen/pybind"

// Snippet is one synthesized top-level item, ready for formatting and
// splicing by the emitter.
type Snippet struct {
	// Name of the synthesized method or function, used for duplicate
	// detection.
	Name string
	// Source is the unformatted Go source of the item.
	Source string
	// Imports are the paths the item refers to beyond what the delegate
	// signatures already pull in.
	Imports []string
}

// Delegate names a convention method (or package-level function) the rule's
// output calls. Existence is checked syntactically at generation time;
// signatures are left to the compiler.
type Delegate struct {
	// Method is a method name expected on the block.
	Method string
	// Func is a package-level function name pattern; "%s" is replaced
	// with the block's type name.
	Func string
}

func (d Delegate) describe(typeName string) string {
	if d.Func != "" {
		return fmt.Sprintf(d.Func, typeName)
	}

	return d.Method
}

// ApplyFunc renders the synthesized items for a block. Pure: it never
// mutates the block and depends on nothing but its arguments.
type ApplyFunc func(b *analyze.Block, arg string) ([]Snippet, error)

// Rule binds a directive name to its fixed generation template.
type Rule struct {
	// Name is the directive that triggers the rule.
	Name string
	// Kind is the block shape the rule accepts.
	Kind analyze.BlockKind
	// Delegates are the convention methods the synthesized items call.
	Delegates []Delegate
	// NeedsArg marks the rules that consume the single directive argument.
	NeedsArg bool
	// Apply renders the synthesized items.
	Apply ApplyFunc
}

// render executes a template and returns the trimmed source.
func render(tmpl *template.Template, data any) string {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		// Templates are fixed and data is a plain struct; a failure
		// here is a programming error.
		panic(fmt.Sprintf("rules: executing template %s: %v", tmpl.Name(), err))
	}

	return strings.TrimSpace(sb.String())
}

// methodSnippets renders one snippet per template for an impl block.
func methodSnippets(typeName string, imports []string, named ...namedTemplate) []Snippet {
	data := implData{Type: typeName}

	out := make([]Snippet, 0, len(named))
	for _, nt := range named {
		out = append(out, Snippet{
			Name:    strings.ReplaceAll(nt.name, "%s", typeName),
			Source:  render(nt.tmpl, data),
			Imports: imports,
		})
	}

	return out
}

type namedTemplate struct {
	name string // synthesized item name; "%s" expands to the type name
	tmpl *template.Template
}
