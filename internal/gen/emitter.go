package gen

import (
	"bytes"
	"fmt"
	"sort"

	"pybindgen/internal/analyze"
	"pybindgen/internal/rules"
)

// Application pairs one attributed block with the snippets its rules
// produced.
type Application struct {
	Block    *analyze.Block
	Snippets []rules.Snippet
}

// insertion is one additive splice into the original bytes.
type insertion struct {
	off  int
	text []byte
}

// Emit splices the applications' snippets into the original file bytes.
// Every byte of src reappears in the output unchanged and in order; only
// insertions are made (generated items after each block's last item, plus
// any imports the items need).
func Emit(src []byte, apps []Application, header string) ([]byte, error) {
	if len(apps) == 0 {
		return src, nil
	}

	var inserts []insertion

	for _, app := range apps {
		if len(app.Snippets) == 0 {
			continue
		}

		body, err := renderBody(app, header)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", app.Block.TypeName, err)
		}

		if app.Block.InsertOff < 0 || app.Block.InsertOff > len(src) {
			return nil, fmt.Errorf("block %s: insert offset %d out of range", app.Block.TypeName, app.Block.InsertOff)
		}

		inserts = append(inserts, insertion{off: app.Block.InsertOff, text: body})
	}

	if imp := importInsertion(src, apps); imp != nil {
		inserts = append(inserts, *imp)
	}

	if len(inserts) == 0 {
		return src, nil
	}

	// Apply back to front so earlier offsets stay valid.
	sort.SliceStable(inserts, func(i, j int) bool {
		return inserts[i].off > inserts[j].off
	})

	out := append([]byte(nil), src...)
	for _, ins := range inserts {
		out = append(out[:ins.off], append(ins.text, out[ins.off:]...)...)
	}

	return out, nil
}

// renderBody formats a block's snippets and joins them into the text
// appended after the block.
func renderBody(app Application, header string) ([]byte, error) {
	var buf bytes.Buffer

	for _, sn := range app.Snippets {
		formatted, err := FormatSnippet(sn.Source)
		if err != nil {
			_ = writeDebugUnformatted(app.Block.Filename, sn.Name, sn.Source)
			return nil, fmt.Errorf("item %s: %w", sn.Name, err)
		}

		buf.WriteString("\n\n")
		if header != "" {
			buf.WriteString("// " + header + "\n")
		}
		buf.WriteString(formatted)
	}

	return buf.Bytes(), nil
}

// importInsertion computes the single splice that adds every import the
// snippets need and the file does not already have.
func importInsertion(src []byte, apps []Application) *insertion {
	block := apps[0].Block

	var (
		missing []string
		seen    = make(map[string]bool)
	)

	for _, app := range apps {
		for _, sn := range app.Snippets {
			for _, path := range sn.Imports {
				if seen[path] || block.HasImport(path) {
					continue
				}
				seen[path] = true
				missing = append(missing, path)
			}
		}
	}

	if len(missing) == 0 {
		return nil
	}

	sort.Strings(missing)

	var buf bytes.Buffer

	if block.ImportParenOff >= 0 && block.ImportParenOff <= len(src) {
		for _, path := range missing {
			fmt.Fprintf(&buf, "\n\t%q", path)
		}

		return &insertion{off: block.ImportParenOff, text: buf.Bytes()}
	}

	buf.WriteString("\n\nimport (")
	for _, path := range missing {
		fmt.Fprintf(&buf, "\n\t%q", path)
	}
	buf.WriteString("\n)")

	return &insertion{off: block.PackageClauseEnd, text: buf.Bytes()}
}
