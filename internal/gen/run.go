package gen

import (
	"fmt"

	"pybindgen/internal/analyze"
	"pybindgen/internal/config"
	"pybindgen/internal/diagnostic"
	"pybindgen/internal/rules"
)

// GeneratedFile represents one transformed source file.
type GeneratedFile struct {
	// Filename is the path of the original source file.
	Filename string
	// Content is the full transformed file.
	Content []byte
	// Blocks are the annotated blocks that contributed items, for -list
	// style reporting.
	Blocks []*analyze.Block
}

// Run executes the whole pipeline over the packages matching the patterns:
// load, parse blocks, dispatch rules, emit. Blocks are independent; a
// failing block voids only itself and is reported in the diagnostics.
func Run(patterns []string, cfg *config.Config, reg *rules.Registry) ([]GeneratedFile, diagnostic.Diagnostics, error) {
	files, err := analyze.LoadFiles(patterns...)
	if err != nil {
		return nil, diagnostic.Diagnostics{}, err
	}

	var (
		out   []GeneratedFile
		diags diagnostic.Diagnostics
	)

	for _, sf := range files {
		gf, fileDiags, err := TransformFile(sf, cfg, reg)
		diags.Merge(fileDiags)

		if err != nil {
			return nil, diags, fmt.Errorf("transforming %s: %w", sf.Filename, err)
		}

		if gf != nil {
			out = append(out, *gf)
		}
	}

	return out, diags, nil
}

// TransformFile runs parse, dispatch and emit for a single source file.
// Returns nil when the file has no annotated blocks that produced items.
func TransformFile(sf *analyze.SourceFile, cfg *config.Config, reg *rules.Registry) (*GeneratedFile, diagnostic.Diagnostics, error) {
	blocks, diags := sf.Blocks(cfg.Prefix)
	if len(blocks) == 0 {
		return nil, diags, nil
	}

	var apps []Application

	for _, b := range blocks {
		snippets := reg.Dispatch(b, cfg, &diags)
		if len(snippets) == 0 {
			continue
		}

		apps = append(apps, Application{Block: b, Snippets: snippets})
	}

	if len(apps) == 0 {
		return nil, diags, nil
	}

	content, err := Emit(sf.Src, apps, cfg.Header)
	if err != nil {
		return nil, diags, err
	}

	gf := &GeneratedFile{
		Filename: sf.Filename,
		Content:  content,
	}
	for _, app := range apps {
		gf.Blocks = append(gf.Blocks, app.Block)
	}

	return gf, diags, nil
}
