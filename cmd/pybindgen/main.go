// Package main provides the CLI entrypoint for pybindgen.
//
// pybindgen is a source-to-source transformer that:
//   - Parses Go packages (AST only, no type checking) to find directive
//     comments on type declarations
//   - Applies one fixed generation rule per directive
//   - Splices the synthesized binding methods back into the annotated file,
//     after the existing items, preserving all untouched bytes
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"pybindgen/internal/analyze"
	"pybindgen/internal/config"
	"pybindgen/internal/diagnostic"
	"pybindgen/internal/gen"
	"pybindgen/internal/rules"
)

func main() {
	os.Exit(run())
}

func run() int {
	fs := flag.NewFlagSet("pybindgen", flag.ExitOnError)
	write := fs.Bool("w", false, "rewrite annotated files in place")
	outDir := fs.String("o", "", "write transformed files into this directory instead of in place")
	configPath := fs.String("config", "", "optional YAML config file")
	list := fs.Bool("list", false, "list annotated blocks and selected rules without generating")
	verbose := fs.Bool("v", false, "verbose output; dumps parsed blocks")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return 1
	}

	patterns := fs.Args()
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	reg := rules.NewRegistry()

	if *list {
		return listBlocks(patterns, cfg, reg, *verbose)
	}

	files, diags, err := gen.Run(patterns, cfg, reg)
	reportDiagnostics(diags, *verbose)

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	if err := writeOutput(files, *write, *outDir); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	if diags.HasErrors() {
		return 1
	}

	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	return config.LoadFile(path)
}

func writeOutput(files []gen.GeneratedFile, write bool, outDir string) error {
	switch {
	case write:
		return gen.WriteInPlace(files)
	case outDir != "":
		return gen.WriteFiles(files, outDir)
	default:
		for _, f := range files {
			fmt.Println("===", f.Filename, "===")
			fmt.Println(string(f.Content))
		}

		return nil
	}
}

// listBlocks prints every annotated block and the rules its directives
// select, without emitting anything.
func listBlocks(patterns []string, cfg *config.Config, reg *rules.Registry, verbose bool) int {
	files, err := analyze.LoadFiles(patterns...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	var diags diagnostic.Diagnostics

	for _, sf := range files {
		blocks, fileDiags := sf.Blocks(cfg.Prefix)
		diags.Merge(fileDiags)

		for _, b := range blocks {
			for _, dir := range b.Directives {
				status := "rule: " + dir.Name
				if _, ok := reg.Lookup(dir.Name); !ok {
					status = "unknown directive: " + dir.Name
				}

				fmt.Printf("%s %s (%s) %s\n", b.Pos, b.TypeName, b.Kind, status)
			}

			if verbose {
				spew.Dump(b)
			}
		}
	}

	reportDiagnostics(diags, verbose)

	if diags.HasErrors() {
		return 1
	}

	return 0
}

func reportDiagnostics(diags diagnostic.Diagnostics, verbose bool) {
	for _, d := range diags.Errors {
		fmt.Fprintln(os.Stderr, d.Severity.String()+": "+d.String())
	}

	for _, d := range diags.Warnings {
		fmt.Fprintln(os.Stderr, d.Severity.String()+": "+d.String())
	}

	if verbose {
		for _, d := range diags.Infos {
			fmt.Fprintln(os.Stderr, d.Severity.String()+": "+d.String())
		}
	}
}
