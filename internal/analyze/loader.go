package analyze

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"

	"golang.org/x/tools/go/packages"

	"pybindgen/internal/diagnostic"
)

// LoadMode specifies what information to load from packages. The transform
// is syntax-only; type checking stays with the surrounding build.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax

// SourceFile pairs a parsed file with its raw bytes. The emitter splices
// into Src, so the bytes must be exactly what the parser saw.
type SourceFile struct {
	Filename string
	PkgName  string
	PkgPath  string
	Src      []byte
	Fset     *token.FileSet
	AST      *ast.File
}

// Blocks extracts the annotated blocks of the file.
func (sf *SourceFile) Blocks(prefix string) ([]*Block, diagnostic.Diagnostics) {
	return ParseFile(sf.Fset, sf.AST, sf.Filename, prefix)
}

// LoadFiles loads the packages matching the given patterns and returns
// their source files. Patterns are standard Go package patterns
// (e.g., "./...", "pybindgen/examples/token").
func LoadFiles(patterns ...string) ([]*SourceFile, error) {
	cfg := &packages.Config{
		Mode:  LoadMode,
		Tests: false,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	var (
		files []*SourceFile
		seen  = make(map[string]bool)
	)

	for _, pkg := range pkgs {
		for _, f := range pkg.Syntax {
			filename := pkg.Fset.Position(f.Pos()).Filename
			if seen[filename] || !strings.HasSuffix(filename, ".go") {
				continue
			}
			seen[filename] = true

			src, err := os.ReadFile(filename)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", filename, err)
			}

			files = append(files, &SourceFile{
				Filename: filename,
				PkgName:  pkg.Name,
				PkgPath:  pkg.PkgPath,
				Src:      src,
				Fset:     pkg.Fset,
				AST:      f,
			})
		}
	}

	return files, nil
}

// ParseSource parses a single in-memory file. Used by tests and by the
// stdin mode of the CLI.
func ParseSource(filename string, src []byte) (*SourceFile, error) {
	fset := token.NewFileSet()

	f, err := parseWithComments(fset, filename, src)
	if err != nil {
		return nil, err
	}

	return &SourceFile{
		Filename: filename,
		PkgName:  f.Name.Name,
		Src:      src,
		Fset:     fset,
		AST:      f,
	}, nil
}

func parseWithComments(fset *token.FileSet, filename string, src []byte) (*ast.File, error) {
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	return f, nil
}
