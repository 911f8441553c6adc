package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"pybindgen/internal/diagnostic"
)

// ParseFile scans a parsed source file for annotated type declarations and
// returns their attributed blocks in source order. The transform is purely
// syntactic, so everything is derived from the AST of this one file.
func ParseFile(fset *token.FileSet, file *ast.File, filename, prefix string) ([]*Block, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	scan := scanFile(fset, file)

	var blocks []*Block

	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			directives, issues := parseDirectives(fset, prefix, docGroups(gd, ts)...)
			for _, issue := range issues {
				diags.AddError(diagnostic.CodeMalformedTarget, issue.msg, ts.Name.Name, issue.pos)
			}

			if len(directives) == 0 {
				continue
			}

			blocks = append(blocks, buildBlock(fset, filename, ts, directives, scan))
		}
	}

	return blocks, diags
}

// fileScan holds the file-wide facts a block needs: the method set and
// variant set per type, plus import layout.
type fileScan struct {
	methods   map[string][]Item // receiver type -> methods, source order
	variants  map[string][]Item // enum type -> variant consts, source order
	constEnd  map[string]int    // enum type -> end offset of its last const decl
	fileFuncs []string
	imports   []string
	parenOff  int // just past "import (", or -1
	pkgEnd    int // just past the package clause
}

func scanFile(fset *token.FileSet, file *ast.File) *fileScan {
	scan := &fileScan{
		methods:  make(map[string][]Item),
		variants: make(map[string][]Item),
		constEnd: make(map[string]int),
		parenOff: -1,
		pkgEnd:   offset(fset, file.Name.End()),
	}

	for _, imp := range file.Imports {
		if path, err := strconv.Unquote(imp.Path.Value); err == nil {
			scan.imports = append(scan.imports, path)
		}
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			recv := receiverTypeName(d)
			if recv == "" {
				scan.fileFuncs = append(scan.fileFuncs, d.Name.Name)
				continue
			}

			scan.methods[recv] = append(scan.methods[recv], Item{
				Name:   d.Name.Name,
				EndOff: offset(fset, d.End()),
			})

		case *ast.GenDecl:
			switch d.Tok {
			case token.IMPORT:
				if scan.parenOff < 0 && d.Lparen.IsValid() {
					scan.parenOff = offset(fset, d.Lparen) + 1
				}
			case token.CONST:
				scan.scanConstDecl(fset, d)
			}
		}
	}

	return scan
}

// scanConstDecl collects typed constants as enum variants. Within a grouped
// declaration, specs without a type inherit the preceding one (the iota
// idiom).
func (s *fileScan) scanConstDecl(fset *token.FileSet, d *ast.GenDecl) {
	declEnd := offset(fset, d.End())

	currentType := ""

	for _, spec := range d.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}

		switch t := vs.Type.(type) {
		case *ast.Ident:
			currentType = t.Name
		case nil:
			// A bare name inherits the previous type (the iota
			// idiom); an explicit value without a type starts a
			// new untyped constant instead.
			if len(vs.Values) > 0 {
				currentType = ""
			}
		default:
			currentType = ""
		}

		if currentType == "" {
			continue
		}

		for _, name := range vs.Names {
			if name.Name == "_" {
				continue
			}

			s.variants[currentType] = append(s.variants[currentType], Item{
				Name:   name.Name,
				EndOff: offset(fset, vs.End()),
			})
		}

		s.constEnd[currentType] = declEnd
	}
}

func buildBlock(fset *token.FileSet, filename string, ts *ast.TypeSpec, directives []Directive, scan *fileScan) *Block {
	name := ts.Name.Name
	typeEnd := offset(fset, ts.End())

	b := &Block{
		TypeName:         name,
		Directives:       directives,
		FileFuncs:        scan.fileFuncs,
		Pos:              position(fset, ts.Pos()),
		Filename:         filename,
		Imports:          scan.imports,
		ImportParenOff:   scan.parenOff,
		PackageClauseEnd: scan.pkgEnd,
		InsertOff:        typeEnd,
	}

	_, isStruct := ts.Type.(*ast.StructType)
	variants := scan.variants[name]

	if !isStruct && len(variants) > 0 {
		b.Kind = KindEnum
		b.Items = variants

		if end, ok := scan.constEnd[name]; ok && end > b.InsertOff {
			b.InsertOff = end
		}
	} else {
		b.Kind = KindImpl
		b.Items = scan.methods[name]
	}

	// Generated items always land after everything already attached to
	// the type, methods included.
	for _, m := range scan.methods[name] {
		if m.EndOff > b.InsertOff {
			b.InsertOff = m.EndOff
		}
	}

	for _, it := range b.Items {
		if it.EndOff > b.InsertOff {
			b.InsertOff = it.EndOff
		}
	}

	return b
}

type directiveIssue struct {
	msg string
	pos string
}

// parseDirectives extracts directives of the form "//<prefix>:<name> [arg]"
// from the given comment groups, in order.
func parseDirectives(fset *token.FileSet, prefix string, groups ...*ast.CommentGroup) ([]Directive, []directiveIssue) {
	marker := prefix + ":"

	var (
		directives []Directive
		issues     []directiveIssue
	)

	for _, group := range groups {
		if group == nil {
			continue
		}

		for _, c := range group.List {
			rest, ok := strings.CutPrefix(c.Text, "//")
			if !ok {
				continue // block comments never carry directives
			}

			body, ok := strings.CutPrefix(rest, marker)
			if !ok {
				continue
			}

			pos := position(fset, c.Slash)
			fields := strings.Fields(body)

			switch len(fields) {
			case 0:
				issues = append(issues, directiveIssue{
					msg: fmt.Sprintf("directive %q is missing a rule name", c.Text),
					pos: pos,
				})
			case 1:
				directives = append(directives, Directive{Name: fields[0], Pos: pos})
			case 2:
				directives = append(directives, Directive{Name: fields[0], Arg: fields[1], Pos: pos})
			default:
				issues = append(issues, directiveIssue{
					msg: fmt.Sprintf("directive %q has %d arguments, at most one is allowed", c.Text, len(fields)-1),
					pos: pos,
				})
			}
		}
	}

	return directives, issues
}

// docGroups returns the comment groups that may carry directives for a type
// spec. The declaration doc only applies to an ungrouped declaration.
func docGroups(gd *ast.GenDecl, ts *ast.TypeSpec) []*ast.CommentGroup {
	if len(gd.Specs) == 1 {
		return []*ast.CommentGroup{gd.Doc, ts.Doc}
	}

	return []*ast.CommentGroup{ts.Doc}
}

func receiverTypeName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return ""
	}

	t := fd.Recv.List[0].Type
	for {
		switch tt := t.(type) {
		case *ast.StarExpr:
			t = tt.X
		case *ast.ParenExpr:
			t = tt.X
		case *ast.IndexExpr:
			t = tt.X
		case *ast.IndexListExpr:
			t = tt.X
		case *ast.Ident:
			return tt.Name
		default:
			return ""
		}
	}
}

func offset(fset *token.FileSet, pos token.Pos) int {
	return fset.Position(pos).Offset
}

func position(fset *token.FileSet, pos token.Pos) string {
	p := fset.Position(pos)
	return fmt.Sprintf("%s:%d", p.Filename, p.Line)
}
