package analyze

import (
	"pybindgen/internal/common"
)

// BlockKind distinguishes the two syntax shapes a directive may target.
type BlockKind int

const (
	KindUnknown BlockKind = iota
	KindImpl              // a type and its same-file method set
	KindEnum              // a defined type with a same-file const variant block
)

// String returns a human-readable representation of the BlockKind.
func (k BlockKind) String() string {
	switch k {
	case KindImpl:
		return "impl"
	case KindEnum:
		return "enum"
	default:
		return common.UnknownStr
	}
}

// Directive is a single parsed annotation, e.g. "//pybind:enum_original_mapping level.Commitment".
type Directive struct {
	// Name selects the generation rule ("hash", "richcmp_full", ...).
	Name string
	// Arg is the optional single bare argument. Only the enum mapping
	// rule consumes it.
	Arg string
	// Pos is the directive's file:line, for diagnostics.
	Pos string
}

// Item is one pre-existing entry of an attributed block: a method for impl
// blocks, a variant constant for enum blocks. Order is source order and is
// preserved by the transform.
type Item struct {
	// Name of the method or variant constant.
	Name string
	// EndOff is the byte offset just past the item in its file.
	EndOff int
}

// Block is the structured representation of one annotated type declaration
// together with everything the emitter needs to splice generated items back
// into the file.
type Block struct {
	// TypeName is the declared identifier the directive is attached to.
	TypeName string
	// Kind is the detected syntax shape.
	Kind BlockKind
	// Directives lists the annotations on the declaration, top to bottom.
	// Each one triggers an independent rule invocation.
	Directives []Directive
	// Items are the block's pre-existing entries in source order.
	Items []Item
	// FileFuncs names every top-level function (not method) in the file.
	// Used for duplicate and package-level delegate detection.
	FileFuncs []string
	// Pos is the type declaration's file:line.
	Pos string

	// Filename of the source file the block lives in.
	Filename string
	// InsertOff is the byte offset at which synthesized items are
	// appended: just past the last existing item.
	InsertOff int
	// Imports are the import paths the file already has.
	Imports []string
	// ImportParenOff is the byte offset just past the opening paren of a
	// grouped import declaration, or -1 if the file has none.
	ImportParenOff int
	// PackageClauseEnd is the byte offset just past the package clause,
	// the fallback insertion point for a new import declaration.
	PackageClauseEnd int
}

// HasItem reports whether the block already carries an item with the name.
func (b *Block) HasItem(name string) bool {
	for _, it := range b.Items {
		if it.Name == name {
			return true
		}
	}

	return false
}

// HasFileFunc reports whether the file already declares a top-level
// function with the name.
func (b *Block) HasFileFunc(name string) bool {
	for _, fn := range b.FileFuncs {
		if fn == name {
			return true
		}
	}

	return false
}

// HasImport reports whether the file already imports the path.
func (b *Block) HasImport(path string) bool {
	for _, imp := range b.Imports {
		if imp == path {
			return true
		}
	}

	return false
}

// VariantNames returns the item names; meaningful for enum blocks.
func (b *Block) VariantNames() []string {
	names := make([]string, 0, len(b.Items))
	for _, it := range b.Items {
		names = append(names, it.Name)
	}

	return names
}
