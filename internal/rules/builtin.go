package rules

import (
	"fmt"
	"path"
	"strings"

	"pybindgen/internal/analyze"
	"pybindgen/internal/common"
)

var pybindImport = []string{PybindPkgPath}

// builtin returns the fixed rule set, in registration order.
func builtin() []*Rule {
	return []*Rule{
		{
			Name:      "hash",
			Kind:      analyze.KindImpl,
			Delegates: []Delegate{{Method: "PyHash"}},
			Apply:     applyHash,
		},
		{
			Name:      "richcmp_full",
			Kind:      analyze.KindImpl,
			Delegates: []Delegate{{Method: "RichCmp"}},
			Apply:     applyRichcmpFull,
		},
		{
			Name:      "richcmp_eq_only",
			Kind:      analyze.KindImpl,
			Delegates: []Delegate{{Method: "RichCmp"}},
			Apply:     applyRichcmpEqOnly,
		},
		{
			Name:      "richcmp_signer",
			Kind:      analyze.KindImpl,
			Delegates: []Delegate{{Method: "RichCmp"}},
			Apply:     applyRichcmpSigner,
		},
		{
			Name: "common_methods",
			Kind: analyze.KindImpl,
			Delegates: []Delegate{
				{Method: "PyBytes"},
				{Method: "PyStr"},
				{Method: "PyRepr"},
				{Method: "PyReduce"},
				{Method: "PyToJSON"},
				{Func: "%sPyFromJSON"},
			},
			Apply: applyCommonMethods,
		},
		{
			Name: "common_methods_core",
			Kind: analyze.KindImpl,
			Delegates: []Delegate{
				{Method: "PyBytes"},
				{Method: "PyStr"},
				{Method: "PyRepr"},
				{Method: "PyReduce"},
			},
			Apply: applyCommonMethodsCore,
		},
		{
			Name:  "rpc_id_getter",
			Kind:  analyze.KindImpl,
			Apply: applyRPCIDGetter,
		},
		{
			Name:     "enum_original_mapping",
			Kind:     analyze.KindEnum,
			NeedsArg: true,
			Apply:    applyEnumOriginalMapping,
		},
	}
}

func applyHash(b *analyze.Block, _ string) ([]Snippet, error) {
	return methodSnippets(b.TypeName, nil,
		namedTemplate{name: "HashValue", tmpl: hashTemplate},
	), nil
}

func applyRichcmpFull(b *analyze.Block, _ string) ([]Snippet, error) {
	return methodSnippets(b.TypeName, pybindImport,
		namedTemplate{name: "RichCompare", tmpl: richcmpFullTemplate},
	), nil
}

func applyRichcmpEqOnly(b *analyze.Block, _ string) ([]Snippet, error) {
	return methodSnippets(b.TypeName, pybindImport,
		namedTemplate{name: "RichCompare", tmpl: richcmpEqOnlyTemplate},
	), nil
}

func applyRichcmpSigner(b *analyze.Block, _ string) ([]Snippet, error) {
	return methodSnippets(b.TypeName, pybindImport,
		namedTemplate{name: "RichCompare", tmpl: richcmpSignerTemplate},
	), nil
}

func applyCommonMethodsCore(b *analyze.Block, _ string) ([]Snippet, error) {
	return methodSnippets(b.TypeName, pybindImport,
		namedTemplate{name: "BytesValue", tmpl: bytesTemplate},
		namedTemplate{name: "StringValue", tmpl: stringTemplate},
		namedTemplate{name: "ReprValue", tmpl: reprTemplate},
		namedTemplate{name: "Reduce", tmpl: reduceTemplate},
	), nil
}

func applyCommonMethods(b *analyze.Block, arg string) ([]Snippet, error) {
	core, err := applyCommonMethodsCore(b, arg)
	if err != nil {
		return nil, err
	}

	return append(core, methodSnippets(b.TypeName, pybindImport,
		namedTemplate{name: "ToJSON", tmpl: toJSONTemplate},
		namedTemplate{name: "%sFromJSON", tmpl: fromJSONTemplate},
	)...), nil
}

func applyRPCIDGetter(b *analyze.Block, _ string) ([]Snippet, error) {
	return methodSnippets(b.TypeName, nil,
		namedTemplate{name: "ID", tmpl: rpcIDTemplate},
	), nil
}

// applyEnumOriginalMapping synthesizes the bidirectional by-name conversions
// between the annotated enum and the paired one. Both directions fall back
// to an UnrecognizedVariant panic, so a variant-set mismatch fails loudly at
// conversion time no matter the direction.
func applyEnumOriginalMapping(b *analyze.Block, arg string) ([]Snippet, error) {
	qualifier, extName := common.SplitQualified(arg)
	if qualifier == "" {
		return nil, fmt.Errorf("paired enum %q must be package-qualified", arg)
	}

	if !common.IsExportedName(extName) {
		return nil, fmt.Errorf("paired enum %q must name an exported type", arg)
	}

	if extName == b.TypeName {
		return nil, fmt.Errorf("paired enum %q shares the annotated enum's name; conversion function names would collide", arg)
	}

	var imports []string

	qual := qualifier
	if strings.ContainsRune(qualifier, '/') {
		// Full import path form; reference by the path's base and make
		// sure the file imports it.
		qual = path.Base(qualifier)
		imports = append(imports, qualifier)
	} else if !hasImportBase(b, qualifier) {
		return nil, fmt.Errorf("file does not import a package %q for paired enum %s; use a full import path in the directive", qualifier, arg)
	}

	if common.IsEmpty(b.Items) {
		return nil, fmt.Errorf("enum %s declares no variants", b.TypeName)
	}

	data := enumData{
		Type:     b.TypeName,
		Ext:      qual + "." + extName,
		ExtName:  extName,
		ExtQual:  qual + ".",
		Variants: b.VariantNames(),
	}

	imports = append(imports, PybindPkgPath)

	return []Snippet{
		{
			Name:    data.Type + "From" + data.ExtName,
			Source:  render(enumForwardTemplate, data),
			Imports: imports,
		},
		{
			Name:    data.ExtName + "From" + data.Type,
			Source:  render(enumReverseTemplate, data),
			Imports: imports,
		},
	}, nil
}

// hasImportBase reports whether some import of the file has the given base
// element, e.g. "level" matches "pybindgen/examples/level".
func hasImportBase(b *analyze.Block, base string) bool {
	for _, imp := range b.Imports {
		if path.Base(imp) == base {
			return true
		}
	}

	return false
}
