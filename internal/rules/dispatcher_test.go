package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pybindgen/internal/analyze"
	"pybindgen/internal/config"
	"pybindgen/internal/diagnostic"
)

func dispatchBlock(t *testing.T, b *analyze.Block, cfg *config.Config) ([]Snippet, diagnostic.Diagnostics) {
	t.Helper()

	var diags diagnostic.Diagnostics
	snippets := NewRegistry().Dispatch(b, cfg, &diags)

	return snippets, diags
}

func annotate(b *analyze.Block, directives ...analyze.Directive) *analyze.Block {
	b.Directives = directives
	return b
}

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry()

	for _, name := range []string{
		"hash", "richcmp_full", "richcmp_eq_only", "richcmp_signer",
		"common_methods", "common_methods_core", "rpc_id_getter",
		"enum_original_mapping",
	} {
		rule, ok := reg.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, name, rule.Name)
	}

	_, ok := reg.Lookup("nothing")
	assert.False(t, ok)
	assert.Len(t, reg.Names(), 8)
}

func TestDispatch_Hash(t *testing.T) {
	b := annotate(implBlock("Token", "PyHash"), analyze.Directive{Name: "hash"})

	snippets, diags := dispatchBlock(t, b, config.Default())
	require.True(t, diags.IsValid(), "%v", diags.Error())
	require.Len(t, snippets, 1)
	assert.Equal(t, "HashValue", snippets[0].Name)
}

func TestDispatch_UnknownDirectiveWarnsWithSuggestion(t *testing.T) {
	b := annotate(implBlock("Token", "PyHash"),
		analyze.Directive{Name: "hsah"},
		analyze.Directive{Name: "hash"},
	)

	snippets, diags := dispatchBlock(t, b, config.Default())

	// Unknown directives warn; the block's other directives still run.
	require.True(t, diags.IsValid())
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnknownDirective, diags.Warnings[0].Code)
	assert.Equal(t, []string{"hash"}, diags.Warnings[0].Suggestions)
	require.Len(t, snippets, 1)
}

func TestDispatch_KindMismatchVoidsBlock(t *testing.T) {
	b := annotate(implBlock("Token", "PyHash"),
		analyze.Directive{Name: "hash"},
		analyze.Directive{Name: "enum_original_mapping", Arg: "x/level.Commitment"},
	)

	snippets, diags := dispatchBlock(t, b, config.Default())

	// One failing directive voids the whole block, valid siblings
	// included: the transform is all-or-nothing per call site.
	assert.Nil(t, snippets)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeMalformedTarget, diags.Errors[0].Code)
	assert.Contains(t, diags.Errors[0].Message, "expects an enum block")
}

func TestDispatch_ArgArity(t *testing.T) {
	missing := annotate(enumBlock("Config", nil, "A"),
		analyze.Directive{Name: "enum_original_mapping"})

	snippets, diags := dispatchBlock(t, missing, config.Default())
	assert.Nil(t, snippets)
	require.Len(t, diags.Errors, 1)
	assert.Contains(t, diags.Errors[0].Message, "requires the paired enum")

	extra := annotate(implBlock("Token", "PyHash"),
		analyze.Directive{Name: "hash", Arg: "bogus"})

	snippets, diags = dispatchBlock(t, extra, config.Default())
	assert.Nil(t, snippets)
	require.Len(t, diags.Errors, 1)
	assert.Contains(t, diags.Errors[0].Message, "takes no argument")
}

func TestDispatch_MissingDelegate(t *testing.T) {
	b := annotate(implBlock("Token"), analyze.Directive{Name: "hash"})

	snippets, diags := dispatchBlock(t, b, config.Default())
	assert.Nil(t, snippets)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeMissingDelegate, diags.Errors[0].Code)
	assert.Contains(t, diags.Errors[0].Message, "PyHash")
}

func TestDispatch_MissingPackageLevelDelegate(t *testing.T) {
	b := annotate(
		implBlock("Signature", "PyBytes", "PyStr", "PyRepr", "PyReduce", "PyToJSON"),
		analyze.Directive{Name: "common_methods"},
	)

	snippets, diags := dispatchBlock(t, b, config.Default())
	assert.Nil(t, snippets)
	require.Len(t, diags.Errors, 1)
	assert.Contains(t, diags.Errors[0].Message, "SignaturePyFromJSON")

	// With the function present the rule runs.
	b.FileFuncs = []string{"SignaturePyFromJSON"}

	snippets, diags = dispatchBlock(t, b, config.Default())
	require.True(t, diags.IsValid())
	assert.Len(t, snippets, 6)
}

func TestDispatch_DelegateCheckDisabled(t *testing.T) {
	cfg, err := config.Parse([]byte("check_delegates: false"))
	require.NoError(t, err)

	b := annotate(implBlock("Token"), analyze.Directive{Name: "hash"})

	snippets, diags := dispatchBlock(t, b, cfg)
	require.True(t, diags.IsValid())
	assert.Len(t, snippets, 1)
}

func TestDispatch_DuplicateItem(t *testing.T) {
	b := annotate(implBlock("Token", "PyHash", "HashValue"),
		analyze.Directive{Name: "hash"})

	snippets, diags := dispatchBlock(t, b, config.Default())
	assert.Nil(t, snippets)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeDuplicateItem, diags.Errors[0].Code)
	assert.Contains(t, diags.Errors[0].Message, "applied twice")
}

func TestDispatch_MultipleDirectivesKeepOrder(t *testing.T) {
	b := annotate(
		implBlock("Pubkey", "PyHash", "RichCmp", "PyBytes", "PyStr", "PyRepr", "PyReduce"),
		analyze.Directive{Name: "hash"},
		analyze.Directive{Name: "richcmp_eq_only"},
		analyze.Directive{Name: "common_methods_core"},
	)

	snippets, diags := dispatchBlock(t, b, config.Default())
	require.True(t, diags.IsValid(), "%v", diags.Error())

	var names []string
	for _, sn := range snippets {
		names = append(names, sn.Name)
	}

	assert.Equal(t, []string{
		"HashValue", "RichCompare",
		"BytesValue", "StringValue", "ReprValue", "Reduce",
	}, names)
}
