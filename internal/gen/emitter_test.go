package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pybindgen/internal/analyze"
	"pybindgen/internal/config"
	"pybindgen/internal/rules"
)

const emitterSrc = `package demo

import (
	"fmt"
)

type Token struct{ v uint64 }

func (x *Token) PyHash() uint64 { return x.v }

var _ = fmt.Sprint
`

// demoBlock builds a Token block with offsets pointing into emitterSrc.
func demoBlock(t *testing.T, src string) *analyze.Block {
	t.Helper()

	methodEnd := strings.Index(src, "return x.v }") + len("return x.v }")
	require.Positive(t, methodEnd)

	b := &analyze.Block{
		TypeName:         "Token",
		Kind:             analyze.KindImpl,
		Items:            []analyze.Item{{Name: "PyHash", EndOff: methodEnd}},
		Filename:         "demo.go",
		InsertOff:        methodEnd,
		PackageClauseEnd: len("package demo"),
		ImportParenOff:   -1,
	}

	if off := strings.Index(src, "import ("); off >= 0 {
		b.Imports = []string{"fmt"}
		b.ImportParenOff = off + len("import (")
	}

	return b
}

func hashSnippet(imports ...string) rules.Snippet {
	return rules.Snippet{
		Name:    "HashValue",
		Source:  "func (x *Token) HashValue() uint64 {\nreturn x.PyHash()\n}\n",
		Imports: imports,
	}
}

func TestEmit_NoApplications(t *testing.T) {
	out, err := Emit([]byte(emitterSrc), nil, "")
	require.NoError(t, err)
	assert.Equal(t, emitterSrc, string(out))
}

func TestEmit_AppendsAfterLastItem(t *testing.T) {
	b := demoBlock(t, emitterSrc)
	apps := []Application{{Block: b, Snippets: []rules.Snippet{hashSnippet()}}}

	out, err := Emit([]byte(emitterSrc), apps, "")
	require.NoError(t, err)

	// Original bytes survive unchanged on both sides of the splice.
	assert.True(t, strings.HasPrefix(string(out), emitterSrc[:b.InsertOff]))
	assert.True(t, strings.HasSuffix(string(out), emitterSrc[b.InsertOff:]))

	want := emitterSrc[:b.InsertOff] +
		"\n\nfunc (x *Token) HashValue() uint64 {\n\treturn x.PyHash()\n}" +
		emitterSrc[b.InsertOff:]
	assert.Equal(t, want, string(out))
}

func TestEmit_HeaderComment(t *testing.T) {
	b := demoBlock(t, emitterSrc)
	apps := []Application{{Block: b, Snippets: []rules.Snippet{hashSnippet()}}}

	out, err := Emit([]byte(emitterSrc), apps, "Code generated by pybindgen. DO NOT EDIT.")
	require.NoError(t, err)

	assert.Contains(t, string(out),
		"\n\n// Code generated by pybindgen. DO NOT EDIT.\nfunc (x *Token) HashValue() uint64 {")
}

func TestEmit_ImportIntoExistingBlock(t *testing.T) {
	b := demoBlock(t, emitterSrc)
	apps := []Application{{Block: b, Snippets: []rules.Snippet{hashSnippet("pybindgen/pybind")}}}

	out, err := Emit([]byte(emitterSrc), apps, "")
	require.NoError(t, err)

	assert.Contains(t, string(out), "import (\n\t\"pybindgen/pybind\"\n\t\"fmt\"\n)")
}

func TestEmit_ImportWithoutBlock(t *testing.T) {
	src := strings.Replace(emitterSrc, "\nimport (\n\t\"fmt\"\n)\n", "", 1)
	src = strings.Replace(src, "\nvar _ = fmt.Sprint\n", "", 1)

	b := demoBlock(t, src)
	require.Equal(t, -1, b.ImportParenOff)

	apps := []Application{{Block: b, Snippets: []rules.Snippet{hashSnippet("pybindgen/pybind")}}}

	out, err := Emit([]byte(src), apps, "")
	require.NoError(t, err)

	assert.Contains(t, string(out), "package demo\n\nimport (\n\t\"pybindgen/pybind\"\n)\n")
}

func TestEmit_SkipsAlreadyImported(t *testing.T) {
	b := demoBlock(t, emitterSrc)
	apps := []Application{{Block: b, Snippets: []rules.Snippet{hashSnippet("fmt")}}}

	out, err := Emit([]byte(emitterSrc), apps, "")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(string(out), `"fmt"`))
}

func TestEmit_UnformattableSnippet(t *testing.T) {
	b := demoBlock(t, emitterSrc)
	bad := rules.Snippet{Name: "Broken", Source: "func (x *Token) Broken( {}"}
	apps := []Application{{Block: b, Snippets: []rules.Snippet{bad}}}

	_, err := Emit([]byte(emitterSrc), apps, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block Token")
	assert.Contains(t, err.Error(), "item Broken")
}

const pipelineSrc = `package wallet

import (
	"encoding/binary"
)

//pybind:hash
type Account struct {
	Lamports uint64
}

func (x *Account) PyHash() uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], x.Lamports)

	return x.Lamports ^ uint64(buf[0])
}
`

func TestTransformFile_Pipeline(t *testing.T) {
	sf, err := analyze.ParseSource("wallet.go", []byte(pipelineSrc))
	require.NoError(t, err)

	gf, diags, err := TransformFile(sf, config.Default(), rules.NewRegistry())
	require.NoError(t, err)
	require.True(t, diags.IsValid(), "%v", diags.Error())
	require.NotNil(t, gf)

	assert.Equal(t, "wallet.go", gf.Filename)
	require.Len(t, gf.Blocks, 1)
	assert.Equal(t, "Account", gf.Blocks[0].TypeName)

	content := string(gf.Content)
	assert.True(t, strings.HasPrefix(content, pipelineSrc[:len(pipelineSrc)-1]))
	assert.Contains(t, content, "// HashValue implements the runtime hash hook.")
	assert.Contains(t, content, "func (x *Account) HashValue() uint64 {\n\treturn x.PyHash()\n}")
}

func TestTransformFile_NotIdempotent(t *testing.T) {
	sf, err := analyze.ParseSource("wallet.go", []byte(pipelineSrc))
	require.NoError(t, err)

	gf, diags, err := TransformFile(sf, config.Default(), rules.NewRegistry())
	require.NoError(t, err)
	require.True(t, diags.IsValid())
	require.NotNil(t, gf)

	// Feeding generated output back in trips the duplicate-item check
	// instead of stacking a second copy of each method.
	again, err := analyze.ParseSource("wallet.go", gf.Content)
	require.NoError(t, err)

	gf2, diags2, err := TransformFile(again, config.Default(), rules.NewRegistry())
	require.NoError(t, err)
	assert.Nil(t, gf2)
	require.Len(t, diags2.Errors, 1)
	assert.Contains(t, diags2.Errors[0].Message, "HashValue already exists")
}

func TestTransformFile_NoDirectives(t *testing.T) {
	sf, err := analyze.ParseSource("plain.go", []byte("package plain\n\ntype T struct{}\n"))
	require.NoError(t, err)

	gf, diags, err := TransformFile(sf, config.Default(), rules.NewRegistry())
	require.NoError(t, err)
	assert.True(t, diags.IsValid())
	assert.Nil(t, gf)
}
