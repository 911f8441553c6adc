package rules

import "text/template"

// implData feeds the impl-block rule templates.
type implData struct {
	Type string
}

// enumData feeds the enum-mapping templates. Ext is the fully qualified
// reference usable in code (e.g. "level.Commitment"), ExtName its base name.
type enumData struct {
	Type     string
	Ext      string
	ExtName  string
	ExtQual  string // package qualifier including the trailing dot
	Variants []string
}

var hashTemplate = template.Must(template.New("hash").Parse(`
// HashValue implements the runtime hash hook.
func (x *{{.Type}}) HashValue() uint64 {
	return x.PyHash()
}
`))

var richcmpFullTemplate = template.Must(template.New("richcmp_full").Parse(`
// RichCompare implements the runtime comparison hook for all six operators.
func (x *{{.Type}}) RichCompare(other *{{.Type}}, op pybind.CompareOp) bool {
	return x.RichCmp(other, op)
}
`))

var richcmpEqOnlyTemplate = template.Must(template.New("richcmp_eq_only").Parse(`
// RichCompare implements the runtime comparison hook. Ordering operators
// are rejected by the delegate with an error.
func (x *{{.Type}}) RichCompare(other *{{.Type}}, op pybind.CompareOp) (bool, error) {
	return x.RichCmp(other, op)
}
`))

var richcmpSignerTemplate = template.Must(template.New("richcmp_signer").Parse(`
// RichCompare implements the runtime comparison hook against any signer.
func (x *{{.Type}}) RichCompare(other pybind.Signer, op pybind.CompareOp) (bool, error) {
	return x.RichCmp(other, op)
}
`))

var bytesTemplate = template.Must(template.New("bytes").Parse(`
// BytesValue implements the runtime byte-conversion hook.
func (x *{{.Type}}) BytesValue(ctx *pybind.Context) []byte {
	return x.PyBytes(ctx)
}
`))

var stringTemplate = template.Must(template.New("string").Parse(`
// StringValue implements the runtime string-conversion hook.
func (x *{{.Type}}) StringValue() string {
	return x.PyStr()
}
`))

var reprTemplate = template.Must(template.New("repr").Parse(`
// ReprValue implements the runtime debug-representation hook.
func (x *{{.Type}}) ReprValue() string {
	return x.PyRepr()
}
`))

var reduceTemplate = template.Must(template.New("reduce").Parse(`
// Reduce implements the runtime pickling hook.
func (x *{{.Type}}) Reduce() (pybind.Object, pybind.Object, error) {
	return x.PyReduce()
}
`))

var toJSONTemplate = template.Must(template.New("to_json").Parse(`
// ToJSON converts to a JSON string.
func (x *{{.Type}}) ToJSON() string {
	return x.PyToJSON()
}
`))

var fromJSONTemplate = template.Must(template.New("from_json").Parse(`
// {{.Type}}FromJSON builds a {{.Type}} from a JSON string.
func {{.Type}}FromJSON(raw string) (*{{.Type}}, error) {
	return {{.Type}}PyFromJSON(raw)
}
`))

var rpcIDTemplate = template.Must(template.New("rpc_id").Parse(`
// ID returns the ID of the RPC request.
func (x *{{.Type}}) ID() uint64 {
	return x.Base.ID
}
`))

var enumForwardTemplate = template.Must(template.New("enum_forward").Parse(`
// {{.Type}}From{{.ExtName}} converts a {{.Ext}} value by variant name.
func {{.Type}}From{{.ExtName}}(v {{.Ext}}) {{.Type}} {
	switch v {
{{- range .Variants}}
	case {{$.ExtQual}}{{.}}:
		return {{.}}
{{- end}}
	default:
		return pybind.UnrecognizedVariant[{{.Type}}]("{{.Ext}}", v)
	}
}
`))

var enumReverseTemplate = template.Must(template.New("enum_reverse").Parse(`
// {{.ExtName}}From{{.Type}} converts a {{.Type}} value back by variant name.
func {{.ExtName}}From{{.Type}}(v {{.Type}}) {{.Ext}} {
	switch v {
{{- range .Variants}}
	case {{.}}:
		return {{$.ExtQual}}{{.}}
{{- end}}
	default:
		return pybind.UnrecognizedVariant[{{.Ext}}]("{{.Type}}", v)
	}
}
`))
