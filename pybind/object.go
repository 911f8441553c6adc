package pybind

import "fmt"

// Context carries per-call state the runtime supplies to byte-conversion
// delegates. Opaque to generated code; delegates only pass it through.
type Context struct {
	// Arena tags allocations made on behalf of the runtime so it can
	// reclaim them when the foreign caller releases the value.
	Arena string
}

// Object is an opaque handle to a runtime value, used by the pickling
// protocol. Reduce returns a constructor Object and an argument Object.
type Object struct {
	value any
}

// NewObject wraps a Go value in a runtime handle.
func NewObject(v any) Object {
	return Object{value: v}
}

// Value returns the wrapped Go value.
func (o Object) Value() any {
	return o.value
}

// UnrecognizedVariant aborts a generated enum conversion that received a
// value outside the shared variant set. The message names the offending
// variant; enums with a String method report it by name. The type parameter
// matches the conversion's return type so the call can sit in a return
// statement; no value is ever produced.
func UnrecognizedVariant[To any](enumName string, v any) To {
	panic(fmt.Sprintf("unrecognized %s variant: %v", enumName, v))
}
