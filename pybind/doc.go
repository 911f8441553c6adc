// Package pybind holds the binding-layer conventions shared between
// hand-written delegate methods and the accessors pybindgen generates.
//
// The embedding runtime never imports the annotated domain packages
// directly; it discovers the conventional surface through the capability
// interfaces declared here (Hashable, RichComparable, Representable, ...).
// Generated code imports this package for CompareOp, Context, Object and
// the UnrecognizedVariant panic helper.
package pybind
