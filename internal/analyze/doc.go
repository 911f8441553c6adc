// Package analyze provides package loading and attributed-block extraction.
//
// It uses golang.org/x/tools/go/packages in syntax-only mode (the transform
// is purely syntactic, no type checking) to parse source files, then scans
// each file for directive comments on type declarations.
//
// Key types:
//   - Directive: a parsed "//pybind:<name> [arg]" comment
//   - Block: a type plus its ordered same-file items (methods or enum
//     variants) and the byte offsets the emitter splices at
package analyze
