package common

import "strings"

// UnknownStr is the fallback label for enum String methods.
const UnknownStr = "unknown"

// SplitQualified splits a possibly package-qualified identifier such as
// "level.Commitment" into its qualifier and base name. The qualifier is
// empty for a bare identifier.
func SplitQualified(ident string) (qualifier, name string) {
	i := strings.LastIndexByte(ident, '.')
	if i < 0 {
		return "", ident
	}

	return ident[:i], ident[i+1:]
}

// IsExportedName reports whether the identifier starts with an upper-case
// ASCII letter. Directive arguments must name exported enums.
func IsExportedName(name string) bool {
	if name == "" {
		return false
	}

	c := name[0]

	return c >= 'A' && c <= 'Z'
}
