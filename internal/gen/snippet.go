package gen

import (
	"fmt"
	"go/format"
	"strings"
)

// snippetHeader wraps a bare top-level item so go/format accepts it.
const snippetHeader = "package _pybindgen\n\n"

// FormatSnippet gofmt-formats a single top-level item. The input never
// carries a package clause; one is added for formatting and stripped again.
func FormatSnippet(source string) (string, error) {
	formatted, err := format.Source([]byte(snippetHeader + source))
	if err != nil {
		return "", fmt.Errorf("formatting snippet: %w", err)
	}

	out, ok := strings.CutPrefix(string(formatted), snippetHeader)
	if !ok {
		return "", fmt.Errorf("formatted snippet lost its package clause")
	}

	return strings.TrimRight(out, "\n"), nil
}
