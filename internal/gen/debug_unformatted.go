package gen

import (
	"os"
	"strings"
)

// writeDebugUnformatted writes an unformattable snippet to a sidecar file
// next to the source it was meant for. This is best-effort and should never
// make generation fail harder.
func writeDebugUnformatted(sourcePath, itemName, content string) error {
	if sourcePath == "" || itemName == "" {
		return nil
	}

	// Keep it a .go suffix so editors can syntax highlight, but avoid
	// colliding with real output.
	debugName := strings.TrimSuffix(sourcePath, ".go") + "." + itemName + ".unformatted.go"

	return os.WriteFile(debugName, []byte(content), filePerm)
}
