// Package gen emits transformed source files.
//
// Synthesized items are rendered by the rules, formatted individually with
// go/format, and spliced into the original file at byte offsets: after the
// block's last existing item, plus any imports the items need. Untouched
// bytes are preserved exactly; the transform is strictly additive.
package gen
