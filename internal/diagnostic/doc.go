// Package diagnostic provides severity-tagged diagnostics for generation
// runs: stable codes, per-block context, and combined error reporting.
package diagnostic
