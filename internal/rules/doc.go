// Package rules holds the generation rule set and the dispatcher.
//
// Each rule is a fixed mapping from one directive name to a deterministic
// set of synthesized items, rendered from text/template templates. Rules
// are pure functions over the attributed block and the optional directive
// argument; the dispatcher adds the checks around them (block kind,
// argument arity, delegate presence, duplicate detection).
package rules
