// Package match provides fuzzy name matching used to suggest the closest
// known directive when an unrecognized one is encountered.
package match
