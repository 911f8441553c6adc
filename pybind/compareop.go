package pybind

//go:generate go tool stringer -type=CompareOp -linecomment

// CompareOp identifies one of the six rich-comparison operators the
// embedding runtime dispatches on.
type CompareOp int

const (
	OpLt CompareOp = iota // <
	OpLe                  // <=
	OpEq                  // ==
	OpNe                  // !=
	OpGt                  // >
	OpGe                  // >=
)

// Apply evaluates the operator against a three-way comparison result
// (negative, zero, or positive, as produced by cmp.Compare and friends).
// Delegates for totally ordered types are usually one-liners on top of it.
func (op CompareOp) Apply(ordering int) bool {
	switch op {
	case OpLt:
		return ordering < 0
	case OpLe:
		return ordering <= 0
	case OpEq:
		return ordering == 0
	case OpNe:
		return ordering != 0
	case OpGt:
		return ordering > 0
	case OpGe:
		return ordering >= 0
	default:
		return false
	}
}

// IsEquality reports whether the operator is == or !=. Equality-only types
// reject the four ordering operators with an error from their delegate.
func (op CompareOp) IsEquality() bool {
	return op == OpEq || op == OpNe
}
