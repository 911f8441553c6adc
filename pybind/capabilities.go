package pybind

// The interfaces below describe the conventional surface the embedding
// runtime looks up on bound objects. pybindgen synthesizes the methods;
// the annotated type supplies the Py* delegates they forward to.

// Hashable is satisfied by types annotated with the hash rule.
type Hashable interface {
	HashValue() uint64
}

// RichComparable is satisfied by types whose comparison cannot fail
// (the richcmp_full rule).
type RichComparable[T any] interface {
	RichCompare(other T, op CompareOp) bool
}

// FallibleRichComparable is satisfied by types whose comparison may fail
// (the richcmp_eq_only and richcmp_signer rules).
type FallibleRichComparable[T any] interface {
	RichCompare(other T, op CompareOp) (bool, error)
}

// Signer is the abstract signing capability. richcmp_signer compares the
// annotated type against any implementation rather than against itself.
type Signer interface {
	PublicKey() [32]byte
	SignMessage(message []byte) ([64]byte, error)
}

// Representable is satisfied by types carrying the common representation
// bundle (string, debug and byte forms).
type Representable interface {
	StringValue() string
	ReprValue() string
	BytesValue(ctx *Context) []byte
}

// Reducible supports the runtime's pickling protocol: a constructor object
// and its argument tuple.
type Reducible interface {
	Reduce() (Object, Object, error)
}

// JSONRoundTripper is the serializing half of the JSON pair synthesized by
// the common_methods rule. The deserializing half is a package-level
// <Type>FromJSON function and therefore has no interface.
type JSONRoundTripper interface {
	ToJSON() string
}

// Identified is satisfied by request types annotated with rpc_id_getter.
type Identified interface {
	ID() uint64
}
