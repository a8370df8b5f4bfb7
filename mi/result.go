package mi

// ValueKind discriminates the payload carried by a Result (spec §3).
type ValueKind int

const (
	// ValueCString is a single dequoted string payload.
	ValueCString ValueKind = iota
	// ValueTuple holds an ordered sequence of (normally keyed) children.
	ValueTuple
	// ValueList holds an ordered sequence of children, which may be
	// keyed, unkeyed, or a heterogeneous mix of both.
	ValueList
)

// Result is the basic building block of structured MI values: an
// optional key plus either a string, or an ordered sequence of child
// Results forming a tuple or list. Children form an ordered mapping —
// duplicate keys are permitted and insertion order is semantic, so
// they are kept as a slice rather than a linked "next" chain (spec §9
// design note on linked record chains vs. owning sequences).
type Result struct {
	Variable    string
	HasVariable bool
	Kind        ValueKind
	String      string
	Children    []Result
}

// Lookup returns the first child with the given key and whether it was
// found. Later siblings with the same key, if any, are reachable only
// by iterating Children directly — duplicate keys are a documented
// quirk-tolerance case (spec §3 invariants), not an error.
func (r Result) Lookup(key string) (Result, bool) {
	for _, c := range r.Children {
		if c.HasVariable && c.Variable == key {
			return c, true
		}
	}
	return Result{}, false
}
