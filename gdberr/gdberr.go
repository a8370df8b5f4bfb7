// Package gdberr defines the small error taxonomy shared by the mi,
// command, and facade packages (spec §7): a caller-contract violation,
// an internal post-condition violation, or an allocation failure. Parse
// failures on the wire are not part of this taxonomy — they surface as
// ParseError records, never as a Go error.
package gdberr

import "fmt"

// Kind classifies why an operation failed.
type Kind int

const (
	// Assert means the caller violated the function's contract (a nil
	// argument, calling a method on a parser in an invalid state).
	Assert Kind = iota
	// Logic means an internal post-condition was violated, such as a
	// field value in a result record failing to parse, or the one-shot
	// facade seeing more than one event.
	Logic
	// NoMem means an allocation failed while constructing a value.
	NoMem
)

func (k Kind) String() string {
	switch k {
	case Assert:
		return "assert"
	case Logic:
		return "logic"
	case NoMem:
		return "nomem"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by this module's entry
// points. Wrap with fmt.Errorf("...: %w", err) to add context without
// losing the Kind.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// New builds an *Error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err is a *Error of the given kind, unwrapping as
// needed. It does not use errors.As itself so it has no stdlib errors
// dependency beyond the Unwrap-free case below.
func Is(err error, kind Kind) bool {
	type unwrapper interface{ Unwrap() error }
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		u, ok := err.(unwrapper)
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
