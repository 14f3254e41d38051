// Package core holds the ambient pieces shared across the module: the
// typed error taxonomy, parameter bag, random seed, logging, and metrics
// configuration. It does not know anything about graphs or vectors.
package core

import "fmt"

// Kind classifies an Error into one of the four categories the small-world
// construction and search operations can fail with.
type Kind int

const (
	// KindConfiguration covers bad or unknown parameters.
	KindConfiguration Kind = iota
	// KindMisuse covers calls the caller should not have made: a range
	// query, Add against an empty registry, efSearch == 0.
	KindMisuse
	// KindInvariant covers internal bugs: ids out of range, a registry
	// size mismatch after build, a nil pointer table entry on reload.
	KindInvariant
	// KindIO covers file open/read/write failures and line-count
	// mismatches on reload.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindMisuse:
		return "misuse"
	case KindInvariant:
		return "invariant"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the error type the swrand index operations (CreateIndex,
// SetQueryTimeParams, Search, SaveIndex, LoadIndex) return. Wrapping
// every such failure in the same type lets a caller branch on Kind
// without parsing strings.
type Error struct {
	Kind Kind
	Op   string // the operation that failed, e.g. "CreateIndex", "LoadIndex"
	Err  error  // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("swrand: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("swrand: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an *Error from a kind, operation name, and optional
// underlying cause.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds an *Error with a formatted message as the cause.
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ce, ok := err.(*Error); ok {
			e = ce
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
