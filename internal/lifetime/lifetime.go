// Package lifetime implements region inference: lifetime identities,
// outlives constraints, transitive closure and the elision rules for
// unannotated signatures.
package lifetime

import (
	"fmt"

	"gaia/internal/source"
)

// ID identifies a lifetime inside one Context.
type ID uint32

// NoID marks the absence of a lifetime.
const NoID ID = 0

// Kind enumerates lifetime variants.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindNamed is a source-level parameter such as 'a.
	KindNamed
	// KindInferred is a fresh lifetime allocated by the solver.
	KindInferred
	// KindStatic is 'static; it outlives every other lifetime.
	KindStatic
)

func (k Kind) String() string {
	switch k {
	case KindNamed:
		return "named"
	case KindInferred:
		return "inferred"
	case KindStatic:
		return "static"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Lifetime is a structural descriptor: two named lifetimes with the
// same name are the same lifetime, as are two inferred lifetimes with
// the same counter value.
type Lifetime struct {
	Kind Kind
	Name source.StringID // KindNamed
	Num  uint32          // KindInferred
}

// Edge records one outlives constraint: From outlives To. Reason is a
// human-readable justification kept for later diagnostics.
type Edge struct {
	From   ID
	To     ID
	Reason string
}

// UnregisteredLifetimeError reports an outlives constraint naming a
// lifetime that was never registered in the current scope.
type UnregisteredLifetimeError struct {
	Name string
}

func (e *UnregisteredLifetimeError) Error() string {
	return fmt.Sprintf("lifetime '%s is not registered in this scope", e.Name)
}

// CyclicLifetimeError reports a lifetime that transitively outlives
// itself. Path holds the rendered cycle, first and last entries equal.
type CyclicLifetimeError struct {
	Path []string
}

func (e *CyclicLifetimeError) Error() string {
	if len(e.Path) == 0 {
		return "cyclic outlives constraint"
	}
	return fmt.Sprintf("cyclic outlives constraint through %s", e.Path[0])
}
