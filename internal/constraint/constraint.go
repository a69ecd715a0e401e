// Package constraint implements the deduplicated constraint store
// shared by type and trait analysis. Constraints are immutable once
// added; the store only re-indexes them.
package constraint

import (
	"fmt"

	"gaia/internal/source"
)

// Kind enumerates the constraint variants.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindTypeEquality asserts A = B.
	KindTypeEquality
	// KindTraitBound asserts type A implements trait B.
	KindTraitBound
	// KindLifetimeBound asserts type A outlives lifetime B.
	KindLifetimeBound
	// KindSizedBound asserts type A has a compile-time size.
	KindSizedBound
)

func (k Kind) String() string {
	switch k {
	case KindTypeEquality:
		return "type equality"
	case KindTraitBound:
		return "trait bound"
	case KindLifetimeBound:
		return "lifetime bound"
	case KindSizedBound:
		return "sized bound"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Constraint relates one or two interned names. B is unused for
// KindSizedBound.
type Constraint struct {
	Kind Kind
	A    source.StringID
	B    source.StringID
}

// Equality builds A = B.
func Equality(a, b source.StringID) Constraint {
	return Constraint{Kind: KindTypeEquality, A: a, B: b}
}

// Trait builds "A implements trait".
func Trait(ty, trait source.StringID) Constraint {
	return Constraint{Kind: KindTraitBound, A: ty, B: trait}
}

// Outlives builds "A outlives lifetime".
func Outlives(ty, life source.StringID) Constraint {
	return Constraint{Kind: KindLifetimeBound, A: ty, B: life}
}

// Sized builds "A is Sized".
func Sized(ty source.StringID) Constraint {
	return Constraint{Kind: KindSizedBound, A: ty}
}

// keys returns the names a constraint is indexed under. Equality
// constraints index under both sides.
func (c Constraint) keys() (source.StringID, source.StringID, bool) {
	if c.Kind == KindTypeEquality {
		return c.A, c.B, c.A != c.B
	}
	return c.A, NoKey, false
}

// NoKey marks the absent second index key.
const NoKey = source.NoStringID
