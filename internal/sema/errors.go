package sema

import (
	"fmt"

	"gaia/internal/diag"
	"gaia/internal/lifetime"
	"gaia/internal/types"
)

// UnboundVariableError reports a variable reference with no
// registered declaration.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable %q", e.Name)
}

// UnknownFunctionError reports a call to an unregistered function.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function %q", e.Name)
}

// ArityMismatchError reports a call with the wrong argument count.
type ArityMismatchError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("function %q expects %d argument(s), got %d", e.Name, e.Want, e.Got)
}

// TypeMismatchError reports two types that failed to unify. Expected
// is NoTypeID when the operation required some numeric (or
// dereferenceable) type rather than one specific type. Position is the
// zero-based argument index for call-site mismatches, -1 elsewhere.
type TypeMismatchError struct {
	Expected types.TypeID
	Found    types.TypeID
	Position int
}

func (e *TypeMismatchError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("type mismatch at argument %d", e.Position)
	}
	return "type mismatch"
}

// CyclicTypeConstraintError reports a self-referential type binding
// caught by the occurs check.
type CyclicTypeConstraintError struct {
	Var uint32
	In  types.TypeID
}

func (e *CyclicTypeConstraintError) Error() string {
	return "cyclic type constraint"
}

// AssociatedTypeUnboundError reports a Self::Name reference with no
// explicit binding for the impl.
type AssociatedTypeUnboundError struct {
	Impl string
	Name string
}

func (e *AssociatedTypeUnboundError) Error() string {
	return fmt.Sprintf("associated type %s::%s has no binding", e.Impl, e.Name)
}

// AmbiguousElisionError reports a reference return type that none of
// the elision rules could assign a lifetime.
type AmbiguousElisionError struct {
	Item string
}

func (e *AmbiguousElisionError) Error() string {
	return fmt.Sprintf("cannot elide the return lifetime of %q", e.Item)
}

// codeFor maps a structured error to its stable diagnostic code.
func codeFor(err error) diag.Code {
	switch err.(type) {
	case *UnboundVariableError:
		return diag.SemUnboundVariable
	case *UnknownFunctionError:
		return diag.SemUnknownFunction
	case *ArityMismatchError:
		return diag.SemArityMismatch
	case *TypeMismatchError:
		return diag.SemTypeMismatch
	case *CyclicTypeConstraintError:
		return diag.SemCyclicTypeConstraint
	case *AssociatedTypeUnboundError:
		return diag.SemAssociatedTypeUnbound
	case *AmbiguousElisionError:
		return diag.SemAmbiguousElision
	case *lifetime.UnregisteredLifetimeError:
		return diag.SemUnregisteredLifetime
	case *lifetime.CyclicLifetimeError:
		return diag.SemCyclicLifetime
	}
	return diag.UnknownCode
}
