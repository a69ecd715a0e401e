package types

import (
	"fmt"

	"gaia/internal/source"
)

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// LifetimeRef names a lifetime allocated by the lifetime context of
// the enclosing item. Zero means the reference carries no annotation
// yet (elision fills it in).
type LifetimeRef uint32

// NoLifetimeRef marks an unannotated reference.
const NoLifetimeRef LifetimeRef = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindI32
	KindI64
	KindF64
	KindString
	KindVec
	KindNamed
	KindPointer
	KindReference
	KindTraitObject
	KindVar
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBool:
		return "bool"
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindF64:
		return "f64"
	case KindString:
		return "String"
	case KindVec:
		return "Vec"
	case KindNamed:
		return "named"
	case KindPointer:
		return "pointer"
	case KindReference:
		return "reference"
	case KindTraitObject:
		return "trait object"
	case KindVar:
		return "type variable"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsNumeric reports whether arithmetic operators accept the kind.
func (k Kind) IsNumeric() bool {
	return k == KindI32 || k == KindI64 || k == KindF64
}

// Type is a compact descriptor for any supported type. Which fields
// are meaningful depends on Kind. Descriptors are compared
// structurally by the interner; two structurally equal types always
// share a TypeID.
type Type struct {
	Kind    Kind
	Elem    TypeID          // Vec/Pointer/Reference element
	Name    source.StringID // Named, TraitObject
	Life    LifetimeRef     // Reference annotation
	Var     uint32          // KindVar placeholder id
	Mutable bool            // for references
}

// MakeVec describes Vec<elem>.
func MakeVec(elem TypeID) Type {
	return Type{Kind: KindVec, Elem: elem}
}

// MakeNamed describes a user-declared nominal type.
func MakeNamed(name source.StringID) Type {
	return Type{Kind: KindNamed, Name: name}
}

// MakePointer describes *elem.
func MakePointer(elem TypeID) Type {
	return Type{Kind: KindPointer, Elem: elem}
}

// MakeReference describes &'life elem.
func MakeReference(life LifetimeRef, elem TypeID, mutable bool) Type {
	return Type{Kind: KindReference, Elem: elem, Life: life, Mutable: mutable}
}

// MakeTraitObject describes dyn Trait.
func MakeTraitObject(name source.StringID) Type {
	return Type{Kind: KindTraitObject, Name: name}
}

// MakeVar describes an unresolved inference placeholder.
func MakeVar(id uint32) Type {
	return Type{Kind: KindVar, Var: id}
}
