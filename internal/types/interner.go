package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"gaia/internal/source"
)

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Invalid TypeID
	Bool    TypeID
	I32     TypeID
	I64     TypeID
	F64     TypeID
	String  TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// One interner is shared read-mostly across an analysis run; solvers
// only add derived descriptors (references, Vec instances).
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
	strings  *source.Interner
}

// NewInterner constructs an interner seeded with built-in primitives.
// A nil string interner allocates a private one.
func NewInterner(strs *source.Interner) *Interner {
	if strs == nil {
		strs = source.NewInterner()
	}
	in := &Interner{
		index:   make(map[Type]TypeID, 64),
		strings: strs,
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.I32 = in.Intern(Type{Kind: KindI32})
	in.builtins.I64 = in.Intern(Type{Kind: KindI64})
	in.builtins.F64 = in.Intern(Type{Kind: KindF64})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Strings exposes the name interner backing Named/TraitObject types.
func (in *Interner) Strings() *source.Interner {
	return in.strings
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// InternNamed interns a nominal type by name.
func (in *Interner) InternNamed(name string) TypeID {
	return in.Intern(MakeNamed(in.strings.Intern(name)))
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// String renders a type for diagnostics and debugging.
func (in *Interner) String(id TypeID) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch t.Kind {
	case KindVec:
		return "Vec<" + in.String(t.Elem) + ">"
	case KindNamed:
		return in.strings.MustLookup(t.Name)
	case KindPointer:
		return "*" + in.String(t.Elem)
	case KindReference:
		var b strings.Builder
		b.WriteByte('&')
		if t.Mutable {
			b.WriteString("mut ")
		}
		b.WriteString(in.String(t.Elem))
		return b.String()
	case KindTraitObject:
		return "dyn " + in.strings.MustLookup(t.Name)
	case KindVar:
		return fmt.Sprintf("?%d", t.Var)
	default:
		return t.Kind.String()
	}
}
