package types

import "fmt"

// MismatchError reports two types that cannot be made equal.
type MismatchError struct {
	Expected TypeID
	Found    TypeID
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("cannot unify type #%d with type #%d", e.Expected, e.Found)
}

// OccursError reports a substitution that would bind a variable to a
// type containing itself.
type OccursError struct {
	Var uint32
	In  TypeID
}

func (e *OccursError) Error() string {
	return fmt.Sprintf("type variable ?%d occurs in type #%d", e.Var, e.In)
}

// Unifier asserts equalities between interned types and accumulates a
// substitution for inference variables. One unifier lives per item
// solve; it is not safe for concurrent use.
type Unifier struct {
	in    *Interner
	next  uint32
	subst map[uint32]TypeID
}

// NewUnifier constructs a unifier over the given interner.
func NewUnifier(in *Interner) *Unifier {
	return &Unifier{
		in:    in,
		next:  1,
		subst: make(map[uint32]TypeID),
	}
}

// Fresh allocates a new unbound inference variable.
func (u *Unifier) Fresh() TypeID {
	id := u.in.Intern(MakeVar(u.next))
	u.next++
	return id
}

// shallowResolve follows variable bindings until it reaches an unbound
// variable or a non-variable type.
func (u *Unifier) shallowResolve(id TypeID) TypeID {
	for {
		t, ok := u.in.Lookup(id)
		if !ok || t.Kind != KindVar {
			return id
		}
		bound, ok := u.subst[t.Var]
		if !ok {
			return id
		}
		id = bound
	}
}

// Resolve returns id with every bound variable replaced by its
// substitution, rebuilding composite descriptors as needed.
func (u *Unifier) Resolve(id TypeID) TypeID {
	id = u.shallowResolve(id)
	t, ok := u.in.Lookup(id)
	if !ok {
		return id
	}
	if t.Elem != NoTypeID {
		elem := u.Resolve(t.Elem)
		if elem != t.Elem {
			t.Elem = elem
			return u.in.Intern(t)
		}
	}
	return id
}

// occursIn reports whether the variable appears inside the type.
func (u *Unifier) occursIn(varID uint32, id TypeID) bool {
	id = u.shallowResolve(id)
	t, ok := u.in.Lookup(id)
	if !ok {
		return false
	}
	if t.Kind == KindVar {
		return t.Var == varID
	}
	if t.Elem != NoTypeID {
		return u.occursIn(varID, t.Elem)
	}
	return false
}

func (u *Unifier) bind(varID uint32, id TypeID) error {
	if u.occursIn(varID, id) {
		return &OccursError{Var: varID, In: id}
	}
	u.subst[varID] = id
	return nil
}

// Unify asserts a = b, binding inference variables as needed.
// Reference lifetimes are not compared here: region equalities belong
// to the lifetime solver, unification only aligns structure.
func (u *Unifier) Unify(a, b TypeID) error {
	a = u.shallowResolve(a)
	b = u.shallowResolve(b)
	if a == b {
		return nil
	}
	ta := u.in.MustLookup(a)
	tb := u.in.MustLookup(b)
	if ta.Kind == KindVar {
		return u.bind(ta.Var, b)
	}
	if tb.Kind == KindVar {
		return u.bind(tb.Var, a)
	}
	if ta.Kind != tb.Kind {
		return &MismatchError{Expected: a, Found: b}
	}
	switch ta.Kind {
	case KindVec, KindPointer:
		return u.Unify(ta.Elem, tb.Elem)
	case KindReference:
		if ta.Mutable != tb.Mutable {
			return &MismatchError{Expected: a, Found: b}
		}
		return u.Unify(ta.Elem, tb.Elem)
	default:
		// Structurally equal descriptors share a TypeID, so equal
		// kinds reaching this point differ in a payload field.
		return &MismatchError{Expected: a, Found: b}
	}
}
