package sema

import "gaia/internal/types"

type assocKey struct {
	impl string
	name string
}

// AssocResolver maps (impl, associated type name) pairs to concrete
// types. Bindings must be explicit; there is no projection through
// trait defaults.
type AssocResolver struct {
	binds map[assocKey]types.TypeID
}

func NewAssocResolver() *AssocResolver {
	return &AssocResolver{binds: make(map[assocKey]types.TypeID)}
}

// Bind records `impl::name = ty`, overwriting any earlier binding.
func (r *AssocResolver) Bind(impl, name string, ty types.TypeID) {
	r.binds[assocKey{impl: impl, name: name}] = ty
}

// Resolve projects `impl::name` to its bound type.
func (r *AssocResolver) Resolve(impl, name string) (types.TypeID, error) {
	ty, ok := r.binds[assocKey{impl: impl, name: name}]
	if !ok {
		return types.NoTypeID, &AssociatedTypeUnboundError{Impl: impl, Name: name}
	}
	return ty, nil
}

// Len reports the number of recorded bindings.
func (r *AssocResolver) Len() int {
	return len(r.binds)
}
