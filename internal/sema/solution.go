package sema

import "gaia/internal/types"

// TypeSolution is an immutable snapshot of the solver's variable
// bindings, position-stable in declaration order.
type TypeSolution struct {
	names  []string
	byName map[string]types.TypeID
}

// Solution snapshots the current bindings. Later solver activity does
// not affect the returned solution.
func (s *Solver) Solution() *TypeSolution {
	sol := &TypeSolution{
		names:  make([]string, 0, len(s.varOrder)),
		byName: make(map[string]types.TypeID, len(s.varOrder)),
	}
	for _, sid := range s.varOrder {
		name := s.strings.MustLookup(sid)
		sol.names = append(sol.names, name)
		sol.byName[name] = s.uni.Resolve(s.vars[sid])
	}
	return sol
}

// Lookup returns the resolved type bound to a variable.
func (sol *TypeSolution) Lookup(name string) (types.TypeID, bool) {
	ty, ok := sol.byName[name]
	return ty, ok
}

// Names lists bound variables in declaration order.
func (sol *TypeSolution) Names() []string {
	out := make([]string, len(sol.names))
	copy(out, sol.names)
	return out
}

// Len reports the number of bindings.
func (sol *TypeSolution) Len() int {
	return len(sol.names)
}
