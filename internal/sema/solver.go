package sema

import (
	"gaia/internal/hir"
	"gaia/internal/source"
	"gaia/internal/types"
)

// FuncSig is a registered function signature.
type FuncSig struct {
	Params []types.TypeID
	Result types.TypeID
}

// Solver unifies expression types against registered variable and
// function declarations. Variables bind to their declared types
// directly; inference variables exist only transiently inside one
// expression walk. This deliberately trades let-polymorphism for a
// predictable one-pass solve.
//
// One solver serves one item scope and is not safe for concurrent use.
type Solver struct {
	types    *types.Interner
	strings  *source.Interner
	uni      *types.Unifier
	vars     map[source.StringID]types.TypeID
	varOrder []source.StringID
	funcs    map[source.StringID]FuncSig
}

// NewSolver constructs a solver over the interner. A nil interner
// allocates a private one.
func NewSolver(in *types.Interner) *Solver {
	if in == nil {
		in = types.NewInterner(nil)
	}
	return &Solver{
		types:   in,
		strings: in.Strings(),
		uni:     types.NewUnifier(in),
		vars:    make(map[source.StringID]types.TypeID),
		funcs:   make(map[source.StringID]FuncSig),
	}
}

// Types exposes the interner expressions are typed against.
func (s *Solver) Types() *types.Interner {
	return s.types
}

// RegisterVar declares a variable with its known type. Re-declaration
// overwrites, matching shadowing in one scope.
func (s *Solver) RegisterVar(name string, ty types.TypeID) {
	sid := s.strings.Intern(name)
	if _, ok := s.vars[sid]; !ok {
		s.varOrder = append(s.varOrder, sid)
	}
	s.vars[sid] = ty
}

// RegisterFunc declares a callable signature.
func (s *Solver) RegisterFunc(name string, params []types.TypeID, result types.TypeID) {
	s.funcs[s.strings.Intern(name)] = FuncSig{Params: params, Result: result}
}

// SolveExpr types the expression bottom-up, aborting on the first
// error. The returned TypeID is fully resolved.
func (s *Solver) SolveExpr(arena *hir.Arena, id hir.ExprID) (types.TypeID, error) {
	ty, err := s.solve(arena, id)
	if err != nil {
		return types.NoTypeID, err
	}
	return s.uni.Resolve(ty), nil
}

func (s *Solver) solve(arena *hir.Arena, id hir.ExprID) (types.TypeID, error) {
	e := arena.Get(id)
	if e == nil {
		panic("sema: expression id out of range")
	}
	b := s.types.Builtins()

	switch e.Kind {
	case hir.ExprVar:
		sid := s.rekey(arena, e.Name)
		ty, ok := s.vars[sid]
		if !ok {
			return types.NoTypeID, &UnboundVariableError{Name: s.strings.MustLookup(sid)}
		}
		return ty, nil

	case hir.ExprIntLit:
		// Integer literals default to i32; no suffix inference.
		return b.I32, nil

	case hir.ExprBoolLit:
		return b.Bool, nil

	case hir.ExprBinary:
		return s.solveBinary(arena, e)

	case hir.ExprUnary:
		return s.solveUnary(arena, e)

	case hir.ExprCall:
		return s.solveCall(arena, e)

	default:
		panic("sema: invalid expression kind")
	}
}

func (s *Solver) solveBinary(arena *hir.Arena, e *hir.Expr) (types.TypeID, error) {
	left, err := s.solve(arena, e.Left)
	if err != nil {
		return types.NoTypeID, err
	}
	right, err := s.solve(arena, e.Right)
	if err != nil {
		return types.NoTypeID, err
	}
	if err := s.unify(left, right, -1); err != nil {
		return types.NoTypeID, err
	}

	switch {
	case e.Bin.IsArithmetic():
		resolved := s.uni.Resolve(left)
		t := s.types.MustLookup(resolved)
		if !t.Kind.IsNumeric() {
			return types.NoTypeID, &TypeMismatchError{Found: resolved, Position: -1}
		}
		return resolved, nil
	case e.Bin.IsComparison():
		return s.types.Builtins().Bool, nil
	default:
		panic("sema: invalid binary operator")
	}
}

func (s *Solver) solveUnary(arena *hir.Arena, e *hir.Expr) (types.TypeID, error) {
	operand, err := s.solve(arena, e.Left)
	if err != nil {
		return types.NoTypeID, err
	}
	b := s.types.Builtins()

	switch e.Un {
	case hir.UnNeg:
		resolved := s.uni.Resolve(operand)
		t := s.types.MustLookup(resolved)
		if !t.Kind.IsNumeric() {
			return types.NoTypeID, &TypeMismatchError{Found: resolved, Position: -1}
		}
		return resolved, nil

	case hir.UnNot:
		if err := s.unify(b.Bool, operand, -1); err != nil {
			return types.NoTypeID, err
		}
		return b.Bool, nil

	case hir.UnRef:
		// The enclosing signature's lifetime context annotates the
		// reference later; expression typing leaves it open.
		return s.types.Intern(types.MakeReference(types.NoLifetimeRef, s.uni.Resolve(operand), false)), nil

	case hir.UnDeref:
		resolved := s.uni.Resolve(operand)
		t := s.types.MustLookup(resolved)
		switch t.Kind {
		case types.KindReference, types.KindPointer:
			return t.Elem, nil
		case types.KindVar:
			elem := s.uni.Fresh()
			ref := s.types.Intern(types.MakeReference(types.NoLifetimeRef, elem, false))
			if err := s.unify(ref, resolved, -1); err != nil {
				return types.NoTypeID, err
			}
			return elem, nil
		default:
			return types.NoTypeID, &TypeMismatchError{Found: resolved, Position: -1}
		}

	default:
		panic("sema: invalid unary operator")
	}
}

func (s *Solver) solveCall(arena *hir.Arena, e *hir.Expr) (types.TypeID, error) {
	sid := s.rekey(arena, e.Name)
	sig, ok := s.funcs[sid]
	if !ok {
		return types.NoTypeID, &UnknownFunctionError{Name: s.strings.MustLookup(sid)}
	}
	if len(e.Args) != len(sig.Params) {
		return types.NoTypeID, &ArityMismatchError{
			Name: s.strings.MustLookup(sid),
			Want: len(sig.Params),
			Got:  len(e.Args),
		}
	}
	for i, arg := range e.Args {
		argTy, err := s.solve(arena, arg)
		if err != nil {
			return types.NoTypeID, err
		}
		if err := s.unify(sig.Params[i], argTy, i); err != nil {
			return types.NoTypeID, err
		}
	}
	return sig.Result, nil
}

// unify wraps the structural unifier, translating its errors into the
// solver taxonomy.
func (s *Solver) unify(expected, found types.TypeID, pos int) error {
	err := s.uni.Unify(expected, found)
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *types.OccursError:
		return &CyclicTypeConstraintError{Var: e.Var, In: e.In}
	case *types.MismatchError:
		return &TypeMismatchError{
			Expected: s.uni.Resolve(expected),
			Found:    s.uni.Resolve(found),
			Position: pos,
		}
	default:
		return err
	}
}

// rekey maps an arena-interned name into the solver's interner. Most
// callers share one interner, in which case this is a no-op lookup.
func (s *Solver) rekey(arena *hir.Arena, id source.StringID) source.StringID {
	if arena.Strings == s.strings {
		return id
	}
	return s.strings.Intern(arena.Strings.MustLookup(id))
}
