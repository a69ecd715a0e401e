package sema

import (
	"errors"

	"gaia/internal/constraint"
	"gaia/internal/diag"
	"gaia/internal/lifetime"
	"gaia/internal/source"
	"gaia/internal/types"
)

// Options configures one CheckItem run.
type Options struct {
	// Types is the interner the item's type ids are relative to. Nil
	// allocates a private one (only valid for items with no declared
	// types).
	Types *types.Interner
	// Reporter receives diagnostics. Nil drops them.
	Reporter diag.Reporter
	// MaxIterations caps fixpoint loops; zero applies the defaults.
	MaxIterations int
}

// Result carries everything CheckItem established about one item. On
// failure Err is the first structured error and the remaining fields
// reflect progress up to that point.
type Result struct {
	Solution     *TypeSolution
	ExprTypes    []types.TypeID
	Constraints  *constraint.Set
	Equivalences []constraint.EqualityCycle
	Lifetimes    *lifetime.Context
	Elision      lifetime.Elision
	Err          error
}

// CheckItem runs the full per-item pipeline: signature registration,
// where-clause lowering, constraint propagation, associated-type
// resolution, lifetime registration and elision, outlives
// satisfiability, and expression solving. The first error aborts the
// item; every error is also reported as a diagnostic so the caller's
// bag stays complete across sibling items.
func CheckItem(item *Item, opts Options) *Result {
	rep := opts.Reporter
	if rep == nil {
		rep = diag.NopReporter{}
	}
	in := opts.Types
	if in == nil {
		in = types.NewInterner(nil)
	}

	res := &Result{}
	fail := func(err error) *Result {
		res.Err = err
		diag.ReportError(rep, errCode(err), source.Span{}, err.Error())
		return res
	}

	solver := NewSolver(in)
	for _, v := range item.Vars {
		solver.RegisterVar(v.Name, v.Type)
	}
	for _, f := range item.Funcs {
		solver.RegisterFunc(f.Name, f.Params, f.Result)
	}

	set := constraint.NewSet(in.Strings())
	for _, a := range item.Aliases {
		set.Add(constraint.Equality(set.Strings().Intern(a.A), set.Strings().Intern(a.B)))
	}
	for _, wc := range item.Where {
		LowerWhereClause(wc, set)
	}
	res.Constraints = set
	if err := set.Propagate(opts.MaxIterations); err != nil {
		return fail(err)
	}
	cycles, err := set.CheckSatisfiable()
	if err != nil {
		return fail(err)
	}
	res.Equivalences = cycles

	assoc := NewAssocResolver()
	for _, b := range item.Assoc {
		assoc.Bind(b.Impl, b.Name, b.Type)
	}
	for _, ref := range item.AssocRefs {
		if _, err := assoc.Resolve(ref.Impl, ref.Name); err != nil {
			return fail(err)
		}
	}

	ctx := lifetime.NewContext(in.Strings())
	for _, name := range item.Lifetimes {
		ctx.RegisterNamed(name)
	}
	for _, o := range item.Outlives {
		if err := ctx.AddOutlivesNamed(o.From, o.To, o.Reason); err != nil {
			return fail(err)
		}
	}
	res.Lifetimes = ctx

	if sig := item.Signature; sig != nil {
		res.Elision = lifetime.Elide(ctx, sig.ParamIsRef, sig.ReturnIsRef)
		if sig.ReturnIsRef && res.Elision.Output == lifetime.NoID {
			return fail(&AmbiguousElisionError{Item: item.Name})
		}
	}

	lsolver := lifetime.NewSolver(ctx)
	if opts.MaxIterations > 0 {
		lsolver.SetIterationLimit(opts.MaxIterations)
	}
	violations, err := lsolver.Violations()
	if err != nil {
		return fail(err)
	}
	if len(violations) > 0 {
		// Report every cycle before aborting so the caller sees the
		// whole picture for this item.
		for _, v := range violations {
			cyc := lsolver.Describe(v)
			if res.Err == nil {
				res.Err = cyc
			}
			diag.ReportError(rep, diag.SemCyclicLifetime, source.Span{}, cyc.Error())
		}
		return res
	}

	res.ExprTypes = make([]types.TypeID, 0, len(item.Exprs))
	for _, id := range item.Exprs {
		ty, err := solver.SolveExpr(item.Arena, id)
		if err != nil {
			return fail(err)
		}
		res.ExprTypes = append(res.ExprTypes, ty)
	}

	res.Solution = solver.Solution()
	return res
}

// errCode resolves a diagnostic code for both the structured error
// taxonomy and the fixpoint sentinels.
func errCode(err error) diag.Code {
	if errors.Is(err, constraint.ErrIterationLimit) || errors.Is(err, lifetime.ErrIterationLimit) {
		return diag.SemIterationLimit
	}
	return codeFor(err)
}
