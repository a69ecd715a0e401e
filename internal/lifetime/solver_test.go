package lifetime

import (
	"testing"
)

func TestTransitiveOutlives(t *testing.T) {
	ctx := NewContext(nil)
	a := ctx.RegisterNamed("a")
	b := ctx.RegisterNamed("b")
	c := ctx.RegisterNamed("c")
	mustAdd(t, ctx, a, b, "'a: 'b")
	mustAdd(t, ctx, b, c, "'b: 'c")

	s := NewSolver(ctx)
	got, err := s.Outlives(a)
	if err != nil {
		t.Fatalf("outlives: %v", err)
	}
	want := map[ID]bool{b: true, c: true}
	for _, id := range got {
		delete(want, id)
	}
	if len(want) != 0 {
		t.Fatalf("closure of 'a misses %v (got %v)", want, got)
	}
}

func TestOutlivesCycleIsViolation(t *testing.T) {
	ctx := NewContext(nil)
	a := ctx.RegisterNamed("a")
	b := ctx.RegisterNamed("b")
	mustAdd(t, ctx, a, b, "'a: 'b")
	mustAdd(t, ctx, b, a, "'b: 'a")

	s := NewSolver(ctx)
	if s.IsSatisfiable() {
		t.Fatalf("mutual outlives accepted")
	}
	violations, err := s.Violations()
	if err != nil {
		t.Fatalf("violations: %v", err)
	}
	if len(violations) != 2 {
		t.Fatalf("expected a violation per cycle member, got %d", len(violations))
	}
	v := violations[0]
	if len(v.Path) < 3 || v.Path[0] != v.Path[len(v.Path)-1] {
		t.Fatalf("violation path malformed: %v", v.Path)
	}
}

func TestAcyclicGraphSatisfiable(t *testing.T) {
	ctx := NewContext(nil)
	a := ctx.RegisterNamed("a")
	b := ctx.RegisterNamed("b")
	mustAdd(t, ctx, a, b, "'a: 'b")

	s := NewSolver(ctx)
	if !s.IsSatisfiable() {
		t.Fatalf("acyclic graph rejected")
	}
}

func TestStaticOutlivesEverything(t *testing.T) {
	ctx := NewContext(nil)
	a := ctx.RegisterNamed("a")
	b := ctx.Fresh()

	s := NewSolver(ctx)
	got, err := s.Outlives(ctx.Static())
	if err != nil {
		t.Fatalf("outlives: %v", err)
	}
	want := map[ID]bool{a: true, b: true}
	for _, id := range got {
		delete(want, id)
	}
	if len(want) != 0 {
		t.Fatalf("'static does not reach %v", want)
	}
}

func TestOutlivingStaticIsNotACycle(t *testing.T) {
	ctx := NewContext(nil)
	a := ctx.RegisterNamed("a")
	mustAdd(t, ctx, a, ctx.Static(), "'a: 'static")

	s := NewSolver(ctx)
	if !s.IsSatisfiable() {
		t.Fatalf("'a: 'static flagged as a cycle")
	}
	got, err := s.Outlives(a)
	if err != nil {
		t.Fatalf("outlives: %v", err)
	}
	// 'a reaches 'static, so it outlives everything 'static does.
	if len(got) != ctx.Len()-1 {
		t.Fatalf("closure of 'a has %d entries, want %d", len(got), ctx.Len()-1)
	}
}

func TestIterationLimit(t *testing.T) {
	ctx := NewContext(nil)
	ids := make([]ID, 0, 8)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		ids = append(ids, ctx.RegisterNamed(name))
	}
	for i := 0; i+1 < len(ids); i++ {
		mustAdd(t, ctx, ids[i], ids[i+1], "chain")
	}

	s := NewSolver(ctx)
	s.SetIterationLimit(1)
	if _, err := s.Violations(); err != ErrIterationLimit {
		t.Fatalf("expected ErrIterationLimit, got %v", err)
	}
}

func TestDescribeViolation(t *testing.T) {
	ctx := NewContext(nil)
	a := ctx.RegisterNamed("a")
	b := ctx.RegisterNamed("b")
	mustAdd(t, ctx, a, b, "'a: 'b")
	mustAdd(t, ctx, b, a, "'b: 'a")

	s := NewSolver(ctx)
	violations, err := s.Violations()
	if err != nil {
		t.Fatalf("violations: %v", err)
	}
	cerr := s.Describe(violations[0])
	if len(cerr.Path) < 3 {
		t.Fatalf("described path too short: %v", cerr.Path)
	}
	if cerr.Path[0] != cerr.Path[len(cerr.Path)-1] {
		t.Fatalf("described path does not close: %v", cerr.Path)
	}
}

func mustAdd(t *testing.T, ctx *Context, from, to ID, reason string) {
	t.Helper()
	if err := ctx.AddOutlives(from, to, reason); err != nil {
		t.Fatalf("AddOutlives(%v, %v): %v", from, to, err)
	}
}
