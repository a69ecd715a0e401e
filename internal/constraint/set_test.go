package constraint

import (
	"testing"

	"gaia/internal/source"
)

func TestAddIsIdempotent(t *testing.T) {
	s := NewSet(nil)
	tid := s.Strings().Intern("T")
	if !s.Add(Sized(tid)) {
		t.Fatalf("first add rejected")
	}
	if s.Add(Sized(tid)) {
		t.Fatalf("duplicate add accepted")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 constraint, got %d", s.Len())
	}
}

func TestResolveIndexesEqualityUnderBothSides(t *testing.T) {
	s := NewSet(nil)
	a := s.Strings().Intern("A")
	b := s.Strings().Intern("B")
	s.Add(Equality(a, b))
	s.Resolve()
	if got := s.ForKey(a); len(got) != 1 {
		t.Fatalf("ForKey(A) = %d constraints, want 1", len(got))
	}
	if got := s.ForKey(b); len(got) != 1 {
		t.Fatalf("ForKey(B) = %d constraints, want 1", len(got))
	}
}

func TestForKeyUnknownName(t *testing.T) {
	s := NewSet(nil)
	if got := s.ForKey(s.Strings().Intern("Z")); got != nil {
		t.Fatalf("expected nil for unconstrained name, got %v", got)
	}
}

func TestMergeUnions(t *testing.T) {
	strs := source.NewInterner()
	s1 := NewSet(strs)
	s2 := NewSet(strs)
	tid := strs.Intern("T")
	uid := strs.Intern("U")
	s1.Add(Trait(tid, strs.Intern("Clone")))
	s2.Add(Trait(uid, strs.Intern("Debug")))
	s2.Add(Trait(tid, strs.Intern("Clone"))) // duplicate across sets

	s1.Merge(s2)
	if s1.Len() != 2 {
		t.Fatalf("merge produced %d constraints, want 2", s1.Len())
	}
}

func TestMergeReinternsAcrossInterners(t *testing.T) {
	s1 := NewSet(nil)
	s2 := NewSet(nil)
	s2.Add(Trait(s2.Strings().Intern("T"), s2.Strings().Intern("Clone")))

	s1.Merge(s2)
	got := s1.ForKey(s1.Strings().Intern("T"))
	if len(got) != 1 || got[0].Kind != KindTraitBound {
		t.Fatalf("merged constraint not reachable under re-interned key: %v", got)
	}
}

func TestPropagateTraitBoundAcrossEquality(t *testing.T) {
	s := NewSet(nil)
	tid := s.Strings().Intern("T")
	uid := s.Strings().Intern("U")
	clone := s.Strings().Intern("Clone")
	s.Add(Equality(tid, uid))
	s.Add(Trait(tid, clone))

	if err := s.Propagate(0); err != nil {
		t.Fatalf("propagate: %v", err)
	}
	found := false
	for _, c := range s.ForKey(uid) {
		if c.Kind == KindTraitBound && c.A == uid && c.B == clone {
			found = true
		}
	}
	if !found {
		t.Fatalf("TraitBound(U, Clone) not derived")
	}
}

func TestPropagateChainsThroughClasses(t *testing.T) {
	s := NewSet(nil)
	a := s.Strings().Intern("A")
	b := s.Strings().Intern("B")
	c := s.Strings().Intern("C")
	debug := s.Strings().Intern("Debug")
	s.Add(Equality(a, b))
	s.Add(Equality(b, c))
	s.Add(Trait(a, debug))

	if err := s.Propagate(0); err != nil {
		t.Fatalf("propagate: %v", err)
	}
	for _, name := range []source.StringID{b, c} {
		found := false
		for _, cc := range s.ForKey(name) {
			if cc.Kind == KindTraitBound && cc.A == name && cc.B == debug {
				found = true
			}
		}
		if !found {
			t.Fatalf("bound did not reach %q", s.Strings().MustLookup(name))
		}
	}
}

func TestPropagateIsIdempotent(t *testing.T) {
	s := NewSet(nil)
	tid := s.Strings().Intern("T")
	uid := s.Strings().Intern("U")
	s.Add(Equality(tid, uid))
	s.Add(Trait(tid, s.Strings().Intern("Clone")))

	if err := s.Propagate(0); err != nil {
		t.Fatalf("first propagate: %v", err)
	}
	n := s.Len()
	if err := s.Propagate(0); err != nil {
		t.Fatalf("second propagate: %v", err)
	}
	if s.Len() != n {
		t.Fatalf("second propagate grew the set: %d -> %d", n, s.Len())
	}
}

func TestPropagateIterationLimit(t *testing.T) {
	s := NewSet(nil)
	tid := s.Strings().Intern("T")
	uid := s.Strings().Intern("U")
	s.Add(Equality(tid, uid))
	s.Add(Trait(tid, s.Strings().Intern("Clone")))

	if err := s.Propagate(1); err != ErrIterationLimit {
		t.Fatalf("expected ErrIterationLimit, got %v", err)
	}
}

func TestEqualityCycleIsLegalEquivalenceClass(t *testing.T) {
	s := NewSet(nil)
	a := s.Strings().Intern("A")
	b := s.Strings().Intern("B")
	c := s.Strings().Intern("C")
	s.Add(Equality(a, b))
	s.Add(Equality(b, c))
	s.Add(Equality(c, a))

	cycles, err := s.CheckSatisfiable()
	if err != nil {
		t.Fatalf("pure equality cycle reported as violation: %v", err)
	}
	if len(cycles) != 1 {
		t.Fatalf("expected one equivalence cycle, got %d", len(cycles))
	}
	if len(cycles[0].Members) != 3 {
		t.Fatalf("cycle has %d members, want 3", len(cycles[0].Members))
	}
}

func TestMirroredEqualityIsNotACycle(t *testing.T) {
	s := NewSet(nil)
	a := s.Strings().Intern("A")
	b := s.Strings().Intern("B")
	// The same equality stated in both directions is one edge, not a
	// two-member equivalence cycle.
	s.Add(Equality(a, b))
	s.Add(Equality(b, a))
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (mirrored constraints are distinct)", s.Len())
	}

	cycles, err := s.CheckSatisfiable()
	if err != nil {
		t.Fatalf("CheckSatisfiable: %v", err)
	}
	if len(cycles) != 0 {
		t.Fatalf("got %d cycles, want none: %v", len(cycles), cycles)
	}
}

func TestNoCycleOnTree(t *testing.T) {
	s := NewSet(nil)
	a := s.Strings().Intern("A")
	b := s.Strings().Intern("B")
	c := s.Strings().Intern("C")
	s.Add(Equality(a, b))
	s.Add(Equality(a, c))

	cycles, err := s.CheckSatisfiable()
	if err != nil {
		t.Fatalf("CheckSatisfiable: %v", err)
	}
	if len(cycles) != 0 {
		t.Fatalf("tree-shaped equalities produced cycles: %v", cycles)
	}
}
