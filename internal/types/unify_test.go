package types

import (
	"errors"
	"testing"
)

func TestUnifyBindsVariable(t *testing.T) {
	in := NewInterner(nil)
	u := NewUnifier(in)
	v := u.Fresh()
	if err := u.Unify(v, in.Builtins().I32); err != nil {
		t.Fatalf("unify failed: %v", err)
	}
	if got := u.Resolve(v); got != in.Builtins().I32 {
		t.Fatalf("variable resolved to %v, want i32", got)
	}
}

func TestUnifyThroughComposite(t *testing.T) {
	in := NewInterner(nil)
	u := NewUnifier(in)
	v := u.Fresh()
	vecVar := in.Intern(MakeVec(v))
	vecI32 := in.Intern(MakeVec(in.Builtins().I32))
	if err := u.Unify(vecVar, vecI32); err != nil {
		t.Fatalf("unify failed: %v", err)
	}
	if got := u.Resolve(vecVar); got != vecI32 {
		t.Fatalf("Vec<?> resolved to %v, want Vec<i32>", got)
	}
}

func TestUnifyMismatch(t *testing.T) {
	in := NewInterner(nil)
	u := NewUnifier(in)
	err := u.Unify(in.Builtins().I32, in.Builtins().Bool)
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	in := NewInterner(nil)
	u := NewUnifier(in)
	v := u.Fresh()
	vec := in.Intern(MakeVec(v))
	err := u.Unify(v, vec)
	var occurs *OccursError
	if !errors.As(err, &occurs) {
		t.Fatalf("expected OccursError for X = Vec<X>, got %v", err)
	}
}

func TestUnifyReferenceMutabilityMismatch(t *testing.T) {
	in := NewInterner(nil)
	u := NewUnifier(in)
	shared := in.Intern(MakeReference(NoLifetimeRef, in.Builtins().I32, false))
	mut := in.Intern(MakeReference(NoLifetimeRef, in.Builtins().I32, true))
	if err := u.Unify(shared, mut); err == nil {
		t.Fatalf("&i32 unified with &mut i32")
	}
}

func TestUnifyReferenceIgnoresLifetimes(t *testing.T) {
	in := NewInterner(nil)
	u := NewUnifier(in)
	a := in.Intern(MakeReference(LifetimeRef(1), in.Builtins().I32, false))
	b := in.Intern(MakeReference(LifetimeRef(2), in.Builtins().I32, false))
	if err := u.Unify(a, b); err != nil {
		t.Fatalf("reference unification must not compare regions: %v", err)
	}
}
