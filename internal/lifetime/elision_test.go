package lifetime

import "testing"

func TestElisionRuleOneSharesLifetime(t *testing.T) {
	ctx := NewContext(nil)
	e := Elide(ctx, []bool{true}, true)
	if e.Inputs[0] == NoID {
		t.Fatalf("reference parameter got no lifetime")
	}
	if e.Output != e.Inputs[0] {
		t.Fatalf("return lifetime %v differs from input %v", e.Output, e.Inputs[0])
	}
}

func TestElisionRuleOneSkipsValueParams(t *testing.T) {
	ctx := NewContext(nil)
	e := Elide(ctx, []bool{false, true, false}, true)
	if e.Inputs[0] != NoID || e.Inputs[2] != NoID {
		t.Fatalf("value parameters were assigned lifetimes: %v", e.Inputs)
	}
	if e.Inputs[1] == NoID || e.Output != e.Inputs[1] {
		t.Fatalf("single reference parameter does not share with return: %v", e)
	}
}

func TestElisionRuleTwoFirstParamWins(t *testing.T) {
	ctx := NewContext(nil)
	e := Elide(ctx, []bool{true, true}, true)
	if e.Output != e.Inputs[0] {
		t.Fatalf("return lifetime %v is not the first parameter's %v", e.Output, e.Inputs[0])
	}
	if e.Inputs[1] == NoID || e.Inputs[1] == e.Inputs[0] {
		t.Fatalf("second parameter must get its own distinct lifetime: %v", e.Inputs)
	}
}

func TestElisionRuleThreeIndependent(t *testing.T) {
	ctx := NewContext(nil)
	e := Elide(ctx, []bool{true, true}, false)
	if e.Output != NoID {
		t.Fatalf("rule 3 assigned a return lifetime")
	}
	if e.Inputs[0] == NoID || e.Inputs[1] == NoID || e.Inputs[0] == e.Inputs[1] {
		t.Fatalf("parameters must get independent lifetimes: %v", e.Inputs)
	}
}

func TestElisionAmbiguousReturnLeftOpen(t *testing.T) {
	// First parameter is not a reference, so rule 2 does not apply;
	// the reference return stays unassigned for a later check to
	// reject.
	ctx := NewContext(nil)
	e := Elide(ctx, []bool{false, true, true}, true)
	if e.Output != NoID {
		t.Fatalf("ambiguous signature silently got a return lifetime")
	}
}

func TestElisionNoParams(t *testing.T) {
	ctx := NewContext(nil)
	e := Elide(ctx, nil, true)
	if len(e.Inputs) != 0 || e.Output != NoID {
		t.Fatalf("empty signature produced lifetimes: %v", e)
	}
}
