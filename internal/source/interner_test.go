package source

import "testing"

func TestInternReturnsStableIDs(t *testing.T) {
	in := NewInterner()
	a := in.Intern("T")
	b := in.Intern("U")
	if a == b {
		t.Fatalf("distinct strings share an ID")
	}
	if got := in.Intern("T"); got != a {
		t.Fatalf("re-intern changed ID: %v != %v", got, a)
	}
}

func TestInternEmptyString(t *testing.T) {
	in := NewInterner()
	if got := in.Intern(""); got != NoStringID {
		t.Fatalf("empty string must map to NoStringID, got %v", got)
	}
}

func TestLookupRoundTrip(t *testing.T) {
	in := NewInterner()
	id := in.Intern("'static")
	s, ok := in.Lookup(id)
	if !ok || s != "'static" {
		t.Fatalf("lookup(%v) = %q, %v", id, s, ok)
	}
	if _, ok := in.Lookup(StringID(999)); ok {
		t.Fatalf("lookup of unknown ID succeeded")
	}
}
