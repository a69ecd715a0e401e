package driver

import (
	"context"
	"testing"

	"gaia/internal/diag"
)

const twoItemDoc = `{
  "items": [
    {
      "name": "sum",
      "vars": [{"name": "x", "type": {"kind": "i32"}}],
      "exprs": [{"op": "+", "left": {"var": "x"}, "right": {"int": 5}}]
    },
    {
      "name": "broken",
      "exprs": [{"var": "ghost"}]
    }
  ]
}`

func TestParseItems(t *testing.T) {
	items, err := ParseItems([]byte(twoItemDoc))
	if err != nil {
		t.Fatalf("ParseItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Name != "sum" || len(items[0].Vars) != 1 || len(items[0].Exprs) != 1 {
		t.Fatalf("items[0] = %+v", items[0])
	}
	if items[0].Vars[0].Type.Kind != "i32" {
		t.Fatalf("var type = %q, want i32", items[0].Vars[0].Type.Kind)
	}
}

func TestParseItemsRejectsAnonymous(t *testing.T) {
	_, err := ParseItems([]byte(`{"items": [{"vars": []}]}`))
	if err == nil {
		t.Fatal("items without names should be rejected")
	}
}

func TestCheckSolvesAndAccumulates(t *testing.T) {
	items, err := ParseItems([]byte(twoItemDoc))
	if err != nil {
		t.Fatalf("ParseItems: %v", err)
	}

	report, err := Check(context.Background(), items, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(report.Items) != 2 {
		t.Fatalf("got %d item reports, want 2", len(report.Items))
	}

	sum := report.Items[0]
	if sum.Failed {
		t.Fatal("item sum should solve")
	}
	if len(sum.ExprTypes) != 1 || sum.ExprTypes[0] != "i32" {
		t.Fatalf("sum expr types = %v, want [i32]", sum.ExprTypes)
	}
	if len(sum.Bindings) != 1 || sum.Bindings[0].Name != "x" || sum.Bindings[0].Type != "i32" {
		t.Fatalf("sum bindings = %v", sum.Bindings)
	}

	if !report.Items[1].Failed {
		t.Fatal("item broken should fail")
	}
	if !report.HasErrors() {
		t.Fatal("merged bag should carry the failure")
	}
	found := false
	for _, d := range report.Bag.Items() {
		if d.Item == "broken" && d.Code == diag.SemUnboundVariable {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing stamped diagnostic: %s", report.Bag)
	}
}

func TestCheckRejectsMalformedSpec(t *testing.T) {
	items := []ItemSpec{{
		Name: "bad",
		Vars: []VarSpec{{Name: "x", Type: TypeSpec{Kind: "quux"}}},
	}}
	if _, err := Check(context.Background(), items, Options{}); err == nil {
		t.Fatal("unknown type kind should abort the run")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	spec := ItemSpec{Name: "sum"}
	key, err := itemDigest(&spec)
	if err != nil {
		t.Fatalf("itemDigest: %v", err)
	}

	var miss CachePayload
	if ok, err := cache.Get(key, &miss); err != nil || ok {
		t.Fatalf("Get before Put = (%v, %v), want miss", ok, err)
	}

	payload := &CachePayload{
		Schema:    cacheSchemaVersion,
		Item:      "sum",
		Bindings:  []CacheBinding{{Name: "x", Type: "i32"}},
		ExprTypes: []string{"i32"},
	}
	if err := cache.Put(key, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got CachePayload
	ok, err := cache.Get(key, &got)
	if err != nil || !ok {
		t.Fatalf("Get = (%v, %v), want hit", ok, err)
	}
	if got.Item != "sum" || len(got.Bindings) != 1 || got.Bindings[0].Type != "i32" {
		t.Fatalf("payload = %+v", got)
	}
}

func TestCheckReusesCache(t *testing.T) {
	cache, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	items, err := ParseItems([]byte(twoItemDoc))
	if err != nil {
		t.Fatalf("ParseItems: %v", err)
	}

	first, err := Check(context.Background(), items, Options{Cache: cache})
	if err != nil {
		t.Fatalf("first Check: %v", err)
	}
	if first.Items[0].Cached {
		t.Fatal("first run cannot hit the cache")
	}

	second, err := Check(context.Background(), items, Options{Cache: cache})
	if err != nil {
		t.Fatalf("second Check: %v", err)
	}
	if !second.Items[0].Cached {
		t.Fatal("clean item should hit the cache on the second run")
	}
	if second.Items[1].Cached {
		t.Fatal("failing items must never be cached")
	}
	if got := second.Items[0].ExprTypes; len(got) != 1 || got[0] != "i32" {
		t.Fatalf("cached expr types = %v, want [i32]", got)
	}
}
