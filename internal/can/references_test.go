package can

import (
	"slices"
	"testing"

	"canon/internal/symbols"
)

func TestReferencesKeepFirstSeenOrder(t *testing.T) {
	a := symbols.Symbol{Module: 1, Index: 1}
	b := symbols.Symbol{Module: 1, Index: 2}
	c := symbols.Symbol{Module: 1, Index: 3}

	inner := NewReferences()
	inner.AddCall(c)
	inner.AddLookup(a)

	outer := NewReferences()
	outer.AddLookup(b)
	outer.AddLookup(b)
	outer.Merge(inner)
	outer.Merge(nil)

	if got := outer.Lookups(); !slices.Equal(got, []symbols.Symbol{b, c, a}) {
		t.Fatalf("lookups = %v", got)
	}
	if got := outer.Calls(); !slices.Equal(got, []symbols.Symbol{c}) {
		t.Fatalf("calls = %v", got)
	}
	if !outer.Called(c) || outer.Called(a) || !outer.Has(a) || outer.Len() != 3 {
		t.Fatalf("flags wrong: %+v", outer)
	}
	var none *References
	if none.Has(a) || none.Called(a) {
		t.Fatalf("nil references must be empty")
	}
}
