package token

import "testing"

func TestKeywordsAreLowerCase(t *testing.T) {
	for text := range keywords {
		if k, ok := LookupKeyword(text); !ok || k.String() == "Unknown" {
			t.Fatalf("keyword %q not registered", text)
		}
	}
	if _, ok := LookupKeyword("When"); ok {
		t.Fatalf("keywords are case sensitive")
	}
}

func TestPrecedenceOrdering(t *testing.T) {
	plus, _ := Precedence(Plus)
	star, _ := Precedence(Star)
	eq, _ := Precedence(EqEq)
	if !(star > plus && plus > eq) {
		t.Fatalf("unexpected precedence: * %d, + %d, == %d", star, plus, eq)
	}
	if _, ok := Precedence(Assign); ok {
		t.Fatalf("= is not an infix operator")
	}
	if !RightAssoc(Caret) || RightAssoc(Minus) {
		t.Fatalf("associativity")
	}
}
