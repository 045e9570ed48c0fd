package can

import (
	"context"
	"testing"

	"canon/internal/diag"
	"canon/internal/parser"
)

func canon(t *testing.T, src string) *Output {
	t.Helper()
	res := parser.ParseSource("test.roc", src)
	if len(res.Errors) != 0 {
		t.Fatalf("parse %q: %v", src, res.Errors)
	}
	return Canonicalize(context.Background(), NewEnv("Test"), res.Expr)
}

func codesOf(out *Output) []diag.Code {
	codes := make([]diag.Code, 0, len(out.Problems))
	for _, p := range out.Problems {
		codes = append(codes, p.Code())
	}
	return codes
}

func expectProblems(t *testing.T, out *Output, want ...diag.Code) {
	t.Helper()
	got := codesOf(out)
	if len(got) != len(want) {
		t.Fatalf("problems %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("problems %v, want %v", got, want)
		}
	}
}

func expectNoProblems(t *testing.T, out *Output) {
	t.Helper()
	expectProblems(t, out)
}

// defNamed finds the definition binding name anywhere in the tree.
func defNamed(t *testing.T, out *Output, name string) *Def {
	t.Helper()
	for _, def := range Defs(out.Expr) {
		for _, sym := range def.Symbols() {
			if out.SymbolName(sym) == name {
				return def
			}
		}
	}
	t.Fatalf("no definition of %q", name)
	return nil
}

func closureOf(t *testing.T, def *Def) ClosureData {
	t.Helper()
	cl, ok := def.Expr.Closure()
	if !ok {
		t.Fatalf("definition is %s, not a closure", def.Expr.Kind)
	}
	return cl
}
