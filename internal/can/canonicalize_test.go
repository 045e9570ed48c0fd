package can

import (
	"context"
	"testing"

	"canon/internal/diag"
	"canon/internal/parser"
	"canon/internal/symbols"
)

func TestLookupResolvesToBinding(t *testing.T) {
	out := canon(t, "x = 1\n\nx")
	expectNoProblems(t, out)
	let := out.Expr.Data.(LetNonRecData)
	bound := let.Def.Symbols()[0]
	if got := let.Body.Data.(VarData).Symbol; got != bound {
		t.Fatalf("body refers to %s, want %s", got, bound)
	}
	if info := out.Interner.Info(bound); info.Kind != symbols.SymbolValue || out.SymbolName(bound) != "x" {
		t.Fatalf("symbol info %+v", info)
	}
}

func TestLookupNotInScope(t *testing.T) {
	out := canon(t, "y = 1\n\ny + z")
	expectProblems(t, out, diag.SemaLookupNotInScope)
	p := out.Problems[0].(*diag.LookupNotInScope)
	if p.Name != "z" {
		t.Fatalf("name %q", p.Name)
	}
	if len(p.InScope) != 1 || p.InScope[0] != "y" {
		t.Fatalf("in scope %v", p.InScope)
	}
	call := out.Expr.Data.(LetNonRecData).Body.Data.(CallData)
	if call.Args[1].Kind != ExprRuntimeError {
		t.Fatalf("z = %s", call.Args[1].Kind)
	}
}

func TestQualifiedLookup(t *testing.T) {
	out := canon(t, "Num.add 1 2")
	expectNoProblems(t, out)
	call := out.Expr.Data.(CallData)
	sym := call.Fn.Data.(VarData).Symbol
	if got := out.Interner.QualifiedName(sym); got != "Num.add" {
		t.Fatalf("fn = %s", got)
	}
	if !out.References.Called(sym) {
		t.Fatalf("Num.add not recorded as called")
	}

	out = canon(t, "Num.nope 1")
	expectProblems(t, out, diag.SemaLookupNotInScope)
	if p := out.Problems[0].(*diag.LookupNotInScope); p.Name != "Num.nope" {
		t.Fatalf("name %q", p.Name)
	}
}

func TestOperatorsDesugarToCalls(t *testing.T) {
	out := canon(t, "1 + 2 * 3")
	expectNoProblems(t, out)
	add := out.Expr.Data.(CallData)
	if add.CalledVia != CalledViaBinOp || out.Interner.QualifiedName(add.Fn.Data.(VarData).Symbol) != "Num.add" {
		t.Fatalf("outer call %+v", add)
	}
	mul := add.Args[1].Data.(CallData)
	if out.Interner.QualifiedName(mul.Fn.Data.(VarData).Symbol) != "Num.mul" {
		t.Fatalf("inner call is not Num.mul")
	}

	out = canon(t, "x = 1\n\n!(x == x)")
	expectNoProblems(t, out)
	not := out.Expr.Data.(LetNonRecData).Body.Data.(CallData)
	if not.CalledVia != CalledViaUnaryOp || out.Interner.QualifiedName(not.Fn.Data.(VarData).Symbol) != "Bool.not" {
		t.Fatalf("negation %+v", not)
	}
}

func TestInvalidOptionalValue(t *testing.T) {
	out := canon(t, "{ x ? 42 }")
	expectProblems(t, out, diag.SemaInvalidOptionalValue)
	err, ok := out.Expr.RuntimeErr()
	if !ok {
		t.Fatalf("record is %s", out.Expr.Kind)
	}
	if _, ok := err.(*diag.InvalidOptionalValue); !ok {
		t.Fatalf("runtime error %T", err)
	}
}

func TestOptionalFieldDefaultCountsAsUse(t *testing.T) {
	out := canon(t, `fallbackZ = 3

fn = \{ x, y, z ? fallbackZ } ->
    { x, y, z }

fn { x: 0, y: 1 }`)
	expectNoProblems(t, out)
	cl := closureOf(t, defNamed(t, out, "fn"))
	rec := cl.Params[0].Data.(RecordPattern)
	if rec.Fields[2].Kind != DestructOptional || rec.Fields[2].Default.Kind != ExprVar {
		t.Fatalf("z destructure %+v", rec.Fields[2])
	}
	if len(cl.Captured) != 1 || out.SymbolName(cl.Captured[0]) != "fallbackZ" {
		t.Fatalf("captured %v", cl.Captured)
	}
}

func TestPunnedFieldIsLookup(t *testing.T) {
	out := canon(t, "a = 1\n\n{ a, b: a }")
	expectNoProblems(t, out)
	rec := out.Expr.Data.(LetNonRecData).Body.Data.(RecordData)
	if rec.Fields[0].Value.Kind != ExprVar || rec.Fields[0].Name != "a" {
		t.Fatalf("punned field %+v", rec.Fields[0])
	}
}

func TestWhenAlternativesShareSymbols(t *testing.T) {
	out := canon(t, "when Ok 1 is\n    Ok v | Err v -> v\n    _ -> 0")
	expectNoProblems(t, out)
	br := out.Expr.Data.(WhenData).Branches[0]
	first := br.Patterns[0].Symbols()[0]
	second := br.Patterns[1].Symbols()[0]
	if first != second {
		t.Fatalf("alternatives bind %s and %s", first, second)
	}
	if br.Value.Data.(VarData).Symbol != first {
		t.Fatalf("branch value does not refer to the bound symbol")
	}
}

func TestBranchNamesDoNotLeak(t *testing.T) {
	out := canon(t, "r = when 1 is\n    v -> v\n\nv")
	expectProblems(t, out, diag.SemaLookupNotInScope, diag.SemaUnusedDef)
}

func TestClosureParamsAndCaptures(t *testing.T) {
	out := canon(t, `base = 10

add = \a, b -> a + b + base

add 1 2`)
	expectNoProblems(t, out)
	cl := closureOf(t, defNamed(t, out, "add"))
	if len(cl.Params) != 2 {
		t.Fatalf("params %d", len(cl.Params))
	}
	for _, p := range cl.Params {
		sym := p.Symbols()[0]
		if out.Interner.Info(sym).Kind != symbols.SymbolParam {
			t.Fatalf("param %s kind %s", out.SymbolName(sym), out.Interner.Info(sym).Kind)
		}
	}
	if len(cl.Captured) != 1 || out.SymbolName(cl.Captured[0]) != "base" {
		t.Fatalf("captured %v", cl.Captured)
	}
	if cl.Recursive != NotRecursive {
		t.Fatalf("add is %s", cl.Recursive)
	}
}

func TestDuplicateParamShadows(t *testing.T) {
	out := canon(t, `\a, a -> a`)
	expectProblems(t, out, diag.SemaShadowing)
}

func TestAnonymousClosureHasNoName(t *testing.T) {
	out := canon(t, `\x -> x`)
	expectNoProblems(t, out)
	cl, ok := out.Expr.Closure()
	if !ok || cl.Name.IsValid() || cl.Recursive != NotRecursive {
		t.Fatalf("closure %+v", cl)
	}
}

func TestEnvReporterSeesProblems(t *testing.T) {
	env := NewEnv("Test")
	bag := diag.NewBag()
	env.Reporter = bag
	res := parser.ParseSource("test.roc", "y")
	out := Canonicalize(context.Background(), env, res.Expr)
	if bag.Len() != 1 || len(out.Problems) != 1 {
		t.Fatalf("reporter %d, output %d", bag.Len(), len(out.Problems))
	}
}

func TestFreshSymbolsPerBinding(t *testing.T) {
	out := canon(t, "f = \\x -> x\ng = \\x -> x\n\nf (g 1)")
	expectNoProblems(t, out)
	fx := closureOf(t, defNamed(t, out, "f")).Params[0].Symbols()[0]
	gx := closureOf(t, defNamed(t, out, "g")).Params[0].Symbols()[0]
	if fx == gx {
		t.Fatalf("both params share %s", fx)
	}
}
