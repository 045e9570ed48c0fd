package can

import (
	"testing"

	"canon/internal/dag"
	"canon/internal/diag"
	"canon/internal/source"
	"canon/internal/symbols"
)

func TestCorrectAnnotatedBody(t *testing.T) {
	for _, src := range []string{
		"f : I64 -> I64\nf = \\a -> a\n\nf",
		"f : I64 -> I64 # comment\nf = \\a -> a\n\nf",
	} {
		out := canon(t, src)
		expectNoProblems(t, out)
		def := defNamed(t, out, "f")
		if def.Annotation == nil {
			t.Fatalf("%q: annotation not attached", src)
		}
		sig := def.Annotation.Signature.Data.(FunctionType)
		if len(sig.Args) != 1 || sig.Ret.Data.(ApplyType).Name != "I64" {
			t.Fatalf("%q: signature %+v", src, sig)
		}
		if want := (source.Region{StartLine: 0, EndLine: 1, StartCol: 0, EndCol: 11}); def.Region != want {
			t.Fatalf("%q: def region %s, want %s", src, def.Region, want)
		}
	}
}

func TestNameMismatchAnnotatedBody(t *testing.T) {
	for _, src := range []string{
		"f : I64 -> I64\ng = \\a -> a\n\ng",
		"f : I64 -> I64 # comment\ng = \\a -> a\n\ng",
	} {
		out := canon(t, src)
		expectProblems(t, out, diag.SemaSignatureDefMismatch, diag.SemaLookupNotInScope)
		p := out.Problems[0].(*diag.SignatureDefMismatch)
		if p.AnnotationName != "f" || p.DefName != "g" {
			t.Fatalf("%q: mismatch %+v", src, p)
		}
		if p.DefRegion != (source.Region{StartLine: 1, EndLine: 1, StartCol: 0, EndCol: 1}) {
			t.Fatalf("%q: def region %s", src, p.DefRegion)
		}
	}
}

func TestSeparatedAnnotatedBody(t *testing.T) {
	for _, src := range []string{
		"f : I64 -> I64\n\nf = \\a -> a\n\nf 42",
		"f : I64 -> I64\n# comment\nf = \\a -> a\n\nf 42",
	} {
		out := canon(t, src)
		expectProblems(t, out, diag.SemaShadowing)
		p := out.Problems[0].(*diag.Shadowing)
		if p.Name != "f" || p.OriginalRegion.StartLine != 0 || p.ShadowRegion.StartLine != 2 {
			t.Fatalf("%q: shadowing %+v", src, p)
		}
	}
}

func TestShadowedAnnotation(t *testing.T) {
	out := canon(t, "f : I64 -> I64\n\nf : I64 -> I64\n\nf")
	expectProblems(t, out, diag.SemaShadowing)
	// the surviving annotation has no body
	body := out.Expr
	for body.Kind == ExprLetNonRec {
		body = body.Data.(LetNonRecData).Body
	}
	sym := body.Data.(VarData).Symbol
	if out.Interner.Info(sym).Kind != symbols.SymbolAnnotation {
		t.Fatalf("body refers to a %s", out.Interner.Info(sym).Kind)
	}
	def := defNamed(t, out, "f")
	if err, ok := def.Expr.RuntimeErr(); !ok {
		t.Fatalf("annotation body is %s", def.Expr.Kind)
	} else if _, ok := err.(*diag.NoImplementation); !ok {
		t.Fatalf("annotation body error %T", err)
	}
}

func TestNestedAnnotatedBodies(t *testing.T) {
	for _, src := range []string{
		"f : I64\nf =\n    g = 42\n\n    g + 1\n\nf",
		"f : I64 -> I64\nf = \\x ->\n    g : I64\n    g = x\n\n    g + 1\n\nf 1",
		"f : I64\nf =\n    g : I64\n    g = 42\n\n    h : I64\n    h = 5\n\n    z = 4\n\n    g + h + z\n\nf",
	} {
		out := canon(t, src)
		expectNoProblems(t, out)
	}
}

func TestAliasAnnotationsUnused(t *testing.T) {
	out := canon(t, "F : I64\n\nx = 1\n\nx")
	expectProblems(t, out, diag.SemaUnusedDef)
	p := out.Problems[0].(*diag.UnusedDef)
	if out.SymbolName(p.Symbol) != "F" || out.Interner.Info(p.Symbol).Kind != symbols.SymbolAlias {
		t.Fatalf("unused %s", out.SymbolName(p.Symbol))
	}
	if len(out.Aliases) != 1 {
		t.Fatalf("aliases %d", len(out.Aliases))
	}

	out = canon(t, "G : I64\n\nF : I64\n\nx = 1\n\nx")
	expectProblems(t, out, diag.SemaUnusedDef, diag.SemaUnusedDef)
	if out.SymbolName(out.Problems[0].(*diag.UnusedDef).Symbol) != "G" {
		t.Fatalf("first unused should be G")
	}
}

func TestStandaloneAnnotationsUnused(t *testing.T) {
	out := canon(t, "f : I64\n\ng : I64\n\nx = 1\n\nx")
	expectProblems(t, out, diag.SemaUnusedDef, diag.SemaUnusedDef)
	for i, name := range []string{"f", "g"} {
		sym := out.Problems[i].(*diag.UnusedDef).Symbol
		if out.SymbolName(sym) != name || out.Interner.Info(sym).Kind != symbols.SymbolAnnotation {
			t.Fatalf("unused %d is %s", i, out.SymbolName(sym))
		}
	}
}

func TestAnnotatedDefReferencesStillCount(t *testing.T) {
	out := canon(t, `Booly : [ Yes, No, Maybe ]

y : Booly
y = No

# annotating a def must not hide its references
x : List Booly
x = [ y ]

x`)
	expectNoProblems(t, out)
	x := defNamed(t, out, "x")
	sig := x.Annotation.Signature.Data.(ApplyType)
	if sig.Name != "List" || sig.Symbol.IsValid() {
		t.Fatalf("List resolved to %+v", sig)
	}
	arg := sig.Args[0].Data.(ApplyType)
	if out.SymbolName(arg.Symbol) != "Booly" {
		t.Fatalf("Booly resolved to %+v", arg)
	}
}

func TestUnknownTypeInAnnotation(t *testing.T) {
	out := canon(t, "x : Nope\nx = 1\n\nx")
	expectProblems(t, out, diag.SemaLookupNotInScope)
	if k := defNamed(t, out, "x").Annotation.Signature.Kind; k != TypeErroneous {
		t.Fatalf("signature kind %s", k)
	}
}

func TestTypeVariablesAreShared(t *testing.T) {
	out := canon(t, "id : a -> a\nid = \\v -> v\n\nid 1")
	expectNoProblems(t, out)
	ann := defNamed(t, out, "id").Annotation
	if len(ann.FreeVars) != 1 || ann.FreeVars[0].Name != "a" {
		t.Fatalf("free vars %+v", ann.FreeVars)
	}
	fn := ann.Signature.Data.(FunctionType)
	if fn.Args[0].Data.(VarType).Var != fn.Ret.Data.(VarType).Var {
		t.Fatalf("a is two different variables")
	}
	if out.Vars.Len() != 1 || len(out.FreeVars) != 1 {
		t.Fatalf("var store %d, free vars %d", out.Vars.Len(), len(out.FreeVars))
	}
}

func TestInvalidSelfRecursion(t *testing.T) {
	out := canon(t, "x = x\n\nx")
	expectProblems(t, out, diag.SemaCircularDef)
	p := out.Problems[0].(*diag.CircularDef)
	if len(p.Symbols) != 1 || out.SymbolName(p.Symbols[0]) != "x" {
		t.Fatalf("symbols %v", p.Symbols)
	}
	want := []diag.RegionPair{{
		Pattern: source.Region{StartLine: 0, EndLine: 0, StartCol: 0, EndCol: 1},
		Expr:    source.Region{StartLine: 0, EndLine: 0, StartCol: 4, EndCol: 5},
	}}
	if len(p.Regions) != 1 || p.Regions[0] != want[0] {
		t.Fatalf("regions %+v, want %+v", p.Regions, want)
	}
	err, ok := out.Expr.RuntimeErr()
	if !ok || err != p {
		t.Fatalf("block is %s, want the circular runtime error", out.Expr.Kind)
	}
}

func TestInvalidMutualRecursion(t *testing.T) {
	out := canon(t, "x = y\ny = z\nz = x\n\nx")
	expectProblems(t, out, diag.SemaCircularDef)
	p := out.Problems[0].(*diag.CircularDef)
	names := []string{"x", "y", "z"}
	if len(p.Symbols) != 3 {
		t.Fatalf("symbols %v", p.Symbols)
	}
	for i, sym := range p.Symbols {
		if out.SymbolName(sym) != names[i] {
			t.Fatalf("cycle member %d is %s", i, out.SymbolName(sym))
		}
		line := uint32(i)
		pair := p.Regions[i]
		if pair.Pattern != (source.Region{StartLine: line, EndLine: line, StartCol: 0, EndCol: 1}) ||
			pair.Expr != (source.Region{StartLine: line, EndLine: line, StartCol: 4, EndCol: 5}) {
			t.Fatalf("regions of %s: %+v", names[i], pair)
		}
	}
	if out.Expr.Kind != ExprRuntimeError {
		t.Fatalf("block is %s", out.Expr.Kind)
	}
}

func TestCircularMembersBecomeRuntimeErrors(t *testing.T) {
	in := symbols.NewInterner(source.NewInterner())
	home := in.RegisterModule("Test")
	c := &canonicalizer{in: in, bag: diag.NewBag()}
	var values []*binding
	for i, name := range []string{"a", "b"} {
		line := uint32(i)
		at := source.Region{StartLine: line, EndLine: line, StartCol: 0, EndCol: 1}
		rhs := source.Region{StartLine: line, EndLine: line, StartCol: 4, EndCol: 5}
		sym := in.NewSymbol(home, name, symbols.SymbolValue, at, 0)
		pat := &Pattern{Kind: PatIdentifier, Region: at, Data: IdentifierPattern{Symbol: sym}}
		def := &Def{Pattern: pat, PatternRegion: at, ExprRegion: rhs, Expr: &Expr{Kind: ExprVar, Region: rhs}}
		values = append(values, &binding{pattern: pat, def: def})
	}
	p := c.circular(values, dag.Component{Nodes: []dag.NodeID{0, 1}, Recursive: true})
	if len(p.Symbols) != 2 || c.bag.Len() != 1 {
		t.Fatalf("symbols %v, reported %d", p.Symbols, c.bag.Len())
	}
	for i, v := range values {
		err, ok := v.def.Expr.RuntimeErr()
		if !ok || err != p {
			t.Fatalf("member %d is %s, want the circular runtime error", i, v.def.Expr.Kind)
		}
		if v.def.Expr.Region != v.def.ExprRegion {
			t.Fatalf("member %d region %+v", i, v.def.Expr.Region)
		}
	}
}

func TestCircularReportedAfterBody(t *testing.T) {
	out := canon(t, "x = x\n\nx + z")
	expectProblems(t, out, diag.SemaLookupNotInScope, diag.SemaCircularDef)
}

func TestValidSelfRecursion(t *testing.T) {
	out := canon(t, "boom = \\_ -> boom {}\n\nboom")
	expectNoProblems(t, out)
	if out.Expr.Kind != ExprLetRec {
		t.Fatalf("block is %s", out.Expr.Kind)
	}
}

func TestCycleThroughValueAndClosure(t *testing.T) {
	out := canon(t, "f = \\_ -> v\nv = f {}\n\nv")
	expectProblems(t, out, diag.SemaCircularDef)
	if n := len(out.Problems[0].(*diag.CircularDef).Symbols); n != 2 {
		t.Fatalf("cycle of %d", n)
	}
}

func TestDefsAreOrderedByDependency(t *testing.T) {
	out := canon(t, "a = b + 1\nb = c + 1\nc = 1\n\na")
	expectNoProblems(t, out)
	var order []string
	for e := out.Expr; e.Kind == ExprLetNonRec; {
		let := e.Data.(LetNonRecData)
		order = append(order, out.SymbolName(let.Def.Symbols()[0]))
		e = let.Body
	}
	if len(order) != 3 || order[0] != "c" || order[1] != "b" || order[2] != "a" {
		t.Fatalf("order %v", order)
	}
}

func TestIndependentDefsKeepSourceOrder(t *testing.T) {
	out := canon(t, "q = 1\np = 2\nr = 3\n\nq + p + r")
	expectNoProblems(t, out)
	var order []string
	for e := out.Expr; e.Kind == ExprLetNonRec; {
		let := e.Data.(LetNonRecData)
		order = append(order, out.SymbolName(let.Def.Symbols()[0]))
		e = let.Body
	}
	if len(order) != 3 || order[0] != "q" || order[1] != "p" || order[2] != "r" {
		t.Fatalf("order %v", order)
	}
}

func TestUnusedDefsInSourceOrder(t *testing.T) {
	out := canon(t, "b = 1\na = 2\nc = 3\n\nc")
	expectProblems(t, out, diag.SemaUnusedDef, diag.SemaUnusedDef)
	first := out.Problems[0].(*diag.UnusedDef)
	second := out.Problems[1].(*diag.UnusedDef)
	if out.SymbolName(first.Symbol) != "b" || out.SymbolName(second.Symbol) != "a" {
		t.Fatalf("unused %s, %s", out.SymbolName(first.Symbol), out.SymbolName(second.Symbol))
	}
	if first.At != (source.Region{StartLine: 0, EndLine: 0, StartCol: 0, EndCol: 1}) {
		t.Fatalf("unused region %s", first.At)
	}
}

func TestSelfReferenceIsNotUse(t *testing.T) {
	out := canon(t, "loop = \\n -> loop n\n\n0")
	expectProblems(t, out, diag.SemaUnusedDef)
}

func TestDestructuringDef(t *testing.T) {
	out := canon(t, "{ a, b } = { a: 1, b: 2 }\n\na + b")
	expectNoProblems(t, out)
	def := out.Expr.Data.(LetNonRecData).Def
	if len(def.Symbols()) != 2 {
		t.Fatalf("pattern binds %d symbols", len(def.Symbols()))
	}
}

func TestInnerBlockShadowsOuterSilently(t *testing.T) {
	out := canon(t, "x = 1\ny =\n    x = 2\n\n    x\n\nx + y")
	expectNoProblems(t, out)
}

func TestRedefinitionInSameBlockShadows(t *testing.T) {
	out := canon(t, "x = 1\nx = 2\n\nx")
	expectProblems(t, out, diag.SemaShadowing)
}
