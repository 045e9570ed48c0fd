package diag

import (
	"strings"
	"testing"

	"canon/internal/ast"
	"canon/internal/source"
	"canon/internal/symbols"
)

type fakeNames map[symbols.Symbol]string

func (f fakeNames) SymbolName(sym symbols.Symbol) string { return f[sym] }

func reg(line, col, endCol uint32) source.Region {
	return source.Region{StartLine: line, EndLine: line, StartCol: col, EndCol: endCol}
}

func TestRenderCircularDef(t *testing.T) {
	x := symbols.Symbol{Module: 1, Index: 1}
	y := symbols.Symbol{Module: 1, Index: 2}
	names := fakeNames{x: "x", y: "y"}

	single := Render(&CircularDef{Symbols: []symbols.Symbol{x}, Regions: []RegionPair{{Pattern: reg(0, 0, 1), Expr: reg(0, 4, 5)}}}, names, 0)
	if single.Message != "`x` is defined directly in terms of itself" {
		t.Fatalf("message = %q", single.Message)
	}
	if single.Severity != SevError || single.Primary != reg(0, 0, 1) {
		t.Fatalf("diagnostic = %+v", single)
	}

	pair := Render(&CircularDef{
		Symbols: []symbols.Symbol{x, y},
		Regions: []RegionPair{{Pattern: reg(0, 0, 1)}, {Pattern: reg(1, 0, 1)}},
	}, names, 0)
	if pair.Message != "the definitions of `x` and `y` depend on each other" {
		t.Fatalf("message = %q", pair.Message)
	}
	if len(pair.Notes) != 1 || pair.Notes[0].Region != reg(1, 0, 1) {
		t.Fatalf("notes = %+v", pair.Notes)
	}
}

func TestRenderLookupSuggestions(t *testing.T) {
	d := Render(&LookupNotInScope{Name: "lenght", At: reg(2, 0, 6), InScope: []string{"length", "x", "lengths"}}, nil, 0)
	if d.Message != "`lenght` is not in scope" {
		t.Fatalf("message = %q", d.Message)
	}
	if len(d.Notes) != 1 || !strings.Contains(d.Notes[0].Msg, "`length`") {
		t.Fatalf("notes = %+v", d.Notes)
	}
	none := Render(&LookupNotInScope{Name: "zzz", At: reg(0, 0, 3), InScope: []string{"alpha"}}, nil, 0)
	if len(none.Notes) != 0 {
		t.Fatalf("unexpected notes %+v", none.Notes)
	}
}

func TestUnusedDefIsWarning(t *testing.T) {
	sym := symbols.Symbol{Module: 1, Index: 3}
	d := Render(&UnusedDef{Symbol: sym, At: reg(0, 0, 1)}, fakeNames{sym: "y"}, 0)
	if d.Severity != SevWarning || d.Message != "`y` is defined but never used" {
		t.Fatalf("diagnostic = %+v", d)
	}
}

func TestRuntimeErrorClassification(t *testing.T) {
	for _, tc := range []struct {
		p    Problem
		want bool
	}{
		{&Shadowing{}, true},
		{&SignatureDefMismatch{}, false},
		{&UnusedDef{}, false},
		{&InvalidInt{Base: ast.BaseHex}, true},
		{&CircularDef{}, true},
	} {
		if got := IsRuntimeError(tc.p); got != tc.want {
			t.Fatalf("%T: IsRuntimeError = %v", tc.p, got)
		}
	}
}

func TestShortFormatSortsByLocation(t *testing.T) {
	sym := symbols.Symbol{Module: 1, Index: 1}
	names := fakeNames{sym: "x"}
	problems := []Problem{
		&UnusedDef{Symbol: sym, At: reg(3, 2, 3)},
		&Shadowing{Name: "x", OriginalRegion: reg(0, 0, 1), ShadowRegion: reg(1, 0, 1)},
	}
	list := RenderAll(problems, names, 0, 0)
	got := FormatShortDiagnostics(list.Items(), nil, true)
	want := strings.Join([]string{
		"note SEM3001 -:1:1 `x` was first defined here",
		"error SEM3001 -:2:1 `x` is already defined in this scope",
		"warning SEM3004 -:4:3 `x` is defined but never used",
	}, "\n")
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestDiagnosticsCapAndDedup(t *testing.T) {
	list := NewDiagnostics(2)
	if list.Cap() != 2 {
		t.Fatalf("cap = %d", list.Cap())
	}
	d := Diagnostic{Severity: SevError, Code: SemaLookupNotInScope, Primary: reg(0, 0, 1)}
	if !list.Add(d) || !list.Add(d) {
		t.Fatalf("first two adds must succeed")
	}
	if list.Add(d) {
		t.Fatalf("cap exceeded")
	}
	list.Dedup()
	if list.Len() != 1 {
		t.Fatalf("dedup left %d", list.Len())
	}
}

func TestBagCounts(t *testing.T) {
	b := NewBag()
	b.Report(nil)
	b.Report(&UnusedDef{})
	if b.HasErrors() {
		t.Fatalf("unused def alone is not an error")
	}
	b.Report(&InvalidFloat{Kind: FloatPositiveInfinity})
	if !b.HasErrors() || b.Len() != 2 || b.Count(SemaInvalidFloat) != 1 {
		t.Fatalf("bag = %+v", b.Items())
	}
}
