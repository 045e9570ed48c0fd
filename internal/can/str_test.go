package can

import (
	"testing"

	"canon/internal/diag"
	"canon/internal/source"
)

func TestDecodeString(t *testing.T) {
	for _, tc := range []struct {
		raw, want string
	}{
		{`plain`, "plain"},
		{`a\nb\tc\rd`, "a\nb\tc\rd"},
		{`\"quoted\"`, `"quoted"`},
		{`back\\slash`, `back\slash`},
		{`\$(x)`, "$(x)"},
		{`\u(41)\u(e9)`, "Aé"},
		{`\u(1F600)`, "\U0001F600"},
		{`\u(10FFFF)`, "\U0010FFFF"},
	} {
		got, errs := decodeString(tc.raw, source.Region{})
		if len(errs) != 0 {
			t.Fatalf("%s: errors %+v", tc.raw, errs)
		}
		if got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestDecodeStringErrors(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		kind diag.EscapeErrorKind
		text string
	}{
		{`\q`, diag.EscapeUnknown, `\q`},
		{`ab\`, diag.EscapeUnknown, `\`},
		{`\u41`, diag.EscapeMalformedUnicode, `\u`},
		{`\u()`, diag.EscapeMalformedUnicode, `\u()`},
		{`\u(zz)`, diag.EscapeMalformedUnicode, `\u(zz)`},
		{`\u(1234567)`, diag.EscapeMalformedUnicode, `\u(1234567)`},
		{`\u(12`, diag.EscapeMalformedUnicode, `\u(12`},
		{`\u(D800)`, diag.EscapeInvalidCodePoint, `\u(D800)`},
		{`\u(110000)`, diag.EscapeInvalidCodePoint, `\u(110000)`},
	} {
		_, errs := decodeString(tc.raw, source.Region{})
		if len(errs) != 1 {
			t.Fatalf("%s: %d errors", tc.raw, len(errs))
		}
		if errs[0].Kind != tc.kind || errs[0].Text != tc.text {
			t.Fatalf("%s: got %s %q, want %s %q", tc.raw, errs[0].Kind, errs[0].Text, tc.kind, tc.text)
		}
	}
}

func TestEscapeRegionPointsAtEscape(t *testing.T) {
	out := canon(t, `x = "ab\qc"`+"\n\nx")
	expectProblems(t, out, diag.SemaInvalidStringEscape)
	p := out.Problems[0].(*diag.InvalidStringEscape)
	// the literal starts at column 4; its body at column 5
	want := source.Region{StartLine: 0, EndLine: 0, StartCol: 7, EndCol: 9}
	if p.At != want {
		t.Fatalf("escape region %s, want %s", p.At, want)
	}
	def := defNamed(t, out, "x")
	if def.Expr.Kind != ExprRuntimeError {
		t.Fatalf("x = %s", def.Expr.Kind)
	}
}

func TestEveryBadEscapeIsReported(t *testing.T) {
	out := canon(t, `"\q and \w"`)
	expectProblems(t, out, diag.SemaInvalidStringEscape, diag.SemaInvalidStringEscape)
	if err, _ := out.Expr.RuntimeErr(); err != out.Problems[0] {
		t.Fatalf("runtime error should carry the first escape")
	}
}

func TestStringPattern(t *testing.T) {
	out := canon(t, "when \"a\" is\n    \"a\\n\" -> 1\n    _ -> 0")
	expectNoProblems(t, out)
	pat := out.Expr.Data.(WhenData).Branches[0].Patterns[0]
	if pat.Kind != PatStr || pat.Data.(StrPattern).Value != "a\n" {
		t.Fatalf("pattern %s %+v", pat.Kind, pat.Data)
	}
}
