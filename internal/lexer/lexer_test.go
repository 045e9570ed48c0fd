package lexer

import (
	"testing"

	"canon/internal/diag"
	"canon/internal/source"
	"canon/internal/testkit"
	"canon/internal/token"
)

type collected struct {
	codes []diag.Code
}

func (c *collected) Report(code diag.Code, _ source.Region, _ string) {
	c.codes = append(c.codes, code)
}

func lex(t *testing.T, src string) ([]token.Token, []diag.Code) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.roc", []byte(src))
	var rep collected
	toks := Tokenize(fs.Get(id), Options{Reporter: &rep})
	return toks, rep.codes
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func expectKinds(t *testing.T, src string, want ...token.Kind) []token.Token {
	t.Helper()
	toks, errs := lex(t, src)
	if len(errs) != 0 {
		t.Fatalf("%q: unexpected lex errors %v", src, errs)
	}
	want = append(want, token.EOF)
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v, want %v (all: %v)", src, i, got[i], want[i], got)
		}
	}
	return toks
}

func TestIdentifiersAndKeywords(t *testing.T) {
	toks := expectKinds(t, "when x is Ok _ -> if y then z else w",
		token.KwWhen, token.Ident, token.KwIs, token.UpperIdent, token.Underscore, token.Arrow,
		token.KwIf, token.Ident, token.KwThen, token.Ident, token.KwElse, token.Ident)
	if toks[3].Text != "Ok" {
		t.Fatalf("tag text = %q", toks[3].Text)
	}
}

func TestNegativeNumberRules(t *testing.T) {
	toks := expectKinds(t, "x = -5", token.Ident, token.Assign, token.NumberLit)
	if toks[2].Text != "-5" {
		t.Fatalf("want signed literal, got %q", toks[2].Text)
	}
	expectKinds(t, "x-1", token.Ident, token.Minus, token.NumberLit)
	expectKinds(t, "x - 1", token.Ident, token.Minus, token.NumberLit)
	toks = expectKinds(t, "f -1", token.Ident, token.NumberLit)
	if toks[1].Text != "-1" {
		t.Fatalf("f -1 should pass a negative literal, got %q", toks[1].Text)
	}
}

func TestPrefixOperators(t *testing.T) {
	toks := expectKinds(t, "-x", token.Minus, token.Ident)
	if !toks[0].Prefix {
		t.Fatalf("leading minus should be prefix")
	}
	toks = expectKinds(t, "a - b", token.Ident, token.Minus, token.Ident)
	if toks[1].Prefix {
		t.Fatalf("spaced minus should be infix")
	}
	toks = expectKinds(t, "f !b", token.Ident, token.Bang, token.Ident)
	if !toks[1].Prefix {
		t.Fatalf("glued bang after a space should be prefix")
	}
}

func TestNumberShapes(t *testing.T) {
	for _, src := range []string{"0x1F", "0b101", "0o17", "1_000", "3.14", "1e10", "2.5e-3", "12abc"} {
		toks := expectKinds(t, src, token.NumberLit)
		if toks[0].Text != src {
			t.Fatalf("%q lexed as %q", src, toks[0].Text)
		}
	}
}

func TestStringKeepsRawBody(t *testing.T) {
	toks := expectKinds(t, `"a\"b\u(00A0)"`, token.StringLit)
	if toks[0].Text != `a\"b\u(00A0)` {
		t.Fatalf("raw body = %q", toks[0].Text)
	}
	if got := toks[0].Region.Tuple(); got != [4]uint32{0, 0, 0, 14} {
		t.Fatalf("region = %v", got)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, errs := lex(t, "\"abc\nx")
	if len(errs) != 1 || errs[0] != diag.LexUnterminatedString {
		t.Fatalf("errs = %v", errs)
	}
}

func TestCommentsAreTrivia(t *testing.T) {
	toks := expectKinds(t, "x # comment\n# another\ny", token.Ident, token.Ident)
	if !toks[1].SpaceBefore || toks[1].Line() != 2 {
		t.Fatalf("second ident: line %d space %v", toks[1].Line(), toks[1].SpaceBefore)
	}
}

func TestTabsAndUnknownChars(t *testing.T) {
	_, errs := lex(t, "\tx @")
	if len(errs) != 2 || errs[0] != diag.LexBadIndent || errs[1] != diag.LexUnknownChar {
		t.Fatalf("errs = %v", errs)
	}
}

func TestOperators(t *testing.T) {
	expectKinds(t, "a // b == c != d <= e >= f && g || h",
		token.Ident, token.SlashSl, token.Ident, token.EqEq, token.Ident, token.BangEq, token.Ident,
		token.LtEq, token.Ident, token.GtEq, token.Ident, token.AndAnd, token.Ident, token.OrOr, token.Ident)
	expectKinds(t, `\x, y -> { a: x, b ? y }`,
		token.Lambda, token.Ident, token.Comma, token.Ident, token.Arrow, token.LBrace, token.Ident,
		token.Colon, token.Ident, token.Comma, token.Ident, token.Question, token.Ident, token.RBrace)
}

func TestRegionsAreZeroBased(t *testing.T) {
	toks := expectKinds(t, "x = x", token.Ident, token.Assign, token.Ident)
	if got := toks[0].Region.Tuple(); got != [4]uint32{0, 0, 0, 1} {
		t.Fatalf("pattern region = %v", got)
	}
	if got := toks[2].Region.Tuple(); got != [4]uint32{0, 0, 4, 5} {
		t.Fatalf("expr region = %v", got)
	}
}

func TestTokenStreamInvariants(t *testing.T) {
	for _, src := range []string{
		"",
		"x = 1\n\nx\n",
		"f = \\a, b ->\n    a + b # sum\n\nf -1 2",
		"\"unterminated\nnext",
		"\t@ $ 0x1F 1.5e3 r.field",
		"when x is\n    A | B -> 1\n    _ -> 2",
	} {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("test.roc", []byte(src)))
		toks := Tokenize(file, Options{Reporter: &collected{}})
		if err := testkit.CheckTokenInvariants(toks, file); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}
