package can

import (
	"math"
	"strconv"
	"testing"

	"canon/internal/ast"
	"canon/internal/diag"
	"canon/internal/source"
)

func TestIntLiterals(t *testing.T) {
	for _, tc := range []struct {
		src  string
		kind ExprKind
		want int64
		base ast.Base
	}{
		{"42", ExprNum, 42, ast.BaseDecimal},
		{"-0", ExprNum, 0, ast.BaseDecimal},
		{"1_000_000", ExprNum, 1000000, ast.BaseDecimal},
		{"9223372036854775807", ExprNum, math.MaxInt64, ast.BaseDecimal},
		{"-9223372036854775808", ExprNum, math.MinInt64, ast.BaseDecimal},
		{"0x1b", ExprInt, 0x1b, ast.BaseHex},
		{"-0x1b", ExprInt, -0x1b, ast.BaseHex},
		{"0o12", ExprInt, 10, ast.BaseOctal},
		{"-0o12", ExprInt, -10, ast.BaseOctal},
		{"0b11", ExprInt, 3, ast.BaseBinary},
		{"-0b11", ExprInt, -3, ast.BaseBinary},
		{"0x7fffffffffffffff", ExprInt, math.MaxInt64, ast.BaseHex},
		{"-0x8000000000000000", ExprInt, math.MinInt64, ast.BaseHex},
		{"0o777777777777777777777", ExprInt, math.MaxInt64, ast.BaseOctal},
		{"-0b1000000000000000000000000000000000000000000000000000000000000000", ExprInt, math.MinInt64, ast.BaseBinary},
	} {
		out := canon(t, tc.src)
		expectNoProblems(t, out)
		if out.Expr.Kind != tc.kind {
			t.Fatalf("%s: kind %s, want %s", tc.src, out.Expr.Kind, tc.kind)
		}
		var got int64
		switch data := out.Expr.Data.(type) {
		case NumData:
			got = data.Value
		case IntData:
			got = data.Value
			if data.Base != tc.base {
				t.Fatalf("%s: base %s, want %s", tc.src, data.Base, tc.base)
			}
		}
		if got != tc.want {
			t.Fatalf("%s: value %d, want %d", tc.src, got, tc.want)
		}
	}
}

func TestIntOutOfRange(t *testing.T) {
	for _, tc := range []struct {
		src  string
		kind diag.IntErrorKind
	}{
		{"9223372036854775808", diag.IntOverflow},
		{"-9223372036854775809", diag.IntUnderflow},
		{"0x8000000000000000", diag.IntOverflow},
		{"-0x8000000000000001", diag.IntUnderflow},
		{"0b10000000000000000000000000000000000000000000000000000000000000000", diag.IntOverflow},
		{"0o1000000000000000000000", diag.IntOverflow},
	} {
		out := canon(t, tc.src)
		expectProblems(t, out, diag.SemaInvalidInt)
		p := out.Problems[0].(*diag.InvalidInt)
		if p.Kind != tc.kind || p.Text != tc.src {
			t.Fatalf("%s: got %+v", tc.src, p)
		}
		if err, ok := out.Expr.RuntimeErr(); !ok || err != p {
			t.Fatalf("%s: expression is %s, want the reported runtime error", tc.src, out.Expr.Kind)
		}
	}
}

func TestParseIntDigits(t *testing.T) {
	for _, tc := range []struct {
		n    ast.NumData
		kind diag.IntErrorKind
	}{
		{ast.NumData{Base: ast.BaseHex, Digits: ""}, diag.IntEmpty},
		{ast.NumData{Base: ast.BaseBinary, Digits: "102"}, diag.IntInvalidDigit},
		{ast.NumData{Base: ast.BaseOctal, Digits: "8"}, diag.IntInvalidDigit},
		{ast.NumData{Base: ast.BaseDecimal, Digits: "12a"}, diag.IntInvalidDigit},
		{ast.NumData{Base: ast.BaseHex, Digits: "_"}, diag.IntEmpty},
	} {
		_, err := parseInt(tc.n, source.Region{})
		if err == nil || err.Kind != tc.kind {
			t.Fatalf("%+v: got %+v, want %s", tc.n, err, tc.kind)
		}
	}
}

func TestFloatLiterals(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want float64
	}{
		{"1.5", 1.5},
		{"-1.5", -1.5},
		{"0.000_001", 0.000001},
		{"1e3", 1000},
		{"2.5E-3", 0.0025},
	} {
		out := canon(t, tc.src)
		expectNoProblems(t, out)
		data, ok := out.Expr.Data.(FloatData)
		if !ok || data.Value != tc.want {
			t.Fatalf("%s: got %s %+v", tc.src, out.Expr.Kind, out.Expr.Data)
		}
	}
}

func TestNegativeZeroFloat(t *testing.T) {
	out := canon(t, "-0.0")
	expectNoProblems(t, out)
	data := out.Expr.Data.(FloatData)
	if data.Value != 0 || !math.Signbit(data.Value) {
		t.Fatalf("-0.0 = %v (signbit %v)", data.Value, math.Signbit(data.Value))
	}
}

func TestFloatInfinity(t *testing.T) {
	huge := strconv.FormatFloat(math.MaxFloat64, 'f', -1, 64) + "1.0"
	for _, tc := range []struct {
		src  string
		kind diag.FloatErrorKind
	}{
		{huge, diag.FloatPositiveInfinity},
		{"-" + huge, diag.FloatNegativeInfinity},
	} {
		out := canon(t, tc.src)
		expectProblems(t, out, diag.SemaInvalidFloat)
		if p := out.Problems[0].(*diag.InvalidFloat); p.Kind != tc.kind {
			t.Fatalf("kind %s, want %s", p.Kind, tc.kind)
		}
		if out.Expr.Kind != ExprRuntimeError {
			t.Fatalf("expression is %s", out.Expr.Kind)
		}
	}
}

func TestFloatUnderflowIsZero(t *testing.T) {
	v, err := parseFloat(ast.NumData{Digits: "1e-400", Raw: "1e-400"}, source.Region{})
	if err != nil || v != 0 {
		t.Fatalf("1e-400 = %v, %+v", v, err)
	}
}

func TestNumberPatterns(t *testing.T) {
	out := canon(t, "when x is\n    0x10 -> 1\n    -2 -> 2\n    1.5 -> 3\n    99999999999999999999 -> 4\n    _ -> 5")
	// x is not in scope; the overflowing pattern is reported too
	expectProblems(t, out, diag.SemaLookupNotInScope, diag.SemaInvalidInt)
	when := out.Expr.Data.(WhenData)
	kinds := []PatternKind{PatInt, PatNum, PatFloat, PatMalformed, PatUnderscore}
	for i, br := range when.Branches {
		if br.Patterns[0].Kind != kinds[i] {
			t.Fatalf("branch %d pattern %s, want %s", i, br.Patterns[0].Kind, kinds[i])
		}
	}
	if v := when.Branches[1].Patterns[0].Data.(IntPattern).Value; v != -2 {
		t.Fatalf("negative pattern = %d", v)
	}
}
