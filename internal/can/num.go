package can

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"canon/internal/ast"
	"canon/internal/diag"
	"canon/internal/source"
)

var (
	minInt64 = big.NewInt(math.MinInt64)
	maxInt64 = big.NewInt(math.MaxInt64)
)

func (c *canonicalizer) number(n ast.NumData, region source.Region) *Expr {
	if n.IsFloat() {
		v, err := parseFloat(n, region)
		if err != nil {
			c.report(err)
			return runtimeError(err, region)
		}
		return &Expr{Kind: ExprFloat, Region: region, Data: FloatData{Value: v}}
	}
	v, err := parseInt(n, region)
	if err != nil {
		c.report(err)
		return runtimeError(err, region)
	}
	if n.Base == ast.BaseDecimal {
		return &Expr{Kind: ExprNum, Region: region, Data: NumData{Value: v}}
	}
	return &Expr{Kind: ExprInt, Region: region, Data: IntData{Value: v, Base: n.Base}}
}

// numberPattern validates a literal pattern the same way as an expression.
func (c *canonicalizer) numberPattern(n ast.NumData, region source.Region) *Pattern {
	if n.IsFloat() {
		v, err := parseFloat(n, region)
		if err != nil {
			c.report(err)
			return &Pattern{Kind: PatMalformed, Region: region, Data: MalformedPattern{Err: err}}
		}
		return &Pattern{Kind: PatFloat, Region: region, Data: FloatPattern{Value: v}}
	}
	v, err := parseInt(n, region)
	if err != nil {
		c.report(err)
		return &Pattern{Kind: PatMalformed, Region: region, Data: MalformedPattern{Err: err}}
	}
	kind := PatInt
	if n.Base == ast.BaseDecimal {
		kind = PatNum
	}
	return &Pattern{Kind: kind, Region: region, Data: IntPattern{Value: v, Base: n.Base}}
}

// parseInt checks the digits against the radix and the result against the
// 64-bit signed range. The sign is part of the value, so the most negative
// number of every base is accepted.
func parseInt(n ast.NumData, region source.Region) (int64, *diag.InvalidInt) {
	fail := func(kind diag.IntErrorKind) (int64, *diag.InvalidInt) {
		return 0, &diag.InvalidInt{Kind: kind, Base: n.Base, At: region, Text: n.Raw}
	}
	digits := strings.ReplaceAll(n.Digits, "_", "")
	if digits == "" {
		return fail(diag.IntEmpty)
	}
	radix := radixOf(n.Base)
	for i := 0; i < len(digits); i++ {
		if digitValue(digits[i]) >= radix {
			return fail(diag.IntInvalidDigit)
		}
	}
	v, ok := new(big.Int).SetString(digits, radix)
	if !ok {
		return fail(diag.IntInvalidDigit)
	}
	if n.Negative {
		v.Neg(v)
	}
	switch {
	case v.Cmp(maxInt64) > 0:
		return fail(diag.IntOverflow)
	case v.Cmp(minInt64) < 0:
		return fail(diag.IntUnderflow)
	}
	return v.Int64(), nil
}

// parseFloat accepts anything that rounds to a finite float64; values too
// small to represent become zero.
func parseFloat(n ast.NumData, region source.Region) (float64, *diag.InvalidFloat) {
	text := strings.ReplaceAll(n.Digits, "_", "")
	if n.Negative {
		text = "-" + text
	}
	v, err := strconv.ParseFloat(text, 64)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		switch {
		case math.IsInf(v, 1):
			return 0, &diag.InvalidFloat{Kind: diag.FloatPositiveInfinity, At: region, Text: n.Raw}
		case math.IsInf(v, -1):
			return 0, &diag.InvalidFloat{Kind: diag.FloatNegativeInfinity, At: region, Text: n.Raw}
		default:
			return v, nil
		}
	}
	return 0, &diag.InvalidFloat{Kind: diag.FloatMalformed, At: region, Text: n.Raw}
}

func radixOf(b ast.Base) int {
	switch b {
	case ast.BaseHex:
		return 16
	case ast.BaseOctal:
		return 8
	case ast.BaseBinary:
		return 2
	default:
		return 10
	}
}

func digitValue(ch byte) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'z':
		return int(ch-'a') + 10
	case 'A' <= ch && ch <= 'Z':
		return int(ch-'A') + 10
	default:
		return math.MaxInt8
	}
}
