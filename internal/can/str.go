package can

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"canon/internal/diag"
	"canon/internal/source"
)

var simpleEscapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'"':  '"',
	'\\': '\\',
	'$':  '$',
}

func (c *canonicalizer) str(raw string, region source.Region) *Expr {
	value, errs := decodeString(raw, region)
	if len(errs) > 0 {
		for _, err := range errs {
			c.report(err)
		}
		return runtimeError(errs[0], region)
	}
	return &Expr{Kind: ExprStr, Region: region, Data: StrData{Value: value}}
}

func (c *canonicalizer) strPattern(raw string, region source.Region) *Pattern {
	value, errs := decodeString(raw, region)
	if len(errs) > 0 {
		for _, err := range errs {
			c.report(err)
		}
		return &Pattern{Kind: PatMalformed, Region: region, Data: MalformedPattern{Err: errs[0]}}
	}
	return &Pattern{Kind: PatStr, Region: region, Data: StrPattern{Value: value}}
}

// decodeString resolves the escapes of a single-line literal body. region
// covers the literal with its quotes; every error points at the escape.
func decodeString(raw string, region source.Region) (string, []*diag.InvalidStringEscape) {
	if !strings.Contains(raw, `\`) {
		return raw, nil
	}
	var (
		b    strings.Builder
		errs []*diag.InvalidStringEscape
	)
	b.Grow(len(raw))
	fail := func(kind diag.EscapeErrorKind, start, end int) {
		at := source.Region{
			StartLine: region.StartLine,
			EndLine:   region.StartLine,
			StartCol:  region.StartCol + 1 + uint32(start),
			EndCol:    region.StartCol + 1 + uint32(end),
		}
		errs = append(errs, &diag.InvalidStringEscape{Kind: kind, At: at, Text: raw[start:end]})
	}

	for i := 0; i < len(raw); {
		if raw[i] != '\\' {
			b.WriteByte(raw[i])
			i++
			continue
		}
		start := i
		if i+1 >= len(raw) {
			fail(diag.EscapeUnknown, start, len(raw))
			break
		}
		ch := raw[i+1]
		if out, ok := simpleEscapes[ch]; ok {
			b.WriteByte(out)
			i += 2
			continue
		}
		if ch != 'u' {
			_, size := utf8.DecodeRuneInString(raw[i+1:])
			fail(diag.EscapeUnknown, start, i+1+size)
			i += 1 + size
			continue
		}
		end, r, kind := scanUnicodeEscape(raw, i)
		if kind != escapeOK {
			fail(kind.errorKind(), start, end)
		} else {
			b.WriteRune(r)
		}
		i = end
	}
	return b.String(), errs
}

type escapeResult uint8

const (
	escapeOK escapeResult = iota
	escapeMalformed
	escapeBadCodePoint
)

func (r escapeResult) errorKind() diag.EscapeErrorKind {
	if r == escapeBadCodePoint {
		return diag.EscapeInvalidCodePoint
	}
	return diag.EscapeMalformedUnicode
}

// scanUnicodeEscape reads `\u(XXXX)` starting at the backslash and returns
// the offset just past what was consumed.
func scanUnicodeEscape(raw string, at int) (int, rune, escapeResult) {
	i := at + 2
	if i >= len(raw) || raw[i] != '(' {
		return i, 0, escapeMalformed
	}
	rparen := strings.IndexByte(raw[i:], ')')
	if rparen < 0 {
		return len(raw), 0, escapeMalformed
	}
	end := i + rparen + 1
	hex := raw[i+1 : i+rparen]
	if len(hex) == 0 || len(hex) > 6 {
		return end, 0, escapeMalformed
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return end, 0, escapeMalformed
	}
	r := rune(v)
	if r > utf8.MaxRune || (0xD800 <= r && r <= 0xDFFF) {
		return end, 0, escapeBadCodePoint
	}
	return end, r, escapeOK
}
