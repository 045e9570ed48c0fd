package diag

import (
	"fmt"
	"strings"

	"canon/internal/source"
	"canon/internal/symbols"
)

// SymbolNamer maps symbols back to display names; *symbols.Interner implements it.
type SymbolNamer interface {
	SymbolName(sym symbols.Symbol) string
}

// Render turns a problem into a diagnostic located in file.
func Render(p Problem, names SymbolNamer, file source.FileID) Diagnostic {
	d := Diagnostic{
		Severity: SeverityOf(p),
		Code:     p.Code(),
		File:     file,
		Primary:  p.Region(),
	}
	switch p := p.(type) {
	case *Shadowing:
		d.Message = fmt.Sprintf("`%s` is already defined in this scope", p.Name)
		d = d.WithNote(p.OriginalRegion, fmt.Sprintf("`%s` was first defined here", p.Name))
	case *SignatureDefMismatch:
		d.Message = fmt.Sprintf("the annotation for `%s` is followed by a definition of `%s`", p.AnnotationName, p.DefName)
		d = d.WithNote(p.AnnotationRegion, "annotation is here")
	case *LookupNotInScope:
		d.Message = fmt.Sprintf("`%s` is not in scope", p.Name)
		if near := similarNames(p.Name, p.InScope, 3); len(near) > 0 {
			d = d.WithNote(p.At, "did you mean "+quoteList(near)+"?")
		}
	case *UnusedDef:
		d.Message = fmt.Sprintf("`%s` is defined but never used", names.SymbolName(p.Symbol))
	case *CircularDef:
		list := make([]string, 0, len(p.Symbols))
		for _, sym := range p.Symbols {
			list = append(list, names.SymbolName(sym))
		}
		if len(list) == 1 {
			d.Message = fmt.Sprintf("`%s` is defined directly in terms of itself", list[0])
		} else {
			d.Message = fmt.Sprintf("the definitions of %s depend on each other", quoteList(list))
		}
		for i, pair := range p.Regions {
			if i == 0 || i >= len(list) {
				continue
			}
			d = d.WithNote(pair.Pattern, fmt.Sprintf("`%s` is part of the cycle", list[i]))
		}
	case *InvalidOptionalValue:
		d.Message = fmt.Sprintf("optional field `%s` is only allowed in a function argument pattern", p.FieldName)
		d = d.WithNote(p.RecordRegion, "in this record")
	case *InvalidInt:
		d.Message = fmt.Sprintf("integer literal `%s` %s", p.Text, intReason(p.Kind, p.Base))
	case *InvalidFloat:
		d.Message = fmt.Sprintf("float literal `%s` %s", p.Text, floatReason(p.Kind))
	case *InvalidStringEscape:
		d.Message = fmt.Sprintf("invalid escape `%s`: %s", p.Text, escapeReason(p.Kind))
	case *NoImplementation:
		d.Message = fmt.Sprintf("`%s` has an annotation but no implementation", names.SymbolName(p.Symbol))
	default:
		d.Message = p.Code().Title()
	}
	return d
}

// RenderAll renders problems in order into a list capped at max.
func RenderAll(problems []Problem, names SymbolNamer, file source.FileID, max int) *Diagnostics {
	out := NewDiagnostics(max)
	for _, p := range problems {
		if !out.Add(Render(p, names, file)) {
			break
		}
	}
	return out
}

func intReason(kind IntErrorKind, base fmt.Stringer) string {
	switch kind {
	case IntOverflow:
		return "is larger than the largest 64-bit integer"
	case IntUnderflow:
		return "is smaller than the smallest 64-bit integer"
	case IntInvalidDigit:
		return "contains a digit that is not valid in " + base.String()
	default:
		return "has no digits"
	}
}

func floatReason(kind FloatErrorKind) string {
	switch kind {
	case FloatPositiveInfinity:
		return "is too large to be represented"
	case FloatNegativeInfinity:
		return "is too small to be represented"
	default:
		return "is malformed"
	}
}

func escapeReason(kind EscapeErrorKind) string {
	switch kind {
	case EscapeUnknown:
		return `supported escapes are \n \t \r \" \\ \$ and \u(HEX)`
	case EscapeMalformedUnicode:
		return `unicode escapes are written \u(HEX) with 1 to 6 hex digits`
	default:
		return "not a valid unicode code point"
	}
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	if len(quoted) == 1 {
		return quoted[0]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " and " + quoted[len(quoted)-1]
}

// similarNames returns up to limit candidates within edit distance 2, in input order.
func similarNames(name string, candidates []string, limit int) []string {
	out := make([]string, 0, limit)
	for _, c := range candidates {
		if c == name || len(out) == limit {
			continue
		}
		if editDistance(name, c) <= 2 {
			out = append(out, c)
		}
	}
	return out
}

func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
