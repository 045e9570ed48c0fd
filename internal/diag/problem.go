package diag

import (
	"canon/internal/ast"
	"canon/internal/source"
	"canon/internal/symbols"
)

// Problem is one finding of the canonicalizer. The set of kinds is closed:
// every consumer switches over the concrete types below.
type Problem interface {
	Code() Code
	Region() source.Region
	problem()
}

// RuntimeError is a problem that can also stand in for an expression: the
// canonical tree keeps a node that fails when evaluated.
type RuntimeError interface {
	Problem
	runtimeError()
}

// RegionPair is the (pattern, expression) location of one definition.
type RegionPair struct {
	Pattern source.Region
	Expr    source.Region
}

type IntErrorKind uint8

const (
	IntOverflow IntErrorKind = iota
	IntUnderflow
	IntInvalidDigit
	IntEmpty
)

func (k IntErrorKind) String() string {
	switch k {
	case IntOverflow:
		return "Overflow"
	case IntUnderflow:
		return "Underflow"
	case IntInvalidDigit:
		return "InvalidDigit"
	default:
		return "Empty"
	}
}

type FloatErrorKind uint8

const (
	FloatPositiveInfinity FloatErrorKind = iota
	FloatNegativeInfinity
	FloatMalformed
)

func (k FloatErrorKind) String() string {
	switch k {
	case FloatPositiveInfinity:
		return "PositiveInfinity"
	case FloatNegativeInfinity:
		return "NegativeInfinity"
	default:
		return "Malformed"
	}
}

type EscapeErrorKind uint8

const (
	EscapeUnknown          EscapeErrorKind = iota // \q
	EscapeMalformedUnicode                        // \u without (1-6 hex digits)
	EscapeInvalidCodePoint                        // surrogate or above U+10FFFF
)

func (k EscapeErrorKind) String() string {
	switch k {
	case EscapeUnknown:
		return "UnknownEscape"
	case EscapeMalformedUnicode:
		return "MalformedUnicode"
	default:
		return "InvalidCodePoint"
	}
}

// Shadowing: a name rebound in the frame that already binds it.
type Shadowing struct {
	Name           string
	Original       symbols.Symbol
	OriginalRegion source.Region
	ShadowRegion   source.Region
}

// SignatureDefMismatch: an annotation directly followed by a definition of another name.
type SignatureDefMismatch struct {
	AnnotationName   string
	DefName          string
	AnnotationRegion source.Region
	DefRegion        source.Region
}

// LookupNotInScope: a reference to a name no frame binds. InScope holds
// the names visible at that point.
type LookupNotInScope struct {
	Name    string
	At      source.Region
	InScope []string
}

// UnusedDef: a binding nobody refers to.
type UnusedDef struct {
	Symbol symbols.Symbol
	At     source.Region
}

// CircularDef: a dependency cycle through at least one non-closure value.
// Symbols and Regions are in source order.
type CircularDef struct {
	Symbols []symbols.Symbol
	Regions []RegionPair
}

// InvalidOptionalValue: `field ? default` outside a function argument pattern.
type InvalidOptionalValue struct {
	FieldName    string
	RecordRegion source.Region
	FieldRegion  source.Region
}

type InvalidInt struct {
	Kind IntErrorKind
	Base ast.Base
	At   source.Region
	Text string
}

type InvalidFloat struct {
	Kind FloatErrorKind
	At   source.Region
	Text string
}

// InvalidStringEscape covers only the escape sequence, not the whole literal.
type InvalidStringEscape struct {
	Kind EscapeErrorKind
	At   source.Region
	Text string
}

// NoImplementation is the body of an annotation that never got a definition.
// It is a runtime payload only and never reported.
type NoImplementation struct {
	Symbol symbols.Symbol
	At     source.Region
}

func (p *Shadowing) Code() Code            { return SemaShadowing }
func (p *SignatureDefMismatch) Code() Code { return SemaSignatureDefMismatch }
func (p *LookupNotInScope) Code() Code     { return SemaLookupNotInScope }
func (p *UnusedDef) Code() Code            { return SemaUnusedDef }
func (p *CircularDef) Code() Code          { return SemaCircularDef }
func (p *InvalidOptionalValue) Code() Code { return SemaInvalidOptionalValue }
func (p *InvalidInt) Code() Code           { return SemaInvalidInt }
func (p *InvalidFloat) Code() Code         { return SemaInvalidFloat }
func (p *InvalidStringEscape) Code() Code  { return SemaInvalidStringEscape }
func (p *NoImplementation) Code() Code     { return SemaNoImplementation }

func (p *Shadowing) Region() source.Region            { return p.ShadowRegion }
func (p *SignatureDefMismatch) Region() source.Region { return p.DefRegion }
func (p *LookupNotInScope) Region() source.Region     { return p.At }
func (p *UnusedDef) Region() source.Region            { return p.At }
func (p *InvalidOptionalValue) Region() source.Region { return p.FieldRegion }
func (p *InvalidInt) Region() source.Region           { return p.At }
func (p *InvalidFloat) Region() source.Region         { return p.At }
func (p *InvalidStringEscape) Region() source.Region  { return p.At }
func (p *NoImplementation) Region() source.Region     { return p.At }

func (p *CircularDef) Region() source.Region {
	if len(p.Regions) == 0 {
		return source.Region{}
	}
	return p.Regions[0].Pattern
}

func (*Shadowing) problem()            {}
func (*SignatureDefMismatch) problem() {}
func (*LookupNotInScope) problem()     {}
func (*UnusedDef) problem()            {}
func (*CircularDef) problem()          {}
func (*InvalidOptionalValue) problem() {}
func (*InvalidInt) problem()           {}
func (*InvalidFloat) problem()         {}
func (*InvalidStringEscape) problem()  {}
func (*NoImplementation) problem()     {}

func (*Shadowing) runtimeError()            {}
func (*LookupNotInScope) runtimeError()     {}
func (*CircularDef) runtimeError()          {}
func (*InvalidOptionalValue) runtimeError() {}
func (*InvalidInt) runtimeError()           {}
func (*InvalidFloat) runtimeError()         {}
func (*InvalidStringEscape) runtimeError()  {}
func (*NoImplementation) runtimeError()     {}

// IsRuntimeError reports whether p also marks a failing expression.
func IsRuntimeError(p Problem) bool {
	_, ok := p.(RuntimeError)
	return ok
}
