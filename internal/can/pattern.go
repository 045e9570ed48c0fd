package can

import (
	"canon/internal/ast"
	"canon/internal/diag"
	"canon/internal/source"
	"canon/internal/symbols"
)

type PatternKind uint8

const (
	PatIdentifier PatternKind = iota
	PatUnderscore
	PatNum   // decimal integer literal
	PatInt   // based integer literal
	PatFloat // float literal
	PatStr
	PatTag
	PatRecord
	PatMalformed // literal that failed validation
)

func (k PatternKind) String() string {
	switch k {
	case PatIdentifier:
		return "Identifier"
	case PatUnderscore:
		return "Underscore"
	case PatNum:
		return "Num"
	case PatInt:
		return "Int"
	case PatFloat:
		return "Float"
	case PatStr:
		return "Str"
	case PatTag:
		return "Tag"
	case PatRecord:
		return "Record"
	default:
		return "Malformed"
	}
}

// Pattern is a canonical pattern; every identifier in it is a fresh symbol.
type Pattern struct {
	Kind   PatternKind
	Region source.Region
	Data   PatternData
}

type PatternData interface {
	patternData()
}

type IdentifierPattern struct {
	Symbol symbols.Symbol
}

func (IdentifierPattern) patternData() {}

type UnderscorePattern struct{}

func (UnderscorePattern) patternData() {}

type IntPattern struct {
	Value int64
	Base  ast.Base
}

func (IntPattern) patternData() {}

type FloatPattern struct {
	Value float64
}

func (FloatPattern) patternData() {}

type StrPattern struct {
	Value string
}

func (StrPattern) patternData() {}

type TagPattern struct {
	Name string
	Args []*Pattern
}

func (TagPattern) patternData() {}

// DestructKind says how a record pattern field binds.
type DestructKind uint8

const (
	DestructRequired DestructKind = iota // { a }
	DestructGuard                        // { a: pattern }
	DestructOptional                     // { a ? default }
)

func (k DestructKind) String() string {
	switch k {
	case DestructGuard:
		return "guard"
	case DestructOptional:
		return "optional"
	default:
		return "required"
	}
}

// RecordDestruct binds one field. Symbol is unset for DestructGuard,
// whose nested pattern does the binding.
type RecordDestruct struct {
	Label   string
	Kind    DestructKind
	Symbol  symbols.Symbol
	Guard   *Pattern
	Default *Expr
	Region  source.Region
}

type RecordPattern struct {
	Fields []RecordDestruct
}

func (RecordPattern) patternData() {}

type MalformedPattern struct {
	Err diag.RuntimeError
}

func (MalformedPattern) patternData() {}

// Symbols lists the symbols a pattern binds, left to right.
func (p *Pattern) Symbols() []symbols.Symbol {
	var out []symbols.Symbol
	p.collect(&out)
	return out
}

func (p *Pattern) collect(out *[]symbols.Symbol) {
	if p == nil {
		return
	}
	switch data := p.Data.(type) {
	case IdentifierPattern:
		*out = append(*out, data.Symbol)
	case TagPattern:
		for _, arg := range data.Args {
			arg.collect(out)
		}
	case RecordPattern:
		for _, f := range data.Fields {
			if f.Kind == DestructGuard {
				f.Guard.collect(out)
				continue
			}
			*out = append(*out, f.Symbol)
		}
	}
}
