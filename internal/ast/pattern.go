package ast

import "canon/internal/source"

type PatternKind uint8

const (
	PatMalformed PatternKind = iota
	PatIdent                 // x
	PatUnderscore            // _
	PatNum                   // 0, -1, 0x1F
	PatStr                   // "text"
	PatTag                   // Ok x
	PatRecord                // { a, b ? 0, c: pat }
)

func (k PatternKind) String() string {
	switch k {
	case PatIdent:
		return "Ident"
	case PatUnderscore:
		return "Underscore"
	case PatNum:
		return "Num"
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

type Pattern struct {
	Kind   PatternKind
	Region source.Region
	Data   PatternData
}

type PatternData interface {
	patternData()
}

type IdentPattern struct {
	Name string
}

func (IdentPattern) patternData() {}

type UnderscorePattern struct{}

func (UnderscorePattern) patternData() {}

type NumPattern struct {
	Num NumData
}

func (NumPattern) patternData() {}

type StrPattern struct {
	Raw string
}

func (StrPattern) patternData() {}

type TagPattern struct {
	Name string
	Args []*Pattern
}

func (TagPattern) patternData() {}

// RecordPatternField: Required binds the field name, Guard destructures the
// field with a nested pattern, Optional binds it with a default value.
type RecordPatternField struct {
	Kind       FieldKind
	Name       string
	NameRegion source.Region
	Guard      *Pattern // `name: pattern`
	Default    *Expr    // `name ? expr`
	Region     source.Region
}

type RecordPattern struct {
	Fields []RecordPatternField
}

func (RecordPattern) patternData() {}

type MalformedPattern struct {
	Text string
}

func (MalformedPattern) patternData() {}

// IdentName returns the bound name for a plain identifier pattern.
func (p *Pattern) IdentName() (string, bool) {
	if p == nil || p.Kind != PatIdent {
		return "", false
	}
	id, ok := p.Data.(IdentPattern)
	return id.Name, ok
}
