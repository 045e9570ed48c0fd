package can

import (
	"fmt"

	"canon/internal/ast"
	"canon/internal/source"
	"canon/internal/symbols"
)

// binder mints the symbols of one pattern. With reuse set, names already
// in names resolve to their earlier symbol instead of a fresh one; when
// alternatives use it that way they all bind the same symbols.
type binder struct {
	kind  symbols.SymbolKind
	names map[string]symbols.Symbol
	reuse bool
}

func (c *canonicalizer) pattern(p *ast.Pattern, b *binder) *Pattern {
	switch data := p.Data.(type) {
	case ast.IdentPattern:
		return &Pattern{Kind: PatIdentifier, Region: p.Region, Data: IdentifierPattern{Symbol: c.bindIdent(data.Name, p.Region, b)}}
	case ast.UnderscorePattern:
		return &Pattern{Kind: PatUnderscore, Region: p.Region, Data: UnderscorePattern{}}
	case ast.NumPattern:
		return c.numberPattern(data.Num, p.Region)
	case ast.StrPattern:
		return c.strPattern(data.Raw, p.Region)
	case ast.TagPattern:
		var args []*Pattern
		for _, arg := range data.Args {
			args = append(args, c.pattern(arg, b))
		}
		return &Pattern{Kind: PatTag, Region: p.Region, Data: TagPattern{Name: data.Name, Args: args}}
	case ast.RecordPattern:
		fields := make([]RecordDestruct, 0, len(data.Fields))
		for _, f := range data.Fields {
			fields = append(fields, c.destruct(f, b))
		}
		return &Pattern{Kind: PatRecord, Region: p.Region, Data: RecordPattern{Fields: fields}}
	default:
		panic(fmt.Errorf("can: unexpected %s pattern at %s", p.Kind, p.Region))
	}
}

func (c *canonicalizer) destruct(f ast.RecordPatternField, b *binder) RecordDestruct {
	out := RecordDestruct{Label: f.Name, Region: f.Region}
	switch f.Kind {
	case ast.FieldOptional:
		out.Kind = DestructOptional
		// the default sees the scope outside the pattern
		out.Default = c.expr(f.Default)
		out.Symbol = c.bindIdent(f.Name, f.NameRegion, b)
	case ast.FieldRequired:
		if f.Guard != nil {
			out.Kind = DestructGuard
			out.Guard = c.pattern(f.Guard, b)
			return out
		}
		out.Symbol = c.bindIdent(f.Name, f.NameRegion, b)
	default:
		out.Symbol = c.bindIdent(f.Name, f.NameRegion, b)
	}
	return out
}

func (c *canonicalizer) bindIdent(name string, region source.Region, b *binder) symbols.Symbol {
	if b.reuse {
		if sym, ok := b.names[name]; ok {
			return sym
		}
	}
	sym := c.bind(name, region, b.kind)
	if b.names != nil {
		b.names[name] = sym
	}
	return sym
}
