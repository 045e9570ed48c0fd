package parser

import (
	"canon/internal/ast"
	"canon/internal/diag"
	"canon/internal/token"
)

// typeAnn parses a type: an application, or `a, b -> c` for functions.
func (p *parser) typeAnn() *ast.TypeAnn {
	first := p.typeApply()
	if !p.atAny(token.Comma, token.Arrow) || !p.continues() {
		return first
	}
	args := []*ast.TypeAnn{first}
	for p.at(token.Comma) {
		p.advance()
		args = append(args, p.typeApply())
	}
	p.expect(token.Arrow, diag.SynExpectArrow, "'->'")
	ret := p.typeAnn()
	return &ast.TypeAnn{
		Kind:   ast.TypeFunction,
		Region: first.Region.Cover(ret.Region),
		Args:   args,
		Ret:    ret,
	}
}

func (p *parser) typeApply() *ast.TypeAnn {
	if !p.at(token.UpperIdent) {
		return p.typeAtom()
	}
	head := p.typeName()
	for p.continues() && startsType(p.peek().Kind) {
		head.Args = append(head.Args, p.typeAtom())
	}
	head.Region = head.Region.Cover(p.prev().Region)
	return head
}

// typeName parses `Name` or `Module.Name` without arguments.
func (p *parser) typeName() *ast.TypeAnn {
	tok := p.advance()
	t := &ast.TypeAnn{Kind: ast.TypeApply, Region: tok.Region, Name: tok.Text}
	if p.at(token.Dot) && p.glued(0) && p.peekAt(1).Kind == token.UpperIdent && p.glued(1) {
		p.advance()
		name := p.advance()
		t.Module, t.Name = tok.Text, name.Text
		t.Region = p.regionFrom(tok)
	}
	return t
}

func startsType(k token.Kind) bool {
	switch k {
	case token.UpperIdent, token.Ident, token.LParen, token.LBrace, token.LBracket:
		return true
	default:
		return false
	}
}

func (p *parser) typeAtom() *ast.TypeAnn {
	tok := p.peek()
	switch tok.Kind {
	case token.UpperIdent:
		return p.typeName()
	case token.Ident:
		p.advance()
		return &ast.TypeAnn{Kind: ast.TypeVar, Region: tok.Region, Name: tok.Text}
	case token.LParen:
		p.advance()
		inner := withLimit(p, noLimit, p.typeAnn)
		p.expect(token.RParen, diag.SynUnclosedParen, "')'")
		inner.Region = p.regionFrom(tok)
		return inner
	case token.LBrace:
		return p.recordType()
	case token.LBracket:
		return p.tagUnionType()
	}
	p.fail(diag.SynExpectType, tok.Region, "expected a type, found "+describe(tok))
	return nil
}

func (p *parser) recordType() *ast.TypeAnn {
	open := p.advance()
	fields := withLimit(p, noLimit, func() []ast.TypeField {
		var out []ast.TypeField
		for !p.at(token.RBrace) {
			name := p.expect(token.Ident, diag.SynExpectType, "a field name")
			p.expect(token.Colon, diag.SynExpectType, "':'")
			ty := p.typeAnn()
			out = append(out, ast.TypeField{Name: name.Text, Type: ty, Region: p.regionFrom(name)})
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		return out
	})
	p.expect(token.RBrace, diag.SynUnclosedBrace, "'}'")
	return &ast.TypeAnn{Kind: ast.TypeRecord, Region: p.regionFrom(open), Fields: fields}
}

func (p *parser) tagUnionType() *ast.TypeAnn {
	open := p.advance()
	tags := withLimit(p, noLimit, func() []ast.TypeTag {
		var out []ast.TypeTag
		for !p.at(token.RBracket) {
			name := p.expect(token.UpperIdent, diag.SynExpectType, "a tag name")
			tag := ast.TypeTag{Name: name.Text}
			for startsType(p.peek().Kind) {
				tag.Args = append(tag.Args, p.typeAtom())
			}
			tag.Region = p.regionFrom(name)
			out = append(out, tag)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		return out
	})
	p.expect(token.RBracket, diag.SynUnclosedBracket, "']'")
	return &ast.TypeAnn{Kind: ast.TypeTagUnion, Region: p.regionFrom(open), Tags: tags}
}
