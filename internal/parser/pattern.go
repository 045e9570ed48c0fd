package parser

import (
	"canon/internal/ast"
	"canon/internal/diag"
	"canon/internal/token"
)

func startsPattern(k token.Kind) bool {
	switch k {
	case token.Ident, token.Underscore, token.NumberLit, token.StringLit,
		token.UpperIdent, token.LBrace, token.LParen:
		return true
	default:
		return false
	}
}

// pattern parses one pattern. Tag arguments are accepted only when
// allowArgs is set; closure parameters and tag arguments themselves need
// parentheses to take arguments.
func (p *parser) pattern(allowArgs bool) *ast.Pattern {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return &ast.Pattern{Kind: ast.PatIdent, Region: tok.Region, Data: ast.IdentPattern{Name: tok.Text}}
	case token.Underscore:
		p.advance()
		return &ast.Pattern{Kind: ast.PatUnderscore, Region: tok.Region, Data: ast.UnderscorePattern{}}
	case token.NumberLit:
		p.advance()
		return &ast.Pattern{Kind: ast.PatNum, Region: tok.Region, Data: ast.NumPattern{Num: numData(tok.Text)}}
	case token.StringLit:
		p.advance()
		return &ast.Pattern{Kind: ast.PatStr, Region: tok.Region, Data: ast.StrPattern{Raw: tok.Text}}
	case token.UpperIdent:
		p.advance()
		var args []*ast.Pattern
		if allowArgs {
			for p.continues() && startsPattern(p.peek().Kind) {
				args = append(args, p.pattern(false))
			}
		}
		return &ast.Pattern{Kind: ast.PatTag, Region: p.regionFrom(tok), Data: ast.TagPattern{Name: tok.Text, Args: args}}
	case token.LBrace:
		return p.recordPattern()
	case token.LParen:
		p.advance()
		inner := withLimit(p, noLimit, func() *ast.Pattern { return p.pattern(true) })
		p.expect(token.RParen, diag.SynUnclosedParen, "')'")
		inner.Region = p.regionFrom(tok)
		return inner
	}
	p.fail(diag.SynExpectPattern, tok.Region, "expected a pattern, found "+describe(tok))
	return nil
}

func (p *parser) recordPattern() *ast.Pattern {
	open := p.advance()
	fields := withLimit(p, noLimit, func() []ast.RecordPatternField {
		var out []ast.RecordPatternField
		for !p.at(token.RBrace) {
			name := p.expect(token.Ident, diag.SynExpectPattern, "a field name")
			field := ast.RecordPatternField{Kind: ast.FieldPunned, Name: name.Text, NameRegion: name.Region}
			switch {
			case p.at(token.Colon):
				p.advance()
				field.Kind = ast.FieldRequired
				field.Guard = p.pattern(true)
			case p.at(token.Question):
				p.advance()
				field.Kind = ast.FieldOptional
				field.Default = p.expr()
			}
			field.Region = p.regionFrom(name)
			out = append(out, field)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		return out
	})
	p.expect(token.RBrace, diag.SynUnclosedBrace, "'}'")
	return &ast.Pattern{Kind: ast.PatRecord, Region: p.regionFrom(open), Data: ast.RecordPattern{Fields: fields}}
}
