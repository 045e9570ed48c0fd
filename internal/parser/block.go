package parser

import (
	"canon/internal/ast"
	"canon/internal/diag"
	"canon/internal/token"
)

// block parses definitions followed by the expression they scope over. Items
// start at the column of the first token. Inside parentheses the items that
// follow a definition may start at any column.
func (p *parser) block(paren bool) *ast.Expr {
	first := p.peek()
	col := int(first.Col())
	return withLimit(p, col, func() *ast.Expr {
		var defs []*ast.Def
		for {
			def := p.tryDef()
			if def == nil {
				break
			}
			defs = append(defs, def)
			next := p.peek()
			switch {
			case next.Kind == token.EOF || isCloser(next.Kind):
				p.fail(diag.SynMissingBody, def.Region, "definitions must be followed by an expression")
			case !p.onNewLine(next):
				p.fail(diag.SynUnexpectedToken, next.Region, "expected a new line after the definition, found "+describe(next))
			case !paren && int(next.Col()) < col:
				p.fail(diag.SynMissingBody, def.Region, "definitions must be followed by an expression")
			case !paren && int(next.Col()) > col:
				p.fail(diag.SynUnexpectedToken, next.Region, "unexpected "+describe(next))
			}
		}
		body := p.expr()
		if len(defs) == 0 {
			return body
		}
		return &ast.Expr{
			Kind:   ast.ExprDefs,
			Region: defs[0].Region.Cover(body.Region),
			Data:   ast.DefsData{Defs: defs, Body: body},
		}
	})
}

// tryDef parses `pattern = expr` or `name : Type` at the current position.
// When the item turns out to be an expression it rewinds and returns nil.
func (p *parser) tryDef() *ast.Def {
	if !startsPattern(p.peek().Kind) {
		return nil
	}
	start := p.pos
	var pat *ast.Pattern
	if !p.speculate(func() { pat = p.pattern(true) }) {
		return nil
	}
	op := p.peek()
	if (op.Kind != token.Assign && op.Kind != token.Colon) || p.onNewLine(op) {
		p.pos = start
		return nil
	}
	p.advance()

	if op.Kind == token.Colon {
		if !isAnnotationHead(pat) {
			p.fail(diag.SynBadDefinitionHead, pat.Region, "only a name or a type alias can be annotated")
		}
		ty := p.typeAnn()
		return &ast.Def{
			Kind:    ast.DefAnnotation,
			Pattern: pat,
			Type:    ty,
			Region:  pat.Region.Cover(ty.Region),
		}
	}
	body := p.blockish()
	return &ast.Def{
		Kind:    ast.DefBody,
		Pattern: pat,
		Expr:    body,
		Region:  pat.Region.Cover(body.Region),
	}
}

// blockish parses what follows `=`, `->`, `then` and `else`: an expression
// on the same line, or an indented block on the next one.
func (p *parser) blockish() *ast.Expr {
	next := p.peek()
	if next.Kind == token.EOF {
		p.fail(diag.SynExpectExpression, next.Region, "expected an expression, found end of input")
	}
	if !p.onNewLine(next) {
		return p.expr()
	}
	if p.limit != noLimit && int(next.Col()) <= p.limit {
		p.fail(diag.SynExpectExpression, next.Region, "expected an indented expression")
	}
	return p.block(false)
}

func isAnnotationHead(pat *ast.Pattern) bool {
	switch pat.Kind {
	case ast.PatIdent:
		return true
	case ast.PatTag:
		return len(pat.Data.(ast.TagPattern).Args) == 0
	default:
		return false
	}
}

func isCloser(k token.Kind) bool {
	return k == token.RParen || k == token.RBrace || k == token.RBracket
}
