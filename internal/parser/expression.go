package parser

import (
	"strings"

	"canon/internal/ast"
	"canon/internal/diag"
	"canon/internal/token"
)

func (p *parser) expr() *ast.Expr {
	switch p.peek().Kind {
	case token.Lambda:
		return p.closure()
	case token.KwWhen:
		return p.when()
	case token.KwIf:
		return p.ifExpr()
	}
	return p.binary(0)
}

// binary is precedence climbing over the infix operators.
func (p *parser) binary(minPrec int) *ast.Expr {
	left := p.unary()
	for {
		op := p.peek()
		prec, ok := token.Precedence(op.Kind)
		if !ok || prec < minPrec || !p.continues() {
			return left
		}
		p.advance()
		next := prec + 1
		if token.RightAssoc(op.Kind) {
			next = prec
		}
		var right *ast.Expr
		if p.atAny(token.Lambda, token.KwWhen, token.KwIf) {
			right = p.expr()
		} else {
			right = p.binary(next)
		}
		left = &ast.Expr{
			Kind:   ast.ExprBinOp,
			Region: left.Region.Cover(right.Region),
			Data:   ast.BinOpData{Op: op.Text, OpRegion: op.Region, Left: left, Right: right},
		}
	}
}

func (p *parser) unary() *ast.Expr {
	op := p.peek()
	if (op.Kind == token.Minus || op.Kind == token.Bang) && op.Prefix {
		p.advance()
		operand := p.unary()
		return &ast.Expr{
			Kind:   ast.ExprUnaryOp,
			Region: op.Region.Cover(operand.Region),
			Data:   ast.UnaryOpData{Op: op.Text, OpRegion: op.Region, Operand: operand},
		}
	}
	return p.apply()
}

// apply parses a function or tag followed by its arguments.
func (p *parser) apply() *ast.Expr {
	fn := p.access()
	var args []*ast.Expr
	for p.continues() && startsArgument(p.peek()) {
		args = append(args, p.argument())
		if args[len(args)-1].Kind == ast.ExprClosure {
			break
		}
	}
	if len(args) == 0 {
		return fn
	}
	region := fn.Region.Cover(args[len(args)-1].Region)
	if fn.Kind == ast.ExprTag {
		tag := fn.Data.(ast.TagData)
		if len(tag.Args) == 0 {
			return &ast.Expr{Kind: ast.ExprTag, Region: region, Data: ast.TagData{Name: tag.Name, Args: args}}
		}
	}
	return &ast.Expr{Kind: ast.ExprApply, Region: region, Data: ast.ApplyData{Fn: fn, Args: args}}
}

func (p *parser) argument() *ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.Lambda:
		return p.closure()
	case token.Minus, token.Bang:
		p.advance()
		operand := p.access()
		return &ast.Expr{
			Kind:   ast.ExprUnaryOp,
			Region: tok.Region.Cover(operand.Region),
			Data:   ast.UnaryOpData{Op: tok.Text, OpRegion: tok.Region, Operand: operand},
		}
	}
	return p.access()
}

func startsArgument(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.UpperIdent, token.NumberLit, token.StringLit,
		token.LParen, token.LBrace, token.LBracket, token.Lambda:
		return true
	case token.Minus, token.Bang:
		return tok.Prefix
	default:
		return false
	}
}

// glued reports whether the next token touches the previous one.
func (p *parser) glued(n int) bool {
	return !p.peekAt(n).SpaceBefore
}

// access parses an atom followed by `.field` selectors written without spaces.
func (p *parser) access() *ast.Expr {
	e := p.atom()
	for p.at(token.Dot) && p.glued(0) && p.peekAt(1).Kind == token.Ident && p.glued(1) {
		p.advance()
		field := p.advance()
		e = &ast.Expr{
			Kind:   ast.ExprAccess,
			Region: e.Region.Cover(field.Region),
			Data:   ast.AccessData{Record: e, Field: field.Text},
		}
	}
	return e
}

func (p *parser) atom() *ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.NumberLit:
		p.advance()
		return &ast.Expr{Kind: ast.ExprNum, Region: tok.Region, Data: numData(tok.Text)}
	case token.StringLit:
		p.advance()
		return &ast.Expr{Kind: ast.ExprStr, Region: tok.Region, Data: ast.StrData{Raw: tok.Text}}
	case token.Ident:
		p.advance()
		return &ast.Expr{Kind: ast.ExprVar, Region: tok.Region, Data: ast.VarData{Name: tok.Text}}
	case token.UpperIdent:
		p.advance()
		if p.at(token.Dot) && p.glued(0) && p.peekAt(1).Kind == token.Ident && p.glued(1) {
			p.advance()
			name := p.advance()
			return &ast.Expr{
				Kind:   ast.ExprVar,
				Region: p.regionFrom(tok),
				Data:   ast.VarData{Module: tok.Text, Name: name.Text},
			}
		}
		return &ast.Expr{Kind: ast.ExprTag, Region: tok.Region, Data: ast.TagData{Name: tok.Text}}
	case token.LParen:
		p.advance()
		if p.at(token.RParen) {
			p.fail(diag.SynExpectExpression, p.peek().Region, "empty parentheses")
		}
		inner := p.block(true)
		p.expect(token.RParen, diag.SynUnclosedParen, "')'")
		inner.Region = p.regionFrom(tok)
		return inner
	case token.LBrace:
		return p.record()
	case token.LBracket:
		return p.list()
	}
	p.fail(diag.SynExpectExpression, tok.Region, "expected an expression, found "+describe(tok))
	return nil
}

func (p *parser) record() *ast.Expr {
	open := p.advance()
	fields := withLimit(p, noLimit, func() []ast.RecordField {
		var out []ast.RecordField
		for !p.at(token.RBrace) {
			name := p.expect(token.Ident, diag.SynUnexpectedToken, "a field name")
			field := ast.RecordField{Kind: ast.FieldPunned, Name: name.Text, NameRegion: name.Region}
			switch {
			case p.at(token.Colon):
				p.advance()
				field.Kind = ast.FieldRequired
				field.Value = p.expr()
			case p.at(token.Question):
				p.advance()
				field.Kind = ast.FieldOptional
				field.Value = p.expr()
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
	return &ast.Expr{Kind: ast.ExprRecord, Region: p.regionFrom(open), Data: ast.RecordData{Fields: fields}}
}

func (p *parser) list() *ast.Expr {
	open := p.advance()
	elems := withLimit(p, noLimit, func() []*ast.Expr {
		var out []*ast.Expr
		for !p.at(token.RBracket) {
			out = append(out, p.expr())
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		return out
	})
	p.expect(token.RBracket, diag.SynUnclosedBracket, "']'")
	return &ast.Expr{Kind: ast.ExprList, Region: p.regionFrom(open), Data: ast.ListData{Elems: elems}}
}

func (p *parser) closure() *ast.Expr {
	lambda := p.advance()
	var params []*ast.Pattern
	for {
		params = append(params, p.pattern(false))
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.Arrow, diag.SynExpectArrow, "'->'")
	body := p.blockish()
	return &ast.Expr{
		Kind:   ast.ExprClosure,
		Region: lambda.Region.Cover(body.Region),
		Data:   ast.ClosureData{Params: params, Body: body},
	}
}

func (p *parser) when() *ast.Expr {
	kw := p.advance()
	cond := p.expr()
	p.expect(token.KwIs, diag.SynUnexpectedToken, "'is'")
	first := p.peek()
	if first.Kind == token.EOF || !p.onNewLine(first) || (p.limit != noLimit && int(first.Col()) <= p.limit) {
		p.fail(diag.SynExpectPattern, first.Region, "expected indented branches after 'is'")
	}
	col := int(first.Col())
	branches := withLimit(p, col, func() []ast.WhenBranch {
		var out []ast.WhenBranch
		for {
			start := p.peek()
			br := ast.WhenBranch{Patterns: []*ast.Pattern{p.pattern(true)}}
			for p.at(token.Pipe) {
				p.advance()
				br.Patterns = append(br.Patterns, p.pattern(true))
			}
			if p.at(token.KwIf) {
				p.advance()
				br.Guard = p.expr()
			}
			p.expect(token.Arrow, diag.SynExpectArrow, "'->'")
			br.Value = p.blockish()
			br.Region = p.regionFrom(start)
			out = append(out, br)

			next := p.peek()
			if next.Kind == token.EOF || isCloser(next.Kind) || !p.onNewLine(next) || int(next.Col()) != col {
				return out
			}
		}
	})
	return &ast.Expr{
		Kind:   ast.ExprWhen,
		Region: p.regionFrom(kw),
		Data:   ast.WhenData{Cond: cond, Branches: branches},
	}
}

func (p *parser) ifExpr() *ast.Expr {
	kw := p.advance()
	cond := p.expr()
	p.expect(token.KwThen, diag.SynExpectThenElse, "'then'")
	then := p.blockish()
	p.expect(token.KwElse, diag.SynExpectThenElse, "'else'")
	els := p.blockish()
	return &ast.Expr{
		Kind:   ast.ExprIf,
		Region: kw.Region.Cover(els.Region),
		Data:   ast.IfData{Cond: cond, Then: then, Else: els},
	}
}

// numData splits a number token into sign, base and digits.
func numData(text string) ast.NumData {
	n := ast.NumData{Raw: text}
	body := text
	if strings.HasPrefix(body, "-") {
		n.Negative = true
		body = body[1:]
	}
	if len(body) >= 2 && body[0] == '0' {
		switch body[1] {
		case 'x', 'X':
			n.Base = ast.BaseHex
		case 'o', 'O':
			n.Base = ast.BaseOctal
		case 'b', 'B':
			n.Base = ast.BaseBinary
		}
		if n.Base != ast.BaseDecimal {
			body = body[2:]
		}
	}
	n.Digits = body
	return n
}
