// Package parser is the reference front end: it turns source text into the
// ast tree the canonicalizer consumes. The grammar is layout sensitive; a
// token on a new line continues the current expression only when it is
// indented past the column of the enclosing block.
package parser

import (
	"fmt"
	"slices"

	"canon/internal/ast"
	"canon/internal/diag"
	"canon/internal/lexer"
	"canon/internal/source"
	"canon/internal/token"
)

// Error is a syntax or lexical error.
type Error struct {
	Code    diag.Code
	Region  source.Region
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Code.ID(), e.Region, e.Message)
}

// Diagnostic converts the error into a diagnostic for file.
func (e Error) Diagnostic(file source.FileID) diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     e.Code,
		Message:  e.Message,
		File:     file,
		Primary:  e.Region,
	}
}

// Result of parsing one file. Expr is nil when Errors is not empty.
type Result struct {
	Expr   *ast.Expr
	Tokens []token.Token
	Errors []Error
}

// noLimit disables layout checks inside brackets.
const noLimit = -1

type parser struct {
	toks  []token.Token
	pos   int
	limit int // column a new line must exceed to continue an expression
	errs  []Error
}

// bailout unwinds the parser after the first syntax error.
type bailout struct{}

type lexErrors []Error

func (l *lexErrors) Report(code diag.Code, region source.Region, msg string) {
	*l = append(*l, Error{Code: code, Region: region, Message: msg})
}

// ParseFile parses a whole file as one expression.
func ParseFile(file *source.File) Result {
	var lexErrs lexErrors
	toks := lexer.Tokenize(file, lexer.Options{Reporter: &lexErrs})
	res := Result{Tokens: toks}
	if len(lexErrs) > 0 {
		res.Errors = lexErrs
		return res
	}
	p := &parser{toks: toks, limit: noLimit}
	res.Expr = p.parseRoot()
	res.Errors = p.errs
	if len(res.Errors) > 0 {
		res.Expr = nil
	}
	return res
}

// ParseSource parses an in-memory snippet; handy in tests.
func ParseSource(name, src string) Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	return ParseFile(fs.Get(id))
}

func (p *parser) parseRoot() (expr *ast.Expr) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			expr = nil
		}
	}()
	if p.at(token.EOF) {
		p.fail(diag.SynExpectExpression, p.peek().Region, "expected an expression")
	}
	expr = p.block(false)
	if !p.at(token.EOF) {
		p.fail(diag.SynTrailingInput, p.peek().Region, fmt.Sprintf("unexpected %s after the expression", describe(p.peek())))
	}
	return expr
}

func (p *parser) peek() token.Token { return p.toks[p.pos] }

func (p *parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) prev() token.Token {
	if p.pos == 0 {
		return token.Token{}
	}
	return p.toks[p.pos-1]
}

func (p *parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *parser) expect(k token.Kind, code diag.Code, what string) token.Token {
	if !p.at(k) {
		p.fail(code, p.peek().Region, fmt.Sprintf("expected %s, found %s", what, describe(p.peek())))
	}
	return p.advance()
}

func (p *parser) fail(code diag.Code, region source.Region, msg string) {
	p.errs = append(p.errs, Error{Code: code, Region: region, Message: msg})
	panic(bailout{})
}

// onNewLine reports whether tok starts a line after the last consumed token.
func (p *parser) onNewLine(tok token.Token) bool {
	return p.pos > 0 && tok.Line() != p.prev().Region.EndLine
}

// continues reports whether the next token still belongs to the expression
// being parsed.
func (p *parser) continues() bool {
	tok := p.peek()
	switch tok.Kind {
	case token.EOF:
		return false
	case token.KwThen, token.KwElse, token.KwIs:
		return true
	}
	if !p.onNewLine(tok) || p.limit == noLimit {
		return true
	}
	return int(tok.Col()) > p.limit
}

// withLimit runs fn with a different layout column.
func withLimit[T any](p *parser, limit int, fn func() T) T {
	saved := p.limit
	p.limit = limit
	defer func() { p.limit = saved }()
	return fn()
}

// speculate runs fn and rolls the parser back if it fails.
func (p *parser) speculate(fn func()) (ok bool) {
	pos, nerr, limit := p.pos, len(p.errs), p.limit
	defer func() {
		if r := recover(); r != nil {
			if _, isBail := r.(bailout); !isBail {
				panic(r)
			}
			p.pos, p.errs, p.limit = pos, p.errs[:nerr], limit
			ok = false
		}
	}()
	fn()
	return true
}

// regionFrom spans from start to the end of the last consumed token.
func (p *parser) regionFrom(start token.Token) source.Region {
	end := p.prev().Region
	return source.Region{
		StartLine: start.Region.StartLine,
		StartCol:  start.Region.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Ident, token.UpperIdent:
		return fmt.Sprintf("identifier %q", tok.Text)
	default:
		return fmt.Sprintf("%q", tok.Text)
	}
}
