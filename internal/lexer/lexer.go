package lexer

import (
	"canon/internal/diag"
	"canon/internal/source"
	"canon/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	prev   token.Token // last emitted token, Invalid at start
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tokenize lexes the whole file; the result always ends with EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	out := make([]token.Token, 0, len(file.Content)/3+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	space := lx.skipTrivia()
	if lx.cursor.EOF() {
		mark := lx.cursor.Mark()
		return token.Token{Kind: token.EOF, Region: lx.cursor.RegionFrom(mark), SpaceBefore: space}
	}

	var tok token.Token
	ch := lx.cursor.Peek()
	switch {
	case isDec(ch):
		tok = lx.scanNumber(false)
	case ch == '-' && isDec(lx.cursor.PeekAt(1)) && lx.signAllowed(space):
		tok = lx.scanNumber(true)
	case ch == '"':
		tok = lx.scanString()
	case ch == '_' && !isIdentContinueByte(lx.cursor.PeekAt(1)):
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		tok = token.Token{Kind: token.Underscore, Region: lx.cursor.RegionFrom(mark), Text: "_"}
	case ch >= 0x80 || isAlnum(ch):
		tok = lx.scanIdentOrKeyword()
	default:
		tok = lx.scanOperatorOrPunct(space)
	}
	tok.SpaceBefore = space
	lx.prev = tok
	return tok
}

// signAllowed decides whether a '-' glued to a digit is a sign: always after
// something that cannot end an operand, and after an operand only when
// separated from it by whitespace (`f -1` passes -1, `x-1` subtracts).
func (lx *Lexer) signAllowed(space bool) bool {
	if lx.prev.Kind == token.Invalid || !lx.prev.EndsOperand() {
		return true
	}
	return space
}

// skipTrivia consumes whitespace and `#` comments and reports whether any was seen.
func (lx *Lexer) skipTrivia() bool {
	seen := false
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\n', '\r':
			lx.cursor.Bump()
			seen = true
		case '\t':
			mark := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.report(diag.LexBadIndent, lx.cursor.RegionFrom(mark), "tab characters are not allowed")
			seen = true
		case '#':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			seen = true
		default:
			return seen
		}
	}
	return seen
}

func isIdentContinueByte(b byte) bool {
	return isAlnum(b) || b >= 0x80
}
