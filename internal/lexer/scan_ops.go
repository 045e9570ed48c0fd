package lexer

import (
	"canon/internal/diag"
	"canon/internal/token"
)

var twoByteOps = map[string]token.Kind{
	"//": token.SlashSl,
	"==": token.EqEq,
	"!=": token.BangEq,
	"<=": token.LtEq,
	">=": token.GtEq,
	"&&": token.AndAnd,
	"||": token.OrOr,
	"->": token.Arrow,
}

var oneByteOps = map[byte]token.Kind{
	'+':  token.Plus,
	'-':  token.Minus,
	'*':  token.Star,
	'/':  token.Slash,
	'%':  token.Percent,
	'^':  token.Caret,
	'<':  token.Lt,
	'>':  token.Gt,
	'!':  token.Bang,
	'=':  token.Assign,
	':':  token.Colon,
	'?':  token.Question,
	'|':  token.Pipe,
	'\\': token.Lambda,
	',':  token.Comma,
	'.':  token.Dot,
	'(':  token.LParen,
	')':  token.RParen,
	'{':  token.LBrace,
	'}':  token.RBrace,
	'[':  token.LBracket,
	']':  token.RBracket,
}

func (lx *Lexer) scanOperatorOrPunct(space bool) token.Token {
	mark := lx.cursor.Mark()
	b0, b1 := lx.cursor.Peek(), lx.cursor.PeekAt(1)
	if k, ok := twoByteOps[string([]byte{b0, b1})]; ok && b1 != 0 {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return token.Token{Kind: k, Region: lx.cursor.RegionFrom(mark), Text: string([]byte{b0, b1})}
	}
	if k, ok := oneByteOps[b0]; ok {
		lx.cursor.Bump()
		tok := token.Token{Kind: k, Region: lx.cursor.RegionFrom(mark), Text: string(b0)}
		if k == token.Minus || k == token.Bang {
			tok.Prefix = lx.isPrefixOp(space)
		}
		return tok
	}
	lx.bumpRune()
	region := lx.cursor.RegionFrom(mark)
	text := string(lx.file.Content[mark:lx.cursor.Off])
	lx.report(diag.LexUnknownChar, region, "unexpected character "+text)
	return token.Token{Kind: token.Invalid, Region: region, Text: text}
}

// isPrefixOp: `-x` and `!x` are prefix unless glued to a preceding operand
// or followed by whitespace after one.
func (lx *Lexer) isPrefixOp(space bool) bool {
	if lx.prev.Kind == token.Invalid || !lx.prev.EndsOperand() {
		return true
	}
	next := lx.cursor.Peek()
	return space && next != ' ' && next != '\n' && next != 0
}
