package lexer

import (
	"canon/internal/token"
)

// scanNumber takes an optional sign, a base prefix and every alphanumeric
// byte that follows. Digit validation is left to the canonicalizer, which
// reports it against the literal.
func (lx *Lexer) scanNumber(signed bool) token.Token {
	mark := lx.cursor.Mark()
	if signed {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			lx.cursor.Bump()
			lx.cursor.Bump()
			for isAlnum(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			return lx.numberToken(mark)
		}
	}
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		if isDec(next) || ((next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2))) {
			lx.cursor.Bump()
			lx.cursor.Bump()
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}
	for isAlnum(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.numberToken(mark)
}

func (lx *Lexer) numberToken(mark uint32) token.Token {
	return token.Token{
		Kind:   token.NumberLit,
		Region: lx.cursor.RegionFrom(mark),
		Text:   string(lx.file.Content[mark:lx.cursor.Off]),
	}
}
