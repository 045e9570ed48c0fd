package lexer

import (
	"canon/internal/diag"
	"canon/internal/token"
)

// scanString reads a single-line string literal. Text is the raw body
// between the quotes; escapes are decoded later.
func (lx *Lexer) scanString() token.Token {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	bodyStart := lx.cursor.Off
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			region := lx.cursor.RegionFrom(mark)
			lx.report(diag.LexUnterminatedString, region, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Region: region, Text: string(lx.file.Content[bodyStart:lx.cursor.Off])}
		}
		switch lx.cursor.Bump() {
		case '\\':
			if !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case '"':
			return token.Token{
				Kind:   token.StringLit,
				Region: lx.cursor.RegionFrom(mark),
				Text:   string(lx.file.Content[bodyStart : lx.cursor.Off-1]),
			}
		}
	}
}
