package lexer

import (
	"unicode"

	"golang.org/x/text/unicode/norm"

	"canon/internal/diag"
	"canon/internal/token"
)

// scanIdentOrKeyword scans an identifier; the text is NFC-normalized so that
// canonically equivalent spellings bind the same name.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	mark := lx.cursor.Mark()
	r, _ := lx.peekRune()
	if !isIdentStartRune(r) {
		lx.bumpRune()
		region := lx.cursor.RegionFrom(mark)
		lx.report(diag.LexUnknownChar, region, "unexpected character "+string(r))
		return token.Token{Kind: token.Invalid, Region: region, Text: string(r)}
	}
	lx.bumpRune()
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}
	region := lx.cursor.RegionFrom(mark)
	text := norm.NFC.String(string(lx.file.Content[mark:lx.cursor.Off]))

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Region: region, Text: text}
	}
	kind := token.Ident
	if first := []rune(text)[0]; unicode.IsUpper(first) {
		kind = token.UpperIdent
	}
	return token.Token{Kind: kind, Region: region, Text: text}
}
