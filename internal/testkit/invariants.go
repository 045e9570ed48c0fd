// Package testkit holds structural checks shared by the lexer tests and the
// fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"canon/internal/source"
	"canon/internal/token"
)

// CheckTokenInvariants verifies a token stream against its file:
// 1) every region is well-formed and lies inside the file's text
// 2) tokens do not overlap and come in source order
// 3) the stream ends with exactly one EOF
func CheckTokenInvariants(tokens []token.Token, f *source.File) error {
	if f == nil {
		return fmt.Errorf("nil file")
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}
	for i, tok := range tokens {
		r := tok.Region
		if err := checkInFile(r, f); err != nil {
			return fmt.Errorf("token %d (%s): %w", i, tok.Kind, err)
		}
		if i > 0 && after(tokens[i-1].Region.End(), r.Start()) {
			return fmt.Errorf("token %d (%s) at %s overlaps the previous one at %s", i, tok.Kind, r, tokens[i-1].Region)
		}
		if tok.Kind == token.EOF && i != len(tokens)-1 {
			return fmt.Errorf("EOF at index %d of %d", i, len(tokens))
		}
	}
	if last := tokens[len(tokens)-1]; last.Kind != token.EOF {
		return fmt.Errorf("stream ends with %s, not EOF", last.Kind)
	}
	return nil
}

func checkInFile(r source.Region, f *source.File) error {
	if after(r.Start(), r.End()) {
		return fmt.Errorf("region %s ends before it starts", r)
	}
	lines, err := safecast.Conv[uint32](f.LineCount())
	if err != nil {
		return fmt.Errorf("line count overflow: %w", err)
	}
	for _, p := range []source.Position{r.Start(), r.End()} {
		if p.Line >= lines {
			return fmt.Errorf("line %d beyond %d lines", p.Line+1, lines)
		}
		width, err := safecast.Conv[uint32](len(f.Line(p.Line)))
		if err != nil {
			return fmt.Errorf("line width overflow: %w", err)
		}
		if p.Col > width {
			return fmt.Errorf("column %d beyond line %d of width %d", p.Col+1, p.Line+1, width)
		}
	}
	return nil
}

// after reports a > b.
func after(a, b source.Position) bool {
	if a.Line != b.Line {
		return a.Line > b.Line
	}
	return a.Col > b.Col
}
