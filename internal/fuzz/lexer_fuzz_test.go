package fuzztests

import (
	"testing"

	"canon/internal/diag"
	"canon/internal/lexer"
	"canon/internal/source"
	"canon/internal/testkit"
	"canon/internal/token"
)

type countingReporter struct{ n int }

func (r *countingReporter) Report(diag.Code, source.Region, string) { r.n++ }

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.roc", input))

		lx := lexer.New(file, lexer.Options{Reporter: &countingReporter{}})
		// каждый токен съедает хотя бы байт, иначе лексер зациклился
		toks := make([]token.Token, 0, 16)
		for i := 0; ; i++ {
			if i > len(input)+1 {
				t.Fatalf("lexer did not reach EOF on %d bytes", len(input))
			}
			tok := lx.Next()
			toks = append(toks, tok)
			if tok.Kind == token.EOF {
				break
			}
		}
		if err := testkit.CheckTokenInvariants(toks, file); err != nil {
			t.Fatalf("%v\ninput: %q", err, truncate(input))
		}
	})
}
