package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"canon/internal/token"
)

type TokenOutput struct {
	Kind        string    `json:"kind"`
	Text        string    `json:"text,omitempty"`
	Region      [4]uint32 `json:"region"`
	SpaceBefore bool      `json:"space_before,omitempty"`
	Prefix      bool      `json:"prefix,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %s", tok.Region)
		if tok.Prefix {
			fmt.Fprint(w, " (prefix)")
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:        tok.Kind.String(),
			Text:        tok.Text,
			Region:      tok.Region.Tuple(),
			SpaceBefore: tok.SpaceBefore,
			Prefix:      tok.Prefix,
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
