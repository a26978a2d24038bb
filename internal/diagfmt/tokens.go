package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"kiwi/internal/source"
	"kiwi/internal/token"
)

type TokenOutput struct {
	Kind    string `json:"kind"`
	Text    string `json:"text,omitempty"`
	Keyword string `json:"keyword,omitempty"`
	Line    uint32 `json:"line"`
	Col     uint32 `json:"col"`
	Start   uint32 `json:"start"`
	End     uint32 `json:"end"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-10s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if kw, ok := tok.Keyword(); ok {
			fmt.Fprintf(w, " [%s]", kw)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)

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
		out := TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Line:  tok.Pos.Line,
			Col:   tok.Pos.Col,
			Start: tok.Span.Start,
			End:   tok.Span.End,
		}
		if kw, ok := tok.Keyword(); ok {
			out.Keyword = kw.String()
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
