package fuzztests

import (
	"testing"

	"kiwi/internal/diag"
	"kiwi/internal/lexer"
	"kiwi/internal/source"
	"kiwi/internal/testkit"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.kiwi", clampInput(input)))

		tokens, err := lexer.Tokenize(file)
		if err != nil {
			if _, ok := diag.AsError(err); !ok {
				t.Fatalf("lexer error is not a *diag.Error: %T %v", err, err)
			}
			if tokens != nil {
				t.Fatalf("tokens returned alongside error")
			}
			return
		}
		if err := testkit.CheckTokenInvariants(tokens, file); err != nil {
			t.Fatalf("token invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}
