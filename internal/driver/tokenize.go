package driver

import (
	"context"

	"kiwi/internal/diag"
	"kiwi/internal/source"
	"kiwi/internal/token"
)

// TokenizeResult is the output of Tokenize.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes path. A lexical error is recorded in the bag and the
// tokens up to it are dropped, as the lexer is fail-fast.
func Tokenize(ctx context.Context, path string, maxDiagnostics int) (*TokenizeResult, error) {
	res, err := CompileFile(ctx, path, Options{Stage: StageTokenize, MaxDiagnostics: maxDiagnostics})
	if err != nil {
		return nil, err
	}
	return &TokenizeResult{
		FileSet: res.FileSet,
		File:    res.File,
		Tokens:  res.Tokens,
		Bag:     res.Bag,
	}, nil
}
