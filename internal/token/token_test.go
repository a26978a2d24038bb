package token_test

import (
	"testing"

	"kiwi/internal/token"
)

func TestLookupKeywordIsCaseSensitive(t *testing.T) {
	for _, word := range []string{"package", "enum", "smol", "pick", "struct", "message", "entity", "union", "alias", "from"} {
		kw, ok := token.LookupKeyword(word)
		if !ok {
			t.Fatalf("%q should be a keyword", word)
		}
		if kw.String() != word {
			t.Fatalf("round trip name mismatch: %q -> %q", word, kw.String())
		}
	}
	for _, word := range []string{"Enum", "STRUCT", "int", "discriminator"} {
		if _, ok := token.LookupKeyword(word); ok {
			t.Fatalf("%q must NOT be a keyword", word)
		}
	}
}

func TestKeywordOnlyOnIdent(t *testing.T) {
	if !(token.Token{Kind: token.Ident, Text: "union"}).Is(token.KwUnion) {
		t.Fatal("ident 'union' should spell KwUnion")
	}
	if (token.Token{Kind: token.IntLit, Text: "union"}).Is(token.KwUnion) {
		t.Fatal("non-ident tokens never spell keywords")
	}
}

func TestIsPunct(t *testing.T) {
	for _, k := range []token.Kind{token.Assign, token.Brackets, token.Deprecated, token.Required, token.Amp, token.Pipe} {
		if !(token.Token{Kind: k}).IsPunct() {
			t.Fatalf("%v should be punctuation", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.IntLit, token.EOF} {
		if (token.Token{Kind: k}).IsPunct() {
			t.Fatalf("%v must NOT be punctuation", k)
		}
	}
}
