package lexer_test

import (
	"strings"
	"testing"

	"kiwi/internal/diag"
	"kiwi/internal/lexer"
	"kiwi/internal/source"
	"kiwi/internal/token"
)

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.kiwi", []byte(src)))
	toks, err := lexer.Tokenize(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return toks
}

func tokenizeErr(t *testing.T, src string) *diag.Error {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.kiwi", []byte(src)))
	_, err := lexer.Tokenize(file)
	if err == nil {
		t.Fatalf("expected error for %q", src)
	}
	de, ok := diag.AsError(err)
	if !ok {
		t.Fatalf("expected *diag.Error, got %T", err)
	}
	return de
}

func kinds(toks []token.Token) string {
	parts := make([]string, len(toks))
	for i, tok := range toks {
		parts[i] = tok.Kind.String()
	}
	return strings.Join(parts, " ")
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"enum", "enum Color { Red = 1; }", "Ident Ident LBrace Ident Assign IntLit Semicolon RBrace EOF"},
		{"message", "message M { int[] xs = 1 [!] [deprecated]; }",
			"Ident Ident LBrace Ident Brackets Ident Assign IntLit Required Deprecated Semicolon RBrace EOF"},
		{"union", "union U = A | B;", "Ident Ident Assign Ident Pipe Ident Semicolon EOF"},
		{"extend", "struct D & B {}", "Ident Ident Amp Ident LBrace RBrace EOF"},
		{"pick", "pick P : S { a; }", "Ident Ident Colon Ident LBrace Ident Semicolon RBrace EOF"},
		{"path", `from "a-b"`, "Ident Quote Ident Minus Ident Quote EOF"},
		{"comment", "// only a comment\n", "EOF"},
		{"empty", "", "EOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kinds(tokenize(t, tt.src)); got != tt.want {
				t.Fatalf("kinds mismatch:\nwant: %s\ngot:  %s", tt.want, got)
			}
		})
	}
}

func TestNegativeIntegers(t *testing.T) {
	toks := tokenize(t, "x = -12; y-3")
	if toks[2].Kind != token.IntLit || toks[2].Text != "-12" {
		t.Fatalf("expected IntLit -12, got %v %q", toks[2].Kind, toks[2].Text)
	}
	// "y-3" is identifier followed by a signed integer
	if toks[5].Kind != token.IntLit || toks[5].Text != "-3" {
		t.Fatalf("expected IntLit -3, got %v %q", toks[5].Kind, toks[5].Text)
	}
}

func TestKeywordsAreIdents(t *testing.T) {
	toks := tokenize(t, "message struct")
	for _, tok := range toks[:2] {
		if tok.Kind != token.Ident {
			t.Fatalf("keywords lex as identifiers, got %v", tok.Kind)
		}
	}
	if !toks[0].Is(token.KwMessage) {
		t.Fatal("first token should spell 'message'")
	}
}

func TestPositions(t *testing.T) {
	toks := tokenize(t, "enum E {\n  // c\n\tA = 1;\n}")
	want := []source.LineCol{
		{Line: 1, Col: 1}, {Line: 1, Col: 6}, {Line: 1, Col: 8},
		{Line: 3, Col: 2}, {Line: 3, Col: 4}, {Line: 3, Col: 6}, {Line: 3, Col: 7},
		{Line: 4, Col: 1},
		{Line: 4, Col: 2}, // EOF
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tok := range toks {
		if tok.Pos != want[i] {
			t.Errorf("token %d (%q) at %d:%d, want %d:%d", i, tok.Text, tok.Pos.Line, tok.Pos.Col, want[i].Line, want[i].Col)
		}
	}
}

func TestTextMatchesSpan(t *testing.T) {
	src := "struct Point { float x; float y; } // tail"
	for _, tok := range tokenize(t, src) {
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Fatalf("span text %q != token text %q", got, tok.Text)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		src  string
		line uint32
		col  uint32
		msg  string
	}{
		{"struct A { int x; } $", 1, 21, `Syntax error "$"`},
		{"enum E {\n  A = 12ab;\n}", 2, 7, `Syntax error "12ab"`},
		{"message M { int x = 1 [?]; }", 1, 23, `Syntax error "["`},
		{"a / b", 1, 3, `Syntax error "/"`},
		{"é", 1, 1, `Syntax error "é"`},
	}
	for _, tt := range tests {
		de := tokenizeErr(t, tt.src)
		if de.Code != diag.LexUnknownChar {
			t.Errorf("%q: code %v", tt.src, de.Code)
		}
		if de.Pos.Line != tt.line || de.Pos.Col != tt.col {
			t.Errorf("%q: position %d:%d, want %d:%d", tt.src, de.Pos.Line, de.Pos.Col, tt.line, tt.col)
		}
		if de.Message != tt.msg {
			t.Errorf("%q: message %q, want %q", tt.src, de.Message, tt.msg)
		}
	}
}
