package lexer

import (
	"testing"

	"kiwi/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kiwi", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Bump() != 0 || cursor.Peek() != 0 {
		t.Fatal("cursor must stay at EOF returning zero bytes")
	}
}

func TestCursorPos(t *testing.T) {
	cursor := NewCursor(createFile("ab\ncd"))
	cursor.Bump()
	if got := cursor.Pos(); got != (source.LineCol{Line: 1, Col: 2}) {
		t.Fatalf("Pos after one byte = %+v", got)
	}
	cursor.Bump()
	cursor.Bump()
	if got := cursor.Pos(); got != (source.LineCol{Line: 2, Col: 1}) {
		t.Fatalf("Pos after newline = %+v", got)
	}
}

func TestEatString(t *testing.T) {
	cursor := NewCursor(createFile("[deprecated] [!"))
	if cursor.EatString("[!]") {
		t.Fatal("EatString must not match a different literal")
	}
	if !cursor.EatString("[deprecated]") {
		t.Fatal("EatString failed on matching literal")
	}
	if cursor.Off != 12 {
		t.Fatalf("Off = %d, want 12", cursor.Off)
	}
	cursor.Bump()
	if cursor.EatString("[!]") {
		t.Fatal("EatString must not read past the limit")
	}
}

// TestMarkReset проверяет работу Mark и Reset
func TestMarkReset(t *testing.T) {
	cursor := NewCursor(createFile("abcdef"))
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	if sp := cursor.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %+v", sp)
	}
	cursor.Reset(m)
	if cursor.Peek() != 'a' {
		t.Fatalf("Reset did not rewind, peek %q", cursor.Peek())
	}
	if !cursor.Eat('a') || cursor.Eat('a') {
		t.Fatal("Eat must consume exactly the matching byte")
	}
}

func TestBumpRuneAndHasPrefix(t *testing.T) {
	cursor := NewCursor(createFile("é// x"))
	if cursor.HasPrefix("//") {
		t.Fatal("HasPrefix matched before the rune was consumed")
	}
	cursor.BumpRune()
	if cursor.Off != 2 {
		t.Fatalf("BumpRune advanced to %d, want 2", cursor.Off)
	}
	if !cursor.HasPrefix("//") {
		t.Fatal("HasPrefix missed the comment start")
	}
	empty := NewCursor(createFile(""))
	empty.BumpRune()
	if empty.Off != 0 || empty.HasPrefix("x") {
		t.Fatal("BumpRune at EOF must not move")
	}
}
