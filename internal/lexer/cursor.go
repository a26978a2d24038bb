package lexer

import (
	"fmt"
	"unicode/utf8"

	"kiwi/internal/source"

	"fortio.org/safecast"
)

// Cursor — побайтовое чтение содержимого одного .kiwi файла.
type Cursor struct {
	File *source.File
	Off  uint32
	end  uint32
}

// NewCursor positions a cursor at the start of f.
func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("schema file %s is too large: %w", f.Path, err))
	}
	return Cursor{File: f, end: end}
}

// Pos возвращает 1-based строку и колонку текущего смещения.
func (c *Cursor) Pos() source.LineCol {
	return c.File.Position(c.Off)
}

func (c *Cursor) EOF() bool {
	return c.Off >= c.end
}

// Peek returns the current byte or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Bump consumes one byte and returns it; at EOF it returns 0 and stays put.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// BumpRune consumes a whole UTF-8 sequence so error spans never split a rune.
func (c *Cursor) BumpRune() {
	if c.EOF() {
		return
	}
	_, sz := utf8.DecodeRune(c.File.Content[c.Off:c.end])
	c.Off += uint32(sz) // #nosec G115 -- sz <= utf8.UTFMax
}

// HasPrefix reports whether the unread input starts with lit.
func (c *Cursor) HasPrefix(lit string) bool {
	rest := c.File.Content[c.Off:c.end]
	return len(rest) >= len(lit) && string(rest[:len(lit)]) == lit
}

// EatString consumes lit if the input continues with it.
func (c *Cursor) EatString(lit string) bool {
	if !c.HasPrefix(lit) {
		return false
	}
	c.Off += uint32(len(lit)) // #nosec G115 -- literals are short
	return true
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.File.Content[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// Mark запоминает смещение начала токена.
type Mark uint32

func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom covers the bytes read since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// Reset откатывает курсор к метке.
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}
