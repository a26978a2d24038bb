package diag

import (
	"errors"
	"fmt"

	"kiwi/internal/source"
)

// Error is a fatal compile-time failure. Lexer, parser, validator and plan
// builder stop at the first one and return it as a plain error.
type Error struct {
	Code    Code
	Span    source.Span
	Pos     source.LineCol
	Message string
	Notes   []Note
}

// Errorf builds an Error located at span/pos.
func Errorf(code Code, span source.Span, pos source.LineCol, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Span:    span,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Message)
}

// Line returns the 1-based line of the error.
func (e *Error) Line() int { return int(e.Pos.Line) }

// Column returns the 1-based column of the error.
func (e *Error) Column() int { return int(e.Pos.Col) }

// WithNote attaches a secondary location, e.g. the first definition of a duplicate.
func (e *Error) WithNote(sp source.Span, msg string) *Error {
	e.Notes = append(e.Notes, Note{Span: sp, Msg: msg})
	return e
}

// Diagnostic converts the error into a Diagnostic for rendering.
func (e *Error) Diagnostic() Diagnostic {
	d := NewError(e.Code, e.Span, e.Message)
	d.Notes = append(d.Notes, e.Notes...)
	return d
}

// AsError unwraps err into *Error.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// CodeOf returns the code carried by err, or UnknownCode.
func CodeOf(err error) Code {
	if de, ok := AsError(err); ok {
		return de.Code
	}
	return UnknownCode
}
