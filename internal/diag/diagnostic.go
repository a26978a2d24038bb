package diag

import (
	"kiwi/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	// Path заполняется, когда у диагностики нет span (например, ошибка чтения файла).
	Path  string
	Notes []Note
}

// NewError builds an error diagnostic located at primary.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: SevError, Code: code, Primary: primary, Message: msg}
}

// NewPathError builds an error diagnostic attached to a file path, used when
// the file could not be read or written at all.
func NewPathError(code Code, path, msg string) Diagnostic {
	return Diagnostic{Severity: SevError, Code: code, Path: path, Message: msg}
}

// HasSpan reports whether the diagnostic points into a loaded file.
func (d *Diagnostic) HasSpan() bool {
	return d.Path == ""
}
