package token

import (
	"kiwi/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Pos  source.LineCol
}

// IsPunct reports whether the token is punctuation.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case Assign, Colon, Semicolon, LBrace, RBrace, Brackets, Deprecated, Required, Quote, Minus, Amp, Pipe:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Keyword returns the contextual keyword spelled by the token, if any.
func (t Token) Keyword() (Keyword, bool) {
	if t.Kind != Ident {
		return KwNone, false
	}
	return LookupKeyword(t.Text)
}

// Is reports whether the token spells keyword kw.
func (t Token) Is(kw Keyword) bool {
	k, ok := t.Keyword()
	return ok && k == kw
}
