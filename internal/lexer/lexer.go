package lexer

import (
	"kiwi/internal/diag"
	"kiwi/internal/source"
	"kiwi/internal/token"
)

// Lexer turns one schema file into tokens. Whitespace and // comments are
// dropped; anything else that is not a recognized token is a fatal error.
type Lexer struct {
	file   *source.File
	cursor Cursor
	done   bool
}

func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
	}
}

// Next возвращает следующий значимый токен.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() (token.Token, error) {
	lx.skipTrivia()

	if lx.cursor.EOF() {
		lx.done = true
		return lx.make(lx.cursor.Mark(), token.EOF), nil
	}

	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()

	switch {
	case isIdentStartByte(ch):
		return lx.scanIdent(), nil
	case isDec(ch):
		return lx.scanNumber(start)
	case ch == '-':
		lx.cursor.Bump()
		if isDec(lx.cursor.Peek()) {
			return lx.scanNumber(start)
		}
		return lx.make(start, token.Minus), nil
	case ch == '[':
		return lx.scanBracket(start)
	}

	kind, ok := punct[ch]
	if !ok {
		return token.Token{}, lx.unknown(start)
	}
	lx.cursor.Bump()
	return lx.make(start, kind), nil
}

// Tokenize lexes the whole file. The returned slice always ends with
// exactly one EOF token carrying the final position.
func Tokenize(file *source.File) ([]token.Token, error) {
	lx := New(file)
	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

var punct = map[byte]token.Kind{
	'=': token.Assign,
	':': token.Colon,
	';': token.Semicolon,
	'{': token.LBrace,
	'}': token.RBrace,
	'"': token.Quote,
	'&': token.Amp,
	'|': token.Pipe,
}

func (lx *Lexer) make(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
		Pos:  lx.file.Position(sp.Start),
	}
}

func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case isSpace(ch):
			lx.cursor.Bump()
		case ch == '/':
			if !lx.cursor.HasPrefix("//") {
				return
			}
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.make(start, token.Ident)
}

// scanNumber читает десятичное целое; start может указывать на '-'.
// Число не может сразу переходить в идентификатор: "12ab" — ошибка.
func (lx *Lexer) scanNumber(start Mark) (token.Token, error) {
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if isIdentStartByte(lx.cursor.Peek()) {
		lx.cursor.Reset(start)
		return token.Token{}, lx.unknown(start)
	}
	return lx.make(start, token.IntLit), nil
}

func (lx *Lexer) scanBracket(start Mark) (token.Token, error) {
	switch {
	case lx.cursor.EatString("[]"):
		return lx.make(start, token.Brackets), nil
	case lx.cursor.EatString("[!]"):
		return lx.make(start, token.Required), nil
	case lx.cursor.EatString("[deprecated]"):
		return lx.make(start, token.Deprecated), nil
	}
	return token.Token{}, lx.unknown(start)
}

// unknown reports the unrecognized run starting at start.
func (lx *Lexer) unknown(start Mark) error {
	lx.cursor.Reset(start)
	if lx.cursor.Peek() == '-' {
		lx.cursor.Bump()
	}
	if isIdentContinueByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		lx.cursor.BumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	return diag.Errorf(diag.LexUnknownChar, sp, lx.file.Position(sp.Start), "Syntax error %q", text)
}
