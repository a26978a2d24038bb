package parser

import (
	"kiwi/internal/diag"
	"kiwi/internal/token"
)

func (p *Parser) current() token.Token {
	return p.tokens[p.pos]
}

// advance — съедает текущий токен и обновляет lastSpan. EOF не съедается.
func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.current().Kind == k
}

// eat съедает токен, если он нужного вида.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// eatKeyword съедает идентификатор, если он пишется как kw.
func (p *Parser) eatKeyword(kw token.Keyword) bool {
	if p.current().Is(kw) {
		p.advance()
		return true
	}
	return false
}

// expect — ожидаем конкретный токен. Если нет — фатальная ошибка.
func (p *Parser) expect(k token.Kind, code diag.Code, what string) (token.Token, error) {
	if p.at(k) {
		return p.advance(), nil
	}
	tok := p.current()
	return tok, diag.Errorf(code, tok.Span, tok.Pos, "Expected %s but found %q", what, tok.Text)
}

func (p *Parser) unexpected() error {
	tok := p.current()
	return diag.Errorf(diag.SynUnexpectedToken, tok.Span, tok.Pos, "Unexpected token %q", tok.Text)
}
