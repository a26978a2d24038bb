package parser

import (
	"kiwi/internal/ast"
	"kiwi/internal/diag"
	"kiwi/internal/lexer"
	"kiwi/internal/source"
	"kiwi/internal/token"
)

// Parser — состояние парсера на один файл
type Parser struct {
	tokens   []token.Token
	pos      int
	lastSpan source.Span // span последнего съеденного токена

	defs  []*ast.Definition
	picks []pendingPick
}

// pendingPick — выборка полей, разрешаемая после основного цикла.
type pendingPick struct {
	name   token.Token
	from   token.Token
	fields []token.Token
}

// Parse builds a schema from tokens. The stream must end with EOF, as
// produced by lexer.Tokenize. Extensions and picks are resolved before
// returning, so the result contains no PICK definitions.
func Parse(tokens []token.Token) (*ast.Schema, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		tokens = append(tokens, token.Token{Kind: token.EOF})
	}
	p := &Parser{tokens: tokens}
	schema, err := p.parseSchema()
	if err != nil {
		return nil, err
	}
	if err := resolveExtensions(p.defs); err != nil {
		return nil, err
	}
	defs, err := resolvePicks(p.defs, p.picks)
	if err != nil {
		return nil, err
	}
	schema.Definitions = defs
	return schema, nil
}

// ParseFile lexes and parses a single file.
func ParseFile(file *source.File) (*ast.Schema, error) {
	tokens, err := lexer.Tokenize(file)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// parseSchema — основной цикл верхнего уровня.
func (p *Parser) parseSchema() (*ast.Schema, error) {
	schema := &ast.Schema{}

	if p.eatKeyword(token.KwPackage) {
		name, err := p.expect(token.Ident, diag.SynExpectIdentifier, "identifier")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Semicolon, diag.SynExpectPunct, `";"`); err != nil {
			return nil, err
		}
		schema.Package = name.Text
	}

	for !p.eat(token.EOF) {
		if err := p.parseDefinition(); err != nil {
			return nil, err
		}
	}
	return schema, nil
}

// parseDefinition выбирает грамматику по ключевому слову.
func (p *Parser) parseDefinition() error {
	kw, ok := p.current().Keyword()
	if !ok {
		return p.unexpected()
	}

	var kind ast.DefKind
	switch kw {
	case token.KwEnum:
		kind = ast.KindEnum
	case token.KwSmol:
		kind = ast.KindSmol
	case token.KwPick:
		kind = ast.KindPick
	case token.KwStruct:
		kind = ast.KindStruct
	case token.KwMessage:
		kind = ast.KindMessage
	case token.KwEntity:
		kind = ast.KindEntity
	case token.KwUnion:
		kind = ast.KindUnion
	case token.KwAlias:
		kind = ast.KindAlias
	default:
		return p.unexpected()
	}
	p.advance()

	name, err := p.expect(token.Ident, diag.SynExpectIdentifier, "identifier")
	if err != nil {
		return err
	}

	def := &ast.Definition{
		Name: name.Text,
		Kind: kind,
		Span: name.Span,
		Pos:  name.Pos,
	}

	switch kind {
	case ast.KindPick:
		return p.parsePick(name)
	case ast.KindUnion:
		err = p.parseUnion(def)
	case ast.KindAlias:
		err = p.parseAlias(def)
	default:
		err = p.parseBody(def)
	}
	if err != nil {
		return err
	}
	p.defs = append(p.defs, def)
	return nil
}
