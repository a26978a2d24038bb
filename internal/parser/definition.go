package parser

import (
	"strconv"
	"strings"

	"kiwi/internal/ast"
	"kiwi/internal/diag"
	"kiwi/internal/token"
)

// parsePick: pick Name : Source { a; b; }
func (p *Parser) parsePick(name token.Token) error {
	if _, err := p.expect(token.Colon, diag.SynExpectPunct, `":"`); err != nil {
		return err
	}
	from, err := p.expect(token.Ident, diag.SynExpectIdentifier, "identifier")
	if err != nil {
		return err
	}
	if _, err := p.expect(token.LBrace, diag.SynExpectPunct, `"{"`); err != nil {
		return err
	}

	pick := pendingPick{name: name, from: from}
	seen := make(map[string]struct{})
	for !p.eat(token.RBrace) {
		field, err := p.expect(token.Ident, diag.SynExpectIdentifier, "identifier")
		if err != nil {
			return err
		}
		if _, dup := seen[field.Text]; dup {
			return diag.Errorf(diag.SynDuplicatePickField, field.Span, field.Pos, "Fields must be unique")
		}
		seen[field.Text] = struct{}{}
		pick.fields = append(pick.fields, field)
		if _, err := p.expect(token.Semicolon, diag.SynExpectPunct, `";"`); err != nil {
			return err
		}
	}
	p.picks = append(p.picks, pick)
	return nil
}

// parseUnion: union Name = A | B [{ discriminatorName; }] ;
func (p *Parser) parseUnion(def *ast.Definition) error {
	if _, err := p.expect(token.Assign, diag.SynExpectPunct, `"="`); err != nil {
		return err
	}
	for {
		alt, err := p.expect(token.Ident, diag.SynExpectIdentifier, "identifier")
		if err != nil {
			return err
		}
		def.Fields = append(def.Fields, ast.Field{
			Name:       alt.Text,
			Type:       alt.Text,
			IsRequired: true,
			Value:      int32(len(def.Fields) + 1), // #nosec G115 -- bounded by token count
			Span:       alt.Span,
			Pos:        alt.Pos,
		})
		if !p.eat(token.Pipe) {
			break
		}
	}

	if p.eat(token.LBrace) {
		field, err := p.expect(token.Ident, diag.SynExpectIdentifier, "discriminator name")
		if err != nil {
			return err
		}
		disc := ast.Field{
			Name:       field.Text,
			Type:       ast.Discriminator,
			IsRequired: true,
			Value:      0,
			Span:       field.Span,
			Pos:        field.Pos,
		}
		def.Fields = append([]ast.Field{disc}, def.Fields...)
		if _, err := p.expect(token.Semicolon, diag.SynExpectPunct, `";"`); err != nil {
			return err
		}
		_, err = p.expect(token.RBrace, diag.SynExpectPunct, `"}"`)
		return err
	}
	_, err := p.expect(token.Semicolon, diag.SynExpectPunct, `";"`)
	return err
}

// parseAlias: alias Name = Target;
func (p *Parser) parseAlias(def *ast.Definition) error {
	if _, err := p.expect(token.Assign, diag.SynExpectPunct, `"="`); err != nil {
		return err
	}
	target, err := p.expect(token.Ident, diag.SynExpectIdentifier, "identifier")
	if err != nil {
		return err
	}
	def.Fields = append(def.Fields, ast.Field{
		Name:       target.Text,
		Type:       target.Text,
		IsRequired: true,
		Value:      1,
		Span:       target.Span,
		Pos:        target.Pos,
	})
	_, err = p.expect(token.Semicolon, diag.SynExpectPunct, `";"`)
	return err
}

// parseBody разбирает enum/smol/struct/message/entity:
// [& Base]* [from "path"] { fields }
func (p *Parser) parseBody(def *ast.Definition) error {
	if def.Kind == ast.KindStruct {
		for p.eat(token.Amp) {
			base, err := p.expect(token.Ident, diag.SynExpectIdentifier, "identifier")
			if err != nil {
				return err
			}
			def.Extensions = append(def.Extensions, ast.Ref{Name: base.Text, Span: base.Span, Pos: base.Pos})
		}
	}

	if p.eatKeyword(token.KwFrom) {
		path, err := p.parseSerializerPath()
		if err != nil {
			return err
		}
		def.SerializerPath = path
	}

	if _, err := p.expect(token.LBrace, diag.SynExpectPunct, `"{"`); err != nil {
		return err
	}
	for !p.eat(token.RBrace) {
		field, err := p.parseField(def)
		if err != nil {
			return err
		}
		def.Fields = append(def.Fields, field)
	}
	return nil
}

// parseSerializerPath склеивает токены между кавычками; пустой путь — отсутствие пути.
func (p *Parser) parseSerializerPath() (string, error) {
	if _, err := p.expect(token.Quote, diag.SynExpectPunct, `'"'`); err != nil {
		return "", err
	}
	var b strings.Builder
	for !p.eat(token.Quote) {
		tok := p.current()
		if tok.Kind == token.EOF {
			return "", diag.Errorf(diag.SynUnterminatedPath, tok.Span, tok.Pos, "Expected %s but found %q", `'"'`, tok.Text)
		}
		b.WriteString(tok.Text)
		p.advance()
	}
	path := b.String()
	if strings.TrimSpace(path) == "" {
		return "", nil
	}
	return path, nil
}

func (p *Parser) parseField(def *ast.Definition) (ast.Field, error) {
	var field ast.Field

	if !def.Kind.IsMemberList() {
		typ, err := p.expect(token.Ident, diag.SynExpectIdentifier, "identifier")
		if err != nil {
			return field, err
		}
		field.Type = typ.Text
		field.IsArray = p.eat(token.Brackets)
	}

	name, err := p.expect(token.Ident, diag.SynExpectIdentifier, "identifier")
	if err != nil {
		return field, err
	}
	field.Name = name.Text
	field.Span = name.Span
	field.Pos = name.Pos

	if def.Kind == ast.KindStruct {
		field.IsRequired = true
		field.Value = int32(len(def.Fields) + 1) // #nosec G115 -- bounded by token count
	} else {
		if _, err := p.expect(token.Assign, diag.SynExpectPunct, `"="`); err != nil {
			return field, err
		}
		lit, err := p.expect(token.IntLit, diag.SynExpectInteger, "integer")
		if err != nil {
			return field, err
		}
		value, err := parseInt32(lit)
		if err != nil {
			return field, err
		}
		field.Value = value
		// [!] у enum/smol допустим, но ничего не значит
		if p.eat(token.Required) && def.Kind.HasExplicitIDs() {
			field.IsRequired = true
		}
	}

	if dep := p.current(); p.eat(token.Deprecated) {
		if def.Kind != ast.KindMessage {
			return field, diag.Errorf(diag.SynDeprecatedNotAllowed, dep.Span, dep.Pos, "Cannot deprecate this field")
		}
		field.IsDeprecated = true
	}

	_, err = p.expect(token.Semicolon, diag.SynExpectPunct, `";"`)
	return field, err
}

// parseInt32 принимает только каноническую запись int32: без ведущих нулей и "-0".
func parseInt32(lit token.Token) (int32, error) {
	v, err := strconv.ParseInt(lit.Text, 10, 32)
	if err != nil || strconv.FormatInt(v, 10) != lit.Text {
		return 0, diag.Errorf(diag.SynInvalidInteger, lit.Span, lit.Pos, "Invalid integer %q", lit.Text)
	}
	return int32(v), nil
}
