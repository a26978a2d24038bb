package parser

import (
	"kiwi/internal/ast"
	"kiwi/internal/diag"
)

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

// resolveExtensions flattens `struct D & B1 & B2` in place. A base is always
// flattened before its dependents, so multi-level chains do not depend on
// declaration order. Base fields are appended in listed order with ids
// offset by the field count at the moment of appending.
func resolveExtensions(defs []*ast.Definition) error {
	byName := make(map[string]*ast.Definition, len(defs))
	for _, def := range defs {
		if _, dup := byName[def.Name]; !dup {
			byName[def.Name] = def
		}
	}

	state := make(map[*ast.Definition]visitState, len(defs))
	var visit func(def *ast.Definition) error
	visit = func(def *ast.Definition) error {
		switch state[def] {
		case done:
			return nil
		case inProgress:
			return diag.Errorf(diag.SemaExtendCycle, def.Span, def.Pos, "Extension cycle through %q", def.Name)
		}
		state[def] = inProgress
		for _, ext := range def.Extensions {
			base, ok := byName[ext.Name]
			if !ok || base.Kind != ast.KindStruct {
				return diag.Errorf(diag.SemaExtendNotStruct, ext.Span, ext.Pos, "Expected %s to be a struct", ext.Name)
			}
			if err := visit(base); err != nil {
				return err
			}
			offset := int32(len(def.Fields)) // #nosec G115 -- bounded by token count
			for _, field := range base.Fields {
				field.Value += offset
				def.Fields = append(def.Fields, field)
			}
		}
		state[def] = done
		return nil
	}

	for _, def := range defs {
		if len(def.Extensions) == 0 {
			continue
		}
		if err := visit(def); err != nil {
			return err
		}
	}
	return nil
}

// resolvePicks turns every pick into a STRUCT appended after the parsed
// definitions, in declaration order. A pick may select from any parsed
// definition or from a pick resolved before it.
func resolvePicks(defs []*ast.Definition, picks []pendingPick) ([]*ast.Definition, error) {
	for _, pick := range picks {
		var source *ast.Definition
		for _, def := range defs {
			if def.Name == pick.from.Text {
				source = def
				break
			}
		}
		if source == nil {
			return nil, diag.Errorf(diag.SemaPickUnknownType, pick.from.Span, pick.from.Pos, "Expected type %s for pick %s to exist", pick.from.Text, pick.name.Text)
		}

		fields := make([]ast.Field, len(pick.fields))
		for i, ref := range pick.fields {
			src, ok := source.Field(ref.Text)
			if !ok {
				return nil, diag.Errorf(diag.SemaPickUnknownField, ref.Span, ref.Pos, "Expected field %s to exist in %s", ref.Text, source.Name)
			}
			fields[i] = ast.Field{
				Name:         src.Name,
				Type:         src.Type,
				IsArray:      src.IsArray,
				IsRequired:   true,
				IsDeprecated: src.IsDeprecated,
				Value:        int32(i + 1), // #nosec G115 -- bounded by token count
				Span:         src.Span,
				Pos:          src.Pos,
			}
		}

		defs = append(defs, &ast.Definition{
			Name:   pick.name.Text,
			Kind:   ast.KindStruct,
			Fields: fields,
			Span:   pick.name.Span,
			Pos:    pick.name.Pos,
		})
	}
	return defs, nil
}
