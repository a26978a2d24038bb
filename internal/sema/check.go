package sema

import (
	"kiwi/internal/ast"
	"kiwi/internal/diag"
)

// Validate checks schema invariants. The schema is not modified.
func Validate(schema *ast.Schema) error {
	if schema == nil {
		return nil
	}
	c := checker{schema: schema}
	if err := c.defineTypes(); err != nil {
		return err
	}
	for _, def := range schema.Definitions {
		if err := c.checkDefinition(def); err != nil {
			return err
		}
	}
	return checkRecursion(schema.Definitions, c.defs)
}

type checker struct {
	schema *ast.Schema
	defs   map[string]*ast.Definition
}

// defineTypes регистрирует все определения; повтор, нативное или зарезервированное имя — ошибка.
func (c *checker) defineTypes() error {
	c.defs = make(map[string]*ast.Definition, len(c.schema.Definitions))
	for _, def := range c.schema.Definitions {
		prev, dup := c.defs[def.Name]
		if dup || ast.IsNative(def.Name) {
			err := diag.Errorf(diag.SemaDuplicateType, def.Span, def.Pos, "The type %q is defined twice", def.Name)
			if dup {
				err.WithNote(prev.Span, "first defined here")
			}
			return err
		}
		if ast.IsReserved(def.Name) {
			return diag.Errorf(diag.SemaReservedName, def.Span, def.Pos, "The type name %q is reserved", def.Name)
		}
		c.defs[def.Name] = def
	}
	return nil
}

func (c *checker) typeExists(name string) bool {
	if ast.IsNative(name) {
		return true
	}
	_, ok := c.defs[name]
	return ok
}

func (c *checker) checkDefinition(def *ast.Definition) error {
	if def.Kind.IsMemberList() {
		return checkMembers(def)
	}
	if len(def.Fields) == 0 {
		return nil
	}

	var err error
	switch def.Kind {
	case ast.KindUnion:
		err = c.checkUnion(def)
	case ast.KindAlias:
		err = c.checkAlias(def)
	default:
		err = c.checkFields(def)
	}
	if err != nil {
		return err
	}
	return checkIDs(def)
}

func (c *checker) checkUnion(def *ast.Definition) error {
	seen := make(map[string]struct{}, len(def.Fields))
	for i := range def.Fields {
		field := &def.Fields[i]
		if _, dup := seen[field.Name]; dup {
			return diag.Errorf(diag.SemaDuplicateField, field.Span, field.Pos,
				"The type %q can only appear in %q once.", field.Type, def.Name)
		}
		seen[field.Name] = struct{}{}
		if !c.typeExists(field.Type) {
			return diag.Errorf(diag.SemaUnknownType, field.Span, field.Pos,
				"The type %q is not defined for union %q", field.Type, def.Name)
		}
	}
	return nil
}

func (c *checker) checkAlias(def *ast.Definition) error {
	target := def.Fields[0]
	if !c.typeExists(target.Type) {
		return diag.Errorf(diag.SemaUnknownAliasTarget, def.Span, def.Pos, "Expected type used in alias to exist.")
	}
	return nil
}

func (c *checker) checkFields(def *ast.Definition) error {
	seen := make(map[string]int, len(def.Fields))
	for i := range def.Fields {
		field := &def.Fields[i]
		if !c.typeExists(field.Type) {
			return diag.Errorf(diag.SemaUnknownType, field.Span, field.Pos,
				"The type %q is not defined for field %q", field.Type, field.Name)
		}
		if field.Type == ast.Discriminator {
			return diag.Errorf(diag.SemaDiscriminatorOutsideUnion, field.Span, field.Pos,
				"discriminator is only available inside of unions.")
		}
		if prev, dup := seen[field.Name]; dup {
			return diag.Errorf(diag.SemaDuplicateField, field.Span, field.Pos,
				"The field %q is defined twice in %q", field.Name, def.Name).
				WithNote(def.Fields[prev].Span, "first defined here")
		}
		seen[field.Name] = i
	}
	return nil
}

// checkIDs: ids уникальны, положительны (кроме дискриминатора) и не больше числа полей.
func checkIDs(def *ast.Definition) error {
	count := int32(len(def.Fields)) // #nosec G115 -- bounded by token count
	seen := make(map[int32]int, len(def.Fields))
	for i := range def.Fields {
		field := &def.Fields[i]
		if prev, dup := seen[field.Value]; dup {
			return diag.Errorf(diag.SemaDuplicateID, field.Span, field.Pos,
				"The id for field %q is used twice", field.Name).
				WithNote(def.Fields[prev].Span, "previous use")
		}
		if field.Value <= 0 && field.Type != ast.Discriminator {
			return diag.Errorf(diag.SemaNonPositiveID, field.Span, field.Pos,
				"The id for field %q must be positive", field.Name)
		}
		if field.Value > count {
			return diag.Errorf(diag.SemaIDOutOfRange, field.Span, field.Pos,
				"The id for field %q cannot be larger than %d", field.Name, count)
		}
		seen[field.Value] = i
	}
	return nil
}

// checkMembers: имена и значения членов enum/smol уникальны.
func checkMembers(def *ast.Definition) error {
	names := make(map[string]struct{}, len(def.Fields))
	values := make(map[int32]string, len(def.Fields))
	for i := range def.Fields {
		member := &def.Fields[i]
		if _, dup := names[member.Name]; dup {
			return diag.Errorf(diag.SemaDuplicateField, member.Span, member.Pos,
				"The enum member %q is defined twice in %q", member.Name, def.Name)
		}
		names[member.Name] = struct{}{}
		if other, dup := values[member.Value]; dup {
			return diag.Errorf(diag.SemaDuplicateEnumValue, member.Span, member.Pos,
				"The value %d of %q is already used by %q", member.Value, member.Name, other)
		}
		values[member.Value] = member.Name
	}
	return nil
}
