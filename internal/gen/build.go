package gen

import (
	"kiwi/internal/ast"
	"kiwi/internal/diag"
)

// Build derives the plan of a validated schema. It fails with GEN4xxx when a
// field or union alternative refers to a definition that has no wire form.
func Build(schema *ast.Schema) (*Plan, error) {
	plan := &Plan{
		Package: schema.Package,
		byName:  make(map[string]*DefPlan, len(schema.Definitions)),
	}
	index := schema.Index()

	for _, def := range schema.Definitions {
		var (
			dp  *DefPlan
			err error
		)
		switch def.Kind {
		case ast.KindEnum:
			dp = buildEnum(def)
		case ast.KindStruct, ast.KindMessage:
			dp, err = buildRecord(def, index)
		case ast.KindUnion:
			dp, err = buildUnion(def, index)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		plan.Defs = append(plan.Defs, dp)
		plan.byName[dp.Name] = dp
	}
	return plan, nil
}

func buildEnum(def *ast.Definition) *DefPlan {
	members := make([]EnumMember, len(def.Fields))
	for i, f := range def.Fields {
		members[i] = EnumMember{Name: f.Name, Ordinal: uint32(f.Value)} // #nosec G115 -- negative ordinals wrap like the wire does
	}
	return &DefPlan{
		Name:           def.Name,
		Kind:           ast.KindEnum,
		Enum:           newEnumTable(members),
		SerializerPath: def.SerializerPath,
		Span:           def.Span,
		Pos:            def.Pos,
	}
}

func buildRecord(def *ast.Definition, index map[string]*ast.Definition) (*DefPlan, error) {
	dp := &DefPlan{
		Name:           def.Name,
		Kind:           def.Kind,
		Fields:         make([]FieldPlan, 0, len(def.Fields)),
		SerializerPath: def.SerializerPath,
		Span:           def.Span,
		Pos:            def.Pos,
	}
	for i := range def.Fields {
		f := &def.Fields[i]
		shape, err := fieldShape(f, index)
		if err != nil {
			return nil, err
		}
		dp.Fields = append(dp.Fields, FieldPlan{
			Name:       f.Name,
			ID:         uint32(f.Value), // #nosec G115 -- validated positive
			Shape:      shape,
			Type:       f.Type,
			IsArray:    f.IsArray,
			Required:   f.IsRequired,
			Deprecated: f.IsDeprecated && def.Kind == ast.KindMessage,
			Span:       f.Span,
			Pos:        f.Pos,
		})
	}
	dp.index()
	return dp, nil
}

func fieldShape(f *ast.Field, index map[string]*ast.Definition) (Shape, error) {
	if shape, ok := NativeShape(f.Type); ok {
		return shape, nil
	}
	ref, ok := index[f.Type]
	if !ok {
		return ShapeInvalid, diag.Errorf(diag.GenUnsupportedFieldType, f.Span, f.Pos,
			"Invalid type %q for field %q", f.Type, f.Name)
	}
	switch ref.Kind {
	case ast.KindEnum:
		return ShapeEnum, nil
	case ast.KindStruct, ast.KindMessage:
		return ShapeStruct, nil
	case ast.KindUnion:
		return ShapeUnion, nil
	}
	return ShapeInvalid, diag.Errorf(diag.GenUnsupportedFieldType, f.Span, f.Pos,
		"The type %q of field %q is a %s, which has no wire encoding", f.Type, f.Name, ref.Kind)
}

func buildUnion(def *ast.Definition, index map[string]*ast.Definition) (*DefPlan, error) {
	up := &UnionPlan{
		byName:    make(map[string]int, len(def.Fields)),
		byOrdinal: make(map[uint32]int, len(def.Fields)),
	}
	for i := range def.Fields {
		f := &def.Fields[i]
		if f.Type == ast.Discriminator {
			up.Discriminator = f.Name
			continue
		}
		ref, ok := index[f.Type]
		if !ok || (ref.Kind != ast.KindStruct && ref.Kind != ast.KindMessage) {
			kind := "undefined type"
			if ok {
				kind = ref.Kind.String()
			}
			return nil, diag.Errorf(diag.GenInvalidUnionMember, f.Span, f.Pos,
				"Union %q can only contain structs and messages, %q is a %s", def.Name, f.Type, kind)
		}
		up.byName[f.Type] = len(up.Alternatives)
		up.byOrdinal[uint32(f.Value)] = len(up.Alternatives) // #nosec G115 -- validated positive
		up.Alternatives = append(up.Alternatives, Alternative{
			Type:    f.Type,
			Ordinal: uint32(f.Value), // #nosec G115 -- validated positive
			Kind:    ref.Kind,
		})
	}
	return &DefPlan{
		Name:  def.Name,
		Kind:  ast.KindUnion,
		Union: up,
		Span:  def.Span,
		Pos:   def.Pos,
	}, nil
}
