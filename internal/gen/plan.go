package gen

import (
	"kiwi/internal/ast"
	"kiwi/internal/source"
)

// FieldPlan describes how one field is read and written.
type FieldPlan struct {
	Name string
	// ID is the wire tag for MESSAGE fields and the 1-based position for STRUCT fields.
	ID uint32
	// Index is the field's slot among the definition's fields.
	Index      int
	Shape      Shape
	Type       string // schema type name (native or definition)
	IsArray    bool
	Required   bool
	Deprecated bool
	Span       source.Span
	Pos        source.LineCol
}

// Bulk reports whether the field is an array handled by one typed-array primitive.
func (f *FieldPlan) Bulk() bool {
	return f.IsArray && f.Shape.Bulk()
}

// EnumMember is one name/ordinal pair.
type EnumMember struct {
	Name    string
	Ordinal uint32
}

// EnumTable is the bidirectional name ↔ ordinal table of an ENUM.
type EnumTable struct {
	Members []EnumMember
	byName  map[string]uint32
	byValue map[uint32]string
}

func newEnumTable(members []EnumMember) *EnumTable {
	t := &EnumTable{
		Members: members,
		byName:  make(map[string]uint32, len(members)),
		byValue: make(map[uint32]string, len(members)),
	}
	for _, m := range members {
		t.byName[m.Name] = m.Ordinal
		t.byValue[m.Ordinal] = m.Name
	}
	return t
}

// Ordinal looks up a member by name.
func (t *EnumTable) Ordinal(name string) (uint32, bool) {
	v, ok := t.byName[name]
	return v, ok
}

// Name looks up a member by ordinal.
func (t *EnumTable) Name(ordinal uint32) (string, bool) {
	n, ok := t.byValue[ordinal]
	return n, ok
}

// Alternative is one member of a union.
type Alternative struct {
	Type    string // STRUCT or MESSAGE name; also the discriminant name
	Ordinal uint32
	Kind    ast.DefKind
}

// UnionPlan describes a union's tag table.
type UnionPlan struct {
	// Discriminator is the name of the optional id-0 field, or "".
	Discriminator string
	Alternatives  []Alternative
	byName        map[string]int
	byOrdinal     map[uint32]int
}

// Ordinal returns the tag of the named alternative.
func (u *UnionPlan) Ordinal(typeName string) (uint32, bool) {
	i, ok := u.byName[typeName]
	if !ok {
		return 0, false
	}
	return u.Alternatives[i].Ordinal, true
}

// Alternative returns the alternative with the given tag.
func (u *UnionPlan) Alternative(ordinal uint32) (Alternative, bool) {
	i, ok := u.byOrdinal[ordinal]
	if !ok {
		return Alternative{}, false
	}
	return u.Alternatives[i], true
}

// MaxOrdinal returns the largest alternative tag.
func (u *UnionPlan) MaxOrdinal() uint32 {
	var max uint32
	for _, alt := range u.Alternatives {
		if alt.Ordinal > max {
			max = alt.Ordinal
		}
	}
	return max
}

// DefPlan is the behavior of one definition.
type DefPlan struct {
	Name           string
	Kind           ast.DefKind // KindEnum, KindStruct, KindMessage or KindUnion
	Fields         []FieldPlan // STRUCT and MESSAGE
	Enum           *EnumTable  // ENUM
	Union          *UnionPlan  // UNION
	SerializerPath string
	Span           source.Span
	Pos            source.LineCol

	byName map[string]int
	byID   map[uint32]int
}

// Field returns the field with the given name.
func (d *DefPlan) Field(name string) (*FieldPlan, bool) {
	i, ok := d.byName[name]
	if !ok {
		return nil, false
	}
	return &d.Fields[i], true
}

// FieldByID returns the field with the given wire tag.
func (d *DefPlan) FieldByID(id uint32) (*FieldPlan, bool) {
	i, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return &d.Fields[i], true
}

func (d *DefPlan) index() {
	d.byName = make(map[string]int, len(d.Fields))
	d.byID = make(map[uint32]int, len(d.Fields))
	for i := range d.Fields {
		d.Fields[i].Index = i
		d.byName[d.Fields[i].Name] = i
		d.byID[d.Fields[i].ID] = i
	}
}

// Plan holds the plans of all definitions with wire behavior, in schema order.
type Plan struct {
	Package string
	Defs    []*DefPlan
	byName  map[string]*DefPlan
}

// Def returns the plan of the named definition.
func (p *Plan) Def(name string) (*DefPlan, bool) {
	d, ok := p.byName[name]
	return d, ok
}
