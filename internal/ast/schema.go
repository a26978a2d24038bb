package ast

import (
	"kiwi/internal/source"
)

// Ref is a by-name reference to another definition, kept with its location.
type Ref struct {
	Name string         `json:"name" yaml:"name"`
	Span source.Span    `json:"-" yaml:"-"`
	Pos  source.LineCol `json:"-" yaml:"-"`
}

// Field is one member of a definition.
//
// Type is empty for ENUM/SMOL members. Value is the wire id for
// MESSAGE/ENTITY/UNION/ALIAS fields, the 1-based position for STRUCT fields
// and the ordinal for enum members.
type Field struct {
	Name         string         `json:"name" yaml:"name"`
	Type         string         `json:"type,omitempty" yaml:"type,omitempty"`
	IsArray      bool           `json:"isArray,omitempty" yaml:"isArray,omitempty"`
	IsRequired   bool           `json:"isRequired,omitempty" yaml:"isRequired,omitempty"`
	IsDeprecated bool           `json:"isDeprecated,omitempty" yaml:"isDeprecated,omitempty"`
	Value        int32          `json:"value" yaml:"value"`
	Span         source.Span    `json:"-" yaml:"-"`
	Pos          source.LineCol `json:"-" yaml:"-"`
}

// Definition is one named schema type.
type Definition struct {
	Name           string         `json:"name" yaml:"name"`
	Kind           DefKind        `json:"kind" yaml:"kind"`
	Fields         []Field        `json:"fields" yaml:"fields"`
	Extensions     []Ref          `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	SerializerPath string         `json:"serializerPath,omitempty" yaml:"serializerPath,omitempty"`
	Span           source.Span    `json:"-" yaml:"-"`
	Pos            source.LineCol `json:"-" yaml:"-"`
}

// Field returns the field with the given name.
func (d *Definition) Field(name string) (*Field, bool) {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i], true
		}
	}
	return nil, false
}

// FieldByValue returns the field carrying the given id/ordinal.
func (d *Definition) FieldByValue(v int32) (*Field, bool) {
	for i := range d.Fields {
		if d.Fields[i].Value == v {
			return &d.Fields[i], true
		}
	}
	return nil, false
}

// Schema is the result of parsing one schema file.
type Schema struct {
	Package     string        `json:"package,omitempty" yaml:"package,omitempty"`
	Definitions []*Definition `json:"definitions" yaml:"definitions"`
}

// Lookup finds a definition by name. The first match wins; duplicates are
// rejected later by validation.
func (s *Schema) Lookup(name string) *Definition {
	for _, def := range s.Definitions {
		if def.Name == name {
			return def
		}
	}
	return nil
}

// Index builds a name → definition map.
func (s *Schema) Index() map[string]*Definition {
	out := make(map[string]*Definition, len(s.Definitions))
	for _, def := range s.Definitions {
		if _, dup := out[def.Name]; !dup {
			out[def.Name] = def
		}
	}
	return out
}
