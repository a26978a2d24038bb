package codec

import (
	"fmt"

	"kiwi/internal/ast"
	"kiwi/internal/gen"
	"kiwi/wire"
)

// EncodeFunc writes one record payload.
type EncodeFunc func(bb *wire.ByteBuffer, r *Record) error

// Codec holds the encode/decode tables of one plan.
type Codec struct {
	plan    *gen.Plan
	records map[string]*recordCodec
	unions  map[string]*unionCodec
	enums   map[string]*enumCodec
}

type fieldCodec struct {
	plan  *gen.FieldPlan
	read  func(bb *wire.ByteBuffer) (any, error)
	write func(bb *wire.ByteBuffer, v any) error
}

type recordCodec struct {
	def    *gen.DefPlan
	alloc  Allocator
	fields []fieldCodec
}

type unionCodec struct {
	def *gen.DefPlan
	// encoders is indexed by ordinal; slot 0 writes no payload.
	encoders []EncodeFunc
	alts     map[uint32]*recordCodec
}

type enumCodec struct {
	def     *gen.DefPlan
	lenient bool
}

func isRecordKind(def *gen.DefPlan) bool {
	return def.Kind == ast.KindStruct || def.Kind == ast.KindMessage
}

// Compile builds the tables for every definition of plan. Tables reference
// each other by pointer, so recursive message and array nesting needs no
// special handling.
func Compile(plan *gen.Plan, opts ...Option) (*Codec, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := &Codec{
		plan:    plan,
		records: make(map[string]*recordCodec),
		unions:  make(map[string]*unionCodec),
		enums:   make(map[string]*enumCodec),
	}
	for _, def := range plan.Defs {
		switch {
		case isRecordKind(def):
			c.records[def.Name] = &recordCodec{def: def, alloc: defaultAllocator{def: def}}
		case def.Kind == ast.KindUnion:
			c.unions[def.Name] = &unionCodec{def: def, alts: make(map[uint32]*recordCodec)}
		case def.Kind == ast.KindEnum:
			c.enums[def.Name] = &enumCodec{def: def, lenient: o.lenientEnums}
		}
	}

	for name, a := range o.allocators {
		rc, ok := c.records[name]
		if !ok {
			return nil, fmt.Errorf("%w: allocator for %q, which is not a struct or message", ErrUnknownType, name)
		}
		if a != nil {
			rc.alloc = a
		}
	}

	for _, rc := range c.records {
		rc.fields = make([]fieldCodec, len(rc.def.Fields))
		for i := range rc.def.Fields {
			f := &rc.def.Fields[i]
			fo, err := c.opsFor(f)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", rc.def.Name, f.Name, err)
			}
			fc := fieldCodec{plan: f, read: fo.read, write: fo.write}
			if f.IsArray {
				fc.read, fc.write = fo.readArray, fo.writeArray
			}
			rc.fields[i] = fc
		}
	}

	for _, uc := range c.unions {
		u := uc.def.Union
		uc.encoders = make([]EncodeFunc, u.MaxOrdinal()+1)
		uc.encoders[0] = func(*wire.ByteBuffer, *Record) error { return nil }
		for _, alt := range u.Alternatives {
			rc, ok := c.records[alt.Type]
			if !ok {
				return nil, fmt.Errorf("%w: %q in union %q", ErrUnknownType, alt.Type, uc.def.Name)
			}
			uc.alts[alt.Ordinal] = rc
			uc.encoders[alt.Ordinal] = rc.encode
		}
	}
	return c, nil
}

func (c *Codec) opsFor(f *gen.FieldPlan) (ops, error) {
	if o, ok := nativeOps[f.Shape]; ok {
		return o, nil
	}
	switch f.Shape {
	case gen.ShapeEnum:
		ec, ok := c.enums[f.Type]
		if !ok {
			return ops{}, fmt.Errorf("%w: enum %q", ErrUnknownType, f.Type)
		}
		o := sequence("string", ec.decode, ec.encode)
		if ec.lenient {
			o.read = func(bb *wire.ByteBuffer) (any, error) {
				name, err := ec.decode(bb)
				if err != nil || name == "" {
					return nil, err
				}
				return name, nil
			}
		}
		return o, nil
	case gen.ShapeStruct:
		rc, ok := c.records[f.Type]
		if !ok {
			return ops{}, fmt.Errorf("%w: %q", ErrUnknownType, f.Type)
		}
		return sequence("*Record", rc.decode, rc.encode), nil
	case gen.ShapeUnion:
		uc, ok := c.unions[f.Type]
		if !ok {
			return ops{}, fmt.Errorf("%w: union %q", ErrUnknownType, f.Type)
		}
		read := func(bb *wire.ByteBuffer) (*Union, error) {
			tag, err := bb.ReadVarUint()
			if err != nil {
				return nil, err
			}
			return uc.decode(tag, bb)
		}
		return sequence("*Union", read, uc.encode), nil
	}
	return ops{}, fmt.Errorf("%w: shape %s", ErrTypeMismatch, f.Shape)
}

// ===== records =====

func (rc *recordCodec) encode(bb *wire.ByteBuffer, r *Record) error {
	if r == nil {
		return fmt.Errorf("%w: nil %s", ErrMissingField, rc.def.Name)
	}
	if r.def != rc.def {
		return fmt.Errorf("%w: want %s, got %s", ErrTypeMismatch, rc.def.Name, r.Type())
	}
	message := rc.def.Kind == ast.KindMessage
	for i := range rc.fields {
		fc := &rc.fields[i]
		if fc.plan.Deprecated {
			continue
		}
		v := r.values[i]
		if v == nil {
			if !message || fc.plan.Required {
				return fmt.Errorf("%w: %s.%s", ErrMissingField, rc.def.Name, fc.plan.Name)
			}
			continue
		}
		if message {
			bb.WriteVarUint(fc.plan.ID)
		}
		if err := fc.write(bb, v); err != nil {
			return fmt.Errorf("%s.%s: %w", rc.def.Name, fc.plan.Name, err)
		}
	}
	if message {
		bb.WriteVarUint(0)
	}
	return nil
}

func (rc *recordCodec) newRecord() (*Record, error) {
	r := rc.alloc.Alloc()
	if r == nil || r.def != rc.def {
		return nil, fmt.Errorf("%w: allocator for %s returned a foreign record", ErrTypeMismatch, rc.def.Name)
	}
	return r, nil
}

func (rc *recordCodec) decode(bb *wire.ByteBuffer) (*Record, error) {
	r, err := rc.newRecord()
	if err != nil {
		return nil, err
	}
	if rc.def.Kind == ast.KindStruct {
		for i := range rc.fields {
			v, err := rc.fields[i].read(bb)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", rc.def.Name, rc.fields[i].plan.Name, err)
			}
			r.values[i] = v
		}
		return r, nil
	}

	for {
		id, err := bb.ReadVarUint()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rc.def.Name, err)
		}
		if id == 0 {
			return r, nil
		}
		f, ok := rc.def.FieldByID(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no field with id %d", ErrInvalidMessage, rc.def.Name, id)
		}
		fc := &rc.fields[f.Index]
		v, err := fc.read(bb)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", rc.def.Name, f.Name, err)
		}
		if !f.Deprecated {
			r.values[f.Index] = v
		}
	}
}

// ===== unions =====

// encode writes the ordinal tag followed by the payload.
func (uc *unionCodec) encode(bb *wire.ByteBuffer, u *Union) error {
	if u == nil || u.Type == "" {
		bb.WriteVarUint(0)
		return uc.encoders[0](bb, nil)
	}
	ord, ok := uc.def.Union.Ordinal(u.Type)
	if !ok {
		return fmt.Errorf("%w: %q is not a member of %s", ErrInvalidUnionType, u.Type, uc.def.Name)
	}
	if u.Value == nil {
		return fmt.Errorf("%w: %s variant %s has no value", ErrMissingField, uc.def.Name, u.Type)
	}
	bb.WriteVarUint(ord)
	return uc.encoders[ord](bb, u.Value)
}

func (uc *unionCodec) decode(tag uint32, bb *wire.ByteBuffer) (*Union, error) {
	if tag == 0 {
		return &Union{}, nil
	}
	rc, ok := uc.alts[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no member with tag %d", ErrInvalidUnion, uc.def.Name, tag)
	}
	r, err := rc.decode(bb)
	if err != nil {
		return nil, err
	}
	return &Union{Type: rc.def.Name, Value: r}, nil
}

// ===== enums =====

func (ec *enumCodec) encode(bb *wire.ByteBuffer, name string) error {
	ord, ok := ec.def.Enum.Ordinal(name)
	if !ok {
		return fmt.Errorf("%w: %q is not a member of %s", ErrInvalidEnum, name, ec.def.Name)
	}
	bb.WriteVarUint(ord)
	return nil
}

func (ec *enumCodec) decode(bb *wire.ByteBuffer) (string, error) {
	ord, err := bb.ReadVarUint()
	if err != nil {
		return "", err
	}
	name, ok := ec.def.Enum.Name(ord)
	if !ok && !ec.lenient {
		return "", fmt.Errorf("%w: %d is not a member of %s", ErrInvalidEnum, ord, ec.def.Name)
	}
	return name, nil
}
