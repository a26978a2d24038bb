package codec

import (
	"fmt"

	"kiwi/internal/gen"
)

// Record is a value of one STRUCT or MESSAGE definition.
type Record struct {
	def    *gen.DefPlan
	values []any // nil = absent
}

// NewRecord returns an empty record of def.
func NewRecord(def *gen.DefPlan) *Record {
	return &Record{def: def, values: make([]any, len(def.Fields))}
}

// Type returns the definition name.
func (r *Record) Type() string { return r.def.Name }

// Def returns the definition plan backing the record.
func (r *Record) Def() *gen.DefPlan { return r.def }

// Get returns the field value and whether it is present.
func (r *Record) Get(name string) (any, bool) {
	f, ok := r.def.Field(name)
	if !ok {
		return nil, false
	}
	v := r.values[f.Index]
	return v, v != nil
}

// Has reports whether the field is present.
func (r *Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Set stores a field value. A nil value clears the field.
func (r *Record) Set(name string, v any) error {
	f, ok := r.def.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s has no field %q", ErrUnknownField, r.def.Name, name)
	}
	if v != nil && !accepts(f, v) {
		return fmt.Errorf("%w: %s.%s wants %s, got %T", ErrTypeMismatch, r.def.Name, name, describe(f), v)
	}
	r.values[f.Index] = v
	return nil
}

// MustSet is Set for values known to fit; it panics otherwise.
func (r *Record) MustSet(name string, v any) *Record {
	if err := r.Set(name, v); err != nil {
		panic(err)
	}
	return r
}

// Clear removes a field value.
func (r *Record) Clear(name string) {
	if f, ok := r.def.Field(name); ok {
		r.values[f.Index] = nil
	}
}

// Reset clears every field, keeping the record bound to its definition.
func (r *Record) Reset() {
	clear(r.values)
}

// Union is a value of a UNION definition. Type names the chosen alternative;
// an empty Type is the variant-absent case (wire tag 0).
type Union struct {
	Type  string
	Value *Record
}

// accepts checks the dynamic type of v against the field's shape.
func accepts(f *gen.FieldPlan, v any) bool {
	switch f.Shape {
	case gen.ShapeBool:
		return is[bool](v, f.IsArray)
	case gen.ShapeByte:
		return is[byte](v, f.IsArray)
	case gen.ShapeInt8:
		return is[int8](v, f.IsArray)
	case gen.ShapeInt16:
		return is[int16](v, f.IsArray)
	case gen.ShapeInt32, gen.ShapeVarInt:
		return is[int32](v, f.IsArray)
	case gen.ShapeUint16:
		return is[uint16](v, f.IsArray)
	case gen.ShapeUint32, gen.ShapeVarUint:
		return is[uint32](v, f.IsArray)
	case gen.ShapeFloat32, gen.ShapeVarFloat:
		return is[float32](v, f.IsArray)
	case gen.ShapeString, gen.ShapeEnum:
		return is[string](v, f.IsArray)
	case gen.ShapeStruct:
		if f.IsArray {
			_, ok := v.([]*Record)
			return ok
		}
		rec, ok := v.(*Record)
		return ok && rec != nil && rec.Type() == f.Type
	case gen.ShapeUnion:
		return is[*Union](v, f.IsArray)
	}
	return false
}

func is[T any](v any, array bool) bool {
	if array {
		_, ok := v.([]T)
		return ok
	}
	_, ok := v.(T)
	return ok
}

func describe(f *gen.FieldPlan) string {
	var elem string
	switch f.Shape {
	case gen.ShapeVarInt:
		elem = "int32"
	case gen.ShapeVarUint:
		elem = "uint32"
	case gen.ShapeVarFloat:
		elem = "float32"
	case gen.ShapeEnum:
		elem = "string"
	case gen.ShapeStruct:
		elem = "*Record(" + f.Type + ")"
	case gen.ShapeUnion:
		elem = "*Union"
	default:
		elem = f.Shape.String()
	}
	if f.IsArray {
		return "[]" + elem
	}
	return elem
}
