package gogen

import (
	"kiwi/internal/ast"
	"kiwi/internal/gen"
)

type nativeOp struct {
	goType string
	op     string // ByteBuffer method suffix
	bulk   string // typed-array method suffix, if any
}

var nativeOps = map[gen.Shape]nativeOp{
	gen.ShapeBool:     {"bool", "Bool", ""},
	gen.ShapeByte:     {"byte", "Uint8", "ByteArray"},
	gen.ShapeInt8:     {"int8", "Int8", "Int8Array"},
	gen.ShapeInt16:    {"int16", "Int16", "Int16Array"},
	gen.ShapeInt32:    {"int32", "Int32", "Int32Array"},
	gen.ShapeUint16:   {"uint16", "Uint16", "Uint16Array"},
	gen.ShapeUint32:   {"uint32", "Uint32", "Uint32Array"},
	gen.ShapeFloat32:  {"float32", "Float32", "Float32Array"},
	gen.ShapeVarInt:   {"int32", "VarInt", ""},
	gen.ShapeVarUint:  {"uint32", "VarUint", ""},
	gen.ShapeVarFloat: {"float32", "VarFloat", ""},
	gen.ShapeString:   {"string", "String", ""},
}

// elemType is the Go type of one element of f.
func (e *Emitter) elemType(f *gen.FieldPlan) string {
	if op, ok := nativeOps[f.Shape]; ok {
		return op.goType
	}
	name := e.typeNames[f.Type]
	if f.Shape == gen.ShapeStruct {
		return "*" + name
	}
	return name
}

// optionalByPointer reports whether a MESSAGE field is wrapped in a pointer
// to express absence.
func optionalByPointer(def *gen.DefPlan, f *gen.FieldPlan) bool {
	if def.Kind != ast.KindMessage || f.IsArray {
		return false
	}
	_, native := nativeOps[f.Shape]
	return native || f.Shape == gen.ShapeEnum
}

func (e *Emitter) fieldType(def *gen.DefPlan, f *gen.FieldPlan) string {
	t := e.elemType(f)
	switch {
	case f.IsArray:
		return "[]" + t
	case optionalByPointer(def, f):
		return "*" + t
	}
	return t
}

// readCall is an expression of type (T, error) reading the whole field.
func (e *Emitter) readCall(f *gen.FieldPlan) string {
	if op, ok := nativeOps[f.Shape]; ok {
		switch {
		case f.IsArray && op.bulk != "":
			return "bb.Read" + op.bulk + "()"
		case f.IsArray:
			return "wire.ReadArray(bb, (*wire.ByteBuffer).Read" + op.op + ")"
		default:
			return "bb.Read" + op.op + "()"
		}
	}
	fn := e.elemReader(f)
	if f.IsArray {
		return "wire.ReadArray(bb, " + fn + ")"
	}
	return fn + "(bb)"
}

func (e *Emitter) elemReader(f *gen.FieldPlan) string {
	name := e.typeNames[f.Type]
	if f.Shape == gen.ShapeUnion {
		return "read" + name
	}
	return "decode" + name
}

func (e *Emitter) elemWriter(f *gen.FieldPlan) string {
	name := e.typeNames[f.Type]
	if f.Shape == gen.ShapeUnion {
		return "Encode" + name
	}
	return "encode" + name
}

// writeCall writes value x of field f. fallible reports whether the
// expression returns an error.
func (e *Emitter) writeCall(f *gen.FieldPlan, x string) (call string, fallible bool) {
	if op, ok := nativeOps[f.Shape]; ok {
		switch {
		case f.IsArray && op.bulk != "":
			return "bb.Write" + op.bulk + "(" + x + ")", false
		case f.IsArray:
			return "wire.WriteEach(bb, " + x + ", (*wire.ByteBuffer).Write" + op.op + ")", false
		default:
			return "bb.Write" + op.op + "(" + x + ")", false
		}
	}
	fn := e.elemWriter(f)
	if f.IsArray {
		return "wire.WriteArray(bb, " + x + ", " + fn + ")", true
	}
	return fn + "(bb, " + x + ")", true
}
