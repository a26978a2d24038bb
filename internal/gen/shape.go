package gen

// Shape is the wire shape of one field element.
type Shape uint8

const (
	ShapeInvalid Shape = iota
	ShapeBool
	ShapeByte
	ShapeInt8
	ShapeInt16
	ShapeInt32
	ShapeUint16
	ShapeUint32
	ShapeFloat32
	ShapeVarInt
	ShapeVarUint
	ShapeVarFloat
	ShapeString
	ShapeEnum
	// ShapeStruct covers references to STRUCT and MESSAGE definitions.
	ShapeStruct
	ShapeUnion
)

var shapeNames = [...]string{
	ShapeInvalid:  "invalid",
	ShapeBool:     "bool",
	ShapeByte:     "byte",
	ShapeInt8:     "int8",
	ShapeInt16:    "int16",
	ShapeInt32:    "int32",
	ShapeUint16:   "uint16",
	ShapeUint32:   "uint32",
	ShapeFloat32:  "float32",
	ShapeVarInt:   "varint",
	ShapeVarUint:  "varuint",
	ShapeVarFloat: "varfloat",
	ShapeString:   "string",
	ShapeEnum:     "enum",
	ShapeStruct:   "struct",
	ShapeUnion:    "union",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "invalid"
}

// nativeShapes maps built-in type names to shapes.
var nativeShapes = map[string]Shape{
	"bool":    ShapeBool,
	"byte":    ShapeByte,
	"uint8":   ShapeByte,
	"int8":    ShapeInt8,
	"int16":   ShapeInt16,
	"int32":   ShapeInt32,
	"uint16":  ShapeUint16,
	"uint32":  ShapeUint32,
	"float32": ShapeFloat32,
	"int":     ShapeVarInt,
	"uint":    ShapeVarUint,
	"float":   ShapeVarFloat,
	"string":  ShapeString,
}

// NativeShape returns the shape of a built-in type.
func NativeShape(typeName string) (Shape, bool) {
	s, ok := nativeShapes[typeName]
	return s, ok
}

// Bulk reports whether arrays of this shape use a typed-array primitive.
func (s Shape) Bulk() bool {
	switch s {
	case ShapeByte, ShapeInt8, ShapeInt16, ShapeInt32, ShapeUint16, ShapeUint32, ShapeFloat32:
		return true
	}
	return false
}

// Native reports whether the shape is a primitive buffer operation.
func (s Shape) Native() bool {
	return s >= ShapeBool && s <= ShapeString
}
