package gogen

import (
	"kiwi/internal/ast"
	"kiwi/internal/gen"
)

func (e *Emitter) emitRecord(def *gen.DefPlan) {
	name := e.typeNames[def.Name]

	e.emitDoc(def, kindWord(def))
	e.printf("type %s struct {\n", name)
	for i := range def.Fields {
		f := &def.Fields[i]
		if f.Deprecated {
			continue
		}
		e.printf("\t%s %s", e.fieldNames[f], e.fieldType(def, f))
		if f.Required && def.Kind == ast.KindMessage {
			e.printf(" // required")
		}
		e.printf("\n")
	}
	e.printf("}\n\n")

	e.printf("// Encode serializes m into a new buffer.\n")
	e.printf("func (m *%s) Encode() ([]byte, error) {\n", name)
	e.printf("\tbb := wire.NewByteBuffer()\n")
	e.printf("\tif err := m.EncodeTo(bb); err != nil {\n\t\treturn nil, err\n\t}\n")
	e.printf("\treturn bb.Bytes(), nil\n}\n\n")

	if def.Kind == ast.KindMessage {
		e.emitMessageEncode(def)
		e.emitMessageDecode(def)
	} else {
		e.emitStructEncode(def)
		e.emitStructDecode(def)
	}

	e.printf("// Decode%s parses data as a %s.\n", name, def.Name)
	e.printf("func Decode%s(data []byte) (*%s, error) {\n", name, name)
	e.printf("\treturn decode%s(wire.NewByteBufferFrom(data))\n}\n\n", name)

	e.printf("func encode%s(bb *wire.ByteBuffer, v *%s) error {\n", name, name)
	e.printf("\tif v == nil {\n\t\treturn fmt.Errorf(\"%%w: nil %s\", wire.ErrMissingField)\n\t}\n", def.Name)
	e.printf("\treturn v.EncodeTo(bb)\n}\n\n")

	e.printf("func decode%s(bb *wire.ByteBuffer) (*%s, error) {\n", name, name)
	e.printf("\tv := new%s()\n", name)
	e.printf("\tif err := v.DecodeFrom(bb); err != nil {\n\t\treturn nil, err\n\t}\n")
	e.printf("\treturn v, nil\n}\n\n")
}

func kindWord(def *gen.DefPlan) string {
	if def.Kind == ast.KindMessage {
		return "message"
	}
	return "struct"
}

// emitWrite writes one field value x, returning on failure.
func (e *Emitter) emitWrite(def *gen.DefPlan, f *gen.FieldPlan, x, indent string) {
	call, fallible := e.writeCall(f, x)
	if !fallible {
		e.printf("%s%s\n", indent, call)
		return
	}
	e.printf("%sif err := %s; err != nil {\n", indent, call)
	e.printf("%s\treturn fmt.Errorf(\"%s.%s: %%w\", err)\n", indent, def.Name, f.Name)
	e.printf("%s}\n", indent)
}

func (e *Emitter) emitStructEncode(def *gen.DefPlan) {
	name := e.typeNames[def.Name]
	e.printf("// EncodeTo appends m to bb. Every field is written, in order.\n")
	e.printf("func (m *%s) EncodeTo(bb *wire.ByteBuffer) error {\n", name)
	for i := range def.Fields {
		f := &def.Fields[i]
		e.emitWrite(def, f, "m."+e.fieldNames[f], "\t")
	}
	e.printf("\treturn nil\n}\n\n")
}

func (e *Emitter) emitStructDecode(def *gen.DefPlan) {
	name := e.typeNames[def.Name]
	e.printf("// DecodeFrom reads every field of m from bb.\n")
	e.printf("func (m *%s) DecodeFrom(bb *wire.ByteBuffer) error {\n", name)
	if len(def.Fields) > 0 {
		e.printf("\tvar err error\n")
	}
	for i := range def.Fields {
		f := &def.Fields[i]
		e.printf("\tif m.%s, err = %s; err != nil {\n", e.fieldNames[f], e.readCall(f))
		e.printf("\t\treturn fmt.Errorf(\"%s.%s: %%w\", err)\n\t}\n", def.Name, f.Name)
	}
	e.printf("\treturn nil\n}\n\n")
}

func (e *Emitter) emitMessageEncode(def *gen.DefPlan) {
	name := e.typeNames[def.Name]
	e.printf("// EncodeTo appends m to bb. Nil fields are omitted.\n")
	e.printf("func (m *%s) EncodeTo(bb *wire.ByteBuffer) error {\n", name)
	for i := range def.Fields {
		f := &def.Fields[i]
		if f.Deprecated {
			continue
		}
		field := "m." + e.fieldNames[f]
		value := field
		if optionalByPointer(def, f) {
			value = "*" + field
		}
		if f.Required {
			e.printf("\tif %s == nil {\n", field)
			e.printf("\t\treturn fmt.Errorf(\"%%w: %s.%s\", wire.ErrMissingField)\n\t}\n", def.Name, f.Name)
			e.printf("\tbb.WriteVarUint(%d)\n", f.ID)
			e.emitWrite(def, f, value, "\t")
			continue
		}
		e.printf("\tif %s != nil {\n", field)
		e.printf("\t\tbb.WriteVarUint(%d)\n", f.ID)
		e.emitWrite(def, f, value, "\t\t")
		e.printf("\t}\n")
	}
	e.printf("\tbb.WriteVarUint(0)\n\treturn nil\n}\n\n")
}

func (e *Emitter) emitMessageDecode(def *gen.DefPlan) {
	name := e.typeNames[def.Name]
	e.printf("// DecodeFrom reads fields into m until the end tag. Fields missing\n")
	e.printf("// from the input keep their current values.\n")
	e.printf("func (m *%s) DecodeFrom(bb *wire.ByteBuffer) error {\n", name)
	e.printf("\tfor {\n")
	e.printf("\t\ttag, err := bb.ReadVarUint()\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n")
	e.printf("\t\tswitch tag {\n\t\tcase 0:\n\t\t\treturn nil\n")
	for i := range def.Fields {
		f := &def.Fields[i]
		e.printf("\t\tcase %d:\n", f.ID)
		if f.Deprecated {
			e.printf("\t\t\tif _, err := %s; err != nil {\n", e.readCall(f))
			e.printf("\t\t\t\treturn fmt.Errorf(\"%s.%s: %%w\", err)\n\t\t\t}\n", def.Name, f.Name)
			continue
		}
		e.printf("\t\t\tv, err := %s\n", e.readCall(f))
		e.printf("\t\t\tif err != nil {\n\t\t\t\treturn fmt.Errorf(\"%s.%s: %%w\", err)\n\t\t\t}\n", def.Name, f.Name)
		if optionalByPointer(def, f) {
			e.printf("\t\t\tm.%s = &v\n", e.fieldNames[f])
		} else {
			e.printf("\t\t\tm.%s = v\n", e.fieldNames[f])
		}
	}
	e.printf("\t\tdefault:\n")
	e.printf("\t\t\treturn fmt.Errorf(\"%%w: %s has no field with id %%d\", wire.ErrInvalidMessage, tag)\n", def.Name)
	e.printf("\t\t}\n\t}\n}\n\n")
}
