package gogen

import (
	"kiwi/internal/gen"
)

func (e *Emitter) emitUnion(def *gen.DefPlan) {
	name := e.typeNames[def.Name]
	tag := e.tagTypes[def.Name]
	alts := def.Union.Alternatives

	e.printf("// %s identifies the member held by a %s.\n", tag, name)
	e.printf("type %s uint32\n\n", tag)
	e.printf("const (\n")
	for _, alt := range alts {
		e.printf("\t%s%s %s = %d\n", tag, e.typeNames[alt.Type], tag, alt.Ordinal)
	}
	e.printf(")\n\n")

	members := make([]string, len(alts))
	for i, alt := range alts {
		members[i] = "*" + e.typeNames[alt.Type]
	}
	e.emitDoc(def, "union")
	e.printf("//\n// Members: %s. A nil %s is the absent variant (tag 0).\n", joinWords(members), name)
	e.printf("type %s interface {\n\t%s() %s\n}\n\n", name, tag, tag)
	for _, alt := range alts {
		altName := e.typeNames[alt.Type]
		e.printf("// %s implements %s.\n", tag, name)
		e.printf("func (*%s) %s() %s { return %s%s }\n\n", altName, tag, tag, tag, altName)
	}

	e.printf("// Encode%s writes the tag of v followed by its payload.\n", name)
	e.printf("func Encode%s(bb *wire.ByteBuffer, v %s) error {\n", name, name)
	e.printf("\tswitch v := v.(type) {\n")
	e.printf("\tcase nil:\n\t\tbb.WriteVarUint(0)\n\t\treturn nil\n")
	for _, alt := range alts {
		altName := e.typeNames[alt.Type]
		e.printf("\tcase *%s:\n", altName)
		e.printf("\t\tif v == nil {\n")
		e.printf("\t\t\treturn fmt.Errorf(\"%%w: nil %s in %s\", wire.ErrMissingField)\n\t\t}\n", alt.Type, def.Name)
		e.printf("\t\tbb.WriteVarUint(%d)\n", alt.Ordinal)
		e.printf("\t\treturn v.EncodeTo(bb)\n")
	}
	e.printf("\tdefault:\n")
	e.printf("\t\treturn fmt.Errorf(\"%%w: %%T is not a member of %s\", wire.ErrInvalidUnionType, v)\n\t}\n}\n\n", def.Name)

	e.printf("// Decode%s reads the member selected by an already read tag.\n", name)
	e.printf("// Tag 0 yields nil.\n")
	e.printf("func Decode%s(tag uint32, bb *wire.ByteBuffer) (%s, error) {\n", name, name)
	e.printf("\tswitch tag {\n\tcase 0:\n\t\treturn nil, nil\n")
	for _, alt := range alts {
		e.printf("\tcase %d:\n", alt.Ordinal)
		e.printf("\t\tv, err := decode%s(bb)\n", e.typeNames[alt.Type])
		e.printf("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n\t\treturn v, nil\n")
	}
	e.printf("\tdefault:\n")
	e.printf("\t\treturn nil, fmt.Errorf(\"%%w: %s has no member with tag %%d\", wire.ErrInvalidUnion, tag)\n\t}\n}\n\n", def.Name)

	e.printf("func read%s(bb *wire.ByteBuffer) (%s, error) {\n", name, name)
	e.printf("\ttag, err := bb.ReadVarUint()\n\tif err != nil {\n\t\treturn nil, err\n\t}\n")
	e.printf("\treturn Decode%s(tag, bb)\n}\n\n", name)
}

func joinWords(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	out := ""
	for i, it := range items {
		switch {
		case i == 0:
		case i == len(items)-1:
			out += " or "
		default:
			out += ", "
		}
		out += it
	}
	return out
}

func (e *Emitter) emitAllocator() {
	if !e.hasRecords() {
		return
	}
	e.printf("// Allocator overrides how decoding constructs records. Nil members use new.\n")
	e.printf("type Allocator struct {\n")
	for _, def := range e.plan.Defs {
		if isRecord(def) {
			name := e.typeNames[def.Name]
			e.printf("\t%s func() *%s\n", name, name)
		}
	}
	e.printf("}\n\n")
	e.printf("var allocator Allocator\n\n")
	e.printf("// SetAllocator installs a for subsequent decodes. It must not be called\n")
	e.printf("// concurrently with decoding.\n")
	e.printf("func SetAllocator(a Allocator) {\n\tallocator = a\n}\n\n")
	for _, def := range e.plan.Defs {
		if !isRecord(def) {
			continue
		}
		name := e.typeNames[def.Name]
		e.printf("func new%s() *%s {\n", name, name)
		e.printf("\tif allocator.%s != nil {\n\t\treturn allocator.%s()\n\t}\n", name, name)
		e.printf("\treturn new(%s)\n}\n\n", name)
	}
}
