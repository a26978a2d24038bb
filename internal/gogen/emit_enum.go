package gogen

import (
	"kiwi/internal/gen"
)

func (e *Emitter) emitDoc(def *gen.DefPlan, what string) {
	name := e.typeNames[def.Name]
	e.printf("// %s is the %s %s.\n", name, what, def.Name)
	if def.SerializerPath != "" {
		e.printf("//\n// Serializer: %s\n", def.SerializerPath)
	}
}

func (e *Emitter) emitEnum(def *gen.DefPlan) {
	name := e.typeNames[def.Name]
	names := unexported(name) + "Names"

	e.emitDoc(def, "enum")
	e.printf("type %s uint32\n\n", name)
	e.printf("const (\n")
	for _, m := range def.Enum.Members {
		e.printf("\t%s%s %s = %d\n", name, exported(m.Name), name, m.Ordinal)
	}
	e.printf(")\n\n")

	e.printf("var %s = map[%s]string{\n", names, name)
	for _, m := range def.Enum.Members {
		e.printf("\t%s%s: %q,\n", name, exported(m.Name), m.Name)
	}
	e.printf("}\n\n")

	e.printf("// String returns the schema name of v.\n")
	e.printf("func (v %s) String() string {\n", name)
	e.printf("\tif name, ok := %s[v]; ok {\n\t\treturn name\n\t}\n", names)
	e.printf("\treturn fmt.Sprintf(\"%s(%%d)\", uint32(v))\n}\n\n", name)

	e.printf("// Parse%s looks a member up by its schema name.\n", name)
	e.printf("func Parse%s(name string) (%s, error) {\n", name, name)
	e.printf("\tfor v, n := range %s {\n\t\tif n == name {\n\t\t\treturn v, nil\n\t\t}\n\t}\n", names)
	e.printf("\treturn 0, fmt.Errorf(\"%%w: %%q is not a member of %s\", wire.ErrInvalidEnum, name)\n}\n\n", def.Name)

	e.printf("func encode%s(bb *wire.ByteBuffer, v %s) error {\n", name, name)
	e.printf("\tif _, ok := %s[v]; !ok {\n", names)
	e.printf("\t\treturn fmt.Errorf(\"%%w: %%d is not a member of %s\", wire.ErrInvalidEnum, uint32(v))\n\t}\n", def.Name)
	e.printf("\tbb.WriteVarUint(uint32(v))\n\treturn nil\n}\n\n")

	e.printf("func decode%s(bb *wire.ByteBuffer) (%s, error) {\n", name, name)
	e.printf("\tv, err := bb.ReadVarUint()\n\tif err != nil {\n\t\treturn 0, err\n\t}\n")
	if !e.opts.LenientEnums {
		e.printf("\tif _, ok := %s[%s(v)]; !ok {\n", names, name)
		e.printf("\t\treturn 0, fmt.Errorf(\"%%w: %%d is not a member of %s\", wire.ErrInvalidEnum, v)\n\t}\n", def.Name)
	}
	e.printf("\treturn %s(v), nil\n}\n\n", name)
}
