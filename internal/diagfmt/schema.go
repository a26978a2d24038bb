package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"kiwi/internal/ast"
)

// FormatSchemaPretty renders a parsed schema back to schema text.
// Extensions are already flattened, so the output lists every field
// explicitly and parses back to the same definitions.
func FormatSchemaPretty(w io.Writer, schema *ast.Schema) error {
	var b strings.Builder
	if schema.Package != "" {
		fmt.Fprintf(&b, "package %s;\n", schema.Package)
	}
	for _, def := range schema.Definitions {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		writeDefinition(&b, def)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeDefinition(b *strings.Builder, def *ast.Definition) {
	switch def.Kind {
	case ast.KindUnion:
		writeUnion(b, def)
		return
	case ast.KindAlias:
		target := ""
		if len(def.Fields) > 0 {
			target = def.Fields[0].Type
		}
		fmt.Fprintf(b, "alias %s = %s;\n", def.Name, target)
		return
	}

	fmt.Fprintf(b, "%s %s", def.Kind.Keyword(), def.Name)
	if def.SerializerPath != "" {
		fmt.Fprintf(b, " from %q", def.SerializerPath)
	}
	b.WriteString(" {\n")
	for _, f := range def.Fields {
		b.WriteString("  ")
		switch {
		case def.Kind.IsMemberList():
			fmt.Fprintf(b, "%s = %d", f.Name, f.Value)
		case def.Kind == ast.KindStruct:
			fmt.Fprintf(b, "%s %s", fieldType(f), f.Name)
		default:
			fmt.Fprintf(b, "%s %s = %d", fieldType(f), f.Name, f.Value)
			if f.IsRequired {
				b.WriteString(" [!]")
			}
		}
		if f.IsDeprecated {
			b.WriteString(" [deprecated]")
		}
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
}

func writeUnion(b *strings.Builder, def *ast.Definition) {
	var alts []string
	disc := ""
	for _, f := range def.Fields {
		if f.Type == ast.Discriminator {
			disc = f.Name
			continue
		}
		alts = append(alts, f.Type)
	}
	fmt.Fprintf(b, "union %s = %s", def.Name, strings.Join(alts, " | "))
	if disc != "" {
		fmt.Fprintf(b, " { %s; }\n", disc)
		return
	}
	b.WriteString(";\n")
}

func fieldType(f ast.Field) string {
	if f.IsArray {
		return f.Type + "[]"
	}
	return f.Type
}

// FormatSchemaJSON dumps the schema as indented JSON.
func FormatSchemaJSON(w io.Writer, schema *ast.Schema) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(schema)
}

// FormatSchemaYAML dumps the schema as YAML.
func FormatSchemaYAML(w io.Writer, schema *ast.Schema) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(schema); err != nil {
		return err
	}
	return enc.Close()
}
