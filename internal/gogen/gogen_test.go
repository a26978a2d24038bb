package gogen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"kiwi/internal/diag"
	"kiwi/internal/gen"
	kparser "kiwi/internal/parser"
	"kiwi/internal/sema"
	"kiwi/internal/source"
)

func plan(t *testing.T, src string) *gen.Plan {
	t.Helper()
	fs := source.NewFileSet()
	schema, err := kparser.ParseFile(fs.Get(fs.AddVirtual("test.kiwi", []byte(src))))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := sema.Validate(schema); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	p, err := gen.Build(schema)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return p
}

func emit(t *testing.T, src string, opts Options) (string, *ast.File) {
	t.Helper()
	out, err := Emit(plan(t, src), opts)
	if err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	file, err := parser.ParseFile(token.NewFileSet(), "out.go", out, parser.ParseComments)
	if err != nil {
		t.Fatalf("emitted code does not parse: %v\n%s", err, out)
	}
	return string(out), file
}

func topLevel(file *ast.File) map[string]bool {
	out := make(map[string]bool)
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				out[d.Name.Name] = true
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					out[s.Name.Name] = true
				case *ast.ValueSpec:
					for _, n := range s.Names {
						out[n.Name] = true
					}
				}
			}
		}
	}
	return out
}

const sample = `
package game;

enum Color { Red = 1; Green = 2; }
struct Point { float x; float y; }
message Node {
	string name = 1;
	int weight = 2 [!];
	Node[] children = 3;
	uint legacy = 4 [deprecated];
	Color color = 5;
	Shape shape = 6;
	byte[] blob = 7;
}
struct Circle { Point center; float radius; }
message Square { float side = 1; }
union Shape = Circle | Square { kind; }
`

func TestEmitDeclarations(t *testing.T) {
	out, file := emit(t, sample, Options{Source: "game.kiwi"})
	if file.Name.Name != "game" {
		t.Fatalf("package = %s", file.Name.Name)
	}
	if !strings.HasPrefix(out, "// Code generated by kiwic from game.kiwi. DO NOT EDIT.") {
		t.Fatalf("missing generated header:\n%s", out)
	}
	names := topLevel(file)
	for _, want := range []string{
		"Color", "ColorRed", "ColorGreen", "ParseColor", "encodeColor", "decodeColor",
		"Point", "DecodePoint", "encodePoint", "decodePoint", "newPoint",
		"Node", "DecodeNode",
		"Shape", "ShapeKind", "ShapeKindCircle", "ShapeKindSquare", "EncodeShape", "DecodeShape", "readShape",
		"Allocator", "SetAllocator", "allocator",
	} {
		if !names[want] {
			t.Errorf("missing top-level %s", want)
		}
	}
}

func TestEmitFieldTypes(t *testing.T) {
	out, _ := emit(t, sample, Options{})
	for _, want := range []string{
		"X float32",
		"Name     *string",
		"Weight   *int32 // required",
		"Children []*Node",
		"Color    *Color",
		"Shape    Shape",
		"Blob     []byte",
		"Center *Point",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Legacy") {
		t.Errorf("deprecated field should have no Go field")
	}
}

func TestEmitWireCalls(t *testing.T) {
	out, _ := emit(t, sample, Options{})
	for _, want := range []string{
		"bb.WriteVarFloat(m.X)",
		"bb.WriteVarUint(0)",
		"wire.WriteArray(bb, m.Children, encodeNode)",
		"wire.ReadArray(bb, decodeNode)",
		"bb.WriteByteArray(m.Blob)",
		"bb.ReadByteArray()",
		"EncodeShape(bb, m.Shape)",
		"readShape(bb)",
		"encodeColor(bb, *m.Color)",
		"case 4:\n\t\t\tif _, err := bb.ReadVarUint(); err != nil {",
		"wire.ErrInvalidMessage",
		"wire.ErrInvalidUnion,",
		"wire.ErrMissingField",
		"func (*Circle) ShapeKind() ShapeKind { return ShapeKindCircle }",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestEmitPackageAndImport(t *testing.T) {
	out, file := emit(t, "struct P { int x; }", Options{Package: "My-Pkg", WireImport: "example.com/kiwi/runtime"})
	if file.Name.Name != "mypkg" {
		t.Fatalf("package = %s", file.Name.Name)
	}
	if !strings.Contains(out, `wire "example.com/kiwi/runtime"`) {
		t.Fatalf("wire import should be aliased:\n%s", out)
	}

	_, file = emit(t, "struct P { int x; }", Options{})
	if file.Name.Name != "schema" {
		t.Fatalf("default package = %s", file.Name.Name)
	}
}

func TestEmitEnumsOnly(t *testing.T) {
	out, _ := emit(t, "enum E { A = 1; }", Options{})
	if strings.Contains(out, "Allocator") {
		t.Fatalf("enum-only schema needs no allocator")
	}
}

func TestEmitLenientEnums(t *testing.T) {
	strict, _ := emit(t, "enum E { A = 1; }", Options{})
	lenient, _ := emit(t, "enum E { A = 1; }", Options{LenientEnums: true})
	if strings.Count(strict, "is not a member of E") != 3 {
		t.Fatalf("strict decode should check ordinals:\n%s", strict)
	}
	if strings.Count(lenient, "is not a member of E") != 2 {
		t.Fatalf("lenient decode should not check ordinals:\n%s", lenient)
	}
}

func TestEmitFieldNameClashes(t *testing.T) {
	out, _ := emit(t, "struct P { int encode_to; int EncodeTo; int shape_kind; }\nunion Shape = P { kind; }", Options{})
	for _, want := range []string{"EncodeTo_ ", "EncodeTo__ ", "ShapeKind_ "} {
		if !strings.Contains(out, want) {
			t.Errorf("missing field %q in:\n%s", want, out)
		}
	}
}

func TestEmitCollision(t *testing.T) {
	_, err := Emit(plan(t, "enum Color { Red = 1; }\nstruct ColorRed { int x; }"), Options{})
	de, ok := diag.AsError(err)
	if !ok || de.Code != diag.GenEmitFailed {
		t.Fatalf("expected GEN4003, got %v", err)
	}
	if de.Pos.Line != 2 {
		t.Fatalf("collision reported at line %d", de.Pos.Line)
	}
}

func TestNames(t *testing.T) {
	tests := map[string]string{
		"name":        "Name",
		"weightKg":    "WeightKg",
		"snake_case":  "SnakeCase",
		"_private":    "Private",
		"_":           "X",
		"already_Big": "AlreadyBig",
	}
	for in, want := range tests {
		if got := exported(in); got != want {
			t.Errorf("exported(%q) = %q, want %q", in, got, want)
		}
	}
	if got := packageName("9Lives_x"); got != "lives_x" {
		t.Errorf("packageName = %q", got)
	}
}
