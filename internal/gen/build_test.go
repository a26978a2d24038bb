package gen

import (
	"testing"

	"kiwi/internal/ast"
	"kiwi/internal/diag"
	"kiwi/internal/parser"
	"kiwi/internal/sema"
	"kiwi/internal/source"
)

func build(t *testing.T, src string) (*Plan, error) {
	t.Helper()
	fs := source.NewFileSet()
	schema, err := parser.ParseFile(fs.Get(fs.AddVirtual("test.kiwi", []byte(src))))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := sema.Validate(schema); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	return Build(schema)
}

func mustBuild(t *testing.T, src string) *Plan {
	t.Helper()
	plan, err := build(t, src)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return plan
}

func TestBuildShapes(t *testing.T) {
	plan := mustBuild(t, `
enum Color { Red = 1; Green = 2; }
struct P { int x; }
message M { P p = 1; }
union U = P | M;
message All {
	bool b = 1;
	byte y = 2;
	uint8 u8 = 3;
	int8 i8 = 4;
	int16 i16 = 5;
	int32 i32 = 6;
	uint16 u16 = 7;
	uint32 u32 = 8;
	float32 f32 = 9;
	int vi = 10;
	uint vu = 11;
	float vf = 12;
	string s = 13;
	Color c = 14;
	P p = 15;
	M m = 16;
	U u = 17;
}`)
	def, ok := plan.Def("All")
	if !ok {
		t.Fatalf("All not planned")
	}
	want := []Shape{
		ShapeBool, ShapeByte, ShapeByte, ShapeInt8, ShapeInt16, ShapeInt32, ShapeUint16,
		ShapeUint32, ShapeFloat32, ShapeVarInt, ShapeVarUint, ShapeVarFloat, ShapeString,
		ShapeEnum, ShapeStruct, ShapeStruct, ShapeUnion,
	}
	if len(def.Fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(def.Fields), len(want))
	}
	for i, shape := range want {
		if def.Fields[i].Shape != shape {
			t.Errorf("field %s shape = %s, want %s", def.Fields[i].Name, def.Fields[i].Shape, shape)
		}
		if def.Fields[i].Index != i {
			t.Errorf("field %s index = %d, want %d", def.Fields[i].Name, def.Fields[i].Index, i)
		}
	}
}

func TestBuildBulkArrays(t *testing.T) {
	plan := mustBuild(t, "struct A { byte[] a; int32[] b; float32[] c; bool[] d; string[] e; int[] f; }")
	def, _ := plan.Def("A")
	want := map[string]bool{"a": true, "b": true, "c": true, "d": false, "e": false, "f": false}
	for name, bulk := range want {
		f, ok := def.Field(name)
		if !ok {
			t.Fatalf("missing field %s", name)
		}
		if f.Bulk() != bulk {
			t.Errorf("field %s bulk = %v, want %v", name, f.Bulk(), bulk)
		}
	}
}

func TestBuildEnumTable(t *testing.T) {
	plan := mustBuild(t, "enum Color { Red = 1; Green = 2; Neg = -1; }")
	def, _ := plan.Def("Color")
	if def.Kind != ast.KindEnum || def.Enum == nil {
		t.Fatalf("Color is not an enum plan: %+v", def)
	}
	if v, ok := def.Enum.Ordinal("Red"); !ok || v != 1 {
		t.Fatalf("Red = %d %v", v, ok)
	}
	if n, ok := def.Enum.Name(2); !ok || n != "Green" {
		t.Fatalf("2 = %q %v", n, ok)
	}
	if n, ok := def.Enum.Name(0xFFFFFFFF); !ok || n != "Neg" {
		t.Fatalf("negative ordinal lookup = %q %v", n, ok)
	}
	if _, ok := def.Enum.Name(3); ok {
		t.Fatalf("unexpected member for 3")
	}
}

func TestBuildMessageIDs(t *testing.T) {
	plan := mustBuild(t, "message M { int a = 2; string b = 1 [deprecated]; uint c = 3 [!]; }")
	def, _ := plan.Def("M")
	f, ok := def.FieldByID(1)
	if !ok || f.Name != "b" || !f.Deprecated {
		t.Fatalf("id 1 = %+v", f)
	}
	f, _ = def.FieldByID(3)
	if !f.Required {
		t.Fatalf("c should be required")
	}
	if _, ok := def.FieldByID(4); ok {
		t.Fatalf("unexpected field for id 4")
	}
}

func TestBuildUnion(t *testing.T) {
	plan := mustBuild(t, "struct A { int x; }\nmessage B { int y = 1; }\nunion U = A | B { kind; }")
	def, _ := plan.Def("U")
	u := def.Union
	if u == nil || u.Discriminator != "kind" {
		t.Fatalf("union plan = %+v", u)
	}
	if len(u.Alternatives) != 2 {
		t.Fatalf("alternatives = %+v", u.Alternatives)
	}
	if ord, ok := u.Ordinal("B"); !ok || ord != 2 {
		t.Fatalf("B ordinal = %d %v", ord, ok)
	}
	if alt, ok := u.Alternative(1); !ok || alt.Type != "A" || alt.Kind != ast.KindStruct {
		t.Fatalf("alternative 1 = %+v", alt)
	}
	if _, ok := u.Alternative(0); ok {
		t.Fatalf("ordinal 0 must not be an alternative")
	}
	if u.MaxOrdinal() != 2 {
		t.Fatalf("max ordinal = %d", u.MaxOrdinal())
	}
}

func TestBuildSkipsMetadataKinds(t *testing.T) {
	plan := mustBuild(t, "smol S { A = 0; }\nentity E { int a = 1; }\nalias X = int;\nstruct P { int x; }")
	if len(plan.Defs) != 1 || plan.Defs[0].Name != "P" {
		t.Fatalf("defs = %+v", plan.Defs)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		line uint32
		col  uint32
	}{
		{"smol field", "smol S { A = 0; }\nstruct P { S s; }", diag.GenUnsupportedFieldType, 2, 14},
		{"alias field", "alias X = int;\nmessage M { X x = 1; }", diag.GenUnsupportedFieldType, 2, 15},
		{"enum alternative", "enum E { A = 1; }\nunion U = E;", diag.GenInvalidUnionMember, 2, 11},
		{"union alternative", "struct A { int x; }\nunion V = A;\nunion U = V;", diag.GenInvalidUnionMember, 3, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := build(t, tt.src)
			de, ok := diag.AsError(err)
			if !ok {
				t.Fatalf("expected *diag.Error, got %v", err)
			}
			if de.Code != tt.code || de.Pos.Line != tt.line || de.Pos.Col != tt.col {
				t.Fatalf("got %s at %d:%d (%s), want %s at %d:%d", de.Code.ID(), de.Pos.Line, de.Pos.Col, de.Message, tt.code.ID(), tt.line, tt.col)
			}
		})
	}
}
