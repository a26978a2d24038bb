package ast

import "testing"

func TestNativeAndReserved(t *testing.T) {
	for _, name := range []string{"int", "uint32", "float32", "discriminator", "string"} {
		if !IsNative(name) {
			t.Errorf("%q must be native", name)
		}
	}
	for _, name := range []string{"Int", "Color", "lowp"} {
		if IsNative(name) {
			t.Errorf("%q must not be native", name)
		}
	}
	if !IsReserved("ByteBuffer") || IsReserved("Buffer") {
		t.Fatal("reserved names mismatch")
	}
}

func TestLookupAndFields(t *testing.T) {
	s := &Schema{Definitions: []*Definition{
		{Name: "A", Kind: KindStruct, Fields: []Field{{Name: "x", Type: "int", Value: 1}, {Name: "y", Type: "int", Value: 2}}},
		{Name: "A", Kind: KindEnum},
	}}
	if got := s.Lookup("A"); got == nil || got.Kind != KindStruct {
		t.Fatal("Lookup must return the first definition")
	}
	if s.Lookup("B") != nil {
		t.Fatal("unexpected definition B")
	}
	if idx := s.Index(); idx["A"].Kind != KindStruct {
		t.Fatal("Index must keep the first definition")
	}
	def := s.Definitions[0]
	if f, ok := def.Field("y"); !ok || f.Value != 2 {
		t.Fatal("Field(y) lookup failed")
	}
	if f, ok := def.FieldByValue(1); !ok || f.Name != "x" {
		t.Fatal("FieldByValue(1) lookup failed")
	}
}

func TestKindText(t *testing.T) {
	b, _ := KindMessage.MarshalText()
	if string(b) != "MESSAGE" || KindMessage.Keyword() != "message" {
		t.Fatalf("unexpected kind text %q", b)
	}
	if !KindEntity.HasExplicitIDs() || KindStruct.HasExplicitIDs() {
		t.Fatal("HasExplicitIDs mismatch")
	}
}

func TestKindUnmarshalText(t *testing.T) {
	var k DefKind
	if err := k.UnmarshalText([]byte("UNION")); err != nil || k != KindUnion {
		t.Fatalf("UnmarshalText(UNION) = %v, %v", k, err)
	}
	if err := k.UnmarshalText([]byte("TABLE")); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
