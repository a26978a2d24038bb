package codec

import (
	"errors"
	"testing"
)

func TestRecordSetChecksTypes(t *testing.T) {
	c := compile(t, everything)
	r := newRecord(t, c, "Scalars")
	tests := []struct {
		field string
		value any
		ok    bool
	}{
		{"b", true, true},
		{"b", 1, false},
		{"vi", int32(3), true},
		{"vi", 3, false},
		{"vu", uint32(3), true},
		{"vf", float32(1), true},
		{"vf", 1.0, false},
		{"c", "Red", true},
		{"p", newRecord(t, c, "Point"), true},
		{"p", newRecord(t, c, "Scalars"), false},
		{"s", []string{"x"}, false},
	}
	for _, tt := range tests {
		err := r.Set(tt.field, tt.value)
		if tt.ok && err != nil {
			t.Errorf("Set(%s, %T) unexpected error: %v", tt.field, tt.value, err)
		}
		if !tt.ok && !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("Set(%s, %T) = %v, want ErrTypeMismatch", tt.field, tt.value, err)
		}
	}
	if err := r.Set("missing", 1); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestRecordClearAndReset(t *testing.T) {
	c := compile(t, messages)
	r := newRecord(t, c, "Node", "name", "a", "weight", int32(1))
	r.Clear("name")
	if r.Has("name") || !r.Has("weight") {
		t.Fatalf("clear removed the wrong field")
	}
	if err := r.Set("weight", nil); err != nil || r.Has("weight") {
		t.Fatalf("nil set should clear, err=%v", err)
	}
	r.MustSet("name", "b").Reset()
	if r.Has("name") {
		t.Fatalf("reset left values behind")
	}
}

func TestAllocatorIsUsedForDecode(t *testing.T) {
	var calls int
	var c *Codec
	c = compile(t, "struct P { int x; }\nstruct Q { P p; P[] more; }", WithAllocator("P", AllocatorFunc(func() *Record {
		calls++
		def, _ := c.Plan().Def("P")
		return NewRecord(def)
	})))
	p := newRecord(t, c, "P", "x", int32(1))
	q := newRecord(t, c, "Q", "p", p, "more", []*Record{p, p})
	calls = 0
	if _, err := c.Decode("Q", mustEncode(t, c, q)); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if calls != 3 {
		t.Fatalf("allocator called %d times, want 3", calls)
	}
}

func TestAllocatorForeignRecord(t *testing.T) {
	var c *Codec
	c = compile(t, "struct P { int x; }\nstruct R { int y; }", WithAllocator("P", AllocatorFunc(func() *Record {
		def, _ := c.Plan().Def("R")
		return NewRecord(def)
	})))
	if _, err := c.Decode("P", []byte{2}); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestAllocatorUnknownType(t *testing.T) {
	c := compile(t, "struct P { int x; }")
	if _, err := Compile(c.Plan(), WithAllocator("Nope", AllocatorFunc(func() *Record { return nil }))); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestRecordPool(t *testing.T) {
	c := compile(t, messages)
	pool, err := NewRecordPool(c.Plan(), "Node")
	if err != nil {
		t.Fatalf("NewRecordPool: %v", err)
	}
	pooled, err := Compile(c.Plan(), WithAllocator("Node", pool))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	data := []byte{1, 1, 'x', 0}
	r, err := pooled.Decode("Node", data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	pool.Release(r)
	again := pool.Alloc()
	if again.Has("name") {
		t.Fatalf("pooled record was not reset")
	}
	if _, err := NewRecordPool(c.Plan(), "Missing"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func mustEncode(t *testing.T, c *Codec, r *Record) []byte {
	t.Helper()
	data, err := c.Encode(r)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return data
}
