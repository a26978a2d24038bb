package source

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestFileSetKeepsVersions(t *testing.T) {
	fs := NewFileSet()
	id1 := fs.Add("schemas/../game.kiwi", []byte("package a;"), 0)
	id2 := fs.Add("game.kiwi", []byte("package b;"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("ids = %d, %d", id1, id2)
	}
	f, ok := fs.Lookup("./game.kiwi")
	if !ok || f.ID != id2 {
		t.Fatalf("Lookup = %v, %v; want id %d", f, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "package a;" {
		t.Fatalf("first version changed: %q", got)
	}
	if _, ok := fs.Lookup("other.kiwi"); ok {
		t.Fatalf("unexpected hit")
	}
}

func TestResolvePositions(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pos.kiwi", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{2, LineCol{1, 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{2, 1}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{9, LineCol{4, 3}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: want %+v, got %+v", tt.off, tt.want, start)
		}
	}
}

func TestLines(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("lines.kiwi", []byte("a\nb\n\nc\n")))
	if f.LineCount() != 4 {
		t.Fatalf("LineCount = %d, want 4", f.LineCount())
	}
	for n, want := range map[uint32]string{0: "", 1: "a", 2: "b", 3: "", 4: "c", 5: "", 6: ""} {
		if got := f.GetLine(n); got != want {
			t.Fatalf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestTextClampsSpan(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.kiwi", []byte("struct Point {}"))
	if got := fs.Text(Span{File: id, Start: 7, End: 12}); got != "Point" {
		t.Fatalf("Text = %q", got)
	}
	if got := fs.Text(Span{File: id, Start: 13, End: 99}); got != "{}" {
		t.Fatalf("clamped Text = %q", got)
	}
	if got := fs.Text(Span{File: id, Start: 50, End: 40}); got != "" {
		t.Fatalf("inverted Text = %q", got)
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.kiwi")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\r\nb\rc"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb\rc" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 || f.Flags&FileVirtual != 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.kiwi")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFormatPath(t *testing.T) {
	base := t.TempDir()
	inside := filepath.Join(base, "schemas", "game.kiwi")
	outside := filepath.Join(filepath.Dir(base), "elsewhere.kiwi")
	fs := NewFileSet()
	in := fs.Get(fs.AddVirtual(inside, nil))
	out := fs.Get(fs.AddVirtual(outside, nil))

	if got := in.FormatPath("relative", base); got != "schemas/game.kiwi" {
		t.Fatalf("relative = %q", got)
	}
	if got := out.FormatPath("relative", base); got != filepath.ToSlash(outside) {
		t.Fatalf("outside base must stay absolute, got %q", got)
	}
	if got := in.FormatPath("basename", ""); got != "game.kiwi" {
		t.Fatalf("basename = %q", got)
	}
	short := fs.Get(fs.AddVirtual("a.kiwi", nil))
	if got := short.FormatPath("auto", ""); got != "a.kiwi" {
		t.Fatalf("auto = %q", got)
	}
}

func TestConcurrentAdd(t *testing.T) {
	fs := NewFileSet()
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fs.AddVirtual(filepath.Join("f", string(rune('a'+i))+".kiwi"), []byte("package p;"))
			if fs.Get(id).ID != id {
				t.Errorf("id mismatch")
			}
		}()
	}
	wg.Wait()
	if fs.Len() != 16 {
		t.Fatalf("Len = %d", fs.Len())
	}
}
