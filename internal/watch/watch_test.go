package watch

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"kiwi/internal/buildpipeline"
)

const pointSchema = "package geo;\n\nstruct Point { float x; float y; }\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func waitBuild(t *testing.T, ch <-chan Build) Build {
	t.Helper()
	select {
	case b := <-ch:
		return b
	case <-time.After(10 * time.Second):
		t.Fatalf("timed out waiting for rebuild")
	}
	return Build{}
}

func TestWatcherRebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(dir, "point.kiwi"), pointSchema)

	builds := make(chan Build, 8)
	w, err := New(Config{
		Inputs:   []string{dir},
		Request:  buildpipeline.BuildRequest{BaseDir: dir, OutDir: out},
		Debounce: 20 * time.Millisecond,
		Logger:   zerolog.Nop(),
		OnBuild:  func(b Build) { builds <- b },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	first := waitBuild(t, builds)
	if first.Seq != 1 || first.Err != nil || len(first.Trigger) != 0 {
		t.Fatalf("initial build: seq=%d err=%v trigger=%v", first.Seq, first.Err, first.Trigger)
	}
	if len(first.Result.Outputs) != 1 {
		t.Fatalf("initial outputs = %v", first.Result.Outputs)
	}

	writeFile(t, filepath.Join(dir, "broken.kiwi"), "package geo;\nstruct { }\n")
	second := waitBuild(t, builds)
	if second.Err == nil {
		t.Fatalf("expected diagnostics after adding a broken schema")
	}
	if len(second.Files) != 2 {
		t.Fatalf("files = %v, want 2", second.Files)
	}
	if len(second.Trigger) == 0 || !strings.HasSuffix(second.Trigger[0], "broken.kiwi") {
		t.Fatalf("trigger = %v", second.Trigger)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop")
	}
}

func TestNewRequiresInputs(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for empty inputs")
	}
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "a.kiwi", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "a.kiwi", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "a.kiwi", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "a.kiwi.go", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		if got := relevant(tt.ev); got != tt.want {
			t.Fatalf("relevant(%v) = %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, false, zerolog.InfoLevel)
	log.Debug().Msg("hidden")
	log.Info().Int("build", 3).Msg("rebuilt")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["message"] != "rebuilt" || rec["build"] != float64(3) || rec["level"] != "info" {
		t.Fatalf("record = %v", rec)
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel(""); err != nil || lvl != zerolog.InfoLevel {
		t.Fatalf("ParseLevel(\"\") = %v, %v", lvl, err)
	}
	if lvl, err := ParseLevel("debug"); err != nil || lvl != zerolog.DebugLevel {
		t.Fatalf("ParseLevel(debug) = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error")
	}
}
