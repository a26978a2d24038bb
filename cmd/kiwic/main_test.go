package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kiwi/internal/buildpipeline"
	"kiwi/internal/diag"
)

const geoSchema = `package geo;

enum Shape { CIRCLE = 0; SQUARE = 1; }

struct Point { float x; float y; }

message Area {
  string name = 1;
  Shape shape = 2;
  Point[] outline = 3;
}
`

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--color", "off"}, args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeSchema(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestBuildWritesGoFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "gen")
	schema := writeSchema(t, dir, "geo.kiwi", geoSchema)

	stdout, stderr, err := runCLI(t, "build", "--ui", "off", "--out", out, "--package", "geopb", schema)
	if err != nil {
		t.Fatalf("build failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "wrote ") {
		t.Fatalf("stdout = %q", stdout)
	}
	code, err := os.ReadFile(filepath.Join(out, "geo.kiwi.go"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, want := range []string{"Code generated by kiwic from geo.kiwi. DO NOT EDIT.", "package geopb", "type Area struct"} {
		if !bytes.Contains(code, []byte(want)) {
			t.Fatalf("generated code missing %q", want)
		}
	}
	if !strings.Contains(stderr, "built 1 schema file(s)") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestCheckReportsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	schema := writeSchema(t, dir, "bad.kiwi", "package geo;\n\nstruct Point { Vec v; }\n")

	_, stderr, err := runCLI(t, "check", "--format", "short", schema)
	if !errors.Is(err, buildpipeline.ErrDiagnostics) {
		t.Fatalf("err = %v, want ErrDiagnostics", err)
	}
	if !silentError(err) {
		t.Fatalf("diagnostics error must not be printed twice")
	}
	if !strings.Contains(stderr, "error SEM3003") || !strings.Contains(stderr, "bad.kiwi:3:") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestCheckJSONOnSuccess(t *testing.T) {
	dir := t.TempDir()
	schema := writeSchema(t, dir, "geo.kiwi", geoSchema)

	stdout, _, err := runCLI(t, "check", "--format", "json", schema)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
}

func TestParseFormats(t *testing.T) {
	dir := t.TempDir()
	schema := writeSchema(t, dir, "geo.kiwi", geoSchema)

	tests := []struct {
		format string
		want   string
	}{
		{"pretty", "struct Point {"},
		{"json", `"name": "Area"`},
		{"yaml", "name: Area"},
	}
	for _, tt := range tests {
		stdout, stderr, err := runCLI(t, "parse", "--format", tt.format, schema)
		if err != nil {
			t.Fatalf("parse --format %s: %v\n%s", tt.format, err, stderr)
		}
		if !strings.Contains(stdout, tt.want) {
			t.Fatalf("parse --format %s output missing %q:\n%s", tt.format, tt.want, stdout)
		}
	}
}

func TestParseReportsSyntaxError(t *testing.T) {
	dir := t.TempDir()
	schema := writeSchema(t, dir, "bad.kiwi", "package geo;\nstruct {\n")

	_, stderr, err := runCLI(t, "parse", schema)
	if !errors.Is(err, errFailed) {
		t.Fatalf("err = %v, want errFailed", err)
	}
	if !strings.Contains(stderr, "SYN") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestTokenizeJSON(t *testing.T) {
	dir := t.TempDir()
	schema := writeSchema(t, dir, "geo.kiwi", "package geo;")

	stdout, _, err := runCLI(t, "tokenize", "--format", "json", schema)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	if !strings.Contains(stdout, `"text": "geo"`) {
		t.Fatalf("stdout = %s", stdout)
	}
}

func TestInitThenCheckFromManifest(t *testing.T) {
	dir := t.TempDir()
	stdout, _, err := runCLI(t, "init", "--name", "demo", dir)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if strings.Count(stdout, "created ") != 2 {
		t.Fatalf("stdout = %q", stdout)
	}
	if _, _, err := runCLI(t, "init", "--name", "demo", dir); err == nil {
		t.Fatalf("second init must refuse to overwrite")
	}

	set, err := resolveInputs(dir, nil)
	if err != nil {
		t.Fatalf("resolveInputs: %v", err)
	}
	if set.manifest == nil || len(set.files) != 1 || set.baseDir != set.manifest.Root {
		t.Fatalf("inputs = %+v", set)
	}

	t.Chdir(dir)
	_, stderr, err := runCLI(t, "check")
	if err != nil {
		t.Fatalf("check from manifest failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stderr, "checked 1 schema file(s)") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestResolveInputsErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := resolveInputs(dir, nil)
	var ie *inputError
	if !errors.As(err, &ie) || ie.code != diag.ProjManifestNotFound {
		t.Fatalf("no manifest: err = %v", err)
	}

	_, err = resolveInputs(dir, []string{dir})
	if !errors.As(err, &ie) || ie.code != diag.ProjNoInputs {
		t.Fatalf("empty dir: err = %v", err)
	}

	_, err = resolveInputs(dir, []string{filepath.Join(dir, "missing.kiwi")})
	if !errors.As(err, &ie) || ie.code != diag.IOLoadFileError {
		t.Fatalf("missing file: err = %v", err)
	}
}

func TestResolveInputsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "b.kiwi", geoSchema)
	writeSchema(t, dir, "a.kiwi", geoSchema)
	writeSchema(t, dir, "notes.txt", "x")

	set, err := resolveInputs("/elsewhere", []string{dir, filepath.Join(dir, "a.kiwi")})
	if err != nil {
		t.Fatalf("resolveInputs: %v", err)
	}
	if len(set.files) != 2 || !strings.HasSuffix(set.files[0], "a.kiwi") {
		t.Fatalf("files = %v", set.files)
	}
	if set.baseDir != "/elsewhere" {
		t.Fatalf("baseDir = %q", set.baseDir)
	}
}

func TestPackageNameFrom(t *testing.T) {
	tests := map[string]string{
		"game":      "game",
		"My-Proto2": "myproto2",
		"2fast":     "fast",
		"__":        "__",
		"---":       "schema",
	}
	for in, want := range tests {
		if got := packageNameFrom(in); got != want {
			t.Fatalf("packageNameFrom(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProgressUIEnabled(t *testing.T) {
	tests := []struct {
		value               string
		tty, quiet, machine bool
		want                bool
	}{
		{"", true, false, false, true},
		{"auto", false, false, false, false},
		{" ON ", false, false, false, true},
		{"on", true, true, false, false},
		{"on", true, false, true, false},
		{"Off", true, false, false, false},
	}
	for _, tt := range tests {
		got, err := progressUIEnabled(tt.value, tt.tty, tt.quiet, tt.machine)
		if err != nil || got != tt.want {
			t.Fatalf("progressUIEnabled(%q, tty=%v, quiet=%v, machine=%v) = %v, %v; want %v",
				tt.value, tt.tty, tt.quiet, tt.machine, got, err, tt.want)
		}
	}
	if _, err := progressUIEnabled("maybe", true, false, false); err == nil {
		t.Fatalf("expected error")
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := runCLI(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	var p versionPayload
	if err := json.Unmarshal([]byte(stdout), &p); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if p.Tool != "kiwic" || p.Version == "" {
		t.Fatalf("payload = %+v", p)
	}
}

func TestTraceRingDumpOnFailure(t *testing.T) {
	dir := t.TempDir()
	schema := writeSchema(t, dir, "bad.kiwi", "package geo;\nstruct {\n")

	_, stderr, err := runCLI(t, "--trace-level", "phase", "--trace-mode", "ring", "parse", schema)
	if err == nil {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(stderr, "trace: last events") || !strings.Contains(stderr, "kiwic parse") {
		t.Fatalf("stderr = %q", stderr)
	}
}
