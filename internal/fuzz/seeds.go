package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB на один файл корпуса
	maxFuzzInput = 1 << 16
)

// builtinSeeds cover every definition form and the error paths of the lexer.
var builtinSeeds = []string{
	"",
	"package p;",
	"enum Color { RED = 0; GREEN = 1; }",
	"smol Flag { ON = 1; OFF = 2; }",
	"struct Point { float x; float y; int[] tags; }",
	"message M { string s = 1; uint u = 2 [deprecated]; byte[] raw = 3; }",
	"entity E { guid id = 1; }",
	"struct A { int a; } struct B & A { int b; }",
	"union U = A | B { kind; }",
	"union U = A | B;",
	"pick P : A { a; }",
	"alias X = A;",
	`struct S from "geo-lib_v2" { int x; }`,
	"message M { int x = 99999999999; }",
	"struct A & B {} struct B & A {}",
	"struct { }",
	"enum E { A = -1; }",
	"message M { int x = 1 [",
	"// comment only\n",
	"struct S { int x; } @",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addSchemaFileSeeds(f)
}

// addSchemaFileSeeds adds every *.kiwi file under internal/.
func addSchemaFileSeeds(f *testing.F) {
	root := ".."
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".kiwi" {
			return nil
		}
		// #nosec G304 -- path comes from a repository walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
