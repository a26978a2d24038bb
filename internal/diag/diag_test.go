package diag

import (
	"errors"
	"fmt"
	"testing"

	"kiwi/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/schemas/sample.kiwi", []byte("a\nb\n"), 0)

	diags := []*Diagnostic{
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     SemaDuplicateField,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     IOLoadFileError,
			Message:  "no such file",
			Path:     "missing.kiwi",
		},
	}

	expected := "error IO5001 missing.kiwi no such file\n" +
		"error SYN2001 schemas/sample.kiwi:1:1 first line second\n" +
		"note SYN2001 schemas/sample.kiwi:2:1 note line\n" +
		"warning SEM3005 schemas/sample.kiwi:2:1 another"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestErrorRendersLineColumn(t *testing.T) {
	err := Errorf(SemaUnknownType, source.Span{}, source.LineCol{Line: 3, Col: 14}, "The type %q is not defined for field %q", "Foo", "bar")
	if got, want := err.Error(), `3:14: The type "Foo" is not defined for field "bar"`; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if err.Line() != 3 || err.Column() != 14 {
		t.Fatalf("unexpected position %d:%d", err.Line(), err.Column())
	}
}

func TestAsErrorThroughWrap(t *testing.T) {
	base := Errorf(SynExpectIdentifier, source.Span{}, source.LineCol{Line: 1, Col: 1}, "Expected identifier")
	wrapped := fmt.Errorf("parse schema.kiwi: %w", base)
	de, ok := AsError(wrapped)
	if !ok || de != base {
		t.Fatalf("AsError failed to unwrap")
	}
	if CodeOf(wrapped) != SynExpectIdentifier {
		t.Fatalf("CodeOf = %v", CodeOf(wrapped))
	}
	if CodeOf(errors.New("plain")) != UnknownCode {
		t.Fatalf("plain errors carry no code")
	}
}

func TestBagLimitSortAndMerge(t *testing.T) {
	b := NewBag(2)
	d1 := NewError(SemaDuplicateType, source.Span{File: 0, Start: 10, End: 12}, "dup")
	d2 := NewError(SynUnexpectedToken, source.Span{File: 0, Start: 2, End: 3}, "tok")
	for _, d := range []Diagnostic{d1, d2} {
		if !b.Add(d) {
			t.Fatalf("bag rejected item before limit")
		}
	}
	if b.Add(d2) {
		t.Fatalf("bag accepted item past limit")
	}
	other := NewBag(1)
	other.Add(NewPathError(IOLoadFileError, "z.kiwi", "gone"))
	b.Merge(other)
	if b.Len() != 3 {
		t.Fatalf("expected 3 after merge, got %d", b.Len())
	}
	b.Sort()
	if b.Items()[2].Path != "z.kiwi" {
		t.Fatalf("path diagnostics sort after span ones, got %+v", b.Items()[2])
	}
	if b.Items()[0].Code != SynUnexpectedToken {
		t.Fatalf("expected earliest span first, got %v", b.Items()[0].Code)
	}
	if !b.HasErrors() {
		t.Fatalf("HasErrors must be true")
	}
}

func TestReportErr(t *testing.T) {
	b := NewBag(10)
	r := BagReporter{Bag: b}
	ReportErr(r, Errorf(SemaRecursiveStruct, source.Span{Start: 4}, source.LineCol{Line: 1, Col: 5}, "Recursive nesting of A is not allowed"), "a.kiwi", IOLoadFileError)
	ReportErr(r, errors.New("permission denied"), "b.kiwi", IOLoadFileError)
	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(items))
	}
	if items[0].Code != SemaRecursiveStruct || !items[0].HasSpan() {
		t.Fatalf("diag.Error must keep its code and span: %+v", items[0])
	}
	if items[1].Code != IOLoadFileError || items[1].Path != "b.kiwi" {
		t.Fatalf("plain error must attach to path: %+v", items[1])
	}
}

func TestCodeIDRanges(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:          "LEX1001",
		SynExpectInteger:        "SYN2003",
		SemaIDOutOfRange:        "SEM3008",
		GenUnsupportedFieldType: "GEN4001",
		IOLoadFileError:         "IO5001",
		ProjInvalidManifest:     "PRJ6002",
		UnknownCode:             "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %s, want %s", code, got, want)
		}
	}
}
