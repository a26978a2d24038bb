// Package testkit holds assertions shared by parser, driver and fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"kiwi/internal/ast"
	"kiwi/internal/source"
	"kiwi/internal/token"
)

// CheckSchemaInvariants checks span and position sanity of a parsed schema:
//  1. every definition and field span is non-empty, belongs to sf and lies
//     within its content
//  2. the text under a span is the name it locates (definitions, fields,
//     union alternatives, flattened and picked fields alike)
//  3. Pos is the 1-based position of Span.Start
func CheckSchemaInvariants(schema *ast.Schema, sf *source.File) error {
	if schema == nil || sf == nil {
		return fmt.Errorf("nil schema or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	for _, def := range schema.Definitions {
		if def == nil {
			return fmt.Errorf("nil definition")
		}
		if err := checkNamed(sf, lenContent, def.Name, def.Span, def.Pos); err != nil {
			return fmt.Errorf("definition %s: %w", def.Name, err)
		}
		for i := range def.Fields {
			f := &def.Fields[i]
			if err := checkNamed(sf, lenContent, f.Name, f.Span, f.Pos); err != nil {
				return fmt.Errorf("field %s.%s: %w", def.Name, f.Name, err)
			}
		}
		for _, ext := range def.Extensions {
			if err := checkNamed(sf, lenContent, ext.Name, ext.Span, ext.Pos); err != nil {
				return fmt.Errorf("extension %s of %s: %w", ext.Name, def.Name, err)
			}
		}
	}
	return nil
}

func checkNamed(sf *source.File, lenContent uint32, name string, sp source.Span, pos source.LineCol) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("empty span: %v", sp)
	}
	if sp.File != sf.ID {
		return fmt.Errorf("span file mismatch: got=%d want=%d", sp.File, sf.ID)
	}
	if sp.End > lenContent {
		return fmt.Errorf("span end beyond content: %d > %d", sp.End, lenContent)
	}
	if got := string(sf.Content[sp.Start:sp.End]); got != name {
		return fmt.Errorf("span %v covers %q, want %q", sp, got, name)
	}
	if want := sf.Position(sp.Start); pos != want {
		return fmt.Errorf("pos %d:%d, want %d:%d", pos.Line, pos.Col, want.Line, want.Col)
	}
	return nil
}

// CheckTokenInvariants checks a token stream: spans are ordered and do not
// overlap, Text is the covered content, and the stream ends with exactly
// one EOF located at the end of the file.
func CheckTokenInvariants(tokens []token.Token, sf *source.File) error {
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var prevEnd uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.Start < prevEnd || sp.End < sp.Start || sp.End > lenContent {
			return fmt.Errorf("token %d %s: bad span %v (prev end %d)", i, tok.Kind, sp, prevEnd)
		}
		if got := string(sf.Content[sp.Start:sp.End]); got != tok.Text {
			return fmt.Errorf("token %d: text %q, content %q", i, tok.Text, got)
		}
		if want := sf.Position(sp.Start); tok.Pos != want {
			return fmt.Errorf("token %d: pos %d:%d, want %d:%d", i, tok.Pos.Line, tok.Pos.Col, want.Line, want.Col)
		}
		isEOF := tok.Kind == token.EOF
		last := i == len(tokens)-1
		if isEOF != last {
			return fmt.Errorf("token %d: EOF must be last and only last", i)
		}
		prevEnd = sp.End
	}
	if end := tokens[len(tokens)-1].Span.Start; end != lenContent {
		return fmt.Errorf("EOF at %d, want %d", end, lenContent)
	}
	return nil
}
