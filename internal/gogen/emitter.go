package gogen

import (
	"fmt"
	"go/format"
	"path"
	"strings"

	"kiwi/internal/ast"
	"kiwi/internal/diag"
	"kiwi/internal/gen"
	"kiwi/internal/source"
)

// DefaultWireImport is the import path of package wire in this module.
const DefaultWireImport = "kiwi/wire"

// Options controls emission.
type Options struct {
	// Package is the Go package clause; defaults to the schema package.
	Package string
	// WireImport is the import path of package wire.
	WireImport string
	// Source is the schema path recorded in the generated header.
	Source string
	// LenientEnums keeps unknown enum ordinals instead of failing decode.
	LenientEnums bool
}

// Emitter accumulates the Go source of one plan.
type Emitter struct {
	plan *gen.Plan
	opts Options
	buf  strings.Builder

	typeNames  map[string]string         // definition → Go type
	fieldNames map[*gen.FieldPlan]string // field → Go field
	tagTypes   map[string]string         // union → tag type, also the marker method
	memberOf   map[string][]string       // record → unions listing it
	globals    map[string]*gen.DefPlan   // top-level Go identifiers
}

// Emit renders plan as one gofmt-ed Go file.
func Emit(plan *gen.Plan, opts Options) ([]byte, error) {
	if opts.Package == "" {
		opts.Package = plan.Package
	}
	opts.Package = packageName(opts.Package)
	if opts.WireImport == "" {
		opts.WireImport = DefaultWireImport
	}

	e := &Emitter{
		plan:       plan,
		opts:       opts,
		typeNames:  make(map[string]string),
		fieldNames: make(map[*gen.FieldPlan]string),
		tagTypes:   make(map[string]string),
		memberOf:   make(map[string][]string),
		globals:    make(map[string]*gen.DefPlan),
	}
	if err := e.prepare(); err != nil {
		return nil, err
	}

	e.emitHeader()
	for _, def := range plan.Defs {
		switch def.Kind {
		case ast.KindEnum:
			e.emitEnum(def)
		case ast.KindStruct, ast.KindMessage:
			e.emitRecord(def)
		case ast.KindUnion:
			e.emitUnion(def)
		}
	}
	e.emitAllocator()

	src, err := format.Source([]byte(e.buf.String()))
	if err != nil {
		return nil, diag.Errorf(diag.GenEmitFailed, source.Span{}, source.LineCol{}, "generated code does not parse: %v", err)
	}
	return src, nil
}

func (e *Emitter) printf(format string, args ...any) {
	fmt.Fprintf(&e.buf, format, args...)
}

// ===== имена =====

var recordMethods = map[string]bool{"Encode": true, "EncodeTo": true, "DecodeFrom": true}

func (e *Emitter) claim(name string, def *gen.DefPlan) error {
	if prev, dup := e.globals[name]; dup {
		return diag.Errorf(diag.GenEmitFailed, def.Span, def.Pos,
			"The Go name %q generated for %q collides with one generated for %q", name, def.Name, prev.Name)
	}
	e.globals[name] = def
	return nil
}

// prepare assigns every Go identifier up front and rejects collisions.
func (e *Emitter) prepare() error {
	for _, def := range e.plan.Defs {
		e.typeNames[def.Name] = exported(def.Name)
	}
	for _, def := range e.plan.Defs {
		if def.Kind != ast.KindUnion {
			continue
		}
		suffix := "Type"
		if def.Union.Discriminator != "" {
			suffix = exported(def.Union.Discriminator)
		}
		e.tagTypes[def.Name] = e.typeNames[def.Name] + suffix
		for _, alt := range def.Union.Alternatives {
			e.memberOf[alt.Type] = append(e.memberOf[alt.Type], def.Name)
		}
	}

	if e.hasRecords() {
		stub := &gen.DefPlan{Name: "Allocator"}
		for _, name := range []string{"Allocator", "SetAllocator"} {
			e.globals[name] = stub
		}
	}
	for _, def := range e.plan.Defs {
		goName := e.typeNames[def.Name]
		names := []string{goName}
		switch def.Kind {
		case ast.KindEnum:
			names = append(names, "Parse"+goName)
			for _, m := range def.Enum.Members {
				names = append(names, goName+exported(m.Name))
			}
		case ast.KindStruct, ast.KindMessage:
			names = append(names, "Decode"+goName)
			e.nameFields(def)
		case ast.KindUnion:
			tag := e.tagTypes[def.Name]
			names = append(names, tag, "Encode"+goName, "Decode"+goName)
			for _, alt := range def.Union.Alternatives {
				names = append(names, tag+e.typeNames[alt.Type])
			}
		}
		for _, name := range names {
			if err := e.claim(name, def); err != nil {
				return err
			}
		}
	}
	return nil
}

func isRecord(def *gen.DefPlan) bool {
	return def.Kind == ast.KindStruct || def.Kind == ast.KindMessage
}

func (e *Emitter) hasRecords() bool {
	for _, def := range e.plan.Defs {
		if isRecord(def) {
			return true
		}
	}
	return false
}

// nameFields picks Go field names, suffixing "_" until they clear the
// record's methods and each other.
func (e *Emitter) nameFields(def *gen.DefPlan) {
	taken := make(map[string]bool, len(def.Fields)+len(recordMethods))
	for m := range recordMethods {
		taken[m] = true
	}
	for _, u := range e.memberOf[def.Name] {
		taken[e.tagTypes[u]] = true
	}
	for i := range def.Fields {
		f := &def.Fields[i]
		name := exported(f.Name)
		for taken[name] {
			name += "_"
		}
		taken[name] = true
		e.fieldNames[f] = name
	}
}

// ===== заголовок =====

func (e *Emitter) wireQualifier() string {
	return path.Base(e.opts.WireImport)
}

func (e *Emitter) emitHeader() {
	if e.opts.Source != "" {
		e.printf("// Code generated by kiwic from %s. DO NOT EDIT.\n\n", e.opts.Source)
	} else {
		e.printf("// Code generated by kiwic. DO NOT EDIT.\n\n")
	}
	e.printf("package %s\n\n", e.opts.Package)
	if len(e.plan.Defs) == 0 {
		return
	}
	e.printf("import (\n\t\"fmt\"\n\n")
	if e.wireQualifier() == "wire" {
		e.printf("\t%q\n)\n\n", e.opts.WireImport)
	} else {
		e.printf("\twire %q\n)\n\n", e.opts.WireImport)
	}
}
