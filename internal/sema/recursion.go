package sema

import (
	"kiwi/internal/ast"
	"kiwi/internal/diag"
)

type nestState uint8

const (
	unvisited nestState = iota
	inProgress
	done
)

// checkRecursion rejects structs that contain themselves inline. Array
// fields are stored out of line and are skipped.
func checkRecursion(order []*ast.Definition, defs map[string]*ast.Definition) error {
	state := make(map[string]nestState, len(defs))

	var visit func(name string) error
	visit = func(name string) error {
		def, ok := defs[name]
		if !ok || def.Kind != ast.KindStruct {
			return nil
		}
		switch state[name] {
		case inProgress:
			return diag.Errorf(diag.SemaRecursiveStruct, def.Span, def.Pos,
				"Recursive nesting of %q is not allowed", name)
		case done:
			return nil
		}
		state[name] = inProgress
		for i := range def.Fields {
			if def.Fields[i].IsArray {
				continue
			}
			if err := visit(def.Fields[i].Type); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}

	for _, def := range order {
		if err := visit(def.Name); err != nil {
			return err
		}
	}
	return nil
}
