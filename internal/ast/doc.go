// Package ast holds the in-memory schema model produced by the parser.
//
// A Schema owns its Definitions; a Definition owns its Fields. After
// parser.Parse returns, PICK definitions and struct extensions are already
// resolved: every definition is one of the seven persistent kinds and each
// struct carries its flattened field list.
package ast
