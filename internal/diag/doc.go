// Package diag defines the error and diagnostic model shared by all compiler phases.
//
// Compilation is fail-fast: the lexer, parser, validator and plan builder
// return the first problem they find as an *Error. Error carries a stable
// Code, the offending Span and its 1-based line/column, and renders as
// "line:col: message".
//
// The driver converts errors into Diagnostic records and collects them in a
// Bag (one per run, possibly spanning many files when a directory is
// compiled). Bags support sorting and deduplication; rendering lives in
// internal/diagfmt, except for FormatShortDiagnostics which is kept here so
// tests can compare diagnostics against golden strings without pulling in
// colors or terminal handling.
//
// Code ranges:
//
//	LEX1xxx  lexical
//	SYN2xxx  syntax
//	SEM3xxx  semantic (validation, extension and pick resolution)
//	GEN4xxx  plan building and code emission
//	IO5xxx   file I/O
//	PRJ6xxx  kiwi.toml manifest
package diag
