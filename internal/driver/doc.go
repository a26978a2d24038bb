// Package driver runs the kiwi pipeline: load, lex, parse, validate, plan
// and optionally emit Go code. Phase failures are recorded in a diag.Bag;
// only I/O failures surface as the returned error.
package driver
