// Package gen turns a validated schema into per-definition behavior plans.
//
// A Plan is the single description both realizations consume: the runtime
// closure tables in internal/codec and the Go source emitted by
// internal/gogen. Plans exist for ENUM, STRUCT, MESSAGE and UNION; ALIAS,
// SMOL and ENTITY definitions are parsed and validated but carry no wire
// behavior, so fields referencing them are GEN4001 errors.
package gen
