// Package gogen emits typed Go source from schema plans.
//
// Every ENUM becomes a uint32-backed named type, every STRUCT and MESSAGE a
// Go struct with EncodeTo/DecodeFrom methods, and every UNION a sealed
// interface with EncodeU/DecodeU functions. The output imports package wire
// and produces the same bytes as package codec for the same values.
//
// STRUCT fields are plain values (nested records by pointer). MESSAGE
// fields are optional: scalars are pointers, nil slices/pointers/interfaces
// are absent. Deprecated MESSAGE fields have no Go field; their bytes are
// skipped on decode.
package gogen
