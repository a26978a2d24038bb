package wire

import "errors"

// Buffer errors.
var (
	// ErrUnexpectedEOF is returned when a read runs past the end of the buffer.
	ErrUnexpectedEOF = errors.New("wire: unexpected end of buffer")
	// ErrVarintOverflow is returned for a VarUint longer than 5 bytes.
	ErrVarintOverflow = errors.New("wire: varint overflows uint32")
	// ErrInvalidBool is returned when a bool byte is neither 0 nor 1.
	ErrInvalidBool = errors.New("wire: invalid bool")
)

// Encode/decode errors shared by the runtime codec and generated code.
var (
	ErrInvalidMessage   = errors.New("attempted to parse invalid message")
	ErrInvalidUnion     = errors.New("attempted to parse invalid union")
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidEnum      = errors.New("invalid value for enum")
	ErrInvalidUnionType = errors.New("invalid union type")
)
