package codec

import (
	"errors"

	"kiwi/wire"
)

// Runtime errors. Every encode or decode failure wraps one of these.
var (
	ErrInvalidMessage   = wire.ErrInvalidMessage
	ErrInvalidUnion     = wire.ErrInvalidUnion
	ErrMissingField     = wire.ErrMissingField
	ErrInvalidEnum      = wire.ErrInvalidEnum
	ErrInvalidUnionType = wire.ErrInvalidUnionType

	// ErrTypeMismatch is returned when a value does not fit its field's shape.
	ErrTypeMismatch = errors.New("value does not match field type")
	// ErrUnknownType is returned for type names the plan does not define.
	ErrUnknownType = errors.New("unknown type")
	// ErrUnknownField is returned by Record accessors for undeclared fields.
	ErrUnknownField = errors.New("unknown field")
)
