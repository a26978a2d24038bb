// Package codec realizes schema plans as in-memory encode/decode tables.
//
// Compile builds one closure table per definition of a gen.Plan. Values are
// Records: a slot per declared field, typed by the field's shape. Nested
// STRUCT/MESSAGE fields hold *Record, UNION fields hold *Union and ENUM
// fields hold the member name.
//
//	bool                      bool
//	byte, uint8               byte
//	int8 int16 int32          int8 int16 int32
//	uint16 uint32             uint16 uint32
//	float32, float            float32
//	int                       int32 (VarInt)
//	uint                      uint32 (VarUint)
//	string, enum              string
//	struct, message           *Record
//	union                     *Union
//
// An array field holds a slice of the element type. A Codec is immutable
// after Compile and safe for concurrent use; Records are not.
package codec
