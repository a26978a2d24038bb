// Package wire implements the byte-level primitives every encoder and
// decoder is built from.
//
// Layout:
//
//	bool          1 byte, 0 or 1
//	byte/int8     1 byte
//	int16/uint16  2 bytes little-endian
//	int32/uint32  4 bytes little-endian
//	float32       4 bytes little-endian IEEE 754
//	VarUint       LEB128, at most 5 bytes for a uint32
//	VarInt        zigzag, then VarUint
//	VarFloat      a single 0 byte for zero (and any value whose exponent
//	              byte is zero), otherwise 4 bytes of the float bits rotated
//	              left by 9 so the exponent comes first
//	string        VarUint byte length, then UTF-8 bytes
//	T[] (fixed)   VarUint count, then count packed elements
//
// Generated Go code imports this package directly.
package wire
