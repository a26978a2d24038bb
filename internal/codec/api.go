package codec

import (
	"fmt"

	"kiwi/internal/gen"
	"kiwi/wire"
)

// Plan returns the plan the codec was compiled from.
func (c *Codec) Plan() *gen.Plan { return c.plan }

func (c *Codec) record(typeName string) (*recordCodec, error) {
	rc, ok := c.records[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a struct or message", ErrUnknownType, typeName)
	}
	return rc, nil
}

func (c *Codec) union(typeName string) (*unionCodec, error) {
	uc, ok := c.unions[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a union", ErrUnknownType, typeName)
	}
	return uc, nil
}

// New returns an empty record of the named type from its allocator.
func (c *Codec) New(typeName string) (*Record, error) {
	rc, err := c.record(typeName)
	if err != nil {
		return nil, err
	}
	return rc.newRecord()
}

// Encode serializes r into a fresh buffer.
func (c *Codec) Encode(r *Record) ([]byte, error) {
	bb := wire.NewByteBuffer()
	if err := c.EncodeTo(bb, r); err != nil {
		return nil, err
	}
	return bb.Bytes(), nil
}

// EncodeTo appends r to bb. On error bb may hold a partial write.
func (c *Codec) EncodeTo(bb *wire.ByteBuffer, r *Record) error {
	if r == nil {
		return fmt.Errorf("%w: nil record", ErrMissingField)
	}
	rc, err := c.record(r.Type())
	if err != nil {
		return err
	}
	return rc.encode(bb, r)
}

// Decode parses data as the named STRUCT or MESSAGE.
func (c *Codec) Decode(typeName string, data []byte) (*Record, error) {
	return c.DecodeFrom(typeName, wire.NewByteBufferFrom(data))
}

// DecodeFrom reads the named type from the buffer cursor.
func (c *Codec) DecodeFrom(typeName string, bb *wire.ByteBuffer) (*Record, error) {
	rc, err := c.record(typeName)
	if err != nil {
		return nil, err
	}
	return rc.decode(bb)
}

// EncodeUnion writes u's ordinal tag and payload. A nil u or an empty
// Type writes tag 0 with no payload.
func (c *Codec) EncodeUnion(bb *wire.ByteBuffer, unionName string, u *Union) error {
	uc, err := c.union(unionName)
	if err != nil {
		return err
	}
	return uc.encode(bb, u)
}

// DecodeUnion reads the payload selected by an externally read tag.
func (c *Codec) DecodeUnion(unionName string, tag uint32, bb *wire.ByteBuffer) (*Union, error) {
	uc, err := c.union(unionName)
	if err != nil {
		return nil, err
	}
	return uc.decode(tag, bb)
}

// EncoderByType returns the union's payload encoders indexed by ordinal.
// Slot 0 writes nothing. The slice is shared; do not modify it.
func (c *Codec) EncoderByType(unionName string) ([]EncodeFunc, error) {
	uc, err := c.union(unionName)
	if err != nil {
		return nil, err
	}
	return uc.encoders, nil
}

// Enum returns the name ↔ ordinal table of the named enum.
func (c *Codec) Enum(name string) (*gen.EnumTable, bool) {
	ec, ok := c.enums[name]
	if !ok {
		return nil, false
	}
	return ec.def.Enum, true
}
