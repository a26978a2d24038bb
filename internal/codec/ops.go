package codec

import (
	"fmt"

	"kiwi/internal/gen"
	"kiwi/wire"
)

// ops reads and writes one field shape, scalar and array.
// A read that yields (nil, nil) leaves the field absent.
type ops struct {
	read       func(bb *wire.ByteBuffer) (any, error)
	write      func(bb *wire.ByteBuffer, v any) error
	readArray  func(bb *wire.ByteBuffer) (any, error)
	writeArray func(bb *wire.ByteBuffer, v any) error
}

func mismatch(want string, v any) error {
	return fmt.Errorf("%w: want %s, got %T", ErrTypeMismatch, want, v)
}

// primitive builds ops from a buffer read/write pair; arrays are a VarUint
// count followed by the elements.
func primitive[T any](name string, read func(*wire.ByteBuffer) (T, error), write func(*wire.ByteBuffer, T)) ops {
	return ops{
		read: func(bb *wire.ByteBuffer) (any, error) {
			v, err := read(bb)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
		write: func(bb *wire.ByteBuffer, v any) error {
			t, ok := v.(T)
			if !ok {
				return mismatch(name, v)
			}
			write(bb, t)
			return nil
		},
		readArray: func(bb *wire.ByteBuffer) (any, error) {
			s, err := wire.ReadArray(bb, read)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		writeArray: func(bb *wire.ByteBuffer, v any) error {
			s, ok := v.([]T)
			if !ok {
				return mismatch("[]"+name, v)
			}
			wire.WriteEach(bb, s, write)
			return nil
		},
	}
}

// bulk replaces the array half of o with a typed-array primitive.
func bulk[T any](o ops, name string, read func(*wire.ByteBuffer) ([]T, error), write func(*wire.ByteBuffer, []T)) ops {
	o.readArray = func(bb *wire.ByteBuffer) (any, error) {
		s, err := read(bb)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	o.writeArray = func(bb *wire.ByteBuffer, v any) error {
		s, ok := v.([]T)
		if !ok {
			return mismatch("[]"+name, v)
		}
		write(bb, s)
		return nil
	}
	return o
}

var nativeOps = map[gen.Shape]ops{
	gen.ShapeBool: primitive("bool", (*wire.ByteBuffer).ReadBool, (*wire.ByteBuffer).WriteBool),
	gen.ShapeByte: bulk(primitive("byte", (*wire.ByteBuffer).ReadUint8, (*wire.ByteBuffer).WriteUint8),
		"byte", (*wire.ByteBuffer).ReadByteArray, (*wire.ByteBuffer).WriteByteArray),
	gen.ShapeInt8: bulk(primitive("int8", (*wire.ByteBuffer).ReadInt8, (*wire.ByteBuffer).WriteInt8),
		"int8", (*wire.ByteBuffer).ReadInt8Array, (*wire.ByteBuffer).WriteInt8Array),
	gen.ShapeInt16: bulk(primitive("int16", (*wire.ByteBuffer).ReadInt16, (*wire.ByteBuffer).WriteInt16),
		"int16", (*wire.ByteBuffer).ReadInt16Array, (*wire.ByteBuffer).WriteInt16Array),
	gen.ShapeInt32: bulk(primitive("int32", (*wire.ByteBuffer).ReadInt32, (*wire.ByteBuffer).WriteInt32),
		"int32", (*wire.ByteBuffer).ReadInt32Array, (*wire.ByteBuffer).WriteInt32Array),
	gen.ShapeUint16: bulk(primitive("uint16", (*wire.ByteBuffer).ReadUint16, (*wire.ByteBuffer).WriteUint16),
		"uint16", (*wire.ByteBuffer).ReadUint16Array, (*wire.ByteBuffer).WriteUint16Array),
	gen.ShapeUint32: bulk(primitive("uint32", (*wire.ByteBuffer).ReadUint32, (*wire.ByteBuffer).WriteUint32),
		"uint32", (*wire.ByteBuffer).ReadUint32Array, (*wire.ByteBuffer).WriteUint32Array),
	gen.ShapeFloat32: bulk(primitive("float32", (*wire.ByteBuffer).ReadFloat32, (*wire.ByteBuffer).WriteFloat32),
		"float32", (*wire.ByteBuffer).ReadFloat32Array, (*wire.ByteBuffer).WriteFloat32Array),
	gen.ShapeVarInt:   primitive("int32", (*wire.ByteBuffer).ReadVarInt, (*wire.ByteBuffer).WriteVarInt),
	gen.ShapeVarUint:  primitive("uint32", (*wire.ByteBuffer).ReadVarUint, (*wire.ByteBuffer).WriteVarUint),
	gen.ShapeVarFloat: primitive("float32", (*wire.ByteBuffer).ReadVarFloat, (*wire.ByteBuffer).WriteVarFloat),
	gen.ShapeString:   primitive("string", (*wire.ByteBuffer).ReadString, (*wire.ByteBuffer).WriteString),
}

// sequence builds ops for element kinds without a bulk primitive whose
// element read/write can fail (enums, records, unions).
func sequence[T any](name string, read func(*wire.ByteBuffer) (T, error), write func(*wire.ByteBuffer, T) error) ops {
	return ops{
		read: func(bb *wire.ByteBuffer) (any, error) {
			v, err := read(bb)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
		write: func(bb *wire.ByteBuffer, v any) error {
			t, ok := v.(T)
			if !ok {
				return mismatch(name, v)
			}
			return write(bb, t)
		},
		readArray: func(bb *wire.ByteBuffer) (any, error) {
			s, err := wire.ReadArray(bb, read)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		writeArray: func(bb *wire.ByteBuffer, v any) error {
			s, ok := v.([]T)
			if !ok {
				return mismatch("[]"+name, v)
			}
			return wire.WriteArray(bb, s, write)
		},
	}
}
