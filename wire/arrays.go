package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Bulk arrays of fixed-width elements: VarUint count, then packed elements.

func (bb *ByteBuffer) ReadByteArray() ([]byte, error) {
	n, err := bb.readLen(1)
	if err != nil {
		return nil, err
	}
	b, err := bb.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

func (bb *ByteBuffer) WriteByteArray(v []byte) {
	bb.writeLen(len(v))
	bb.data = append(bb.data, v...)
}

func (bb *ByteBuffer) ReadInt8Array() ([]int8, error) {
	b, err := bb.ReadByteArray()
	if err != nil {
		return nil, err
	}
	out := make([]int8, len(b))
	for i, x := range b {
		out[i] = int8(x) // #nosec G115 -- two's complement reinterpretation
	}
	return out, nil
}

func (bb *ByteBuffer) WriteInt8Array(v []int8) {
	bb.writeLen(len(v))
	for _, x := range v {
		bb.WriteInt8(x)
	}
}

func (bb *ByteBuffer) readPacked(size int) ([]byte, int, error) {
	n, err := bb.readLen(size)
	if err != nil {
		return nil, 0, err
	}
	b, err := bb.take(n * size)
	return b, n, err
}

func (bb *ByteBuffer) ReadUint16Array() ([]uint16, error) {
	b, n, err := bb.readPacked(2)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return out, nil
}

func (bb *ByteBuffer) WriteUint16Array(v []uint16) {
	bb.writeLen(len(v))
	dst := bb.grow(len(v) * 2)
	for i, x := range v {
		binary.LittleEndian.PutUint16(dst[i*2:], x)
	}
}

func (bb *ByteBuffer) ReadInt16Array() ([]int16, error) {
	u, err := bb.ReadUint16Array()
	if err != nil {
		return nil, err
	}
	out := make([]int16, len(u))
	for i, x := range u {
		out[i] = int16(x) // #nosec G115 -- two's complement reinterpretation
	}
	return out, nil
}

func (bb *ByteBuffer) WriteInt16Array(v []int16) {
	bb.writeLen(len(v))
	dst := bb.grow(len(v) * 2)
	for i, x := range v {
		binary.LittleEndian.PutUint16(dst[i*2:], uint16(x)) // #nosec G115 -- two's complement reinterpretation
	}
}

func (bb *ByteBuffer) ReadUint32Array() ([]uint32, error) {
	b, n, err := bb.readPacked(4)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out, nil
}

func (bb *ByteBuffer) WriteUint32Array(v []uint32) {
	bb.writeLen(len(v))
	dst := bb.grow(len(v) * 4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(dst[i*4:], x)
	}
}

func (bb *ByteBuffer) ReadInt32Array() ([]int32, error) {
	u, err := bb.ReadUint32Array()
	if err != nil {
		return nil, err
	}
	out := make([]int32, len(u))
	for i, x := range u {
		out[i] = int32(x) // #nosec G115 -- two's complement reinterpretation
	}
	return out, nil
}

func (bb *ByteBuffer) WriteInt32Array(v []int32) {
	bb.writeLen(len(v))
	dst := bb.grow(len(v) * 4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(dst[i*4:], uint32(x)) // #nosec G115 -- two's complement reinterpretation
	}
}

func (bb *ByteBuffer) ReadFloat32Array() ([]float32, error) {
	u, err := bb.ReadUint32Array()
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(u))
	for i, x := range u {
		out[i] = math.Float32frombits(x)
	}
	return out, nil
}

func (bb *ByteBuffer) WriteFloat32Array(v []float32) {
	bb.writeLen(len(v))
	dst := bb.grow(len(v) * 4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(x))
	}
}

// Generic arrays: VarUint count, then each element with its own encoding.

// ReadArray reads a count and then count elements with read. The count is
// untrusted, so preallocation is capped by the unread bytes.
func ReadArray[T any](bb *ByteBuffer, read func(*ByteBuffer) (T, error)) ([]T, error) {
	n, err := bb.ReadCount()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, min(n, bb.Remaining()))
	for range n {
		v, err := read(bb)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// WriteArray writes a count and then every element with write, stopping at
// the first failing element.
func WriteArray[T any](bb *ByteBuffer, s []T, write func(*ByteBuffer, T) error) error {
	bb.WriteCount(len(s))
	for i, v := range s {
		if err := write(bb, v); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	return nil
}

// WriteEach is WriteArray for element writers that cannot fail.
func WriteEach[T any](bb *ByteBuffer, s []T, write func(*ByteBuffer, T)) {
	bb.WriteCount(len(s))
	for _, v := range s {
		write(bb, v)
	}
}
