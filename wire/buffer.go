package wire

import (
	"encoding/binary"
	"fmt"
	"math"

	"fortio.org/safecast"
)

// ByteBuffer is a growable byte slice with a read cursor.
// Writes always append; reads consume from the cursor.
type ByteBuffer struct {
	data  []byte
	index int
}

// NewByteBuffer returns an empty buffer ready for writing.
func NewByteBuffer() *ByteBuffer {
	return &ByteBuffer{data: make([]byte, 0, 256)}
}

// NewByteBufferFrom wraps data for reading. The slice is not copied.
func NewByteBufferFrom(data []byte) *ByteBuffer {
	return &ByteBuffer{data: data}
}

// Bytes returns the written bytes.
func (bb *ByteBuffer) Bytes() []byte { return bb.data }

// Len reports the total number of bytes in the buffer.
func (bb *ByteBuffer) Len() int { return len(bb.data) }

// Index reports the read cursor.
func (bb *ByteBuffer) Index() int { return bb.index }

// Remaining reports how many unread bytes are left.
func (bb *ByteBuffer) Remaining() int { return len(bb.data) - bb.index }

// Reset drops all content and rewinds the cursor, keeping capacity.
func (bb *ByteBuffer) Reset() {
	bb.data = bb.data[:0]
	bb.index = 0
}

func (bb *ByteBuffer) take(n int) ([]byte, error) {
	if n < 0 || bb.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnexpectedEOF, n, bb.index, bb.Remaining())
	}
	out := bb.data[bb.index : bb.index+n]
	bb.index += n
	return out, nil
}

// ===== чтение =====

// ReadByte implements io.ByteReader.
func (bb *ByteBuffer) ReadByte() (byte, error) {
	b, err := bb.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (bb *ByteBuffer) ReadUint8() (uint8, error) {
	return bb.ReadByte()
}

func (bb *ByteBuffer) ReadBool() (bool, error) {
	b, err := bb.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("%w: %d", ErrInvalidBool, b)
}

func (bb *ByteBuffer) ReadInt8() (int8, error) {
	b, err := bb.ReadByte()
	return int8(b), err // #nosec G115 -- two's complement reinterpretation
}

func (bb *ByteBuffer) ReadUint16() (uint16, error) {
	b, err := bb.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (bb *ByteBuffer) ReadInt16() (int16, error) {
	v, err := bb.ReadUint16()
	return int16(v), err // #nosec G115 -- two's complement reinterpretation
}

func (bb *ByteBuffer) ReadUint32() (uint32, error) {
	b, err := bb.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (bb *ByteBuffer) ReadInt32() (int32, error) {
	v, err := bb.ReadUint32()
	return int32(v), err // #nosec G115 -- two's complement reinterpretation
}

func (bb *ByteBuffer) ReadFloat32() (float32, error) {
	v, err := bb.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadVarUint reads a LEB128 uint32.
func (bb *ByteBuffer) ReadVarUint() (uint32, error) {
	var value uint32
	for shift := uint(0); shift < 35; shift += 7 {
		b, err := bb.ReadByte()
		if err != nil {
			return 0, err
		}
		value |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			return value, nil
		}
	}
	return 0, ErrVarintOverflow
}

// ReadVarInt reads a zigzag-encoded int32.
func (bb *ByteBuffer) ReadVarInt() (int32, error) {
	u, err := bb.ReadVarUint()
	if err != nil {
		return 0, err
	}
	return int32(u>>1) ^ -int32(u&1), nil // #nosec G115 -- zigzag
}

// ReadVarFloat reads a float written by WriteVarFloat.
func (bb *ByteBuffer) ReadVarFloat() (float32, error) {
	first, err := bb.ReadByte()
	if err != nil {
		return 0, err
	}
	if first == 0 {
		return 0, nil
	}
	rest, err := bb.take(3)
	if err != nil {
		return 0, err
	}
	bits := uint32(first) | uint32(rest[0])<<8 | uint32(rest[1])<<16 | uint32(rest[2])<<24
	bits = bits<<23 | bits>>9
	return math.Float32frombits(bits), nil
}

// ReadString reads a VarUint length followed by that many bytes.
func (bb *ByteBuffer) ReadString() (string, error) {
	n, err := bb.readLen(1)
	if err != nil {
		return "", err
	}
	b, err := bb.take(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readLen reads a VarUint count and checks that count*elemSize bytes remain.
func (bb *ByteBuffer) readLen(elemSize int) (int, error) {
	u, err := bb.ReadVarUint()
	if err != nil {
		return 0, err
	}
	n, err := safecast.Conv[int](u)
	if err != nil {
		return 0, err
	}
	if n > bb.Remaining()/elemSize {
		return 0, fmt.Errorf("%w: length %d exceeds remaining %d bytes", ErrUnexpectedEOF, n, bb.Remaining())
	}
	return n, nil
}

// ReadCount reads an array element count. The count is not checked against
// the unread tail: elements of an empty struct take zero bytes.
func (bb *ByteBuffer) ReadCount() (int, error) {
	u, err := bb.ReadVarUint()
	if err != nil {
		return 0, err
	}
	return safecast.Conv[int](u)
}

// ===== запись =====

func (bb *ByteBuffer) grow(n int) []byte {
	l := len(bb.data)
	bb.data = append(bb.data, make([]byte, n)...)
	return bb.data[l:]
}

// WriteByte implements io.ByteWriter; it never fails.
func (bb *ByteBuffer) WriteByte(b byte) error {
	bb.WriteUint8(b)
	return nil
}

func (bb *ByteBuffer) WriteUint8(v uint8) {
	bb.data = append(bb.data, v)
}

func (bb *ByteBuffer) WriteBool(v bool) {
	if v {
		bb.WriteUint8(1)
		return
	}
	bb.WriteUint8(0)
}

func (bb *ByteBuffer) WriteInt8(v int8) {
	bb.WriteUint8(uint8(v)) // #nosec G115 -- two's complement reinterpretation
}

func (bb *ByteBuffer) WriteUint16(v uint16) {
	binary.LittleEndian.PutUint16(bb.grow(2), v)
}

func (bb *ByteBuffer) WriteInt16(v int16) {
	bb.WriteUint16(uint16(v)) // #nosec G115 -- two's complement reinterpretation
}

func (bb *ByteBuffer) WriteUint32(v uint32) {
	binary.LittleEndian.PutUint32(bb.grow(4), v)
}

func (bb *ByteBuffer) WriteInt32(v int32) {
	bb.WriteUint32(uint32(v)) // #nosec G115 -- two's complement reinterpretation
}

func (bb *ByteBuffer) WriteFloat32(v float32) {
	bb.WriteUint32(math.Float32bits(v))
}

func (bb *ByteBuffer) WriteVarUint(v uint32) {
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v == 0 {
			bb.WriteUint8(b)
			return
		}
		bb.WriteUint8(b | 0x80)
	}
}

func (bb *ByteBuffer) WriteVarInt(v int32) {
	bb.WriteVarUint(uint32(v<<1) ^ uint32(v>>31)) // #nosec G115 -- zigzag
}

// WriteVarFloat writes one zero byte when the exponent is zero (so 0, -0
// and denormals collapse to 0), otherwise the 4 rotated bytes.
func (bb *ByteBuffer) WriteVarFloat(v float32) {
	bits := math.Float32bits(v)
	bits = bits>>23 | bits<<9
	if bits&0xFF == 0 {
		bb.WriteUint8(0)
		return
	}
	binary.LittleEndian.PutUint32(bb.grow(4), bits)
}

func (bb *ByteBuffer) WriteString(s string) {
	bb.writeLen(len(s))
	bb.data = append(bb.data, s...)
}

func (bb *ByteBuffer) writeLen(n int) {
	u, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("wire: length overflow: %w", err))
	}
	bb.WriteVarUint(u)
}

// WriteCount writes an array element count.
func (bb *ByteBuffer) WriteCount(n int) {
	bb.writeLen(n)
}
