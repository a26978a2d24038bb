package wire

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestVarUintEncoding(t *testing.T) {
	tests := []struct {
		v    uint32
		want []byte
	}{
		{0, []byte{0}},
		{1, []byte{1}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xAC, 0x02}},
		{math.MaxUint32, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
	}
	for _, tt := range tests {
		bb := NewByteBuffer()
		bb.WriteVarUint(tt.v)
		if !bytes.Equal(bb.Bytes(), tt.want) {
			t.Errorf("WriteVarUint(%d) = % x, want % x", tt.v, bb.Bytes(), tt.want)
		}
		got, err := NewByteBufferFrom(tt.want).ReadVarUint()
		if err != nil || got != tt.v {
			t.Errorf("ReadVarUint(% x) = %d, %v", tt.want, got, err)
		}
	}
}

func TestVarIntZigZag(t *testing.T) {
	tests := []struct {
		v    int32
		want []byte
	}{
		{0, []byte{0}},
		{-1, []byte{1}},
		{1, []byte{2}},
		{-2, []byte{3}},
		{math.MaxInt32, []byte{0xFE, 0xFF, 0xFF, 0xFF, 0x0F}},
		{math.MinInt32, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
	}
	for _, tt := range tests {
		bb := NewByteBuffer()
		bb.WriteVarInt(tt.v)
		if !bytes.Equal(bb.Bytes(), tt.want) {
			t.Errorf("WriteVarInt(%d) = % x, want % x", tt.v, bb.Bytes(), tt.want)
		}
		got, err := NewByteBufferFrom(bb.Bytes()).ReadVarInt()
		if err != nil || got != tt.v {
			t.Errorf("ReadVarInt round trip of %d = %d, %v", tt.v, got, err)
		}
	}
}

func TestVarFloat(t *testing.T) {
	bb := NewByteBuffer()
	bb.WriteVarFloat(0)
	if !bytes.Equal(bb.Bytes(), []byte{0}) {
		t.Fatalf("zero must be a single byte, got % x", bb.Bytes())
	}
	for _, v := range []float32{1, -1, 0.5, 3.14159, -1234.5, math.MaxFloat32, float32(math.Inf(1))} {
		bb := NewByteBuffer()
		bb.WriteVarFloat(v)
		if bb.Len() != 4 {
			t.Errorf("WriteVarFloat(%v) wrote %d bytes", v, bb.Len())
		}
		got, err := NewByteBufferFrom(bb.Bytes()).ReadVarFloat()
		if err != nil || got != v {
			t.Errorf("VarFloat round trip of %v = %v, %v", v, got, err)
		}
	}
	// 1.0 = 0x3F800000; rotated: exponent byte first
	bb = NewByteBuffer()
	bb.WriteVarFloat(1)
	if !bytes.Equal(bb.Bytes(), []byte{0x7F, 0x00, 0x00, 0x00}) {
		t.Fatalf("unexpected bytes for 1.0: % x", bb.Bytes())
	}
}

func TestFixedWidthLittleEndian(t *testing.T) {
	bb := NewByteBuffer()
	bb.WriteUint16(0x0102)
	bb.WriteInt32(-2)
	bb.WriteFloat32(1)
	bb.WriteBool(true)
	bb.WriteInt8(-1)
	want := []byte{0x02, 0x01, 0xFE, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x80, 0x3F, 0x01, 0xFF}
	if !bytes.Equal(bb.Bytes(), want) {
		t.Fatalf("got % x, want % x", bb.Bytes(), want)
	}

	rd := NewByteBufferFrom(bb.Bytes())
	u16, _ := rd.ReadUint16()
	i32, _ := rd.ReadInt32()
	f32, _ := rd.ReadFloat32()
	b, _ := rd.ReadBool()
	i8, err := rd.ReadInt8()
	if err != nil || u16 != 0x0102 || i32 != -2 || f32 != 1 || !b || i8 != -1 {
		t.Fatalf("read back mismatch: %x %d %v %v %d %v", u16, i32, f32, b, i8, err)
	}
	if rd.Remaining() != 0 {
		t.Fatalf("expected buffer to be drained, %d left", rd.Remaining())
	}
}

func TestStringIsLengthPrefixed(t *testing.T) {
	bb := NewByteBuffer()
	bb.WriteString("héllo")
	if bb.Bytes()[0] != 6 {
		t.Fatalf("expected byte length prefix 6, got %d", bb.Bytes()[0])
	}
	got, err := NewByteBufferFrom(bb.Bytes()).ReadString()
	if err != nil || got != "héllo" {
		t.Fatalf("ReadString = %q, %v", got, err)
	}
}

func TestTypedArrays(t *testing.T) {
	bb := NewByteBuffer()
	bb.WriteByteArray([]byte{1, 2, 3})
	bb.WriteInt8Array([]int8{-1, 1})
	bb.WriteUint16Array([]uint16{1, 0xFFFF})
	bb.WriteInt16Array([]int16{-2})
	bb.WriteUint32Array([]uint32{7})
	bb.WriteInt32Array([]int32{-7, 7})
	bb.WriteFloat32Array([]float32{1.5})
	bb.WriteUint16Array(nil)

	rd := NewByteBufferFrom(bb.Bytes())
	b, _ := rd.ReadByteArray()
	i8, _ := rd.ReadInt8Array()
	u16, _ := rd.ReadUint16Array()
	i16, _ := rd.ReadInt16Array()
	u32, _ := rd.ReadUint32Array()
	i32, _ := rd.ReadInt32Array()
	f32, _ := rd.ReadFloat32Array()
	empty, err := rd.ReadUint16Array()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(b, []byte{1, 2, 3}) || i8[0] != -1 || i8[1] != 1 || u16[1] != 0xFFFF ||
		i16[0] != -2 || u32[0] != 7 || i32[0] != -7 || i32[1] != 7 || f32[0] != 1.5 || len(empty) != 0 {
		t.Fatalf("array round trip mismatch: %v %v %v %v %v %v %v %v", b, i8, u16, i16, u32, i32, f32, empty)
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := NewByteBufferFrom(nil).ReadByte(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("ReadByte on empty buffer: %v", err)
	}
	if _, err := NewByteBufferFrom([]byte{1, 2, 3}).ReadUint32(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("short ReadUint32: %v", err)
	}
	if _, err := NewByteBufferFrom([]byte{2}).ReadBool(); !errors.Is(err, ErrInvalidBool) {
		t.Fatalf("ReadBool(2): %v", err)
	}
	if _, err := NewByteBufferFrom([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}).ReadVarUint(); !errors.Is(err, ErrVarintOverflow) {
		t.Fatalf("long varint: %v", err)
	}
	// declared length larger than the remaining bytes
	if _, err := NewByteBufferFrom([]byte{10, 'a'}).ReadString(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("truncated string: %v", err)
	}
	if _, err := NewByteBufferFrom([]byte{2, 0, 0, 0}).ReadUint32Array(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("truncated uint32 array: %v", err)
	}
	if _, err := NewByteBufferFrom([]byte{0x7F}).ReadVarFloat(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("truncated varfloat: %v", err)
	}
}

func TestGenericArrays(t *testing.T) {
	bb := NewByteBuffer()
	WriteEach(bb, []string{"a", "bc"}, (*ByteBuffer).WriteString)
	err := WriteArray(bb, []int32{1, -1}, func(bb *ByteBuffer, v int32) error {
		bb.WriteVarInt(v)
		return nil
	})
	if err != nil {
		t.Fatalf("WriteArray: %v", err)
	}
	if want := []byte{2, 1, 'a', 2, 'b', 'c', 2, 2, 1}; !bytes.Equal(bb.Bytes(), want) {
		t.Fatalf("bytes = %v, want %v", bb.Bytes(), want)
	}

	rd := NewByteBufferFrom(bb.Bytes())
	s, err := ReadArray(rd, (*ByteBuffer).ReadString)
	if err != nil || len(s) != 2 || s[1] != "bc" {
		t.Fatalf("ReadArray strings = %v, %v", s, err)
	}
	ints, err := ReadArray(rd, (*ByteBuffer).ReadVarInt)
	if err != nil || len(ints) != 2 || ints[1] != -1 {
		t.Fatalf("ReadArray ints = %v, %v", ints, err)
	}

	failing := errors.New("boom")
	err = WriteArray(NewByteBuffer(), []int{1, 2}, func(*ByteBuffer, int) error { return failing })
	if !errors.Is(err, failing) {
		t.Fatalf("expected element error, got %v", err)
	}
}

func TestReadArrayZeroSizeElements(t *testing.T) {
	empty := func(*ByteBuffer) (struct{}, error) { return struct{}{}, nil }
	got, err := ReadArray(NewByteBufferFrom([]byte{3}), empty)
	if err != nil || len(got) != 3 {
		t.Fatalf("ReadArray of zero-size elements = %d, %v", len(got), err)
	}
	// большой счётчик без данных падает на первом элементе
	huge := NewByteBufferFrom([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F})
	if _, err := ReadArray(huge, (*ByteBuffer).ReadString); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("truncated array: %v", err)
	}
}
