package vm

import (
	"encoding/binary"
	"math"
)

// BufferTag identifies how a Buffer's 256-byte payload is reinterpreted.
type BufferTag uint8

const (
	BufVoid BufferTag = iota
	BufU8
	BufU16
	BufI32
	BufU32
	BufF32
)

func (t BufferTag) String() string {
	switch t {
	case BufVoid:
		return "void"
	case BufU8:
		return "u8"
	case BufU16:
		return "u16"
	case BufI32:
		return "i32"
	case BufU32:
		return "u32"
	case BufF32:
		return "f32"
	default:
		return "?"
	}
}

// Capacity returns the declared element count for a buffer tag (spec §3.4).
func (t BufferTag) Capacity() uint32 {
	switch t {
	case BufU8:
		return 256
	case BufU16:
		return 128
	case BufI32:
		return 64
	case BufU32:
		return 64
	case BufF32:
		return 64
	default:
		return 0
	}
}

// bufferPayloadSize is the single fixed storage size every buffer owns,
// regardless of tag (spec §3.2: "a single 256-byte region reinterpreted
// per tag"). No buffer ever allocates; Buffer is a plain fixed array.
const bufferPayloadSize = 256

// Buffer is a typed, fixed-size memory buffer. The zero Buffer is
// BufVoid-tagged with a zeroed payload.
type Buffer struct {
	Tag     BufferTag
	payload [bufferPayloadSize]byte
}

// Clear zeroes the payload; the tag is unchanged. No-op on a Void buffer.
func (b *Buffer) Clear() {
	b.payload = [bufferPayloadSize]byte{}
}

// ReadU8 returns the byte at pos for a BufU8 buffer. Caller validates pos.
func (b *Buffer) ReadU8(pos uint32) uint8 {
	return b.payload[pos]
}

// WriteU8 writes a byte at pos for a BufU8 buffer.
func (b *Buffer) WriteU8(pos uint32, v uint8) {
	b.payload[pos] = v
}

// ReadU16 returns the little-endian uint16 at element index pos.
func (b *Buffer) ReadU16(pos uint32) uint16 {
	return binary.LittleEndian.Uint16(b.payload[pos*2 : pos*2+2])
}

// WriteU16 writes the little-endian uint16 at element index pos.
func (b *Buffer) WriteU16(pos uint32, v uint16) {
	binary.LittleEndian.PutUint16(b.payload[pos*2:pos*2+2], v)
}

// ReadI32 returns the little-endian int32 at element index pos.
func (b *Buffer) ReadI32(pos uint32) int32 {
	return int32(binary.LittleEndian.Uint32(b.payload[pos*4 : pos*4+4]))
}

// WriteI32 writes the little-endian int32 at element index pos.
func (b *Buffer) WriteI32(pos uint32, v int32) {
	binary.LittleEndian.PutUint32(b.payload[pos*4:pos*4+4], uint32(v))
}

// ReadU32 returns the little-endian uint32 at element index pos.
func (b *Buffer) ReadU32(pos uint32) uint32 {
	return binary.LittleEndian.Uint32(b.payload[pos*4 : pos*4+4])
}

// WriteU32 writes the little-endian uint32 at element index pos.
func (b *Buffer) WriteU32(pos uint32, v uint32) {
	binary.LittleEndian.PutUint32(b.payload[pos*4:pos*4+4], v)
}

// ReadF32 returns the little-endian float32 at element index pos.
func (b *Buffer) ReadF32(pos uint32) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b.payload[pos*4 : pos*4+4]))
}

// WriteF32 writes the little-endian float32 at element index pos.
func (b *Buffer) WriteF32(pos uint32, v float32) {
	binary.LittleEndian.PutUint32(b.payload[pos*4:pos*4+4], math.Float32bits(v))
}

// Bytes exposes the raw 256-byte payload for string scanning.
func (b *Buffer) Bytes() *[bufferPayloadSize]byte {
	return &b.payload
}
