package wire

import (
	"encoding/binary"
	"math"
)

// Buffer is an append-only byte buffer that values are encoded into. The
// zero value is ready to use.
type Buffer struct {
	data  []byte
	order binary.ByteOrder
}

// NewBuffer returns a Buffer pre-allocated with the given capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{data: make([]byte, 0, capacity)}
}

// Bytes returns the encoded bytes. The slice aliases the buffer's storage
// until the next write.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Reset clears the buffer for reuse.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// Truncate discards everything but the first n bytes. It is used to roll
// back a failed encode to a previously recorded Len.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > len(b.data) {
		panic("wire: truncation out of range")
	}
	b.data = b.data[:n]
}

func (b *Buffer) byteOrder() binary.ByteOrder {
	if b.order == nil {
		return host
	}
	return b.order
}

// WriteUint appends v as an unsigned LEB128 varint. At least one byte is
// always written.
func (b *Buffer) WriteUint(v uint64) {
	b.data = binary.AppendUvarint(b.data, v)
}

// WriteInt appends the zig-zag mapping of v as a varint.
func (b *Buffer) WriteInt(v int64) {
	b.WriteUint(ZigZag(v))
}

func (b *Buffer) WriteUint8(v uint8) {
	b.data = append(b.data, v)
}

func (b *Buffer) WriteUint16(v uint16) {
	b.data = appendLittleEndian(b.data, b.byteOrder(), uint64(v), 2)
}

func (b *Buffer) WriteUint32(v uint32) {
	b.data = appendLittleEndian(b.data, b.byteOrder(), uint64(v), 4)
}

func (b *Buffer) WriteUint64(v uint64) {
	b.data = appendLittleEndian(b.data, b.byteOrder(), v, 8)
}

func (b *Buffer) WriteInt8(v int8) {
	b.data = append(b.data, byte(v))
}

func (b *Buffer) WriteInt16(v int16) {
	b.WriteUint16(uint16(v))
}

func (b *Buffer) WriteInt32(v int32) {
	b.WriteUint32(uint32(v))
}

func (b *Buffer) WriteInt64(v int64) {
	b.WriteUint64(uint64(v))
}

// WriteFloat32 appends the IEEE-754 binary32 pattern of v.
func (b *Buffer) WriteFloat32(v float32) {
	b.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 appends the IEEE-754 binary64 pattern of v.
func (b *Buffer) WriteFloat64(v float64) {
	b.WriteUint64(math.Float64bits(v))
}

func (b *Buffer) WriteBool(v bool) {
	if v {
		b.data = append(b.data, 0x01)
	} else {
		b.data = append(b.data, 0x00)
	}
}

// WriteString appends the byte length of s followed by its bytes. The bytes
// are not checked for UTF-8 well-formedness.
func (b *Buffer) WriteString(s string) {
	b.WriteUint(uint64(len(s)))
	b.data = append(b.data, s...)
}

// WriteData appends a length-prefixed byte sequence.
func (b *Buffer) WriteData(p []byte) {
	b.WriteUint(uint64(len(p)))
	b.data = append(b.data, p...)
}

// WriteFixedData appends p without a length prefix.
func (b *Buffer) WriteFixedData(p []byte) {
	b.data = append(b.data, p...)
}

// ZigZag maps a signed integer onto an unsigned one so that values of small
// magnitude stay small: 0, -1, 1, -2 become 0, 1, 2, 3.
func ZigZag(v int64) uint64 {
	if v >= 0 {
		return uint64(v) << 1
	}
	return ^(uint64(v) << 1)
}

// UnZigZag inverts ZigZag.
func UnZigZag(v uint64) int64 {
	if v&1 == 0 {
		return int64(v >> 1)
	}
	return ^int64(v >> 1)
}
