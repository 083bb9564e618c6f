package wire

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// Window is a read-only cursor over a byte slice. Every read checks that
// enough bytes remain before advancing, and a failed read leaves the cursor
// where it was. Windows are small values; copying one snapshots its
// position.
type Window struct {
	data   []byte
	offset int
	order  binary.ByteOrder
}

// NewWindow returns a Window positioned at the start of data. The data is
// never modified.
func NewWindow(data []byte) *Window {
	return &Window{data: data}
}

// Len returns the total length of the underlying input.
func (w *Window) Len() int {
	return len(w.data)
}

// Offset returns the number of bytes consumed so far.
func (w *Window) Offset() int {
	return w.offset
}

// Remaining returns the number of unread bytes.
func (w *Window) Remaining() int {
	return len(w.data) - w.offset
}

// Rest returns the unread bytes.
func (w *Window) Rest() []byte {
	return w.data[w.offset:]
}

// Consumed returns the bytes read so far.
func (w *Window) Consumed() []byte {
	return w.data[:w.offset]
}

func (w *Window) byteOrder() binary.ByteOrder {
	if w.order == nil {
		return host
	}
	return w.order
}

// peek returns the next n bytes without advancing.
func (w *Window) peek(n uint64) ([]byte, error) {
	if n > uint64(w.Remaining()) {
		return nil, errors.Wrapf(ErrTruncatedInput, "need %d bytes at offset %d, have %d", n, w.offset, w.Remaining())
	}
	return w.data[w.offset : w.offset+int(n)], nil
}

// ReadUint reads an unsigned LEB128 varint.
func (w *Window) ReadUint() (uint64, error) {
	v, span, err := DecodeUint(w.Rest())
	if err != nil {
		return 0, errors.Wrapf(err, "reading uint at offset %d", w.offset)
	}
	w.offset += len(span)
	return v, nil
}

// ReadInt reads a zig-zag encoded varint.
func (w *Window) ReadInt() (int64, error) {
	v, err := w.ReadUint()
	if err != nil {
		return 0, err
	}
	return UnZigZag(v), nil
}

func (w *Window) readFixed(width int) (uint64, error) {
	b, err := w.peek(uint64(width))
	if err != nil {
		return 0, err
	}
	v := fromLittleEndian(b, w.byteOrder(), width)
	w.offset += width
	return v, nil
}

func (w *Window) ReadUint8() (uint8, error) {
	v, err := w.readFixed(1)
	return uint8(v), err
}

func (w *Window) ReadUint16() (uint16, error) {
	v, err := w.readFixed(2)
	return uint16(v), err
}

func (w *Window) ReadUint32() (uint32, error) {
	v, err := w.readFixed(4)
	return uint32(v), err
}

func (w *Window) ReadUint64() (uint64, error) {
	return w.readFixed(8)
}

func (w *Window) ReadInt8() (int8, error) {
	v, err := w.readFixed(1)
	return int8(v), err
}

func (w *Window) ReadInt16() (int16, error) {
	v, err := w.readFixed(2)
	return int16(v), err
}

func (w *Window) ReadInt32() (int32, error) {
	v, err := w.readFixed(4)
	return int32(v), err
}

func (w *Window) ReadInt64() (int64, error) {
	v, err := w.readFixed(8)
	return int64(v), err
}

// ReadFloat32 reads an IEEE-754 binary32 value.
func (w *Window) ReadFloat32() (float32, error) {
	v, err := w.readFixed(4)
	return math.Float32frombits(uint32(v)), err
}

// ReadFloat64 reads an IEEE-754 binary64 value.
func (w *Window) ReadFloat64() (float64, error) {
	v, err := w.readFixed(8)
	return math.Float64frombits(v), err
}

// ReadBool reads a single byte. Any nonzero byte is true.
func (w *Window) ReadBool() (bool, error) {
	v, err := w.readFixed(1)
	return v != 0, err
}

// ReadFixedData reads exactly n bytes into a new slice.
func (w *Window) ReadFixedData(n uint64) ([]byte, error) {
	b, err := w.peek(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	w.offset += len(b)
	return out, nil
}

// ReadData reads a length-prefixed byte sequence. If max is nonzero, lengths
// above it fail with ErrLimitExceeded before anything is allocated. The
// cursor only advances if both the prefix and the bytes were read.
func (w *Window) ReadData(max uint64) ([]byte, error) {
	start := w.offset
	n, err := w.ReadUint()
	if err != nil {
		return nil, err
	}
	if max != 0 && n > max {
		w.offset = start
		return nil, errors.Wrapf(ErrLimitExceeded, "length %d exceeds maximum %d", n, max)
	}
	out, err := w.ReadFixedData(n)
	if err != nil {
		w.offset = start
		return nil, err
	}
	return out, nil
}

// ReadString reads a length-prefixed string. The bytes are not checked for
// UTF-8 well-formedness.
func (w *Window) ReadString(max uint64) (string, error) {
	b, err := w.ReadData(max)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeUint decodes an unsigned LEB128 varint from the start of src and
// returns the value with the exact sub-slice of src it occupied.
func DecodeUint(src []byte) (uint64, []byte, error) {
	v, n := binary.Uvarint(src)
	switch {
	case n == 0:
		return 0, nil, errors.Wrap(ErrTruncatedInput, "no uint terminator in window")
	case n < 0:
		return 0, nil, ErrOverflow
	}
	return v, src[:n], nil
}
