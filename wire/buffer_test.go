package wire

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer_WriteUint(t *testing.T) {
	tests := []struct {
		in  uint64
		hex string
	}{
		{0, "00"},
		{1, "01"},
		{126, "7e"},
		{127, "7f"},
		{128, "8001"},
		{129, "8101"},
		{255, "ff01"},
		{math.MaxUint64, "ffffffffffffffffff01"},
	}
	for _, tt := range tests {
		var buf Buffer
		buf.WriteUint(tt.in)
		require.Equal(t, tt.hex, hex.EncodeToString(buf.Bytes()), "uint %d", tt.in)

		v, span, err := DecodeUint(buf.Bytes())
		require.NoError(t, err)
		require.Equal(t, tt.in, v)
		require.Equal(t, buf.Bytes(), span)
	}
}

func TestBuffer_WriteInt(t *testing.T) {
	tests := []struct {
		in  int64
		hex string
	}{
		{0, "00"},
		{1, "02"},
		{-1, "01"},
		{63, "7e"},
		{-63, "7d"},
		{64, "8001"},
		{-64, "7f"},
		{65, "8201"},
		{-65, "8101"},
		{255, "fe03"},
		{-255, "fd03"},
	}
	for _, tt := range tests {
		var buf Buffer
		buf.WriteInt(tt.in)
		require.Equal(t, tt.hex, hex.EncodeToString(buf.Bytes()), "int %d", tt.in)

		v, err := NewWindow(buf.Bytes()).ReadInt()
		require.NoError(t, err)
		require.Equal(t, tt.in, v)
	}
}

func TestZigZag(t *testing.T) {
	for n := int64(-1000); n <= 1000; n++ {
		require.Equal(t, n, UnZigZag(ZigZag(n)))
		if n > 0 {
			require.Equal(t, uint64(2*n), ZigZag(n))
			require.Equal(t, uint64(2*n-1), ZigZag(-n))
		}
	}
	require.Equal(t, uint64(math.MaxUint64), ZigZag(math.MinInt64))
	require.Equal(t, uint64(math.MaxUint64-1), ZigZag(math.MaxInt64))
	require.Equal(t, int64(math.MinInt64), UnZigZag(math.MaxUint64))
}

func TestBuffer_FixedWidth(t *testing.T) {
	tests := []struct {
		name  string
		write func(b *Buffer)
		hex   string
	}{
		{"u8", func(b *Buffer) { b.WriteUint8(0xab) }, "ab"},
		{"u16", func(b *Buffer) { b.WriteUint16(0x0102) }, "0201"},
		{"u32 one", func(b *Buffer) { b.WriteUint32(1) }, "01000000"},
		{"u32 255", func(b *Buffer) { b.WriteUint32(255) }, "ff000000"},
		{"u64", func(b *Buffer) { b.WriteUint64(0x0102030405060708) }, "0807060504030201"},
		{"i8", func(b *Buffer) { b.WriteInt8(-2) }, "fe"},
		{"i16 -1", func(b *Buffer) { b.WriteInt16(-1) }, "ffff"},
		{"i16 255", func(b *Buffer) { b.WriteInt16(255) }, "ff00"},
		{"i16 -255", func(b *Buffer) { b.WriteInt16(-255) }, "01ff"},
		{"i32", func(b *Buffer) { b.WriteInt32(-2) }, "feffffff"},
		{"i64", func(b *Buffer) { b.WriteInt64(-1) }, "ffffffffffffffff"},
		{"f32", func(b *Buffer) { b.WriteFloat32(1) }, "0000803f"},
		{"f64 0", func(b *Buffer) { b.WriteFloat64(0) }, "0000000000000000"},
		{"f64 1", func(b *Buffer) { b.WriteFloat64(1) }, "000000000000f03f"},
		{"f64 2.55", func(b *Buffer) { b.WriteFloat64(2.55) }, "6666666666660440"},
		{"f64 -25.5", func(b *Buffer) { b.WriteFloat64(-25.5) }, "00000000008039c0"},
		{"bool true", func(b *Buffer) { b.WriteBool(true) }, "01"},
		{"bool false", func(b *Buffer) { b.WriteBool(false) }, "00"},
		{"str", func(b *Buffer) { b.WriteString("BARE") }, "0442415245"},
		{"data", func(b *Buffer) { b.WriteData([]byte{0xaa, 0xbb}) }, "02aabb"},
		{"fixed data", func(b *Buffer) { b.WriteFixedData([]byte{0xaa, 0xbb}) }, "aabb"},
	}

	// The wire format must not depend on the host, so every order has to
	// produce the same bytes. BigEndian exercises the byte-swapping path
	// regardless of the machine the tests run on.
	orders := []binary.ByteOrder{binary.LittleEndian, binary.BigEndian, binary.NativeEndian}
	for _, tt := range tests {
		for _, order := range orders {
			buf := &Buffer{order: order}
			tt.write(buf)
			require.Equal(t, tt.hex, hex.EncodeToString(buf.Bytes()), "%s with %s", tt.name, order)
		}
	}
}

func TestBuffer_Truncate(t *testing.T) {
	buf := NewBuffer(8)
	buf.WriteUint32(7)
	mark := buf.Len()
	buf.WriteString("discarded")
	buf.Truncate(mark)
	require.Equal(t, "07000000", hex.EncodeToString(buf.Bytes()))
	require.Panics(t, func() {
		buf.Truncate(mark + 1)
	})
	buf.Reset()
	require.Equal(t, 0, buf.Len())
}

func TestByteOrderHelpers(t *testing.T) {
	require.True(t, isBigEndian(binary.BigEndian))
	require.False(t, isBigEndian(binary.LittleEndian))

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		for _, width := range []int{1, 2, 4, 8} {
			out := appendLittleEndian(nil, order, 0x0807060504030201, width)
			require.Len(t, out, width)
			require.EqualValues(t, 0x01, out[0])
			mask := uint64(math.MaxUint64)
			if width < 8 {
				mask = 1<<(8*uint(width)) - 1
			}
			require.Equal(t, uint64(0x0807060504030201)&mask, fromLittleEndian(out, order, width))
		}
	}
}
