package wire

import "encoding/binary"

// host is the byte order numeric values are laid out in before they are
// normalized to the little-endian wire order.
var host binary.ByteOrder = binary.NativeEndian

func isBigEndian(order binary.ByteOrder) bool {
	var probe [2]byte
	order.PutUint16(probe[:], 1)
	return probe[0] == 0
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// appendLittleEndian lays out the low width bytes of bits in order, then
// emits them in little-endian order.
func appendLittleEndian(dst []byte, order binary.ByteOrder, bits uint64, width int) []byte {
	var raw [8]byte
	switch width {
	case 1:
		raw[0] = byte(bits)
	case 2:
		order.PutUint16(raw[:], uint16(bits))
	case 4:
		order.PutUint32(raw[:], uint32(bits))
	case 8:
		order.PutUint64(raw[:], bits)
	default:
		panic("invalid fixed width")
	}
	b := raw[:width]
	if isBigEndian(order) {
		reverse(b)
	}
	return append(dst, b...)
}

// fromLittleEndian is the inverse of appendLittleEndian. src must hold at
// least width bytes.
func fromLittleEndian(src []byte, order binary.ByteOrder, width int) uint64 {
	var raw [8]byte
	b := raw[:width]
	copy(b, src[:width])
	if isBigEndian(order) {
		reverse(b)
	}
	switch width {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(order.Uint16(b))
	case 4:
		return uint64(order.Uint32(b))
	case 8:
		return order.Uint64(b)
	default:
		panic("invalid fixed width")
	}
}
