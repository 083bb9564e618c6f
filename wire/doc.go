/*
Package wire implements the byte-level primitives of the BARE encoding.

Primitive encodings:

	- uint: unsigned LEB128. Seven bits per byte, least significant group
	  first, 0x80 set on every byte but the last. 0 encodes as 0x00.
	- int: zig-zag mapped to a uint, then as uint.
	- u8, u16, u32, u64, i8, i16, i32, i64: 1/2/4/8 bytes, little-endian,
	  two's complement for signed values.
	- f32, f64: IEEE-754 binary32/binary64, little-endian.
	- bool: 0x00 or 0x01. Any nonzero byte decodes as true.
	- str: uint byte length followed by the UTF-8 bytes.
	- data: uint length followed by the bytes, or exactly N bytes with no
	  prefix when the length is fixed.
	- void: nothing.

Values are appended to a Buffer and read back through a Window:

	buf := wire.NewBuffer(16)
	buf.WriteUint(255)   // ff 01
	buf.WriteInt16(-1)   // ff ff

	w := wire.NewWindow(buf.Bytes())
	u, err := w.ReadUint()
	i, err := w.ReadInt16()

Fixed-width numbers are laid out in the host's byte order and normalized to
little-endian on the way out, so the encoding is identical on every
platform.
*/
package wire
