/*
Package value implements the BARE value model and its codec.

A Value is one of twenty-two kinds. Scalars are plain Go types:

	value.Uint(255)     // ff 01
	value.Int(-255)     // fd 03
	value.Uint32(1)     // 01 00 00 00
	value.Bool(true)    // 01
	value.Str("hi")     // 02 68 69

Composites are built with constructors that enforce the format's
invariants up front, so a value that exists can always be encoded:

	opt, err := value.Some(value.Uint8(5))            // 01 05
	list, err := value.NewList(value.Str("a"))         // homogeneous, no void
	st, err := value.NewStruct(value.Field{Name: "a", Value: value.Uint8(1)})

The encoding carries no type information, so decoding needs the expected
schema.Type:

	v, rest, err := value.Unmarshal(data, schema.U32, nil)

Struct fields are written in the order their StructType declares when a
value is encoded with EncodeAs, and in the order the value was built with
when it is encoded with Encode.
*/
package value
