package value

import (
	"bare/schema"
	"bare/wire"

	"github.com/pkg/errors"
)

// Encode appends the encoding of v to buf, following v's own structure:
// struct fields are written in the order the struct was built with, map
// entries in insertion order. If encoding fails, buf is restored to its
// previous length.
func Encode(buf *wire.Buffer, v Value) error {
	start := buf.Len()
	if err := encode(buf, v); err != nil {
		buf.Truncate(start)
		return err
	}
	return nil
}

// EncodeAs appends the encoding of v to buf as a value of type t. v must
// conform to t; struct fields are written in the order t declares them,
// whatever order v holds them in. Named types are resolved through s, which
// may be nil if t contains no references.
func EncodeAs(buf *wire.Buffer, v Value, t schema.Type, s *schema.Schema) error {
	start := buf.Len()
	if err := encodeAs(buf, v, t, s); err != nil {
		buf.Truncate(start)
		return err
	}
	return nil
}

// Validate checks that v conforms to t.
func Validate(v Value, t schema.Type, s *schema.Schema) error {
	var scratch wire.Buffer
	return encodeAs(&scratch, v, t, s)
}

// Marshal returns the encoding of v.
func Marshal(v Value) ([]byte, error) {
	var buf wire.Buffer
	if err := Encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalAs returns the encoding of v as a value of type t.
func MarshalAs(v Value, t schema.Type, s *schema.Schema) ([]byte, error) {
	var buf wire.Buffer
	if err := EncodeAs(&buf, v, t, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodePrimitive(buf *wire.Buffer, v Value) bool {
	switch vv := v.(type) {
	case Uint:
		buf.WriteUint(uint64(vv))
	case Uint8:
		buf.WriteUint8(uint8(vv))
	case Uint16:
		buf.WriteUint16(uint16(vv))
	case Uint32:
		buf.WriteUint32(uint32(vv))
	case Uint64:
		buf.WriteUint64(uint64(vv))
	case Int:
		buf.WriteInt(int64(vv))
	case Int8:
		buf.WriteInt8(int8(vv))
	case Int16:
		buf.WriteInt16(int16(vv))
	case Int32:
		buf.WriteInt32(int32(vv))
	case Int64:
		buf.WriteInt64(int64(vv))
	case Float32:
		buf.WriteFloat32(float32(vv))
	case Float64:
		buf.WriteFloat64(float64(vv))
	case Bool:
		buf.WriteBool(bool(vv))
	case Str:
		buf.WriteString(string(vv))
	case Enum:
		buf.WriteUint(uint64(vv))
	case Void:
	case Data:
		if vv.fixed {
			buf.WriteFixedData(vv.bytes)
		} else {
			buf.WriteData(vv.bytes)
		}
	default:
		return false
	}
	return true
}

func encode(buf *wire.Buffer, v Value) error {
	if encodePrimitive(buf, v) {
		return nil
	}
	switch vv := v.(type) {
	case *Optional:
		if vv.value == nil {
			buf.WriteUint8(0)
			return nil
		}
		buf.WriteUint8(1)
		return encode(buf, vv.value)
	case *List:
		if !vv.fixed {
			buf.WriteUint(uint64(len(vv.elems)))
		}
		for i, e := range vv.elems {
			if err := encode(buf, e); err != nil {
				return errors.Wrapf(err, "list element %d", i)
			}
		}
		return nil
	case *Map:
		buf.WriteUint(uint64(len(vv.entries)))
		for _, e := range vv.entries {
			if err := encode(buf, e.Key); err != nil {
				return err
			}
			if err := encode(buf, e.Value); err != nil {
				return errors.Wrapf(err, "map value for key %v", e.Key)
			}
		}
		return nil
	case *Union:
		if vv.value == nil {
			return errors.Wrap(wire.ErrIllegalState, "union holds no value")
		}
		buf.WriteUint(vv.tag)
		return encode(buf, vv.value)
	case *Struct:
		if len(vv.fields) == 0 {
			return errors.Wrap(wire.ErrIllegalState, "struct has no fields")
		}
		for _, f := range vv.fields {
			if err := encode(buf, f.Value); err != nil {
				return errors.Wrapf(err, "struct field %s", f.Name)
			}
		}
		return nil
	case nil:
		return errors.Wrap(wire.ErrIllegalState, "nil value")
	default:
		return errors.Wrapf(wire.ErrIllegalState, "unsupported value %T", v)
	}
}

func mismatch(v Value, t schema.Type) error {
	return errors.Wrapf(wire.ErrTypeMismatch, "%s value for type %s", kindOf(v), t)
}

func encodeAs(buf *wire.Buffer, v Value, t schema.Type, s *schema.Schema) error {
	t, err := s.Resolve(t)
	if err != nil {
		return err
	}
	if v == nil {
		return errors.Wrap(wire.ErrIllegalState, "nil value")
	}
	if v.Kind() != t.Kind() {
		return mismatch(v, t)
	}

	switch tt := t.(type) {
	case schema.PrimitiveType:
		encodePrimitive(buf, v)
		return nil
	case schema.DataType:
		d := v.(Data)
		n, fixed := tt.Length()
		if d.fixed != fixed {
			return errors.Wrapf(wire.ErrTypeMismatch, "%s data for type %s", fixedText(d.fixed), t)
		}
		if fixed {
			if uint64(len(d.bytes)) != n {
				return errors.Wrapf(wire.ErrTypeMismatch, "%d bytes of data for type %s", len(d.bytes), t)
			}
			buf.WriteFixedData(d.bytes)
		} else {
			buf.WriteData(d.bytes)
		}
		return nil
	case *schema.EnumType:
		e := v.(Enum)
		if _, err := tt.Name(uint64(e)); err != nil {
			return err
		}
		buf.WriteUint(uint64(e))
		return nil
	case *schema.OptionalType:
		o := v.(*Optional)
		if o.value == nil {
			buf.WriteUint8(0)
			return nil
		}
		buf.WriteUint8(1)
		return encodeAs(buf, o.value, tt.Inner(), s)
	case *schema.ListType:
		l := v.(*List)
		n, fixed := tt.Length()
		if l.fixed != fixed {
			return errors.Wrapf(wire.ErrTypeMismatch, "%s list for type %s", fixedText(l.fixed), t)
		}
		if fixed {
			if uint64(len(l.elems)) != n {
				return errors.Wrapf(wire.ErrTypeMismatch, "%d elements for type %s", len(l.elems), t)
			}
		} else {
			buf.WriteUint(uint64(len(l.elems)))
		}
		for i, e := range l.elems {
			if err := encodeAs(buf, e, tt.Elem(), s); err != nil {
				return errors.Wrapf(err, "list element %d", i)
			}
		}
		return nil
	case *schema.MapType:
		m := v.(*Map)
		buf.WriteUint(uint64(len(m.entries)))
		for _, e := range m.entries {
			if err := encodeAs(buf, e.Key, tt.Key(), s); err != nil {
				return errors.Wrap(err, "map key")
			}
			if err := encodeAs(buf, e.Value, tt.Value(), s); err != nil {
				return errors.Wrapf(err, "map value for key %v", e.Key)
			}
		}
		return nil
	case *schema.UnionType:
		u := v.(*Union)
		if u.value == nil {
			return errors.Wrap(wire.ErrIllegalState, "union holds no value")
		}
		member, err := tt.Member(u.tag)
		if err != nil {
			return err
		}
		buf.WriteUint(u.tag)
		return errors.Wrapf(encodeAs(buf, u.value, member, s), "union member %d", u.tag)
	case *schema.StructType:
		st := v.(*Struct)
		fields := tt.Fields()
		if len(st.fields) != len(fields) {
			return errors.Wrapf(wire.ErrTypeMismatch, "struct with %d fields for type %s", len(st.fields), t)
		}
		for _, f := range fields {
			fv, ok := st.Field(f.Name)
			if !ok {
				return errors.Wrapf(wire.ErrTypeMismatch, "struct is missing field %s", f.Name)
			}
			if err := encodeAs(buf, fv, f.Type, s); err != nil {
				return errors.Wrapf(err, "struct field %s", f.Name)
			}
		}
		return nil
	default:
		return errors.Wrapf(wire.ErrIllegalState, "unsupported type %s", t)
	}
}

func fixedText(fixed bool) string {
	if fixed {
		return "fixed-length"
	}
	return "variable-length"
}
