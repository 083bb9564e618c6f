package value

import (
	"bare/schema"
	"bare/wire"

	"github.com/pkg/errors"
)

const (
	DefaultMaxListLen = 1 << 20
	DefaultMaxDataLen = 64 * 1024 * 1024
	DefaultMaxDepth   = 512
)

// Decoder decodes values against a type. The limits guard against inputs
// whose length prefixes or nesting would make the decoder allocate or
// recurse without bound. A zero limit disables that guard.
type Decoder struct {
	// MaxListLen is the largest list or map count the decoder accepts.
	MaxListLen uint64

	// MaxDataLen is the largest str or data length the decoder accepts.
	MaxDataLen uint64

	// MaxDepth is the deepest composite nesting the decoder accepts.
	MaxDepth int
}

// DefaultDecoder is used by the package-level Decode and Unmarshal.
var DefaultDecoder = &Decoder{
	MaxListLen: DefaultMaxListLen,
	MaxDataLen: DefaultMaxDataLen,
	MaxDepth:   DefaultMaxDepth,
}

// Decode reads one value of type t from w using the DefaultDecoder.
func Decode(w *wire.Window, t schema.Type, s *schema.Schema) (Value, error) {
	return DefaultDecoder.Decode(w, t, s)
}

// Unmarshal decodes one value of type t from the start of data using the
// DefaultDecoder, and returns the bytes that follow it.
func Unmarshal(data []byte, t schema.Type, s *schema.Schema) (Value, []byte, error) {
	return DefaultDecoder.Unmarshal(data, t, s)
}

// Decode reads one value of type t from w. The encoding is not
// self-describing, so t supplies every element, member and field type;
// named types are resolved through s. On failure w is left where it was.
func (d *Decoder) Decode(w *wire.Window, t schema.Type, s *schema.Schema) (Value, error) {
	start := *w
	v, err := d.decode(w, t, s, 0)
	if err != nil {
		*w = start
		return nil, err
	}
	return v, nil
}

// Unmarshal decodes one value of type t from the start of data and returns
// the bytes that follow it.
func (d *Decoder) Unmarshal(data []byte, t schema.Type, s *schema.Schema) (Value, []byte, error) {
	w := wire.NewWindow(data)
	v, err := d.Decode(w, t, s)
	if err != nil {
		return nil, data, err
	}
	return v, w.Rest(), nil
}

func decodePrimitive(w *wire.Window, k Kind) (Value, error) {
	switch k {
	case schema.KindUint:
		v, err := w.ReadUint()
		return Uint(v), err
	case schema.KindUint8:
		v, err := w.ReadUint8()
		return Uint8(v), err
	case schema.KindUint16:
		v, err := w.ReadUint16()
		return Uint16(v), err
	case schema.KindUint32:
		v, err := w.ReadUint32()
		return Uint32(v), err
	case schema.KindUint64:
		v, err := w.ReadUint64()
		return Uint64(v), err
	case schema.KindInt:
		v, err := w.ReadInt()
		return Int(v), err
	case schema.KindInt8:
		v, err := w.ReadInt8()
		return Int8(v), err
	case schema.KindInt16:
		v, err := w.ReadInt16()
		return Int16(v), err
	case schema.KindInt32:
		v, err := w.ReadInt32()
		return Int32(v), err
	case schema.KindInt64:
		v, err := w.ReadInt64()
		return Int64(v), err
	case schema.KindFloat32:
		v, err := w.ReadFloat32()
		return Float32(v), err
	case schema.KindFloat64:
		v, err := w.ReadFloat64()
		return Float64(v), err
	case schema.KindBool:
		v, err := w.ReadBool()
		return Bool(v), err
	case schema.KindVoid:
		return Void{}, nil
	default:
		return nil, errors.Wrapf(wire.ErrIllegalState, "%s is not a primitive kind", k)
	}
}

// checkCount rejects counts that could not possibly be satisfied by the
// remaining input. Every concrete value occupies at least one byte.
func (d *Decoder) checkCount(w *wire.Window, n uint64) error {
	if d.MaxListLen != 0 && n > d.MaxListLen {
		return errors.Wrapf(wire.ErrLimitExceeded, "count %d exceeds maximum %d", n, d.MaxListLen)
	}
	if n > uint64(w.Remaining()) {
		return errors.Wrapf(wire.ErrTruncatedInput, "count %d with %d bytes left", n, w.Remaining())
	}
	return nil
}

func (d *Decoder) decode(w *wire.Window, t schema.Type, s *schema.Schema, depth int) (Value, error) {
	t, err := s.Resolve(t)
	if err != nil {
		return nil, err
	}
	if d.MaxDepth != 0 && depth > d.MaxDepth {
		return nil, errors.Wrapf(wire.ErrLimitExceeded, "nesting deeper than %d", d.MaxDepth)
	}

	switch tt := t.(type) {
	case schema.PrimitiveType:
		if tt.Kind() == schema.KindStr {
			str, err := w.ReadString(d.MaxDataLen)
			if err != nil {
				return nil, err
			}
			return Str(str), nil
		}
		return decodePrimitive(w, tt.Kind())
	case schema.DataType:
		if n, fixed := tt.Length(); fixed {
			b, err := w.ReadFixedData(n)
			if err != nil {
				return nil, err
			}
			return Data{bytes: b, fixed: true}, nil
		}
		b, err := w.ReadData(d.MaxDataLen)
		if err != nil {
			return nil, err
		}
		return Data{bytes: b}, nil
	case *schema.EnumType:
		v, err := w.ReadUint()
		if err != nil {
			return nil, err
		}
		if _, err := tt.Name(v); err != nil {
			return nil, err
		}
		return Enum(v), nil
	case *schema.OptionalType:
		return d.decodeOptional(w, tt, s, depth)
	case *schema.ListType:
		return d.decodeList(w, tt, s, depth)
	case *schema.MapType:
		return d.decodeMap(w, tt, s, depth)
	case *schema.UnionType:
		tag, err := w.ReadUint()
		if err != nil {
			return nil, err
		}
		member, err := tt.Member(tag)
		if err != nil {
			return nil, err
		}
		v, err := d.decode(w, member, s, depth+1)
		if err != nil {
			return nil, errors.Wrapf(err, "union member %d", tag)
		}
		return &Union{tag: tag, value: v}, nil
	case *schema.StructType:
		fields := tt.Fields()
		out := make([]Field, len(fields))
		for i, f := range fields {
			v, err := d.decode(w, f.Type, s, depth+1)
			if err != nil {
				return nil, errors.Wrapf(err, "struct field %s", f.Name)
			}
			out[i] = Field{Name: f.Name, Value: v}
		}
		return &Struct{fields: out}, nil
	default:
		return nil, errors.Wrapf(wire.ErrIllegalState, "unsupported type %s", t)
	}
}

func (d *Decoder) decodeOptional(w *wire.Window, t *schema.OptionalType, s *schema.Schema, depth int) (Value, error) {
	present, err := w.ReadUint8()
	if err != nil {
		return nil, err
	}
	switch present {
	case 0:
		return None(), nil
	case 1:
		v, err := d.decode(w, t.Inner(), s, depth+1)
		if err != nil {
			return nil, err
		}
		return &Optional{value: v}, nil
	default:
		return nil, errors.Wrapf(wire.ErrInvalidDiscriminant, "optional presence byte %#x", present)
	}
}

func (d *Decoder) decodeList(w *wire.Window, t *schema.ListType, s *schema.Schema, depth int) (Value, error) {
	n, fixed := t.Length()
	if !fixed {
		var err error
		if n, err = w.ReadUint(); err != nil {
			return nil, err
		}
	}
	if err := d.checkCount(w, n); err != nil {
		return nil, err
	}
	elems := make([]Value, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := d.decode(w, t.Elem(), s, depth+1)
		if err != nil {
			return nil, errors.Wrapf(err, "list element %d", i)
		}
		elems = append(elems, v)
	}
	return &List{elems: elems, fixed: fixed}, nil
}

func (d *Decoder) decodeMap(w *wire.Window, t *schema.MapType, s *schema.Schema, depth int) (Value, error) {
	n, err := w.ReadUint()
	if err != nil {
		return nil, err
	}
	if err := d.checkCount(w, n); err != nil {
		return nil, err
	}
	m := &Map{
		entries: make([]MapEntry, 0, n),
		index:   make(map[Value]int, n),
	}
	for i := uint64(0); i < n; i++ {
		key, err := d.decode(w, t.Key(), s, depth+1)
		if err != nil {
			return nil, errors.Wrapf(err, "map key %d", i)
		}
		val, err := d.decode(w, t.Value(), s, depth+1)
		if err != nil {
			return nil, errors.Wrapf(err, "map value for key %v", key)
		}
		if err := m.put(key, val); err != nil {
			return nil, err
		}
	}
	return m, nil
}
