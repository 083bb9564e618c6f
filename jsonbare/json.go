package jsonbare

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"bare/schema"
	"bare/value"
	"bare/wire"

	"github.com/pkg/errors"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Marshal renders v, a value of type t, as JSON. See Plain for the shape
// of the output.
func Marshal(v value.Value, t schema.Type, s *schema.Schema) ([]byte, error) {
	p, err := Plain(v, t, s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(p)
}

// MarshalIndent is like Marshal but indents the output.
func MarshalIndent(v value.Value, t schema.Type, s *schema.Schema, indent string) ([]byte, error) {
	p, err := Plain(v, t, s)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(p, "", indent)
}

// MarshalYAML renders v as YAML.
func MarshalYAML(v value.Value, t schema.Type, s *schema.Schema) ([]byte, error) {
	p, err := Plain(v, t, s)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(p)
}

// MarshalCBOR renders v as deterministic CBOR.
func MarshalCBOR(v value.Value, t schema.Type, s *schema.Schema) ([]byte, error) {
	p, err := Plain(v, t, s)
	if err != nil {
		return nil, err
	}
	return cborMode.Marshal(p)
}

// Unmarshal builds a value of type t from its JSON rendering. Comments and
// trailing commas are allowed. Data is read from hex text; enums from their
// names or ordinals; unions from {"tag": n, "value": v}.
func Unmarshal(data []byte, t schema.Type, s *schema.Schema) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()
	p, err := readJSON(dec)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("error parsing JSON: trailing data")
	}
	return FromPlain(p, t, s)
}

// readJSON reads one JSON value, keeping the key order of objects.
func readJSON(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '[':
		out := make([]interface{}, 0)
		for dec.More() {
			v, err := readJSON(dec)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		_, err := dec.Token()
		return out, err
	case '{':
		out := make(Object, 0)
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			v, err := readJSON(dec)
			if err != nil {
				return nil, err
			}
			out = append(out, Member{tok.(string), v})
		}
		_, err := dec.Token()
		return out, err
	default:
		return nil, errors.Errorf("unexpected %s", delim)
	}
}

func shapeError(p interface{}, t schema.Type) error {
	return errors.Wrapf(wire.ErrTypeMismatch, "cannot read %T as %s", p, t)
}

// FromPlain builds a value of type t from plain Go values in the shape
// Plain produces. Numbers may be json.Number or any Go integer or float.
func FromPlain(p interface{}, t schema.Type, s *schema.Schema) (value.Value, error) {
	t, err := s.Resolve(t)
	if err != nil {
		return nil, err
	}

	switch tt := t.(type) {
	case schema.PrimitiveType:
		return fromPrimitive(p, tt)
	case schema.DataType:
		b, err := fromHex(p, t)
		if err != nil {
			return nil, err
		}
		if n, fixed := tt.Length(); fixed {
			if uint64(len(b)) != n {
				return nil, errors.Wrapf(wire.ErrTypeMismatch, "%d bytes of data for type %s", len(b), t)
			}
			return value.NewFixedData(b)
		}
		return value.NewData(b), nil
	case *schema.EnumType:
		if name, ok := p.(string); ok {
			v, err := tt.Value(name)
			if err != nil {
				return nil, err
			}
			return value.Enum(v), nil
		}
		v, err := parseUint(p, 64)
		if err != nil {
			return nil, shapeError(p, t)
		}
		if _, err := tt.Name(v); err != nil {
			return nil, err
		}
		return value.Enum(v), nil
	case *schema.OptionalType:
		if err := checkOptional(tt, s); err != nil {
			return nil, err
		}
		if p == nil {
			return value.None(), nil
		}
		inner, err := FromPlain(p, tt.Inner(), s)
		if err != nil {
			return nil, err
		}
		return value.Some(inner)
	case *schema.ListType:
		items, ok := p.([]interface{})
		if !ok {
			return nil, shapeError(p, t)
		}
		elems := make([]value.Value, len(items))
		for i, item := range items {
			if elems[i], err = FromPlain(item, tt.Elem(), s); err != nil {
				return nil, errors.Wrapf(err, "list element %d", i)
			}
		}
		if n, fixed := tt.Length(); fixed {
			if uint64(len(elems)) != n {
				return nil, errors.Wrapf(wire.ErrTypeMismatch, "%d elements for type %s", len(elems), t)
			}
			return value.NewFixedList(elems...)
		}
		return value.NewList(elems...)
	case *schema.MapType:
		obj, ok := p.(Object)
		if !ok {
			return nil, shapeError(p, t)
		}
		entries := make([]value.MapEntry, len(obj))
		for i, m := range obj {
			key, err := fromKeyText(m.Key, tt.Key(), s)
			if err != nil {
				return nil, err
			}
			val, err := FromPlain(m.Value, tt.Value(), s)
			if err != nil {
				return nil, errors.Wrapf(err, "map value for key %s", m.Key)
			}
			entries[i] = value.MapEntry{Key: key, Value: val}
		}
		return value.NewMap(entries...)
	case *schema.UnionType:
		obj, ok := p.(Object)
		if !ok || len(obj) != 2 {
			return nil, shapeError(p, t)
		}
		rawTag, ok := obj.Get("tag")
		if !ok {
			return nil, errors.Wrapf(wire.ErrTypeMismatch, "union %s needs a tag", t)
		}
		tag, err := parseUint(rawTag, 64)
		if err != nil {
			return nil, shapeError(rawTag, t)
		}
		member, err := tt.Member(tag)
		if err != nil {
			return nil, err
		}
		rawValue, ok := obj.Get("value")
		if !ok {
			return nil, errors.Wrapf(wire.ErrTypeMismatch, "union %s needs a value", t)
		}
		v, err := FromPlain(rawValue, member, s)
		if err != nil {
			return nil, errors.Wrapf(err, "union member %d", tag)
		}
		return value.NewUnion(tag, v)
	case *schema.StructType:
		obj, ok := p.(Object)
		if !ok {
			return nil, shapeError(p, t)
		}
		fields := tt.Fields()
		if len(obj) != len(fields) {
			return nil, errors.Wrapf(wire.ErrTypeMismatch, "%d fields for type %s", len(obj), t)
		}
		out := make([]value.Field, len(fields))
		for i, f := range fields {
			raw, ok := obj.Get(f.Name)
			if !ok {
				return nil, errors.Wrapf(wire.ErrTypeMismatch, "missing field %s", f.Name)
			}
			v, err := FromPlain(raw, f.Type, s)
			if err != nil {
				return nil, errors.Wrapf(err, "struct field %s", f.Name)
			}
			out[i] = value.Field{Name: f.Name, Value: v}
		}
		return value.NewStruct(out...)
	default:
		return nil, errors.Wrapf(wire.ErrIllegalState, "unsupported type %s", t)
	}
}

func fromPrimitive(p interface{}, t schema.PrimitiveType) (value.Value, error) {
	k := t.Kind()
	switch k {
	case schema.KindVoid:
		if p != nil {
			return nil, shapeError(p, t)
		}
		return value.Void{}, nil
	case schema.KindBool:
		b, ok := p.(bool)
		if !ok {
			return nil, shapeError(p, t)
		}
		return value.Bool(b), nil
	case schema.KindStr:
		str, ok := p.(string)
		if !ok {
			return nil, shapeError(p, t)
		}
		return value.Str(str), nil
	case schema.KindFloat32, schema.KindFloat64:
		f, err := parseFloat(p)
		if err != nil {
			return nil, shapeError(p, t)
		}
		if k == schema.KindFloat32 {
			return value.Float32(f), nil
		}
		return value.Float64(f), nil
	case schema.KindUint, schema.KindUint8, schema.KindUint16, schema.KindUint32, schema.KindUint64:
		bits := 64
		if w := k.FixedWidth(); w > 0 {
			bits = w * 8
		}
		u, err := parseUint(p, bits)
		if err != nil {
			return nil, errors.Wrapf(wire.ErrTypeMismatch, "%v is not a %s", p, t)
		}
		switch k {
		case schema.KindUint8:
			return value.Uint8(u), nil
		case schema.KindUint16:
			return value.Uint16(u), nil
		case schema.KindUint32:
			return value.Uint32(u), nil
		case schema.KindUint64:
			return value.Uint64(u), nil
		}
		return value.Uint(u), nil
	default:
		bits := 64
		if w := k.FixedWidth(); w > 0 {
			bits = w * 8
		}
		i, err := parseInt(p, bits)
		if err != nil {
			return nil, errors.Wrapf(wire.ErrTypeMismatch, "%v is not a %s", p, t)
		}
		switch k {
		case schema.KindInt8:
			return value.Int8(i), nil
		case schema.KindInt16:
			return value.Int16(i), nil
		case schema.KindInt32:
			return value.Int32(i), nil
		case schema.KindInt64:
			return value.Int64(i), nil
		}
		return value.Int(i), nil
	}
}

func fromHex(p interface{}, t schema.Type) ([]byte, error) {
	switch pv := p.(type) {
	case Bytes:
		return pv, nil
	case []byte:
		return pv, nil
	case string:
		b, err := hex.DecodeString(pv)
		if err != nil {
			return nil, errors.Wrapf(wire.ErrTypeMismatch, "data is not hex: %v", err)
		}
		return b, nil
	default:
		return nil, shapeError(p, t)
	}
}

func fromKeyText(key string, t schema.Type, s *schema.Schema) (value.Value, error) {
	rt, err := s.Resolve(t)
	if err != nil {
		return nil, err
	}
	switch rt.Kind() {
	case schema.KindStr:
		return value.Str(key), nil
	case schema.KindBool:
		b, err := strconv.ParseBool(key)
		if err != nil {
			return nil, errors.Wrapf(wire.ErrTypeMismatch, "map key %q is not a bool", key)
		}
		return value.Bool(b), nil
	case schema.KindEnum:
		return FromPlain(key, rt, s)
	default:
		return FromPlain(json.Number(key), rt, s)
	}
}

func parseUint(p interface{}, bits int) (uint64, error) {
	switch pv := p.(type) {
	case json.Number:
		return strconv.ParseUint(string(pv), 10, bits)
	case uint64:
		return checkUint(pv, bits)
	case int64:
		if pv < 0 {
			return 0, errors.New("negative")
		}
		return checkUint(uint64(pv), bits)
	case int:
		if pv < 0 {
			return 0, errors.New("negative")
		}
		return checkUint(uint64(pv), bits)
	default:
		return 0, errors.Errorf("%T is not an integer", p)
	}
}

func checkUint(u uint64, bits int) (uint64, error) {
	if bits < 64 && u >= 1<<uint(bits) {
		return 0, errors.New("out of range")
	}
	return u, nil
}

func parseInt(p interface{}, bits int) (int64, error) {
	var i int64
	switch pv := p.(type) {
	case json.Number:
		return strconv.ParseInt(string(pv), 10, bits)
	case int64:
		i = pv
	case int:
		i = int64(pv)
	case uint64:
		if pv > math.MaxInt64 {
			return 0, errors.New("out of range")
		}
		i = int64(pv)
	default:
		return 0, errors.Errorf("%T is not an integer", p)
	}
	if bits < 64 && (i < -(1<<uint(bits-1)) || i >= 1<<uint(bits-1)) {
		return 0, errors.New("out of range")
	}
	return i, nil
}

func parseFloat(p interface{}) (float64, error) {
	switch pv := p.(type) {
	case json.Number:
		return strconv.ParseFloat(string(pv), 64)
	case float64:
		return pv, nil
	case string:
		switch pv {
		case "NaN":
			return math.NaN(), nil
		case "+Inf":
			return math.Inf(1), nil
		case "-Inf":
			return math.Inf(-1), nil
		}
		return 0, errors.Errorf("%q is not a number", pv)
	default:
		return 0, errors.Errorf("%T is not a number", p)
	}
}
