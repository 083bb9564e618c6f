package jsonbare

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"math"
	"strconv"

	"bare/schema"
	"bare/value"
	"bare/wire"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Member is one key of an Object.
type Member struct {
	Key   string
	Value interface{}
}

// Object is a string-keyed mapping that keeps its keys in order. Structs,
// maps and unions render as Objects.
type Object []Member

// Get returns the value stored under key.
func (o Object) Get(key string) (interface{}, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o Object) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, m := range o {
		k, v := new(yaml.Node), new(yaml.Node)
		if err := k.Encode(m.Key); err != nil {
			return nil, err
		}
		if err := v.Encode(m.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, k, v)
	}
	return node, nil
}

// MarshalCBOR writes the object as a CBOR map. CBOR maps are unordered, so
// keys are written in deterministic order instead.
func (o Object) MarshalCBOR() ([]byte, error) {
	m := make(map[string]interface{}, len(o))
	for _, member := range o {
		m[member.Key] = member.Value
	}
	return cborMode.Marshal(m)
}

// Bytes is data. It renders as hex text in JSON and YAML and as a byte
// string in CBOR.
type Bytes []byte

func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

func (b Bytes) MarshalYAML() (interface{}, error) {
	return hex.EncodeToString(b), nil
}

var cborMode cbor.EncMode

func init() {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	cborMode = mode
}

// Plain renders v, a value of type t, as plain Go values: uint64, int64,
// float64, bool, string, Bytes, nil, []interface{} and Object. Enums render
// as their names, unions as {"tag": n, "value": v}, map keys in their text
// form. Floats that are not finite render as the strings "NaN", "+Inf" and
// "-Inf". Optionals of optionals cannot be rendered.
func Plain(v value.Value, t schema.Type, s *schema.Schema) (interface{}, error) {
	if err := value.Validate(v, t, s); err != nil {
		return nil, err
	}
	return plain(v, t, s)
}

func plain(v value.Value, t schema.Type, s *schema.Schema) (interface{}, error) {
	t, err := s.Resolve(t)
	if err != nil {
		return nil, err
	}
	switch vv := v.(type) {
	case value.Uint:
		return uint64(vv), nil
	case value.Uint8:
		return uint64(vv), nil
	case value.Uint16:
		return uint64(vv), nil
	case value.Uint32:
		return uint64(vv), nil
	case value.Uint64:
		return uint64(vv), nil
	case value.Int:
		return int64(vv), nil
	case value.Int8:
		return int64(vv), nil
	case value.Int16:
		return int64(vv), nil
	case value.Int32:
		return int64(vv), nil
	case value.Int64:
		return int64(vv), nil
	case value.Float32:
		return plainFloat(float64(vv)), nil
	case value.Float64:
		return plainFloat(float64(vv)), nil
	case value.Bool:
		return bool(vv), nil
	case value.Str:
		return string(vv), nil
	case value.Void:
		return nil, nil
	case value.Data:
		return Bytes(vv.Bytes()), nil
	case value.Enum:
		return t.(*schema.EnumType).Name(uint64(vv))
	case *value.Optional:
		ot := t.(*schema.OptionalType)
		if err := checkOptional(ot, s); err != nil {
			return nil, err
		}
		inner, ok := vv.Get()
		if !ok {
			return nil, nil
		}
		return plain(inner, ot.Inner(), s)
	case *value.List:
		elem := t.(*schema.ListType).Elem()
		out := make([]interface{}, vv.Len())
		for i, e := range vv.Elems() {
			if out[i], err = plain(e, elem, s); err != nil {
				return nil, err
			}
		}
		return out, nil
	case *value.Map:
		mt := t.(*schema.MapType)
		out := make(Object, 0, vv.Len())
		for _, e := range vv.Entries() {
			key, err := keyText(e.Key, mt.Key(), s)
			if err != nil {
				return nil, err
			}
			val, err := plain(e.Value, mt.Value(), s)
			if err != nil {
				return nil, err
			}
			out = append(out, Member{key, val})
		}
		return out, nil
	case *value.Union:
		member, err := t.(*schema.UnionType).Member(vv.Tag())
		if err != nil {
			return nil, err
		}
		val, err := plain(vv.Value(), member, s)
		if err != nil {
			return nil, err
		}
		return Object{{"tag", vv.Tag()}, {"value", val}}, nil
	case *value.Struct:
		fields := t.(*schema.StructType).Fields()
		out := make(Object, len(fields))
		for i, f := range fields {
			fv, _ := vv.Field(f.Name)
			val, err := plain(fv, f.Type, s)
			if err != nil {
				return nil, err
			}
			out[i] = Member{f.Name, val}
		}
		return out, nil
	default:
		return nil, errors.Wrapf(wire.ErrIllegalState, "unsupported value %T", v)
	}
}

// checkOptional rejects optionals of optionals. Both an absent outer value
// and a present outer holding an absent inner would render as null.
func checkOptional(t *schema.OptionalType, s *schema.Schema) error {
	inner, err := s.Resolve(t.Inner())
	if err != nil {
		return err
	}
	if inner.Kind() == schema.KindOptional {
		return errors.Wrapf(wire.ErrTypeMismatch, "%s has no plain rendering", t)
	}
	return nil
}

func plainFloat(f float64) interface{} {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	default:
		return f
	}
}

func keyText(k value.Value, t schema.Type, s *schema.Schema) (string, error) {
	switch kv := k.(type) {
	case value.Str:
		return string(kv), nil
	case value.Bool:
		return strconv.FormatBool(bool(kv)), nil
	case value.Enum:
		et, err := s.Resolve(t)
		if err != nil {
			return "", err
		}
		return et.(*schema.EnumType).Name(uint64(kv))
	}
	p, err := plain(k, t, s)
	if err != nil {
		return "", err
	}
	switch pv := p.(type) {
	case uint64:
		return strconv.FormatUint(pv, 10), nil
	case int64:
		return strconv.FormatInt(pv, 10), nil
	default:
		return "", errors.Wrapf(wire.ErrTypeMismatch, "%s cannot be used as a map key", k.Kind())
	}
}
