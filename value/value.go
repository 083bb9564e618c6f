package value

import (
	"bare/schema"
	"bare/wire"

	"github.com/pkg/errors"
)

// Kind is re-exported so callers working with values do not need to import
// schema just to switch on kinds.
type Kind = schema.Kind

// Value is any BARE value. The set of implementations is closed: the scalar
// types below, Void, Data, and the composites Optional, List, Map, Union and
// Struct.
type Value interface {
	Kind() Kind
	isValue()
}

type (
	Uint    uint64
	Uint8   uint8
	Uint16  uint16
	Uint32  uint32
	Uint64  uint64
	Int     int64
	Int8    int8
	Int16   int16
	Int32   int32
	Int64   int64
	Float32 float32
	Float64 float64
	Bool    bool
	Str     string
	// Enum is an enum ordinal. Whether the ordinal names a declared value is
	// checked against the EnumType, not here.
	Enum uint64
	Void struct{}
)

func (Uint) Kind() Kind    { return schema.KindUint }
func (Uint8) Kind() Kind   { return schema.KindUint8 }
func (Uint16) Kind() Kind  { return schema.KindUint16 }
func (Uint32) Kind() Kind  { return schema.KindUint32 }
func (Uint64) Kind() Kind  { return schema.KindUint64 }
func (Int) Kind() Kind     { return schema.KindInt }
func (Int8) Kind() Kind    { return schema.KindInt8 }
func (Int16) Kind() Kind   { return schema.KindInt16 }
func (Int32) Kind() Kind   { return schema.KindInt32 }
func (Int64) Kind() Kind   { return schema.KindInt64 }
func (Float32) Kind() Kind { return schema.KindFloat32 }
func (Float64) Kind() Kind { return schema.KindFloat64 }
func (Bool) Kind() Kind    { return schema.KindBool }
func (Str) Kind() Kind     { return schema.KindStr }
func (Enum) Kind() Kind    { return schema.KindEnum }
func (Void) Kind() Kind    { return schema.KindVoid }

func (Uint) isValue()    {}
func (Uint8) isValue()   {}
func (Uint16) isValue()  {}
func (Uint32) isValue()  {}
func (Uint64) isValue()  {}
func (Int) isValue()     {}
func (Int8) isValue()    {}
func (Int16) isValue()   {}
func (Int32) isValue()   {}
func (Int64) isValue()   {}
func (Float32) isValue() {}
func (Float64) isValue() {}
func (Bool) isValue()    {}
func (Str) isValue()     {}
func (Enum) isValue()    {}
func (Void) isValue()    {}

// Data is a byte sequence. Fixed data is written without a length prefix.
type Data struct {
	bytes []byte
	fixed bool
}

// NewData returns variable-length data holding a copy of b.
func NewData(b []byte) Data {
	return Data{bytes: append(make([]byte, 0, len(b)), b...)}
}

// NewFixedData returns fixed-length data holding a copy of b. Fixed data
// holds at least one byte.
func NewFixedData(b []byte) (Data, error) {
	if len(b) == 0 {
		return Data{}, errors.Wrap(wire.ErrInvariant, "fixed data must hold at least one byte")
	}
	d := NewData(b)
	d.fixed = true
	return d, nil
}

// Bytes returns a copy of the data.
func (d Data) Bytes() []byte {
	return append(make([]byte, 0, len(d.bytes)), d.bytes...)
}

func (d Data) Len() int    { return len(d.bytes) }
func (d Data) Fixed() bool { return d.fixed }
func (Data) Kind() Kind    { return schema.KindData }
func (Data) isValue()      {}

// Optional holds zero or one concrete value.
type Optional struct {
	value Value
}

// None returns an empty optional.
func None() *Optional {
	return &Optional{}
}

// Some returns an optional holding v. v cannot be void.
func Some(v Value) (*Optional, error) {
	if err := checkConcrete(v, "optional"); err != nil {
		return nil, err
	}
	return &Optional{value: v}, nil
}

// Get returns the held value, and false if the optional is empty.
func (o *Optional) Get() (Value, bool) {
	return o.value, o.value != nil
}

func (o *Optional) Present() bool { return o.value != nil }
func (*Optional) Kind() Kind      { return schema.KindOptional }
func (*Optional) isValue()        {}

// List is an ordered sequence of values of a single kind.
type List struct {
	elems []Value
	fixed bool
}

// NewList returns a count-prefixed list. Every element must be concrete
// and of the same kind.
func NewList(elems ...Value) (*List, error) {
	if err := checkHomogeneous(elems, "list element"); err != nil {
		return nil, err
	}
	return &List{elems: append([]Value(nil), elems...)}, nil
}

// NewFixedList returns a list whose length is part of its type and is not
// written. Fixed lists hold at least one element.
func NewFixedList(elems ...Value) (*List, error) {
	if len(elems) == 0 {
		return nil, errors.Wrap(wire.ErrInvariant, "fixed list must hold at least one element")
	}
	l, err := NewList(elems...)
	if err != nil {
		return nil, err
	}
	l.fixed = true
	return l, nil
}

// Elems returns the elements in order.
func (l *List) Elems() []Value {
	return append([]Value(nil), l.elems...)
}

// At returns the i'th element.
func (l *List) At(i int) Value { return l.elems[i] }

func (l *List) Len() int    { return len(l.elems) }
func (l *List) Fixed() bool { return l.fixed }
func (*List) Kind() Kind    { return schema.KindList }
func (*List) isValue()      {}

// MapEntry is a single key/value pair.
type MapEntry struct {
	Key   Value
	Value Value
}

// Map is a set of key/value pairs with unique keys. Entries are written in
// the order they were added.
type Map struct {
	entries []MapEntry
	index   map[Value]int
	values  *shape
}

// NewMap returns a map holding entries. Keys must be unique, of a single
// map-key kind; values must be concrete and of a single kind.
func NewMap(entries ...MapEntry) (*Map, error) {
	m := &Map{
		index: make(map[Value]int, len(entries)),
	}
	for _, e := range entries {
		if err := m.put(e.Key, e.Value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Map) put(key, val Value) error {
	if key == nil || !key.Kind().IsMapKey() {
		return errors.Wrapf(wire.ErrInvariant, "%s cannot be used as a map key", kindOf(key))
	}
	if err := checkConcrete(val, "map"); err != nil {
		return err
	}
	if len(m.entries) > 0 {
		first := m.entries[0]
		if key.Kind() != first.Key.Kind() {
			return errors.Wrapf(wire.ErrInvariant, "map key of kind %s in a map keyed by %s", key.Kind(), first.Key.Kind())
		}
		if val.Kind() != first.Value.Kind() {
			return errors.Wrapf(wire.ErrInvariant, "map value of kind %s in a map of %s", val.Kind(), first.Value.Kind())
		}
	}
	vs, err := shapeOf(val)
	if err != nil {
		return err
	}
	values, err := unify(m.values, vs)
	if err != nil {
		return errors.Wrapf(err, "map value for key %v", key)
	}
	if _, dup := m.index[key]; dup {
		return errors.Wrapf(wire.ErrInvariant, "duplicate map key %v", key)
	}
	m.values = values
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, MapEntry{Key: key, Value: val})
	return nil
}

// Get returns the value stored under key.
func (m *Map) Get(key Value) (Value, bool) {
	if key == nil || !key.Kind().IsMapKey() {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Entries returns the entries in insertion order.
func (m *Map) Entries() []MapEntry {
	return append([]MapEntry(nil), m.entries...)
}

func (m *Map) Len() int { return len(m.entries) }
func (*Map) Kind() Kind { return schema.KindMap }
func (*Map) isValue()   {}

// Union holds one value together with the tag its type has in the
// declaring union type.
type Union struct {
	tag   uint64
	value Value
}

// NewUnion returns a union holding v under tag.
func NewUnion(tag uint64, v Value) (*Union, error) {
	if v == nil {
		return nil, errors.Wrap(wire.ErrInvariant, "union must hold a value")
	}
	return &Union{tag: tag, value: v}, nil
}

func (u *Union) Tag() uint64  { return u.tag }
func (u *Union) Value() Value { return u.value }
func (*Union) Kind() Kind     { return schema.KindUnion }
func (*Union) isValue()       {}

// Field is a named struct member.
type Field struct {
	Name  string
	Value Value
}

// Struct is an ordered list of named fields.
type Struct struct {
	fields []Field
}

// NewStruct returns a struct with the given fields. There must be at least
// one field, names must be unique and no field may be void.
func NewStruct(fields ...Field) (*Struct, error) {
	if len(fields) == 0 {
		return nil, errors.Wrap(wire.ErrInvariant, "struct must have at least one field")
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, errors.Wrap(wire.ErrInvariant, "struct field names cannot be empty")
		}
		if seen[f.Name] {
			return nil, errors.Wrapf(wire.ErrInvariant, "duplicate struct field %s", f.Name)
		}
		seen[f.Name] = true
		if err := checkConcrete(f.Value, "struct field "+f.Name); err != nil {
			return nil, err
		}
	}
	return &Struct{fields: append([]Field(nil), fields...)}, nil
}

// Fields returns the fields in the order they were given.
func (s *Struct) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Field returns the value of the named field.
func (s *Struct) Field(name string) (Value, bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

func (s *Struct) Len() int { return len(s.fields) }
func (*Struct) Kind() Kind { return schema.KindStruct }
func (*Struct) isValue()   {}

func kindOf(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Kind().String()
}

func checkConcrete(v Value, context string) error {
	if v == nil {
		return errors.Wrapf(wire.ErrInvariant, "%s needs a value", context)
	}
	if !v.Kind().IsConcrete() {
		return errors.Wrapf(wire.ErrInvariant, "%s cannot hold %s", context, v.Kind())
	}
	return nil
}

// checkHomogeneous checks that every element is concrete and that a
// single type describes them all, down to data lengths and struct fields.
func checkHomogeneous(elems []Value, context string) error {
	var common *shape
	for i, e := range elems {
		if err := checkConcrete(e, context); err != nil {
			return err
		}
		if i > 0 && e.Kind() != elems[0].Kind() {
			return errors.Wrapf(wire.ErrInvariant, "%s %d is a %s, expected %s", context, i, e.Kind(), elems[0].Kind())
		}
		es, err := shapeOf(e)
		if err != nil {
			return err
		}
		if common, err = unify(common, es); err != nil {
			return errors.Wrapf(err, "%s %d", context, i)
		}
	}
	return nil
}
