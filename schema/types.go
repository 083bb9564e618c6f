package schema

import (
	"fmt"
	"strings"

	"bare/wire"

	"github.com/pkg/errors"
)

// Type describes the shape a value must have. Types carry no data and are
// never modified after construction.
type Type interface {
	Kind() Kind
	String() string
	isType()
}

// PrimitiveType is the type of every kind without parameters: the integer,
// float, bool, str and void kinds. Variable-length data is a DataType.
type PrimitiveType struct {
	kind Kind
}

var (
	Uint = PrimitiveType{KindUint}
	U8   = PrimitiveType{KindUint8}
	U16  = PrimitiveType{KindUint16}
	U32  = PrimitiveType{KindUint32}
	U64  = PrimitiveType{KindUint64}
	Int  = PrimitiveType{KindInt}
	I8   = PrimitiveType{KindInt8}
	I16  = PrimitiveType{KindInt16}
	I32  = PrimitiveType{KindInt32}
	I64  = PrimitiveType{KindInt64}
	F32  = PrimitiveType{KindFloat32}
	F64  = PrimitiveType{KindFloat64}
	Bool = PrimitiveType{KindBool}
	Str  = PrimitiveType{KindStr}
	Void = PrimitiveType{KindVoid}
)

// Primitive returns the PrimitiveType of kind k.
func Primitive(k Kind) (PrimitiveType, error) {
	if !k.IsPrimitive() || k == KindData || k == KindEnum {
		return PrimitiveType{}, errors.Errorf("%s is not a primitive kind", k)
	}
	return PrimitiveType{k}, nil
}

func (t PrimitiveType) Kind() Kind     { return t.kind }
func (t PrimitiveType) String() string { return t.kind.String() }
func (PrimitiveType) isType()          {}

// DataType is raw bytes, either length-prefixed or of a fixed length.
type DataType struct {
	length uint64
}

// Data is variable-length data.
var Data = DataType{}

// NewFixedData returns the type of data that is always exactly length bytes.
func NewFixedData(length uint64) (DataType, error) {
	if length == 0 {
		return DataType{}, errors.Wrap(wire.ErrInvariant, "fixed data length must be at least 1")
	}
	return DataType{length: length}, nil
}

// Length returns the fixed length, and false if the length is variable.
func (t DataType) Length() (uint64, bool) {
	return t.length, t.length != 0
}

func (t DataType) Kind() Kind { return KindData }
func (DataType) isType()      {}

func (t DataType) String() string {
	if t.length == 0 {
		return "data"
	}
	return fmt.Sprintf("data[%d]", t.length)
}

// EnumValue is a single named ordinal of an EnumType.
type EnumValue struct {
	Name  string
	Value uint64
}

// EnumType maps names to ordinals. Values are encoded as uint.
type EnumType struct {
	values []EnumValue
}

// NewEnum returns an enum over the given values. Names and ordinals must be
// unique and there must be at least one value.
func NewEnum(values ...EnumValue) (*EnumType, error) {
	if len(values) == 0 {
		return nil, errors.Wrap(wire.ErrInvariant, "enum must have at least one value")
	}
	names := make(map[string]bool, len(values))
	ordinals := make(map[uint64]bool, len(values))
	for _, v := range values {
		if v.Name == "" {
			return nil, errors.Wrap(wire.ErrInvariant, "enum value names cannot be empty")
		}
		if names[v.Name] {
			return nil, errors.Wrapf(wire.ErrInvariant, "duplicate enum name %s", v.Name)
		}
		if ordinals[v.Value] {
			return nil, errors.Wrapf(wire.ErrInvariant, "duplicate enum value %d", v.Value)
		}
		names[v.Name] = true
		ordinals[v.Value] = true
	}
	return &EnumType{values: append([]EnumValue(nil), values...)}, nil
}

// Values returns the enum's values in declaration order.
func (t *EnumType) Values() []EnumValue {
	return append([]EnumValue(nil), t.values...)
}

// Value returns the ordinal of the named value.
func (t *EnumType) Value(name string) (uint64, error) {
	for _, v := range t.values {
		if v.Name == name {
			return v.Value, nil
		}
	}
	return 0, errors.Wrapf(wire.ErrInvalidDiscriminant, "no enum value named %s", name)
}

// Name returns the name declared for ordinal v.
func (t *EnumType) Name(v uint64) (string, error) {
	for _, ev := range t.values {
		if ev.Value == v {
			return ev.Name, nil
		}
	}
	return "", errors.Wrapf(wire.ErrInvalidDiscriminant, "no enum value %d", v)
}

func (t *EnumType) Kind() Kind { return KindEnum }
func (*EnumType) isType()      {}

func (t *EnumType) String() string {
	parts := make([]string, len(t.values))
	for i, v := range t.values {
		parts[i] = fmt.Sprintf("%s=%d", v.Name, v.Value)
	}
	return "enum{" + strings.Join(parts, " ") + "}"
}

// OptionalType holds zero or one value of its inner type.
type OptionalType struct {
	inner Type
}

// NewOptional returns an optional over inner, which cannot be void.
func NewOptional(inner Type) (*OptionalType, error) {
	if err := checkConcrete(inner, "optional"); err != nil {
		return nil, err
	}
	return &OptionalType{inner: inner}, nil
}

func (t *OptionalType) Inner() Type    { return t.inner }
func (t *OptionalType) Kind() Kind     { return KindOptional }
func (t *OptionalType) String() string { return "optional<" + t.inner.String() + ">" }
func (*OptionalType) isType()          {}

// ListType is a sequence of values of one element type, either
// count-prefixed or of a fixed length.
type ListType struct {
	elem   Type
	length uint64
}

// NewList returns a variable-length list of elem.
func NewList(elem Type) (*ListType, error) {
	if err := checkConcrete(elem, "list"); err != nil {
		return nil, err
	}
	return &ListType{elem: elem}, nil
}

// NewFixedList returns a list of exactly length elements of elem.
func NewFixedList(elem Type, length uint64) (*ListType, error) {
	if length == 0 {
		return nil, errors.Wrap(wire.ErrInvariant, "fixed list length must be at least 1")
	}
	t, err := NewList(elem)
	if err != nil {
		return nil, err
	}
	t.length = length
	return t, nil
}

func (t *ListType) Elem() Type { return t.elem }

// Length returns the fixed length, and false if the length is variable.
func (t *ListType) Length() (uint64, bool) {
	return t.length, t.length != 0
}

func (t *ListType) Kind() Kind { return KindList }
func (*ListType) isType()      {}

func (t *ListType) String() string {
	if t.length == 0 {
		return "list<" + t.elem.String() + ">"
	}
	return fmt.Sprintf("list<%s>[%d]", t.elem, t.length)
}

// MapType is an unordered set of key/value pairs.
type MapType struct {
	key   Type
	value Type
}

// NewMap returns a map from key to value. The key must be a map-key kind;
// named keys are checked when the schema is validated.
func NewMap(key, value Type) (*MapType, error) {
	if key == nil || value == nil {
		return nil, errors.Wrap(wire.ErrInvariant, "map types need a key and a value type")
	}
	if k := key.Kind(); k != KindNamed && !k.IsMapKey() {
		return nil, errors.Wrapf(wire.ErrInvariant, "%s cannot be used as a map key", key)
	}
	if err := checkConcrete(value, "map"); err != nil {
		return nil, err
	}
	return &MapType{key: key, value: value}, nil
}

func (t *MapType) Key() Type      { return t.key }
func (t *MapType) Value() Type    { return t.value }
func (t *MapType) Kind() Kind     { return KindMap }
func (t *MapType) String() string { return "map<" + t.key.String() + "><" + t.value.String() + ">" }
func (*MapType) isType()          {}

// UnionMember is one of the types a union may hold, with the tag written in
// front of it.
type UnionMember struct {
	Type Type
	Tag  uint64
}

// UnionType holds exactly one value of one of its member types.
type UnionType struct {
	members []UnionMember
}

// NewUnion returns a union over the given members. Tags must be unique and
// there must be at least one member.
func NewUnion(members ...UnionMember) (*UnionType, error) {
	if len(members) == 0 {
		return nil, errors.Wrap(wire.ErrInvariant, "union must have at least one member")
	}
	tags := make(map[uint64]bool, len(members))
	for _, m := range members {
		if m.Type == nil {
			return nil, errors.Wrap(wire.ErrInvariant, "union member without a type")
		}
		if tags[m.Tag] {
			return nil, errors.Wrapf(wire.ErrInvariant, "duplicate union tag %d", m.Tag)
		}
		tags[m.Tag] = true
	}
	return &UnionType{members: append([]UnionMember(nil), members...)}, nil
}

// Members returns the members in declaration order.
func (t *UnionType) Members() []UnionMember {
	return append([]UnionMember(nil), t.members...)
}

// Member returns the type tagged with tag.
func (t *UnionType) Member(tag uint64) (Type, error) {
	for _, m := range t.members {
		if m.Tag == tag {
			return m.Type, nil
		}
	}
	return nil, errors.Wrapf(wire.ErrInvalidDiscriminant, "no union member with tag %d", tag)
}

func (t *UnionType) Kind() Kind { return KindUnion }
func (*UnionType) isType()      {}

func (t *UnionType) String() string {
	parts := make([]string, len(t.members))
	for i, m := range t.members {
		parts[i] = fmt.Sprintf("%s=%d", m.Type, m.Tag)
	}
	return "union{" + strings.Join(parts, " | ") + "}"
}

// Field is a named member of a struct.
type Field struct {
	Name string
	Type Type
}

// StructType is an ordered list of named fields. The order of the fields is
// the order they are written in.
type StructType struct {
	fields []Field
}

// NewStruct returns a struct with the given fields in wire order. There must
// be at least one field, names must be unique and no field may be void.
func NewStruct(fields ...Field) (*StructType, error) {
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
		if err := checkConcrete(f.Type, "struct field "+f.Name); err != nil {
			return nil, err
		}
	}
	return &StructType{fields: append([]Field(nil), fields...)}, nil
}

// Fields returns the fields in wire order.
func (t *StructType) Fields() []Field {
	return append([]Field(nil), t.fields...)
}

// Field returns the type of the named field.
func (t *StructType) Field(name string) (Type, bool) {
	for _, f := range t.fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

func (t *StructType) Kind() Kind { return KindStruct }
func (*StructType) isType()      {}

func (t *StructType) String() string {
	parts := make([]string, len(t.fields))
	for i, f := range t.fields {
		parts[i] = f.Name + ": " + f.Type.String()
	}
	return "struct{" + strings.Join(parts, " ") + "}"
}

// NamedType refers to a user type defined in a Schema.
type NamedType struct {
	name string
}

// Named returns a reference to the user type called name.
func Named(name string) NamedType {
	return NamedType{name: name}
}

func (t NamedType) Name() string   { return t.name }
func (t NamedType) Kind() Kind     { return KindNamed }
func (t NamedType) String() string { return t.name }
func (NamedType) isType()          {}

func checkConcrete(t Type, context string) error {
	if t == nil {
		return errors.Wrapf(wire.ErrInvariant, "%s needs a type", context)
	}
	if t.Kind() == KindVoid {
		return errors.Wrapf(wire.ErrInvariant, "%s cannot hold void", context)
	}
	return nil
}
