package schema

import "github.com/pkg/errors"

// Kind identifies one of the BARE types. Every value and every type
// descriptor has exactly one Kind.
type Kind uint8

const (
	KindUint Kind = iota
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindBool
	KindStr
	KindData
	KindVoid
	KindEnum
	KindOptional
	KindList
	KindMap
	KindUnion
	KindStruct

	// KindNamed is only carried by NamedType, a reference to a user type
	// that has to be resolved through a Schema. No value has this kind.
	KindNamed
)

var kindNames = [...]string{
	KindUint:     "uint",
	KindUint8:    "u8",
	KindUint16:   "u16",
	KindUint32:   "u32",
	KindUint64:   "u64",
	KindInt:      "int",
	KindInt8:     "i8",
	KindInt16:    "i16",
	KindInt32:    "i32",
	KindInt64:    "i64",
	KindFloat32:  "f32",
	KindFloat64:  "f64",
	KindBool:     "bool",
	KindStr:      "str",
	KindData:     "data",
	KindVoid:     "void",
	KindEnum:     "enum",
	KindOptional: "optional",
	KindList:     "list",
	KindMap:      "map",
	KindUnion:    "union",
	KindStruct:   "struct",
	KindNamed:    "named",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// ParseKind returns the Kind with the given name.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, errors.Errorf("unknown kind %q", s)
}

// IsConcrete reports whether values of kind k may appear inside an
// optional, list, map or struct. Every kind but void is concrete.
func (k Kind) IsConcrete() bool {
	return k != KindVoid && k <= KindStruct
}

// IsMapKey reports whether values of kind k may be used as map keys:
// integers, bool, str and enum.
func (k Kind) IsMapKey() bool {
	switch k {
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64,
		KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindBool, KindStr, KindEnum:
		return true
	default:
		return false
	}
}

// IsPrimitive reports whether k has no nested types.
func (k Kind) IsPrimitive() bool {
	return k <= KindEnum
}

// FixedWidth returns the encoded width in bytes of fixed-width kinds, and 0
// for everything else.
func (k Kind) FixedWidth() int {
	switch k {
	case KindUint8, KindInt8, KindBool:
		return 1
	case KindUint16, KindInt16:
		return 2
	case KindUint32, KindInt32, KindFloat32:
		return 4
	case KindUint64, KindInt64, KindFloat64:
		return 8
	default:
		return 0
	}
}
