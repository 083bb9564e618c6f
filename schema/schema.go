package schema

import (
	"bare/wire"

	"github.com/pkg/errors"
)

// Schema is a catalogue of named user types. A Schema is built once and
// then only read, so it may be shared between goroutines.
type Schema struct {
	types map[string]Type
	names []string
}

// New returns an empty Schema.
func New() *Schema {
	return &Schema{
		types: make(map[string]Type),
	}
}

// Define adds a user type. Names must be unique.
func (s *Schema) Define(name string, t Type) error {
	if name == "" {
		return errors.Wrap(wire.ErrInvariant, "user type names cannot be empty")
	}
	if t == nil {
		return errors.Wrapf(wire.ErrInvariant, "user type %s has no type", name)
	}
	if _, exists := s.types[name]; exists {
		return errors.Wrapf(wire.ErrInvariant, "user type %s is already defined", name)
	}
	s.types[name] = t
	s.names = append(s.names, name)
	return nil
}

// Lookup returns the user type called name.
func (s *Schema) Lookup(name string) (Type, error) {
	if s == nil {
		return nil, errors.Wrapf(wire.ErrUnknownType, "%s (no schema)", name)
	}
	t, ok := s.types[name]
	if !ok {
		return nil, errors.Wrap(wire.ErrUnknownType, name)
	}
	return t, nil
}

// Names returns the user type names in definition order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}

// Len returns the number of user types.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Resolve follows named references until it reaches a type that is not a
// NamedType. Types that are not references are returned as they are.
func (s *Schema) Resolve(t Type) (Type, error) {
	var seen map[string]bool
	for {
		named, ok := t.(NamedType)
		if !ok {
			return t, nil
		}
		if seen[named.name] {
			return nil, errors.Wrapf(wire.ErrInvariant, "user type %s is an alias of itself", named.name)
		}
		if seen == nil {
			seen = make(map[string]bool)
		}
		seen[named.name] = true
		next, err := s.Lookup(named.name)
		if err != nil {
			return nil, err
		}
		t = next
	}
}

// resolveNamed looks up name and resolves it to a non-reference type.
func (s *Schema) resolveNamed(name string) (Type, error) {
	return s.Resolve(Named(name))
}

// StructFields returns the fields of the named struct in wire order.
func (s *Schema) StructFields(name string) ([]Field, error) {
	t, err := s.resolveNamed(name)
	if err != nil {
		return nil, err
	}
	st, ok := t.(*StructType)
	if !ok {
		return nil, errors.Wrapf(wire.ErrTypeMismatch, "%s is a %s, not a struct", name, t.Kind())
	}
	return st.Fields(), nil
}

// UnionMember returns the member type the named union tags with tag.
func (s *Schema) UnionMember(name string, tag uint64) (Type, error) {
	t, err := s.resolveNamed(name)
	if err != nil {
		return nil, err
	}
	ut, ok := t.(*UnionType)
	if !ok {
		return nil, errors.Wrapf(wire.ErrTypeMismatch, "%s is a %s, not a union", name, t.Kind())
	}
	return ut.Member(tag)
}

// EnumValue returns the ordinal of valueName in the named enum.
func (s *Schema) EnumValue(name, valueName string) (uint64, error) {
	t, err := s.resolveNamed(name)
	if err != nil {
		return 0, err
	}
	et, ok := t.(*EnumType)
	if !ok {
		return 0, errors.Wrapf(wire.ErrTypeMismatch, "%s is a %s, not an enum", name, t.Kind())
	}
	return et.Value(valueName)
}

// Validate checks that every reference resolves, that references in
// positions that cannot hold void do not resolve to void, and that map keys
// resolve to map-key kinds.
func (s *Schema) Validate() error {
	for _, name := range s.names {
		if _, err := s.resolveNamed(name); err != nil {
			return err
		}
		if err := s.validate(s.types[name]); err != nil {
			return errors.Wrapf(err, "in user type %s", name)
		}
	}
	return nil
}

func (s *Schema) validate(t Type) error {
	switch tt := t.(type) {
	case NamedType:
		_, err := s.Resolve(tt)
		return err
	case *OptionalType:
		if err := s.checkConcrete(tt.inner, "optional"); err != nil {
			return err
		}
		return s.validate(tt.inner)
	case *ListType:
		if err := s.checkConcrete(tt.elem, "list"); err != nil {
			return err
		}
		return s.validate(tt.elem)
	case *MapType:
		key, err := s.Resolve(tt.key)
		if err != nil {
			return err
		}
		if !key.Kind().IsMapKey() {
			return errors.Wrapf(wire.ErrInvariant, "%s cannot be used as a map key", tt.key)
		}
		if err := s.checkConcrete(tt.value, "map"); err != nil {
			return err
		}
		return s.validate(tt.value)
	case *UnionType:
		for _, m := range tt.members {
			if err := s.validate(m.Type); err != nil {
				return err
			}
		}
	case *StructType:
		for _, f := range tt.fields {
			if err := s.checkConcrete(f.Type, "struct field "+f.Name); err != nil {
				return err
			}
			if err := s.validate(f.Type); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Schema) checkConcrete(t Type, context string) error {
	resolved, err := s.Resolve(t)
	if err != nil {
		return err
	}
	return checkConcrete(resolved, context)
}
