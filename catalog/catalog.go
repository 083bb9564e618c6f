package catalog

import (
	"io"
	"os"
	"path/filepath"

	"bare/log"
	"bare/schema"
	"bare/wire"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var logger = log.WithModule("catalog")

// Document is the on-disk form of a schema: one entry per user-defined
// type, in definition order.
type Document struct {
	Types []TypeDoc `toml:"types" yaml:"types"`
}

// TypeDoc describes a type. At the top level of a document Name is the
// user-defined type's name; nested TypeDocs leave it empty. A TypeDoc with
// Ref set and no Kind refers to another user-defined type.
type TypeDoc struct {
	Name    string      `toml:"name" yaml:"name"`
	Kind    string      `toml:"kind" yaml:"kind"`
	Ref     string      `toml:"ref" yaml:"ref"`
	Length  int64       `toml:"length" yaml:"length"`
	Elem    *TypeDoc    `toml:"elem" yaml:"elem"`
	Key     *TypeDoc    `toml:"key" yaml:"key"`
	Value   *TypeDoc    `toml:"value" yaml:"value"`
	Fields  []FieldDoc  `toml:"fields" yaml:"fields"`
	Members []MemberDoc `toml:"members" yaml:"members"`
	Values  []EnumDoc   `toml:"values" yaml:"values"`
}

type FieldDoc struct {
	Name string  `toml:"name" yaml:"name"`
	Type TypeDoc `toml:"type" yaml:"type"`
}

type MemberDoc struct {
	Tag  int64   `toml:"tag" yaml:"tag"`
	Type TypeDoc `toml:"type" yaml:"type"`
}

type EnumDoc struct {
	Name  string `toml:"name" yaml:"name"`
	Value int64  `toml:"value" yaml:"value"`
}

// Read decodes a catalogue document from r and builds the schema it
// describes. The schema is validated before it is returned.
func Read(r io.Reader) (*schema.Schema, error) {
	doc := &Document{}
	if err := toml.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "error decoding schema file")
	}
	return Build(doc)
}

// ReadYAML is Read for documents written in YAML.
func ReadYAML(r io.Reader) (*schema.Schema, error) {
	doc := &Document{}
	if err := yaml.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "error decoding schema file")
	}
	return Build(doc)
}

// ReadFile reads the catalogue document at path. Files ending in .yaml or
// .yml are read as YAML, anything else as TOML.
func ReadFile(path string) (*schema.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "error opening schema file")
	}
	defer f.Close()

	read := Read
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		read = ReadYAML
	}
	s, err := read(f)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded schema", "path", path, "types", s.Len())
	return s, nil
}

// Build turns a decoded document into a schema.
func Build(doc *Document) (*schema.Schema, error) {
	s := schema.New()
	for i, td := range doc.Types {
		if td.Name == "" {
			return nil, errors.Wrapf(wire.ErrInvariant, "type %d has no name", i)
		}
		t, err := td.build()
		if err != nil {
			return nil, errors.Wrapf(err, "error building type %s", td.Name)
		}
		if err := s.Define(td.Name, t); err != nil {
			return nil, err
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (td *TypeDoc) build() (schema.Type, error) {
	if td.Kind == "" || td.Kind == schema.KindNamed.String() {
		if td.Ref == "" {
			return nil, errors.Wrap(wire.ErrInvariant, "type has neither a kind nor a ref")
		}
		return schema.Named(td.Ref), nil
	}
	if td.Ref != "" {
		return nil, errors.Wrapf(wire.ErrInvariant, "ref %s given for a %s type", td.Ref, td.Kind)
	}
	kind, err := schema.ParseKind(td.Kind)
	if err != nil {
		return nil, err
	}
	length, err := td.length()
	if err != nil {
		return nil, err
	}

	switch kind {
	case schema.KindData:
		if length == 0 {
			return schema.Data, nil
		}
		return schema.NewFixedData(length)
	case schema.KindEnum:
		values := make([]schema.EnumValue, len(td.Values))
		for i, v := range td.Values {
			if v.Value < 0 {
				return nil, errors.Wrapf(wire.ErrInvariant, "enum value %s is negative", v.Name)
			}
			values[i] = schema.EnumValue{Name: v.Name, Value: uint64(v.Value)}
		}
		return schema.NewEnum(values...)
	case schema.KindOptional:
		inner, err := child(td.Elem, "optional")
		if err != nil {
			return nil, err
		}
		return schema.NewOptional(inner)
	case schema.KindList:
		elem, err := child(td.Elem, "list")
		if err != nil {
			return nil, err
		}
		if length == 0 {
			return schema.NewList(elem)
		}
		return schema.NewFixedList(elem, length)
	case schema.KindMap:
		key, err := child(td.Key, "map key")
		if err != nil {
			return nil, err
		}
		value, err := child(td.Value, "map value")
		if err != nil {
			return nil, err
		}
		return schema.NewMap(key, value)
	case schema.KindUnion:
		members := make([]schema.UnionMember, len(td.Members))
		for i, m := range td.Members {
			if m.Tag < 0 {
				return nil, errors.Wrapf(wire.ErrInvariant, "union tag %d is negative", m.Tag)
			}
			mt, err := m.Type.build()
			if err != nil {
				return nil, errors.Wrapf(err, "union member %d", m.Tag)
			}
			members[i] = schema.UnionMember{Type: mt, Tag: uint64(m.Tag)}
		}
		return schema.NewUnion(members...)
	case schema.KindStruct:
		fields := make([]schema.Field, len(td.Fields))
		for i, f := range td.Fields {
			ft, err := f.Type.build()
			if err != nil {
				return nil, errors.Wrapf(err, "struct field %s", f.Name)
			}
			fields[i] = schema.Field{Name: f.Name, Type: ft}
		}
		return schema.NewStruct(fields...)
	default:
		return schema.Primitive(kind)
	}
}

func (td *TypeDoc) length() (uint64, error) {
	if td.Length < 0 {
		return 0, errors.Wrapf(wire.ErrInvariant, "length %d is negative", td.Length)
	}
	return uint64(td.Length), nil
}

func child(td *TypeDoc, context string) (schema.Type, error) {
	if td == nil {
		return nil, errors.Wrapf(wire.ErrInvariant, "%s needs a type", context)
	}
	return td.build()
}
