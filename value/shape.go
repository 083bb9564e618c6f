package value

import (
	"strconv"

	"bare/schema"
	"bare/wire"

	"github.com/pkg/errors"
)

// shape is the part of a value's type that its untyped encoding depends
// on. A nil elem means nothing is known about it yet, as with an empty list
// or an absent optional.
type shape struct {
	kind   Kind
	fixed  bool
	length int

	// key is the key kind of a map. It is only meaningful once elem is set.
	key Kind

	// elem is the inner shape of an optional, the element shape of a list
	// and the value shape of a map.
	elem *shape

	fields []string
	shapes []*shape

	tags map[uint64]*shape
}

func shapeOf(v Value) (*shape, error) {
	s := &shape{kind: v.Kind()}
	var err error
	switch vv := v.(type) {
	case Data:
		if vv.fixed {
			s.fixed = true
			s.length = len(vv.bytes)
		}
	case *Optional:
		if vv.value != nil {
			s.elem, err = shapeOf(vv.value)
		}
	case *List:
		if vv.fixed {
			s.fixed = true
			s.length = len(vv.elems)
		}
		for i, e := range vv.elems {
			es, err := shapeOf(e)
			if err != nil {
				return nil, err
			}
			if s.elem, err = unify(s.elem, es); err != nil {
				return nil, errors.Wrapf(err, "list element %d", i)
			}
		}
	case *Map:
		for _, e := range vv.entries {
			s.key = e.Key.Kind()
			es, err := shapeOf(e.Value)
			if err != nil {
				return nil, err
			}
			if s.elem, err = unify(s.elem, es); err != nil {
				return nil, errors.Wrapf(err, "map value for key %v", e.Key)
			}
		}
	case *Union:
		if vv.value != nil {
			ms, err := shapeOf(vv.value)
			if err != nil {
				return nil, err
			}
			s.tags = map[uint64]*shape{vv.tag: ms}
		}
	case *Struct:
		s.fields = make([]string, len(vv.fields))
		s.shapes = make([]*shape, len(vv.fields))
		for i, f := range vv.fields {
			s.fields[i] = f.Name
			if s.shapes[i], err = shapeOf(f.Value); err != nil {
				return nil, err
			}
		}
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// unify returns the shape that values of shapes a and b share, or an
// ErrInvariant if no single type describes both. Neither input is
// modified.
func unify(a, b *shape) (*shape, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	if a.kind != b.kind {
		return nil, errors.Wrapf(wire.ErrInvariant, "%s does not match %s", b.kind, a.kind)
	}

	out := &shape{kind: a.kind, fixed: a.fixed, length: a.length}
	var err error
	switch a.kind {
	case schema.KindData, schema.KindList:
		if a.fixed != b.fixed || a.length != b.length {
			return nil, errors.Wrapf(wire.ErrInvariant, "%s of %s does not match %s", a.kind, lengthText(b), lengthText(a))
		}
		if a.kind == schema.KindList {
			if out.elem, err = unify(a.elem, b.elem); err != nil {
				return nil, errors.Wrap(err, "list elements")
			}
		}
	case schema.KindOptional:
		if out.elem, err = unify(a.elem, b.elem); err != nil {
			return nil, errors.Wrap(err, "optional value")
		}
	case schema.KindMap:
		out.key = a.key
		if a.elem == nil {
			out.key = b.key
		} else if b.elem != nil && a.key != b.key {
			return nil, errors.Wrapf(wire.ErrInvariant, "map keys of kind %s do not match %s", b.key, a.key)
		}
		if out.elem, err = unify(a.elem, b.elem); err != nil {
			return nil, errors.Wrap(err, "map values")
		}
	case schema.KindUnion:
		out.tags = make(map[uint64]*shape, len(a.tags)+len(b.tags))
		for tag, ms := range a.tags {
			out.tags[tag] = ms
		}
		for tag, ms := range b.tags {
			if out.tags[tag], err = unify(out.tags[tag], ms); err != nil {
				return nil, errors.Wrapf(err, "union member %d", tag)
			}
		}
	case schema.KindStruct:
		if len(a.fields) != len(b.fields) {
			return nil, errors.Wrapf(wire.ErrInvariant, "struct with %d fields does not match one with %d", len(b.fields), len(a.fields))
		}
		out.fields = a.fields
		out.shapes = make([]*shape, len(a.fields))
		for i, name := range a.fields {
			if b.fields[i] != name {
				return nil, errors.Wrapf(wire.ErrInvariant, "struct field %s does not match %s", b.fields[i], name)
			}
			if out.shapes[i], err = unify(a.shapes[i], b.shapes[i]); err != nil {
				return nil, errors.Wrapf(err, "struct field %s", name)
			}
		}
	}
	return out, nil
}

func lengthText(s *shape) string {
	if !s.fixed {
		return "variable length"
	}
	return "length " + strconv.Itoa(s.length)
}
