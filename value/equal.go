package value

import "bytes"

// Equal reports whether a and b are the same value. Maps compare equal
// regardless of entry order; floats compare by value, so NaN is never equal
// to anything.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Data:
		bv := b.(Data)
		return av.fixed == bv.fixed && bytes.Equal(av.bytes, bv.bytes)
	case *Optional:
		bv := b.(*Optional)
		return Equal(av.value, bv.value)
	case *List:
		bv := b.(*List)
		if av.fixed != bv.fixed || len(av.elems) != len(bv.elems) {
			return false
		}
		for i := range av.elems {
			if !Equal(av.elems[i], bv.elems[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv := b.(*Map)
		if len(av.entries) != len(bv.entries) {
			return false
		}
		for _, e := range av.entries {
			other, ok := bv.Get(e.Key)
			if !ok || !Equal(e.Value, other) {
				return false
			}
		}
		return true
	case *Union:
		bv := b.(*Union)
		return av.tag == bv.tag && Equal(av.value, bv.value)
	case *Struct:
		bv := b.(*Struct)
		if len(av.fields) != len(bv.fields) {
			return false
		}
		for _, f := range av.fields {
			other, ok := bv.Field(f.Name)
			if !ok || !Equal(f.Value, other) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
