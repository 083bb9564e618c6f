package value

import (
	"encoding/hex"
	"testing"

	"bare/schema"

	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func mustSome(t *testing.T, v Value) *Optional {
	o, err := Some(v)
	require.NoError(t, err)
	return o
}

func mustList(t *testing.T, elems ...Value) *List {
	l, err := NewList(elems...)
	require.NoError(t, err)
	return l
}

func mustFixedList(t *testing.T, elems ...Value) *List {
	l, err := NewFixedList(elems...)
	require.NoError(t, err)
	return l
}

func mustMap(t *testing.T, entries ...MapEntry) *Map {
	m, err := NewMap(entries...)
	require.NoError(t, err)
	return m
}

func mustUnion(t *testing.T, tag uint64, v Value) *Union {
	u, err := NewUnion(tag, v)
	require.NoError(t, err)
	return u
}

func mustStruct(t *testing.T, fields ...Field) *Struct {
	s, err := NewStruct(fields...)
	require.NoError(t, err)
	return s
}

func mustFixedData(t *testing.T, b []byte) Data {
	d, err := NewFixedData(b)
	require.NoError(t, err)
	return d
}

func mustType(t *testing.T) func(schema.Type, error) schema.Type {
	return func(st schema.Type, err error) schema.Type {
		require.NoError(t, err)
		return st
	}
}
