package store

import (
	"testing"

	"bare/schema"
	"bare/testutil/testfs"

	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
)

func setupLevelDB(t *testing.T) (*leveldb.DB, func()) {
	tmp, cleanup := testfs.NewTempDir(t)
	db, err := Open(tmp)
	require.NoError(t, err)

	return db, func() {
		require.NoError(t, db.Close())
		cleanup()
	}
}

func testSchema(t *testing.T) *schema.Schema {
	s := schema.New()
	point, err := schema.NewStruct(
		schema.Field{Name: "x", Type: schema.I32},
		schema.Field{Name: "y", Type: schema.I32},
	)
	require.NoError(t, err)
	require.NoError(t, s.Define("Point", point))
	require.NoError(t, s.Define("Note", schema.Str))
	return s
}
