package store

import (
	"testing"

	"bare/value"

	"github.com/stretchr/testify/require"
)

func TestPrefixer(t *testing.T) {
	base := Prefixer("foo")

	tests := []struct {
		in  []byte
		out string
	}{
		{
			base("bar"),
			"foo/bar",
		},
		{
			base(),
			"foo",
		},
		{
			base(""),
			"foo/",
		},
		{
			recordsPrefix("origin"),
			"records/origin",
		},
		{
			recordsPrefix("a/b"),
			"records/a/b",
		},
	}
	for _, tt := range tests {
		require.Equal(t, tt.out, string(tt.in))
	}
}

func TestRecordKeys_NameWithSlash(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()
	s := testSchema(t)

	_, err := PutValue(db, s, "notes/today", "Note", value.Str("hi"), PutOpts{})
	require.NoError(t, err)

	stream, err := StreamRecords(db, "")
	require.NoError(t, err)
	defer stream.Close()
	rec, err := stream.Next()
	require.NoError(t, err)
	require.Equal(t, "notes/today", rec.Name)
}
