package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"bare/crypto"
	"bare/value"
	"bare/wire"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
)

func point(t *testing.T, x, y int32) value.Value {
	v, err := value.NewStruct(
		value.Field{Name: "y", Value: value.Int32(y)},
		value.Field{Name: "x", Value: value.Int32(x)},
	)
	require.NoError(t, err)
	return v
}

func TestRecords(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()
	s := testSchema(t)

	before := time.Now().Add(-time.Second)
	rec, err := PutValue(db, s, "origin", "Point", point(t, 1, -1), PutOpts{})
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff}, rec.Payload)
	require.Equal(t, crypto.Blake2B256(rec.Payload), rec.Digest)

	got, err := GetRecord(db, "origin")
	require.NoError(t, err)
	require.Equal(t, "origin", got.Name)
	require.Equal(t, "Point", got.Type)
	require.Equal(t, rec.Payload, got.Payload)
	require.Equal(t, rec.Digest, got.Digest)
	require.True(t, got.StoredAt.After(before))
	require.Equal(t, CompressionNone, got.Compression)

	v, _, err := GetValue(db, s, value.DefaultDecoder, "origin")
	require.NoError(t, err)
	require.True(t, value.Equal(point(t, 1, -1), v))

	_, err = PutValue(db, s, "origin", "Point", point(t, 2, 2), PutOpts{})
	require.NoError(t, err)
	v, _, err = GetValue(db, s, value.DefaultDecoder, "origin")
	require.NoError(t, err)
	require.True(t, value.Equal(point(t, 2, 2), v))

	require.NoError(t, DeleteRecord(db, "origin"))
	_, err = GetRecord(db, "origin")
	require.True(t, errors.Is(err, ErrRecordNotFound))
	require.True(t, errors.Is(DeleteRecord(db, "origin"), ErrRecordNotFound))
}

func TestPutValue_Invalid(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()
	s := testSchema(t)

	_, err := PutValue(db, s, "p", "Point", value.Str("nope"), PutOpts{})
	require.True(t, errors.Is(err, wire.ErrTypeMismatch))
	_, err = PutValue(db, s, "p", "Missing", value.Str("nope"), PutOpts{})
	require.True(t, errors.Is(err, wire.ErrUnknownType))
	_, err = PutValue(db, s, "", "Note", value.Str("nope"), PutOpts{})
	require.Error(t, err)

	_, err = GetRecord(db, "p")
	require.True(t, errors.Is(err, ErrRecordNotFound))
}

func TestRecords_Compression(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()
	s := testSchema(t)

	long := value.Str(strings.Repeat("abcd", 256))
	rec, err := PutValue(db, s, "long", "Note", long, PutOpts{CompressThreshold: 64})
	require.NoError(t, err)
	require.Equal(t, CompressionLZ4, rec.Compression)
	require.True(t, rec.StoredSize < len(rec.Payload))

	short, err := PutValue(db, s, "short", "Note", value.Str("hi"), PutOpts{CompressThreshold: 64})
	require.NoError(t, err)
	require.Equal(t, CompressionNone, short.Compression)

	v, got, err := GetValue(db, s, value.DefaultDecoder, "long")
	require.NoError(t, err)
	require.Equal(t, long, v)
	require.Equal(t, CompressionLZ4, got.Compression)
	require.Equal(t, rec.StoredSize, got.StoredSize)
}

func TestGetRecord_DigestMismatch(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()

	rec := &Record{
		Name:     "bad",
		Type:     "Note",
		Payload:  []byte{0x02, 'h', 'i'},
		Digest:   crypto.Blake2B256([]byte("something else")),
		StoredAt: time.Unix(1, 0),
	}
	require.NoError(t, WithTx(db, func(tx *leveldb.Transaction) error {
		return PutRecordTx(tx, rec, PutOpts{})
	}))
	_, err := GetRecord(db, "bad")
	require.True(t, errors.Is(err, ErrDigestMismatch))
}

func TestStreamRecords(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()
	s := testSchema(t)

	require.NoError(t, WithTx(db, func(tx *leveldb.Transaction) error {
		for _, name := range []string{"c", "a", "b"} {
			if _, err := PutValueTx(tx, s, name, "Note", value.Str(name), PutOpts{}); err != nil {
				return err
			}
		}
		_, err := PutValueTx(tx, s, "p", "Point", point(t, 0, 0), PutOpts{})
		return err
	}))

	names := func(typeName string) []string {
		stream, err := StreamRecords(db, typeName)
		require.NoError(t, err)
		defer func() {
			require.NoError(t, stream.Close())
		}()
		var out []string
		for {
			rec, err := stream.Next()
			require.NoError(t, err)
			if rec == nil {
				return out
			}
			out = append(out, rec.Name)
		}
	}
	require.Equal(t, []string{"a", "b", "c", "p"}, names(""))
	require.Equal(t, []string{"a", "b", "c"}, names("Note"))
	require.Equal(t, []string{"p"}, names("Point"))
}

func TestWithTx_Rollback(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()
	s := testSchema(t)

	err := WithTx(db, func(tx *leveldb.Transaction) error {
		if _, err := PutValueTx(tx, s, "a", "Note", value.Str("a"), PutOpts{}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)
	_, err = GetRecord(db, "a")
	require.True(t, errors.Is(err, ErrRecordNotFound))
}

func TestVerifyRecords(t *testing.T) {
	db, done := setupLevelDB(t)
	defer done()
	s := testSchema(t)

	for i, name := range []string{"n1", "n2", "n3", "n4", "n5"} {
		_, err := PutValue(db, s, name, "Note", value.Str(strings.Repeat("x", i)), PutOpts{})
		require.NoError(t, err)
	}
	_, err := PutValue(db, s, "p", "Point", point(t, 3, 4), PutOpts{})
	require.NoError(t, err)
	require.NoError(t, WithTx(db, func(tx *leveldb.Transaction) error {
		// length prefix runs past the end of the payload
		return PutRecordTx(tx, &Record{
			Name:    "q",
			Type:    "Note",
			Payload: []byte{0x09, 0x00},
			Digest:  crypto.Blake2B256([]byte{0x09, 0x00}),
		}, PutOpts{})
	}))

	results, err := VerifyRecords(context.Background(), db, s, value.DefaultDecoder, 2)
	require.NoError(t, err)
	require.Len(t, results, 7)
	for _, res := range results {
		if res.Name == "q" {
			require.True(t, errors.Is(res.Err, wire.ErrTruncatedInput), "%v", res.Err)
			continue
		}
		require.NoError(t, res.Err, res.Name)
	}
	require.Equal(t, "n1", results[0].Name)
	require.Equal(t, "q", results[6].Name)
}
