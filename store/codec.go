package store

import (
	"time"

	"bare/crypto"
	"bare/schema"
	"bare/value"

	"github.com/pkg/errors"
)

var (
	compressionType schema.Type
	recordType      schema.Type
)

func init() {
	var err error
	compressionType, err = schema.NewEnum(
		schema.EnumValue{Name: "NONE", Value: uint64(CompressionNone)},
		schema.EnumValue{Name: "LZ4", Value: uint64(CompressionLZ4)},
	)
	if err != nil {
		panic(err)
	}
	recordType, err = schema.NewStruct(
		schema.Field{Name: "type", Type: schema.Str},
		schema.Field{Name: "digest", Type: crypto.HashType},
		schema.Field{Name: "storedAt", Type: schema.I64},
		schema.Field{Name: "compression", Type: compressionType},
		schema.Field{Name: "rawSize", Type: schema.Uint},
		schema.Field{Name: "payload", Type: schema.Data},
	)
	if err != nil {
		panic(err)
	}
}

// encodeRecord encodes rec's metadata followed by stored, the payload as
// it is held in the database. The name is the database key and is not
// repeated.
func encodeRecord(rec *Record, stored []byte) ([]byte, error) {
	digest, err := value.NewFixedData(rec.Digest.Bytes())
	if err != nil {
		return nil, err
	}
	v, err := value.NewStruct(
		value.Field{Name: "type", Value: value.Str(rec.Type)},
		value.Field{Name: "digest", Value: digest},
		value.Field{Name: "storedAt", Value: value.Int64(rec.StoredAt.Unix())},
		value.Field{Name: "compression", Value: value.Enum(rec.Compression)},
		value.Field{Name: "rawSize", Value: value.Uint(len(rec.Payload))},
		value.Field{Name: "payload", Value: value.NewData(stored)},
	)
	if err != nil {
		return nil, err
	}
	out, err := value.MarshalAs(v, recordType, nil)
	if err != nil {
		return nil, errors.Wrap(err, "error encoding record")
	}
	return out, nil
}

func decodeRecord(name string, raw []byte) (*Record, error) {
	v, rest, err := value.Unmarshal(raw, recordType, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "error decoding record %s", name)
	}
	if len(rest) != 0 {
		return nil, errors.Errorf("record %s has %d trailing bytes", name, len(rest))
	}
	st := v.(*value.Struct)
	field := func(key string) value.Value {
		fv, _ := st.Field(key)
		return fv
	}

	digest, err := crypto.NewHashFromBytes(field("digest").(value.Data).Bytes())
	if err != nil {
		return nil, err
	}
	stored := field("payload").(value.Data).Bytes()
	compression := Compression(field("compression").(value.Enum))
	rawSize := uint64(field("rawSize").(value.Uint))
	if rawSize > value.DefaultMaxDataLen {
		return nil, errors.Errorf("record %s claims a %d byte payload", name, rawSize)
	}
	payload, err := decompress(stored, compression, rawSize)
	if err != nil {
		return nil, errors.Wrapf(err, "record %s", name)
	}
	return &Record{
		Name:        name,
		Type:        string(field("type").(value.Str)),
		Payload:     payload,
		Digest:      digest,
		StoredAt:    time.Unix(int64(field("storedAt").(value.Int64)), 0),
		Compression: compression,
		StoredSize:  len(stored),
	}, nil
}
