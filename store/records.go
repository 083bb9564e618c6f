package store

import (
	"time"

	"bare/crypto"
	"bare/schema"
	"bare/value"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDigestMismatch = errors.New("payload does not match its digest")
)

// Record is an encoded value stored under a name, together with the name
// of the schema type it was encoded as.
type Record struct {
	Name        string
	Type        string
	Payload     []byte
	Digest      crypto.Hash
	StoredAt    time.Time
	Compression Compression
	StoredSize  int
}

// Check reports whether the payload matches the record's digest.
func (r *Record) Check() error {
	if crypto.Blake2B256(r.Payload) != r.Digest {
		return errors.Wrapf(ErrDigestMismatch, "record %s", r.Name)
	}
	return nil
}

// Value decodes the payload as a value of the record's type.
func (r *Record) Value(s *schema.Schema, dec *value.Decoder) (value.Value, error) {
	v, rest, err := dec.Unmarshal(r.Payload, schema.Named(r.Type), s)
	if err != nil {
		return nil, errors.Wrapf(err, "error decoding record %s", r.Name)
	}
	if len(rest) != 0 {
		return nil, errors.Errorf("record %s has %d trailing bytes", r.Name, len(rest))
	}
	return v, nil
}

// PutOpts controls how records are written.
type PutOpts struct {
	// CompressThreshold is the smallest payload that is stored LZ4
	// compressed. Zero disables compression.
	CompressThreshold int
}

var recordsPrefix = Prefixer("records")

// PutValue encodes v as the named schema type typeName and stores it under
// name, replacing any record already stored there.
func PutValue(db *leveldb.DB, s *schema.Schema, name, typeName string, v value.Value, opts PutOpts) (*Record, error) {
	var rec *Record
	err := WithTx(db, func(tx *leveldb.Transaction) error {
		var err error
		rec, err = PutValueTx(tx, s, name, typeName, v, opts)
		return err
	})
	return rec, err
}

func PutValueTx(tx *leveldb.Transaction, s *schema.Schema, name, typeName string, v value.Value, opts PutOpts) (*Record, error) {
	payload, err := value.MarshalAs(v, schema.Named(typeName), s)
	if err != nil {
		return nil, errors.Wrapf(err, "error encoding %s value", typeName)
	}
	rec := &Record{
		Name:     name,
		Type:     typeName,
		Payload:  payload,
		Digest:   crypto.Blake2B256(payload),
		StoredAt: time.Unix(time.Now().Unix(), 0),
	}
	if err := PutRecordTx(tx, rec, opts); err != nil {
		return nil, err
	}
	return rec, nil
}

// PutRecordTx stores rec as it is. Compression and StoredSize are set from
// opts.
func PutRecordTx(tx *leveldb.Transaction, rec *Record, opts PutOpts) error {
	if rec.Name == "" {
		return errors.New("record name cannot be empty")
	}
	if rec.Type == "" {
		return errors.New("record type cannot be empty")
	}
	stored, compression, err := compress(rec.Payload, opts.CompressThreshold)
	if err != nil {
		return err
	}
	rec.Compression = compression
	rec.StoredSize = len(stored)
	raw, err := encodeRecord(rec, stored)
	if err != nil {
		return err
	}
	if err := tx.Put(recordsPrefix(rec.Name), raw, nil); err != nil {
		return errors.Wrap(err, "error writing record")
	}
	logger.Debug("stored record", "name", rec.Name, "type", rec.Type, "size", len(rec.Payload), "compression", compression)
	return nil
}

// GetRecord returns the record stored under name. The payload is checked
// against its digest.
func GetRecord(db *leveldb.DB, name string) (*Record, error) {
	raw, err := db.Get(recordsPrefix(name), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, errors.Wrapf(ErrRecordNotFound, "no record named %s", name)
	}
	if err != nil {
		return nil, errors.Wrap(err, "error getting record")
	}
	rec, err := decodeRecord(name, raw)
	if err != nil {
		return nil, err
	}
	if err := rec.Check(); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetValue returns the record stored under name and its decoded value.
func GetValue(db *leveldb.DB, s *schema.Schema, dec *value.Decoder, name string) (value.Value, *Record, error) {
	rec, err := GetRecord(db, name)
	if err != nil {
		return nil, nil, err
	}
	v, err := rec.Value(s, dec)
	if err != nil {
		return nil, nil, err
	}
	return v, rec, nil
}

func DeleteRecord(db *leveldb.DB, name string) error {
	return WithTx(db, func(tx *leveldb.Transaction) error {
		return DeleteRecordTx(tx, name)
	})
}

func DeleteRecordTx(tx *leveldb.Transaction, name string) error {
	k := recordsPrefix(name)
	has, err := tx.Has(k, nil)
	if err != nil {
		return errors.Wrap(err, "error checking for record existence")
	}
	if !has {
		return errors.Wrapf(ErrRecordNotFound, "no record named %s", name)
	}
	if err := tx.Delete(k, nil); err != nil {
		return errors.Wrap(err, "error deleting record")
	}
	return nil
}

// RecordStream iterates over stored records in name order.
type RecordStream struct {
	typeName string
	iter     iterator.Iterator
	prefix   int
}

// Next returns the next record, or nil once the stream is exhausted.
// Records are not checked against their digests.
func (rs *RecordStream) Next() (*Record, error) {
	for rs.iter.Next() {
		name := string(rs.iter.Key()[rs.prefix:])
		rec, err := decodeRecord(name, rs.iter.Value())
		if err != nil {
			return nil, err
		}
		if rs.typeName != "" && rec.Type != rs.typeName {
			continue
		}
		return rec, nil
	}
	return nil, nil
}

func (rs *RecordStream) Close() error {
	rs.iter.Release()
	return rs.iter.Error()
}

// StreamRecords streams every record, or only records of typeName if it is
// not empty.
func StreamRecords(db *leveldb.DB, typeName string) (*RecordStream, error) {
	prefix := recordsPrefix("")
	iter := db.NewIterator(util.BytesPrefix(prefix), nil)
	return &RecordStream{
		typeName: typeName,
		iter:     iter,
		prefix:   len(prefix),
	}, nil
}
