package store

import (
	"context"
	"sync"

	"bare/schema"
	"bare/value"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"golang.org/x/sync/semaphore"
)

// VerifyResult is the outcome of verifying one record. Err is nil if the
// record's payload matches its digest and decodes as its type.
type VerifyResult struct {
	Name string
	Type string
	Err  error
}

// VerifyRecords checks every stored record against its digest and decodes
// it with dec against s, running up to workers checks at once. Results are
// in name order.
func VerifyRecords(ctx context.Context, db *leveldb.DB, s *schema.Schema, dec *value.Decoder, workers int) ([]*VerifyResult, error) {
	if workers < 1 {
		workers = 1
	}
	stream, err := StreamRecords(db, "")
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	sem := semaphore.NewWeighted(int64(workers))
	var mu sync.Mutex
	var results []*VerifyResult
	for {
		rec, err := stream.Next()
		if err != nil {
			return nil, errors.Wrap(err, "error streaming records")
		}
		if rec == nil {
			break
		}
		res := &VerifyResult{Name: rec.Name, Type: rec.Type}
		mu.Lock()
		results = append(results, res)
		mu.Unlock()

		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		go func(rec *Record, res *VerifyResult) {
			defer sem.Release(1)
			err := rec.Check()
			if err == nil {
				_, err = rec.Value(s, dec)
			}
			if err != nil {
				logger.Warn("record failed verification", "name", rec.Name, "err", err)
			}
			mu.Lock()
			res.Err = err
			mu.Unlock()
		}(rec, res)
	}
	if err := sem.Acquire(ctx, int64(workers)); err != nil {
		return nil, err
	}
	return results, nil
}
