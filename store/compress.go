package store

import (
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// Compression identifies how a record's payload is held in the database.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionLZ4  Compression = 1
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// compress returns payload LZ4 block-compressed if it is at least
// threshold bytes long and compressing it makes it smaller. A zero
// threshold disables compression.
func compress(payload []byte, threshold int) ([]byte, Compression, error) {
	if threshold <= 0 || len(payload) < threshold {
		return payload, CompressionNone, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(payload)))
	n, err := lz4.CompressBlock(payload, dst, nil)
	if err != nil {
		return nil, 0, errors.Wrap(err, "error compressing payload")
	}
	if n == 0 || n >= len(payload) {
		return payload, CompressionNone, nil
	}
	return dst[:n], CompressionLZ4, nil
}

func decompress(stored []byte, c Compression, rawSize uint64) ([]byte, error) {
	switch c {
	case CompressionNone:
		if uint64(len(stored)) != rawSize {
			return nil, errors.Errorf("stored payload is %d bytes, expected %d", len(stored), rawSize)
		}
		return stored, nil
	case CompressionLZ4:
		dst := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(stored, dst)
		if err != nil {
			return nil, errors.Wrap(err, "error decompressing payload")
		}
		if uint64(n) != rawSize {
			return nil, errors.Errorf("decompressed payload is %d bytes, expected %d", n, rawSize)
		}
		return dst, nil
	default:
		return nil, errors.Errorf("unknown compression %d", c)
	}
}
