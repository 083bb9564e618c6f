package crypto

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"bare/schema"
	"bare/wire"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

const HashSize = 32

// Hash is a BLAKE2b-256 digest. On the wire it is data[32].
type Hash [HashSize]byte

var ZeroHash Hash

// HashType is the schema type of an encoded Hash.
var HashType, _ = schema.NewFixedData(HashSize)

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) Encode(buf *wire.Buffer) {
	buf.WriteFixedData(h[:])
}

func (h *Hash) Decode(w *wire.Window) error {
	b, err := w.ReadFixedData(HashSize)
	if err != nil {
		return err
	}
	copy(h[:], b)
	return nil
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%x\"", h[:])), nil
}

func (h *Hash) UnmarshalJSON(b []byte) error {
	var hexStr string
	if err := json.Unmarshal(b, &hexStr); err != nil {
		return err
	}
	hash, err := NewHashFromHex(hexStr)
	if err != nil {
		return err
	}
	*h = hash
	return nil
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func Blake2B256(data ...[]byte) Hash {
	// never returns an error if key is nil
	h, _ := blake2b.New256(nil)
	for _, chunk := range data {
		h.Write(chunk)
	}
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

func NewHashFromBytes(b []byte) (Hash, error) {
	if len(b) != HashSize {
		return ZeroHash, errors.Errorf("hash must be %d bytes", HashSize)
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

func NewHashFromHex(in string) (Hash, error) {
	b, err := hex.DecodeString(in)
	if err != nil {
		return ZeroHash, errors.Wrap(err, "hash is not hex")
	}
	return NewHashFromBytes(b)
}
