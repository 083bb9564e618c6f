package store

import (
	"strings"
)

// Prefixer returns a key builder that joins prefix and its parts with "/".
// Records are keyed as "records/<name>", so streaming every record is a
// scan over the "records/" prefix and the name is the rest of the key.
func Prefixer(prefix string) func(k ...string) []byte {
	return func(parts ...string) []byte {
		k := strings.Join(append([]string{prefix}, parts...), "/")
		return []byte(k)
	}
}
