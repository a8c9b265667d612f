// Package fingerprint derives 64-bit key fingerprints for treetable.
package fingerprint

import (
	"errors"
	"hash/maphash"

	"github.com/spaolacci/murmur3"
)

// ErrNotHashable reports a key whose value cannot be hashed, such as an
// interface key holding a slice, map, or function.
var ErrNotHashable = errors.New("fingerprint: key is not hashable")

// Func computes the fingerprint of a key.
type Func[K comparable] func(key K) (uint64, error)

// Seeded returns a maphash-based fingerprint function for any comparable
// key type, keyed by the given seed. Two Funcs built from the same seed
// agree on every key; fingerprints are never stable across processes.
func Seeded[K comparable](seed maphash.Seed) Func[K] {
	return func(key K) (sum uint64, err error) {
		// maphash.Comparable panics when the dynamic value of an
		// interface key is not comparable. Surface that as an error
		// instead of unwinding through the table.
		defer func() {
			if recover() != nil {
				err = ErrNotHashable
			}
		}()
		return maphash.Comparable(seed, key), nil
	}
}

// New returns a Seeded Func with a fresh random seed.
func New[K comparable]() Func[K] {
	return Seeded[K](maphash.MakeSeed())
}

// String returns a murmur3-based fingerprint function for string keys.
// Unlike Seeded it is deterministic across processes.
func String() Func[string] {
	return func(key string) (uint64, error) {
		return murmur3.Sum64([]byte(key)), nil
	}
}

// Constant returns a Func mapping every key to the same fingerprint.
// It exists for tests and diagnostics that need engineered collisions;
// a table built on it degenerates to a single ordered tree.
func Constant[K comparable](sum uint64) Func[K] {
	return func(K) (uint64, error) {
		return sum, nil
	}
}
