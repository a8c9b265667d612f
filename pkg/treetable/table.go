// Package treetable implements a hash table with ordered-tree buckets.
package treetable

import (
	"fmt"

	"github.com/yndnr/treetable-go/pkg/bst"
	"github.com/yndnr/treetable-go/pkg/fingerprint"
)

// Entry is a single key/value pair produced by traversals.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Option configures a Table or Map at construction.
type Option[K comparable] func(*options[K])

type options[K comparable] struct {
	hasher  fingerprint.Func[K]
	compare func(a, b K) int
}

// WithHasher replaces the default maphash-based fingerprint function.
// The same function drives bucket indexing and in-bucket placement.
func WithHasher[K comparable](fp fingerprint.Func[K]) Option[K] {
	return func(o *options[K]) {
		o.hasher = fp
	}
}

// WithCompare supplies the natural key order used to resolve fingerprint
// collisions between unequal keys. Key spaces where collisions matter
// should always set it; without it such keys fall back to an arbitrary
// per-run tiebreak.
func WithCompare[K comparable](compare func(a, b K) int) Option[K] {
	return func(o *options[K]) {
		o.compare = compare
	}
}

// Table is the bare, unguarded bucket table.
//
// It is NOT safe for concurrent use. Two goroutines calling Set on the
// same Table race on the size counter and on bucket links, and a grow
// under a concurrent reader hands the reader a discarded bucket array.
// Use Map for anything shared.
type Table[K comparable, V any] struct {
	cmp      *bst.Comparator[K]
	buckets  []*bst.Tree[K, V]
	capacity int
	size     int
}

// NewTable creates a Table with the given initial capacity.
// Construction fails with ErrInvalidCapacity when capacity <= 0.
func NewTable[K comparable, V any](capacity int, opts ...Option[K]) (*Table[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity.WithDetails(fmt.Sprintf("got %d", capacity))
	}

	o := options[K]{hasher: fingerprint.New[K]()}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Table[K, V]{cmp: bst.NewComparator(o.hasher, o.compare)}
	t.reset(capacity)
	return t, nil
}

// reset replaces the bucket array wholesale with fresh empty trees of
// the given capacity and zeroes the size. Old buckets are discarded.
func (t *Table[K, V]) reset(capacity int) {
	t.capacity = capacity
	t.size = 0
	t.buckets = make([]*bst.Tree[K, V], capacity)
	for i := range t.buckets {
		t.buckets[i] = bst.New[K, V](t.cmp)
	}
}

// BucketIndex returns the bucket a key falls into, always in
// [0, capacity). Exposed for diagnostics and tests.
func (t *Table[K, V]) BucketIndex(key K) (int, error) {
	sum, err := t.cmp.Fingerprint(key)
	if err != nil {
		return 0, ErrKeyNotHashable.WithCause(err)
	}
	return int(sum % uint64(t.capacity)), nil
}

// Len returns the number of entries. It is cached, never recounted.
func (t *Table[K, V]) Len() int {
	return t.size
}

// Capacity returns the current number of buckets.
func (t *Table[K, V]) Capacity() int {
	return t.capacity
}

// Get returns the value stored under key. An absent key is an
// ErrKeyNotFound, never a zero value.
func (t *Table[K, V]) Get(key K) (V, error) {
	var zero V

	idx, err := t.BucketIndex(key)
	if err != nil {
		return zero, err
	}

	value, ok, err := t.buckets[idx].Find(key)
	if err != nil {
		return zero, ErrKeyNotHashable.WithCause(err)
	}
	if !ok {
		return zero, ErrKeyNotFound.WithDetails(fmt.Sprintf("%v", key))
	}
	return value, nil
}

// Has reports whether key is present.
func (t *Table[K, V]) Has(key K) (bool, error) {
	idx, err := t.BucketIndex(key)
	if err != nil {
		return false, err
	}
	_, ok, err := t.buckets[idx].Find(key)
	if err != nil {
		return false, ErrKeyNotHashable.WithCause(err)
	}
	return ok, nil
}

// Set stores value under key, replacing any previous value in place.
// When the insert creates a new entry and the entry count exceeds the
// capacity, the table grows (capacity doubled, minimum 2) within the
// same call.
func (t *Table[K, V]) Set(key K, value V) error {
	idx, err := t.BucketIndex(key)
	if err != nil {
		return err
	}

	created, err := t.buckets[idx].Insert(key, value)
	if err != nil {
		return ErrKeyNotHashable.WithCause(err)
	}
	if created {
		t.size++
		if t.size > t.capacity {
			t.grow()
		}
	}
	return nil
}

// Delete removes the entry stored under key. Deleting an absent key is
// an ErrKeyNotFound and leaves the size untouched.
func (t *Table[K, V]) Delete(key K) error {
	idx, err := t.BucketIndex(key)
	if err != nil {
		return err
	}

	deleted, err := t.buckets[idx].Delete(key)
	if err != nil {
		return ErrKeyNotHashable.WithCause(err)
	}
	if !deleted {
		return ErrKeyNotFound.WithDetails(fmt.Sprintf("%v", key))
	}
	t.size--
	return nil
}

// Clear replaces all buckets with fresh empty trees of the current
// capacity and resets the size to zero.
func (t *Table[K, V]) Clear() {
	t.reset(t.capacity)
}

// Resize rebuilds the table at the requested capacity. A request with
// newCapacity <= 0 is a no-op, unlike construction, which fails.
func (t *Table[K, V]) Resize(newCapacity int) {
	if newCapacity <= 0 {
		return
	}
	t.rebuild(newCapacity)
}

// grow doubles the capacity, never below 2.
func (t *Table[K, V]) grow() {
	newCap := t.capacity * 2
	if newCap < 2 {
		newCap = 2
	}
	t.rebuild(newCap)
}

// rebuild collects every entry via per-bucket in-order traversal, swaps
// in a freshly sized bucket array, and reinserts everything, recomputing
// the size from scratch.
func (t *Table[K, V]) rebuild(capacity int) {
	items := t.Items()
	t.reset(capacity)
	for _, e := range items {
		// Keys already fingerprinted once; these cannot fail.
		idx, err := t.BucketIndex(e.Key)
		if err != nil {
			continue
		}
		created, err := t.buckets[idx].Insert(e.Key, e.Value)
		if err == nil && created {
			t.size++
		}
	}
}

// Range visits entries bucket by bucket in index order, ascending key
// order within each bucket. That per-bucket ordering is the only
// guarantee: the sequence as a whole is NOT globally sorted. The
// callback returns false to stop.
func (t *Table[K, V]) Range(fn func(key K, value V) bool) {
	for _, bucket := range t.buckets {
		if !bucket.Ascend(fn) {
			return
		}
	}
}

// Items returns all entries in Range order.
func (t *Table[K, V]) Items() []Entry[K, V] {
	items := make([]Entry[K, V], 0, t.size)
	t.Range(func(key K, value V) bool {
		items = append(items, Entry[K, V]{Key: key, Value: value})
		return true
	})
	return items
}

// ReverseItems returns all entries with each bucket traversed in
// descending key order. Buckets are still visited in index order.
func (t *Table[K, V]) ReverseItems() []Entry[K, V] {
	items := make([]Entry[K, V], 0, t.size)
	for _, bucket := range t.buckets {
		bucket.Descend(func(key K, value V) bool {
			items = append(items, Entry[K, V]{Key: key, Value: value})
			return true
		})
	}
	return items
}

// Keys returns all keys in Range order.
func (t *Table[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)
	t.Range(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Values returns all values in Range order.
func (t *Table[K, V]) Values() []V {
	values := make([]V, 0, t.size)
	t.Range(func(_ K, value V) bool {
		values = append(values, value)
		return true
	})
	return values
}

// BucketStats describes one bucket for diagnostics.
type BucketStats struct {
	Index int
	Len   int
	Depth int
}

// Stats returns per-bucket statistics. Deep buckets relative to their
// length reveal degenerate trees (the buckets do not self-balance).
func (t *Table[K, V]) Stats() []BucketStats {
	stats := make([]BucketStats, len(t.buckets))
	for i, bucket := range t.buckets {
		stats[i] = BucketStats{Index: i, Len: bucket.Len(), Depth: bucket.Depth()}
	}
	return stats
}
