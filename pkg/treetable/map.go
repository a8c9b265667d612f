// Package treetable implements a hash table with ordered-tree buckets.
package treetable

import (
	"time"

	"github.com/yndnr/treetable-go/pkg/rwguard"
)

// Observer receives operation telemetry from a Map. Implementations must
// be safe for concurrent use; calls may arrive from any goroutine that
// uses the Map. internal/telemetry/metric provides a Prometheus-backed
// implementation.
type Observer interface {
	// ObserveOp records one completed operation with its outcome.
	ObserveOp(op string, err error, elapsed time.Duration)
	// ObserveTable records the size and capacity after a mutation.
	ObserveTable(size, capacity int)
	// ObserveGrowth records one capacity growth.
	ObserveGrowth()
}

// nopObserver is used when no observer is configured.
type nopObserver struct{}

func (nopObserver) ObserveOp(string, error, time.Duration) {}
func (nopObserver) ObserveTable(int, int)                  {}
func (nopObserver) ObserveGrowth()                         {}

// Map is the concurrent facade over Table: many simultaneous readers or
// one exclusive writer, writers preferred. See the package documentation
// for the locking and iteration discipline.
type Map[K comparable, V any] struct {
	guard *rwguard.Guard
	table *Table[K, V]
	obs   Observer
}

// New creates a concurrent table with the given initial capacity.
// Construction fails with ErrInvalidCapacity when capacity <= 0.
func New[K comparable, V any](capacity int, opts ...Option[K]) (*Map[K, V], error) {
	table, err := NewTable[K, V](capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &Map[K, V]{
		guard: rwguard.New(),
		table: table,
		obs:   nopObserver{},
	}, nil
}

// Observe attaches an observer. Call it before the Map is shared; the
// observer field itself is not guarded.
func (m *Map[K, V]) Observe(obs Observer) {
	if obs == nil {
		obs = nopObserver{}
	}
	m.obs = obs
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, error) {
	start := time.Now()
	m.guard.RLock()
	defer m.guard.RUnlock()

	value, err := m.table.Get(key)
	m.obs.ObserveOp("get", err, time.Since(start))
	return value, err
}

// GetOrDefault returns the value stored under key, or def when the key
// is absent. Unhashable keys still error.
func (m *Map[K, V]) GetOrDefault(key K, def V) (V, error) {
	value, err := m.Get(key)
	if IsKeyNotFound(err) {
		return def, nil
	}
	return value, err
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) (bool, error) {
	start := time.Now()
	m.guard.RLock()
	defer m.guard.RUnlock()

	ok, err := m.table.Has(key)
	m.obs.ObserveOp("has", err, time.Since(start))
	return ok, err
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	m.guard.RLock()
	defer m.guard.RUnlock()
	return m.table.Len()
}

// Capacity returns the current bucket count.
func (m *Map[K, V]) Capacity() int {
	m.guard.RLock()
	defer m.guard.RUnlock()
	return m.table.Capacity()
}

// BucketIndex returns the bucket a key falls into (diagnostics).
func (m *Map[K, V]) BucketIndex(key K) (int, error) {
	m.guard.RLock()
	defer m.guard.RUnlock()
	return m.table.BucketIndex(key)
}

// Set stores value under key. An insert that pushes the entry count past
// the capacity grows the table inside this same write acquisition, so no
// other writer can interleave with a partial rebuild.
func (m *Map[K, V]) Set(key K, value V) error {
	start := time.Now()
	m.guard.Lock()
	defer m.guard.Unlock()

	capBefore := m.table.Capacity()
	err := m.table.Set(key, value)

	m.obs.ObserveOp("set", err, time.Since(start))
	if m.table.Capacity() != capBefore {
		m.obs.ObserveGrowth()
	}
	m.obs.ObserveTable(m.table.Len(), m.table.Capacity())
	return err
}

// Delete removes the entry stored under key. Deleting an absent key is
// an ErrKeyNotFound.
func (m *Map[K, V]) Delete(key K) error {
	start := time.Now()
	m.guard.Lock()
	defer m.guard.Unlock()

	err := m.table.Delete(key)

	m.obs.ObserveOp("delete", err, time.Since(start))
	m.obs.ObserveTable(m.table.Len(), m.table.Capacity())
	return err
}

// Pop removes and returns the entry stored under key in one exclusive
// acquisition.
func (m *Map[K, V]) Pop(key K) (V, error) {
	var zero V

	start := time.Now()
	m.guard.Lock()
	defer m.guard.Unlock()

	value, err := m.table.Get(key)
	if err == nil {
		err = m.table.Delete(key)
	}

	m.obs.ObserveOp("pop", err, time.Since(start))
	m.obs.ObserveTable(m.table.Len(), m.table.Capacity())
	if err != nil {
		return zero, err
	}
	return value, nil
}

// GetOrSet returns the existing value for key, or stores and returns
// value when the key is absent. The bool reports whether an existing
// value was found. The check and the insert share one exclusive
// acquisition, so concurrent callers cannot both insert.
func (m *Map[K, V]) GetOrSet(key K, value V) (V, bool, error) {
	var zero V

	start := time.Now()
	m.guard.Lock()
	defer m.guard.Unlock()

	existing, err := m.table.Get(key)
	switch {
	case err == nil:
		m.obs.ObserveOp("get_or_set", nil, time.Since(start))
		return existing, true, nil
	case !IsKeyNotFound(err):
		m.obs.ObserveOp("get_or_set", err, time.Since(start))
		return zero, false, err
	}

	err = m.table.Set(key, value)
	m.obs.ObserveOp("get_or_set", err, time.Since(start))
	m.obs.ObserveTable(m.table.Len(), m.table.Capacity())
	if err != nil {
		return zero, false, err
	}
	return value, false, nil
}

// Update rewrites the value under key through fn while holding write
// access, making read-modify-write sequences atomic with respect to
// other Map operations. fn receives the current value (or the zero
// value) and whether the key exists.
func (m *Map[K, V]) Update(key K, fn func(value V, exists bool) V) error {
	start := time.Now()
	m.guard.Lock()
	defer m.guard.Unlock()

	value, err := m.table.Get(key)
	exists := err == nil
	if err != nil && !IsKeyNotFound(err) {
		m.obs.ObserveOp("update", err, time.Since(start))
		return err
	}

	err = m.table.Set(key, fn(value, exists))
	m.obs.ObserveOp("update", err, time.Since(start))
	m.obs.ObserveTable(m.table.Len(), m.table.Capacity())
	return err
}

// Clear empties the table, keeping the current capacity.
func (m *Map[K, V]) Clear() {
	start := time.Now()
	m.guard.Lock()
	defer m.guard.Unlock()

	m.table.Clear()
	m.obs.ObserveOp("clear", nil, time.Since(start))
	m.obs.ObserveTable(m.table.Len(), m.table.Capacity())
}

// Resize rebuilds the table at the requested capacity; newCapacity <= 0
// is a no-op.
func (m *Map[K, V]) Resize(newCapacity int) {
	start := time.Now()
	m.guard.Lock()
	defer m.guard.Unlock()

	m.table.Resize(newCapacity)
	m.obs.ObserveOp("resize", nil, time.Since(start))
	m.obs.ObserveTable(m.table.Len(), m.table.Capacity())
}

// Items returns a snapshot of all entries, materialized under one read
// acquisition: buckets in index order, ascending keys within a bucket.
func (m *Map[K, V]) Items() []Entry[K, V] {
	start := time.Now()
	m.guard.RLock()
	defer m.guard.RUnlock()

	items := m.table.Items()
	m.obs.ObserveOp("items", nil, time.Since(start))
	return items
}

// ReverseItems returns a snapshot with each bucket traversed in
// descending key order.
func (m *Map[K, V]) ReverseItems() []Entry[K, V] {
	m.guard.RLock()
	defer m.guard.RUnlock()
	return m.table.ReverseItems()
}

// Keys returns a snapshot of all keys in Items order.
func (m *Map[K, V]) Keys() []K {
	m.guard.RLock()
	defer m.guard.RUnlock()
	return m.table.Keys()
}

// Values returns a snapshot of all values in Items order.
func (m *Map[K, V]) Values() []V {
	m.guard.RLock()
	defer m.guard.RUnlock()
	return m.table.Values()
}

// Range iterates an Items snapshot. The guard is released before fn runs
// on the first entry, so the callback may call back into the Map; what
// it sees is the state as of the snapshot.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for _, e := range m.Items() {
		if !fn(e.Key, e.Value) {
			return
		}
	}
}

// Stats returns per-bucket statistics under one read acquisition.
func (m *Map[K, V]) Stats() []BucketStats {
	m.guard.RLock()
	defer m.guard.RUnlock()
	return m.table.Stats()
}
