// Package bst implements the ordered tree used as a treetable bucket.
package bst

import (
	"sync/atomic"

	"github.com/yndnr/treetable-go/pkg/fingerprint"
)

// probeSeq is the creation sequence assigned to lookup keys. A probe is
// ordered after every resident node, which matches how the node it may
// become would be sequenced on insert.
const probeSeq = ^uint64(0)

// Comparator defines the total order a Tree places keys under.
//
// Two keys compare in three tiers:
//
//  1. Native == equality: equal keys are the same entry.
//  2. Fingerprint: the smaller fingerprint orders first.
//  3. Fingerprint collision between unequal keys: the natural compare
//     if one was configured, otherwise the node creation sequence.
//
// The creation-sequence tiebreak is stable only within a process run.
// Lookups of a key whose fingerprint collides with another key's can
// only be routed reliably when a natural compare is configured; key
// spaces where collisions matter should always provide one.
//
// One Comparator is shared by every bucket of a table so that the same
// fingerprint drives bucket indexing and in-bucket placement.
type Comparator[K comparable] struct {
	fp      fingerprint.Func[K]
	natural func(a, b K) int
	seq     atomic.Uint64
}

// NewComparator builds a Comparator from a fingerprint function and an
// optional natural compare (pass nil when keys have no useful order).
func NewComparator[K comparable](fp fingerprint.Func[K], natural func(a, b K) int) *Comparator[K] {
	return &Comparator[K]{fp: fp, natural: natural}
}

// Fingerprint computes the fingerprint of key.
func (c *Comparator[K]) Fingerprint(key K) (uint64, error) {
	return c.fp(key)
}

// next reserves the creation sequence for a node about to be linked in.
func (c *Comparator[K]) next() uint64 {
	return c.seq.Add(1)
}

// order compares key a (with fingerprint aSum and sequence aSeq) against
// key b. Fingerprints are passed in rather than recomputed because every
// caller already holds them.
func (c *Comparator[K]) order(a K, aSum, aSeq uint64, b K, bSum, bSeq uint64) int {
	if a == b {
		return 0
	}
	if aSum != bSum {
		if aSum < bSum {
			return -1
		}
		return 1
	}
	if c.natural != nil {
		if n := c.natural(a, b); n != 0 {
			return n
		}
	}
	if aSeq < bSeq {
		return -1
	}
	return 1
}
