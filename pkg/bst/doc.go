// Package bst implements the ordered tree used as a treetable bucket.
//
// A Tree is a plain binary search tree over arbitrary comparable keys.
// It is not self-balancing: depth is whatever insertion order produces,
// so a bucket degenerates to O(n) lookups under adversarial fingerprint
// collisions. That is an accepted limitation; the hash table above it
// keeps buckets small on average.
//
// Keys are ordered by a three-tier comparison rule (see Comparator):
// native equality first, then the key fingerprint, then a fallback for
// unequal keys that collide on fingerprint.
//
// A Tree is not safe for concurrent use. Callers serialize access,
// either trivially or through treetable.Map.
package bst
