// Package bst implements the ordered tree used as a treetable bucket.
package bst

// Ascend visits every entry in ascending key order (left, root, right).
// The callback returns false to stop early; Ascend reports whether the
// walk ran to completion. Each call restarts from the smallest key.
func (t *Tree[K, V]) Ascend(fn func(key K, value V) bool) bool {
	return ascend(t.root, fn)
}

func ascend[K comparable, V any](n *node[K, V], fn func(K, V) bool) bool {
	if n == nil {
		return true
	}
	if !ascend(n.left, fn) {
		return false
	}
	if !fn(n.key, n.value) {
		return false
	}
	return ascend(n.right, fn)
}

// Descend visits every entry in descending key order (right, root, left),
// the exact reverse of Ascend.
func (t *Tree[K, V]) Descend(fn func(key K, value V) bool) bool {
	return descend(t.root, fn)
}

func descend[K comparable, V any](n *node[K, V], fn func(K, V) bool) bool {
	if n == nil {
		return true
	}
	if !descend(n.right, fn) {
		return false
	}
	if !fn(n.key, n.value) {
		return false
	}
	return descend(n.left, fn)
}
