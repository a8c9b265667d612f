// Package bst implements the ordered tree used as a treetable bucket.
package bst

// node is a single key/value record. A node is owned exclusively by its
// parent (or by the tree, for the root) and carries no parent link.
type node[K comparable, V any] struct {
	key   K
	value V

	// sum caches the key fingerprint; seq is the creation sequence
	// used as the last-resort ordering tiebreak.
	sum uint64
	seq uint64

	left  *node[K, V]
	right *node[K, V]
}

// Tree is a binary search tree over the Comparator's total order.
type Tree[K comparable, V any] struct {
	cmp  *Comparator[K]
	root *node[K, V]
	size int
}

// New creates an empty tree placing keys under cmp.
func New[K comparable, V any](cmp *Comparator[K]) *Tree[K, V] {
	return &Tree[K, V]{cmp: cmp}
}

// Len returns the number of entries in the tree.
func (t *Tree[K, V]) Len() int {
	return t.size
}

// Insert stores value under key. If the key is already present its value
// is replaced in place and Insert reports false; a newly created entry
// reports true. The only possible error is an unhashable key.
func (t *Tree[K, V]) Insert(key K, value V) (bool, error) {
	sum, err := t.cmp.Fingerprint(key)
	if err != nil {
		return false, err
	}

	if t.root == nil {
		t.root = &node[K, V]{key: key, value: value, sum: sum, seq: t.cmp.next()}
		t.size = 1
		return true, nil
	}

	cur := t.root
	for {
		switch c := t.cmp.order(key, sum, probeSeq, cur.key, cur.sum, cur.seq); {
		case c == 0:
			cur.value = value
			return false, nil
		case c < 0:
			if cur.left == nil {
				cur.left = &node[K, V]{key: key, value: value, sum: sum, seq: t.cmp.next()}
				t.size++
				return true, nil
			}
			cur = cur.left
		default:
			if cur.right == nil {
				cur.right = &node[K, V]{key: key, value: value, sum: sum, seq: t.cmp.next()}
				t.size++
				return true, nil
			}
			cur = cur.right
		}
	}
}

// Find returns the value stored under key. Absence is reported through
// the bool, not as an error.
func (t *Tree[K, V]) Find(key K) (V, bool, error) {
	var zero V

	sum, err := t.cmp.Fingerprint(key)
	if err != nil {
		return zero, false, err
	}

	cur := t.root
	for cur != nil {
		switch c := t.cmp.order(key, sum, probeSeq, cur.key, cur.sum, cur.seq); {
		case c == 0:
			return cur.value, true, nil
		case c < 0:
			cur = cur.left
		default:
			cur = cur.right
		}
	}
	return zero, false, nil
}

// Delete removes the entry stored under key and reports whether an entry
// was actually removed. Size is decremented only on a real removal.
func (t *Tree[K, V]) Delete(key K) (bool, error) {
	sum, err := t.cmp.Fingerprint(key)
	if err != nil {
		return false, err
	}

	root, deleted := t.deleteNode(t.root, key, sum)
	if deleted {
		t.root = root
		t.size--
	}
	return deleted, nil
}

// deleteNode removes key from the subtree rooted at n. It returns the
// possibly replaced subtree root together with a deleted flag, so a
// failed delete never leaves a half-applied splice behind.
func (t *Tree[K, V]) deleteNode(n *node[K, V], key K, sum uint64) (*node[K, V], bool) {
	if n == nil {
		return nil, false
	}

	switch c := t.cmp.order(key, sum, probeSeq, n.key, n.sum, n.seq); {
	case c < 0:
		left, deleted := t.deleteNode(n.left, key, sum)
		if deleted {
			n.left = left
		}
		return n, deleted
	case c > 0:
		right, deleted := t.deleteNode(n.right, key, sum)
		if deleted {
			n.right = right
		}
		return n, deleted
	default:
		if n.left == nil {
			return n.right, true
		}
		if n.right == nil {
			return n.left, true
		}

		// Two children: take over the in-order successor's entry,
		// then delete the successor's original slot. The sequence
		// moves with the key so its ordering identity is preserved.
		succ := minNode(n.right)
		n.key, n.value, n.sum, n.seq = succ.key, succ.value, succ.sum, succ.seq
		n.right, _ = t.deleteNode(n.right, succ.key, succ.sum)
		return n, true
	}
}

// minNode returns the leftmost node of a non-empty subtree.
func minNode[K comparable, V any](n *node[K, V]) *node[K, V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

// Depth returns the height of the tree: 0 when empty, 1 for a single
// node. It walks the whole tree and exists for bucket diagnostics.
func (t *Tree[K, V]) Depth() int {
	return depth(t.root)
}

func depth[K comparable, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	l, r := depth(n.left), depth(n.right)
	if l > r {
		return l + 1
	}
	return r + 1
}
