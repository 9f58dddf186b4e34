package treap

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var (
	// ErrEmpty is the panic value of DeleteMin on an empty treap.
	ErrEmpty = errors.New("treap: delete-min on empty treap")

	// ErrNegativeWeight is the panic value for negative weights passed to
	// Insert or SplitAt.
	ErrNegativeWeight = errors.New("treap: negative weight")

	// ErrInvariant is wrapped by every error returned from Check.
	ErrInvariant = errors.New("treap: invariant violated")
)

// Splittable is a value with a weight that can be cut in two.
//
// SplitAt(w) returns the first w units of weight as head and the remainder as
// tail. Implementations must guarantee head.Weight() == w and that the two
// weights sum to the original.
type Splittable[V any] interface {
	Weight() int64
	SplitAt(w int64) (head, tail V)
}

type node[V Splittable[V]] struct {
	left, right *node[V]
	key         int64
	value       V
	weight      int64 // own weight
	sum         int64 // weight of the whole subtree
	size        int
	prio        uint64
}

func newNode[V Splittable[V]](key int64, value V, weight int64) *node[V] {
	return &node[V]{
		key:    key,
		value:  value,
		weight: weight,
		sum:    weight,
		size:   1,
		prio:   rand.Uint64(),
	}
}

func (n *node[V]) update() {
	n.sum = n.weight
	n.size = 1
	if n.left != nil {
		n.sum += n.left.sum
		n.size += n.left.size
	}
	if n.right != nil {
		n.sum += n.right.sum
		n.size += n.right.size
	}
}

func sumOf[V Splittable[V]](n *node[V]) int64 {
	if n == nil {
		return 0
	}
	return n.sum
}

// Treap is a key-ordered, weight-annotated randomized search tree.
// The zero value is an empty treap ready to use.
type Treap[V Splittable[V]] struct {
	root *node[V]
}

// New returns an empty treap.
func New[V Splittable[V]]() *Treap[V] {
	return &Treap[V]{}
}

// Len returns the number of entries.
func (t *Treap[V]) Len() int {
	if t.root == nil {
		return 0
	}
	return t.root.size
}

// TotalWeight returns the sum of all entry weights.
func (t *Treap[V]) TotalWeight() int64 {
	return sumOf(t.root)
}

// Insert adds value under key. Duplicate keys are kept; among equal keys the
// most recently inserted entry sorts last. Zero-weight values carry no work
// and are dropped; Insert reports whether the value was stored.
func (t *Treap[V]) Insert(key int64, value V) bool {
	w := value.Weight()
	if w < 0 {
		panic(fmt.Errorf("%w: insert weight %d", ErrNegativeWeight, w))
	}
	if w == 0 {
		return false
	}
	l, r := splitKey(t.root, key)
	t.root = merge(merge(l, newNode(key, value, w)), r)
	return true
}

// DeleteMin removes and returns the entry with the smallest key.
// Calling it on an empty treap is a programming error and panics with ErrEmpty.
func (t *Treap[V]) DeleteMin() (int64, V) {
	if t.root == nil {
		panic(ErrEmpty)
	}
	var min *node[V]
	t.root, min = deleteMin(t.root)
	return min.key, min.value
}

// SplitAt keeps the key-ordered prefix of weight w in t and moves the rest
// into other, replacing whatever other held. When w falls inside an entry,
// that entry's value is split with its own SplitAt and the remainder keeps the
// same key. A w at or above TotalWeight moves nothing.
func (t *Treap[V]) SplitAt(w int64, other *Treap[V]) {
	if w < 0 {
		panic(fmt.Errorf("%w: split weight %d", ErrNegativeWeight, w))
	}
	if w >= t.TotalWeight() {
		other.root = nil
		return
	}
	t.root, other.root = splitWeight(t.root, w)
}

// Merge moves every entry of other into t and leaves other empty.
func (t *Treap[V]) Merge(other *Treap[V]) {
	if other == t {
		return
	}
	t.root = union(t.root, other.root)
	other.root = nil
}

// splitKey splits n into keys <= key and keys > key.
func splitKey[V Splittable[V]](n *node[V], key int64) (*node[V], *node[V]) {
	if n == nil {
		return nil, nil
	}
	if n.key <= key {
		l, r := splitKey(n.right, key)
		n.right = l
		n.update()
		return n, r
	}
	l, r := splitKey(n.left, key)
	n.left = r
	n.update()
	return l, n
}

// merge joins l and r where every key of l sorts before every key of r.
func merge[V Splittable[V]](l, r *node[V]) *node[V] {
	if l == nil {
		return r
	}
	if r == nil {
		return l
	}
	if l.prio >= r.prio {
		l.right = merge(l.right, r)
		l.update()
		return l
	}
	r.left = merge(l, r.left)
	r.update()
	return r
}

func union[V Splittable[V]](a, b *node[V]) *node[V] {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.prio < b.prio {
		a, b = b, a
	}
	l, r := splitKey(b, a.key)
	a.left = union(a.left, l)
	a.right = union(a.right, r)
	a.update()
	return a
}

func deleteMin[V Splittable[V]](n *node[V]) (*node[V], *node[V]) {
	if n.left == nil {
		rest := n.right
		n.right = nil
		return rest, n
	}
	var min *node[V]
	n.left, min = deleteMin(n.left)
	n.update()
	return n, min
}

// splitWeight splits n so the left part weighs exactly w, for 0 <= w <= n.sum.
func splitWeight[V Splittable[V]](n *node[V], w int64) (*node[V], *node[V]) {
	if n == nil {
		return nil, nil
	}
	if w <= 0 {
		return nil, n
	}
	if w >= n.sum {
		return n, nil
	}

	ls := sumOf(n.left)
	switch {
	case w <= ls:
		l, r := splitWeight(n.left, w)
		n.left = r
		n.update()
		return l, n
	case w >= ls+n.weight:
		l, r := splitWeight(n.right, w-ls-n.weight)
		n.right = l
		n.update()
		return n, r
	}

	// The boundary falls inside n's own value.
	keep := w - ls
	head, tail := n.value.SplitAt(keep)
	restNode := newNode(n.key, tail, n.weight-keep)
	n.value, n.weight = head, keep
	right := n.right
	n.right = nil
	n.update()
	return n, merge(restNode, right)
}
