package treap

import "fmt"

// Check verifies the structural invariants: cached subtree weights and sizes,
// positive own weights matching the stored values, non-decreasing in-order
// keys and the heap property on priorities. It walks the whole tree and is
// meant for tests.
func (t *Treap[V]) Check() error {
	var (
		prev    int64
		hasPrev bool
	)
	_, _, err := check(t.root, &prev, &hasPrev)
	return err
}

func check[V Splittable[V]](n *node[V], prev *int64, hasPrev *bool) (int64, int, error) {
	if n == nil {
		return 0, 0, nil
	}

	lsum, lsize, err := check(n.left, prev, hasPrev)
	if err != nil {
		return 0, 0, err
	}

	if *hasPrev && n.key < *prev {
		return 0, 0, fmt.Errorf("%w: key %d after %d", ErrInvariant, n.key, *prev)
	}
	*prev, *hasPrev = n.key, true

	if n.weight <= 0 {
		return 0, 0, fmt.Errorf("%w: node key %d has weight %d", ErrInvariant, n.key, n.weight)
	}
	if vw := n.value.Weight(); vw != n.weight {
		return 0, 0, fmt.Errorf("%w: node key %d caches weight %d, value weighs %d", ErrInvariant, n.key, n.weight, vw)
	}
	if n.left != nil && n.left.prio > n.prio {
		return 0, 0, fmt.Errorf("%w: heap order broken at key %d (left)", ErrInvariant, n.key)
	}
	if n.right != nil && n.right.prio > n.prio {
		return 0, 0, fmt.Errorf("%w: heap order broken at key %d (right)", ErrInvariant, n.key)
	}

	rsum, rsize, err := check(n.right, prev, hasPrev)
	if err != nil {
		return 0, 0, err
	}

	if want := n.weight + lsum + rsum; n.sum != want {
		return 0, 0, fmt.Errorf("%w: node key %d caches sum %d, want %d", ErrInvariant, n.key, n.sum, want)
	}
	if want := 1 + lsize + rsize; n.size != want {
		return 0, 0, fmt.Errorf("%w: node key %d caches size %d, want %d", ErrInvariant, n.key, n.size, want)
	}
	return n.sum, n.size, nil
}
