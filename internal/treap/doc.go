// Package treap implements a weight-annotated randomized treap.
//
// Entries are ordered by an int64 key and carry a splittable value with a
// non-negative weight. Every node caches the aggregate weight of its subtree,
// which makes TotalWeight O(1) and lets SplitAt cut the structure at an exact
// weight boundary, splitting at most one value in two.
//
// # Operations
//
//	┌──────────────┬──────────────────────────────────────────────┐
//	│ Insert       │ split-by-key + merge, expected O(log n)      │
//	│ DeleteMin    │ leftmost removal, expected O(log n)          │
//	│ SplitAt      │ split-by-weight, expected O(log n)           │
//	│ Merge        │ key-ordered union of two treaps              │
//	│ TotalWeight  │ cached aggregate, O(1)                       │
//	└──────────────┴──────────────────────────────────────────────┘
//
// Heap priorities are drawn from math/rand/v2 when a node is created, so the
// expected height is O(log n) for any key sequence. The bound is
// probabilistic, not worst-case.
//
// # Thread Safety
//
// A Treap is not safe for concurrent use. It is owned by exactly one
// goroutine at a time; SplitAt hands the remainder to another Treap that
// shares no nodes with the receiver.
package treap
