// Package queue provides the binary min-heap behind the sequential search.
package queue

import "github.com/hupe1980/pwsa/graph"

// Entry is a tentative distance for a vertex, ordered by Key.
type Entry struct {
	Vertex   graph.Vertex
	Distance int64
	Key      int64

	seq uint64
}

// Heap is a min-heap of entries. Entries with equal keys pop in push order,
// matching the frontier treap. Storage is a flat slice, so pushes do not
// allocate once the backing array has grown.
type Heap struct {
	entries []Entry
	pushed  uint64
}

// New returns an empty heap with room for capacity entries.
func New(capacity int) *Heap {
	return &Heap{entries: make([]Entry, 0, capacity)}
}

// Len returns the number of queued entries.
func (h *Heap) Len() int { return len(h.entries) }

// Peek returns the smallest entry without removing it.
func (h *Heap) Peek() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[0], true
}

// Push queues v at distance d with the given key.
func (h *Heap) Push(v graph.Vertex, d, key int64) {
	h.entries = append(h.entries, Entry{Vertex: v, Distance: d, Key: key, seq: h.pushed})
	h.pushed++
	h.up(len(h.entries) - 1)
}

// Pop removes and returns the smallest entry.
func (h *Heap) Pop() (Entry, bool) {
	last := len(h.entries) - 1
	if last < 0 {
		return Entry{}, false
	}
	top := h.entries[0]
	h.entries[0] = h.entries[last]
	h.entries = h.entries[:last]
	if last > 0 {
		h.down(0)
	}
	return top, true
}

// Reset drops all entries and keeps the backing array.
func (h *Heap) Reset() {
	h.entries = h.entries[:0]
	h.pushed = 0
}

func (h *Heap) before(i, j int) bool {
	a, b := &h.entries[i], &h.entries[j]
	if a.Key != b.Key {
		return a.Key < b.Key
	}
	return a.seq < b.seq
}

func (h *Heap) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.before(i, parent) {
			break
		}
		h.entries[i], h.entries[parent] = h.entries[parent], h.entries[i]
		i = parent
	}
}

func (h *Heap) down(i int) {
	n := len(h.entries)
	for {
		child := 2*i + 1
		if child >= n {
			break
		}
		if r := child + 1; r < n && h.before(r, child) {
			child = r
		}
		if !h.before(child, i) {
			break
		}
		h.entries[i], h.entries[child] = h.entries[child], h.entries[i]
		i = child
	}
}
