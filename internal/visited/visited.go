// Package visited tracks settled vertices of a single-goroutine search.
package visited

// VisitedSet tracks visited vertices using a bitset and a dirty list for fast reset.
type VisitedSet struct {
	bits  []uint64
	dirty []uint32
}

// New creates a visited set for vertex ids below capacity.
func New(capacity int) *VisitedSet {
	return &VisitedSet{
		bits:  make([]uint64, (capacity+63)/64),
		dirty: make([]uint32, 0, 128),
	}
}

// Visit marks v as visited and reports whether it was newly added.
func (s *VisitedSet) Visit(v uint32) bool {
	word := v >> 6
	mask := uint64(1) << (v & 63)
	if s.bits[word]&mask != 0 {
		return false
	}
	s.bits[word] |= mask
	s.dirty = append(s.dirty, v)
	return true
}

// Visited reports whether v has been visited.
func (s *VisitedSet) Visited(v uint32) bool {
	return s.bits[v>>6]&(uint64(1)<<(v&63)) != 0
}

// Count returns the number of visited vertices.
func (s *VisitedSet) Count() int { return len(s.dirty) }

// Reset clears only the bits set since the last reset.
func (s *VisitedSet) Reset() {
	for _, v := range s.dirty {
		s.bits[v>>6] &^= uint64(1) << (v & 63)
	}
	s.dirty = s.dirty[:0]
}
