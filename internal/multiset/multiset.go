// Package multiset provides an insertion-ordered bag that counts duplicates.
//
// A unit's declared namespaces are intentionally a multiset, not a set:
// the second claim of the same string within one unit must still be visible
// as a duplicate, and downstream consumers see claims in declaration order.
package multiset

// Multiset is an ordered collection of comparable values with duplicates
// retained. The zero value is not usable; call New.
type Multiset[T comparable] struct {
	elems  []T
	counts map[T]int
}

func New[T comparable]() *Multiset[T] {
	return &Multiset[T]{counts: make(map[T]int)}
}

// Add appends v, keeping any earlier occurrences.
func (m *Multiset[T]) Add(v T) {
	m.elems = append(m.elems, v)
	m.counts[v]++
}

// Contains reports whether v occurs at least once.
func (m *Multiset[T]) Contains(v T) bool { return m.counts[v] > 0 }

// Count returns the number of occurrences of v.
func (m *Multiset[T]) Count(v T) int { return m.counts[v] }

// Len returns the total number of elements, duplicates included.
func (m *Multiset[T]) Len() int { return len(m.elems) }

// Values returns the elements in insertion order, duplicates included.
// The returned slice is a copy.
func (m *Multiset[T]) Values() []T {
	out := make([]T, len(m.elems))
	copy(out, m.elems)
	return out
}
