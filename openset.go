package blotches

// Intner is the part of a random source the open set needs.
// *rand.Rand from math/rand/v2 satisfies it.
type Intner interface {
	IntN(n int) int
}

// OpenSet is an unordered set supporting O(1) removal of a uniformly
// random element and O(1) removal of a given element.
// items and index always describe the same membership: index[items[i]] == i.
type OpenSet[T comparable] struct {
	items []T
	index map[T]int
}

// NewOpenSet builds a set from items. Duplicates are dropped, first occurrence wins.
func NewOpenSet[T comparable](items []T) *OpenSet[T] {
	s := &OpenSet[T]{
		items: make([]T, 0, len(items)),
		index: make(map[T]int, len(items)),
	}
	for _, it := range items {
		if _, ok := s.index[it]; ok {
			continue
		}
		s.index[it] = len(s.items)
		s.items = append(s.items, it)
	}
	return s
}

func (s *OpenSet[T]) Len() int {
	return len(s.items)
}

func (s *OpenSet[T]) Contains(item T) bool {
	_, ok := s.index[item]
	return ok
}

// RemoveRandom removes and returns a uniformly chosen element.
// It reports false and draws nothing from r when the set is empty.
func (s *OpenSet[T]) RemoveRandom(r Intner) (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	i := r.IntN(len(s.items))
	out := s.items[i]
	s.swapRemove(i)
	return out, true
}

// Remove deletes item, reporting whether it was present.
func (s *OpenSet[T]) Remove(item T) bool {
	i, ok := s.index[item]
	if !ok {
		return false
	}
	s.swapRemove(i)
	return true
}

func (s *OpenSet[T]) swapRemove(i int) {
	last := len(s.items) - 1
	removed := s.items[i]
	moved := s.items[last]
	s.items[i] = moved
	var zero T
	s.items[last] = zero
	s.items = s.items[:last]
	delete(s.index, removed)
	if i != last {
		s.index[moved] = i
	}
}
