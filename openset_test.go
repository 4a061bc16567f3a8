package blotches

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireIndexed checks that index maps every element to its true slot and nothing else.
func requireIndexed[T comparable](t *testing.T, s *OpenSet[T]) {
	t.Helper()
	require.Len(t, s.index, len(s.items))
	for i, it := range s.items {
		require.Equal(t, i, s.index[it], "index of %v", it)
	}
}

func TestOpenSetEmpty(t *testing.T) {
	s := NewOpenSet[int](nil)
	_, ok := s.RemoveRandom(rand.New(rand.NewPCG(1, 1)))
	assert.False(t, ok)
	assert.False(t, s.Remove(3))
	assert.Equal(t, 0, s.Len())
}

func TestOpenSetDropsDuplicates(t *testing.T) {
	s := NewOpenSet([]int{4, 1, 4, 2, 1})
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{4, 1, 2}, s.items)
	requireIndexed(t, s)
}

func TestOpenSetRemove(t *testing.T) {
	s := NewOpenSet([]string{"a", "b", "c", "d"})

	require.True(t, s.Remove("b"))
	assert.Equal(t, []string{"a", "d", "c"}, s.items)
	requireIndexed(t, s)

	assert.False(t, s.Remove("b"))
	require.True(t, s.Remove("c"))
	assert.Equal(t, []string{"a", "d"}, s.items)
	requireIndexed(t, s)

	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))
}

type fixedIntner int

func (f fixedIntner) IntN(n int) int { return int(f) % n }

func TestOpenSetRemoveRandomSwapsLast(t *testing.T) {
	s := NewOpenSet([]int{10, 20, 30, 40})
	got, ok := s.RemoveRandom(fixedIntner(1))
	require.True(t, ok)
	assert.Equal(t, 20, got)
	assert.Equal(t, []int{10, 40, 30}, s.items)
	requireIndexed(t, s)

	// Removing the last slot must not leave a stale entry behind.
	got, ok = s.RemoveRandom(fixedIntner(2))
	require.True(t, ok)
	assert.Equal(t, 30, got)
	assert.Equal(t, []int{10, 40}, s.items)
	requireIndexed(t, s)
}

func TestOpenSetRandomizedOperations(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		r := rand.New(rand.NewPCG(seed, 99))
		n := 1 + r.IntN(200)
		items := make([]int, n)
		members := make(map[int]bool, n)
		for i := range items {
			items[i] = i * 3
			members[i*3] = true
		}
		s := NewOpenSet(items)

		for s.Len() > 0 {
			if r.IntN(2) == 0 {
				got, ok := s.RemoveRandom(r)
				require.True(t, ok)
				require.True(t, members[got], "removed %d which was not present", got)
				delete(members, got)
			} else {
				key := r.IntN(n) * 3
				require.Equal(t, members[key], s.Remove(key))
				delete(members, key)
			}
			requireIndexed(t, s)
			require.Equal(t, len(members), s.Len())
			for m := range members {
				require.True(t, s.Contains(m))
			}
		}
		_, ok := s.RemoveRandom(r)
		require.False(t, ok)
	}
}
