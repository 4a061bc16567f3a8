package blotches

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allFilled(Coord) bool { return true }
func noneFilled(Coord) bool { return false }

func TestWalkZeroRadiusGivesUpImmediately(t *testing.T) {
	_, steps, found := walk(Point{3, 3}, Coord{3, 3}, 10, noneFilled)
	assert.False(t, found)
	assert.Equal(t, 1, steps)
}

func TestWalkPicksNeighborKeepingRadius(t *testing.T) {
	// Radius 4 around (2,0). (3,2) and (1,2) both sit at 5; (3,2) comes first.
	c, steps, found := walk(Point{2, 2}, Coord{2, 0}, 5, noneFilled)
	require.True(t, found)
	assert.Equal(t, 1, steps)
	assert.Equal(t, Coord{3, 2}, c)
}

func TestWalkLeavingGridGivesUp(t *testing.T) {
	// The best first step from (0,2) around (2,2) is (0,3), outside a 3×3 grid.
	_, steps, found := walk(Point{0, 2}, Coord{2, 2}, 3, noneFilled)
	assert.False(t, found)
	assert.Equal(t, 1, steps)
}

func TestWalkSkipsFilledCells(t *testing.T) {
	filled := map[Coord]bool{{3, 2}: true}
	c, steps, found := walk(Point{2, 2}, Coord{2, 0}, 5, func(c Coord) bool { return filled[c] })
	require.True(t, found)
	assert.Equal(t, 2, steps)
	assert.NotEqual(t, Coord{3, 2}, c)
	assert.Equal(t, Coord{4, 1}, c)
}

func TestWalkAlwaysTerminates(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 5))
	for range 500 {
		size := 1 + r.IntN(40)
		start := Point{r.IntN(size), r.IntN(size)}
		center := Coord{r.IntN(size), r.IntN(size)}
		radius := start.distSq(center)
		bound := int(max(1, math.Floor(8*radius))) + 1

		_, steps, found := walk(start, center, size, allFilled)
		require.False(t, found)
		require.LessOrEqual(t, steps, bound, "start %v center %v size %d", start, center, size)
	}
}
