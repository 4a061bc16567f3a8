package blotches

import "fmt"

// Grid is the size×size occupancy map. A cell is written once and never cleared.
type Grid struct {
	size   int
	cells  []Pixel
	filled []bool
	count  int
}

func NewGrid(size int) *Grid {
	return &Grid{
		size:   size,
		cells:  make([]Pixel, size*size),
		filled: make([]bool, size*size),
	}
}

func (g *Grid) offset(c Coord) int {
	return c.Y*g.size + c.X
}

func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) At(c Coord) (Pixel, bool) {
	i := g.offset(c)
	return g.cells[i], g.filled[i]
}

func (g *Grid) Filled(c Coord) bool {
	return g.filled[g.offset(c)]
}

// Set stores p at p.Loc. Filling a cell twice is a logic error and panics.
func (g *Grid) Set(p Pixel) {
	i := g.offset(p.Loc)
	if g.filled[i] {
		panic(fmt.Sprintf("blotches: cell %v filled twice", p.Loc))
	}
	g.cells[i] = p
	g.filled[i] = true
	g.count++
}

// Count is the number of filled cells.
func (g *Grid) Count() int {
	return g.count
}

func (g *Grid) Complete() bool {
	return g.count == len(g.cells)
}

// Coords lists every grid coordinate, x-major.
func (g *Grid) Coords() []Coord {
	out := make([]Coord, 0, g.size*g.size)
	for x := range g.size {
		for y := range g.size {
			out = append(out, Coord{x, y})
		}
	}
	return out
}
