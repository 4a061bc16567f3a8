package blotches

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog/log"
)

// Stats summarizes how a run placed its pixels.
type Stats struct {
	Seeds     int
	Grown     int
	Fallbacks int
	// Length of every boundary walk, in placement order.
	WalkSteps []int
}

// Generator grows the image one pixel per Step.
type Generator struct {
	opt      Options
	rng      *rand.Rand
	grid     *Grid
	open     *OpenSet[Coord]
	lookback *Lookback
	placed   int
	stats    Stats
}

func NewGenerator(opt Options) (*Generator, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	grid := NewGrid(opt.Size)
	return &Generator{
		opt:      opt,
		rng:      rand.New(rand.NewPCG(opt.Seed, opt.Seed)),
		grid:     grid,
		open:     NewOpenSet(grid.Coords()),
		lookback: NewLookback(opt.NumLookback),
	}, nil
}

func (g *Generator) Options() Options {
	return g.opt
}

func (g *Generator) Grid() *Grid {
	return g.grid
}

// Remaining is the number of cells not yet placed.
func (g *Generator) Remaining() int {
	return g.open.Len()
}

func (g *Generator) Stats() Stats {
	return g.stats
}

func (g *Generator) Done() bool {
	return g.placed == g.opt.Size*g.opt.Size
}

// Step places exactly one pixel. It returns false once the grid is full.
func (g *Generator) Step() bool {
	if g.Done() {
		return false
	}
	c := g.randomColor()
	if g.placed < g.opt.NumCenters {
		g.placeRandom(c)
		g.stats.Seeds++
	} else {
		g.grow(c)
	}
	g.placed++
	return true
}

// Run steps until every cell is filled.
func (g *Generator) Run() {
	total := g.opt.Size * g.opt.Size
	every := max(total/10, 1)
	for g.Step() {
		if g.placed%every == 0 {
			log.Debug().
				Int("placed", g.placed).
				Int("total", total).
				Int("fallbacks", g.stats.Fallbacks).
				Msg("generating")
		}
	}
}

func (g *Generator) randomColor() Color {
	return Color{uint8(g.rng.Uint32()), uint8(g.rng.Uint32()), uint8(g.rng.Uint32())}
}

// jitter draws uniformly from [v-width, v+width] clamped to the grid.
func (g *Generator) jitter(v, width int) int {
	lo := max(v-width, 0)
	hi := min(v+width, g.opt.Size-1)
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) placeRandom(c Color) {
	loc, ok := g.open.RemoveRandom(g.rng)
	if !ok {
		panic("blotches: no open cell left for random placement")
	}
	width := int(float64(g.opt.Size) * g.opt.StartSpread)
	center := Coord{g.jitter(loc.X, width), g.jitter(loc.Y, width)}
	g.commit(Pixel{Color: c, Loc: loc, Center: center})
}

func (g *Generator) grow(c Color) {
	nearest, ok := g.lookback.Nearest(c)
	if !ok {
		// Only reachable with zero centers.
		g.placeRandom(c)
		g.stats.Fallbacks++
		return
	}
	loc, steps, found := walk(nearest.Loc.Point(), nearest.Center, g.opt.Size, g.grid.Filled)
	g.stats.WalkSteps = append(g.stats.WalkSteps, steps)
	if !found {
		g.placeRandom(c)
		g.stats.Fallbacks++
		return
	}

	w := math.Sqrt(float64(c.DistSq(nearest.Color))) * g.opt.ContSpread
	width := max(1, int(min(w, float64(g.opt.Size))))
	center := Coord{g.jitter(nearest.Center.X, width), g.jitter(nearest.Center.Y, width)}
	if !g.open.Remove(loc) {
		panic(fmt.Sprintf("blotches: walk found %v but it is not open", loc))
	}
	g.commit(Pixel{Color: c, Loc: loc, Center: center})
	g.stats.Grown++
}

func (g *Generator) commit(p Pixel) {
	g.grid.Set(p)
	g.lookback.Push(p)
}

// Moore neighborhood, in the order candidates are compared.
var neighborOffsets = [8][2]int{
	{1, 1}, {0, 1}, {-1, 1},
	{1, 0}, {-1, 0},
	{1, -1}, {0, -1}, {-1, -1},
}

// walk circles center at the squared radius of start, stepping to the
// neighbor that best keeps that radius, until it lands on an open cell.
// It gives up on returning to start, leaving the grid, or after 8*radius steps.
func walk(start Point, center Coord, size int, filled func(Coord) bool) (Coord, int, bool) {
	radius := start.distSq(center)
	limit := 8 * radius
	last, cur := start, start
	for j := 1; ; j++ {
		var next Point
		bestDev := math.Inf(1)
		for _, off := range neighborOffsets {
			n := cur.add(off[0], off[1])
			if n == last {
				continue
			}
			if dev := math.Abs(n.distSq(center) - radius); dev < bestDev {
				next, bestDev = n, dev
			}
		}
		if next == start || !next.In(size) || float64(j) > limit {
			return Coord{}, j, false
		}
		if c := next.Coord(); !filled(c) {
			return c, j, true
		}
		last, cur = cur, next
	}
}

// Image renders the finished grid. Pixel (x,y) is the color placed at Coord{x,y}.
func (g *Generator) Image() *image.RGBA {
	if !g.grid.Complete() {
		panic(fmt.Sprintf("blotches: rendering incomplete grid (%d/%d)", g.grid.Count(), len(g.grid.cells)))
	}
	n := g.opt.Size
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for y := range n {
		for x := range n {
			p, _ := g.grid.At(Coord{x, y})
			img.SetRGBA(x, y, p.Color.ToRGBA())
		}
	}
	return img
}

// DistanceLayer maps each placed pixel's distance to its center onto
// [0,255], brightest at the largest distance. Empty cells stay black.
func (g *Generator) DistanceLayer() *image.Gray {
	n := g.opt.Size
	layer := image.NewGray(image.Rect(0, 0, n, n))
	dists := make([]float64, n*n)
	maxD := 0.0
	for y := range n {
		for x := range n {
			p, ok := g.grid.At(Coord{x, y})
			if !ok {
				continue
			}
			d := math.Sqrt(p.Loc.Point().distSq(p.Center))
			dists[y*n+x] = d
			maxD = max(maxD, d)
		}
	}
	if maxD == 0 {
		return layer
	}
	for y := range n {
		for x := range n {
			a := dists[y*n+x] / maxD
			layer.SetGray(x, y, color.Gray{Y: uint8(max(0, min(255, a*255)))})
		}
	}
	return layer
}
