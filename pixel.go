package blotches

import "image/color"

// Coord is a validated grid position, 0 <= X,Y < size.
type Coord struct {
	X, Y int
}

func (c Coord) Point() Point {
	return Point{c.X, c.Y}
}

// Point is an unconstrained position used while walking; it may be negative
// or past the grid edge.
type Point struct {
	X, Y int
}

// In reports whether p lies inside a size×size grid.
func (p Point) In(size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

// Coord converts p; callers check In first.
func (p Point) Coord() Coord {
	return Coord{p.X, p.Y}
}

func (p Point) add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// distSq is the squared euclidean distance from p to c.
func (p Point) distSq(c Coord) float64 {
	dx := float64(p.X) - float64(c.X)
	dy := float64(p.Y) - float64(c.Y)
	return dx*dx + dy*dy
}

// Color holds 8-bit R, G, B channels.
type Color [3]uint8

// DistSq is the sum of squared per-channel differences.
func (c Color) DistSq(o Color) int {
	sum := 0
	for i := range c {
		d := int(c[i]) - int(o[i])
		sum += d * d
	}
	return sum
}

func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

// Pixel is one placed cell. Center is the anchor of the blotch it grew from.
type Pixel struct {
	Color  Color
	Loc    Coord
	Center Coord
}
