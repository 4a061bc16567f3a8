package blotches

import "github.com/gammazero/deque"

// Lookback holds the most recently placed pixels, newest first.
type Lookback struct {
	capacity int
	q        *deque.Deque[Pixel]
}

func NewLookback(capacity int) *Lookback {
	capacity = max(capacity, 1)
	q := deque.New[Pixel](capacity + 1)
	return &Lookback{capacity: capacity, q: q}
}

// Push inserts p at the front and evicts the oldest entry when full.
func (l *Lookback) Push(p Pixel) {
	l.q.PushFront(p)
	for l.q.Len() > l.capacity {
		l.q.PopBack()
	}
}

func (l *Lookback) Len() int {
	return l.q.Len()
}

func (l *Lookback) Cap() int {
	return l.capacity
}

// At returns the i-th most recent pixel; At(0) is the newest.
func (l *Lookback) At(i int) Pixel {
	return l.q.At(i)
}

// Nearest returns the pixel whose color is closest to c.
// Ties go to the more recent pixel.
func (l *Lookback) Nearest(c Color) (Pixel, bool) {
	n := l.q.Len()
	if n == 0 {
		return Pixel{}, false
	}
	best := l.q.At(0)
	bestD := c.DistSq(best.Color)
	for i := 1; i < n; i++ {
		p := l.q.At(i)
		if d := c.DistSq(p.Color); d < bestD {
			best, bestD = p, d
		}
	}
	return best, true
}
