package blotches

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var ErrInvalidOptions = errors.New("invalid options")

type Options struct {
	// Side length of the square output, in pixels.
	Size int
	// Number of seed pixels placed at random before growth starts.
	// 0 <= NumCenters <= Size*Size. Fewer centers => fewer, larger blotches.
	NumCenters int
	// How many recent pixels are searched for the closest color.
	// Larger values let old blotches keep growing; 1 makes the image a single chain.
	NumLookback int
	// Seed center jitter as a fraction of Size, in [0,1].
	// 0 puts every seed's center on the seed itself (zero radius, seeds never grow by walking).
	StartSpread float64
	// Growth center jitter per unit of color distance, >= 0.
	// Jitter is at least one cell regardless.
	ContSpread float64
	// RNG seed. Same options => same image.
	Seed uint64
}

func DefaultOptions() Options {
	return Options{
		Size:        1000,
		NumCenters:  20,
		NumLookback: 1000,
		StartSpread: 0.5,
		ContSpread:  0.1,
		Seed:        19,
	}
}

// OptionsFromSize scales the defaults to a different side length, keeping
// roughly the same blotch density and lookback depth per pixel of edge.
func OptionsFromSize(size int) Options {
	opt := DefaultOptions()
	if size <= 0 {
		return opt
	}
	ratio := float64(size) / float64(opt.Size)
	opt.Size = size
	opt.NumCenters = min(size*size, max(1, int(math.Round(float64(opt.NumCenters)*ratio))))
	opt.NumLookback = max(1, int(math.Round(float64(opt.NumLookback)*ratio)))
	return opt
}

func (o Options) Validate() error {
	if o.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidOptions, o.Size)
	}
	if o.NumCenters < 0 || o.NumCenters > o.Size*o.Size {
		return fmt.Errorf("%w: num_centers must be in [0, %d], got %d", ErrInvalidOptions, o.Size*o.Size, o.NumCenters)
	}
	if o.NumLookback <= 0 {
		return fmt.Errorf("%w: num_lookback must be positive, got %d", ErrInvalidOptions, o.NumLookback)
	}
	if math.IsNaN(o.StartSpread) || o.StartSpread < 0 || o.StartSpread > 1 {
		return fmt.Errorf("%w: start_spread must be in [0, 1], got %v", ErrInvalidOptions, o.StartSpread)
	}
	if math.IsNaN(o.ContSpread) || math.IsInf(o.ContSpread, 0) || o.ContSpread < 0 {
		return fmt.Errorf("%w: cont_spread must be a finite value >= 0, got %v", ErrInvalidOptions, o.ContSpread)
	}
	return nil
}

// Filename encodes every option, e.g. "img-1000-20-1000-0.5-0.1-19.png".
func (o Options) Filename(ext string) string {
	return fmt.Sprintf("img-%d-%d-%d-%s-%s-%d.%s",
		o.Size, o.NumCenters, o.NumLookback,
		strconv.FormatFloat(o.StartSpread, 'g', -1, 64),
		strconv.FormatFloat(o.ContSpread, 'g', -1, 64),
		o.Seed, ext)
}
