package utils

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/rs/zerolog/log"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch strings.ToLower(s) {
	case "", "dominantcolor":
		return PaletteMethodDominantColor, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	}
	return 0, fmt.Errorf("unknown palette method %q", s)
}

var ErrEmptyPalette = errors.New("empty palette")

// weightedColor is a palette candidate; Weight is its share of the image.
type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// SortPaletteByBrightness orders colors from darkest to brightest by relative luminance.
func SortPaletteByBrightness(palette []colorful.Color) {
	luma := func(c colorful.Color) float64 {
		r, g, b := c.LinearRgb()
		return 0.2126*r + 0.7152*g + 0.0722*b
	}
	slices.SortStableFunc(palette, func(a, b colorful.Color) int {
		la, lb := luma(a), luma(b)
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		}
		return 0
	})
}

// ExtractPalette summarizes img with k representative colors.
// KMeans falls back to dominantcolor when clustering yields nothing.
func ExtractPalette(img image.Image, k int, method PaletteMethod) ([]colorful.Color, error) {
	if k <= 0 {
		return nil, fmt.Errorf("palette size must be positive, got %d", k)
	}
	var p []colorful.Color
	if method == PaletteMethodKMeans {
		p = kmeansPalette(img, k)
		if len(p) == 0 {
			log.Warn().Msg("kmeans returned empty palette, falling back to dominantcolor")
		}
	}
	if len(p) == 0 {
		p = dominantPalette(img, k)
	}
	if len(p) == 0 {
		return nil, ErrEmptyPalette
	}
	return p, nil
}

func dominantPalette(img image.Image, k int) []colorful.Color {
	found := dominantcolor.FindWeight(img, max(24, k*8))
	cands := make([]weightedColor, 0, len(found))
	for _, c := range found {
		col, _ := colorful.MakeColor(c.RGBA)
		cands = append(cands, weightedColor{Col: col.Clamped(), Weight: c.Weight})
	}
	return pickDistinct(cands, k)
}

func kmeansPalette(img image.Image, k int) []colorful.Color {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return nil
	}
	// Generated images are large and noisy; a strided sample clusters the same.
	const maxSamples = 12000
	step := 1
	if n > maxSamples {
		step = int(math.Sqrt(float64(n)/maxSamples)) + 1
	}
	var obs clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			obs = append(obs, clusters.Coordinates{
				float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255,
			})
		}
	}
	workK := min(k*4, len(obs))
	km := kmeans.New()
	cc, err := km.Partition(obs, workK)
	if err != nil {
		log.Debug().Err(err).Msg("kmeans partition failed")
		return nil
	}
	cands := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		cands = append(cands, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	return pickDistinct(cands, k)
}

// pickDistinct starts from the heaviest candidate, then repeatedly adds the
// candidate farthest (in Lab) from everything chosen, scaled by its weight.
func pickDistinct(cands []weightedColor, k int) []colorful.Color {
	if len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))
	maxW := 0.0
	for _, c := range cands {
		maxW = max(maxW, c.Weight)
	}
	if maxW <= 0 {
		maxW = 1
	}

	chosen := []int{0}
	for i, c := range cands {
		if c.Weight > cands[chosen[0]].Weight {
			chosen[0] = i
		}
	}
	used := make([]bool, len(cands))
	used[chosen[0]] = true

	for len(chosen) < k {
		best, bestScore := -1, -1.0
		for i, c := range cands {
			if used[i] {
				continue
			}
			nearest := math.MaxFloat64
			for _, s := range chosen {
				nearest = min(nearest, c.Col.DistanceLab(cands[s].Col))
			}
			w := max(c.Weight, 0) / maxW
			if score := nearest * (0.55 + 0.45*math.Sqrt(w)); score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		chosen = append(chosen, best)
	}

	out := make([]colorful.Color, len(chosen))
	for i, idx := range chosen {
		out[i] = cands[idx].Col
	}
	return out
}

// SavePalette writes the palette as a strip of tileSize squares.
func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return ErrEmptyPalette
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		fill := color.RGBA{R: r, G: g, B: b, A: 255}
		for y := range tileSize {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				img.SetRGBA(x, y, fill)
			}
		}
	}
	return SaveImage(img, filename)
}

// HexPalette formats colors as "#rrggbb" strings for logging.
func HexPalette(palette []colorful.Color) []string {
	out := make([]string, len(palette))
	for i, c := range palette {
		out[i] = c.Clamped().Hex()
	}
	return out
}
