package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaletteMethod(t *testing.T) {
	m, err := ParsePaletteMethod("KMeans")
	require.NoError(t, err)
	assert.Equal(t, PaletteMethodKMeans, m)
	assert.Equal(t, "kmeans", m.String())

	m, err = ParsePaletteMethod("")
	require.NoError(t, err)
	assert.Equal(t, PaletteMethodDominantColor, m)

	_, err = ParsePaletteMethod("median-cut")
	assert.Error(t, err)
}

func TestSortPaletteByBrightness(t *testing.T) {
	white := colorful.Color{R: 1, G: 1, B: 1}
	black := colorful.Color{}
	green := colorful.Color{G: 1}
	blue := colorful.Color{B: 1}
	p := []colorful.Color{white, green, black, blue}
	SortPaletteByBrightness(p)
	assert.Equal(t, []colorful.Color{black, blue, green, white}, p)
}

func TestExtractPalette(t *testing.T) {
	img := checker(40)
	for _, m := range []PaletteMethod{PaletteMethodDominantColor, PaletteMethodKMeans} {
		t.Run(m.String(), func(t *testing.T) {
			p, err := ExtractPalette(img, 3, m)
			require.NoError(t, err)
			assert.NotEmpty(t, p)
			assert.LessOrEqual(t, len(p), 3)
		})
	}
	_, err := ExtractPalette(img, 0, PaletteMethodKMeans)
	assert.Error(t, err)
}

func TestPickDistinctPrefersHeavyThenFar(t *testing.T) {
	red := colorful.Color{R: 1}
	nearRed := colorful.Color{R: 0.95, G: 0.02}
	blue := colorful.Color{B: 1}
	got := pickDistinct([]weightedColor{
		{Col: nearRed, Weight: 2},
		{Col: red, Weight: 5},
		{Col: blue, Weight: 1},
	}, 2)
	assert.Equal(t, []colorful.Color{red, blue}, got)
	assert.Nil(t, pickDistinct(nil, 3))
}

func TestSavePalette(t *testing.T) {
	dir := t.TempDir()
	assert.ErrorIs(t, SavePalette(nil, 8, filepath.Join(dir, "empty.png")), ErrEmptyPalette)

	path := filepath.Join(dir, "p.png")
	require.NoError(t, SavePalette([]colorful.Color{{R: 1}, {G: 1}}, 8, path))
	img, err := ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestHexPalette(t *testing.T) {
	assert.Equal(t, []string{"#ff0000", "#000000"}, HexPalette([]colorful.Color{{R: 1}, {}}))
}
