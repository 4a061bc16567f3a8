package utils

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageStatsUniform(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 10, 20, 30, 255
	}
	s := ImageStats(img)
	assert.Equal(t, [3]float64{10, 20, 30}, s.Mean)
	assert.Equal(t, [3]float64{0, 0, 0}, s.StdDev)
	for i := range 3 {
		for j := range 3 {
			assert.Zero(t, s.Cov.At(i, j))
		}
	}
	assert.Zero(t, s.Corr(0, 1))
}

func TestImageStatsCorrelation(t *testing.T) {
	// Red and green move together, blue moves against them.
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 100, G: 200, B: 55, A: 255})
	s := ImageStats(img)
	assert.InDelta(t, 50, s.Mean[0], 1e-9)
	assert.InDelta(t, 1, s.Corr(0, 1), 1e-9)
	assert.InDelta(t, -1, s.Corr(1, 2), 1e-9)
}

func TestImageStatsSinglePixel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	s := ImageStats(img)
	assert.Equal(t, [3]float64{1, 2, 3}, s.Mean)
	assert.Zero(t, s.Corr(0, 2))
}

func TestSaveWalkHistogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walks.png")
	require.Error(t, SaveWalkHistogram(nil, 10, path))

	require.NoError(t, SaveWalkHistogram([]int{1, 1, 2, 3, 5, 8, 13}, 5, path))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, fi.Size())
}
