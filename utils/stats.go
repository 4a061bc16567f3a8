package utils

import (
	"fmt"
	"image"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ChannelStats describes the R, G, B channel distributions of an image, in [0,255].
type ChannelStats struct {
	Mean   [3]float64
	StdDev [3]float64
	// Cov is the 3×3 channel covariance.
	Cov *mat.SymDense
}

// Corr returns the Pearson correlation between channels i and j.
func (s ChannelStats) Corr(i, j int) float64 {
	d := s.StdDev[i] * s.StdDev[j]
	if d == 0 {
		return 0
	}
	return s.Cov.At(i, j) / d
}

func ImageStats(img image.Image) ChannelStats {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	data := mat.NewDense(max(n, 1), 3, nil)
	row := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			data.Set(row, 0, float64(c.R))
			data.Set(row, 1, float64(c.G))
			data.Set(row, 2, float64(c.B))
			row++
		}
	}

	s := ChannelStats{Cov: mat.NewSymDense(3, nil)}
	if n < 2 {
		if n == 1 {
			s.Mean = [3]float64{data.At(0, 0), data.At(0, 1), data.At(0, 2)}
		}
		return s
	}
	col := make([]float64, n)
	for ch := range 3 {
		mat.Col(col, ch, data)
		s.Mean[ch], s.StdDev[ch] = stat.MeanStdDev(col, nil)
	}
	stat.CovarianceMatrix(s.Cov, data, nil)
	return s
}

// SaveWalkHistogram plots the distribution of boundary-walk lengths.
func SaveWalkHistogram(steps []int, bins int, filename string) error {
	if len(steps) == 0 {
		return fmt.Errorf("no walks to plot")
	}
	vals := make(plotter.Values, len(steps))
	for i, s := range steps {
		vals[i] = float64(s)
	}
	h, err := plotter.NewHist(vals, max(bins, 1))
	if err != nil {
		return fmt.Errorf("walk histogram: %w", err)
	}
	p := plot.New()
	p.Title.Text = "Boundary walk length"
	p.X.Label.Text = "steps"
	p.Y.Label.Text = "walks"
	p.Add(h)
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
