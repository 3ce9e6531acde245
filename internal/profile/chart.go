// Package profile renders 1D profiles (line cuts, layer averages, radial
// averages) as PNG line charts.
package profile

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Chart describes one profile chart.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
}

// Chart size used when Width or Height is zero.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch
)

// Build assembles the plot for xs against ys.
func (c Chart) Build(xs, ys []float64) (*plot.Plot, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("profile %q: %d abscissae vs %d ordinates", c.Title, len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("profile %q: no points", c.Title)
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", c.Title, err)
	}
	line.Color = color.Black
	line.Width = vg.Points(1)
	p.Add(line)
	return p, nil
}

// Save renders the chart to path. The format follows the file extension.
func (c Chart) Save(path string, xs, ys []float64) error {
	p, err := c.Build(xs, ys)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	w, h := c.Width, c.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("saving chart %s: %w", path, err)
	}
	return nil
}
