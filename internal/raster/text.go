package raster

import (
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce sync.Once
	fontErr  error
	source   *text.FontSource
)

func face(size float64) (text.Face, error) {
	fontOnce.Do(func() {
		source, fontErr = text.NewFontSource(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("parsing font: %w", fontErr)
	}
	return source.Face(size), nil
}

// TextExtents is the measured box of a string, in pixels.
type TextExtents struct {
	Width   float64 // horizontal advance
	Ascent  float64 // above the baseline
	Descent float64 // below the baseline
}

// Height returns Ascent+Descent.
func (e TextExtents) Height() float64 { return e.Ascent + e.Descent }

// TextBounds measures text at the given font size.
func (c *Canvas) TextBounds(size float64, s string) (TextExtents, error) {
	f, err := face(size)
	if err != nil {
		return TextExtents{}, err
	}
	m := f.Metrics()
	return TextExtents{Width: f.Advance(s), Ascent: m.Ascent, Descent: m.Descent}, nil
}

// Text draws s with its baseline origin at (x,y). rotation is in degrees
// counter-clockwise about that origin.
func (c *Canvas) Text(x, y, size, rotation float64, col color.NRGBA, s string) error {
	if s == "" {
		return nil
	}
	f, err := face(size)
	if err != nil {
		return err
	}
	ext, err := c.TextBounds(size, s)
	if err != nil {
		return err
	}
	theta := rotation * math.Pi / 180
	sin, cos := math.Sincos(theta)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [][2]float64{{0, -ext.Ascent}, {ext.Width, -ext.Ascent}, {0, ext.Descent}, {ext.Width, ext.Descent}} {
		px := x + p[0]*cos + p[1]*sin
		py := y - p[0]*sin + p[1]*cos
		minX, maxX = math.Min(minX, px), math.Max(maxX, px)
		minY, maxY = math.Min(minY, py), math.Max(maxY, py)
	}
	return c.paint(around(minX, minY, maxX, maxY, 2), func(dc *gg.Context, ox, oy float64) error {
		dc.SetFont(f)
		dc.SetColor(col)
		if theta != 0 {
			// gg rotates clockwise on a y-down surface
			dc.RotateAbout(-theta, x-ox, y-oy)
		}
		dc.DrawString(s, x-ox, y-oy)
		return nil
	})
}
