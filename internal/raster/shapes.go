package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/gg"
)

// paint runs fn on a gg context covering r and writes the result back.
// fn gets the offset of r so it can draw in canvas coordinates.
func (c *Canvas) paint(r image.Rectangle, fn func(dc *gg.Context, ox, oy float64) error) error {
	r = r.Intersect(c.img.Rect)
	if r.Empty() {
		return nil
	}
	dc := gg.NewContextForImage(c.img.SubImage(r))
	defer func() { _ = dc.Close() }()
	if err := fn(dc, float64(r.Min.X), float64(r.Min.Y)); err != nil {
		return err
	}
	if err := dc.FlushGPU(); err != nil {
		return err
	}
	draw.Draw(c.img, r, dc.Image(), image.Point{}, draw.Src)
	return nil
}

// around returns the pixel box covering (x0,y0)-(x1,y1) grown by pad.
func around(x0, y0, x1, y1, pad float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(math.Min(x0, x1)-pad)), int(math.Floor(math.Min(y0, y1)-pad)),
		int(math.Ceil(math.Max(x0, x1)+pad)), int(math.Ceil(math.Max(y0, y1)+pad)),
	)
}

// Line strokes a segment from (x0,y0) to (x1,y1).
func (c *Canvas) Line(x0, y0, x1, y1 float64, col color.NRGBA, lineWidth float64) error {
	if lineWidth <= 0 {
		lineWidth = 1
	}
	return c.paint(around(x0, y0, x1, y1, lineWidth+1), func(dc *gg.Context, ox, oy float64) error {
		dc.SetColor(col)
		dc.SetLineWidth(lineWidth)
		dc.DrawLine(x0-ox, y0-oy, x1-ox, y1-oy)
		return dc.Stroke()
	})
}

// FilledCircle fills a disc of the given radius around (cx,cy).
func (c *Canvas) FilledCircle(cx, cy, radius float64, col color.NRGBA) error {
	if radius <= 0 {
		return nil
	}
	return c.paint(around(cx, cy, cx, cy, radius+1), func(dc *gg.Context, ox, oy float64) error {
		dc.SetColor(col)
		dc.DrawCircle(cx-ox, cy-oy, radius)
		return dc.Fill()
	})
}

// EmptyCircle strokes the outline of a circle.
func (c *Canvas) EmptyCircle(cx, cy, radius float64, col color.NRGBA, lineWidth float64) error {
	if lineWidth <= 0 {
		lineWidth = 1
	}
	return c.paint(around(cx, cy, cx, cy, radius+lineWidth+1), func(dc *gg.Context, ox, oy float64) error {
		dc.SetColor(col)
		dc.SetLineWidth(lineWidth)
		dc.DrawCircle(cx-ox, cy-oy, radius)
		return dc.Stroke()
	})
}
