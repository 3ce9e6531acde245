// Package raster is a small RGBA drawing surface with PNG output.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

// Canvas is a width × height RGBA surface. Rectangles replace the pixels
// they cover, alpha included. Lines, circles and text are anti-aliased and
// composited over them.
type Canvas struct {
	Width, Height int
	img           *image.NRGBA
}

// New allocates a canvas filled with bg.
func New(width, height int, bg color.NRGBA) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{Width: width, Height: height, img: image.NewNRGBA(image.Rect(0, 0, width, height))}
	c.FillRect(0, 0, width, height, bg)
	return c
}

// Image exposes the backing image.
func (c *Canvas) Image() *image.NRGBA { return c.img }

// At returns the pixel at (x,y).
func (c *Canvas) At(x, y int) color.NRGBA {
	return c.img.NRGBAAt(x, y)
}

// FillRect paints the w × h rectangle whose top-left corner is (x,y).
func (c *Canvas) FillRect(x, y, w, h int, col color.NRGBA) {
	r := image.Rect(x, y, x+w, y+h).Intersect(c.img.Rect)
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// EmptyRect draws the border of a rectangle with the given line width.
func (c *Canvas) EmptyRect(x, y, w, h int, col color.NRGBA, lineWidth int) {
	if lineWidth < 1 {
		lineWidth = 1
	}
	c.FillRect(x, y, w, lineWidth, col)
	c.FillRect(x, y+h-lineWidth, w, lineWidth, col)
	c.FillRect(x, y, lineWidth, h, col)
	c.FillRect(x+w-lineWidth, y, lineWidth, h, col)
}

// WritePNG encodes the canvas as a PNG file, creating parent directories.
func (c *Canvas) WritePNG(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, c.img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
