package edp

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"sync/atomic"

	"github.com/lukaszgryglicki/edp/internal/raster"
)

// RayCaster renders the field by marching rays along one lattice axis and
// compositing a log density driven alpha.
type RayCaster struct {
	Width, Height  int
	Samples        int     // samples per ray
	DensityScaling float64 // alpha exponent
	FrontToBack    bool    // stop marching once the ray is opaque
	Axis           int     // lattice axis the rays travel along

	field          *ScalarField
	ramp           *ColorRamp
	minVal, maxVal float64
	pixels         []color.NRGBA
}

// NewRayCaster creates a caster with default resolution, sample count and
// axis. The alpha range is [0, log10(1+max)] of the loaded field.
func NewRayCaster(sf *ScalarField, paletteID int) (*RayCaster, error) {
	if !sf.Loaded() {
		return nil, ErrNotLoaded
	}
	ramp, err := NewColorRamp(0, 1, paletteID)
	if err != nil {
		return nil, err
	}
	return &RayCaster{
		Width:          RayWidth,
		Height:         RayHeight,
		Samples:        RaySamples,
		DensityScaling: DensityScaling,
		FrontToBack:    true,
		Axis:           RayAxis,
		field:          sf,
		ramp:           ramp,
		minVal:         0,
		maxVal:         math.Log10(1 + sf.Max()),
	}, nil
}

// Pixels returns the rendered buffer, row-major, nil before Cast.
func (rc *RayCaster) Pixels() []color.NRGBA { return rc.pixels }

// Cast renders every pixel, one row per work item.
func (rc *RayCaster) Cast(ctx context.Context) error {
	if rc.Width <= 0 || rc.Height <= 0 || rc.Samples <= 0 {
		return fmt.Errorf("ray caster needs positive size and samples, got %dx%d/%d", rc.Width, rc.Height, rc.Samples)
	}
	if rc.Axis < 0 || rc.Axis > 2 {
		return fmt.Errorf("ray axis %d: %w", rc.Axis, ErrOutOfRange)
	}
	pixels := make([]color.NRGBA, rc.Width*rc.Height)
	bg := rc.ramp.Color(0)

	var done int64
	nextPrint := int64(rc.Height / 10)
	if nextPrint < 1 {
		nextPrint = 1
	}
	err := parallelFor(ctx, rc.Height, func(lo, hi int) error {
		for y := lo; y < hi; y++ {
			for x := 0; x < rc.Width; x++ {
				pixels[y*rc.Width+x] = rc.castRay(x, y, bg)
			}
			if n := atomic.AddInt64(&done, 1); n%nextPrint == 0 {
				DebugLog("[PROGRESS] %.2f%%", float64(n)*100/float64(rc.Height))
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	rc.pixels = pixels
	return nil
}

// rayPlane returns the lattice axes along the pixel column and row: the two
// axes other than the ray axis, in lattice order.
func rayPlane(axis int) (u, v int) {
	switch axis {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	}
	return 0, 1
}

// castRay accumulates the ray through pixel (x,y).
func (rc *RayCaster) castRay(x, y int, bg color.NRGBA) color.NRGBA {
	u, v := rayPlane(rc.Axis)
	var frac [3]float64
	frac[u] = float64(x) / float64(rc.Width)
	frac[v] = float64(y) / float64(rc.Height)

	var r, g, b, cum float64
	for d := 0; d < rc.Samples; d++ {
		frac[rc.Axis] = float64(d) / float64(rc.Samples)
		p := rc.field.Cell.DirectToRealspace(vec3FromArray(frac))
		val := math.Log10(1 + math.Abs(rc.field.ValueInterp(p)))
		alpha := math.Pow(clamp((val-rc.minVal)/(rc.maxVal-rc.minVal), 0, 1), rc.DensityScaling)
		if math.IsNaN(alpha) {
			alpha = 0
		}
		col := rc.ramp.Color(alpha)
		if rc.FrontToBack && cum+alpha > 1 {
			// the sample picks its color by density but only fills what is left
			alpha = 1 - cum
		}
		r += alpha * float64(col.R) / 255
		g += alpha * float64(col.G) / 255
		b += alpha * float64(col.B) / 255
		cum += alpha
		if rc.FrontToBack && cum >= 1 {
			break
		}
	}
	if cum == 0 {
		return bg
	}
	a := 1.0
	if rc.FrontToBack {
		a = math.Min(cum, 1)
	} else {
		r, g, b = r/cum, g/cum, b/cum
	}
	over := func(c float64, under uint8) uint8 {
		return uint8(math.Round(255 * clamp(c+(1-a)*float64(under)/255, 0, 1)))
	}
	return color.NRGBA{R: over(r, bg.R), G: over(g, bg.G), B: over(b, bg.B), A: 255}
}

// Write rasterizes the rendered pixels over the background color and stores
// them as a PNG.
func (rc *RayCaster) Write(filename string) error {
	if rc.pixels == nil {
		return fmt.Errorf("ray caster has not been cast: %w", ErrInvalidState)
	}
	c := raster.New(rc.Width, rc.Height, rc.ramp.Color(0))
	for y := 0; y < rc.Height; y++ {
		for x := 0; x < rc.Width; x++ {
			c.FillRect(x, y, 1, 1, rc.pixels[y*rc.Width+x])
		}
	}
	if err := c.WritePNG(filename); err != nil {
		return fmt.Errorf("writing %s: %v: %w", filename, err, ErrIOFailure)
	}
	Log.Infof("Writing %s", filename)
	return nil
}
