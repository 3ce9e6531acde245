package edp

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/lukaszgryglicki/edp/internal/raster"
)

// ProjectorState tracks the plane projector lifecycle.
type ProjectorState int

const (
	StateConstructed ProjectorState = iota
	StateScalingSet
	StateExtracted
	StatePlotted
	StateIsolinesDrawn
	StateLegendDrawn
	StateWritten
)

func (s ProjectorState) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateScalingSet:
		return "scaling-set"
	case StateExtracted:
		return "extracted"
	case StatePlotted:
		return "plotted"
	case StateIsolinesDrawn:
		return "isolines-drawn"
	case StateLegendDrawn:
		return "legend-drawn"
	case StateWritten:
		return "written"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	colorBlack       = color.NRGBA{0, 0, 0, 255}
	colorWhite       = color.NRGBA{255, 255, 255, 255}
	colorTransparent = color.NRGBA{}
)

// PlaneProjector cuts a plane through a scalar field and renders it as a
// log-scaled contour image.
type PlaneProjector struct {
	field     *ScalarField
	paletteID int
	scaling   LogScale
	ramp      *ColorRamp
	grid      *PlaneGrid
	canvas    *raster.Canvas
	state     ProjectorState

	// plane geometry of the last Extract, used by the overlays
	origin, v1, v2 Vec3
	hx, hy         int
}

// NewPlaneProjector creates a projector over sf using palette paletteID.
func NewPlaneProjector(sf *ScalarField, paletteID int) *PlaneProjector {
	return &PlaneProjector{field: sf, paletteID: paletteID}
}

// State returns the current lifecycle state.
func (p *PlaneProjector) State() ProjectorState { return p.state }

// Grid returns the (cropped) sample grid, nil before Extract.
func (p *PlaneProjector) Grid() *PlaneGrid { return p.grid }

// Canvas returns the raster, nil before Plot.
func (p *PlaneProjector) Canvas() *raster.Canvas { return p.canvas }

// Scaling returns the log scale set by SetScaling.
func (p *PlaneProjector) Scaling() LogScale { return p.scaling }

// require fails unless the state lies in [min, max]. Steps never move the
// state backwards, so a step that already happened cannot be redone later.
func (p *PlaneProjector) require(op string, min, max ProjectorState) error {
	if p.state < min || p.state > max {
		if min == max {
			return fmt.Errorf("%s in state %s, needs %s: %w", op, p.state, min, ErrInvalidState)
		}
		return fmt.Errorf("%s in state %s, needs %s to %s: %w", op, p.state, min, max, ErrInvalidState)
	}
	return nil
}

// SetScaling fixes the log10 bounds of the color scale. With allowNegative
// the ramp spans [-1,1], otherwise [0,1].
func (p *PlaneProjector) SetScaling(allowNegative bool, logMin, logMax float64) error {
	if err := p.require("set scaling", StateConstructed, StateScalingSet); err != nil {
		return err
	}
	if !(logMax > logMin) {
		return fmt.Errorf("log range [%g, %g]: %w", logMin, logMax, ErrDegenerateRange)
	}
	p.scaling = LogScale{AllowNegative: allowNegative, Min: logMin, Max: logMax}
	lo, hi := p.scaling.Domain()
	ramp, err := NewColorRamp(lo, hi, p.paletteID)
	if err != nil {
		return err
	}
	p.ramp = ramp
	p.state = StateScalingSet
	return nil
}

// Extract samples the plane origin + v1*s + v2*t over the window
// [li,hi]×[lj,hj] (angstrom) at scale pixels per angstrom, then crops the
// result to the samples inside the cell.
func (p *PlaneProjector) Extract(ctx context.Context, v1, v2, origin Vec3, scale, li, hi, lj, hj float64) error {
	if err := p.require("extract", StateScalingSet, StateExtracted); err != nil {
		return err
	}
	if !p.field.Loaded() {
		return ErrNotLoaded
	}
	if scale <= 0 || !isFinite(scale) {
		return fmt.Errorf("scale must be > 0, got %g", scale)
	}
	if v1.Len() == 0 || v2.Len() == 0 {
		return fmt.Errorf("plane vectors must be non-zero, got %+v and %+v", v1, v2)
	}
	v1, v2 = v1.Norm(), v2.Norm()
	if v1.Cross(v2).Len() < 1e-9 {
		return fmt.Errorf("plane vectors %+v and %+v are parallel", v1, v2)
	}

	ix := int(math.Round((hi - li) * scale))
	iy := int(math.Round((hj - lj) * scale))
	if ix <= 0 || iy <= 0 {
		return fmt.Errorf("empty plane window %dx%d", ix, iy)
	}
	Log.Infof("Creating %dx%dpx image", ix, iy)

	g := newPlaneGrid(ix, iy, scale)
	hx, hy := ix/2, iy/2
	err := parallelFor(ctx, iy, func(lo, hi int) error {
		for j := lo; j < hi; j++ {
			for i := 0; i < ix; i++ {
				pt := origin.
					Add(v1.Mul(float64(i-hx) / scale)).
					Add(v2.Mul(float64(j-hy) / scale))
				val := p.field.ValueInterp(pt)
				k := g.idx(i, j)
				g.Real[k] = val
				g.Mask[k] = p.field.IsInside(pt)
				g.Log[k] = p.scaling.Normalize(val)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	p.grid = g
	p.canvas = nil
	p.origin, p.v1, p.v2 = origin, v1, v2
	p.hx, p.hy = hx, hy
	if err := p.cutAndRecast(ctx); err != nil {
		return err
	}
	p.state = StateExtracted
	return nil
}

// cutAndRecast shrinks the grid to the bounding box of its non-zero samples.
// A grid without any non-zero sample is left untouched.
func (p *PlaneProjector) cutAndRecast(ctx context.Context) error {
	g := p.grid
	minX, maxX, minY, maxY, ok, err := g.boundingBox(ctx)
	if err != nil {
		return err
	}
	if !ok {
		Log.Warnf("Plane holds no non-zero sample, keeping %dx%d", g.Width, g.Height)
		return nil
	}
	if minX == 0 && minY == 0 && maxX == g.Width-1 && maxY == g.Height-1 {
		return nil
	}
	Log.Infof("Recasting to [%d:%d] x [%d:%d]", minX, maxX, minY, maxY)
	out, err := g.crop(ctx, minX, maxX, minY, maxY)
	if err != nil {
		return err
	}
	p.grid = out
	return nil
}

// Plot colors every in-cell pixel through the ramp. Pixels outside the cell
// stay fully transparent.
func (p *PlaneProjector) Plot() error {
	if err := p.require("plot", StateExtracted, StatePlotted); err != nil {
		return err
	}
	g := p.grid
	c := raster.New(g.Width, g.Height, colorTransparent)
	for j := 0; j < g.Height; j++ {
		for i := 0; i < g.Width; i++ {
			k := g.idx(i, j)
			if !g.Mask[k] {
				continue
			}
			c.FillRect(i, j, 1, 1, p.ramp.Color(g.Log[k]))
		}
	}
	p.canvas = c
	p.state = StatePlotted
	return nil
}
