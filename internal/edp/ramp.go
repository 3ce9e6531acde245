package edp

import (
	"fmt"
	"image/color"
	"math"
)

// ColorRamp maps scalars in [Low,High] onto a piecewise-linear gradient.
type ColorRamp struct {
	Low, High float64
	stops     []color.NRGBA
}

// NewColorRamp builds a ramp over [low,high] using palette id.
func NewColorRamp(low, high float64, id int) (*ColorRamp, error) {
	return NewColorRampStops(low, high, PaletteStops(id))
}

// NewColorRampStops builds a ramp from explicit stops.
func NewColorRampStops(low, high float64, stops []color.NRGBA) (*ColorRamp, error) {
	if !(high > low) {
		return nil, fmt.Errorf("ramp [%g, %g]: %w", low, high, ErrDegenerateRange)
	}
	if len(stops) < 2 {
		return nil, fmt.Errorf("ramp needs at least 2 stops, got %d", len(stops))
	}
	s := make([]color.NRGBA, len(stops))
	copy(s, stops)
	return &ColorRamp{Low: low, High: high, stops: s}, nil
}

// Stops returns a copy of the ramp stops.
func (c *ColorRamp) Stops() []color.NRGBA {
	s := make([]color.NRGBA, len(c.stops))
	copy(s, c.stops)
	return s
}

// Color interpolates the color of v. Values at or beyond the ends return
// the end stops verbatim.
func (c *ColorRamp) Color(v float64) color.NRGBA {
	n := len(c.stops)
	if math.IsNaN(v) || v <= c.Low {
		return c.stops[0]
	}
	if v >= c.High {
		return c.stops[n-1]
	}
	binsize := (c.High - c.Low) / float64(n-1)
	bin := int(math.Floor((v - c.Low) / binsize))
	if bin >= n-1 {
		return c.stops[n-1]
	}
	residual := (v - c.Low - float64(bin)*binsize) / binsize
	a, b := c.stops[bin], c.stops[bin+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(residual*float64(y) + (1-residual)*float64(x)))
	}
	return color.NRGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: lerp(a.A, b.A),
	}
}

// LogScale maps a raw value onto a ramp domain of [0,1] (or [-1,1] when
// negative values are allowed) by its clamped log10 magnitude.
type LogScale struct {
	AllowNegative bool
	Min, Max      float64 // log10 bounds
}

// Normalize returns sign(v)*(clamp(log10|v|)-Min)/(Max-Min+1). In the
// positive-only mode non-positive values sit at the bottom of the scale.
func (s LogScale) Normalize(v float64) float64 {
	if !s.AllowNegative {
		l := NonPositiveLog
		if v > 0 {
			l = math.Log10(v)
		}
		return (clamp(l, s.Min, s.Max) - s.Min) / (s.Max - s.Min + 1)
	}
	if v == 0 {
		return 0
	}
	l := clamp(math.Log10(math.Abs(v)), s.Min, s.Max)
	return sign(v) * (l - s.Min) / (s.Max - s.Min + 1)
}

// Domain returns the ramp range matching the scale.
func (s LogScale) Domain() (float64, float64) {
	if s.AllowNegative {
		return -1, 1
	}
	return 0, 1
}
