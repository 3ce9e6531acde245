package edp

import (
	"fmt"
	"math"
	"path/filepath"
)

// LegendEntry is one swatch of the legend: a raw value and its label.
type LegendEntry struct {
	Value float64
	Label string
}

// LegendEntries lists the decades of the scale from the top of the legend
// down. With negative values allowed the negative decades follow the
// positive ones in mirrored order.
func LegendEntries(s LogScale) []LegendEntry {
	var out []LegendEntry
	lo, hi := int(math.Ceil(s.Min)), int(math.Floor(s.Max))
	for k := hi; k >= lo; k-- {
		out = append(out, LegendEntry{Value: math.Pow(10, float64(k)), Label: fmt.Sprintf("10^%d", k)})
	}
	if s.AllowNegative {
		for k := lo; k <= hi; k++ {
			out = append(out, LegendEntry{Value: -math.Pow(10, float64(k)), Label: fmt.Sprintf("-10^%d", k)})
		}
	}
	return out
}

// Units returns the physical unit of the field values.
func (sf *ScalarField) Units() string {
	if sf.IsLocpot {
		return "eV"
	}
	return "electrons/Å³"
}

// DrawLegend stacks one color swatch per decade in the top-right corner of
// the image, each labeled with its exponent.
func (p *PlaneProjector) DrawLegend() error {
	if err := p.require("legend", StatePlotted, StateIsolinesDrawn); err != nil {
		return err
	}
	c := p.canvas
	const margin = 8
	sw := int(clamp(float64(c.Height)/25, 8, 32))
	size := math.Max(8, float64(sw)*0.8)

	entries := LegendEntries(p.scaling)
	labelW := 0.0
	for _, e := range entries {
		ext, err := c.TextBounds(size, e.Label)
		if err != nil {
			return err
		}
		labelW = math.Max(labelW, ext.Width)
	}
	units := p.field.Units()
	uext, err := c.TextBounds(size, units)
	if err != nil {
		return err
	}
	x0 := c.Width - margin - sw - int(labelW) - 4
	if ux := c.Width - margin - int(uext.Width); ux < x0 {
		x0 = ux
	}
	y := margin + int(uext.Height())
	if err := shadowText(p, float64(x0), float64(margin)+uext.Ascent, size, units); err != nil {
		return err
	}
	for _, e := range entries {
		c.FillRect(x0, y, sw, sw, p.ramp.Color(p.scaling.Normalize(e.Value)))
		c.EmptyRect(x0, y, sw, sw, colorBlack, 1)
		if err := shadowText(p, float64(x0+sw+4), float64(y+sw)-size*0.2, size, e.Label); err != nil {
			return err
		}
		y += sw
	}
	p.state = StateLegendDrawn
	return nil
}

// shadowText draws black text offset by one pixel and white text on top.
func shadowText(p *PlaneProjector, x, y, size float64, text string) error {
	if err := p.canvas.Text(x+1, y+1, size, 0, colorBlack, text); err != nil {
		return err
	}
	return p.canvas.Text(x, y, size, 0, colorWhite, text)
}

// Write stores the image at filename and the cropped sample grid and mask
// as binary dumps in the same directory.
func (p *PlaneProjector) Write(filename string) error {
	if err := p.require("write", StatePlotted, StateWritten); err != nil {
		return err
	}
	if err := p.canvas.WritePNG(filename); err != nil {
		return fmt.Errorf("writing %s: %v: %w", filename, err, ErrIOFailure)
	}
	Log.Infof("Writing %s", filename)
	dir := filepath.Dir(filename)
	realPath := filepath.Join(dir, PlaneDataReal)
	if err := p.grid.SaveReal(realPath); err != nil {
		return fmt.Errorf("writing %s: %v: %w", realPath, err, ErrIOFailure)
	}
	maskPath := filepath.Join(dir, PlaneDataBool)
	if err := p.grid.SaveMask(maskPath); err != nil {
		return fmt.Errorf("writing %s: %v: %w", maskPath, err, ErrIOFailure)
	}
	p.state = StateWritten
	return nil
}
