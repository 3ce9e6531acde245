package edp

import (
	"fmt"
	"math"
)

// AtomMarker is an atom lying close to the cut plane, in canvas pixels.
type AtomMarker struct {
	Index   int
	Element string
	X, Y    float64
	Dist    float64 // distance from the plane in angstrom
}

// planeCoords maps a Cartesian point onto the cropped grid. x and y are
// pixel indices (not centers), dist is the distance from the plane.
func (p *PlaneProjector) planeCoords(pt Vec3) (x, y, dist float64) {
	d := pt.Sub(p.origin)
	b := p.v1.Dot(p.v2)
	det := 1 - b*b
	d1, d2 := d.Dot(p.v1), d.Dot(p.v2)
	s := (d1 - b*d2) / det
	t := (d2 - b*d1) / det
	rest := d.Sub(p.v1.Mul(s)).Sub(p.v2.Mul(t))
	g := p.grid
	x = s*g.Scale + float64(p.hx-g.OffsetX)
	y = t*g.Scale + float64(p.hy-g.OffsetY)
	return x, y, rest.Len()
}

// AtomsInPlane lists atoms and their periodic images within tol angstrom of
// the plane that fall onto the cropped grid.
func (p *PlaneProjector) AtomsInPlane(tol float64) ([]AtomMarker, error) {
	if err := p.require("atoms in plane", StateExtracted, StateWritten); err != nil {
		return nil, err
	}
	g := p.grid
	var out []AtomMarker
	for i, a := range p.field.Atoms {
		for dx := -1.0; dx <= 1; dx++ {
			for dy := -1.0; dy <= 1; dy++ {
				for dz := -1.0; dz <= 1; dz++ {
					pt := p.field.Cell.DirectToRealspace(a.Direct.Add(Vec3{dx, dy, dz}))
					x, y, dist := p.planeCoords(pt)
					if dist > tol {
						continue
					}
					if x < -0.5 || y < -0.5 || x > float64(g.Width)-0.5 || y > float64(g.Height)-0.5 {
						continue
					}
					out = append(out, AtomMarker{Index: i, Element: a.Element, X: x, Y: y, Dist: dist})
				}
			}
		}
	}
	DebugLog("%d atom images within %g A of the plane", len(out), tol)
	return out, nil
}

// MarkAtoms circles the atoms within tol angstrom of the plane and labels
// them with their element. It returns the number of markers drawn.
func (p *PlaneProjector) MarkAtoms(tol float64) (int, error) {
	if err := p.require("mark atoms", StatePlotted, StateIsolinesDrawn); err != nil {
		return 0, err
	}
	markers, err := p.AtomsInPlane(tol)
	if err != nil {
		return 0, err
	}
	r := math.Max(3, 0.3*p.grid.Scale)
	size := math.Max(8, r)
	for _, m := range markers {
		cx, cy := m.X+0.5, m.Y+0.5
		if err := p.canvas.EmptyCircle(cx, cy, r, colorBlack, 1.5); err != nil {
			return 0, err
		}
		if err := p.canvas.FilledCircle(cx, cy, 1, colorWhite); err != nil {
			return 0, err
		}
		if err := shadowText(p, cx+r+2, cy-r, size, m.Element); err != nil {
			return 0, err
		}
	}
	return len(markers), nil
}

// scaleBarLengths are the bar lengths tried, in angstrom.
var scaleBarLengths = []float64{20, 10, 5, 2, 1, 0.5}

// DrawScaleBar draws an L-shaped bar in the bottom-left corner: the
// horizontal arm runs along v1, the vertical one along v2. Its length is
// the largest of scaleBarLengths fitting a quarter of the image. Images too
// small for a 4 pixel bar are left alone.
func (p *PlaneProjector) DrawScaleBar() error {
	if err := p.require("scale bar", StatePlotted, StateIsolinesDrawn); err != nil {
		return err
	}
	c := p.canvas
	limit := math.Min(float64(c.Width), float64(c.Height)) / 4
	length := 0.0
	for _, l := range scaleBarLengths {
		if l*p.grid.Scale <= limit {
			length = l
			break
		}
	}
	px := length * p.grid.Scale
	if px < 4 {
		DebugLogOnce("Image %dx%d too small for a scale bar", c.Width, c.Height)
		return nil
	}
	const margin = 8
	size := math.Max(8, float64(c.Height)/40)
	label := fmt.Sprintf("%g Å", length)
	ext, err := c.TextBounds(size, label)
	if err != nil {
		return err
	}
	x0 := float64(margin) + ext.Height() + 2
	y0 := float64(c.Height - margin)
	if err := c.Line(x0, y0, x0+px, y0, colorBlack, 2); err != nil {
		return err
	}
	if err := c.Line(x0, y0, x0, y0-px, colorBlack, 2); err != nil {
		return err
	}
	if err := shadowText(p, x0+4, y0-4, size, label); err != nil {
		return err
	}
	// the vertical label reads bottom to top, left of the bar
	if err := c.Text(x0-3+1, y0-2+1, size, 90, colorBlack, label); err != nil {
		return err
	}
	return c.Text(x0-3, y0-2, size, 90, colorWhite, label)
}
