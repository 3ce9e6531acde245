package edp

import (
	"context"
	"math"
)

// IsolineLevels returns the contour values drawn by Isolines. With negative
// values allowed every integer decade in [logMin,logMax] is drawn on both
// signs; otherwise bins+1 evenly spaced decades are used. Zero is always a
// level.
func IsolineLevels(s LogScale, bins int) []float64 {
	levels := []float64{0}
	if s.AllowNegative {
		for k := math.Ceil(s.Min); k <= math.Floor(s.Max); k++ {
			v := math.Pow(10, k)
			levels = append(levels, v, -v)
		}
		return levels
	}
	if bins < 1 {
		return append(levels, math.Pow(10, s.Min))
	}
	step := (s.Max - s.Min) / float64(bins)
	for n := 0; n <= bins; n++ {
		levels = append(levels, math.Pow(10, s.Min+float64(n)*step))
	}
	return levels
}

// Isolines blacks out every interior pixel across which a level is
// crossed, comparing the neighbours on opposite sides of the pixel along
// either axis. The 1-pixel border is never marked.
func (p *PlaneProjector) Isolines(ctx context.Context, bins int) error {
	if err := p.require("isolines", StatePlotted, StatePlotted); err != nil {
		return err
	}
	levels := IsolineLevels(p.scaling, bins)
	g := p.grid
	hit := make([]bool, len(g.Real))
	err := parallelFor(ctx, g.Height, func(lo, hi int) error {
		for j := lo; j < hi; j++ {
			if j == 0 || j == g.Height-1 {
				continue
			}
			for i := 1; i < g.Width-1; i++ {
				for _, l := range levels {
					if g.isCrossing(i, j, l) {
						hit[g.idx(i, j)] = true
						break
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	n := 0
	for j := 0; j < g.Height; j++ {
		for i := 0; i < g.Width; i++ {
			if hit[g.idx(i, j)] {
				p.canvas.FillRect(i, j, 1, 1, colorBlack)
				n++
			}
		}
	}
	DebugLog("Drew %d isoline pixels over %d levels", n, len(levels))
	p.state = StateIsolinesDrawn
	return nil
}

// isCrossing reports whether val lies strictly between the two vertical or
// the two horizontal neighbours of interior pixel (i,j).
func (g *PlaneGrid) isCrossing(i, j int, val float64) bool {
	up, down := g.Real[g.idx(i, j-1)], g.Real[g.idx(i, j+1)]
	if (up < val && down > val) || (up > val && down < val) {
		return true
	}
	left, right := g.Real[g.idx(i-1, j)], g.Real[g.idx(i+1, j)]
	return (left < val && right > val) || (left > val && right < val)
}
