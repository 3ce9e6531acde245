package edp

import "context"

// PlaneGrid holds the samples of a planar cut as parallel arrays
// indexed j*Width + i.
type PlaneGrid struct {
	Width, Height    int
	Real             []float64 // interpolated field values
	Log              []float64 // log-normalized ramp coordinates
	Mask             []bool    // sample point lies inside the unit cell
	Scale            float64   // pixels per angstrom
	OffsetX, OffsetY int       // cumulative crop offsets
}

func newPlaneGrid(w, h int, scale float64) *PlaneGrid {
	n := w * h
	return &PlaneGrid{
		Width:  w,
		Height: h,
		Real:   make([]float64, n),
		Log:    make([]float64, n),
		Mask:   make([]bool, n),
		Scale:  scale,
	}
}

func (g *PlaneGrid) idx(i, j int) int {
	return j*g.Width + i
}

// Sum returns the sum of all raw samples.
func (g *PlaneGrid) Sum() float64 {
	s := 0.0
	for _, v := range g.Real {
		s += v
	}
	return s
}

// boundingBox finds the inclusive rectangle holding every sample that is
// not exactly zero. Rows are scanned in parallel.
func (g *PlaneGrid) boundingBox(ctx context.Context) (minX, maxX, minY, maxY int, ok bool, err error) {
	rowMin := make([]int, g.Height)
	rowMax := make([]int, g.Height)
	err = parallelFor(ctx, g.Height, func(lo, hi int) error {
		for j := lo; j < hi; j++ {
			rowMin[j], rowMax[j] = -1, -1
			for i := 0; i < g.Width; i++ {
				if g.Real[g.idx(i, j)] != 0.0 {
					if rowMin[j] < 0 {
						rowMin[j] = i
					}
					rowMax[j] = i
				}
			}
		}
		return nil
	})
	if err != nil {
		return
	}
	minX, maxX, minY, maxY = g.Width, -1, g.Height, -1
	for j := 0; j < g.Height; j++ {
		if rowMin[j] < 0 {
			continue
		}
		ok = true
		if j < minY {
			minY = j
		}
		maxY = j
		if rowMin[j] < minX {
			minX = rowMin[j]
		}
		if rowMax[j] > maxX {
			maxX = rowMax[j]
		}
	}
	return
}

// crop returns a freshly allocated grid restricted to [minX,maxX]×[minY,maxY].
func (g *PlaneGrid) crop(ctx context.Context, minX, maxX, minY, maxY int) (*PlaneGrid, error) {
	out := newPlaneGrid(maxX-minX+1, maxY-minY+1, g.Scale)
	out.OffsetX = g.OffsetX + minX
	out.OffsetY = g.OffsetY + minY
	err := parallelFor(ctx, out.Height, func(lo, hi int) error {
		for j := lo; j < hi; j++ {
			src := g.idx(minX, j+minY)
			dst := out.idx(0, j)
			copy(out.Real[dst:dst+out.Width], g.Real[src:src+out.Width])
			copy(out.Log[dst:dst+out.Width], g.Log[src:src+out.Width])
			copy(out.Mask[dst:dst+out.Width], g.Mask[src:src+out.Width])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
