package edp

import (
	"context"
	"fmt"
	"math"
)

// ExtractLine samples the field along origin + dir*t for t in [li,hi] at
// scale samples per angstrom. Only points with a non-zero value are kept,
// in order of increasing t.
func ExtractLine(ctx context.Context, sf *ScalarField, dir, origin Vec3, scale, li, hi float64) ([]LinePoint, error) {
	if !sf.Loaded() {
		return nil, ErrNotLoaded
	}
	if scale <= 0 || !isFinite(scale) {
		return nil, fmt.Errorf("scale must be > 0, got %g", scale)
	}
	if dir.Len() == 0 {
		return nil, fmt.Errorf("line direction must be non-zero")
	}
	dir = dir.Norm()
	n := int(math.Round((hi - li) * scale))
	if n <= 0 {
		return nil, fmt.Errorf("empty line window %g..%g", li, hi)
	}
	half := n / 2
	pts := make([]LinePoint, n)
	err := parallelFor(ctx, n, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			pt := origin.Add(dir.Mul(float64(i-half) / scale))
			pts[i] = LinePoint{Pos: pt, Value: sf.ValueInterp(pt)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := pts[:0]
	for _, p := range pts {
		if p.Value != 0 {
			out = append(out, p)
		}
	}
	Log.Infof("Line cut kept %d of %d samples", len(out), n)
	return out, nil
}

// LineProfile turns a line cut into a profile of value against the distance
// from the first kept point.
func LineProfile(pts []LinePoint) []ProfilePoint {
	out := make([]ProfilePoint, len(pts))
	for i, p := range pts {
		out[i] = ProfilePoint{X: p.Pos.Sub(pts[0].Pos).Len(), Y: p.Value}
	}
	return out
}
