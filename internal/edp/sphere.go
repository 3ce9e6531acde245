package edp

import (
	"context"
	"fmt"
	"math"
)

// ExtractSphereAverage averages the field over spherical shells around
// center for radii 0, step, 2*step, ... up to radius. Shell points are
// wrapped into the unit cell, so shells may extend past its faces.
func ExtractSphereAverage(ctx context.Context, sf *ScalarField, center Vec3, radius, step float64, order int) ([]ProfilePoint, error) {
	if !sf.Loaded() {
		return nil, ErrNotLoaded
	}
	if step <= 0 || !isFinite(step) {
		return nil, fmt.Errorf("radial step must be > 0, got %g", step)
	}
	if radius < 0 {
		return nil, fmt.Errorf("radius must be >= 0, got %g", radius)
	}
	rule, err := Lebedev(order)
	if err != nil {
		return nil, err
	}
	n := int(math.Floor(radius/step+1e-9)) + 1
	out := make([]ProfilePoint, n)
	err = parallelFor(ctx, n, func(lo, hi int) error {
		for k := lo; k < hi; k++ {
			r := float64(k) * step
			sum := 0.0
			for _, q := range rule {
				sum += q.Weight * sf.ValueWrapped(center.Add(q.Dir.Mul(r)))
			}
			out[k] = ProfilePoint{X: r, Y: sum}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	DebugLog("Spherical average: %d shells, %d-point rule", n, len(rule))
	return out, nil
}
