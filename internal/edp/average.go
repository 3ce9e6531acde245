package edp

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ExtractPlaneAverage averages every grid layer perpendicular to lattice axis
// (0=a, 1=b, 2=c). Row l of the result holds X = l/n_axis and the layer mean.
func ExtractPlaneAverage(ctx context.Context, sf *ScalarField, axis int) ([]ProfilePoint, error) {
	if !sf.Loaded() {
		return nil, ErrNotLoaded
	}
	if axis < 0 || axis > 2 {
		return nil, fmt.Errorf("axis %d: %w", axis, ErrOutOfRange)
	}
	dims := sf.Dims()
	n := dims[axis]
	u, v := dims[(axis+1)%3], dims[(axis+2)%3]
	out := make([]ProfilePoint, n)
	err := parallelFor(ctx, n, func(lo, hi int) error {
		layer := make([]float64, u*v)
		for l := lo; l < hi; l++ {
			for a := 0; a < u; a++ {
				for b := 0; b < v; b++ {
					var ijk [3]int
					ijk[axis] = l
					ijk[(axis+1)%3] = a
					ijk[(axis+2)%3] = b
					layer[a*v+b] = sf.Value(ijk[0], ijk[1], ijk[2])
				}
			}
			out[l] = ProfilePoint{X: float64(l) / float64(n), Y: stat.Mean(layer, nil)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	DebugLog("Averaged %d layers of %d samples along axis %d", n, u*v, axis)
	return out, nil
}
