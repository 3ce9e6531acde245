package edp

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func init() {
	SetLogOutput(io.Discard)
}

// newField builds a loaded field over lattice with n samples per axis.
// Values come from fn and are stored as given (potential file semantics).
func newField(t *testing.T, lattice [3][3]float64, n [3]int, fn func(i, j, k int) float64) *ScalarField {
	t.Helper()
	cell, err := NewUnitCell(lattice, 1)
	require.NoError(t, err)
	sf, err := NewScalarField("test", cell, n[0], n[1], n[2], true, nil)
	require.NoError(t, err)
	raw := make([]float64, sf.Size())
	for k := 0; k < n[2]; k++ {
		for j := 0; j < n[1]; j++ {
			for i := 0; i < n[0]; i++ {
				raw[sf.idx(i, j, k)] = fn(i, j, k)
			}
		}
	}
	require.NoError(t, sf.LoadGrid(raw))
	return sf
}

func cubic(side float64) [3][3]float64 {
	return [3][3]float64{{side, 0, 0}, {0, side, 0}, {0, 0, side}}
}

// hexagonal is a non-orthogonal cell with a 120 degree angle.
func hexagonal() [3][3]float64 {
	return [3][3]float64{{3, 0, 0}, {-1.5, 2.598076211353316, 0}, {0, 0, 5}}
}

// smooth is a deterministic, non-symmetric test function.
func smooth(i, j, k int) float64 {
	return 1 + float64(i) + 2*float64(j)*float64(j) + 0.5*float64(k) + 0.1*float64(i*j*k)
}
