package edp

import (
	"context"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plottedWithAtoms cuts the z=2 plane of a 4 Å cube holding one atom inside
// the plane, one on the cell corner edge and one far from the plane.
func plottedWithAtoms(t *testing.T) *PlaneProjector {
	t.Helper()
	cell, err := NewUnitCell(cubic(4), 1)
	require.NoError(t, err)
	sf, err := NewScalarField("LOCPOT", cell, 4, 4, 4, true, []Atom{
		{Element: "C", Direct: Vec3{0.25, 0.5, 0.5}},
		{Element: "O", Direct: Vec3{0, 0, 0.5}},
		{Element: "H", Direct: Vec3{0.5, 0.5, 0.9}},
	})
	require.NoError(t, err)
	raw := make([]float64, sf.Size())
	for i := range raw {
		raw[i] = 1 + float64(i%5)
	}
	require.NoError(t, sf.LoadGrid(raw))

	p := NewPlaneProjector(sf, PaletteRedBlue)
	require.NoError(t, p.SetScaling(false, LogMin, LogMax))
	require.NoError(t, p.Extract(context.Background(), axisX, axisY, Vec3{2, 2, 2}, 10, -4, 4, -4, 4))
	require.Equal(t, 41, p.Grid().Width)
	return p
}

func TestAtomsInPlane(t *testing.T) {
	p := plottedWithAtoms(t)
	markers, err := p.AtomsInPlane(0.5)
	require.NoError(t, err)
	// the corner atom shows up at all four corners of the crop
	require.Len(t, markers, 5)
	counts := map[string]int{}
	for _, m := range markers {
		counts[m.Element]++
		assert.InDelta(t, 0, m.Dist, 1e-9)
	}
	assert.Equal(t, map[string]int{"C": 1, "O": 4}, counts)
	for _, m := range markers {
		if m.Element == "C" {
			assert.InDelta(t, 10, m.X, 1e-9)
			assert.InDelta(t, 20, m.Y, 1e-9)
		}
	}

	markers, err = p.AtomsInPlane(2)
	require.NoError(t, err)
	assert.Len(t, markers, 6)
}

// nearColor allows for the anti-aliased edges of strokes and fills.
func nearColor(want, got color.NRGBA) bool {
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	return d(want.R, got.R) < 48 && d(want.G, got.G) < 48 && d(want.B, got.B) < 48 && d(want.A, got.A) < 48
}

func TestMarkAtomsDrawsCircles(t *testing.T) {
	p := plottedWithAtoms(t)
	_, err := p.MarkAtoms(0.5)
	assert.ErrorIs(t, err, ErrInvalidState)
	require.NoError(t, p.Plot())
	n, err := p.MarkAtoms(0.5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	// right-hand point of the carbon circle, radius 3 around pixel 10,20
	assert.True(t, nearColor(colorBlack, p.Canvas().At(13, 20)), "ring %v", p.Canvas().At(13, 20))
	assert.True(t, nearColor(colorWhite, p.Canvas().At(10, 20)), "center %v", p.Canvas().At(10, 20))
	assert.Equal(t, StatePlotted, p.State())
}

func TestExtractRejectsParallelVectors(t *testing.T) {
	sf := newField(t, cubic(4), [3]int{4, 4, 4}, positive)
	p := NewPlaneProjector(sf, PaletteRedBlue)
	require.NoError(t, p.SetScaling(false, LogMin, LogMax))
	assert.Error(t, p.Extract(context.Background(), axisX, axisX.Mul(-2), Vec3{2, 2, 2}, 10, -4, 4, -4, 4))
}

func TestDrawScaleBar(t *testing.T) {
	p := plottedWithAtoms(t)
	require.NoError(t, p.Plot())
	require.NoError(t, p.DrawScaleBar())
	c := p.Canvas()
	y := c.Height - 8
	black := 0
	for x := 0; x < c.Width; x++ {
		if nearColor(colorBlack, c.At(x, y)) {
			black++
		}
	}
	assert.GreaterOrEqual(t, black, 8)

	// too small for any bar
	small := plottedWithAtoms(t)
	small.grid = newPlaneGrid(6, 6, 10)
	small.state = StateExtracted
	require.NoError(t, small.Plot())
	require.NoError(t, small.DrawScaleBar())
	for k := 3; k < len(small.Canvas().Image().Pix); k += 4 {
		assert.Equal(t, uint8(0), small.Canvas().Image().Pix[k])
	}
}
