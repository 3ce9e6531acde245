package edp

import (
	"bufio"
	"context"
	"encoding/binary"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	axisX = Vec3{1, 0, 0}
	axisY = Vec3{0, 1, 0}
	axisZ = Vec3{0, 0, 1}
)

func positive(i, j, k int) float64 { return 1 + float64(i+j+k) }

func TestProjectorEnforcesOrder(t *testing.T) {
	ctx := context.Background()
	sf := newField(t, cubic(4), [3]int{4, 4, 4}, positive)
	p := NewPlaneProjector(sf, PaletteRedBlue)
	assert.Equal(t, StateConstructed, p.State())

	assert.ErrorIs(t, p.Extract(ctx, axisX, axisY, Vec3{2, 2, 2}, 10, -4, 4, -4, 4), ErrInvalidState)
	assert.ErrorIs(t, p.Plot(), ErrInvalidState)
	assert.ErrorIs(t, p.Isolines(ctx, 3), ErrInvalidState)
	assert.ErrorIs(t, p.DrawLegend(), ErrInvalidState)
	assert.ErrorIs(t, p.Write(filepath.Join(t.TempDir(), "x.png")), ErrInvalidState)

	assert.ErrorIs(t, p.SetScaling(false, 2, 2), ErrDegenerateRange)
	require.NoError(t, p.SetScaling(false, LogMin, LogMax))
	require.NoError(t, p.SetScaling(true, LogMin, LogMax))
	assert.Equal(t, StateScalingSet, p.State())

	require.NoError(t, p.Extract(ctx, axisX, axisY, Vec3{2, 2, 2}, 10, -4, 4, -4, 4))
	assert.Equal(t, StateExtracted, p.State())
	assert.ErrorIs(t, p.SetScaling(false, LogMin, LogMax), ErrInvalidState)
	assert.ErrorIs(t, p.Isolines(ctx, 3), ErrInvalidState)

	require.NoError(t, p.Plot())
	assert.ErrorIs(t, p.Extract(ctx, axisX, axisY, Vec3{2, 2, 2}, 10, -4, 4, -4, 4), ErrInvalidState)
	require.NoError(t, p.Isolines(ctx, 3))
	assert.Equal(t, StateIsolinesDrawn, p.State())
	assert.ErrorIs(t, p.Isolines(ctx, 3), ErrInvalidState)
	assert.ErrorIs(t, p.Plot(), ErrInvalidState)
	require.NoError(t, p.DrawLegend())
	assert.Equal(t, StateLegendDrawn, p.State())

	// steps already taken cannot run again over the legend
	assert.ErrorIs(t, p.Isolines(ctx, 3), ErrInvalidState)
	assert.ErrorIs(t, p.DrawLegend(), ErrInvalidState)
	assert.ErrorIs(t, p.DrawScaleBar(), ErrInvalidState)
	_, err := p.MarkAtoms(1)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, StateLegendDrawn, p.State())

	require.NoError(t, p.Write(filepath.Join(t.TempDir(), "x.png")))
	assert.Equal(t, StateWritten, p.State())
	assert.Equal(t, "written", p.State().String())
	assert.ErrorIs(t, p.DrawLegend(), ErrInvalidState)
	assert.ErrorIs(t, p.SetScaling(false, LogMin, LogMax), ErrInvalidState)
}

func TestExtractRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	sf := newField(t, cubic(4), [3]int{4, 4, 4}, positive)
	p := NewPlaneProjector(sf, PaletteRedBlue)
	require.NoError(t, p.SetScaling(false, LogMin, LogMax))
	assert.Error(t, p.Extract(ctx, axisX, axisY, Vec3{}, 0, -4, 4, -4, 4))
	assert.Error(t, p.Extract(ctx, Vec3{}, axisY, Vec3{}, 10, -4, 4, -4, 4))
	assert.Error(t, p.Extract(ctx, axisX, axisY, Vec3{}, 10, 4, 4, -4, 4))

	cell, err := NewUnitCell(cubic(4), 1)
	require.NoError(t, err)
	empty, err := NewScalarField("empty", cell, 2, 2, 2, false, nil)
	require.NoError(t, err)
	q := NewPlaneProjector(empty, PaletteRedBlue)
	require.NoError(t, q.SetScaling(false, LogMin, LogMax))
	assert.ErrorIs(t, q.Extract(ctx, axisX, axisY, Vec3{}, 10, -4, 4, -4, 4), ErrNotLoaded)
}

func TestExtractCropsToCell(t *testing.T) {
	ctx := context.Background()
	sf := newField(t, cubic(4), [3]int{4, 4, 4}, positive)
	p := NewPlaneProjector(sf, PaletteRedBlue)
	require.NoError(t, p.SetScaling(false, LogMin, LogMax))
	require.NoError(t, p.Extract(ctx, axisX.Mul(3), axisY, Vec3{2, 2, 2}, 10, -4, 4, -4, 4))

	g := p.Grid()
	assert.Equal(t, 41, g.Width)
	assert.Equal(t, 41, g.Height)
	assert.Equal(t, 20, g.OffsetX)
	assert.Equal(t, 20, g.OffsetY)
	assert.Equal(t, 10.0, g.Scale)
	for k := range g.Real {
		assert.True(t, g.Mask[k])
		assert.NotZero(t, g.Real[k])
		assert.Equal(t, p.Scaling().Normalize(g.Real[k]), g.Log[k])
	}
	// corner pixel sits on the origin of the cell
	assert.InDelta(t, sf.Value(0, 0, 2), g.Real[0], 1e-9)
}

func TestCropIsIdempotent(t *testing.T) {
	ctx := context.Background()
	sf := newField(t, hexagonal(), [3]int{6, 6, 5}, smooth)
	p := NewPlaneProjector(sf, PaletteRedBlue)
	require.NoError(t, p.SetScaling(false, LogMin, LogMax))
	require.NoError(t, p.Extract(ctx, axisX, axisY, sf.Cell.Center(), 8, -6, 6, -6, 6))
	first := *p.Grid()
	require.NoError(t, p.cutAndRecast(ctx))
	second := *p.Grid()
	assert.Equal(t, first.Width, second.Width)
	assert.Equal(t, first.Height, second.Height)
	assert.Equal(t, first.OffsetX, second.OffsetX)
	assert.Equal(t, first.OffsetY, second.OffsetY)
	assert.Equal(t, first.Real, second.Real)
	// the skewed cell leaves masked-out corners inside the box
	hidden := 0
	for _, in := range second.Mask {
		if !in {
			hidden++
		}
	}
	assert.Greater(t, hidden, 0)
}

func TestCropKeepsAllZeroPlane(t *testing.T) {
	ctx := context.Background()
	sf := newField(t, cubic(4), [3]int{4, 4, 4}, positive)
	p := NewPlaneProjector(sf, PaletteRedBlue)
	require.NoError(t, p.SetScaling(false, LogMin, LogMax))
	require.NoError(t, p.Extract(ctx, axisX, axisY, Vec3{20, 20, 20}, 5, -1, 1, -1, 1))
	assert.Equal(t, 10, p.Grid().Width)
	assert.Equal(t, 10, p.Grid().Height)
	assert.Equal(t, 0, p.Grid().OffsetX)
}

func TestPlotLeavesMaskedPixelsTransparent(t *testing.T) {
	sf := newField(t, cubic(4), [3]int{4, 4, 4}, positive)
	p := NewPlaneProjector(sf, PaletteRedBlue)
	require.NoError(t, p.SetScaling(false, LogMin, LogMax))
	g := newPlaneGrid(2, 1, 1)
	g.Real[0], g.Log[0], g.Mask[0] = 10, p.Scaling().Normalize(10), true
	p.grid = g
	p.state = StateExtracted
	require.NoError(t, p.Plot())
	assert.Equal(t, p.ramp.Color(g.Log[0]), p.Canvas().At(0, 0))
	assert.Equal(t, uint8(0), p.Canvas().At(1, 0).A)
}

func TestIsolineLevels(t *testing.T) {
	neg := IsolineLevels(LogScale{AllowNegative: true, Min: -3, Max: 2}, 6)
	assert.Len(t, neg, 13)
	assert.Contains(t, neg, 0.0)
	assert.Contains(t, neg, -1e-3)
	assert.Contains(t, neg, 100.0)

	pos := IsolineLevels(LogScale{Min: -3, Max: 2}, 5)
	require.Len(t, pos, 7)
	assert.Equal(t, 0.0, pos[0])
	assert.InDelta(t, 1e-3, pos[1], 1e-15)
	assert.InDelta(t, 100, pos[6], 1e-9)

	one := IsolineLevels(LogScale{Min: -3, Max: 2}, 0)
	require.Len(t, one, 2)
	assert.InDelta(t, 1e-3, one[1], 1e-15)
}

func TestIsCrossingIsStrict(t *testing.T) {
	g := newPlaneGrid(3, 3, 1)
	for j := 0; j < 3; j++ {
		g.Real[g.idx(0, j)] = 1
		g.Real[g.idx(1, j)] = 5
		g.Real[g.idx(2, j)] = 10
	}
	assert.True(t, g.isCrossing(1, 1, 2))
	assert.True(t, g.isCrossing(1, 1, 9.99))
	assert.False(t, g.isCrossing(1, 1, 1))
	assert.False(t, g.isCrossing(1, 1, 10))
	assert.False(t, g.isCrossing(1, 1, 11))
}

func TestIsolinesMarkInteriorCrossings(t *testing.T) {
	ctx := context.Background()
	sf := newField(t, cubic(4), [3]int{4, 4, 4}, positive)
	p := NewPlaneProjector(sf, PaletteRedBlue)
	require.NoError(t, p.SetScaling(false, -3, 2))
	row := []float64{0.05, 0.5, 5, 50, 500}
	g := newPlaneGrid(5, 5, 1)
	for j := 0; j < 5; j++ {
		for i, v := range row {
			k := g.idx(i, j)
			g.Real[k], g.Log[k], g.Mask[k] = v, p.Scaling().Normalize(v), true
		}
	}
	p.grid = g
	p.state = StateExtracted
	require.NoError(t, p.Plot())
	require.NoError(t, p.Isolines(ctx, 5))
	for j := 0; j < 5; j++ {
		for i := 0; i < 5; i++ {
			border := i == 0 || j == 0 || i == 4 || j == 4
			if border {
				assert.NotEqual(t, colorBlack, p.Canvas().At(i, j), "(%d,%d)", i, j)
			} else {
				assert.Equal(t, colorBlack, p.Canvas().At(i, j), "(%d,%d)", i, j)
			}
		}
	}
}

func TestLegendEntries(t *testing.T) {
	pos := LegendEntries(LogScale{Min: -3, Max: 2})
	require.Len(t, pos, 6)
	assert.Equal(t, "10^2", pos[0].Label)
	assert.Equal(t, "10^-3", pos[5].Label)

	neg := LegendEntries(LogScale{AllowNegative: true, Min: -3, Max: 2})
	require.Len(t, neg, 12)
	assert.Equal(t, "-10^-3", neg[6].Label)
	assert.Equal(t, "-10^2", neg[11].Label)
	assert.Equal(t, -100.0, neg[11].Value)
}

func TestDrawLegendPaintsSwatches(t *testing.T) {
	sf := newField(t, cubic(4), [3]int{4, 4, 4}, positive)
	p := NewPlaneProjector(sf, PaletteRedBlue)
	require.NoError(t, p.SetScaling(false, -3, 2))
	p.grid = newPlaneGrid(300, 300, 1)
	p.state = StateExtracted
	require.NoError(t, p.Plot())
	require.NoError(t, p.DrawLegend())

	painted := 0
	img := p.Canvas().Image()
	for k := 3; k < len(img.Pix); k += 4 {
		if img.Pix[k] != 0 {
			painted++
		}
	}
	assert.Greater(t, painted, 6*8*8)
}

func readDumpHeader(t *testing.T, path string) (*bufio.Reader, uint32, uint32) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	r := bufio.NewReader(f)
	var nx, ny uint32
	require.NoError(t, binary.Read(r, binary.LittleEndian, &nx))
	require.NoError(t, binary.Read(r, binary.LittleEndian, &ny))
	return r, nx, ny
}

func TestWriteProducesImageAndDumps(t *testing.T) {
	ctx := context.Background()
	sf := newField(t, cubic(4), [3]int{4, 4, 4}, positive)
	p := NewPlaneProjector(sf, PaletteYellowGreenBlue)
	require.NoError(t, p.SetScaling(false, LogMin, LogMax))
	require.NoError(t, p.Extract(ctx, axisX, axisZ, Vec3{2, 1, 2}, 5, -4, 4, -4, 4))
	require.NoError(t, p.Plot())

	dir := filepath.Join(t.TempDir(), "out")
	out := filepath.Join(dir, "plane.png")
	require.NoError(t, p.Write(out))
	g := p.Grid()

	f, err := os.Open(out)
	require.NoError(t, err)
	img, err := png.Decode(f)
	f.Close()
	require.NoError(t, err)
	assert.Equal(t, g.Width, img.Bounds().Dx())
	assert.Equal(t, g.Height, img.Bounds().Dy())

	r, nx, ny := readDumpHeader(t, filepath.Join(dir, PlaneDataReal))
	require.Equal(t, uint32(g.Width), nx)
	require.Equal(t, uint32(g.Height), ny)
	vals := make([]float32, nx*ny)
	require.NoError(t, binary.Read(r, binary.LittleEndian, vals))
	for k, v := range vals {
		assert.Equal(t, float32(g.Real[k]), v)
	}

	r, nx, ny = readDumpHeader(t, filepath.Join(dir, PlaneDataBool))
	require.Equal(t, uint32(g.Width), nx)
	require.Equal(t, uint32(g.Height), ny)
	mask := make([]uint8, nx*ny)
	require.NoError(t, binary.Read(r, binary.LittleEndian, mask))
	for k, m := range mask {
		assert.Equal(t, g.Mask[k], m == 1)
	}
}

func TestWriteFailureIsIOFailure(t *testing.T) {
	ctx := context.Background()
	sf := newField(t, cubic(4), [3]int{4, 4, 4}, positive)
	p := NewPlaneProjector(sf, PaletteRedBlue)
	require.NoError(t, p.SetScaling(false, LogMin, LogMax))
	require.NoError(t, p.Extract(ctx, axisX, axisY, Vec3{2, 2, 2}, 5, -4, 4, -4, 4))
	require.NoError(t, p.Plot())

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	err := p.Write(filepath.Join(blocker, "plane.png"))
	assert.ErrorIs(t, err, ErrIOFailure)
	assert.Equal(t, StatePlotted, p.State())
}

func TestSymmetricDensityPlanesAgree(t *testing.T) {
	if testing.Short() {
		t.Skip("large grid")
	}
	ctx := context.Background()
	const n = 100
	// a Gaussian centered in a cubic cell of side 10, sampled at i/10
	gauss := func(i, j, k int) float64 {
		x, y, z := float64(i)/10-5, float64(j)/10-5, float64(k)/10-5
		return math.Exp(-(x*x + y*y + z*z))
	}
	sf := newField(t, cubic(10), [3]int{n, n, n}, gauss)
	center := Vec3{5, 5, 5}

	sums := map[string]float64{}
	dims := map[string][2]int{}
	for name, plane := range map[string][2]Vec3{
		"xy": {axisX, axisY},
		"xz": {axisX, axisZ},
		"yz": {axisY, axisZ},
	} {
		p := NewPlaneProjector(sf, PaletteRedBlue)
		require.NoError(t, p.SetScaling(false, LogMin, LogMax))
		require.NoError(t, p.Extract(ctx, plane[0], plane[1], center, 10, -20, 20, -20, 20))
		sums[name] = p.Grid().Sum()
		dims[name] = [2]int{p.Grid().Width, p.Grid().Height}
	}
	// the pixels land on grid points, so the sum is (Σ_i exp(-(i/10-5)²))²
	assert.InDelta(t, 314.1592653579, sums["xy"], 1e-4)
	assert.InEpsilon(t, sums["xy"], sums["xz"], 1e-6)
	assert.InEpsilon(t, sums["xy"], sums["yz"], 1e-6)
	assert.Equal(t, dims["xy"], dims["xz"])
	assert.Equal(t, dims["xy"], dims["yz"])
}
