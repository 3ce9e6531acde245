package edp

import (
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorRampEndsAndBeyond(t *testing.T) {
	for _, id := range []int{PaletteRedBlue, PaletteYellowGreenBlue, PaletteViridis} {
		r, err := NewColorRamp(-1, 1, id)
		require.NoError(t, err)
		stops := r.Stops()
		first, last := stops[0], stops[len(stops)-1]
		assert.Equal(t, first, r.Color(-1))
		assert.Equal(t, first, r.Color(-5))
		assert.Equal(t, first, r.Color(math.Inf(-1)))
		assert.Equal(t, first, r.Color(math.NaN()))
		assert.Equal(t, last, r.Color(1))
		assert.Equal(t, last, r.Color(42))
		assert.Equal(t, last, r.Color(math.Inf(1)))
	}
}

func TestColorRampReproducesStops(t *testing.T) {
	r, err := NewColorRamp(0, 1, PaletteYellowGreenBlue)
	require.NoError(t, err)
	stops := r.Stops()
	n := len(stops)
	got := make([]color.NRGBA, n)
	for k := range stops {
		got[k] = r.Color(float64(k) / float64(n-1))
	}
	if diff := cmp.Diff(stops, got); diff != "" {
		t.Fatalf("stops mismatch (-want +got):\n%s", diff)
	}
}

func TestColorRampInterpolates(t *testing.T) {
	black := color.NRGBA{0, 0, 0, 255}
	white := color.NRGBA{255, 255, 255, 255}
	r, err := NewColorRampStops(0, 10, []color.NRGBA{black, white})
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{128, 128, 128, 255}, r.Color(5))
	assert.Equal(t, color.NRGBA{26, 26, 26, 255}, r.Color(1))
}

func TestColorRampRejectsDegenerate(t *testing.T) {
	_, err := NewColorRamp(1, 1, PaletteRedBlue)
	assert.ErrorIs(t, err, ErrDegenerateRange)
	_, err = NewColorRamp(2, 1, PaletteRedBlue)
	assert.ErrorIs(t, err, ErrDegenerateRange)
	_, err = NewColorRampStops(0, 1, []color.NRGBA{{}})
	assert.Error(t, err)
}

func TestPaletteFallback(t *testing.T) {
	assert.Equal(t, PaletteStops(PaletteRedBlue), PaletteStops(99))
	assert.Len(t, PaletteStops(PaletteRedBlue), 11)
	assert.Len(t, PaletteStops(PaletteYellowGreenBlue), 9)
	assert.Equal(t, color.NRGBA{0x05, 0x30, 0x61, 0xff}, PaletteStops(PaletteRedBlue)[0])
}

func TestLogScalePositive(t *testing.T) {
	s := LogScale{Min: -3, Max: 2}
	lo, hi := s.Domain()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
	assert.InDelta(t, 0.0, s.Normalize(1e-3), 1e-12)
	assert.InDelta(t, 0.0, s.Normalize(1e-9), 1e-12)
	assert.InDelta(t, 0.0, s.Normalize(0), 1e-12)
	assert.InDelta(t, 0.0, s.Normalize(-7), 1e-12)
	assert.InDelta(t, 3.0/6, s.Normalize(1), 1e-12)
	assert.InDelta(t, 5.0/6, s.Normalize(100), 1e-12)
	assert.InDelta(t, 5.0/6, s.Normalize(1e6), 1e-12)
}

func TestLogScaleNegative(t *testing.T) {
	s := LogScale{AllowNegative: true, Min: -3, Max: 2}
	lo, hi := s.Domain()
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 1.0, hi)
	assert.Equal(t, 0.0, s.Normalize(0))
	assert.InDelta(t, 3.0/6, s.Normalize(1), 1e-12)
	assert.InDelta(t, -3.0/6, s.Normalize(-1), 1e-12)
	assert.InDelta(t, -5.0/6, s.Normalize(-1e4), 1e-12)
	for _, v := range []float64{-1e9, -3, -1e-5, 1e-5, 3, 1e9} {
		n := s.Normalize(v)
		assert.True(t, n >= lo && n <= hi, "%g -> %g", v, n)
	}
}
