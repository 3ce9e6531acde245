package edp

import (
	"image/color"
	"strconv"
)

// Palette ids accepted by NewColorRamp.
const (
	PaletteRedBlue = iota
	PaletteYellowGreenBlue
	PaletteViridis
)

// Stops from colorbrewer2.org and matplotlib.
var palettes = map[int][]string{
	PaletteRedBlue: {
		"053061", "2166ac", "4393c3", "92c5de", "d1e5f0", "f7f7f7",
		"fddbc7", "f4a582", "d6604d", "b2182b", "67001f",
	},
	PaletteYellowGreenBlue: {
		"ffffd9", "edf8b1", "c7e9b4", "7fcdbb", "41b6c4",
		"1d91c0", "225ea8", "253494", "081d58",
	},
	PaletteViridis: {
		"440154", "472d7b", "3b528b", "2c728e", "21918c",
		"28ae80", "5ec962", "addc30", "fde725",
	},
}

// PaletteStops returns the opaque stops of palette id. Unknown ids fall
// back to the red-blue palette.
func PaletteStops(id int) []color.NRGBA {
	hex, ok := palettes[id]
	if !ok {
		hex = palettes[PaletteRedBlue]
	}
	stops := make([]color.NRGBA, len(hex))
	for i, h := range hex {
		stops[i] = hexColor(h)
	}
	return stops
}

func hexColor(h string) color.NRGBA {
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
