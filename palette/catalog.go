package palette

import (
	"maps"
	"slices"
)

// DefaultName is the palette used when none is selected.
const DefaultName = "default"

var builtin = map[string]Palette{
	DefaultName: {
		{140, 143, 174},
		{88, 69, 99},
		{62, 33, 55},
		{154, 99, 72},
		{215, 155, 125},
		{245, 237, 186},
		{192, 199, 65},
		{100, 125, 52},
	},
	"grayscale": {
		{0, 0, 0},
		{64, 64, 64},
		{128, 128, 128},
		{192, 192, 192},
		{255, 255, 255},
	},
	"sunset": {
		{45, 45, 45},
		{125, 45, 45},
		{195, 95, 95},
		{255, 145, 145},
		{255, 195, 195},
	},
	"cyberpunk": {
		{20, 20, 40},
		{40, 10, 80},
		{150, 20, 255},
		{0, 255, 255},
		{255, 0, 128},
	},
	"forest": {
		{12, 32, 14},
		{48, 96, 48},
		{91, 135, 72},
		{138, 176, 99},
		{166, 209, 119},
	},
	"ocean": {
		{0, 30, 50},
		{0, 60, 110},
		{0, 90, 170},
		{0, 120, 230},
		{100, 200, 255},
	},
	"retro": {
		{34, 34, 34},
		{85, 85, 85},
		{136, 136, 136},
		{187, 187, 187},
		{238, 238, 238},
	},
}

// Names lists the built-in palettes in alphabetical order.
func Names() []string {
	return slices.Sorted(maps.Keys(builtin))
}

// Builtin returns a copy of the named built-in palette.
func Builtin(name string) (Palette, bool) {
	p, ok := builtin[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(p), true
}
