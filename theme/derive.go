package theme

import (
	"math"

	"pixelart/palette"
)

const (
	backgroundShift    = -20
	borderShift        = 50
	surfaceBorderShift = 100
	textShift          = 180
	textSecondaryShift = 120
	accentStateShift   = 20
)

// Default is the hand-made theme of the default palette.
var Default = Theme{
	Primary:   solid(palette.Color{R: 140, G: 143, B: 174}),
	Secondary: solid(palette.Color{R: 192, G: 199, B: 65}),

	Accent:       solid(palette.Color{R: 215, G: 155, B: 125}),
	AccentHover:  solid(palette.Color{R: 232, G: 178, B: 150}),
	AccentActive: solid(palette.Color{R: 154, G: 99, B: 72}),

	Background:    solid(palette.Color{R: 42, G: 22, B: 38}),
	SurfaceLight:  translucent(palette.Color{R: 245, G: 237, B: 186}, 0.08),
	SurfaceMedium: translucent(palette.Color{R: 88, G: 69, B: 99}, 0.5),
	SurfaceDark:   translucent(palette.Color{R: 62, G: 33, B: 55}, 0.6),

	Border:       solid(palette.Color{R: 88, G: 69, B: 99}),
	BorderLight:  translucent(palette.Color{R: 140, G: 143, B: 174}, 0.35),
	BorderMedium: translucent(palette.Color{R: 140, G: 143, B: 174}, 0.5),

	TextPrimary:   solid(palette.Color{R: 245, G: 237, B: 186}),
	TextSecondary: solid(palette.Color{R: 140, G: 143, B: 174}),

	OptionBg:   solid(palette.Color{R: 62, G: 33, B: 55}),
	OptionText: solid(palette.Color{R: 245, G: 237, B: 186}),
}

// ForPalette returns the theme for a named palette. The default palette
// has a fixed theme; every other palette is derived.
func ForPalette(name string, p palette.Palette) Theme {
	if name == palette.DefaultName {
		return Default
	}
	return Derive(p)
}

// Derive builds a theme from three anchors of p: the first color
// (primary), the color at 30% of the palette (accent) and the color at
// 70% (secondary). p must not be empty.
func Derive(p palette.Palette) Theme {
	primary := anchor(p, 0)
	accent := anchor(p, 0.3)
	secondary := anchor(p, 0.7)

	background := primary.Shift(backgroundShift)
	light := primary.Shift(borderShift)
	lighter := primary.Shift(surfaceBorderShift)
	text := primary.Shift(textShift)

	return Theme{
		Primary:   solid(primary),
		Secondary: solid(secondary),

		Accent:       solid(accent),
		AccentHover:  solid(accent.Shift(accentStateShift)),
		AccentActive: solid(accent.Shift(-accentStateShift)),

		Background:    solid(background),
		SurfaceLight:  translucent(light, 0.1),
		SurfaceMedium: translucent(light, 0.15),
		SurfaceDark:   translucent(background, 0.3),

		Border:       solid(light),
		BorderLight:  translucent(lighter, 0.2),
		BorderMedium: translucent(lighter, 0.3),

		TextPrimary:   solid(text),
		TextSecondary: solid(primary.Shift(textSecondaryShift)),

		OptionBg:   solid(background),
		OptionText: solid(text),
	}
}

func anchor(p palette.Palette, fraction float64) palette.Color {
	i := int(math.Floor(float64(len(p)) * fraction))
	return p[min(max(i, 0), len(p)-1)]
}
