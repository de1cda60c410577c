// Package theme derives UI color schemes from palettes so the interface
// around a picture matches the palette it was rendered with.
package theme

import (
	"encoding/json"
	"fmt"
	"strconv"

	"pixelart/palette"
)

// Swatch is a palette derived color with an opacity in [0, 1].
type Swatch struct {
	Color palette.Color
	Alpha float64
}

func solid(c palette.Color) Swatch {
	return Swatch{Color: c, Alpha: 1}
}

func translucent(c palette.Color, alpha float64) Swatch {
	return Swatch{Color: c, Alpha: min(max(alpha, 0), 1)}
}

// String formats opaque swatches as #rrggbb and the others as rgba().
func (s Swatch) String() string {
	if s.Alpha >= 1 {
		return s.Color.Hex()
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", s.Color.R, s.Color.G, s.Color.B,
		strconv.FormatFloat(s.Alpha, 'f', -1, 64))
}

type Theme struct {
	Primary   Swatch
	Secondary Swatch

	Accent       Swatch
	AccentHover  Swatch
	AccentActive Swatch

	Background    Swatch
	SurfaceLight  Swatch
	SurfaceMedium Swatch
	SurfaceDark   Swatch

	Border       Swatch
	BorderLight  Swatch
	BorderMedium Swatch

	TextPrimary   Swatch
	TextSecondary Swatch

	OptionBg   Swatch
	OptionText Swatch
}

// Tokens maps style token names to display strings.
func (t Theme) Tokens() map[string]string {
	return map[string]string{
		"primary":       t.Primary.String(),
		"secondary":     t.Secondary.String(),
		"accent":        t.Accent.String(),
		"accentHover":   t.AccentHover.String(),
		"accentActive":  t.AccentActive.String(),
		"background":    t.Background.String(),
		"surfaceLight":  t.SurfaceLight.String(),
		"surfaceMedium": t.SurfaceMedium.String(),
		"surfaceDark":   t.SurfaceDark.String(),
		"border":        t.Border.String(),
		"borderLight":   t.BorderLight.String(),
		"borderMedium":  t.BorderMedium.String(),
		"textPrimary":   t.TextPrimary.String(),
		"textSecondary": t.TextSecondary.String(),
		"optionBg":      t.OptionBg.String(),
		"optionText":    t.OptionText.String(),
	}
}

func (t Theme) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Tokens())
}
