package palette

import (
	"errors"
	"image/color"
	"math"
)

// ErrInvalidPalette is returned for palettes that cannot be searched.
var ErrInvalidPalette = errors.New("invalid palette")

// Color is an opaque 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	r, g, b := uint32(c.R), uint32(c.G), uint32(c.B)
	return r | r<<8, g | g<<8, b | b<<8, 0xffff
}

// Shift adds delta to every channel, clamping each to [0, 255].
func (c Color) Shift(delta int) Color {
	return Color{
		R: clamp(int(c.R) + delta),
		G: clamp(int(c.G) + delta),
		B: clamp(int(c.B) + delta),
	}
}

func clamp(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}

// Distance is the Euclidean distance between two colors in RGB space.
func Distance(a, b Color) float64 {
	return math.Sqrt(float64(distanceSq(a, b)))
}

func distanceSq(a, b Color) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// Palette is an ordered list of reference colors. Order matters: ties in
// the nearest color search go to the earlier entry and theme derivation
// picks anchors by position.
type Palette []Color

func (p Palette) Validate() error {
	if len(p) == 0 {
		return ErrInvalidPalette
	}
	return nil
}

// Index returns the position of the palette entry closest to c. Only a
// strictly smaller distance replaces the running best, so among
// equidistant entries the first one wins. Index returns -1 for an empty
// palette.
func (p Palette) Index(c Color) int {
	ret, bestSum := -1, math.MaxInt
	for i, v := range p {
		sum := distanceSq(c, v)
		if sum < bestSum {
			if sum == 0 {
				return i
			}
			ret, bestSum = i, sum
		}
	}
	return ret
}

// Convert returns the palette entry closest to c. It panics on an empty
// palette; callers validate first.
func (p Palette) Convert(c Color) Color {
	return p[p.Index(c)]
}

func (p Palette) ColorPalette() color.Palette {
	pal := make(color.Palette, len(p))
	for i, c := range p {
		pal[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}
	return pal
}

// FromColorPalette converts an image/color palette, dropping alpha.
func FromColorPalette(pal color.Palette) Palette {
	p := make(Palette, 0, len(pal))
	for _, col := range pal {
		c := color.NRGBAModel.Convert(col).(color.NRGBA)
		p = append(p, Color{R: c.R, G: c.G, B: c.B})
	}
	return p
}
