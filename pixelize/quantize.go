package pixelize

import (
	"image"

	"pixelart/palette"
)

// Quantize replaces the RGB channels of every pixel of img with the
// closest palette color, in place. Alpha is not modified.
func Quantize(img *image.NRGBA, pal palette.Palette) error {
	if err := pal.Validate(); err != nil {
		return err
	}

	// pixelated images repeat few colors, remember the ones already seen
	seen := make(map[palette.Color]palette.Color, 2*len(pal))

	b := img.Bounds()
	n := b.Dx() * 4
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		row := img.Pix[i : i+n]
		for x := 0; x < n; x += 4 {
			c := palette.Color{R: row[x], G: row[x+1], B: row[x+2]}
			q, ok := seen[c]
			if !ok {
				q = pal.Convert(c)
				seen[c] = q
			}
			row[x], row[x+1], row[x+2] = q.R, q.G, q.B
		}
	}

	return nil
}
