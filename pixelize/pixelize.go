// Package pixelize turns images into palette constrained pixel art.
//
// Processing runs in two stages. The image is first reduced to a coarse
// grid of blocks by a nearest neighbour downscale followed by a nearest
// neighbour upscale back to the original size, then every pixel is
// replaced by the closest palette color. The output always has the
// dimensions of the input.
package pixelize

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"pixelart/palette"

	"golang.org/x/image/draw"
)

// DefaultScale is the block scale used when none is configured.
const DefaultScale = 0.08

var (
	ErrDecode            = errors.New("could not decode image")
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	ErrInvalidScale      = errors.New("invalid scale")
)

// Pixelizer holds the settings for converting images. A Pixelizer has no
// internal state besides its settings; concurrent calls are safe as long
// as they target different destination images.
type Pixelizer struct {
	// Scale is the ratio of blocks to pixels along each axis, in (0, 1].
	// A scale of 1 skips block reduction and only quantizes.
	Scale float64
	// Palette is the set of colors the output is limited to.
	Palette palette.Palette
	// Logger receives debug output; slog.Default() when nil.
	Logger *slog.Logger
}

func New(scale float64, pal palette.Palette) *Pixelizer {
	return &Pixelizer{
		Scale:   scale,
		Palette: pal,
	}
}

// Process renders src and overwrites dst with the result, resizing dst to
// the dimensions of src. The pixel buffer of dst is reused when it is
// large enough. On error dst is left untouched.
func (p *Pixelizer) Process(dst *image.NRGBA, src image.Image) error {
	if dst == nil {
		return errors.New("nil destination image")
	}

	out, err := p.Render(src)
	if err != nil {
		return err
	}

	if cap(dst.Pix) >= len(out.Pix) {
		dst.Pix = dst.Pix[:len(out.Pix)]
		copy(dst.Pix, out.Pix)
	} else {
		dst.Pix = out.Pix
	}
	dst.Stride = out.Stride
	dst.Rect = out.Rect

	return nil
}

// Render returns a new image holding the pixel art version of src. The
// result is anchored at the origin whatever the bounds of src.
func (p *Pixelizer) Render(src image.Image) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}

	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, b.Dx(), b.Dy())
	}
	if err := ValidateScale(p.Scale); err != nil {
		return nil, err
	}
	if err := p.Palette.Validate(); err != nil {
		return nil, err
	}

	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	img := toNRGBA(src)
	if p.Scale != 1 {
		logger.Debug("pixelating", "width", b.Dx(), "height", b.Dy(),
			"blocksX", blocks(b.Dx(), p.Scale), "blocksY", blocks(b.Dy(), p.Scale))
		img = Pixelate(img, p.Scale)
	}

	logger.Debug("applying palette", "colors", len(p.Palette))
	if err := Quantize(img, p.Palette); err != nil {
		return nil, err
	}

	return img, nil
}

func ValidateScale(scale float64) error {
	if math.IsNaN(scale) || scale <= 0 || scale > 1 {
		return fmt.Errorf("%w: %v not in (0, 1]", ErrInvalidScale, scale)
	}
	return nil
}

// Pixelate reduces img to blocks of uniform color. The block grid is
// ceil(w*scale) by ceil(h*scale); the result has the size of img. Pixels
// are copied as stored, color channels included when alpha is zero.
func Pixelate(img *image.NRGBA, scale float64) *image.NRGBA {
	b := img.Bounds()
	small := image.NewNRGBA(image.Rect(0, 0, blocks(b.Dx(), scale), blocks(b.Dy(), scale)))
	draw.NearestNeighbor.Scale(rgbaView(small), small.Bounds(), rgbaView(img), b, draw.Src, nil)

	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.NearestNeighbor.Scale(rgbaView(out), out.Bounds(), rgbaView(small), small.Bounds(), draw.Src, nil)
	return out
}

// rgbaView shares the pixels of img as an *image.RGBA. Scaling from one
// RGBA to another moves bytes unchanged, where NRGBA sources would be
// premultiplied on the way and lose the color of transparent pixels.
func rgbaView(img *image.NRGBA) *image.RGBA {
	return &image.RGBA{Pix: img.Pix, Stride: img.Stride, Rect: img.Rect}
}

// blocks tolerates float noise such as 100*0.07 = 7.000000000000001 so it
// does not turn into an extra block.
func blocks(n int, scale float64) int {
	b := int(math.Ceil(float64(n)*scale - 1e-9))
	return min(max(b, 1), n)
}

func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	if s, ok := src.(*image.NRGBA); ok {
		n := b.Dx() * 4
		for y := range b.Dy() {
			i := s.PixOffset(b.Min.X, b.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:][:n], s.Pix[i:i+n])
		}
		return dst
	}

	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
