package convert

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"pixelart/palette"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

const maxIndexedColors = 256

// outputName maps the source file name and decoded type to the output
// format and file name.
func outputName(srcName, imgType, outType string) (string, string) {
	outType, unsupOnly := strings.CutPrefix(outType, "unsup:")
	if (unsupOnly && (imgType != "webp")) || (outType == "same") {
		outType = imgType
	}
	if outType == "webp" {
		// no encoder available
		outType = "png"
	}

	oldExt := filepath.Ext(srcName)
	return outType, fmt.Sprintf("%s.%s", srcName[:len(srcName)-len(oldExt)], outType)
}

// destinations hands out output paths so that two sources mapping to the
// same name (a.png and a.webp as png) do not overwrite each other.
type destinations struct {
	mu     sync.Mutex
	owners map[string]string
}

func newDestinations() *destinations {
	return &destinations{owners: make(map[string]string)}
}

func (d *destinations) claim(dest, srcName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if owner, ok := d.owners[dest]; ok {
		return fmt.Errorf("destination %q already written from %q", dest, owner)
	}
	d.owners[dest] = srcName
	return nil
}

func save(img *image.NRGBA, pal palette.Palette, outType, destDir, destName string) (dest string, err error) {
	dest = filepath.Join(destDir, destName)

	outFile, err := os.CreateTemp(destDir, destName)
	if err != nil {
		return dest, fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), dest); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		} else if defErr := os.Remove(outFile.Name()); defErr != nil {
			err = fmt.Errorf("could not remove temporary destination %q: %w (%w)", destName, defErr, err)
		}
	}()

	if err = Encode(outFile, img, pal, outType); err != nil {
		return dest, fmt.Errorf("could not encode destination %q: %w", destName, err)
	}

	canRename = true
	return dest, err
}

// Encode writes img in the given format. GIF output, and PNG output of
// opaque images, is indexed on the palette the image was quantized with.
func Encode(w io.Writer, img *image.NRGBA, pal palette.Palette, format string) error {
	switch format {
	case "gif":
		if len(pal) > maxIndexedColors {
			return fmt.Errorf("GIF supports at most %d colors, palette has %d", maxIndexedColors, len(pal))
		}
		return gif.Encode(w, toPaletted(img, pal), nil)
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if img.Opaque() && len(pal) <= maxIndexedColors {
			return enc.Encode(w, toPaletted(img, pal))
		}
		return enc.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// toPaletted indexes img on pal, which holds at most 256 colors. Pixels
// are already palette colors so the RGB lookup finds their exact entry;
// alpha takes no part in it.
func toPaletted(img *image.NRGBA, pal palette.Palette) *image.Paletted {
	dest := image.NewPaletted(img.Rect, pal.ColorPalette())

	b := img.Rect
	n := b.Dx() * 4
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		row := img.Pix[i : i+n]
		out := dest.Pix[dest.PixOffset(b.Min.X, y):]
		for x := 0; x < n; x += 4 {
			out[x/4] = uint8(pal.Index(palette.Color{R: row[x], G: row[x+1], B: row[x+2]}))
		}
	}
	return dest
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
