package convert

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"pixelart/palette"
	"pixelart/parallel"
	"pixelart/pixelize"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Scan    string          `help:"Source folder to scan" default:"."`
	Dest    string          `help:"Destination folder for pixelated pictures. Relative to scan dir if not absolute. Must differ from the scan dir." default:"pixelated"`
	Scale   float64         `help:"Block scale, from 0.01 (coarse) to 1 (palette only)" default:"0.08" group:"pixelate"`
	Palette string          `help:"Palette name (${palettes}), comma separated hex colors or PAL file in RIFF format" default:"default" group:"pixelate"`
	Format  string          `help:"Output format of pixelated image. If prefixed with 'unsup:' will convert only unsupported formats" enum:"same,gif,unsup:gif,jpeg,unsup:jpeg,png,unsup:png,bmp,unsup:bmp,tiff,unsup:tiff" default:"unsup:png"`
	Pal     palette.Palette `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}
	if filepath.Clean(c.Dest) == scanDir {
		return fmt.Errorf("destination folder must differ from scan folder %q", scanDir)
	}

	if c.Scale < 0.01 || c.Scale > 1 {
		return fmt.Errorf("invalid scale %v: must be between 0.01 and 1", c.Scale)
	}

	if c.Pal, err = palette.LoadPalette(c.Palette); err != nil {
		return err
	}
	if strings.TrimPrefix(c.Format, "unsup:") == "gif" && len(c.Pal) > maxIndexedColors {
		return fmt.Errorf("palette %q has %d colors, GIF output supports at most %d", c.Palette, len(c.Pal), maxIndexedColors)
	}

	return nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	slog.Info("pixelating", "dir", c.Scan, "scale", c.Scale, "palette", c.Palette, "colors", len(c.Pal))

	dests := newDestinations()
	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		worker(func(fileName string) func() {
			return func() {
				logger := slog.Default().With("file", filepath.Join(c.Scan, fileName))
				if err := c.convert(logger, fileName, dests); err != nil {
					errCount.Add(1)
					logger.Error("could not pixelate image", "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) convert(logger *slog.Logger, fileName string, dests *destinations) error {
	filePath := filepath.Join(c.Scan, fileName)

	imgFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("could not open image: %w", err)
	}
	defer func() {
		if closeErr := imgFile.Close(); closeErr != nil {
			logger.Error("could not close image", "error", closeErr)
		}
	}()

	img, imgType, err := pixelize.Decode(imgFile)
	if err != nil {
		return err
	}

	px := pixelize.New(c.Scale, c.Pal)
	px.Logger = logger
	out, err := px.Render(img)
	if err != nil {
		return err
	}

	outType, destName := outputName(fileName, imgType, c.Format)
	if err := dests.claim(destName, fileName); err != nil {
		return err
	}

	dest, err := save(out, c.Pal, outType, c.Dest, destName)
	if err != nil {
		return err
	}

	logger.Info("pixelated", "to", dest, "width", out.Rect.Dx(), "height", out.Rect.Dy())
	return nil
}
