package palette

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	List struct{} `cmd:"" help:"List built-in palettes"`
	Show struct {
		Palette string `arg:"" help:"Palette name, hex list or PAL file"`
	} `cmd:"" help:"Print the colors of a palette"`
	Export struct {
		Palette string `arg:"" help:"Palette name, hex list or PAL file"`
		File    string `arg:"" help:"Destination PAL file" type:"path"`
	} `cmd:"" help:"Write a palette as a RIFF PAL file"`

	Out io.Writer `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	var desc string
	switch kctx.Selected().Name {
	case "show":
		desc = c.Show.Palette
	case "export":
		desc = c.Export.Palette
		if ext := filepath.Ext(c.Export.File); !strings.EqualFold(ext, ".pal") {
			return fmt.Errorf("invalid destination %q: expected a .pal file", c.Export.File)
		}
	default:
		return nil
	}

	if _, err := LoadPalette(desc); err != nil {
		return err
	}
	return nil
}

func (c *CLICmd) Run(subCmd string) error {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	switch subCmd {
	case "list":
		for _, name := range Names() {
			p, _ := Builtin(name)
			if err := printPalette(out, name, p); err != nil {
				return err
			}
		}
	case "show":
		p, err := LoadPalette(c.Show.Palette)
		if err != nil {
			return err
		}
		return printPalette(out, c.Show.Palette, p)
	case "export":
		p, err := LoadPalette(c.Export.Palette)
		if err != nil {
			return err
		}
		return export(c.Export.File, p)
	default:
		return fmt.Errorf("unsupported palette operation %q", subCmd)
	}
	return nil
}

func printPalette(w io.Writer, name string, p Palette) error {
	hex := make([]string, len(p))
	for i, c := range p {
		hex[i] = c.Hex()
	}
	_, err := fmt.Fprintf(w, "%-12s %s\n", name, strings.Join(hex, " "))
	return err
}

func export(dest string, p Palette) (err error) {
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("destination file already exists: %q", dest)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
	}

	outFile, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("could not create destination file %q: %w", dest, err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close destination file %q: %w", dest, closeErr)
		}
	}()

	n, err := WriteTo(outFile, p)
	if err != nil {
		return fmt.Errorf("could not save palette to %q: %w", dest, err)
	}

	slog.Info("palette exported", "file", dest, "colors", len(p), "bytes", n)
	return outFile.Sync()
}
