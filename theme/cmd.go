package theme

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"pixelart/palette"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Palette string `help:"Palette name, hex list or PAL file" default:"default"`
	Format  string `help:"Output format" enum:"json,css" default:"json"`

	Out io.Writer `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if _, err := palette.LoadPalette(c.Palette); err != nil {
		return err
	}
	return nil
}

func (c *CLICmd) Run() error {
	p, err := palette.LoadPalette(c.Palette)
	if err != nil {
		return err
	}

	out := c.Out
	if out == nil {
		out = os.Stdout
	}

	return Write(out, ForPalette(c.Palette, p), c.Format)
}

// Write prints the theme tokens as JSON or as a CSS :root block of
// custom properties.
func Write(w io.Writer, t Theme, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("could not encode theme: %w", err)
		}
	case "css":
		tokens := t.Tokens()
		if _, err := fmt.Fprintln(w, ":root {"); err != nil {
			return err
		}
		for _, name := range slices.Sorted(maps.Keys(tokens)) {
			if _, err := fmt.Fprintf(w, "  --%s: %s;\n", name, tokens[name]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "}"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported theme format: %s", format)
	}
	return nil
}
