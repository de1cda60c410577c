package palette

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// LoadPalette resolves a palette description: the name of a built-in
// palette, a comma separated list of hex colors ("#000,#ffffff") or the
// path of a RIFF PAL file. Every palette in a PAL file is concatenated in
// file order.
func LoadPalette(desc string) (Palette, error) {
	if p, ok := Builtin(desc); ok {
		return p, nil
	}

	if strings.HasPrefix(strings.TrimSpace(desc), "#") {
		return ParseHex(desc)
	}

	f, err := os.Open(desc)
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q: %w", desc, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", desc, "error", closeErr)
		}
	}()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette file %q: %w", desc, err)
	}

	var res Palette
	for _, pal := range pals {
		res = append(res, pal...)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("palette file %q has no colors: %w", desc, ErrInvalidPalette)
	}

	return res, nil
}

// ParseHex parses a comma separated list of #rgb or #rrggbb colors.
func ParseHex(s string) (Palette, error) {
	var res Palette
	for i, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		col, err := colorful.Hex(field)
		if err != nil {
			return nil, fmt.Errorf("could not read color %d %q: %w", i, field, err)
		}
		r, g, b := col.RGB255()
		res = append(res, Color{R: r, G: g, B: b})
	}

	if len(res) == 0 {
		return nil, fmt.Errorf("no colors in %q: %w", s, ErrInvalidPalette)
	}
	return res, nil
}

// Hex formats c as #rrggbb.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
