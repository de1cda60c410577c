package theme

import (
	"bytes"
	"encoding/json"
	"reflect"
	"slices"
	"strings"
	"testing"

	"pixelart/palette"
)

func swatches(t Theme) []Swatch {
	v := reflect.ValueOf(t)
	res := make([]Swatch, v.NumField())
	for i := range res {
		res[i] = v.Field(i).Interface().(Swatch)
	}
	return res
}

func TestDerivePure(t *testing.T) {
	for _, name := range palette.Names() {
		p, _ := palette.Builtin(name)
		a := Derive(p)
		b := Derive(slices.Clone(p))
		if a != b {
			t.Errorf("%s: derived themes differ", name)
		}
	}
}

func TestDeriveAnchors(t *testing.T) {
	p, _ := palette.Builtin("cyberpunk")
	th := Derive(p)

	// 5 colors: floor(1.5) = 1 and floor(3.5) = 3
	if th.Primary.Color != p[0] || th.Accent.Color != p[1] || th.Secondary.Color != p[3] {
		t.Errorf("got primary %v accent %v secondary %v", th.Primary.Color, th.Accent.Color, th.Secondary.Color)
	}

	if want := (palette.Color{R: 0, G: 0, B: 20}); th.Background.Color != want {
		t.Errorf("background: got %v, want %v", th.Background.Color, want)
	}
	if want := (palette.Color{R: 200, G: 200, B: 220}); th.TextPrimary.Color != want {
		t.Errorf("text: got %v, want %v", th.TextPrimary.Color, want)
	}
	if want := (palette.Color{R: 60, G: 30, B: 100}); th.AccentHover.Color != want {
		t.Errorf("accent hover: got %v, want %v", th.AccentHover.Color, want)
	}
	if want := (palette.Color{R: 20, G: 0, B: 60}); th.AccentActive.Color != want {
		t.Errorf("accent active: got %v, want %v", th.AccentActive.Color, want)
	}
	if th.SurfaceLight.Alpha != 0.1 || th.SurfaceMedium.Alpha != 0.15 ||
		th.BorderLight.Alpha != 0.2 || th.BorderMedium.Alpha != 0.3 {
		t.Errorf("unexpected opacities: %+v", th)
	}
}

func TestDeriveSmallPalettes(t *testing.T) {
	one := palette.Palette{{R: 250, G: 5, B: 128}}
	th := Derive(one)
	if th.Primary.Color != one[0] || th.Accent.Color != one[0] || th.Secondary.Color != one[0] {
		t.Errorf("single color palette: got %+v", th)
	}
	if want := (palette.Color{R: 255, G: 185, B: 255}); th.TextPrimary.Color != want {
		t.Errorf("got %v, want %v", th.TextPrimary.Color, want)
	}

	two := palette.Palette{{R: 0, G: 0, B: 0}, {R: 255, G: 255, B: 255}}
	th = Derive(two)
	if th.Accent.Color != two[0] || th.Secondary.Color != two[1] {
		t.Errorf("two color palette: accent %v secondary %v", th.Accent.Color, th.Secondary.Color)
	}
}

func TestDeriveAlphaRange(t *testing.T) {
	for _, name := range palette.Names() {
		p, _ := palette.Builtin(name)
		for i, s := range swatches(ForPalette(name, p)) {
			if s.Alpha < 0 || s.Alpha > 1 {
				t.Errorf("%s field %d: alpha %v out of range", name, i, s.Alpha)
			}
		}
	}
}

func TestForPalette(t *testing.T) {
	p, _ := palette.Builtin(palette.DefaultName)
	if got := ForPalette(palette.DefaultName, p); got != Default {
		t.Error("default palette must use the fixed theme")
	}
	if got := ForPalette("custom", p); got != Derive(p) {
		t.Error("other names must derive")
	}
}

func TestSwatchString(t *testing.T) {
	tests := []struct {
		in   Swatch
		want string
	}{
		{solid(palette.Color{R: 255, G: 0, B: 128}), "#ff0080"},
		{translucent(palette.Color{R: 1, G: 2, B: 3}, 0.15), "rgba(1, 2, 3, 0.15)"},
		{translucent(palette.Color{R: 1, G: 2, B: 3}, 0), "rgba(1, 2, 3, 0)"},
		{translucent(palette.Color{R: 9, G: 9, B: 9}, 7), "#090909"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestWrite(t *testing.T) {
	p, _ := palette.Builtin("ocean")
	th := Derive(p)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, th, "json"); err != nil {
			t.Fatal(err)
		}
		var tokens map[string]string
		if err := json.Unmarshal(buf.Bytes(), &tokens); err != nil {
			t.Fatal(err)
		}
		if len(tokens) != 16 {
			t.Errorf("got %d tokens", len(tokens))
		}
		if got, want := tokens["background"], "#000a1e"; got != want {
			t.Errorf("background: got %q, want %q", got, want)
		}
		if got, want := tokens["surfaceMedium"], "rgba(50, 80, 100, 0.15)"; got != want {
			t.Errorf("surfaceMedium: got %q, want %q", got, want)
		}
	})

	t.Run("css", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, th, "css"); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		if !strings.HasPrefix(out, ":root {\n") || !strings.Contains(out, "  --textPrimary: #b4d2e6;\n") {
			t.Errorf("unexpected css:\n%s", out)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := Write(&bytes.Buffer{}, th, "yaml"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestCLICmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := &CLICmd{Palette: "#102030,#405060", Format: "css", Out: &buf}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "--primary: #102030;") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
