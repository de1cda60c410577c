// Package serve exposes pixelization and theme derivation over HTTP.
package serve

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"pixelart/convert"
	"pixelart/palette"
	"pixelart/pixelize"
	"pixelart/theme"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

type paletteInfo struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

// NewServer returns an echo instance with the API routes registered.
func NewServer(bodyLimit string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(requestLogger)
	e.Use(middleware.BodyLimit(bodyLimit))

	api := e.Group("/api")
	api.GET("/palettes", listPalettes)
	api.GET("/palettes/:name/theme", getTheme)
	api.POST("/pixelate", pixelate)

	return e
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		req := c.Request()
		slog.Info("request", "method", req.Method, "path", req.URL.Path,
			"status", c.Response().Status, "duration", time.Since(start),
			"remote", c.RealIP())
		return nil
	}
}

func listPalettes(c echo.Context) error {
	names := palette.Names()
	res := make([]paletteInfo, 0, len(names))
	for _, name := range names {
		p, _ := palette.Builtin(name)
		info := paletteInfo{Name: name, Colors: make([]string, len(p))}
		for i, col := range p {
			info.Colors[i] = col.Hex()
		}
		res = append(res, info)
	}
	return c.JSON(http.StatusOK, res)
}

func getTheme(c echo.Context) error {
	name := c.Param("name")
	p, ok := palette.Builtin(name)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown palette %q", name))
	}
	return c.JSON(http.StatusOK, theme.ForPalette(name, p))
}

func pixelate(c echo.Context) error {
	scale := pixelize.DefaultScale
	if s := c.FormValue("scale"); s != "" {
		var err error
		if scale, err = strconv.ParseFloat(s, 64); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid scale %q", s))
		}
	}

	name := c.FormValue("palette")
	if name == "" {
		name = palette.DefaultName
	}
	pal, ok := palette.Builtin(name)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown palette %q", name))
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing image")
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("could not open upload %q: %w", fh.Filename, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close upload", "name", fh.Filename, "error", closeErr)
		}
	}()

	img, _, err := pixelize.Decode(f)
	if err != nil {
		return httpError(err)
	}

	out, err := pixelize.New(scale, pal).Render(img)
	if err != nil {
		return httpError(err)
	}

	var buf bytes.Buffer
	if err := convert.Encode(&buf, out, pal, "png"); err != nil {
		return fmt.Errorf("could not encode result: %w", err)
	}

	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func httpError(err error) error {
	switch {
	case errors.Is(err, pixelize.ErrDecode):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, pixelize.ErrInvalidDimensions), errors.Is(err, pixelize.ErrInvalidScale):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return err
	}
}
