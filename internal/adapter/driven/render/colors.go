package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor converte cores no formato #rgb, #rrggbb, rgb(r,g,b) ou rgba(r,g,b,a).
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(v, "#"):
		c, err := colorful.Hex(v)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	case strings.HasPrefix(v, "rgba(") || strings.HasPrefix(v, "rgb("):
		return parseFunctional(v)
	case v == "white":
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}, nil
	case v == "black":
		return color.NRGBA{A: 255}, nil
	}
	return color.NRGBA{}, fmt.Errorf("unsupported color %q", s)
}

func parseFunctional(v string) (color.NRGBA, error) {
	open, end := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
	if open < 0 || end < open {
		return color.NRGBA{}, fmt.Errorf("malformed color %q", v)
	}
	parts := strings.Split(v[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("malformed color %q", v)
	}

	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("malformed color %q: %w", v, err)
		}
		ch[i] = f
	}

	return color.NRGBA{
		R: clampByte(ch[0]),
		G: clampByte(ch[1]),
		B: clampByte(ch[2]),
		A: clampByte(ch[3] * 255),
	}, nil
}

func clampByte(f float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, f))))
}

// colorOr resolve a cor ou devolve o fallback quando a string é inválida.
func colorOr(s string, fallback color.NRGBA) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

// hexColor normaliza a cor para #rrggbb (sem alpha), usado por saídas que não aceitam rgba.
func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Cores fixas compartilhadas pelos renderizadores.
var (
	axisColor    = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	labelColor   = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	messageColor = color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
	white        = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	fallbackHistorical = color.NRGBA{R: 14, G: 165, B: 233, A: 204}
	fallbackForecast   = color.NRGBA{R: 249, G: 115, B: 22, A: 204}
)
