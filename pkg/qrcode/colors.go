package qrcode

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// ColorPair is the resolved foreground (dark modules) and background
// (light modules) of a symbol.
type ColorPair struct {
	Foreground color.RGBA
	Background color.RGBA
}

// ParseHex parses a "#RRGGBB" triplet. The leading '#' may be omitted.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrColorFormat, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrColorFormat, s)
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

// Hex formats c as "#RRGGBB".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ResolveColors picks the module colors for a request. A known platform
// starts from its brand preset, anything else from black on white. A
// non-empty qrColor replaces the foreground regardless of platform.
func ResolveColors(platform, qrColor string) (ColorPair, error) {
	pair := ColorPair{Foreground: Black, Background: White}
	if p, ok := LookupPlatform(platform); ok {
		pair.Foreground = p.Brand
	}

	if qrColor != "" {
		fg, err := ParseHex(qrColor)
		if err != nil {
			return ColorPair{}, err
		}
		pair.Foreground = fg
	}

	return pair, nil
}

// Luma is the brightness a binarizing decoder sees for c, (R+2G+B)/4.
func Luma(c color.RGBA) float64 {
	return (float64(c.R) + 2*float64(c.G) + float64(c.B)) / 4
}

// ModuleContrast is how much darker dark is than light, (light-dark)/light
// in luma. Decoders threshold each block near half its brightness, so a
// readable symbol needs a value comfortably above 0.5.
func ModuleContrast(dark, light color.RGBA) float64 {
	l := Luma(light)
	if l == 0 {
		return 0
	}
	return (l - Luma(dark)) / l
}

// darken scales every channel of c by k in [0,1], keeping its hue.
func darken(c color.RGBA, k float64) color.RGBA {
	ch := func(v uint8) uint8 {
		return uint8(math.Round(float64(v) * k))
	}
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: 255}
}

// mix returns weight*a + (1-weight)*b per channel, the same arithmetic the
// gradient blend applies to every pixel.
func mix(a, b color.RGBA, weight float64) color.RGBA {
	ch := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x)*weight + float64(y)*(1-weight)))
	}
	return color.RGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: 255}
}
