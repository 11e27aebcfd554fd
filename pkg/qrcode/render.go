package qrcode

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/fogleman/gg"
	"github.com/skip2/go-qrcode"
)

const (
	DefaultScale  = 20
	DefaultBorder = 4
)

// Matrix is an encoded symbol without its quiet zone.
type Matrix struct {
	Version int
	Modules [][]bool // Modules[y][x], true for dark
}

// Size returns the number of modules per side.
func (m Matrix) Size() int {
	return len(m.Modules)
}

// RenderOptions controls rasterization.
type RenderOptions struct {
	Scale  int // pixels per module
	Border int // quiet zone width in modules
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Border <= 0 {
		o.Border = DefaultBorder
	}
	return o
}

// Encode builds the module matrix for data at the highest error correction
// level, letting the encoder pick the smallest version that fits.
func Encode(data string) (Matrix, error) {
	if strings.TrimSpace(data) == "" {
		return Matrix{}, fmt.Errorf("%w: empty data", ErrEncoding)
	}

	qr, err := qrcode.New(data, qrcode.Highest)
	if err != nil {
		return Matrix{}, errors.Join(ErrEncoding, err)
	}
	qr.DisableBorder = true

	return Matrix{
		Version: qr.VersionNumber,
		Modules: qr.Bitmap(),
	}, nil
}

// Rasterize paints m onto a new bitmap: dark modules in the foreground color,
// light modules and the quiet zone in the background color.
func Rasterize(m Matrix, colors ColorPair, opts RenderOptions) *image.RGBA {
	opts = opts.withDefaults()

	side := (m.Size() + 2*opts.Border) * opts.Scale
	im := image.NewRGBA(image.Rect(0, 0, side, side))
	dc := gg.NewContextForRGBA(im)

	// Draw background
	dc.SetColor(colors.Background)
	dc.Clear()

	scale := float64(opts.Scale)
	offset := float64(opts.Border) * scale
	for y, row := range m.Modules {
		for x, dark := range row {
			if dark {
				dc.DrawRectangle(offset+float64(x)*scale, offset+float64(y)*scale, scale, scale)
			}
		}
	}
	dc.SetColor(colors.Foreground)
	dc.Fill()

	return im
}

// Render encodes data and rasterizes it in one step.
func Render(data string, colors ColorPair, opts RenderOptions) (*image.RGBA, Matrix, error) {
	m, err := Encode(data)
	if err != nil {
		return nil, Matrix{}, err
	}
	return Rasterize(m, colors, opts), m, nil
}
