// Package fonts loads font faces for text drawn onto QR images and measures
// the exact ink bounds of rendered strings.
//
// A face is loaded from a TrueType/OpenType file when a path is given and
// readable; otherwise the embedded Go Regular face is used, so loading a
// face never fails for callers that do not care which font they get.
package fonts

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Load parses the font file at path and returns a face of the given size.
func Load(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	return parse(data, size)
}

// Default returns the embedded Go Regular face at the given size.
func Default(size float64) font.Face {
	face, err := parse(goregular.TTF, size)
	if err != nil {
		// goregular.TTF is compiled in, a parse failure is a broken build
		panic(fmt.Sprintf("failed to parse goregular TTF: %v", err))
	}
	return face
}

// LoadOrDefault tries path first and falls back to the embedded face.
func LoadOrDefault(path string, size float64) font.Face {
	if path != "" {
		if face, err := Load(path, size); err == nil {
			return face
		}
	}
	return Default(size)
}

func parse(data []byte, size float64) (font.Face, error) {
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Bounds is the ink box of a string drawn with its origin (dot) at 0,0.
// MinY is negative for glyph parts above the baseline.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Measure returns the ink bounds of s in face.
func Measure(face font.Face, s string) Bounds {
	r, _ := font.BoundString(face, s)
	return Bounds{
		MinX: toFloat(r.Min.X),
		MinY: toFloat(r.Min.Y),
		MaxX: toFloat(r.Max.X),
		MaxY: toFloat(r.Max.Y),
	}
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
