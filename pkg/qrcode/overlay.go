package qrcode

import (
	"image"
	"image/color"
	"strings"

	"github.com/Badsnus/qrgen/pkg/fonts"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

const (
	DefaultLabelFontSize = 30
	LabelBottomOffset    = 40
	LabelShadowOffset    = 2
)

var LabelShadowColor = color.RGBA{R: 100, G: 100, B: 100, A: 255}

// LogoOrigin is the top-left corner that centers an icon of side s.
func LogoOrigin(bounds image.Rectangle, s int) image.Point {
	return image.Pt(bounds.Min.X+(bounds.Dx()-s)/2, bounds.Min.Y+(bounds.Dy()-s)/2)
}

// AddLogo draws icon centered on img in place, using the icon's alpha so
// transparent icon pixels leave the code beneath untouched. The modules it
// covers are recovered by the highest error correction level.
func AddLogo(img *image.RGBA, icon Icon) {
	at := LogoOrigin(img.Bounds(), icon.Size())
	dc := gg.NewContextForRGBA(img)
	dc.DrawImage(icon.Image, at.X, at.Y)
}

// LabelOrigin returns the dot position for text so that its ink box is
// horizontally centered in a width×height image and its top sits
// LabelBottomOffset pixels above the bottom edge.
func LabelOrigin(face font.Face, text string, width, height int) (float64, float64) {
	b := fonts.Measure(face, text)
	x := (float64(width)-b.Width())/2 - b.MinX
	y := float64(height-LabelBottomOffset) - b.MinY
	return x, y
}

// AddLabel writes the platform name, uppercased, near the bottom of img in
// place: first a gray shadow offset by two pixels, then the brand color.
func AddLabel(img *image.RGBA, preset Platform, face font.Face) {
	text := strings.ToUpper(preset.Name)
	x, y := LabelOrigin(face, text, img.Bounds().Dx(), img.Bounds().Dy())

	dc := gg.NewContextForRGBA(img)
	dc.SetFontFace(face)

	dc.SetColor(LabelShadowColor)
	dc.DrawString(text, x+LabelShadowOffset, y+LabelShadowOffset)

	dc.SetColor(preset.Brand)
	dc.DrawString(text, x, y)
}
