package qrcode

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
)

// Style selects the visual treatment applied after rasterization.
type Style int

const (
	StylePlain Style = iota
	StyleRounded
	StyleGradient
)

const (
	DefaultCornerRadius = 30
	DefaultBlendWeight  = 0.8
	DefaultMinContrast  = 0.65
)

func (s Style) String() string {
	switch s {
	case StylePlain:
		return "plain"
	case StyleRounded:
		return "rounded"
	case StyleGradient:
		return "gradient"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ParseStyle accepts "plain" (or its older name "default"), "rounded" and
// "gradient", case-insensitively. An empty string means plain.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain", "default":
		return StylePlain, nil
	case "rounded":
		return StyleRounded, nil
	case "gradient":
		return StyleGradient, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidStyle, s)
	}
}

// StyleOptions carries the per-request inputs of the style stage.
type StyleOptions struct {
	Colors       ColorPair
	Gradient     []color.RGBA // top and bottom; empty means Colors.Background twice
	CornerRadius float64
	BlendWeight  float64 // share of the QR bitmap in the gradient blend
}

func (o StyleOptions) withDefaults() StyleOptions {
	if o.CornerRadius <= 0 {
		o.CornerRadius = DefaultCornerRadius
	}
	if o.BlendWeight <= 0 || o.BlendWeight > 1 {
		o.BlendWeight = DefaultBlendWeight
	}
	return o
}

// gradientStops returns the top and bottom colors of the gradient canvas.
func (o StyleOptions) gradientStops() (color.RGBA, color.RGBA) {
	if len(o.Gradient) >= 2 {
		return o.Gradient[0], o.Gradient[1]
	}
	return o.Colors.Background, o.Colors.Background
}

// ApplyStyle transforms img according to style. The module pattern is never
// changed; plain returns img itself.
func ApplyStyle(img *image.RGBA, style Style, opts StyleOptions) (*image.RGBA, error) {
	opts = opts.withDefaults()

	switch style {
	case StylePlain:
		return img, nil
	case StyleRounded:
		return roundCorners(img, opts.CornerRadius)
	case StyleGradient:
		top, bottom := opts.gradientStops()
		return blend(gradientCanvas(img.Bounds(), top, bottom), img, opts.BlendWeight), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidStyle, style)
	}
}

// roundCorners draws img through a rounded-rectangle mask onto an opaque
// white canvas, so the cut corners end up white rather than transparent.
func roundCorners(img *image.RGBA, radius float64) (*image.RGBA, error) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	maskCtx := gg.NewContext(w, h)
	maskCtx.DrawRoundedRectangle(0, 0, float64(w), float64(h), radius)
	maskCtx.SetColor(color.White)
	maskCtx.Fill()

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	dc := gg.NewContextForRGBA(out)
	dc.SetColor(White)
	dc.Clear()
	if err := dc.SetMask(maskCtx.AsMask()); err != nil {
		return nil, fmt.Errorf("rounding corners: %w", err)
	}
	dc.DrawImage(img, 0, 0)

	return out, nil
}

// gradientCanvas fills r with a vertical gradient from top to bottom.
func gradientCanvas(r image.Rectangle, top, bottom color.RGBA) *image.RGBA {
	w, h := r.Dx(), r.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	dc := gg.NewContextForRGBA(out)

	grad := gg.NewLinearGradient(0, 0, 0, float64(h))
	grad.AddColorStop(0, top)
	grad.AddColorStop(1, bottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()

	return out
}

// blend returns weight*fg + (1-weight)*bg per channel. Both images must be
// opaque and the same size.
func blend(bg, fg *image.RGBA, weight float64) *image.RGBA {
	out := image.NewRGBA(bg.Bounds())
	for i := 0; i < len(out.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := float64(fg.Pix[i+c])*weight + float64(bg.Pix[i+c])*(1-weight)
			out.Pix[i+c] = uint8(math.Round(v))
		}
		out.Pix[i+3] = 255
	}
	return out
}

type modulePair struct{ dark, light color.RGBA }

// modulePairs predicts the dark and light module colors the style will
// produce. The gradient style yields one pair per gradient end; the blend is
// linear, so everything in between lies between the two.
func (o StyleOptions) modulePairs(style Style) []modulePair {
	if style != StyleGradient {
		return []modulePair{{o.Colors.Foreground, o.Colors.Background}}
	}
	top, bottom := o.gradientStops()
	return []modulePair{
		{mix(o.Colors.Foreground, top, o.BlendWeight), mix(o.Colors.Background, top, o.BlendWeight)},
		{mix(o.Colors.Foreground, bottom, o.BlendWeight), mix(o.Colors.Background, bottom, o.BlendWeight)},
	}
}

// CheckContrast rejects styled output whose module contrast, as measured by
// ModuleContrast, falls below minContrast anywhere in the symbol.
func CheckContrast(style Style, opts StyleOptions, minContrast float64) error {
	opts = opts.withDefaults()
	if minContrast <= 0 || minContrast >= 1 {
		minContrast = DefaultMinContrast
	}

	for _, p := range opts.modulePairs(style) {
		if c := ModuleContrast(p.dark, p.light); c < minContrast {
			return fmt.Errorf("%w: %s on %s has contrast %.2f, need %.2f",
				ErrLowContrast, Hex(p.dark), Hex(p.light), c, minContrast)
		}
	}
	return nil
}

// darkenSteps is how finely EnsureContrast walks the foreground toward black.
const darkenSteps = 40

// EnsureContrast returns opts.Colors with the foreground darkened just
// enough for CheckContrast to pass. Colors that already pass come back
// unchanged. ErrLowContrast is returned only when black modules would still
// be too light, which happens with a weak blend weight over a bright
// gradient.
func EnsureContrast(style Style, opts StyleOptions, minContrast float64) (ColorPair, error) {
	original := opts.Colors.Foreground

	var err error
	for i := darkenSteps; i >= 0; i-- {
		opts.Colors.Foreground = darken(original, float64(i)/darkenSteps)
		if err = CheckContrast(style, opts, minContrast); err == nil {
			return opts.Colors, nil
		}
	}
	return ColorPair{}, err
}
