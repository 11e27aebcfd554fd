package qrcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/Badsnus/qrgen/pkg/fonts"
	"github.com/Badsnus/qrgen/pkg/logger"
	"github.com/Badsnus/qrgen/pkg/logger/types"
	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// IconSource records how an icon was produced.
type IconSource int

const (
	Fetched IconSource = iota
	Synthesized
)

func (s IconSource) String() string {
	if s == Fetched {
		return "fetched"
	}
	return "synthesized"
}

// Icon is a square RGBA brand icon. Stages that composite it never modify it.
type Icon struct {
	Image  *image.RGBA
	Source IconSource
}

// Size returns the side length in pixels.
func (i Icon) Size() int {
	return i.Image.Bounds().Dx()
}

// Fetcher retrieves the raw bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// IconProvider returns brand icons, downloading them when possible.
type IconProvider struct {
	fetcher  Fetcher
	fontPath string
	logger   *types.Logger
}

// NewIconProvider creates a provider. fontPath may be empty, in which case
// the fallback letter uses the embedded font. A nil log discards output.
func NewIconProvider(fetcher Fetcher, fontPath string, log *types.Logger) *IconProvider {
	if log == nil {
		log = logger.Nop()
	}
	return &IconProvider{
		fetcher:  fetcher,
		fontPath: fontPath,
		logger:   log,
	}
}

// Icon returns a size×size icon for platform. The only error is
// ErrUnknownPlatform; download and decode failures produce a synthesized icon.
func (p *IconProvider) Icon(ctx context.Context, platform string, size int) (Icon, error) {
	preset, ok := LookupPlatform(platform)
	if !ok {
		return Icon{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}

	img, err := p.fetch(ctx, preset, size)
	if err != nil {
		p.logger.Warnw("icon download failed, using fallback",
			"platform", preset.Name,
			"url", preset.IconURL,
			"error", err,
		)
		return Icon{Image: SynthesizeIcon(preset, size, p.fontPath), Source: Synthesized}, nil
	}

	p.logger.Debugw("icon downloaded", "platform", preset.Name, "size", size)
	return Icon{Image: img, Source: Fetched}, nil
}

func (p *IconProvider) fetch(ctx context.Context, preset Platform, size int) (*image.RGBA, error) {
	if p.fetcher == nil {
		return nil, fmt.Errorf("%w: no fetcher configured", ErrIconFetch)
	}

	data, err := p.fetcher.Fetch(ctx, preset.IconURL)
	if err != nil {
		return nil, errors.Join(ErrIconFetch, err)
	}

	src, err := DecodeIcon(data, size)
	if err != nil {
		return nil, errors.Join(ErrIconFetch, err)
	}

	resized := resize.Resize(uint(size), uint(size), src, resize.Lanczos3)
	return toRGBA(resized), nil
}

// MaxIconSide bounds the declared width and height of a downloaded raster
// icon. A few kilobytes of PNG can otherwise claim gigabytes of pixels.
const MaxIconSide = 4096

// DecodeIcon decodes raster formats registered with the image package and
// SVG documents. SVGs are rasterized directly at size×size.
func DecodeIcon(data []byte, size int) (image.Image, error) {
	if isSVG(data) {
		return rasterizeSVG(data, size)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode icon header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxIconSide || cfg.Height > MaxIconSide {
		return nil, fmt.Errorf("icon is %dx%d, limit is %d per side", cfg.Width, cfg.Height, MaxIconSide)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode icon: %w", err)
	}
	return img, nil
}

func isSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	s := strings.ToLower(strings.TrimSpace(string(head)))
	return strings.HasPrefix(s, "<svg") || (strings.HasPrefix(s, "<?xml") && strings.Contains(s, "<svg"))
}

func rasterizeSVG(data []byte, size int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// SynthesizeIcon draws the fallback icon: a circle in the brand color inset
// by 5px with the platform's first letter, uppercased, centered in white.
func SynthesizeIcon(preset Platform, size int, fontPath string) *image.RGBA {
	im := image.NewRGBA(image.Rect(0, 0, size, size))
	dc := gg.NewContextForRGBA(im)

	half := float64(size) / 2
	dc.SetColor(preset.Brand)
	dc.DrawCircle(half, half, half-5)
	dc.Fill()

	text := strings.ToUpper(preset.Name[:1])
	face := fonts.LoadOrDefault(fontPath, half)
	b := fonts.Measure(face, text)

	dc.SetFontFace(face)
	dc.SetColor(White)
	dc.DrawString(text, (float64(size)-b.Width())/2-b.MinX, (float64(size)-b.Height())/2-b.MinY)

	return im
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
