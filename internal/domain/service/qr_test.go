package service

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Badsnus/qrgen/internal/adapters/storage"
	"github.com/Badsnus/qrgen/internal/domain/common/errorz"
	"github.com/Badsnus/qrgen/internal/domain/entity"
	"github.com/Badsnus/qrgen/pkg/logger"
	"github.com/Badsnus/qrgen/pkg/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type offlineFetcher struct{}

func (offlineFetcher) Fetch(context.Context, string) ([]byte, error) {
	return nil, errors.New("offline")
}

type stubIcons struct {
	icon qrcode.Icon
	err  error
}

func (s stubIcons) Icon(context.Context, string, int) (qrcode.Icon, error) {
	return s.icon, s.err
}

func newService(icons iconProvider) *QrService {
	return NewQrService(icons, storage.NewPNGWriter(), QrOptions{
		CornerRadius: qrcode.DefaultCornerRadius,
		BlendWeight:  qrcode.DefaultBlendWeight,
		MinContrast:  qrcode.DefaultMinContrast,
	}, logger.Nop())
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func rowMean(img image.Image, y int) (r, b float64) {
	w := img.Bounds().Dx()
	for x := 0; x < w; x++ {
		c := rgbaAt(img, x, y)
		r += float64(c.R)
		b += float64(c.B)
	}
	return r / float64(w), b / float64(w)
}

func TestGeneratePlatformWithLogo(t *testing.T) {
	out := filepath.Join(t.TempDir(), "github_qr.png")
	svc := newService(qrcode.NewIconProvider(offlineFetcher{}, "", nil))

	res, err := svc.Generate(context.Background(), entity.GenerationRequest{
		Data:       "https://example.com",
		Platform:   "github",
		Style:      qrcode.StylePlain,
		AddLogo:    true,
		LogoSize:   80,
		OutputPath: out,
		Verify:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, out, res.OutputPath)
	assert.Equal(t, "synthesized", res.IconSource)
	assert.Equal(t, 17+4*res.Version, res.Modules)
	assert.Equal(t, (res.Modules+2*qrcode.DefaultBorder)*qrcode.DefaultScale, res.Width)
	assert.Equal(t, res.Width, res.Height)

	img := readPNG(t, out)
	assert.Equal(t, res.Width, img.Bounds().Dx())

	text, err := qrcode.Decode(img)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", text)

	preset, _ := qrcode.LookupPlatform("github")
	icon := qrcode.SynthesizeIcon(preset, 80, "")
	origin := qrcode.LogoOrigin(img.Bounds(), 80)
	for y := 0; y < 80; y++ {
		for x := 0; x < 80; x++ {
			want := icon.RGBAAt(x, y)
			if want.A != 255 {
				continue
			}
			require.Equal(t, want, rgbaAt(img, origin.X+x, origin.Y+y), "logo pixel %d,%d", x, y)
		}
	}
}

func TestGenerateGradientWithoutPlatform(t *testing.T) {
	out := filepath.Join(t.TempDir(), "my_qr_code.png")
	svc := newService(stubIcons{err: errors.New("must not be called")})

	res, err := svc.Generate(context.Background(), entity.GenerationRequest{
		Data:             "hello",
		Style:            qrcode.StyleGradient,
		BackgroundColors: []string{"#FF0000", "#0000FF"},
		OutputPath:       out,
	})
	require.NoError(t, err)
	assert.Empty(t, res.IconSource)
	assert.Equal(t, 1, res.Version)

	img := readPNG(t, out)
	topR, topB := rowMean(img, 0)
	botR, botB := rowMean(img, img.Bounds().Dy()-1)
	assert.Greater(t, topR, topB)
	assert.Greater(t, botB, botR)

	text, err := qrcode.Decode(img)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestGenerateMalformedColorWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.png")
	svc := newService(qrcode.NewIconProvider(offlineFetcher{}, "", nil))

	_, err := svc.Generate(context.Background(), entity.GenerationRequest{
		Data:       "x",
		QRColor:    "notacolor",
		OutputPath: out,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errorz.ErrColorFormat)

	var stage *StageError
	require.True(t, errors.As(err, &stage))
	assert.Equal(t, StageValidate, stage.Stage)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateLowContrast(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.png")
	svc := NewQrService(nil, storage.NewPNGWriter(), QrOptions{BlendWeight: 0.3}, logger.Nop())

	_, err := svc.Generate(context.Background(), entity.GenerationRequest{
		Data:             "x",
		Style:            qrcode.StyleGradient,
		BackgroundColors: []string{"#FFFFFF", "#FFFFFF"},
		OutputPath:       out,
	})
	assert.ErrorIs(t, err, errorz.ErrLowContrast)

	var stage *StageError
	require.True(t, errors.As(err, &stage))
	assert.Equal(t, StageColors, stage.Stage)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateLightPresetsStayScannable(t *testing.T) {
	svc := newService(qrcode.NewIconProvider(offlineFetcher{}, "", nil))

	for _, platform := range []string{"whatsapp", "twitter", "discord"} {
		for _, style := range []qrcode.Style{qrcode.StylePlain, qrcode.StyleGradient} {
			t.Run(platform+"/"+style.String(), func(t *testing.T) {
				out := filepath.Join(t.TempDir(), platform+".png")
				_, err := svc.Generate(context.Background(), entity.GenerationRequest{
					Data:       "https://example.com",
					Platform:   platform,
					Style:      style,
					AddLogo:    true,
					LogoSize:   80,
					OutputPath: out,
				})
				require.NoError(t, err)

				text, err := qrcode.Decode(readPNG(t, out))
				require.NoError(t, err)
				assert.Equal(t, "https://example.com", text)
			})
		}
	}
}

func TestGenerateWhiteOverrideIsDarkened(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x.png")
	svc := newService(nil)

	_, err := svc.Generate(context.Background(), entity.GenerationRequest{
		Data:       "x",
		QRColor:    "#FFFFFF",
		OutputPath: out,
	})
	require.NoError(t, err)

	text, err := qrcode.Decode(readPNG(t, out))
	require.NoError(t, err)
	assert.Equal(t, "x", text)
}

func TestGenerateVerifyFailure(t *testing.T) {
	// an icon larger than the whole symbol hides every module
	cover := image.NewRGBA(image.Rect(0, 0, 2000, 2000))
	draw.Draw(cover, cover.Bounds(), image.NewUniform(color.RGBA{R: 255, A: 255}), image.Point{}, draw.Src)

	out := filepath.Join(t.TempDir(), "x.png")
	svc := newService(stubIcons{icon: qrcode.Icon{Image: cover, Source: qrcode.Fetched}})

	_, err := svc.Generate(context.Background(), entity.GenerationRequest{
		Data:       "https://example.com",
		Platform:   "youtube",
		AddLogo:    true,
		LogoSize:   150,
		OutputPath: out,
		Verify:     true,
	})
	assert.ErrorIs(t, err, errorz.ErrUnscannable)

	var stage *StageError
	require.True(t, errors.As(err, &stage))
	assert.Equal(t, StageVerify, stage.Stage)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateIconError(t *testing.T) {
	svc := newService(stubIcons{err: errorz.ErrUnknownPlatform})

	_, err := svc.Generate(context.Background(), entity.GenerationRequest{
		Data:       "x",
		Platform:   "github",
		AddLogo:    true,
		LogoSize:   80,
		OutputPath: filepath.Join(t.TempDir(), "x.png"),
	})

	var stage *StageError
	require.True(t, errors.As(err, &stage))
	assert.Equal(t, StageIcon, stage.Stage)
	assert.Contains(t, err.Error(), "icon: ")
}

func TestGenerateWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o644))

	svc := newService(nil)
	_, err := svc.Generate(context.Background(), entity.GenerationRequest{
		Data:       "x",
		OutputPath: filepath.Join(blocker, "out.png"),
	})
	assert.ErrorIs(t, err, errorz.ErrIO)

	var stage *StageError
	require.True(t, errors.As(err, &stage))
	assert.Equal(t, StageWrite, stage.Stage)
}
