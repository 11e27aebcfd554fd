package qrcode

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func renderHello(t *testing.T, colors ColorPair) *image.RGBA {
	t.Helper()
	img, _, err := Render("hello", colors, RenderOptions{})
	require.NoError(t, err)
	return img
}

func rowMean(img *image.RGBA, y int) [3]float64 {
	var sum [3]float64
	w := img.Bounds().Dx()
	for x := 0; x < w; x++ {
		c := img.RGBAAt(x, y)
		sum[0] += float64(c.R)
		sum[1] += float64(c.G)
		sum[2] += float64(c.B)
	}
	for i := range sum {
		sum[i] /= float64(w)
	}
	return sum
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		input   string
		want    Style
		wantErr bool
	}{
		{input: "", want: StylePlain},
		{input: "plain", want: StylePlain},
		{input: "default", want: StylePlain},
		{input: "Rounded", want: StyleRounded},
		{input: " gradient ", want: StyleGradient},
		{input: "sparkly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStyle(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStyle)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Style {
	t.Helper()
	st, err := ParseStyle(s)
	require.NoError(t, err)
	return st
}

func TestApplyStylePlainIsIdentity(t *testing.T) {
	img := renderHello(t, ColorPair{Foreground: Black, Background: White})
	out, err := ApplyStyle(img, StylePlain, StyleOptions{})
	require.NoError(t, err)
	assert.Same(t, img, out)
}

func TestApplyStyleUnknown(t *testing.T) {
	img := renderHello(t, ColorPair{Foreground: Black, Background: White})
	_, err := ApplyStyle(img, Style(42), StyleOptions{})
	assert.ErrorIs(t, err, ErrInvalidStyle)
}

func TestApplyStyleRounded(t *testing.T) {
	// a non-white background makes the white corners distinguishable
	bg := color.RGBA{R: 250, G: 240, B: 10, A: 255}
	img := renderHello(t, ColorPair{Foreground: Black, Background: bg})

	out, err := ApplyStyle(img, StyleRounded, StyleOptions{})
	require.NoError(t, err)

	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	require.Equal(t, img.Bounds(), out.Bounds())
	for _, p := range []image.Point{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}} {
		assert.Equal(t, White, out.RGBAAt(p.X, p.Y), "corner %v", p)
	}

	// away from the corners the content is untouched
	for _, p := range []image.Point{{w / 2, h / 2}, {w / 2, 40}, {40, h / 2}, {100, 100}} {
		assert.Equal(t, img.RGBAAt(p.X, p.Y), out.RGBAAt(p.X, p.Y), "pixel %v", p)
	}
	assert.Equal(t, color.RGBA{A: 255}, out.RGBAAt(85, 85), "finder pattern survives")
}

func TestApplyStyleGradientDistinctColors(t *testing.T) {
	img := renderHello(t, ColorPair{Foreground: Black, Background: White})

	out, err := ApplyStyle(img, StyleGradient, StyleOptions{
		Colors:   ColorPair{Foreground: Black, Background: White},
		Gradient: []color.RGBA{red, blue},
	})
	require.NoError(t, err)

	top := rowMean(out, 0)
	bottom := rowMean(out, out.Bounds().Dy()-1)
	assert.NotEqual(t, top, bottom)
	assert.Greater(t, top[0], top[2], "top skews red")
	assert.Greater(t, bottom[2], bottom[0], "bottom skews blue")

	// 80% white + 20% red on the quiet zone
	c := out.RGBAAt(0, 0)
	assert.InDelta(t, 255, int(c.R), 1)
	assert.InDelta(t, 204, int(c.G), 1)
	assert.InDelta(t, 204, int(c.B), 1)
}

func TestApplyStyleGradientSameColor(t *testing.T) {
	img := renderHello(t, ColorPair{Foreground: Black, Background: White})

	for _, opts := range []StyleOptions{
		{Colors: ColorPair{Foreground: Black, Background: White}, Gradient: []color.RGBA{red, red}},
		{Colors: ColorPair{Foreground: Black, Background: White}},
	} {
		out, err := ApplyStyle(img, StyleGradient, opts)
		require.NoError(t, err)
		assert.Equal(t, rowMean(out, 0), rowMean(out, out.Bounds().Dy()-1))
	}
}

func TestApplyStyleGradientKeepsModules(t *testing.T) {
	img := renderHello(t, ColorPair{Foreground: Black, Background: White})
	out, err := ApplyStyle(img, StyleGradient, StyleOptions{
		Colors:   ColorPair{Foreground: Black, Background: White},
		Gradient: []color.RGBA{red, blue},
	})
	require.NoError(t, err)

	// dark finder module: 80% black + 20% gradient is still dark
	c := out.RGBAAt(85, 85)
	assert.Less(t, int(c.R)+int(c.G)+int(c.B), 3*60)
	assert.Equal(t, uint8(255), c.A)
}

func TestStyledRoundTrip(t *testing.T) {
	colors := ColorPair{Foreground: Black, Background: White}
	cases := map[string]StyleOptions{
		"plain":   {Colors: colors},
		"rounded": {Colors: colors},
		"gradient": {
			Colors:   colors,
			Gradient: []color.RGBA{red, blue},
		},
	}

	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			style := mustParse(t, name)
			img, _, err := Render("https://example.com", colors, RenderOptions{})
			require.NoError(t, err)

			out, err := ApplyStyle(img, style, opts)
			require.NoError(t, err)
			assert.NoError(t, Verify(out, "https://example.com"))
		})
	}
}

func TestApplyStyleRoundedTinyImage(t *testing.T) {
	img := whiteCanvas(3, 5)
	out, err := ApplyStyle(img, StyleRounded, StyleOptions{CornerRadius: 30})
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), out.Bounds())
}

func gray(v uint8) color.RGBA {
	return color.RGBA{R: v, G: v, B: v, A: 255}
}

func TestCheckContrast(t *testing.T) {
	black := ColorPair{Foreground: Black, Background: White}
	tests := []struct {
		name    string
		style   Style
		opts    StyleOptions
		wantErr bool
	}{
		{name: "black on white", style: StylePlain, opts: StyleOptions{Colors: black}},
		{name: "brand green too light", style: StylePlain, opts: StyleOptions{Colors: ColorPair{Foreground: platforms["whatsapp"].Brand, Background: White}}, wantErr: true},
		{name: "white on white", style: StylePlain, opts: StyleOptions{Colors: ColorPair{Foreground: White, Background: White}}, wantErr: true},
		{name: "gray 85 passes", style: StylePlain, opts: StyleOptions{Colors: ColorPair{Foreground: gray(85), Background: White}}},
		{name: "gray 95 fails", style: StylePlain, opts: StyleOptions{Colors: ColorPair{Foreground: gray(95), Background: White}}, wantErr: true},
		{name: "red to blue gradient", style: StyleGradient, opts: StyleOptions{Colors: black, Gradient: []color.RGBA{red, blue}}},
		{
			name:    "brand blue washed out by gradient",
			style:   StyleGradient,
			opts:    StyleOptions{Colors: ColorPair{Foreground: platforms["facebook"].Brand, Background: White}},
			wantErr: true,
		},
		{
			name:    "weak blend over white",
			style:   StyleGradient,
			opts:    StyleOptions{Colors: black, Gradient: []color.RGBA{White, White}, BlendWeight: 0.3},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckContrast(tt.style, tt.opts, 0)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrLowContrast)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEnsureContrastKeepsReadableColors(t *testing.T) {
	colors := ColorPair{Foreground: Black, Background: White}
	got, err := EnsureContrast(StyleGradient, StyleOptions{Colors: colors, Gradient: []color.RGBA{red, blue}}, 0)
	require.NoError(t, err)
	assert.Equal(t, colors, got)
}

func TestEnsureContrastDarkensPresets(t *testing.T) {
	gradients := map[string][]color.RGBA{
		"default":  nil,
		"red-blue": {red, blue},
	}

	for _, p := range Platforms() {
		for _, style := range []Style{StylePlain, StyleRounded, StyleGradient} {
			for gname, grad := range gradients {
				t.Run(p.Name+"/"+style.String()+"/"+gname, func(t *testing.T) {
					opts := StyleOptions{Colors: ColorPair{Foreground: p.Brand, Background: White}, Gradient: grad}

					got, err := EnsureContrast(style, opts, 0)
					require.NoError(t, err)
					assert.Equal(t, White, got.Background)

					opts.Colors = got
					assert.NoError(t, CheckContrast(style, opts, 0))
					if CheckContrast(style, StyleOptions{Colors: ColorPair{Foreground: p.Brand, Background: White}, Gradient: grad}, 0) == nil {
						assert.Equal(t, p.Brand, got.Foreground, "readable preset left alone")
					}
				})
			}
		}
	}
}

func TestEnsureContrastKeepsHue(t *testing.T) {
	brand := platforms["whatsapp"].Brand
	got, err := EnsureContrast(StylePlain, StyleOptions{Colors: ColorPair{Foreground: brand, Background: White}}, 0)
	require.NoError(t, err)

	assert.NotEqual(t, brand, got.Foreground)
	assert.Greater(t, got.Foreground.G, got.Foreground.R)
	assert.Greater(t, got.Foreground.G, got.Foreground.B)
	assert.LessOrEqual(t, Luma(got.Foreground), (1-DefaultMinContrast)*255)
}

func TestEnsureContrastYellowOverride(t *testing.T) {
	colors, err := ResolveColors("", "#FFFF00")
	require.NoError(t, err)

	got, err := EnsureContrast(StylePlain, StyleOptions{Colors: colors}, 0)
	require.NoError(t, err)
	assert.Equal(t, got.Foreground.R, got.Foreground.G)
	assert.Zero(t, got.Foreground.B)

	img, _, err := Render("https://example.com", got, RenderOptions{})
	require.NoError(t, err)
	assert.NoError(t, Verify(img, "https://example.com"))
}

func TestEnsureContrastImpossible(t *testing.T) {
	_, err := EnsureContrast(StyleGradient, StyleOptions{
		Colors:      ColorPair{Foreground: Black, Background: White},
		Gradient:    []color.RGBA{White, White},
		BlendWeight: 0.3,
	}, 0)
	assert.ErrorIs(t, err, ErrLowContrast)
}
