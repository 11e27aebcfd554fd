package service

import (
	"context"
	"image"

	"github.com/Badsnus/qrgen/internal/domain/entity"
	"github.com/Badsnus/qrgen/internal/domain/utils/validator"
	"github.com/Badsnus/qrgen/pkg/fonts"
	"github.com/Badsnus/qrgen/pkg/logger/types"
	"github.com/Badsnus/qrgen/pkg/qrcode"
)

type iconProvider interface {
	Icon(ctx context.Context, platform string, size int) (qrcode.Icon, error)
}

type outputWriter interface {
	Write(path string, img image.Image) error
}

// QrOptions are the rendering constants shared by every request.
type QrOptions struct {
	Render        qrcode.RenderOptions
	CornerRadius  float64
	BlendWeight   float64
	MinContrast   float64
	LabelFontSize float64
	FontPath      string
}

type QrService struct {
	icons  iconProvider
	writer outputWriter
	opts   QrOptions
	logger *types.Logger
}

func NewQrService(icons iconProvider, writer outputWriter, opts QrOptions, logger *types.Logger) *QrService {
	if opts.LabelFontSize <= 0 {
		opts.LabelFontSize = qrcode.DefaultLabelFontSize
	}
	return &QrService{
		icons:  icons,
		writer: writer,
		opts:   opts,
		logger: logger,
	}
}

// Generate runs the whole pipeline for req and writes the image. Errors are
// *StageError values; nothing is written unless every stage succeeded.
func (s *QrService) Generate(ctx context.Context, req entity.GenerationRequest) (entity.GenerationResult, error) {
	var result entity.GenerationResult

	if err := validator.Request(req); err != nil {
		return result, stageErr(StageValidate, err)
	}

	colors, err := qrcode.ResolveColors(req.Platform, req.QRColor)
	if err != nil {
		return result, stageErr(StageColors, err)
	}

	styleOpts := qrcode.StyleOptions{
		Colors:       colors,
		CornerRadius: s.opts.CornerRadius,
		BlendWeight:  s.opts.BlendWeight,
	}
	for _, hex := range req.BackgroundColors {
		c, err := qrcode.ParseHex(hex)
		if err != nil {
			return result, stageErr(StageColors, err)
		}
		styleOpts.Gradient = append(styleOpts.Gradient, c)
	}
	readable, err := qrcode.EnsureContrast(req.Style, styleOpts, s.opts.MinContrast)
	if err != nil {
		return result, stageErr(StageColors, err)
	}
	if readable.Foreground != colors.Foreground {
		s.logger.Warnw("module color too light to scan, darkened",
			"requested", qrcode.Hex(colors.Foreground),
			"used", qrcode.Hex(readable.Foreground),
			"style", req.Style.String(),
		)
		colors = readable
		styleOpts.Colors = readable
	}

	img, matrix, err := qrcode.Render(req.Data, colors, s.opts.Render)
	if err != nil {
		return result, stageErr(StageRender, err)
	}
	s.logger.Debugw("symbol rendered",
		"version", matrix.Version,
		"modules", matrix.Size(),
		"foreground", qrcode.Hex(colors.Foreground),
	)

	img, err = qrcode.ApplyStyle(img, req.Style, styleOpts)
	if err != nil {
		return result, stageErr(StageStyle, err)
	}

	if preset, ok := qrcode.LookupPlatform(req.Platform); ok {
		if req.AddLogo {
			icon, err := s.icons.Icon(ctx, preset.Name, req.LogoSize)
			if err != nil {
				return result, stageErr(StageIcon, err)
			}
			qrcode.AddLogo(img, icon)
			result.IconSource = icon.Source.String()
		}
		qrcode.AddLabel(img, preset, fonts.LoadOrDefault(s.opts.FontPath, s.opts.LabelFontSize))
	}

	if req.Verify {
		if err = qrcode.Verify(img, req.Data); err != nil {
			return result, stageErr(StageVerify, err)
		}
	}

	if err = s.writer.Write(req.OutputPath, img); err != nil {
		return result, stageErr(StageWrite, err)
	}

	result.OutputPath = req.OutputPath
	result.Version = matrix.Version
	result.Modules = matrix.Size()
	result.Width = img.Bounds().Dx()
	result.Height = img.Bounds().Dy()

	s.logger.Infow("qr code generated",
		"path", result.OutputPath,
		"style", req.Style.String(),
		"platform", req.Platform,
		"size", result.Width,
	)
	return result, nil
}

