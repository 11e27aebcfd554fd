package qrgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Badsnus/qrgen/internal/domain/entity"
	"github.com/Badsnus/qrgen/internal/domain/service"
	"github.com/Badsnus/qrgen/internal/domain/utils/validator"
	"github.com/Badsnus/qrgen/pkg/qrcode"
	"github.com/spf13/cobra"
)

type generateOpts struct {
	data     string
	platform string
	style    string
	qrColor  string
	bgColors []string
	noLogo   bool
	logoSize int
	output   string
	verify   bool
}

// request turns flag values into a GenerationRequest. Logo size is clamped
// and the output name defaulted here; everything else is left to the
// validator.
func (o generateOpts) request() (entity.GenerationRequest, error) {
	style, err := qrcode.ParseStyle(o.style)
	if err != nil {
		return entity.GenerationRequest{}, err
	}

	platform := strings.ToLower(strings.TrimSpace(o.platform))
	return entity.GenerationRequest{
		Data:             o.data,
		Platform:         platform,
		Style:            style,
		BackgroundColors: o.bgColors,
		QRColor:          strings.TrimSpace(o.qrColor),
		AddLogo:          platform != "" && !o.noLogo,
		LogoSize:         validator.LogoSize(o.logoSize),
		OutputPath:       validator.OutputPath(o.output, platform),
		Verify:           o.verify,
	}, nil
}

func (c *cli) newGenerateCmd() *cobra.Command {
	opts := generateOpts{style: qrcode.StylePlain.String(), logoSize: entity.DefaultLogoSize}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a QR code to a PNG file",
		Example: `  qrgen generate --data https://github.com/me --platform github --style rounded
  qrgen generate --data hello --style gradient --bg-colors "#FF0000,#0000FF"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.request()
			if err != nil {
				return err
			}

			app, err := c.load()
			if err != nil {
				return err
			}

			res, err := app.Service.Generate(cmd.Context(), req)
			if err != nil {
				var stageErr *service.StageError
				if errors.As(err, &stageErr) {
					return fmt.Errorf("generation failed at %s stage: %w", stageErr.Stage, stageErr.Err)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "QR code saved to %s\n", res.OutputPath)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.data, "data", "d", "", "text or URL to encode")
	f.StringVarP(&opts.platform, "platform", "p", "", "social media platform preset")
	f.StringVarP(&opts.style, "style", "s", opts.style, "plain, rounded or gradient")
	f.StringVar(&opts.qrColor, "qr-color", "", "module color as #RRGGBB")
	f.StringSliceVar(&opts.bgColors, "bg-colors", nil, "gradient top and bottom colors as #RRGGBB,#RRGGBB")
	f.BoolVar(&opts.noLogo, "no-logo", false, "do not draw the platform icon")
	f.IntVar(&opts.logoSize, "logo-size", opts.logoSize, "icon side in pixels (80-150)")
	f.StringVarP(&opts.output, "output", "o", "", "output PNG path (default <platform>_qr.png)")
	f.BoolVar(&opts.verify, "verify", false, "decode the result before saving and fail if unreadable")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}
