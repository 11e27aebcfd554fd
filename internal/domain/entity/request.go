package entity

import (
	"github.com/Badsnus/qrgen/pkg/qrcode"
)

const (
	MinLogoSize     = 80
	MaxLogoSize     = 150
	DefaultLogoSize = 80

	OutputExtension   = ".png"
	DefaultOutputName = "my_qr_code.png"
)

// GenerationRequest describes one QR image to produce. It is built once from
// user input and never modified by the pipeline.
type GenerationRequest struct {
	Data             string
	Platform         string // empty for none
	Style            qrcode.Style
	BackgroundColors []string // gradient top and bottom, "#RRGGBB"
	QRColor          string   // "#RRGGBB", empty for the platform default
	AddLogo          bool
	LogoSize         int
	OutputPath       string
	Verify           bool
}

// DefaultOutputPath is "<platform>_qr.png", or DefaultOutputName without a platform.
func DefaultOutputPath(platform string) string {
	if platform == "" {
		return DefaultOutputName
	}
	return platform + "_qr" + OutputExtension
}

// GenerationResult is returned for a successful request.
type GenerationResult struct {
	OutputPath string
	Version    int
	Modules    int
	Width      int
	Height     int
	IconSource string // empty when no logo was drawn
}
