package validator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Badsnus/qrgen/internal/domain/common/errorz"
	"github.com/Badsnus/qrgen/internal/domain/entity"
	"github.com/Badsnus/qrgen/pkg/qrcode"
)

// Request checks everything about req that can be known before rendering.
// Color strings are parsed here so malformed input fails before any work.
func Request(req entity.GenerationRequest) error {
	if strings.TrimSpace(req.Data) == "" {
		return errorz.ErrEmptyData
	}

	if req.Platform != "" {
		if _, ok := qrcode.LookupPlatform(req.Platform); !ok {
			return fmt.Errorf("%w: %q", errorz.ErrUnknownPlatform, req.Platform)
		}
	}

	if req.AddLogo && (req.LogoSize < entity.MinLogoSize || req.LogoSize > entity.MaxLogoSize) {
		return fmt.Errorf("%w: %d not in [%d,%d]", errorz.ErrLogoSize, req.LogoSize, entity.MinLogoSize, entity.MaxLogoSize)
	}

	if req.QRColor != "" {
		if _, err := qrcode.ParseHex(req.QRColor); err != nil {
			return err
		}
	}

	switch len(req.BackgroundColors) {
	case 0, 2:
	default:
		return fmt.Errorf("%w: got %d", errorz.ErrBackgroundPair, len(req.BackgroundColors))
	}
	for _, c := range req.BackgroundColors {
		if _, err := qrcode.ParseHex(c); err != nil {
			return err
		}
	}

	if ext := filepath.Ext(req.OutputPath); !strings.EqualFold(ext, entity.OutputExtension) {
		return fmt.Errorf("%w: %q", errorz.ErrOutputExtension, req.OutputPath)
	}

	return nil
}

// OutputPath applies the default file name and appends ".png" to names
// without an extension.
func OutputPath(path, platform string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return entity.DefaultOutputPath(platform)
	}
	if filepath.Ext(path) == "" {
		return path + entity.OutputExtension
	}
	return path
}

// LogoSize clamps size into the accepted range; zero selects the default.
func LogoSize(size int) int {
	switch {
	case size == 0:
		return entity.DefaultLogoSize
	case size < entity.MinLogoSize:
		return entity.MinLogoSize
	case size > entity.MaxLogoSize:
		return entity.MaxLogoSize
	default:
		return size
	}
}
