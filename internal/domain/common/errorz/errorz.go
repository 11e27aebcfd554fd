package errorz

import (
	"errors"

	"github.com/Badsnus/qrgen/pkg/qrcode"
)

// Pipeline errors raised by pkg/qrcode, re-exported so callers only need errorz.
var (
	ErrEncoding        = qrcode.ErrEncoding
	ErrColorFormat     = qrcode.ErrColorFormat
	ErrIconFetch       = qrcode.ErrIconFetch
	ErrInvalidStyle    = qrcode.ErrInvalidStyle
	ErrUnknownPlatform = qrcode.ErrUnknownPlatform
	ErrLowContrast     = qrcode.ErrLowContrast
	ErrUnscannable     = qrcode.ErrUnscannable
)

var (
	ErrEmptyData       = errors.New("data cannot be empty")
	ErrLogoSize        = errors.New("logo size out of range")
	ErrOutputExtension = errors.New("unsupported output extension")
	ErrBackgroundPair  = errors.New("background colors must be a pair")
	ErrIO              = errors.New("failed to write output")
)
