package qrcode

import "errors"

var (
	// ErrEncoding is returned when data cannot be represented as a QR symbol.
	ErrEncoding = errors.New("failed to encode QR symbol")

	// ErrColorFormat is returned for anything that is not a #RRGGBB triplet.
	ErrColorFormat = errors.New("invalid color format")

	// ErrIconFetch marks a failed icon download or decode. It never leaves
	// IconProvider.Icon, which falls back to a synthesized icon instead.
	ErrIconFetch = errors.New("failed to fetch icon")

	// ErrLowContrast is returned when dark and light modules would be too
	// close in luminance for a scanner to tell apart.
	ErrLowContrast = errors.New("insufficient module contrast")

	ErrInvalidStyle    = errors.New("invalid style")
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrUnscannable     = errors.New("rendered code is not scannable")
)
