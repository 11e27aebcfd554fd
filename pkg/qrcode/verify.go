package qrcode

import (
	"errors"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
)

// Decode reads the QR symbol in img and returns its text.
func Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("creating bitmap: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", errors.Join(ErrUnscannable, err)
	}

	return result.GetText(), nil
}

// Verify decodes img and checks that it carries exactly want.
func Verify(img image.Image, want string) error {
	got, err := Decode(img)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%w: decoded %q, want %q", ErrUnscannable, got, want)
	}
	return nil
}
