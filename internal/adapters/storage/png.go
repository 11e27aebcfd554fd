package storage

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/Badsnus/qrgen/internal/domain/common/errorz"
	"github.com/google/uuid"
)

// PNGWriter stores images as opaque PNG files. A file either appears
// complete at its final path or not at all.
type PNGWriter struct {
	encoder png.Encoder
}

func NewPNGWriter() *PNGWriter {
	return &PNGWriter{encoder: png.Encoder{CompressionLevel: png.BestCompression}}
}

// Write encodes img into a temporary file next to path and renames it into
// place once it is fully written and synced.
func (w *PNGWriter) Write(path string, img image.Image) (err error) {
	dir := filepath.Dir(path)
	created, err := ensureDir(dir)
	defer func() {
		if err != nil {
			removeDirs(created)
		}
	}()
	if err != nil {
		return errors.Join(errorz.ErrIO, err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.tmp", uuid.New().String()))
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Join(errorz.ErrIO, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err = w.encoder.Encode(f, opaque(img)); err != nil {
		return errors.Join(errorz.ErrIO, fmt.Errorf("failed to encode png: %w", err))
	}
	if err = f.Sync(); err != nil {
		return errors.Join(errorz.ErrIO, err)
	}
	if err = f.Close(); err != nil {
		return errors.Join(errorz.ErrIO, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return errors.Join(errorz.ErrIO, err)
	}

	return nil
}

// opaque flattens img onto white so the file carries no alpha channel.
func opaque(img image.Image) image.Image {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

// ensureDir creates dir if needed and returns the directories it created,
// deepest first.
func ensureDir(dir string) ([]string, error) {
	var missing []string
	for d := dir; ; d = filepath.Dir(d) {
		if _, err := os.Stat(d); !os.IsNotExist(err) {
			break
		}
		missing = append(missing, d)
		if filepath.Dir(d) == d {
			break
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return missing, fmt.Errorf("failed to create output directory: %w", err)
	}
	return missing, nil
}

// removeDirs deletes directories left empty by a failed write.
func removeDirs(dirs []string) {
	for _, d := range dirs {
		_ = os.Remove(d)
	}
}
