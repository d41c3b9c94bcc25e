package project

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/ha1tch/deluxepaint/layer"
	"github.com/ha1tch/deluxepaint/raster"
)

// ReadFile opens a project archive, or a PNG/JPEG image as a
// one-layer document.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), Extension) {
		info, err := f.Stat()
		if err != nil {
			return nil, err
		}
		return Load(f, info.Size())
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, errors.New("empty image")
	}
	l := layer.New(b.Dx(), b.Dy(), "Background")
	l.PutPixels(raster.Crop(img, b))
	return &Document{Width: b.Dx(), Height: b.Dy(), Layers: []*layer.Layer{l}}, nil
}

// WriteFile saves by extension: a project archive for .ddd, JPEG for
// .jpg/.jpeg and PNG otherwise. flat is the composite used for image
// exports and the project thumbnail.
func WriteFile(path string, m *layer.Manager, palette []color.NRGBA, flat image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case Extension:
		return Save(f, m, palette, flat)
	case ".jpg", ".jpeg":
		return ExportJPEG(f, flat, DefaultJPEGQuality)
	default:
		return ExportPNG(f, flat)
	}
}
