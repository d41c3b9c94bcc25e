package project

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/ha1tch/deluxepaint"
	"github.com/ha1tch/deluxepaint/layer"
	"github.com/ha1tch/deluxepaint/raster"
)

// Extension is the file extension of project archives.
const Extension = ".ddd"

const (
	manifestName  = "project.json"
	thumbnailName = "thumbnail.png"
	thumbnailSide = 256
)

var (
	// ErrNoManifest is returned when an archive has no project.json.
	ErrNoManifest = errors.New("project.json not found in archive")
	// ErrBadLayer is returned when a layer image cannot be decoded.
	ErrBadLayer = errors.New("bad layer image")
)

// Data is the JSON manifest stored in an archive.
type Data struct {
	CanvasWidth  int         `json:"canvas_width"`
	CanvasHeight int         `json:"canvas_height"`
	Active       int         `json:"active"`
	Layers       []LayerData `json:"layers"`
	Palette      []ColorData `json:"palette"`
}

// LayerData holds a layer's properties; its pixels live in layer_N.png.
type LayerData struct {
	Name      string  `json:"name"`
	Visible   bool    `json:"visible"`
	Locked    bool    `json:"locked"`
	Opacity   float64 `json:"opacity"`
	BlendMode string  `json:"blend_mode,omitempty"`
}

type ColorData struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Document is a loaded project, ready to hand to an editor.
type Document struct {
	Width, Height int
	// Layers are bottom to top, with fresh ids.
	Layers  []*layer.Layer
	Active  int
	Palette []color.NRGBA
}

func layerName(i int) string { return fmt.Sprintf("layer_%d.png", i) }

// Save writes every layer of m plus palette as a project archive. A
// thumbnail of the composite is included when thumb is not nil.
func Save(w io.Writer, m *layer.Manager, palette []color.NRGBA, thumb image.Image) error {
	width, height := m.Size()
	layers := m.Layers()
	data := Data{
		CanvasWidth:  width,
		CanvasHeight: height,
		Active:       max(m.Index(m.ActiveID()), 0),
		Layers:       make([]LayerData, len(layers)),
		Palette:      make([]ColorData, len(palette)),
	}
	for i, l := range layers {
		data.Layers[i] = LayerData{
			Name:      l.Name,
			Visible:   l.Visible,
			Locked:    l.Locked,
			Opacity:   l.Opacity,
			BlendMode: l.BlendMode.String(),
		}
	}
	for i, c := range palette {
		data.Palette[i] = ColorData{R: c.R, G: c.G, B: c.B, A: c.A}
	}

	zw := zip.NewWriter(w)
	manifest, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	f, err := zw.Create(manifestName)
	if err != nil {
		return err
	}
	if _, err := f.Write(manifest); err != nil {
		return err
	}

	for i, l := range layers {
		f, err := zw.Create(layerName(i))
		if err != nil {
			return err
		}
		if err := png.Encode(f, l.Image()); err != nil {
			return fmt.Errorf("encoding layer %d: %w", i, err)
		}
	}

	if thumb != nil {
		f, err := zw.Create(thumbnailName)
		if err != nil {
			return err
		}
		if err := png.Encode(f, Thumbnail(thumb, thumbnailSide)); err != nil {
			return fmt.Errorf("encoding thumbnail: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return err
	}
	deluxepaint.Logger().Info("project saved", "width", width, "height", height, "layers", len(layers))
	return nil
}

// Thumbnail scales img down so its longer side is at most side pixels.
// Smaller images are copied unscaled.
func Thumbnail(img image.Image, side int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= side && h <= side {
		return raster.Crop(img, b)
	}
	if w >= h {
		return raster.Scale(img, side, max(1, h*side/w))
	}
	return raster.Scale(img, max(1, w*side/h), side)
}

// Load reads a project archive of the given size.
func Load(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}

	var manifest *zip.File
	files := make(map[string]*zip.File)
	for _, f := range zr.File {
		switch {
		case f.Name == manifestName:
			manifest = f
		case strings.HasPrefix(f.Name, "layer_") && strings.HasSuffix(f.Name, ".png"):
			files[f.Name] = f
		}
	}
	if manifest == nil {
		return nil, ErrNoManifest
	}

	var data Data
	if err := decodeJSON(manifest, &data); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if data.CanvasWidth < 1 || data.CanvasHeight < 1 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", data.CanvasWidth, data.CanvasHeight)
	}
	if len(data.Layers) == 0 {
		return nil, errors.New("project has no layers")
	}

	doc := &Document{
		Width:  data.CanvasWidth,
		Height: data.CanvasHeight,
		Active: data.Active,
	}
	if doc.Active < 0 || doc.Active >= len(data.Layers) {
		doc.Active = len(data.Layers) - 1
	}

	for i, ld := range data.Layers {
		l := layer.New(doc.Width, doc.Height, ld.Name)
		l.Visible = ld.Visible
		l.Locked = ld.Locked
		l.Opacity = min(max(ld.Opacity, 0), 1)
		if mode, ok := raster.ParseBlendMode(ld.BlendMode); ok {
			l.BlendMode = mode
		} else if ld.BlendMode != "" {
			deluxepaint.Logger().Warn("unknown blend mode", "layer", i, "mode", ld.BlendMode)
		}

		if f, ok := files[layerName(i)]; ok {
			img, err := decodePNG(f)
			if err != nil {
				return nil, fmt.Errorf("%w %d: %v", ErrBadLayer, i, err)
			}
			l.PutPixels(img)
		} else {
			deluxepaint.Logger().Warn("layer image missing", "layer", i)
		}
		doc.Layers = append(doc.Layers, l)
	}

	for _, c := range data.Palette {
		doc.Palette = append(doc.Palette, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
	}

	deluxepaint.Logger().Info("project loaded", "width", doc.Width, "height", doc.Height, "layers", len(doc.Layers))
	return doc, nil
}

func decodeJSON(f *zip.File, v any) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return json.NewDecoder(rc).Decode(v)
}

func decodePNG(f *zip.File) (*image.NRGBA, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	img, err := png.Decode(rc)
	if err != nil {
		return nil, err
	}
	return raster.Crop(img, img.Bounds()), nil
}
