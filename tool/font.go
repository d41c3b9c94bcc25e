package tool

import (
	"fmt"

	"github.com/adrg/sysfont"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/ha1tch/deluxepaint"
)

type fontKey struct {
	family string
	size   float64
}

// fontCache resolves family names to faces through the system font
// directories, falling back to Go Regular when nothing usable is found.
type fontCache struct {
	finder *sysfont.Finder
	faces  map[fontKey]font.Face
}

func newFontCache() *fontCache {
	return &fontCache{faces: make(map[fontKey]font.Face)}
}

func (c *fontCache) face(family string, size float64) font.Face {
	if size <= 0 {
		size = DefaultConfig().FontSize
	}
	key := fontKey{family: family, size: size}
	if f, ok := c.faces[key]; ok {
		return f
	}

	f, err := c.load(family, size)
	if err != nil {
		deluxepaint.Logger().Warn("font fallback", "family", family, "err", err)
		f, err = fallbackFace(size)
		if err != nil {
			// goregular is embedded; a parse failure means a broken build.
			panic(err)
		}
	}
	c.faces[key] = f
	return f
}

func (c *fontCache) load(family string, size float64) (font.Face, error) {
	if family == "" {
		return nil, fmt.Errorf("no font family")
	}
	if c.finder == nil {
		c.finder = sysfont.NewFinder(nil)
	}
	sf := c.finder.Match(family)
	if sf == nil || sf.Filename == "" {
		return nil, fmt.Errorf("font %q not found", family)
	}
	face, err := gg.LoadFontFace(sf.Filename, size)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", sf.Filename, err)
	}
	deluxepaint.Logger().Debug("font loaded", "family", family, "file", sf.Filename, "size", size)
	return face, nil
}

func fallbackFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}
