// Package assets loads the textures and fonts the compositor draws with.
package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/youruser/cardsmith/internal/logging"
	"github.com/youruser/cardsmith/internal/rescache"
)

// DefaultRoot is where the texture pack is expected relative to the working
// directory.
const DefaultRoot = "textures/modular"

// Loader resolves asset paths relative to some root.
type Loader interface {
	Image(path string) (image.Image, error)
	Face(path string, size float64) (font.Face, error)
}

// Dir loads assets from a directory tree.
type Dir struct {
	Root string
	// Fallback substitutes an embedded Go font when a font file is missing
	// or unreadable.
	Fallback bool

	fonts *rescache.Cache[string, *opentype.Font]
}

func NewDir(root string, fallback bool) *Dir {
	if root == "" {
		root = DefaultRoot
	}
	return &Dir{
		Root:     root,
		Fallback: fallback,
		fonts:    rescache.New[string, *opentype.Font](),
	}
}

func (d *Dir) Image(path string) (image.Image, error) {
	img, err := imaging.Open(filepath.Join(d.Root, path), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	return img, nil
}

// Face returns a new face for the font at path. Callers own the face and
// should cache it.
func (d *Dir) Face(path string, size float64) (font.Face, error) {
	f, err := d.fonts.GetOrCreate(path, func() (*opentype.Font, error) {
		return d.parse(path)
	})
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func (d *Dir) parse(path string) (*opentype.Font, error) {
	b, err := os.ReadFile(filepath.Join(d.Root, path))
	if err == nil {
		f, perr := opentype.Parse(b)
		if perr == nil {
			return f, nil
		}
		err = perr
	}
	if !d.Fallback {
		return nil, fmt.Errorf("load font %s: %w", path, err)
	}
	logging.Logger().Warn("font fallback", "path", path, "err", err)
	return opentype.Parse(fallbackTTF(path))
}

// fallbackTTF picks the embedded Go font closest in style to the named file.
func fallbackTTF(path string) []byte {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "italic"):
		return goitalic.TTF
	case strings.Contains(name, "bold"), strings.Contains(name, "caps"):
		return gobold.TTF
	}
	return goregular.TTF
}
