// Package render is the 2D drawing backend used by the compositor: a fixed
// size RGBA surface plus the primitive operations the card layout needs
// (scaled alpha blits, filled rectangles, measured and aligned text).
package render

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// Logical card size. Every anchor in the layout table is expressed in this
// coordinate space.
const (
	Width  = 1180
	Height = 1720
)

// Surface is the persistent draw target of one compositor.
type Surface struct {
	img  *image.RGBA
	mips []*image.NRGBA
}

func NewSurface() *Surface {
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, Width, Height))}
}

// Clear resets every pixel to fully transparent and drops the mip chain.
func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	s.mips = nil
}

func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// Clone copies the base level. Callers keeping a result past the next render
// must clone it, the surface is reused.
func (s *Surface) Clone() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// RegenerateMips rebuilds the downsampled chain from the current base image,
// halving each axis until both reach one pixel.
func (s *Surface) RegenerateMips() {
	s.mips = s.mips[:0]
	w, h := s.img.Bounds().Dx(), s.img.Bounds().Dy()
	var prev image.Image = s.img
	for w > 1 || h > 1 {
		w, h = max(w/2, 1), max(h/2, 1)
		level := imaging.Resize(prev, w, h, imaging.Box)
		s.mips = append(s.mips, level)
		prev = level
	}
}

// MipLevels returns the number of downsampled levels, excluding the base.
func (s *Surface) MipLevels() int { return len(s.mips) }

// Mip returns level n, where level 0 is the base image.
func (s *Surface) Mip(n int) image.Image {
	if n <= 0 {
		return s.img
	}
	if n > len(s.mips) {
		return nil
	}
	return s.mips[n-1]
}

// Canvas returns a drawing view of the surface.
func (s *Surface) Canvas() Canvas {
	return &rgbaCanvas{dst: s.img}
}
