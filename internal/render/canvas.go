package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type HAlign uint8

const (
	Left HAlign = iota
	Center
	Right
)

type VAlign uint8

const (
	Top VAlign = iota
	Middle
	Bottom
)

// Align places a single line of text inside a rectangle. With Clip set,
// glyph pixels outside the rectangle are discarded.
type Align struct {
	H    HAlign
	V    VAlign
	Clip bool
}

// Canvas is the set of primitives the compositor draws with.
type Canvas interface {
	Bounds() image.Rectangle
	// Blit draws the sr part of src scaled into dr, alpha-composited over
	// the existing pixels.
	Blit(src image.Image, sr, dr image.Rectangle)
	FillRect(r image.Rectangle, c color.Color)
	// Measure returns the advance width and line height of s.
	Measure(face font.Face, s string) image.Point
	DrawText(face font.Face, s string, r image.Rectangle, c color.Color, a Align)
}

type rgbaCanvas struct {
	dst *image.RGBA
}

func (c *rgbaCanvas) Bounds() image.Rectangle { return c.dst.Bounds() }

func (c *rgbaCanvas) Blit(src image.Image, sr, dr image.Rectangle) {
	sr = sr.Intersect(src.Bounds())
	if sr.Empty() || dr.Empty() {
		return
	}
	if sr.Size() == dr.Size() {
		draw.Draw(c.dst, dr, src, sr.Min, draw.Over)
		return
	}
	xdraw.BiLinear.Scale(c.dst, dr, src, sr, draw.Over, nil)
}

func (c *rgbaCanvas) FillRect(r image.Rectangle, col color.Color) {
	draw.Draw(c.dst, r, image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *rgbaCanvas) Measure(face font.Face, s string) image.Point {
	return Measure(face, s)
}

func (c *rgbaCanvas) DrawText(face font.Face, s string, r image.Rectangle, col color.Color, a Align) {
	if s == "" {
		return
	}
	var dst draw.Image = c.dst
	if a.Clip {
		dst = c.dst.SubImage(r).(*image.RGBA)
	}
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  Origin(face, s, r, a),
	}
	drawer.DrawString(s)
}

// Measure returns the rounded-up advance width of s and the face's line
// height.
func Measure(face font.Face, s string) image.Point {
	m := face.Metrics()
	return image.Pt(font.MeasureString(face, s).Ceil(), (m.Ascent + m.Descent).Ceil())
}

// Origin computes the baseline start point for s aligned inside r.
func Origin(face font.Face, s string, r image.Rectangle, a Align) fixed.Point26_6 {
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()

	x := r.Min.X
	switch a.H {
	case Center:
		x = r.Min.X + (r.Dx()-font.MeasureString(face, s).Ceil())/2
	case Right:
		x = r.Max.X - font.MeasureString(face, s).Ceil()
	}

	y := r.Min.Y + ascent
	switch a.V {
	case Middle:
		y = r.Min.Y + (r.Dy()-(ascent+descent))/2 + ascent
	case Bottom:
		y = r.Max.Y - descent
	}
	return fixed.P(x, y)
}

// RasterizeText renders one line of text onto a transparent image sized to
// its measured extent. Used for text that is redrawn scaled.
func RasterizeText(face font.Face, s string, col color.Color) *image.RGBA {
	size := Measure(face, s)
	img := image.NewRGBA(image.Rect(0, 0, max(size.X, 1), max(size.Y, 1)))
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	drawer.DrawString(s)
	return img
}
