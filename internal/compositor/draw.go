package compositor

import (
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/font"

	"github.com/youruser/cardsmith/internal/card"
	"github.com/youruser/cardsmith/internal/layout"
	"github.com/youruser/cardsmith/internal/render"
	"github.com/youruser/cardsmith/internal/textfit"
)

func (c *Compositor) blit(cv render.Canvas, path string, dr image.Rectangle) {
	img := c.image(path)
	if img == nil {
		return
	}
	cv.Blit(img, img.Bounds(), dr)
}

func (c *Compositor) drawArt(cv render.Canvas, rs layout.RegionSet, art image.Image) {
	if art == nil {
		return
	}
	box := anchor(rs.Art).Rect
	b := art.Bounds()
	src := layout.ArtSource(b.Dx(), b.Dy(), box)
	if src.Empty() {
		return
	}
	cv.Blit(art, src.Add(b.Min), box)
}

func (c *Compositor) drawText(cv render.Canvas, face font.Face, s string, r layout.Region, col color.Color) {
	if face == nil || s == "" {
		return
	}
	a := anchor(r)
	cv.DrawText(face, s, a.Rect, col, a.Align())
}

// drawName draws the card name at its fixed size, centered vertically on
// the box and never clipped to it. Names wider than the box are rasterized
// once and squeezed horizontally; the height never shrinks.
func (c *Compositor) drawName(cv render.Canvas, name string, col color.Color) {
	face := c.nameFace(c.opts.nameSize)
	if face == nil || name == "" {
		return
	}
	a := anchor(layout.Name)
	comp := textfit.CompressName(face, name, a.Rect.Dx())
	if comp.Scale == 1 {
		cv.DrawText(face, name, a.Rect, col, a.Align())
		return
	}
	layer := render.RasterizeText(face, name, col)
	h := layer.Bounds().Dy()
	y := a.Rect.Min.Y + (a.Rect.Dy()-h)/2
	dr := image.Rect(a.Rect.Min.X, y, a.Rect.Min.X+comp.ScaledWidth, y+h)
	cv.Blit(layer, layer.Bounds(), dr)
}

func (c *Compositor) drawEffect(cv render.Canvas, cd card.Data, rs layout.RegionSet) {
	tiers := c.effectTiers
	if rs.EffectItalic {
		tiers = c.flavorTiers
	}
	c.drawBlock(cv, cd.Effect, anchor(rs.Effect), tiers)
}

func (c *Compositor) drawPendulum(cv render.Canvas, cd card.Data) {
	face := c.face(NumberFont, numberSize)
	scale := strconv.Itoa(cd.Scale)
	c.drawText(cv, face, scale, layout.PendulumScaleLeft, color.Black)
	c.drawText(cv, face, scale, layout.PendulumScaleRight, color.Black)
	c.drawBlock(cv, cd.PendulumEffect, anchor(layout.PendulumEffect), c.pendulumTiers)
}

// drawBlock fits text into the anchor's box with the tier cascade and draws
// the lines that start inside the box, clipped to it when the anchor clips.
func (c *Compositor) drawBlock(cv render.Canvas, text string, a layout.Anchor, tiers []textfit.Tier) {
	box := a.Rect
	if text == "" || len(tiers) == 0 {
		return
	}
	res := textfit.Fit(text, textfit.Box{Width: box.Dx(), Height: box.Dy()}, tiers)
	if !res.Fits {
		c.log.Debug("text overflows smallest tier", "lines", len(res.Lines), "size", res.Tier.Size)
	}
	lh := res.Tier.LineHeight
	align := render.Align{H: render.Left, V: render.Top, Clip: a.Clip}
	for i, line := range textfit.Visible(res.Lines, lh, box.Dy()) {
		r := image.Rect(box.Min.X, box.Min.Y+i*lh, box.Max.X, box.Max.Y)
		cv.DrawText(res.Tier.Face, line, r, color.Black, align)
	}
}

// drawStats draws the separator rule and the right-aligned ATK/DEF or
// ATK/LINK block. Segment widths are measured up front and summed, so the
// last value ends exactly on the anchor's right edge.
func (c *Compositor) drawStats(cv render.Canvas, cd card.Data, kind layout.StatsKind) {
	segs := layout.StatSegments(cd, kind)
	if len(segs) == 0 {
		return
	}
	cv.FillRect(anchor(layout.StatSeparator).Rect, color.Black)

	face := c.face(NumberFont, numberSize)
	if face == nil {
		return
	}
	type part struct {
		text  string
		width int
		gap   int
	}
	var parts []part
	total := 0
	for i, s := range segs {
		lw, vw := cv.Measure(face, s[0]).X, cv.Measure(face, s[1]).X
		gap := layout.StatSectionGap
		if i == len(segs)-1 {
			gap = 0
		}
		parts = append(parts, part{s[0], lw, layout.StatLabelGap}, part{s[1], vw, gap})
		total += lw + layout.StatLabelGap + vw + gap
	}

	r := anchor(layout.Stats).Rect
	x := r.Max.X - total
	align := render.Align{H: render.Left, V: render.Middle}
	for _, p := range parts {
		cv.DrawText(face, p.text, image.Rect(x, r.Min.Y, x+p.width, r.Max.Y), color.Black, align)
		x += p.width + p.gap
	}
}
