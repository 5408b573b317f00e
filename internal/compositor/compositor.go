// Package compositor draws a complete card image from card data and an
// artwork bitmap.
//
// A Compositor owns one render surface and every texture and font face it
// draws with. All assets are loaded by New, so Render performs no I/O: a
// missing asset only removes its layer from the output. One render may run
// at a time per Compositor; use one instance per worker for parallelism.
package compositor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"

	"golang.org/x/image/font"

	"github.com/youruser/cardsmith/internal/assets"
	"github.com/youruser/cardsmith/internal/card"
	"github.com/youruser/cardsmith/internal/layout"
	"github.com/youruser/cardsmith/internal/render"
	"github.com/youruser/cardsmith/internal/rescache"
	"github.com/youruser/cardsmith/internal/textfit"
)

var (
	// ErrBackendUnavailable means the compositor has no surface to draw on,
	// either because it was closed or never initialised. The render can be
	// retried on a new Compositor.
	ErrBackendUnavailable = errors.New("compositor: render backend unavailable")
	// ErrBusy is returned when Render is called while another render on the
	// same Compositor is in progress.
	ErrBusy = errors.New("compositor: render already in progress")
)

type faceKey struct {
	path string
	size float64
}

type Compositor struct {
	mu      sync.Mutex // held for the duration of a render
	surface *render.Surface
	loader  assets.Loader
	opts    options
	log     *slog.Logger

	images    *rescache.Cache[string, image.Image]
	faces     *rescache.Cache[faceKey, font.Face]
	nameFaces *rescache.Cache[int, font.Face]

	effectTiers   []textfit.Tier
	flavorTiers   []textfit.Tier
	pendulumTiers []textfit.Tier
}

// New builds a compositor and preloads every asset it can draw. Load
// failures are logged and remembered; they never fail construction.
func New(loader assets.Loader, opts ...Option) (*Compositor, error) {
	if loader == nil {
		return nil, errors.New("compositor: nil asset loader")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.nameSize <= 0 {
		return nil, fmt.Errorf("compositor: invalid name size %v", o.nameSize)
	}
	c := &Compositor{
		surface:   render.NewSurface(),
		loader:    loader,
		opts:      o,
		log:       o.logger,
		images:    rescache.New[string, image.Image](),
		faces:     rescache.New[faceKey, font.Face](),
		nameFaces: rescache.New[int, font.Face](),
	}
	c.preload()
	return c, nil
}

func (c *Compositor) preload() {
	for _, p := range texturePaths() {
		c.image(p)
	}
	c.effectTiers = c.tiers(effectSizes, func(int, float64) string { return EffectFont }, identityLineHeight)
	c.flavorTiers = c.tiers(effectSizes, func(i int, _ float64) string {
		if i == 0 {
			return FlavorFont
		}
		return EffectFont
	}, identityLineHeight)
	c.pendulumTiers = c.tiers(pendulumSizes, func(int, float64) string { return EffectFont }, metricLineHeight)

	c.face(TypeLineFont, typeLineSize)
	c.face(NumberFont, numberSize)
	c.face(EffectFont, cardIDSize)
	c.nameFace(c.opts.nameSize)
}

// Render draws card over art and returns the compositor's surface. The
// surface is reused by the next call; use RenderImage to keep a copy.
// art may be nil, in which case the art layer is skipped.
func (c *Compositor) Render(cd card.Data, art image.Image) (*render.Surface, error) {
	if !c.mu.TryLock() {
		return nil, ErrBusy
	}
	defer c.mu.Unlock()
	if c.surface == nil {
		return nil, ErrBackendUnavailable
	}

	rs := layout.Resolve(cd)
	c.log.Debug("render card", "id", cd.ID, "name", cd.Name, "frame", rs.Frame)

	c.surface.Clear()
	var cv render.Canvas = c.surface.Canvas()
	if c.opts.hook != nil {
		cv = c.opts.hook(cv)
	}

	c.drawArt(cv, rs, art)
	c.blit(cv, rs.Frame, anchor(layout.Frame).Rect)
	c.blit(cv, rs.Attribute, anchor(layout.Attribute).Rect)
	for _, r := range rs.Stars.Rects {
		c.blit(cv, rs.Stars.Asset, r)
	}
	for _, slot := range rs.Arrows {
		c.blit(cv, slot.Asset, slot.Rect)
	}
	c.drawName(cv, cd.Name, rs.NameColor)
	if rs.TypeLine {
		c.drawText(cv, c.face(TypeLineFont, typeLineSize), cd.TypeLine, layout.TypeLine, color.Black)
	}
	c.drawEffect(cv, cd, rs)
	if rs.Pendulum {
		c.drawPendulum(cv, cd)
	}
	c.drawStats(cv, cd, rs.Stats)
	if rs.CardID {
		c.drawText(cv, c.face(EffectFont, cardIDSize), fmt.Sprintf("%08d", cd.ID), layout.CardID, color.Black)
	}
	if rs.Label != "" {
		c.drawText(cv, c.face(TypeLineFont, typeLineSize), rs.Label, layout.SpellTrapLabel, c.opts.labelColor)
		c.blit(cv, rs.LabelIcon, anchor(layout.SpellTrapIcon).Rect)
	}

	c.surface.RegenerateMips()
	return c.surface, nil
}

// RenderImage renders and returns a copy of the result that stays valid
// after later renders.
func (c *Compositor) RenderImage(cd card.Data, art image.Image) (*image.RGBA, error) {
	s, err := c.Render(cd, art)
	if err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

// Close releases the surface and font faces. It waits for an in-flight
// render; later renders fail with ErrBackendUnavailable.
func (c *Compositor) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil {
		return nil
	}
	c.surface = nil

	var errs []error
	c.faces.Range(func(_ faceKey, f font.Face) { errs = append(errs, f.Close()) })
	c.nameFaces.Range(func(_ int, f font.Face) { errs = append(errs, f.Close()) })
	c.faces.Clear()
	c.nameFaces.Clear()
	c.images.Clear()
	c.effectTiers, c.flavorTiers, c.pendulumTiers = nil, nil, nil
	return errors.Join(errs...)
}

func anchor(r layout.Region) layout.Anchor { return layout.Anchors[r] }

func (c *Compositor) image(path string) image.Image {
	if path == "" {
		return nil
	}
	img, err := c.images.GetOrCreate(path, func() (image.Image, error) {
		img, err := c.loader.Image(path)
		if err != nil {
			c.log.Warn("missing texture, layer skipped", "path", path, "err", err)
		}
		return img, err
	})
	if err != nil {
		return nil
	}
	return img
}

func (c *Compositor) face(path string, size float64) font.Face {
	f, err := c.faces.GetOrCreate(faceKey{path, size}, func() (font.Face, error) {
		f, err := c.loader.Face(path, size)
		if err != nil {
			c.log.Warn("missing font, text skipped", "path", path, "size", size, "err", err)
		}
		return f, err
	})
	if err != nil {
		return nil
	}
	return f
}

// nameFace returns the name font at size, keyed in half pixels.
func (c *Compositor) nameFace(size float64) font.Face {
	key := max(int(size*2), minNameHalfPixels)
	f, err := c.nameFaces.GetOrCreate(key, func() (font.Face, error) {
		f, err := c.loader.Face(NameFont, float64(key)/2)
		if err != nil {
			c.log.Warn("missing name font", "path", NameFont, "err", err)
		}
		return f, err
	})
	if err != nil {
		return nil
	}
	return f
}

func (c *Compositor) tiers(sizes []float64, path func(int, float64) string, lineHeight func(font.Face, float64) int) []textfit.Tier {
	var out []textfit.Tier
	for i, s := range sizes {
		p := path(i, s)
		f := c.face(p, s)
		if f == nil && p != EffectFont {
			f = c.face(EffectFont, s)
		}
		if f == nil {
			continue
		}
		out = append(out, textfit.Tier{Face: f, Size: s, LineHeight: lineHeight(f, s)})
	}
	return out
}

func identityLineHeight(_ font.Face, size float64) int { return int(size) }

func metricLineHeight(f font.Face, _ float64) int { return f.Metrics().Height.Ceil() }
