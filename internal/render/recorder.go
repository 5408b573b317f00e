package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
)

type OpKind uint8

const (
	OpBlit OpKind = iota
	OpFill
	OpText
)

// Op is one recorded draw call.
type Op struct {
	Kind  OpKind
	Src   image.Image // OpBlit
	SrcR  image.Rectangle
	Rect  image.Rectangle // destination
	Text  string          // OpText
	Face  font.Face       // OpText
	Color color.Color     // OpFill, OpText
	Align Align
	// TextRect is the measured extent of the text after alignment.
	TextRect image.Rectangle
}

// Recorder forwards to another Canvas and keeps a log of every call.
type Recorder struct {
	Canvas
	Ops []Op
}

func NewRecorder(c Canvas) *Recorder { return &Recorder{Canvas: c} }

func (r *Recorder) Blit(src image.Image, sr, dr image.Rectangle) {
	r.Ops = append(r.Ops, Op{Kind: OpBlit, Src: src, SrcR: sr, Rect: dr})
	r.Canvas.Blit(src, sr, dr)
}

func (r *Recorder) FillRect(rect image.Rectangle, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Rect: rect, Color: c})
	r.Canvas.FillRect(rect, c)
}

func (r *Recorder) DrawText(face font.Face, s string, rect image.Rectangle, c color.Color, a Align) {
	dot := Origin(face, s, rect, a)
	size := Measure(face, s)
	x, top := dot.X.Floor(), dot.Y.Floor()-face.Metrics().Ascent.Ceil()
	r.Ops = append(r.Ops, Op{
		Kind:     OpText,
		Rect:     rect,
		Text:     s,
		Face:     face,
		Color:    c,
		Align:    a,
		TextRect: image.Rect(x, top, x+size.X, top+size.Y),
	})
	r.Canvas.DrawText(face, s, rect, c, a)
}

// Texts returns the recorded text ops in draw order.
func (r *Recorder) Texts() []Op { return r.filter(OpText) }

// Blits returns the recorded blit ops in draw order.
func (r *Recorder) Blits() []Op { return r.filter(OpBlit) }

func (r *Recorder) filter(k OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}
