// Package sheet lays rendered cards out on a single proof sheet.
package sheet

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"

	"github.com/youruser/cardsmith/internal/render"
)

type Options struct {
	Columns    int
	ThumbW     int
	ThumbH     int
	Gap        int
	Margin     int
	QRSize     int
	Background color.NRGBA

	// Title is drawn top left with TitleFace when both are set.
	Title     string
	TitleFace font.Face
}

func DefaultOptions() Options {
	return Options{
		Columns:    10,
		ThumbW:     215,
		ThumbH:     300,
		Gap:        8,
		Margin:     48,
		QRSize:     400,
		Background: color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff},
	}
}

// Compose pastes card thumbnails in rows below a header holding the title
// and the QR code. Either of qr and the title may be absent.
func Compose(cards []image.Image, qr image.Image, opt Options) *image.NRGBA {
	if opt.Columns <= 0 {
		opt.Columns = 1
	}
	rows := (len(cards) + opt.Columns - 1) / opt.Columns

	header := 0
	if qr != nil {
		header = opt.QRSize + opt.Margin
	}
	if opt.TitleFace != nil && opt.Title != "" {
		header = max(header, render.Measure(opt.TitleFace, opt.Title).Y+opt.Margin)
	}

	w := 2*opt.Margin + opt.Columns*opt.ThumbW + (opt.Columns-1)*opt.Gap
	h := 2*opt.Margin + header + rows*opt.ThumbH + max(rows-1, 0)*opt.Gap
	canvas := imaging.New(w, h, opt.Background)

	if qr != nil {
		q := imaging.Resize(qr, opt.QRSize, opt.QRSize, imaging.NearestNeighbor)
		canvas = imaging.Paste(canvas, q, image.Pt(w-opt.Margin-opt.QRSize, opt.Margin))
	}
	if opt.TitleFace != nil && opt.Title != "" {
		title := render.RasterizeText(opt.TitleFace, opt.Title, color.Black)
		canvas = imaging.Overlay(canvas, title, image.Pt(opt.Margin, opt.Margin), 1)
	}

	top := opt.Margin + header
	for i, c := range cards {
		if c == nil {
			continue
		}
		col, row := i%opt.Columns, i/opt.Columns
		x := opt.Margin + col*(opt.ThumbW+opt.Gap)
		y := top + row*(opt.ThumbH+opt.Gap)
		thumb := imaging.Resize(c, opt.ThumbW, opt.ThumbH, imaging.Lanczos)
		canvas = imaging.Paste(canvas, thumb, image.Pt(x, y))
	}
	return canvas
}
