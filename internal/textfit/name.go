package textfit

import "golang.org/x/image/font"

// Compression describes how a single-line name is squeezed into its box.
// Only the horizontal axis is ever scaled.
type Compression struct {
	Width       int     // measured width at the base size
	ScaledWidth int     // width after compression
	Scale       float64 // 1 when the name fits
}

// CompressName measures name with face and computes the horizontal scale
// that makes it fit boxWidth.
func CompressName(face font.Face, name string, boxWidth int) Compression {
	w := measure(face, name)
	c := Compression{Width: w, ScaledWidth: w, Scale: 1}
	if w > boxWidth && w > 0 {
		c.Scale = float64(boxWidth) / float64(w)
		c.ScaledWidth = int(float64(w) * c.Scale)
	}
	return c
}
