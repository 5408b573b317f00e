// Package textfit chooses a font size for text that has to fit a fixed box.
//
// Fit walks an ordered list of tiers from largest to smallest, greedy
// word-wraps the text with each one and keeps the first tier whose wrapped
// block is no taller than the box. When nothing fits the smallest tier is
// used anyway; callers drop the lines that start below the box.
package textfit

import (
	"strings"

	"golang.org/x/image/font"
)

// Tier is one font candidate. LineHeight is a property of the tier, not
// measured per glyph.
type Tier struct {
	Face       font.Face
	Size       float64
	LineHeight int
}

type Box struct {
	Width, Height int
}

type Result struct {
	Tier  Tier
	Index int // position of Tier in the candidate list
	Lines []string
	// Fits is false when even the smallest tier overflowed the box height.
	Fits bool
}

// Height is the block height of the wrapped lines.
func (r Result) Height() int { return len(r.Lines) * r.Tier.LineHeight }

// Fit selects the largest tier whose wrapped text fits box. Tiers must be
// ordered largest to smallest. An empty tier list yields the zero Result.
func Fit(text string, box Box, tiers []Tier) Result {
	var res Result
	for i, t := range tiers {
		res = Result{
			Tier:  t,
			Index: i,
			Lines: Wrap(text, box.Width, t.Face),
		}
		if res.Height() <= box.Height {
			res.Fits = true
			return res
		}
	}
	return res
}

// Wrap breaks text into lines no wider than width, measured with face.
// A newline always ends the current line. Words are never split: a word
// wider than width sits alone on its own line.
func Wrap(text string, width int, face font.Face) []string {
	var lines []string
	paragraphs := strings.Split(text, "\n")
	for i, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			// an explicit break on an empty paragraph still closes a line,
			// but trailing text after the last newline adds nothing
			if i < len(paragraphs)-1 {
				lines = append(lines, "")
			}
			continue
		}
		current := words[0]
		for _, w := range words[1:] {
			candidate := current + " " + w
			if measure(face, candidate) > width {
				lines = append(lines, current)
				current = w
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}
	return lines
}

// Visible returns the leading lines whose top edge lies above boxHeight.
func Visible(lines []string, lineHeight, boxHeight int) []string {
	if lineHeight <= 0 {
		return lines
	}
	n := 0
	for n < len(lines) && n*lineHeight < boxHeight {
		n++
	}
	return lines[:n]
}

func measure(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
