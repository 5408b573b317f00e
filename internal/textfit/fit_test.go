package textfit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

func face(t *testing.T, size float64) font.Face {
	t.Helper()
	f, err := opentype.Parse(goregular.TTF)
	require.NoError(t, err)
	fc, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	require.NoError(t, err)
	t.Cleanup(func() { fc.Close() })
	return fc
}

func effectTiers(t *testing.T) []Tier {
	var tiers []Tier
	for _, s := range []float64{42, 38, 32, 28, 24} {
		tiers = append(tiers, Tier{Face: face(t, s), Size: s, LineHeight: int(s)})
	}
	return tiers
}

const dragonText = "This legendary dragon is a powerful engine of destruction. " +
	"Virtually invincible, very few have faced this awesome creature and lived to tell the tale."

func TestWrap(t *testing.T) {
	fc := face(t, 20)

	t.Run("explicit breaks", func(t *testing.T) {
		lines := Wrap("a\n\nb", 1000, fc)
		assert.Equal(t, []string{"a", "", "b"}, lines)
	})

	t.Run("trailing newline adds nothing", func(t *testing.T) {
		assert.Equal(t, []string{"a"}, Wrap("a\n", 1000, fc))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Wrap("", 1000, fc))
	})

	t.Run("long word alone", func(t *testing.T) {
		lines := Wrap("x Supercalifragilistic y", 40, fc)
		assert.Equal(t, []string{"x", "Supercalifragilistic", "y"}, lines)
	})

	t.Run("lines fit width", func(t *testing.T) {
		const width = 300
		lines := Wrap(dragonText, width, fc)
		require.Greater(t, len(lines), 1)
		for _, l := range lines {
			if strings.Contains(l, " ") {
				assert.LessOrEqual(t, measure(fc, l), width, l)
			}
		}
		assert.Equal(t, strings.Fields(dragonText), strings.Fields(strings.Join(lines, " ")))
	})
}

func TestFitPicksLargestTier(t *testing.T) {
	tiers := effectTiers(t)

	res := Fit("Short text.", Box{Width: 1000, Height: 214}, tiers)
	assert.True(t, res.Fits)
	assert.Equal(t, 0, res.Index)
	assert.Equal(t, float64(42), res.Tier.Size)

	long := strings.Repeat(dragonText+" ", 4)
	res = Fit(long, Box{Width: 1000, Height: 214}, tiers)
	assert.Greater(t, res.Index, 0)
	if res.Fits {
		assert.LessOrEqual(t, res.Height(), 214)
	}
}

func TestFitOverflowUsesSmallest(t *testing.T) {
	tiers := effectTiers(t)
	res := Fit(strings.Repeat(dragonText+" ", 20), Box{Width: 400, Height: 50}, tiers)
	assert.False(t, res.Fits)
	assert.Equal(t, len(tiers)-1, res.Index)

	vis := Visible(res.Lines, res.Tier.LineHeight, 50)
	assert.Len(t, vis, 3) // tops at 0, 24, 48
}

func TestFitEmptyTiers(t *testing.T) {
	assert.Equal(t, Result{}, Fit("x", Box{Width: 10, Height: 10}, nil))
}

func TestFitIdempotent(t *testing.T) {
	tiers := effectTiers(t)
	box := Box{Width: 1000, Height: 214}
	a := Fit(dragonText, box, tiers)
	b := Fit(dragonText, box, tiers)
	assert.Equal(t, a.Index, b.Index)
	assert.Equal(t, a.Lines, b.Lines)
}

func TestFitMonotonicInHeight(t *testing.T) {
	tiers := effectTiers(t)
	text := strings.Repeat(dragonText+" ", 3)
	prev := -1
	for h := 400; h >= 20; h -= 20 {
		res := Fit(text, Box{Width: 1000, Height: h}, tiers)
		assert.GreaterOrEqual(t, res.Index, prev, "height %d", h)
		prev = res.Index
	}
}

func TestVisible(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}
	assert.Equal(t, lines[:2], Visible(lines, 10, 20))
	assert.Equal(t, lines[:3], Visible(lines, 10, 21))
	assert.Equal(t, lines, Visible(lines, 0, 5))
}

func TestCompressName(t *testing.T) {
	fc := face(t, 114)

	t.Run("fits", func(t *testing.T) {
		c := CompressName(fc, "Kuriboh", 880)
		assert.Equal(t, 1.0, c.Scale)
		assert.Equal(t, c.Width, c.ScaledWidth)
	})

	t.Run("too wide", func(t *testing.T) {
		c := CompressName(fc, "Blue-Eyes Ultimate Dragon of Destiny", 880)
		assert.Less(t, c.Scale, 1.0)
		assert.Greater(t, c.Width, 880)
		assert.LessOrEqual(t, c.ScaledWidth, 880)
	})
}
