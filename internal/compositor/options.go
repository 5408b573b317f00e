package compositor

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/youruser/cardsmith/internal/layout"
	"github.com/youruser/cardsmith/internal/logging"
	"github.com/youruser/cardsmith/internal/render"
)

// Font files, relative to the asset root.
const (
	NameFont     = "font/matrix_bold_small_caps.ttf"
	TypeLineFont = "font/StoneSerifSmallCapsBold.ttf"
	EffectFont   = "font/StoneSerifStd-Medium.ttf"
	FlavorFont   = "font/StoneSerifITC-MediumItalic.ttf"
	NumberFont   = "font/MatrixRegular.ttf"
)

const (
	DefaultNameSize = 114
	typeLineSize    = 38
	numberSize      = 64
	cardIDSize      = 32

	minNameHalfPixels = 40
)

var (
	effectSizes   = []float64{42, 38, 32, 28, 24}
	pendulumSizes = []float64{32, 28, 24}
)

type Option func(*options)

type options struct {
	labelColor color.Color
	nameSize   float64
	hook       func(render.Canvas) render.Canvas
	logger     *slog.Logger
}

func defaultOptions() options {
	return options{
		labelColor: color.Black,
		nameSize:   DefaultNameSize,
		logger:     logging.Logger(),
	}
}

// WithSpellTrapLabelColor sets the color of the "[Spell Card]" style label.
// The default is black.
func WithSpellTrapLabelColor(c color.Color) Option {
	return func(o *options) {
		if c != nil {
			o.labelColor = c
		}
	}
}

// WithNameSize sets the card name font size in pixels.
func WithNameSize(size float64) Option {
	return func(o *options) { o.nameSize = size }
}

// WithCanvasHook wraps the drawing canvas for every render, for example
// with a render.Recorder.
func WithCanvasHook(fn func(render.Canvas) render.Canvas) Option {
	return func(o *options) { o.hook = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// texturePaths lists every texture the layout can reference.
func texturePaths() []string {
	paths := []string{
		"card_frame/spell.png",
		"card_frame/trap.png",
		"card_frame/monster_token.png",
	}
	for _, s := range []string{"normal", "effect", "ritual", "fusion", "synchro", "xyz"} {
		paths = append(paths, "card_frame/pendulum_"+s+".png")
	}
	for _, s := range []string{"normal", "effect", "ritual", "fusion", "synchro", "xyz", "link"} {
		paths = append(paths, "card_frame/monster_"+s+".png")
	}
	for _, a := range []string{"SPELL", "TRAP", "DARK", "EARTH", "FIRE", "LIGHT", "WATER", "WIND", "DIVINE"} {
		paths = append(paths, "icon/attr_"+a+".png")
	}
	for i := 1; i <= 6; i++ {
		paths = append(paths, fmt.Sprintf("icon/GUI_T_Icon1_Icon%02d.png", i))
	}
	paths = append(paths, layout.LevelStar, layout.RankStar)
	for _, slot := range layout.ArrowSlots {
		paths = append(paths, slot.Asset)
	}
	return paths
}
