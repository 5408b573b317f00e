// Package layout holds the fixed card geometry and decides which regions and
// assets apply to a given card.
//
// Every coordinate is in the logical 1180x1720 card space. The tables in
// this file are the compatibility contract with the reference renderer:
// draw code reads positions from here and never hardcodes its own.
package layout

import (
	"image"

	"github.com/youruser/cardsmith/internal/card"
	"github.com/youruser/cardsmith/internal/render"
)

type Region uint8

const (
	Frame Region = iota
	ArtPendulum
	ArtRegular
	Attribute
	Name
	TypeLine
	EffectSpellTrap
	EffectMonster
	EffectPendulumMonster
	PendulumScaleLeft
	PendulumScaleRight
	PendulumEffect
	StatSeparator
	Stats
	CardID
	SpellTrapLabel
	SpellTrapIcon
)

var regionNames = [...]string{
	"frame", "art_pendulum", "art_regular", "attribute", "name", "type_line",
	"effect_spell_trap", "effect_monster", "effect_pendulum_monster",
	"pendulum_scale_left", "pendulum_scale_right", "pendulum_effect",
	"stat_separator", "stats", "card_id", "spell_trap_label", "spell_trap_icon",
}

func (r Region) String() string {
	if int(r) < len(regionNames) {
		return regionNames[r]
	}
	return "region?"
}

// Anchor is a rectangle plus the alignment used for text drawn in it.
// Single-line text is positioned by the rect but may extend past it; only
// anchors with Clip set cut glyphs at the rect edges.
type Anchor struct {
	Rect image.Rectangle
	H    render.HAlign
	V    render.VAlign
	Clip bool
}

func (a Anchor) Align() render.Align {
	return render.Align{H: a.H, V: a.V, Clip: a.Clip}
}

func rect(x, y, w, h int) image.Rectangle { return image.Rect(x, y, x+w, y+h) }

// Anchors is the region table.
var Anchors = map[Region]Anchor{
	Frame:       {Rect: image.Rect(0, 0, render.Width, render.Height)},
	ArtPendulum: {Rect: rect(82, 310, 1018, 762)},
	ArtRegular:  {Rect: rect(146, 318, 890, 890)},
	Attribute:   {Rect: rect(974, 78, 122, 122)},
	Name:        {Rect: rect(88, 96, 880, 76), H: render.Left, V: render.Middle},
	TypeLine:    {Rect: image.Rect(100, 1292, 1080, 1334), H: render.Left, V: render.Middle},

	EffectSpellTrap: {Rect: image.Rect(92, 1302, 1092, 1608), Clip: true},
	EffectMonster:   {Rect: image.Rect(92, 1348, 1092, 1562), Clip: true},
	// Pendulum monsters reuse the regular monster box.
	EffectPendulumMonster: {Rect: image.Rect(92, 1348, 1092, 1562), Clip: true},

	PendulumScaleLeft:  {Rect: rect(98, 1168, 56, 72), H: render.Center, V: render.Middle},
	PendulumScaleRight: {Rect: rect(1026, 1168, 56, 72), H: render.Center, V: render.Middle},
	PendulumEffect:     {Rect: image.Rect(184, 1090, 1000, 1274), Clip: true},

	StatSeparator: {Rect: image.Rect(92, 1564, 1088, 1568)},
	Stats:         {Rect: image.Rect(92, 1570, 1078, 1614), H: render.Right, V: render.Middle},
	CardID:        {Rect: image.Rect(70, 1640, 570, 1676), H: render.Left, V: render.Middle},

	SpellTrapLabel: {Rect: image.Rect(590, 210, 1070, 290), H: render.Right, V: render.Middle},
	SpellTrapIcon:  {Rect: rect(972, 210, 72, 72)},
}

// Star row geometry.
const (
	StarSize     = 80
	StarSpacing  = 2
	StarY        = 210
	StarRowStart = 100
	StarRowWidth = 988
	MaxStars     = 12
)

// Stat line spacing.
const (
	StatLabelGap   = 4
	StatSectionGap = 16
)

// ArrowSlot is where one link arrow asset is drawn.
type ArrowSlot struct {
	Arrow card.LinkArrow
	Asset string
	Rect  image.Rectangle
}

// ArrowSlots lists every link arrow position in card.AllArrows order.
var ArrowSlots = [...]ArrowSlot{
	{card.UpLeft, "icon/L_UL.png", rect(106, 278, 80, 80)},
	{card.Up, "icon/L_U.png", rect(500, 256, 180, 70)},
	{card.UpRight, "icon/L_UR.png", rect(994, 278, 80, 80)},
	{card.Left, "icon/L_L.png", rect(80, 672, 70, 180)},
	{card.Right, "icon/L_R.png", rect(1030, 672, 70, 180)},
	{card.DownLeft, "icon/L_DL.png", rect(106, 1168, 80, 80)},
	{card.Down, "icon/L_D.png", rect(500, 1200, 180, 70)},
	{card.DownRight, "icon/L_DR.png", rect(994, 1168, 80, 80)},
}
