package layout

import (
	"image"
	"image/color"
	"strconv"

	"github.com/youruser/cardsmith/internal/card"
)

type StatsKind uint8

const (
	NoStats StatsKind = iota
	AtkDef
	AtkLink
)

// Stars is a row of level or rank stars.
type Stars struct {
	Asset string
	Rank  bool // left-aligned Xyz rank row
	Rects []image.Rectangle
}

// RegionSet lists everything drawn for one card. Empty asset paths and nil
// slices mean the layer is skipped.
type RegionSet struct {
	Frame     string
	Attribute string
	Art       Region
	Stars     Stars
	Arrows    []ArrowSlot
	NameColor color.Color

	TypeLine     bool
	Effect       Region
	EffectItalic bool
	Pendulum     bool
	Stats        StatsKind
	CardID       bool

	// Spell/trap label text and optional subtype icon.
	Label     string
	LabelIcon string
}

// Resolve maps a card to its regions and assets. It performs no I/O and
// never fails: inconsistent data simply activates whatever its flags select.
func Resolve(c card.Data) RegionSet {
	rs := RegionSet{
		Frame:     FramePath(c),
		Attribute: AttributePath(c),
		Art:       ArtRegular,
		NameColor: color.Black,
		Effect:    EffectMonster,
		Pendulum:  c.Pendulum,
		CardID:    c.ID != 0,
	}
	if c.Pendulum {
		rs.Art = ArtPendulum
	}

	switch c.Type {
	case card.Spell, card.Trap:
		rs.Effect = EffectSpellTrap
		rs.NameColor = color.White
		rs.Label, rs.LabelIcon = spellTrapLabel(c)
	case card.Monster, card.Token:
		if c.Pendulum {
			rs.Effect = EffectPendulumMonster
		}
		rs.TypeLine = c.TypeLine != ""
		rs.EffectItalic = c.NormalMonster
		// tokens carry no stat line
		if c.Type == card.Monster {
			rs.Stats = AtkDef
		}
		switch c.Subtype {
		case card.MonsterXyz:
			rs.NameColor = color.White
		case card.MonsterLink:
			rs.NameColor = color.White
			if rs.Stats != NoStats {
				rs.Stats = AtkLink
			}
		}
		if c.Subtype == card.MonsterLink {
			rs.Arrows = arrowSlots(c.Arrows)
		} else {
			rs.Stars = starRow(c.Level, c.Subtype == card.MonsterXyz)
		}
	}
	return rs
}

// FramePath returns the frame texture for a card.
func FramePath(c card.Data) string {
	name := "monster_normal"
	switch c.Type {
	case card.Spell:
		name = "spell"
	case card.Trap:
		name = "trap"
	case card.Token:
		name = "monster_token"
	case card.Monster:
		if c.Pendulum {
			name = "pendulum_normal"
			switch c.Subtype {
			case card.MonsterEffect, card.MonsterRitual, card.MonsterFusion,
				card.MonsterSynchro, card.MonsterXyz:
				name = "pendulum_" + c.Subtype.String()
			}
			break
		}
		switch c.Subtype {
		case card.MonsterEffect, card.MonsterRitual, card.MonsterFusion,
			card.MonsterSynchro, card.MonsterXyz, card.MonsterLink:
			name = "monster_" + c.Subtype.String()
		}
	}
	return "card_frame/" + name + ".png"
}

var attributeIcons = map[card.Attribute]string{
	card.Dark:   "DARK",
	card.Earth:  "EARTH",
	card.Fire:   "FIRE",
	card.Light:  "LIGHT",
	card.Water:  "WATER",
	card.Wind:   "WIND",
	card.Divine: "DIVINE",
}

// AttributePath returns the attribute icon for a card, or "" when the
// attribute is out of range.
func AttributePath(c card.Data) string {
	var name string
	switch c.Type {
	case card.Spell:
		name = "SPELL"
	case card.Trap:
		name = "TRAP"
	default:
		name = attributeIcons[c.Attribute]
	}
	if name == "" {
		return ""
	}
	return "icon/attr_" + name + ".png"
}

var subtypeIcons = map[card.Subtype]string{
	card.TrapCounter:     "icon/GUI_T_Icon1_Icon01.png",
	card.SpellField:      "icon/GUI_T_Icon1_Icon02.png",
	card.SpellEquip:      "icon/GUI_T_Icon1_Icon03.png",
	card.SpellContinuous: "icon/GUI_T_Icon1_Icon04.png",
	card.TrapContinuous:  "icon/GUI_T_Icon1_Icon04.png",
	card.SpellQuickPlay:  "icon/GUI_T_Icon1_Icon05.png",
	card.SpellRitual:     "icon/GUI_T_Icon1_Icon06.png",
}

func spellTrapLabel(c card.Data) (label, icon string) {
	word := "Spell"
	if c.Type == card.Trap {
		word = "Trap"
	}
	switch c.Subtype {
	case card.MonsterNormal, card.SpellNormal, card.TrapNormal:
		return "[" + word + " Card]", ""
	}
	// five spaces leave room for the icon inside the brackets; subtypes
	// without an icon keep the gap
	return "[" + word + " Card     ]", subtypeIcons[c.Subtype]
}

const (
	LevelStar = "icon/GUI_T_Icon1_Other_Level.png"
	RankStar  = "icon/GUI_T_Icon1_Other_Rank.png"
)

func starRow(n int, rank bool) Stars {
	if n < 1 || n > MaxStars {
		return Stars{}
	}
	s := Stars{Asset: LevelStar, Rank: rank}
	if rank {
		s.Asset = RankStar
	}
	row := n*StarSize + (n-1)*StarSpacing
	x := StarRowStart + StarRowWidth - row
	if rank {
		x = StarRowStart
	}
	for i := 0; i < n; i++ {
		s.Rects = append(s.Rects, rect(x, StarY, StarSize, StarSize))
		x += StarSize + StarSpacing
	}
	return s
}

func arrowSlots(a card.Arrows) []ArrowSlot {
	var out []ArrowSlot
	for _, slot := range ArrowSlots {
		if a.Has(slot.Arrow) {
			out = append(out, slot)
		}
	}
	return out
}

// StatSegments returns the label and value strings of the stat line, in
// drawing order.
func StatSegments(c card.Data, kind StatsKind) [][2]string {
	switch kind {
	case AtkDef:
		return [][2]string{{"ATK/", statValue(c.ATK)}, {"DEF/", statValue(c.DEF)}}
	case AtkLink:
		return [][2]string{{"ATK/", statValue(c.ATK)}, {"LINK-", strconv.Itoa(c.Level)}}
	}
	return nil
}

func statValue(v int) string {
	if v < 0 {
		return "?"
	}
	return strconv.Itoa(v)
}

// ArtSource returns the part of an artW x artH image that is scaled into
// box. Images wider than the box aspect lose equal amounts left and right;
// taller images keep their top rows and lose the bottom.
func ArtSource(artW, artH int, box image.Rectangle) image.Rectangle {
	bw, bh := box.Dx(), box.Dy()
	if artW <= 0 || artH <= 0 || bw <= 0 || bh <= 0 {
		return image.Rectangle{}
	}
	switch {
	case artW*bh > artH*bw:
		w := artH * bw / bh
		x := (artW - w) / 2
		return image.Rect(x, 0, x+w, artH)
	case artW*bh < artH*bw:
		h := artW * bh / bw
		return image.Rect(0, 0, artW, h)
	}
	return image.Rect(0, 0, artW, artH)
}
