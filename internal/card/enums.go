package card

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Type uint8

const (
	Monster Type = iota
	Spell
	Trap
	Token
)

var typeNames = []string{"monster", "spell", "trap", "token"}

func (t Type) String() string { return enumName(typeNames, int(t)) }

func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Type) UnmarshalText(b []byte) error {
	i, err := enumParse("type", typeNames, string(b))
	if err != nil {
		return err
	}
	*t = Type(i)
	return nil
}

// Subtype is the per-type variant. The monster, spell and trap variants share
// one closed enumeration; the compositor never checks that a subtype matches
// its Type.
type Subtype uint8

const (
	MonsterNormal Subtype = iota
	MonsterEffect
	MonsterRitual
	MonsterFusion
	MonsterSynchro
	MonsterXyz
	MonsterLink
	SpellNormal
	SpellQuickPlay
	SpellRitual
	SpellContinuous
	SpellField
	SpellEquip
	TrapNormal
	TrapCounter
	TrapContinuous
)

var subtypeNames = []string{
	"normal", "effect", "ritual", "fusion", "synchro", "xyz", "link",
	"spell_normal", "quickplay", "spell_ritual", "spell_continuous", "field", "equip",
	"trap_normal", "counter", "trap_continuous",
}

func (s Subtype) String() string { return enumName(subtypeNames, int(s)) }

func (s Subtype) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Subtype) UnmarshalText(b []byte) error {
	v, err := ParseSubtype(Monster, string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSubtype resolves a subtype name. Bare names shared between types
// ("normal", "ritual", "continuous") are resolved against t.
func ParseSubtype(t Type, s string) (Subtype, error) {
	key := enumKey(s)
	switch key {
	case "normal":
		switch t {
		case Spell:
			return SpellNormal, nil
		case Trap:
			return TrapNormal, nil
		}
		return MonsterNormal, nil
	case "ritual":
		if t == Spell {
			return SpellRitual, nil
		}
		return MonsterRitual, nil
	case "continuous":
		if t == Trap {
			return TrapContinuous, nil
		}
		return SpellContinuous, nil
	case "quick":
		return SpellQuickPlay, nil
	}
	i, err := enumParse("subtype", subtypeNames, s)
	if err != nil {
		return 0, err
	}
	return Subtype(i), nil
}

type Attribute uint8

const (
	Dark Attribute = iota
	Earth
	Fire
	Light
	Water
	Wind
	Divine
)

var attributeNames = []string{"dark", "earth", "fire", "light", "water", "wind", "divine"}

func (a Attribute) String() string { return enumName(attributeNames, int(a)) }

func (a Attribute) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Attribute) UnmarshalText(b []byte) error {
	i, err := enumParse("attribute", attributeNames, string(b))
	if err != nil {
		return err
	}
	*a = Attribute(i)
	return nil
}

// LinkArrow is one of the eight link marker directions.
type LinkArrow uint8

const (
	UpLeft LinkArrow = iota
	Up
	UpRight
	Left
	Right
	DownLeft
	Down
	DownRight
)

// AllArrows lists the directions in slot order.
var AllArrows = []LinkArrow{UpLeft, Up, UpRight, Left, Right, DownLeft, Down, DownRight}

var arrowNames = []string{"up_left", "up", "up_right", "left", "right", "down_left", "down", "down_right"}

func (a LinkArrow) String() string { return enumName(arrowNames, int(a)) }

func (a LinkArrow) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *LinkArrow) UnmarshalText(b []byte) error {
	i, err := enumParse("link arrow", arrowNames, string(b))
	if err != nil {
		return err
	}
	*a = LinkArrow(i)
	return nil
}

// Arrows is a set of link arrows, one bit per direction.
type Arrows uint8

func NewArrows(dirs ...LinkArrow) Arrows {
	var a Arrows
	for _, d := range dirs {
		a = a.With(d)
	}
	return a
}

func (a Arrows) Has(d LinkArrow) bool { return a&(1<<d) != 0 }

func (a Arrows) With(d LinkArrow) Arrows { return a | 1<<d }

// List returns the set members in slot order.
func (a Arrows) List() []LinkArrow {
	var out []LinkArrow
	for _, d := range AllArrows {
		if a.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

func (a Arrows) MarshalJSON() ([]byte, error) {
	list := a.List()
	if list == nil {
		list = []LinkArrow{}
	}
	return json.Marshal(list)
}

func (a *Arrows) UnmarshalJSON(b []byte) error {
	var list []LinkArrow
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*a = NewArrows(list...)
	return nil
}

// ParseArrows reads a "/" or "," separated direction list such as "up/down_left".
func ParseArrows(s string) (Arrows, error) {
	var a Arrows
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == ',' }) {
		part = strings.TrimSpace(part)
		if part == "" || part == "-" {
			continue
		}
		var d LinkArrow
		if err := d.UnmarshalText([]byte(part)); err != nil {
			return 0, err
		}
		a = a.With(d)
	}
	return a, nil
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("unknown(%d)", i)
	}
	return names[i]
}

// enumKey folds case and separators so "Quick-Play", "quick_play" and
// "QuickPlay" compare equal.
func enumKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	r := strings.NewReplacer("_", "", "-", "", " ", "")
	return r.Replace(s)
}

func enumParse(kind string, names []string, s string) (int, error) {
	key := enumKey(s)
	for i, n := range names {
		if enumKey(n) == key {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}
