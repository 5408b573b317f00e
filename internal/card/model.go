package card

import (
	"encoding/json"
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrUnknownCard is returned by DB lookups for ids that are not loaded.
var ErrUnknownCard = errors.New("unknown card")

// Data is everything the compositor needs to draw one card.
// It is read-only for the duration of a render.
type Data struct {
	Name           string    `json:"name"`
	Type           Type      `json:"type"`
	Subtype        Subtype   `json:"subtype"`
	Effect         string    `json:"effect"`
	ID             uint32    `json:"id"` // 0 = absent
	Attribute      Attribute `json:"attribute"`
	TypeLine       string    `json:"type_line"` // e.g. "[Dragon / Effect]"
	Level          int       `json:"level"`     // level, rank or link rating
	ATK            int       `json:"atk"`       // -1 = unknown
	DEF            int       `json:"def"`       // -1 = unknown, ignored for Link
	Pendulum       bool      `json:"pendulum"`
	Scale          int       `json:"scale"`
	PendulumEffect string    `json:"pendulum_effect"`
	NormalMonster  bool      `json:"normal_monster"` // flavor text, italic
	Arrows         Arrows    `json:"link_arrows"`
}

// IsSpellTrap reports whether the card uses the spell/trap layout.
func (d Data) IsSpellTrap() bool {
	return d.Type == Spell || d.Type == Trap
}

// UnmarshalJSON resolves the subtype against the decoded type, so a spell
// with "subtype": "normal" becomes SpellNormal.
func (d *Data) UnmarshalJSON(b []byte) error {
	type plain Data
	var aux struct {
		plain
		Subtype string `json:"subtype"`
	}
	aux.plain = plain(Data{ATK: -1, DEF: -1})
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*d = Data(aux.plain)
	if aux.Subtype == "" {
		d.Subtype = defaultSubtype(d.Type)
		return nil
	}
	st, err := ParseSubtype(d.Type, aux.Subtype)
	if err != nil {
		return err
	}
	d.Subtype = st
	return nil
}

func defaultSubtype(t Type) Subtype {
	switch t {
	case Spell:
		return SpellNormal
	case Trap:
		return TrapNormal
	}
	return MonsterNormal
}

// Normalize puts all text fields into NFC form and drops carriage returns,
// so measuring and wrapping see one canonical encoding.
func (d *Data) Normalize() {
	clean := func(s string) string {
		return norm.NFC.String(strings.ReplaceAll(s, "\r", ""))
	}
	d.Name = clean(d.Name)
	d.Effect = clean(d.Effect)
	d.TypeLine = clean(d.TypeLine)
	d.PendulumEffect = clean(d.PendulumEffect)
}
