package card

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubtype(t *testing.T) {
	tests := []struct {
		typ  Type
		in   string
		want Subtype
	}{
		{Monster, "normal", MonsterNormal},
		{Spell, "normal", SpellNormal},
		{Trap, "Normal", TrapNormal},
		{Spell, "ritual", SpellRitual},
		{Monster, "ritual", MonsterRitual},
		{Spell, "continuous", SpellContinuous},
		{Trap, "continuous", TrapContinuous},
		{Spell, "Quick-Play", SpellQuickPlay},
		{Spell, "quick_play", SpellQuickPlay},
		{Spell, "quick", SpellQuickPlay},
		{Trap, "counter", TrapCounter},
		{Monster, "XYZ", MonsterXyz},
		{Spell, "field", SpellField},
		{Spell, "spell_continuous", SpellContinuous},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String()+"/"+tt.in, func(t *testing.T) {
			got, err := ParseSubtype(tt.typ, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseSubtype(Monster, "gemini")
	assert.ErrorContains(t, err, "gemini")
}

func TestEnumText(t *testing.T) {
	var a Attribute
	require.NoError(t, a.UnmarshalText([]byte("DIVINE")))
	assert.Equal(t, Divine, a)
	assert.Error(t, a.UnmarshalText([]byte("laugh")))

	b, err := SpellQuickPlay.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "quickplay", string(b))
	assert.Equal(t, "unknown(99)", Type(99).String())
}

func TestArrows(t *testing.T) {
	a := NewArrows(Up, DownLeft)
	assert.True(t, a.Has(Up))
	assert.True(t, a.Has(DownLeft))
	assert.False(t, a.Has(Down))
	assert.Equal(t, []LinkArrow{Up, DownLeft}, a.List())

	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `["up","down_left"]`, string(b))

	b, err = json.Marshal(Arrows(0))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	p, err := ParseArrows("up / Down-Left, -")
	require.NoError(t, err)
	assert.Equal(t, a, p)

	_, err = ParseArrows("sideways")
	assert.Error(t, err)
}

func TestDataUnmarshalJSON(t *testing.T) {
	t.Run("spell normal", func(t *testing.T) {
		var d Data
		require.NoError(t, json.Unmarshal([]byte(`{"name":"Pot of Greed","type":"spell","subtype":"normal"}`), &d))
		assert.Equal(t, Spell, d.Type)
		assert.Equal(t, SpellNormal, d.Subtype)
		assert.Equal(t, -1, d.ATK)
		assert.Equal(t, -1, d.DEF)
	})

	t.Run("default subtype", func(t *testing.T) {
		var d Data
		require.NoError(t, json.Unmarshal([]byte(`{"type":"trap"}`), &d))
		assert.Equal(t, TrapNormal, d.Subtype)
	})

	t.Run("link monster", func(t *testing.T) {
		var d Data
		body := `{"type":"monster","subtype":"link","level":3,"atk":2300,"link_arrows":["up","down_left"],"attribute":"dark"}`
		require.NoError(t, json.Unmarshal([]byte(body), &d))
		assert.Equal(t, MonsterLink, d.Subtype)
		assert.Equal(t, 2300, d.ATK)
		assert.Equal(t, -1, d.DEF)
		assert.Equal(t, NewArrows(Up, DownLeft), d.Arrows)
		assert.Equal(t, Dark, d.Attribute)
	})

	t.Run("bad subtype", func(t *testing.T) {
		var d Data
		assert.Error(t, json.Unmarshal([]byte(`{"type":"spell","subtype":"gemini"}`), &d))
	})

	t.Run("marshal then decode keeps subtype", func(t *testing.T) {
		in := Data{Type: Trap, Subtype: TrapContinuous, ATK: -1, DEF: -1}
		b, err := json.Marshal(in)
		require.NoError(t, err)
		var out Data
		require.NoError(t, json.Unmarshal(b, &out))
		assert.Equal(t, in, out)
	})
}

func TestNormalize(t *testing.T) {
	d := Data{Name: "Poke\u0301mon", Effect: "line one\r\nline two"}
	d.Normalize()
	assert.Equal(t, "Pok\u00e9mon", d.Name)
	assert.Equal(t, "line one\nline two", d.Effect)
}

const cardsCSV = `id,name,type,subtype,attribute,type_line,level,atk,def,pendulum,scale,pendulum_effect,effect,link_arrows,normal
89631139,Blue-Eyes White Dragon,monster,normal,light,[Dragon / Normal],8,3000,2500,,,,This legendary dragon.,,1
55144522,Pot of Greed,spell,normal,,,,,,,,,Draw 2 cards.,,
44508094,Stardust Dragon,monster,synchro,wind,[Dragon / Synchro / Effect],8,2500,2000,,,,Negate.\nDestroy.,,
16195942,Dark Rebellion,monster,xyz,dark,[Dragon / Xyz / Effect],4,2500,2000,,,,,,
1861629,Decode Talker,monster,link,dark,[Cyberse / Link / Effect],3,2300,?,,,,,up/down_left/down_right,
16178681,Odd-Eyes Pendulum Dragon,monster,effect,dark,[Dragon / Pendulum / Effect],7,2500,2000,1,4,Once per turn.,Double damage.,,
`

func writeCSV(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "cards.csv", cardsCSV)
	writeCSV(t, dir, "custom_cards.csv", "id,name,type\n55144522,Pot of Greed (custom),spell\n99999999,Custom Trap,trap\n")
	writeCSV(t, dir, "custom_promo.csv", "id,name,type\n99999999,Promo Trap,trap\n88888888,Promo Spell,spell\n")
	writeCSV(t, dir, "notes.csv", "id,name,type\n77777777,Ignored,spell\n")

	db, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 8, db.Len())

	be, err := db.Get(89631139)
	require.NoError(t, err)
	assert.Equal(t, MonsterNormal, be.Subtype)
	assert.Equal(t, Light, be.Attribute)
	assert.True(t, be.NormalMonster)
	assert.Equal(t, 3000, be.ATK)

	pot, err := db.Get(55144522)
	require.NoError(t, err)
	assert.Equal(t, "Pot of Greed (custom)", pot.Name)
	assert.Equal(t, SpellNormal, pot.Subtype)

	dt, err := db.Get(1861629)
	require.NoError(t, err)
	assert.Equal(t, -1, dt.DEF)
	assert.Equal(t, NewArrows(Up, DownLeft, DownRight), dt.Arrows)

	sd, err := db.Get(44508094)
	require.NoError(t, err)
	assert.Equal(t, "Negate.\nDestroy.", sd.Effect)

	oe, err := db.Get(16178681)
	require.NoError(t, err)
	assert.True(t, oe.Pendulum)
	assert.Equal(t, 4, oe.Scale)

	tr, err := db.Get(99999999)
	require.NoError(t, err)
	assert.Equal(t, TrapNormal, tr.Subtype)
	assert.Equal(t, "Promo Trap", tr.Name)

	_, err = db.Get(88888888)
	assert.NoError(t, err)
	_, err = db.Get(77777777)
	assert.ErrorIs(t, err, ErrUnknownCard)

	_, err = db.Get(12345)
	assert.True(t, errors.Is(err, ErrUnknownCard))
	_, err = db.Get(0)
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestLoadDirErrors(t *testing.T) {
	t.Run("no files", func(t *testing.T) {
		_, err := LoadDir(t.TempDir())
		assert.Error(t, err)
	})
	t.Run("no id column", func(t *testing.T) {
		dir := t.TempDir()
		writeCSV(t, dir, "cards.csv", "name,type\nx,monster\n")
		_, err := LoadDir(dir)
		assert.ErrorContains(t, err, "missing id column")
	})
	t.Run("bad enum names row and column", func(t *testing.T) {
		dir := t.TempDir()
		writeCSV(t, dir, "cards.csv", "id,type,attribute\n1,monster,plasma\n")
		_, err := LoadDir(dir)
		require.Error(t, err)
		assert.ErrorContains(t, err, "cards.csv")
		assert.ErrorContains(t, err, "row 2")
		assert.ErrorContains(t, err, "column attribute")
	})
}

func TestFilter(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "cards.csv", cardsCSV)
	db, err := LoadDir(dir)
	require.NoError(t, err)
	all := db.All()

	ids := func(cs []Data) []uint32 {
		out := []uint32{}
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}

	tests := []struct {
		name string
		opt  FilterOptions
		want []uint32
	}{
		{"everything", FilterOptions{}, []uint32{1861629, 16178681, 16195942, 44508094, 55144522, 89631139}},
		{"spells", FilterOptions{Types: []Type{Spell}}, []uint32{55144522}},
		{"xyz or link", FilterOptions{Subtypes: []string{"xyz", "link"}}, []uint32{1861629, 16195942}},
		{"dark", FilterOptions{Attributes: []Attribute{Dark}}, []uint32{1861629, 16178681, 16195942}},
		{"level 8", FilterOptions{Levels: []int{8}}, []uint32{44508094, 89631139}},
		{"pendulum only", FilterOptions{Pendulum: "only"}, []uint32{16178681}},
		{"words", FilterOptions{FreeWords: "DRAGON synchro"}, []uint32{44508094}},
		{"no match", FilterOptions{FreeWords: "kuriboh"}, []uint32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, ids(Filter(all, tt.opt)))
		})
	}
}
