package card

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DB is an in-memory card database loaded from CSV files.
type DB struct {
	cards []Data
	byID  map[uint32]int
}

func NewDB(cards []Data) *DB {
	db := &DB{byID: make(map[uint32]int, len(cards))}
	for _, c := range cards {
		if i, ok := db.byID[c.ID]; ok && c.ID != 0 {
			// later files override earlier ones (custom_*.csv wins)
			db.cards[i] = c
			continue
		}
		db.byID[c.ID] = len(db.cards)
		db.cards = append(db.cards, c)
	}
	return db
}

func (db *DB) All() []Data {
	out := make([]Data, len(db.cards))
	copy(out, db.cards)
	return out
}

func (db *DB) Len() int { return len(db.cards) }

func (db *DB) Get(id uint32) (Data, error) {
	i, ok := db.byID[id]
	if !ok || id == 0 {
		return Data{}, fmt.Errorf("card %08d: %w", id, ErrUnknownCard)
	}
	return db.cards[i], nil
}

// LoadDir loads cards.csv and then every custom_*.csv in dataDir, in name
// order. A card id seen again replaces the earlier row.
func LoadDir(dataDir string) (*DB, error) {
	custom, err := filepath.Glob(filepath.Join(dataDir, "custom_*.csv"))
	if err != nil {
		return nil, err
	}
	files := append([]string{filepath.Join(dataDir, "cards.csv")}, custom...)

	var all []Data
	var found bool
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			// skip missing files
			continue
		}
		found = true
		cs, err := loadSingleCSV(f)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
		all = append(all, cs...)
	}
	if !found {
		return nil, fmt.Errorf("no input CSVs found in %s", dataDir)
	}
	return NewDB(all), nil
}

func loadSingleCSV(path string) ([]Data, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("csv %s has no header", path)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["id"]; !ok {
		return nil, fmt.Errorf("csv %s: missing id column", path)
	}

	out := make([]Data, 0, len(rows)-1)
	for n, row := range rows[1:] {
		c, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		c.Normalize()
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func parseRow(row []string, cols map[string]int) (Data, error) {
	get := func(name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	c := Data{
		Name:           get("name"),
		TypeLine:       get("type_line"),
		Effect:         unescape(get("effect")),
		PendulumEffect: unescape(get("pendulum_effect")),
	}

	id, err := strconv.ParseUint(get("id"), 10, 32)
	if err != nil {
		return c, fmt.Errorf("column id: %w", err)
	}
	c.ID = uint32(id)

	if v := get("type"); v != "" {
		if err := c.Type.UnmarshalText([]byte(v)); err != nil {
			return c, fmt.Errorf("column type: %w", err)
		}
	}
	c.Subtype = defaultSubtype(c.Type)
	if v := get("subtype"); v != "" {
		if c.Subtype, err = ParseSubtype(c.Type, v); err != nil {
			return c, fmt.Errorf("column subtype: %w", err)
		}
	}
	if v := get("attribute"); v != "" && v != "-" {
		if err := c.Attribute.UnmarshalText([]byte(v)); err != nil {
			return c, fmt.Errorf("column attribute: %w", err)
		}
	}
	if c.Arrows, err = ParseArrows(get("link_arrows")); err != nil {
		return c, fmt.Errorf("column link_arrows: %w", err)
	}

	c.Level = atoiOr(get("level"), 0)
	c.Scale = atoiOr(get("scale"), 0)
	c.ATK = atoiOr(get("atk"), -1)
	c.DEF = atoiOr(get("def"), -1)
	c.Pendulum = isTrue(get("pendulum"))
	c.NormalMonster = isTrue(get("normal"))
	return c, nil
}

// atoiOr parses s, returning def for "", "-", "?" and other non-numbers.
func atoiOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func isTrue(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// unescape turns literal "\n" sequences into line breaks; spreadsheets
// exporting to CSV often flatten them.
func unescape(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
