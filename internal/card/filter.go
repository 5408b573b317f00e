package card

import "strings"

type FilterOptions struct {
	Types      []Type      `json:"types"`
	Subtypes   []string    `json:"subtypes"` // resolved against each card's type
	Attributes []Attribute `json:"attributes"`
	Levels     []int       `json:"levels"`
	Pendulum   string      `json:"pendulum"` // "only", "exclude" or ""
	FreeWords  string      `json:"free_words"`
}

func Filter(cards []Data, opt FilterOptions) []Data {
	out := []Data{}
	for _, c := range cards {
		if opt.Pendulum == "only" && !c.Pendulum {
			continue
		}
		if opt.Pendulum == "exclude" && c.Pendulum {
			continue
		}
		if len(opt.Types) > 0 && !contains(opt.Types, c.Type) {
			continue
		}
		if len(opt.Subtypes) > 0 && !subtypeMatches(c, opt.Subtypes) {
			continue
		}
		if len(opt.Attributes) > 0 {
			// spells and traps have no attribute to match
			if c.IsSpellTrap() || !contains(opt.Attributes, c.Attribute) {
				continue
			}
		}
		if len(opt.Levels) > 0 && !contains(opt.Levels, c.Level) {
			continue
		}
		if opt.FreeWords != "" && !matchesWords(c, opt.FreeWords) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func contains[T comparable](hay []T, v T) bool {
	for _, h := range hay {
		if h == v {
			return true
		}
	}
	return false
}

func subtypeMatches(c Data, names []string) bool {
	for _, n := range names {
		st, err := ParseSubtype(c.Type, n)
		if err == nil && st == c.Subtype {
			return true
		}
	}
	return false
}

// matchesWords requires every whitespace-separated keyword to appear in the
// name, effect, type line or pendulum effect, ignoring case.
func matchesWords(c Data, words string) bool {
	hay := strings.ToLower(strings.Join([]string{c.Name, c.Effect, c.TypeLine, c.PendulumEffect}, "\n"))
	for _, k := range strings.Fields(words) {
		if !strings.Contains(hay, strings.ToLower(k)) {
			return false
		}
	}
	return true
}
