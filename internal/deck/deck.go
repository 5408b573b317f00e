// Package deck reads and writes plain-text deck lists.
//
// The format is one entry per line, "3x46986414" or a bare passcode for a
// single copy. A line starting with "#" names the deck; blank lines are
// ignored.
package deck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxCopies is the most copies of one card a list may hold.
const MaxCopies = 3

var ErrEmpty = errors.New("deck: no entries")

type Entry struct {
	ID    uint32 `json:"id"`
	Count int    `json:"count"`
}

type Deck struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Add appends count copies of id, merging with an existing entry.
func (d *Deck) Add(id uint32, count int) {
	for i := range d.Entries {
		if d.Entries[i].ID == id {
			d.Entries[i].Count += count
			return
		}
	}
	d.Entries = append(d.Entries, Entry{ID: id, Count: count})
}

// Total is the number of cards including copies.
func (d Deck) Total() int {
	n := 0
	for _, e := range d.Entries {
		n += e.Count
	}
	return n
}

// IDs expands the list into one id per copy, in entry order.
func (d Deck) IDs() []uint32 {
	out := make([]uint32, 0, d.Total())
	for _, e := range d.Entries {
		for i := 0; i < e.Count; i++ {
			out = append(out, e.ID)
		}
	}
	return out
}

// Parse reads a deck list. Errors name the offending line.
func Parse(text string) (Deck, error) {
	var d Deck
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if d.Name == "" {
				d.Name = strings.TrimSpace(strings.TrimPrefix(line, "#"))
			}
			continue
		}
		id, count, err := parseEntry(line)
		if err != nil {
			return Deck{}, fmt.Errorf("line %d: %w", n+1, err)
		}
		d.Add(id, count)
	}
	for _, e := range d.Entries {
		if e.Count > MaxCopies {
			return Deck{}, fmt.Errorf("card %08d: %d copies, at most %d allowed", e.ID, e.Count, MaxCopies)
		}
	}
	if len(d.Entries) == 0 {
		return d, ErrEmpty
	}
	return d, nil
}

func parseEntry(s string) (uint32, int, error) {
	count := 1
	if before, after, ok := strings.Cut(strings.ToLower(s), "x"); ok {
		c, err := strconv.Atoi(strings.TrimSpace(before))
		if err != nil || c < 1 {
			return 0, 0, fmt.Errorf("bad count %q", before)
		}
		count, s = c, after
	}
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || id == 0 {
		return 0, 0, fmt.Errorf("bad passcode %q", s)
	}
	return uint32(id), count, nil
}
