package deck

import (
	"strconv"
	"strings"
)

// Export writes d in the format Parse reads, entries in list order.
func Export(d Deck) string {
	lines := make([]string, 0, len(d.Entries)+1)
	if d.Name != "" {
		lines = append(lines, "# "+d.Name)
	}
	for _, e := range d.Entries {
		lines = append(lines, strconv.Itoa(e.Count)+"x"+strconv.FormatUint(uint64(e.ID), 10))
	}
	return strings.Join(lines, "\n")
}
