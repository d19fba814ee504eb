package domain

import "strings"

// FilterPireps removes aircraft position reports and blank rows from a PIREP
// result set, preserving the order of what remains. An entry is a position
// report when its trimmed text starts with "ARP", case-insensitively. The
// prefix heuristic follows the upstream report format; anything stricter
// belongs to the producer of the feed, not this layer.
func FilterPireps(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(text), "ARP") {
			continue
		}
		out = append(out, r)
	}
	return out
}
