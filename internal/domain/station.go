package domain

import "strings"

// ResolveStation returns the first row whose station matches id under
// case-insensitive, whitespace-trimmed comparison. An absent station is a
// normal, displayable outcome (the snapshot may simply not include it at the
// current page size), so it is reported via the bool rather than an error.
// Lookup is linear; snapshots are bounded and replaced wholesale each poll,
// so no index is kept.
func ResolveStation(snap Snapshot, id string) (Row, bool) {
	want := strings.TrimSpace(id)
	for _, r := range snap.Rows {
		if strings.EqualFold(strings.TrimSpace(r.Station), want) {
			return r, true
		}
	}
	return Row{}, false
}
