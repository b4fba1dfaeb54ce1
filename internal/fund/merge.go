package fund

import (
	"fmt"
	"sort"
)

// Merge compares an accepted candidate against a fund's history and appends a
// new entry only if the NAV changed from the most recent entry. Returns the
// resulting history and whether an entry was appended.
//
// When the source republishes the same NAV on a non-trading day the candidate
// is skipped even if its date differs, which is what keeps weekends and
// holidays from producing duplicate rows.
func Merge(history []Entry, c Candidate) ([]Entry, bool) {
	if len(history) > 0 && history[len(history)-1].Nav.Equal(*c.Nav) {
		return history, false
	}

	history = append(history, c.Entry())
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date < history[j].Date
	})
	return history, true
}

// CheckHistory verifies the history invariants: entries ordered by date
// ascending and no two adjacent entries sharing the same NAV. It runs after
// every merge; a violation means a bug, not bad input.
func CheckHistory(history []Entry) error {
	for i := 1; i < len(history); i++ {
		prev, cur := history[i-1], history[i]
		if cur.Date < prev.Date {
			return fmt.Errorf("history out of order: %s before %s", prev.Date, cur.Date)
		}
		if prev.Nav.Equal(cur.Nav) {
			return fmt.Errorf("adjacent entries %s and %s share nav %s", prev.Date, cur.Date, cur.Nav)
		}
	}
	return nil
}
