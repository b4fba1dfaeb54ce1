package fund

import (
	"strings"
	"time"
)

// ParseMDY attempts to parse a month/day/year date like "2/2/2026" or
// "02/02/2026" into a time.Time. Returns time.Time{} (zero value) if parsing
// fails.
func ParseMDY(s string) time.Time {
	for _, layout := range []string{"1/2/2006", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseLongDate attempts to parse a written-out date like "January 30, 2026"
// or "Jan 30 2026". Returns time.Time{} (zero value) if parsing fails.
func ParseLongDate(s string) time.Time {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	for _, layout := range []string{"January 2 2006", "Jan 2 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
