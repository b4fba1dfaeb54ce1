package scraper

import (
	"regexp"
	"strings"
	"time"

	"github.com/pfrederiksen/nav-tracker/internal/fund"
	"github.com/shopspring/decimal"
)

// proximityWindow bounds the search around the NAV match when looking for the
// observation date and change percentage. Matches further away (disclaimers,
// footers) are only considered if nothing closer exists.
const proximityWindow = 250

var (
	// Anchor phrase marking the genuine NAV figure on the page.
	navAnchorPattern = regexp.MustCompile(`(?i)net\s+asset\s+value|\bNAV\b`)

	// Monetary value with exactly 4 fractional digits. The 4-digit requirement
	// is what separates the NAV from unrelated currency figures (fees, minimum
	// investments) which the page shows with 2 digits.
	navValuePattern = regexp.MustCompile(`\$?\s*(\d{1,3}(?:,\d{3})*\.\d{4}|\d+\.\d{4})\b`)

	// Dates like "2/2/2026" or "02/02/2026".
	mdyDatePattern = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`)

	// "As of January 30, 2026" style fallback, same anchors the RBC pages use.
	asOfDatePattern = regexp.MustCompile(`(?i)(?:as\s+of|prices?\s+as\s+of|date:)\s*(\w+\s+\d{1,2},?\s+\d{4})`)

	// Signed percentage like "+0.80%" or "-1.2 %".
	changePattern = regexp.MustCompile(`([+-]?\d+\.\d+)\s*%`)
)

// Extract produces a candidate observation from the visible text of one fund
// detail page. Fields are extracted independently; a field that cannot be
// located is left unset and the validator decides whether that is fatal.
func Extract(text string) fund.Candidate {
	var c fund.Candidate

	navStart, navEnd := -1, -1
	if loc := findNav(text); loc != nil {
		raw := strings.TrimLeft(text[loc[2]:loc[3]], "$ ")
		raw = strings.ReplaceAll(raw, ",", "")
		if nav, err := decimal.NewFromString(raw); err == nil {
			c.Nav = &nav
			navStart, navEnd = loc[0], loc[1]
		}
	}

	c.Date = findDate(text, navStart, navEnd)
	c.ChangePercent = findChange(text, navStart, navEnd)
	return c
}

// findNav locates the NAV value: among all 4-decimal monetary values on the
// page, the one textually closest to a NAV anchor phrase wins. Without any
// anchor there is no way to tell the NAV apart from other figures, so no
// match is returned.
func findNav(text string) []int {
	anchors := navAnchorPattern.FindAllStringIndex(text, -1)
	if len(anchors) == 0 {
		return nil
	}

	values := navValuePattern.FindAllStringSubmatchIndex(text, -1)
	if len(values) == 0 {
		return nil
	}

	best := -1
	bestDist := 0
	for i, v := range values {
		d := distanceToNearest(v[0], v[1], anchors)
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return values[best]
}

// distanceToNearest returns the smallest gap between span [start,end) and any
// anchor span. Overlapping spans count as distance zero.
func distanceToNearest(start, end int, anchors [][]int) int {
	nearest := -1
	for _, a := range anchors {
		var d int
		switch {
		case start >= a[1]:
			d = start - a[1]
		case a[0] >= end:
			d = a[0] - end
		default:
			d = 0
		}
		if nearest == -1 || d < nearest {
			nearest = d
		}
	}
	return nearest
}

// findDate looks for an M/D/YYYY date, preferring a bounded window around the
// NAV match so that disclaimer dates elsewhere on the page are not picked up.
// Falls back to an "as of <Month D, YYYY>" phrase anywhere in the text.
func findDate(text string, navStart, navEnd int) (t time.Time) {
	if navStart >= 0 {
		lo := max(0, navStart-proximityWindow)
		hi := min(len(text), navEnd+proximityWindow)
		if m := mdyDatePattern.FindStringSubmatch(text[lo:hi]); m != nil {
			if t = fund.ParseMDY(m[1]); !t.IsZero() {
				return t
			}
		}
	}

	if m := mdyDatePattern.FindStringSubmatch(text); m != nil {
		if t = fund.ParseMDY(m[1]); !t.IsZero() {
			return t
		}
	}

	if m := asOfDatePattern.FindStringSubmatch(text); m != nil {
		return fund.ParseLongDate(m[1])
	}

	return t
}

// findChange extracts the daily change percentage. The page carries several
// percentage figures (yields, MERs), so this is best effort: a match inside
// the NAV proximity window is preferred, then the first match anywhere.
func findChange(text string, navStart, navEnd int) *decimal.Decimal {
	if navStart >= 0 {
		lo := max(0, navStart-proximityWindow)
		hi := min(len(text), navEnd+proximityWindow)
		if m := changePattern.FindStringSubmatch(text[lo:hi]); m != nil {
			return parseChange(m[1])
		}
	}

	if m := changePattern.FindStringSubmatch(text); m != nil {
		return parseChange(m[1])
	}
	return nil
}

func parseChange(s string) *decimal.Decimal {
	s = strings.TrimPrefix(s, "+")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
