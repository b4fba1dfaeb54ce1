package fund

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used throughout the store.
const DateLayout = "2006-01-02"

// Fund is one tracked mutual fund: a display name plus its ordered,
// append-only NAV history.
type Fund struct {
	Name    string  `json:"name"`
	History []Entry `json:"history"`
}

// Entry is one persisted NAV observation. Entries are immutable once appended.
type Entry struct {
	Date          string
	Nav           decimal.Decimal
	ChangePercent *decimal.Decimal
}

// entryWire is the on-disk JSON shape of an Entry. Nav is emitted as a raw
// number with 4 fractional digits and change_percent as number-or-null, which
// is the contract the static site consuming data.json depends on.
type entryWire struct {
	Date          string          `json:"date"`
	Nav           json.RawMessage `json:"nav"`
	ChangePercent json.RawMessage `json:"change_percent"`
}

// MarshalJSON emits the stable store format: nav as a JSON number with exactly
// 4 fractional digits, change_percent as a number or null.
func (e Entry) MarshalJSON() ([]byte, error) {
	w := entryWire{
		Date:          e.Date,
		Nav:           json.RawMessage(e.Nav.StringFixed(4)),
		ChangePercent: json.RawMessage("null"),
	}
	if e.ChangePercent != nil {
		w.ChangePercent = json.RawMessage(e.ChangePercent.String())
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses the store format back into exact decimals.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w struct {
		Date          string       `json:"date"`
		Nav           json.Number  `json:"nav"`
		ChangePercent *json.Number `json:"change_percent"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	nav, err := decimal.NewFromString(w.Nav.String())
	if err != nil {
		return fmt.Errorf("parsing nav %q: %w", w.Nav.String(), err)
	}

	e.Date = w.Date
	e.Nav = nav
	e.ChangePercent = nil
	if w.ChangePercent != nil {
		chg, err := decimal.NewFromString(w.ChangePercent.String())
		if err != nil {
			return fmt.Errorf("parsing change_percent %q: %w", w.ChangePercent.String(), err)
		}
		e.ChangePercent = &chg
	}
	return nil
}

// Candidate is a freshly extracted, unvalidated observation. Fields are
// extracted independently: a nil Nav or zero Date means that field was not
// found in the page text. Candidates are never persisted.
type Candidate struct {
	Date          time.Time
	Nav           *decimal.Decimal
	ChangePercent *decimal.Decimal
}

// Entry converts an accepted candidate into a history entry.
func (c Candidate) Entry() Entry {
	return Entry{
		Date:          c.Date.Format(DateLayout),
		Nav:           *c.Nav,
		ChangePercent: c.ChangePercent,
	}
}
