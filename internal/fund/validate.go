package fund

import (
	"errors"
	"fmt"
	"time"
)

// RecencyWindowDays is how far back a candidate's date may be from the run
// date and still be accepted. The window tolerates weekend and holiday gaps
// while rejecting dates accidentally pulled from months-old disclaimers.
const RecencyWindowDays = 7

// Validation rejection reasons. Callers match them with errors.Is.
var (
	ErrNoDate    = errors.New("no date extracted")
	ErrStaleDate = errors.New("date outside recency window")
	ErrNoNav     = errors.New("no nav extracted")
	ErrBadNav    = errors.New("nav is not a positive value")
)

// Validate accepts or rejects a candidate against the sanity rules:
// the date must be present and within the trailing RecencyWindowDays calendar
// days of now (boundary inclusive, future dates rejected), and the NAV must be
// present and positive. A missing change percent is fine; it is optional data.
//
// now should be the run time observed in the source's timezone so that
// "calendar day" means the same thing the fund page means by it.
func Validate(c Candidate, now time.Time) error {
	if c.Date.IsZero() {
		return ErrNoDate
	}

	runDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	candDay := time.Date(c.Date.Year(), c.Date.Month(), c.Date.Day(), 0, 0, 0, 0, time.UTC)
	oldest := runDay.AddDate(0, 0, -RecencyWindowDays)
	if candDay.Before(oldest) || candDay.After(runDay) {
		return fmt.Errorf("%w: %s not in [%s, %s]", ErrStaleDate,
			candDay.Format(DateLayout), oldest.Format(DateLayout), runDay.Format(DateLayout))
	}

	if c.Nav == nil {
		return ErrNoNav
	}
	if !c.Nav.IsPositive() {
		return fmt.Errorf("%w: %s", ErrBadNav, c.Nav)
	}

	return nil
}
