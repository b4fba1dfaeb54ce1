package tracker

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/nav-tracker/internal/config"
	"github.com/pfrederiksen/nav-tracker/internal/fund"
	"github.com/pfrederiksen/nav-tracker/internal/logger"
	"github.com/pfrederiksen/nav-tracker/internal/scraper"
	"github.com/pfrederiksen/nav-tracker/internal/storage"
)

// Status describes the outcome for a single fund within a run.
type Status string

const (
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
	StatusFailed    Status = "failed"
)

// FundResult is the per-fund outcome of one run.
type FundResult struct {
	Code   string      `json:"code"`
	Name   string      `json:"name"`
	Status Status      `json:"status"`
	Reason string      `json:"reason,omitempty"`
	Entry  *fund.Entry `json:"entry,omitempty"`
}

// RunResult summarizes one run across all tracked funds.
type RunResult struct {
	CheckedAt time.Time    `json:"checked_at"`
	Results   []FundResult `json:"results"`
	Updated   int          `json:"updated"`
	Failed    int          `json:"failed"`
}

// Tracker runs the fetch→extract→validate→merge pipeline over the configured
// funds.
type Tracker struct {
	fetcher scraper.Fetcher
	store   *storage.Storage
	funds   []config.Fund
	loc     *time.Location
	dryRun  bool
	now     func() time.Time
}

// New creates a Tracker. loc is the source site's timezone, used to decide
// what "today" means when validating candidate dates.
func New(fetcher scraper.Fetcher, store *storage.Storage, funds []config.Fund, loc *time.Location) *Tracker {
	return &Tracker{
		fetcher: fetcher,
		store:   store,
		funds:   funds,
		loc:     loc,
		now:     time.Now,
	}
}

// SetDryRun disables the final persist; the run still reports what it would
// have changed.
func (t *Tracker) SetDryRun(dryRun bool) {
	t.dryRun = dryRun
}

// Run executes one complete check across all tracked funds. Per-fund failures
// never abort the run; a store read or write failure does, since reporting
// success while dropping merged history would be worse than failing loudly.
func (t *Tracker) Run() (*RunResult, error) {
	store, err := t.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading store: %w", err)
	}

	nowUTC := t.now().UTC()
	nowLocal := t.now().In(t.loc)

	result := &RunResult{CheckedAt: nowUTC}
	dataDate := ""

	// Every configured fund gets a store entry up front, so a fund whose
	// first-ever check fails still appears downstream with an empty history.
	for _, f := range t.funds {
		store.EnsureFund(f.Code, f.Name)
	}

	for _, f := range t.funds {
		fr := t.processFund(store, f, nowLocal)
		result.Results = append(result.Results, fr)
		logger.IncrCounter("funds.checked")

		switch fr.Status {
		case StatusUpdated:
			result.Updated++
			logger.IncrCounter("funds.updated")
			if dataDate == "" {
				dataDate = fr.Entry.Date
			}
			logger.Info("history appended", logger.Fields{
				"fund": fr.Code,
				"date": fr.Entry.Date,
				"nav":  fr.Entry.Nav.StringFixed(4),
			})
		case StatusUnchanged:
			logger.Debug("nav unchanged", logger.Fields{"fund": fr.Code})
		case StatusFailed:
			result.Failed++
			logger.IncrCounter("funds.failed")
			logger.Warn("fund skipped", logger.Fields{
				"fund":   fr.Code,
				"reason": fr.Reason,
			})
		}
	}

	// last_checked always moves; last_updated and rbc_data_date only when a
	// run actually appended history.
	store.LastChecked = nowUTC.Format(time.RFC3339)
	if result.Updated > 0 {
		store.LastUpdated = nowUTC.Format(time.RFC3339)
		store.RBCDataDate = dataDate
	}

	if !t.dryRun {
		if err := t.store.Save(store); err != nil {
			return nil, fmt.Errorf("saving store: %w", err)
		}
	}

	return result, nil
}

// processFund runs the pipeline for one fund. All failures are contained
// here: the returned result carries the reason and the caller moves on.
func (t *Tracker) processFund(store *storage.Store, f config.Fund, now time.Time) FundResult {
	fr := FundResult{Code: f.Code, Name: f.Name}

	text, err := t.fetcher.FetchPageText(f.Code)
	if err != nil {
		fr.Status = StatusFailed
		fr.Reason = fmt.Sprintf("fetch: %v", err)
		return fr
	}

	cand := scraper.Extract(text)
	if err := fund.Validate(cand, now); err != nil {
		fr.Status = StatusFailed
		fr.Reason = fmt.Sprintf("validate: %v", err)
		return fr
	}

	fd := store.EnsureFund(f.Code, f.Name)
	prev := fd.History

	merged, appended := fund.Merge(fd.History, cand)
	if err := fund.CheckHistory(merged); err != nil {
		// Invariant violation means a bug; leave the history untouched.
		fr.Status = StatusFailed
		fr.Reason = fmt.Sprintf("merge invariant: %v", err)
		fd.History = prev
		return fr
	}
	fd.History = merged

	if !appended {
		fr.Status = StatusUnchanged
		return fr
	}

	entry := cand.Entry()
	fr.Status = StatusUpdated
	fr.Entry = &entry
	return fr
}
