package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pfrederiksen/nav-tracker/internal/logger"
	"github.com/pfrederiksen/nav-tracker/internal/storage"
	"github.com/pfrederiksen/nav-tracker/internal/tracker"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteRunResult writes a run result in the specified format
func WriteRunResult(w io.Writer, result *tracker.RunResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case FormatText:
		return writeRunText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeRunText outputs a run result as human-readable text
func writeRunText(w io.Writer, result *tracker.RunResult, verbose bool) error {
	for _, fr := range result.Results {
		switch fr.Status {
		case tracker.StatusUpdated:
			fmt.Fprintf(w, "UPDATED   %-8s %-35s %s  %s%s\n",
				fr.Code, fr.Name, fr.Entry.Nav.StringFixed(4), changeText(fr), fr.Entry.Date)
		case tracker.StatusUnchanged:
			fmt.Fprintf(w, "unchanged %-8s %s\n", fr.Code, fr.Name)
		case tracker.StatusFailed:
			fmt.Fprintf(w, "FAILED    %-8s %-35s %s\n", fr.Code, fr.Name, fr.Reason)
		}
	}

	fmt.Fprintf(w, "\nChecked %d funds: %d updated, %d failed (at %s)\n",
		len(result.Results), result.Updated, result.Failed,
		result.CheckedAt.Format("2006-01-02 15:04:05 MST"))

	if verbose {
		counters := logger.CounterSnapshot()
		names := make([]string, 0, len(counters))
		for name := range counters {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %d\n", name, counters[name])
		}
	}

	return nil
}

func changeText(fr tracker.FundResult) string {
	if fr.Entry == nil || fr.Entry.ChangePercent == nil {
		return ""
	}
	sign := ""
	if fr.Entry.ChangePercent.IsPositive() {
		sign = "+"
	}
	return fmt.Sprintf("%s%s%%  ", sign, fr.Entry.ChangePercent)
}

// WriteStore writes the persisted store in the specified format, one line per
// fund with its most recent observation.
func WriteStore(w io.Writer, store *storage.Store, format OutputFormat) error {
	if format == FormatJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(store)
	}

	codes := make([]string, 0, len(store.Funds))
	for code := range store.Funds {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	if len(codes) == 0 {
		fmt.Fprintln(w, "No fund history recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "%-8s %-35s %10s %8s  %s\n", "Fund", "Name", "NAV", "Change", "Date")
	for _, code := range codes {
		f := store.Funds[code]
		if len(f.History) == 0 {
			fmt.Fprintf(w, "%-8s %-35s %10s\n", code, f.Name, "N/A")
			continue
		}
		last := f.History[len(f.History)-1]
		change := "N/A"
		if last.ChangePercent != nil {
			sign := ""
			if last.ChangePercent.IsPositive() {
				sign = "+"
			}
			change = fmt.Sprintf("%s%s%%", sign, last.ChangePercent)
		}
		fmt.Fprintf(w, "%-8s %-35s %10s %8s  %s (%d entries)\n",
			code, f.Name, "$"+last.Nav.StringFixed(4), change, last.Date, len(f.History))
	}

	if store.LastChecked != "" {
		fmt.Fprintf(w, "\nLast checked: %s", store.LastChecked)
		if store.RBCDataDate != "" {
			fmt.Fprintf(w, "  (data as of %s)", store.RBCDataDate)
		}
		fmt.Fprintln(w)
	}
	return nil
}
