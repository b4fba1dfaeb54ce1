package market

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fakeClient records the requested range and serves canned closes.
type fakeClient struct {
	entries   map[string][]Entry
	errs      map[string]error
	gotRanges []string
}

func (f *fakeClient) FetchCloses(symbol, rng string) ([]Entry, error) {
	f.gotRanges = append(f.gotRanges, rng)
	if err, ok := f.errs[symbol]; ok {
		return nil, err
	}
	return f.entries[symbol], nil
}

var testIndices = []Index{
	{"^GSPC", "S&P 500"},
	{"^GSPTSE", "TSX Composite"},
}

func newTestTracker(t *testing.T, client *fakeClient) *Tracker {
	t.Helper()
	tr := NewTracker(client, filepath.Join(t.TempDir(), "market_data.json"), testIndices)
	tr.now = func() time.Time { return time.Date(2026, 2, 4, 21, 0, 0, 0, time.UTC) }
	return tr
}

func TestUpdateBackfillsEmptyStore(t *testing.T) {
	client := &fakeClient{entries: map[string][]Entry{
		"^GSPC":   {{Date: "2026-02-02", Close: 6100.25}, {Date: "2026-02-03", Close: 6120.5}},
		"^GSPTSE": {{Date: "2026-02-02", Close: 25500.75}},
	}}
	tr := newTestTracker(t, client)

	store, err := tr.Update()
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	for _, rng := range client.gotRanges {
		if rng != "1y" {
			t.Errorf("range = %q, expected 1y backfill for empty store", rng)
		}
	}
	if n := len(store.Indices["^GSPC"].History); n != 2 {
		t.Errorf("^GSPC history length = %d, expected 2", n)
	}
	if store.LastUpdated != "2026-02-04T21:00:00Z" {
		t.Errorf("last_updated = %q", store.LastUpdated)
	}
}

func TestUpdateIncrementalMergesByDate(t *testing.T) {
	client := &fakeClient{entries: map[string][]Entry{
		"^GSPC":   {{Date: "2026-02-02", Close: 6100.25}, {Date: "2026-02-03", Close: 6120.5}},
		"^GSPTSE": {{Date: "2026-02-02", Close: 25500.75}, {Date: "2026-02-03", Close: 25510.1}},
	}}
	tr := newTestTracker(t, client)

	if _, err := tr.Update(); err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	// Second update overlaps on 2026-02-03 and adds 2026-02-04.
	client.entries["^GSPC"] = []Entry{
		{Date: "2026-02-03", Close: 6120.5},
		{Date: "2026-02-04", Close: 6111.0},
	}
	client.gotRanges = nil

	store, err := tr.Update()
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}

	for _, rng := range client.gotRanges {
		if rng != "5d" {
			t.Errorf("range = %q, expected 5d once histories exist", rng)
		}
	}

	h := store.Indices["^GSPC"].History
	if len(h) != 3 {
		t.Fatalf("history length = %d, expected 3 (no duplicate for overlap)", len(h))
	}
	want := []string{"2026-02-02", "2026-02-03", "2026-02-04"}
	for i, date := range want {
		if h[i].Date != date {
			t.Errorf("entry %d date = %q, expected %q", i, h[i].Date, date)
		}
	}
}

func TestUpdateOneIndexFailureDoesNotBlockOthers(t *testing.T) {
	client := &fakeClient{
		entries: map[string][]Entry{
			"^GSPTSE": {{Date: "2026-02-03", Close: 25510.1}},
		},
		errs: map[string]error{"^GSPC": fmt.Errorf("yahoo error: Not Found")},
	}
	tr := newTestTracker(t, client)

	store, err := tr.Update()
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if n := len(store.Indices["^GSPC"].History); n != 0 {
		t.Errorf("^GSPC history length = %d, expected 0", n)
	}
	if n := len(store.Indices["^GSPTSE"].History); n != 1 {
		t.Errorf("^GSPTSE history length = %d, expected 1", n)
	}
}

func TestMergeEntriesCap(t *testing.T) {
	h := &History{Name: "S&P 500", History: []Entry{}}

	var entries []Entry
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < maxEntries+40; i++ {
		entries = append(entries, Entry{
			Date:  start.AddDate(0, 0, i).Format("2006-01-02"),
			Close: 6000 + float64(i),
		})
	}

	mergeEntries(h, entries)
	if len(h.History) != maxEntries {
		t.Fatalf("history length = %d, expected cap %d", len(h.History), maxEntries)
	}
	// Oldest entries are the ones trimmed.
	if h.History[0].Date != entries[40].Date {
		t.Errorf("oldest kept = %s, expected %s", h.History[0].Date, entries[40].Date)
	}
}

func TestParseCloses(t *testing.T) {
	payload := `{
	  "chart": {
	    "result": [{
	      "timestamp": [1769990400, 1770076800, 1770163200],
	      "indicators": {"quote": [{"close": [6100.254, null, 6120.499]}]}
	    }],
	    "error": null
	  }
	}`

	var resp chartResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	entries, err := parseCloses(resp)
	if err != nil {
		t.Fatalf("parseCloses failed: %v", err)
	}
	// The null close is skipped.
	if len(entries) != 2 {
		t.Fatalf("entries = %d, expected 2", len(entries))
	}
	if entries[0].Close != 6100.25 {
		t.Errorf("close = %v, expected rounding to 2 places", entries[0].Close)
	}
}

func TestParseClosesMismatchedLengths(t *testing.T) {
	payload := `{
	  "chart": {
	    "result": [{
	      "timestamp": [1769990400, 1770076800],
	      "indicators": {"quote": [{"close": [6100.25]}]}
	    }]
	  }
	}`

	var resp chartResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := parseCloses(resp); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestLoadMissingFileSeedsIndices(t *testing.T) {
	tr := newTestTracker(t, &fakeClient{})

	store, err := tr.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for _, idx := range testIndices {
		h, ok := store.Indices[idx.Symbol]
		if !ok {
			t.Errorf("index %s not seeded", idx.Symbol)
			continue
		}
		if h.Name != idx.Name || len(h.History) != 0 {
			t.Errorf("seeded index %s = %+v", idx.Symbol, h)
		}
	}
	if _, err := os.Stat(tr.path); !os.IsNotExist(err) {
		t.Error("Load must not create the file")
	}
}
