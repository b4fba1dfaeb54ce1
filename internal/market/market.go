package market

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/pfrederiksen/nav-tracker/internal/logger"
	"github.com/pfrederiksen/nav-tracker/internal/storage"
)

// maxEntries caps each index history at roughly one trading year.
const maxEntries = 260

// Index pairs a Yahoo symbol with a display name.
type Index struct {
	Symbol string
	Name   string
}

// DefaultIndices is the tracked index set.
var DefaultIndices = []Index{
	{"^GSPC", "S&P 500"},
	{"^GSPTSE", "TSX Composite"},
	{"EFA", "MSCI EAFE ETF (EFA)"},
}

// Entry is one persisted daily close.
type Entry struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// History is one index's name and ordered close history.
type History struct {
	Name    string  `json:"name"`
	History []Entry `json:"history"`
}

// Store is the persisted market_data.json document.
type Store struct {
	Indices     map[string]*History `json:"indices"`
	LastUpdated string              `json:"last_updated,omitempty"`
}

// Fetcher returns daily closes for a symbol over a range such as "5d" or
// "1y". Satisfied by Client; tests substitute a fake.
type Fetcher interface {
	FetchCloses(symbol, rng string) ([]Entry, error)
}

// Tracker updates the market index store.
type Tracker struct {
	fetcher Fetcher
	path    string
	indices []Index
	now     func() time.Time
}

// NewTracker creates a Tracker persisting to path.
func NewTracker(fetcher Fetcher, path string, indices []Index) *Tracker {
	return &Tracker{
		fetcher: fetcher,
		path:    path,
		indices: indices,
		now:     time.Now,
	}
}

// Load reads the store, seeding an empty history per tracked index when the
// file does not exist yet.
func (t *Tracker) Load() (*Store, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			store := &Store{Indices: make(map[string]*History)}
			for _, idx := range t.indices {
				store.Indices[idx.Symbol] = &History{Name: idx.Name, History: []Entry{}}
			}
			return store, nil
		}
		return nil, fmt.Errorf("reading market store: %w", err)
	}

	var store Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("parsing market store: %w", err)
	}
	if store.Indices == nil {
		store.Indices = make(map[string]*History)
	}
	return &store, nil
}

// Update fetches closes for every tracked index and merges them into the
// store. An empty history anywhere triggers a one-year backfill; otherwise
// only the trailing five days are fetched. A failure for one index does not
// block the others.
func (t *Tracker) Update() (*Store, error) {
	store, err := t.Load()
	if err != nil {
		return nil, err
	}

	rng := "5d"
	for _, idx := range t.indices {
		h, ok := store.Indices[idx.Symbol]
		if !ok || len(h.History) == 0 {
			rng = "1y"
			break
		}
	}
	logger.Info("updating market indices", logger.Fields{"range": rng})

	for _, idx := range t.indices {
		entries, err := t.fetcher.FetchCloses(idx.Symbol, rng)
		if err != nil {
			logger.Warn("index skipped", logger.Fields{
				"symbol": idx.Symbol,
				"reason": err.Error(),
			})
			continue
		}

		h, ok := store.Indices[idx.Symbol]
		if !ok {
			h = &History{Name: idx.Name, History: []Entry{}}
			store.Indices[idx.Symbol] = h
		}

		added := mergeEntries(h, entries)
		logger.Info("index updated", logger.Fields{
			"symbol": idx.Symbol,
			"added":  added,
			"total":  len(h.History),
		})
	}

	store.LastUpdated = t.now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding market store: %w", err)
	}
	if err := storage.WriteFileAtomic(t.path, data); err != nil {
		return nil, fmt.Errorf("writing market store: %w", err)
	}

	return store, nil
}

// mergeEntries adds entries with unseen dates, keeps the history sorted, and
// trims it to maxEntries. Returns how many entries were added.
func mergeEntries(h *History, entries []Entry) int {
	seen := make(map[string]bool, len(h.History))
	for _, e := range h.History {
		seen[e.Date] = true
	}

	added := 0
	for _, e := range entries {
		if seen[e.Date] {
			continue
		}
		seen[e.Date] = true
		h.History = append(h.History, e)
		added++
	}

	sort.Slice(h.History, func(i, j int) bool {
		return h.History[i].Date < h.History[j].Date
	})

	if len(h.History) > maxEntries {
		h.History = h.History[len(h.History)-maxEntries:]
	}
	return added
}
