package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/nav-tracker/internal/fund"
)

// Store is the persisted document. Field names and types are a stable
// contract with the downstream table/chart consumer. Timestamps are RFC3339
// UTC with an explicit Z suffix.
type Store struct {
	Funds       map[string]*fund.Fund `json:"funds"`
	LastChecked string                `json:"last_checked,omitempty"`
	LastUpdated string                `json:"last_updated,omitempty"`
	RBCDataDate string                `json:"rbc_data_date,omitempty"`
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{Funds: make(map[string]*fund.Fund)}
}

// EnsureFund returns the named fund, creating an empty history for it first
// if the store has never seen it.
func (s *Store) EnsureFund(code, name string) *fund.Fund {
	if f, ok := s.Funds[code]; ok {
		if f.Name == "" {
			f.Name = name
		}
		return f
	}
	f := &fund.Fund{Name: name, History: []fund.Entry{}}
	s.Funds[code] = f
	return f
}

// Storage handles persistence of the fund NAV store.
type Storage struct {
	path string
}

// New creates a Storage instance for the given file path, creating the parent
// directory if needed.
func New(path string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	return &Storage{path: path}, nil
}

// Path returns the store file location.
func (s *Storage) Path() string {
	return s.path
}

// Load reads the store from disk. A missing file is not an error: it returns
// an empty store so the first run starts from scratch.
func (s *Storage) Load() (*Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewStore(), nil
		}
		return nil, fmt.Errorf("reading store: %w", err)
	}

	var store Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("parsing store: %w", err)
	}

	if store.Funds == nil {
		store.Funds = make(map[string]*fund.Fund)
	}
	return &store, nil
}

// Save writes the store to disk atomically.
func (s *Storage) Save(store *Store) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}

	if err := WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}
	return nil
}

// WriteFileAtomic writes data to path via a temp file in the same directory
// followed by a rename, so readers either see the old content or the new,
// never a partial write.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
