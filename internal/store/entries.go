package store

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"sync"

	"CryptoRadar/internal/model"
)

// ErrInvalidEntry is returned when a submitted entry fails validation.
var ErrInvalidEntry = errors.New("entry name and symbol are required")

// EntryStore persists user-submitted rows in a flat JSON file.
// Entries are append-only; there is no update or delete operation.
// Writers use a read-modify-write of the whole file: concurrent writers from
// separate processes can race and the last writer wins.
type EntryStore struct {
	mu       sync.Mutex
	filePath string
}

// NewEntryStore creates a store backed by the given file path.
func NewEntryStore(filePath string) *EntryStore {
	return &EntryStore{filePath: filePath}
}

// Load reads all entries in submission order. A missing or unparseable file
// is treated as an empty store, never an error.
func (s *EntryStore) Load() []model.UserEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *EntryStore) load() []model.UserEntry {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] read user entries: %v", err)
		}
		return []model.UserEntry{}
	}
	var entries []model.UserEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("[WARN] parse user entries, treating store as empty: %v", err)
		return []model.UserEntry{}
	}
	return entries
}

// Append validates the entry and rewrites the store with it added.
func (s *EntryStore) Append(entry model.UserEntry) error {
	if strings.TrimSpace(entry.Name) == "" || strings.TrimSpace(entry.Symbol) == "" {
		return ErrInvalidEntry
	}
	entry.Symbol = strings.ToUpper(entry.Symbol)

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(s.load(), entry)
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0644)
}
