package lstore

import (
	"maps"

	"github.com/ValentinKolb/rubin/lib/store"
)

// Store is the in-memory string store. Keys are unique, there is no ordering guarantee.
//
// Thread-safety: Store is NOT safe for concurrent use, wrap it in store.Shared.
type Store struct {
	strings map[string]string
}

// NewLocalStore creates a new, empty local store.
func NewLocalStore() *Store {
	return &Store{
		strings: make(map[string]string),
	}
}

// FromMap creates a local store holding a copy of values.
func FromMap(values map[string]string) *Store {
	s := NewLocalStore()
	for k, v := range values {
		s.strings[k] = v
	}
	return s
}

// --------------------------------------------------------------------------
// Plain methods (no error returns, absence is signalled by "")
// --------------------------------------------------------------------------

// InsertString inserts or updates key and returns value
func (s *Store) InsertString(key, value string) string {
	s.strings[key] = value
	return value
}

// GetString returns the value for key or "" if the key is absent
func (s *Store) GetString(key string) string {
	return s.strings[key]
}

// RemoveString removes key and returns its prior value or "" if the key was absent
func (s *Store) RemoveString(key string) string {
	value, ok := s.strings[key]
	if !ok {
		return ""
	}
	delete(s.strings, key)
	return value
}

// ClearStrings removes every key
func (s *Store) ClearStrings() {
	clear(s.strings)
}

// Len returns the number of keys in the store
func (s *Store) Len() int {
	return len(s.strings)
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *Store) Insert(key, value string) (string, error) {
	return s.InsertString(key, value), nil
}

func (s *Store) Get(key string) (string, error) {
	return s.GetString(key), nil
}

func (s *Store) Remove(key string) (string, error) {
	return s.RemoveString(key), nil
}

func (s *Store) Clear() error {
	s.ClearStrings()
	return nil
}

func (s *Store) Strings() map[string]string {
	return maps.Clone(s.strings)
}

// compile time check
var _ store.IStore = (*Store)(nil)
