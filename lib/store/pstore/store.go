package pstore

import (
	"path/filepath"

	"github.com/ValentinKolb/rubin/lib/store"
	"github.com/ValentinKolb/rubin/lib/store/lstore"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/afero"
)

var Logger = logger.GetLogger("store")

// Store wraps a local store with a storage directory holding a JSON snapshot.
//
// Mutations are applied to the local store first. If write-on-update is set the
// snapshot is written before the mutating call returns, otherwise the caller has
// to flush explicitly with Write.
type Store struct {
	fs            afero.Fs
	dir           string
	local         *lstore.Store
	writeOnUpdate bool
}

// New creates the storage directory if it is absent and returns an empty store
// with write-on-update disabled. A nil fs uses the OS filesystem.
func New(fs afero.Fs, dir string) (*Store, error) {
	return FromStore(fs, dir, lstore.NewLocalStore())
}

// FromExisting is New followed by Load. A corrupt snapshot is returned as an error.
func FromExisting(fs afero.Fs, dir string) (*Store, error) {
	s, err := New(fs, dir)
	if err != nil {
		return nil, err
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// FromStore is like New but starts with the content of seed instead of an empty store.
// The persistent store takes ownership of seed.
func FromStore(fs afero.Fs, dir string, seed *lstore.Store) (*Store, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if seed == nil {
		seed = lstore.NewLocalStore()
	}

	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, store.NewError(store.RetCIOError, "unable to create directory "+dir, err)
	}

	return &Store{
		fs:    fs,
		dir:   dir,
		local: seed,
	}, nil
}

// --------------------------------------------------------------------------
// Persistence
// --------------------------------------------------------------------------

// Path returns the location of the snapshot file
func (s *Store) Path() string {
	return filepath.Join(s.dir, store.SnapshotFileName)
}

// Load replaces the in-memory content with the snapshot on disk.
// A missing or empty snapshot leaves the store empty.
func (s *Store) Load() error {
	values, err := store.ReadSnapshot(s.fs, s.Path())
	if err != nil {
		return err
	}
	s.local = lstore.FromMap(values)
	Logger.Infof("loaded %d keys from %s", len(values), s.Path())
	return nil
}

// Write serializes the whole store and overwrites the snapshot file
func (s *Store) Write() error {
	if err := store.WriteSnapshot(s.fs, s.Path(), s.local.Strings()); err != nil {
		return err
	}
	Logger.Debugf("wrote %d keys to %s", s.local.Len(), s.Path())
	return nil
}

// SetWriteOnUpdate sets whether every mutation is flushed to disk immediately
func (s *Store) SetWriteOnUpdate(set bool) {
	s.writeOnUpdate = set
}

// WriteOnUpdate returns whether every mutation is flushed to disk immediately
func (s *Store) WriteOnUpdate() bool {
	return s.writeOnUpdate
}

// Len returns the number of keys in the store
func (s *Store) Len() int {
	return s.local.Len()
}

// flushIfNeeded writes the snapshot if write-on-update is set
func (s *Store) flushIfNeeded() error {
	if !s.writeOnUpdate {
		return nil
	}
	return s.Write()
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *Store) Insert(key, value string) (string, error) {
	result := s.local.InsertString(key, value)
	if err := s.flushIfNeeded(); err != nil {
		return "", err
	}
	return result, nil
}

func (s *Store) Get(key string) (string, error) {
	return s.local.GetString(key), nil
}

func (s *Store) Remove(key string) (string, error) {
	result := s.local.RemoveString(key)
	if err := s.flushIfNeeded(); err != nil {
		return "", err
	}
	return result, nil
}

func (s *Store) Clear() error {
	s.local.ClearStrings()
	return s.flushIfNeeded()
}

func (s *Store) Strings() map[string]string {
	return s.local.Strings()
}

// compile time checks
var (
	_ store.IStore   = (*Store)(nil)
	_ store.IFlusher = (*Store)(nil)
)
