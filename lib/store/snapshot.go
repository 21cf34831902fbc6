package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	// SnapshotFileName is the name of the snapshot file inside a storage directory
	SnapshotFileName = "rubinstore.json"

	snapshotIndent = "  "
	snapshotPerm   = 0o644
)

// Snapshot is the on-disk representation of a store
type Snapshot struct {
	Strings map[string]string `json:"strings"`
}

// WriteSnapshot serializes values as an indented JSON snapshot and overwrites path.
//
// The write is not atomic: a crash while writing can leave a truncated file behind,
// which ReadSnapshot then reports as RetCCorruptSnapshot.
func WriteSnapshot(fs afero.Fs, path string, values map[string]string) error {
	if values == nil {
		values = map[string]string{}
	}

	raw, err := json.MarshalIndent(Snapshot{Strings: values}, "", snapshotIndent)
	if err != nil {
		return NewError(RetCInternalError, "failed to encode snapshot", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return NewError(RetCIOError, "failed to create snapshot directory "+dir, err)
		}
	}

	if err := afero.WriteFile(fs, path, raw, snapshotPerm); err != nil {
		return NewError(RetCIOError, "failed to write snapshot "+path, err)
	}
	return nil
}

// ReadSnapshot reads the snapshot at path.
// A missing file or a file without content results in an empty map and no error.
// Content that is not a valid snapshot results in an error with code RetCCorruptSnapshot.
func ReadSnapshot(fs afero.Fs, path string) (map[string]string, error) {
	raw, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, NewError(RetCIOError, "failed to read snapshot "+path, err)
	}

	if strings.TrimSpace(string(raw)) == "" {
		return map[string]string{}, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, NewError(RetCCorruptSnapshot, "failed to decode snapshot "+path, err)
	}

	if snap.Strings == nil {
		snap.Strings = map[string]string{}
	}
	return snap.Strings, nil
}
