// Package persistence is the snapshot adapter for the domain store: it
// serializes the entire aggregate as one self-contained document and can
// replace it wholesale with a previously captured snapshot. It only ever
// sees the store, never individual service operations.
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"finca/internal/community/store"
)

// Save writes the store to path atomically: the snapshot lands in a temp
// file first and replaces the previous one with a rename, so a crash
// mid-write never corrupts the last good snapshot.
func Save(path string, st *store.Store) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load reads a snapshot from path. A missing file yields a fresh empty
// store; that is the first-run case, not an error.
func Load(path string) (*store.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store.New(), nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	st := &store.Store{}
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	st.Normalize()
	return st, nil
}
