// Package store persists the catalog snapshot and its refresh metadata as a
// pair of JSON files in the data directory.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gp-tracker/internal/catalog"
	"gp-tracker/internal/pricing"
)

const (
	snapshotFile = "items.json"
	metadataFile = "metadata.json"
)

// Store writes and reads the snapshot pair. Each file is written to a temp
// file and renamed into place, and the metadata is written strictly after
// the snapshot, so metadata never points at a missing or older catalog.
type Store struct {
	dir string
}

// New creates a store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save persists the snapshot and then its metadata.
func (s *Store) Save(records []catalog.ItemRecord, meta pricing.Metadata) error {
	if err := writeJSONAtomic(filepath.Join(s.dir, snapshotFile), records); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := writeJSONAtomic(filepath.Join(s.dir, metadataFile), meta); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// Load reads the persisted snapshot pair. Returns (nil, nil, nil) when no
// snapshot has been saved yet. A metadata file without a readable snapshot
// is treated as no snapshot; the refresh that follows rewrites both.
func (s *Store) Load() ([]catalog.ItemRecord, *pricing.Metadata, error) {
	var records []catalog.ItemRecord
	if err := readJSON(filepath.Join(s.dir, snapshotFile), &records); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read snapshot: %w", err)
	}

	var meta pricing.Metadata
	if err := readJSON(filepath.Join(s.dir, metadataFile), &meta); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read metadata: %w", err)
	}
	return records, &meta, nil
}

func writeJSONAtomic(path string, v interface{}) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func readJSON(path string, dst interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(dst)
}
