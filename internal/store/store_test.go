package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gp-tracker/internal/catalog"
	"gp-tracker/internal/pricing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	records := []catalog.ItemRecord{
		{ID: 385, Name: "Shark", NormalizedName: "shark", CurrentPrice: 810, LastUpdated: now},
	}
	meta := pricing.Metadata{
		LastUpdated:     now,
		TotalItems:      1,
		ItemsWithPrices: 1,
		NextUpdate:      now.Add(24 * time.Hour),
	}

	if err := s.Save(records, meta); err != nil {
		t.Fatalf("Save: %v", err)
	}

	gotRecords, gotMeta, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(gotRecords) != 1 || gotRecords[0].NormalizedName != "shark" || gotRecords[0].CurrentPrice != 810 {
		t.Fatalf("records=%+v", gotRecords)
	}
	if gotMeta == nil || !gotMeta.LastUpdated.Equal(now) || gotMeta.TotalItems != 1 {
		t.Fatalf("meta=%+v", gotMeta)
	}
}

func TestLoadEmptyDir(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	records, meta, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if records != nil || meta != nil {
		t.Fatalf("records=%v meta=%v, want nil,nil before first save", records, meta)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, _ := New(dir)
	if err := s.Save(nil, pricing.Metadata{}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if e.Name() != "items.json" && e.Name() != "metadata.json" {
			t.Fatalf("unexpected file %s left behind", e.Name())
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "items.json")); err != nil {
		t.Fatalf("snapshot missing: %v", err)
	}
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	s, _ := New(t.TempDir())
	now := time.Now().UTC()

	s.Save([]catalog.ItemRecord{{ID: 1, Name: "Old"}}, pricing.Metadata{TotalItems: 1, LastUpdated: now})
	s.Save([]catalog.ItemRecord{{ID: 2, Name: "New"}, {ID: 3, Name: "Newer"}}, pricing.Metadata{TotalItems: 2, LastUpdated: now})

	records, meta, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 || meta.TotalItems != 2 {
		t.Fatalf("records=%d meta.TotalItems=%d, want 2 and 2", len(records), meta.TotalItems)
	}
}
