package pricing

import (
	"testing"
	"time"

	"gp-tracker/internal/catalog"
)

func rec(id int, name string, price int) catalog.ItemRecord {
	return catalog.ItemRecord{
		ID:             id,
		Name:           name,
		NormalizedName: catalog.NormalizeName(name),
		CurrentPrice:   price,
	}
}

func TestCacheReplaceAndPrice(t *testing.T) {
	c := NewCache(DefaultTTL)
	now := time.Now()

	c.Replace([]catalog.ItemRecord{rec(385, "Shark", 810), rec(379, "Lobster", 180)}, now)

	if p, ok := c.Price("shark"); !ok || p != 810 {
		t.Fatalf("Price(shark)=%d,%v, want 810,true", p, ok)
	}
	if _, ok := c.Price("whale"); ok {
		t.Fatal("Price(whale) hit, want miss")
	}
	if c.Len() != 2 {
		t.Fatalf("Len=%d, want 2", c.Len())
	}
	if !c.FetchedAt().Equal(now) {
		t.Fatalf("FetchedAt=%v, want %v", c.FetchedAt(), now)
	}
}

func TestCacheReplaceIsWholesale(t *testing.T) {
	c := NewCache(DefaultTTL)
	c.Replace([]catalog.ItemRecord{rec(385, "Shark", 810)}, time.Now())
	c.Replace([]catalog.ItemRecord{rec(379, "Lobster", 180)}, time.Now())

	// The old snapshot's entries must be gone, not merged.
	if _, ok := c.Price("shark"); ok {
		t.Fatal("shark survived a full replace")
	}
	if p, ok := c.Price("lobster"); !ok || p != 180 {
		t.Fatalf("Price(lobster)=%d,%v, want 180,true", p, ok)
	}
}

func TestCacheCollidingKeysLastWriterWins(t *testing.T) {
	c := NewCache(DefaultTTL)
	// Two display names normalizing to the same key.
	c.Replace([]catalog.ItemRecord{rec(1, "Shark", 100), rec(2, "shark ", 200)}, time.Now())

	if p, _ := c.Price("shark"); p != 200 {
		t.Fatalf("Price(shark)=%d, want last writer 200", p)
	}
	if c.Len() != 1 {
		t.Fatalf("Len=%d, want 1", c.Len())
	}
}

func TestCacheStale(t *testing.T) {
	c := NewCache(time.Hour)
	now := time.Now()

	if !c.Stale(now) {
		t.Fatal("empty cache should be stale")
	}

	c.Replace(nil, now)
	if c.Stale(now.Add(30 * time.Minute)) {
		t.Fatal("stale before TTL elapsed")
	}
	if !c.Stale(now.Add(2 * time.Hour)) {
		t.Fatal("not stale after TTL elapsed")
	}
}
