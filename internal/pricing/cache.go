// Package pricing is the price resolution and valuation engine: it holds the
// refreshable price cache, resolves free-text item names to prices with a
// layered fallback policy, and recomputes bank/goal valuations.
package pricing

import (
	"sync"
	"time"

	"gp-tracker/internal/catalog"
)

// DefaultTTL is how long a catalog snapshot is considered fresh.
const DefaultTTL = 24 * time.Hour

// Cache maps normalized item names to resolved prices for one catalog
// snapshot. It is replaced wholesale on refresh — never mutated entry by
// entry — so all entries always share the same fetch time and prices from
// different snapshots are never mixed.
type Cache struct {
	mu        sync.RWMutex
	prices    map[string]int
	keys      []string // insertion order = catalog name-sorted order
	fetchedAt time.Time
	ttl       time.Duration
}

// NewCache creates an empty cache with the given freshness window.
// ttl <= 0 uses DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		prices: make(map[string]int),
		ttl:    ttl,
	}
}

// Replace swaps the entire cache contents for a new snapshot. Records are
// inserted in slice order; when two items normalize to the same key the last
// one wins. Readers never observe a half-replaced cache.
func (c *Cache) Replace(records []catalog.ItemRecord, fetchedAt time.Time) {
	prices := make(map[string]int, len(records))
	keys := make([]string, 0, len(records))
	for _, r := range records {
		if _, seen := prices[r.NormalizedName]; !seen {
			keys = append(keys, r.NormalizedName)
		}
		prices[r.NormalizedName] = r.CurrentPrice
	}

	c.mu.Lock()
	c.prices = prices
	c.keys = keys
	c.fetchedAt = fetchedAt
	c.mu.Unlock()
}

// Price returns the cached price for a normalized name.
func (c *Cache) Price(normalizedName string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.prices[normalizedName]
	return p, ok
}

// Stale reports whether the backing snapshot is older than the cache TTL.
// An empty cache is always stale.
func (c *Cache) Stale(now time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.fetchedAt.IsZero() {
		return true
	}
	return now.Sub(c.fetchedAt) > c.ttl
}

// FetchedAt returns when the current snapshot was fetched (zero if never).
func (c *Cache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.prices)
}

// snapshot returns the current map and ordered keys for a resolver scan.
// The returned values are the live backing structures; callers must treat
// them as read-only. Replace installs fresh structures rather than mutating,
// so a scan over an old snapshot stays internally consistent.
func (c *Cache) snapshot() (map[string]int, []string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.prices, c.keys
}
