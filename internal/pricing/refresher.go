package pricing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"gp-tracker/internal/catalog"
	"gp-tracker/internal/logger"
	"gp-tracker/internal/wiki"
)

// Metadata describes the state of the last successful refresh. It is the
// shape returned by the refresh endpoint and persisted next to the snapshot.
type Metadata struct {
	LastUpdated     time.Time `json:"lastUpdated"`
	TotalItems      int       `json:"totalItems"`
	ItemsWithPrices int       `json:"itemsWithPrices"`
	NextUpdate      time.Time `json:"nextUpdate"`
}

// Fetcher is the slice of the feed client the refresher needs.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]wiki.MappingEntry, map[int]wiki.LatestPrice, error)
}

// SnapshotStore persists a catalog snapshot together with its metadata.
type SnapshotStore interface {
	Save(records []catalog.ItemRecord, meta Metadata) error
}

// Refresher owns the refresh cycle: fetch both feed endpoints, normalize,
// swap the cache, persist the snapshot. Concurrent callers collapse onto a
// single in-flight refresh, which protects the rate-limited upstream feed.
// On failure the previous cache and snapshot stay in use (fail-open).
type Refresher struct {
	fetcher Fetcher
	cache   *Cache
	store   SnapshotStore // optional
	ttl     time.Duration
	now     func() time.Time // injectable for tests

	group singleflight.Group

	mu   sync.RWMutex
	meta *Metadata
}

// NewRefresher wires a refresher over the fetcher, cache, and optional
// snapshot store. ttl <= 0 uses DefaultTTL.
func NewRefresher(fetcher Fetcher, cache *Cache, store SnapshotStore, ttl time.Duration) *Refresher {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Refresher{
		fetcher: fetcher,
		cache:   cache,
		store:   store,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Meta returns the metadata of the last successful refresh, or nil if no
// refresh has completed yet.
func (r *Refresher) Meta() *Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.meta
}

// SetMeta seeds metadata restored from a persisted snapshot at startup.
func (r *Refresher) SetMeta(meta *Metadata) {
	r.mu.Lock()
	r.meta = meta
	r.mu.Unlock()
}

// NeedsRefresh reports whether the catalog should be re-fetched: no refresh
// has happened yet, or the persisted NextUpdate time has passed.
func (r *Refresher) NeedsRefresh(now time.Time) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.meta == nil {
		return true
	}
	return !now.Before(r.meta.NextUpdate)
}

// Refresh runs one refresh cycle and returns its metadata. Concurrent calls
// share a single upstream fetch: the second caller awaits the first's
// result. A failed refresh leaves the existing cache fully intact and
// queryable; the error is surfaced so the caller can report "could not
// update, will retry later".
func (r *Refresher) Refresh(ctx context.Context) (*Metadata, error) {
	v, err, shared := r.group.Do("refresh", func() (interface{}, error) {
		return r.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	meta := v.(*Metadata)
	if shared {
		logger.Info("Price", "Joined in-flight refresh")
	}
	return meta, nil
}

func (r *Refresher) refresh(ctx context.Context) (*Metadata, error) {
	mapping, latest, err := r.fetcher.FetchAll(ctx)
	if err != nil {
		logger.Warn("Price", fmt.Sprintf("Refresh failed, keeping previous prices: %v", err))
		return nil, fmt.Errorf("refresh catalog: %w", err)
	}

	fetchedAt := r.now()
	records := catalog.Normalize(mapping, latest, fetchedAt)

	withPrices := 0
	for _, rec := range records {
		if rec.CurrentPrice > 0 {
			withPrices++
		}
	}

	meta := &Metadata{
		LastUpdated:     fetchedAt,
		TotalItems:      len(records),
		ItemsWithPrices: withPrices,
		NextUpdate:      fetchedAt.Add(r.ttl),
	}

	// Swap the cache first so readers see fresh prices even if persisting
	// fails; a persist failure is reported but does not undo the refresh.
	r.cache.Replace(records, fetchedAt)

	if r.store != nil {
		if err := r.store.Save(records, *meta); err != nil {
			logger.Warn("Price", fmt.Sprintf("Snapshot persist failed: %v", err))
		}
	}

	r.mu.Lock()
	r.meta = meta
	r.mu.Unlock()

	logger.Success("Price", fmt.Sprintf("Catalog refreshed: %d items, %d with prices", meta.TotalItems, meta.ItemsWithPrices))
	return meta, nil
}
