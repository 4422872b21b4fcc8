package pricing

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gp-tracker/internal/catalog"
	"gp-tracker/internal/wiki"
)

// fakeFetcher returns canned feed data, optionally failing or blocking until
// released so tests can hold a refresh in flight.
type fakeFetcher struct {
	mapping []wiki.MappingEntry
	latest  map[int]wiki.LatestPrice
	err     error

	calls   int32
	release chan struct{} // if non-nil, FetchAll blocks until closed
}

func (f *fakeFetcher) FetchAll(ctx context.Context) ([]wiki.MappingEntry, map[int]wiki.LatestPrice, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.mapping, f.latest, nil
}

func sharkFetcher() *fakeFetcher {
	return &fakeFetcher{
		mapping: []wiki.MappingEntry{
			{ID: 385, Name: "Shark"},
			{ID: 379, Name: "Lobster"},
			{ID: 1, Name: "Abandoned relic"}, // never traded
		},
		latest: map[int]wiki.LatestPrice{
			385: {High: 810, Low: 790},
			379: {High: 180},
		},
	}
}

func TestRefreshPopulatesCacheAndMeta(t *testing.T) {
	cache := NewCache(DefaultTTL)
	r := NewRefresher(sharkFetcher(), cache, nil, DefaultTTL)

	meta, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if meta.TotalItems != 3 {
		t.Fatalf("TotalItems=%d, want 3", meta.TotalItems)
	}
	if meta.ItemsWithPrices != 2 {
		t.Fatalf("ItemsWithPrices=%d, want 2", meta.ItemsWithPrices)
	}
	if want := meta.LastUpdated.Add(DefaultTTL); !meta.NextUpdate.Equal(want) {
		t.Fatalf("NextUpdate=%v, want %v", meta.NextUpdate, want)
	}
	if p, _ := cache.Price("shark"); p != 810 {
		t.Fatalf("cache shark=%d, want 810", p)
	}
	if r.Meta() == nil {
		t.Fatal("Meta() nil after successful refresh")
	}
}

func TestRefreshFailureIsFailOpen(t *testing.T) {
	cache := NewCache(DefaultTTL)
	ok := sharkFetcher()
	r := NewRefresher(ok, cache, nil, DefaultTTL)
	if _, err := r.Refresh(context.Background()); err != nil {
		t.Fatalf("seed refresh: %v", err)
	}
	seeded := r.Meta()

	// Swap in a failing fetcher and refresh again.
	r.fetcher = &fakeFetcher{err: errors.New("upstream down")}
	if _, err := r.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}

	// Previous catalog stays fully intact and queryable.
	if p, hit := cache.Price("shark"); !hit || p != 810 {
		t.Fatalf("cache after failed refresh: shark=%d,%v, want 810,true", p, hit)
	}
	if cache.Len() != 3 {
		t.Fatalf("cache Len=%d after failed refresh, want 3", cache.Len())
	}
	if r.Meta() != seeded {
		t.Fatal("metadata replaced by a failed refresh")
	}
}

func TestRefreshCollapsesConcurrentCallers(t *testing.T) {
	f := sharkFetcher()
	f.release = make(chan struct{})
	r := NewRefresher(f, NewCache(DefaultTTL), nil, DefaultTTL)

	const callers = 5
	var wg sync.WaitGroup
	metas := make([]*Metadata, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			metas[i], _ = r.Refresh(context.Background())
		}(i)
	}

	// Let all callers pile up behind the in-flight fetch, then release it.
	time.Sleep(50 * time.Millisecond)
	close(f.release)
	wg.Wait()

	if n := atomic.LoadInt32(&f.calls); n != 1 {
		t.Fatalf("upstream fetches=%d, want 1 (concurrent refreshes must collapse)", n)
	}
	for i, m := range metas {
		if m == nil {
			t.Fatalf("caller %d got nil metadata", i)
		}
		if m != metas[0] {
			t.Fatalf("caller %d got a different result", i)
		}
	}
}

func TestNeedsRefresh(t *testing.T) {
	r := NewRefresher(sharkFetcher(), NewCache(DefaultTTL), nil, DefaultTTL)
	now := time.Now()

	if !r.NeedsRefresh(now) {
		t.Fatal("fresh refresher with no metadata should need a refresh")
	}

	r.SetMeta(&Metadata{LastUpdated: now, NextUpdate: now.Add(24 * time.Hour)})
	if r.NeedsRefresh(now.Add(time.Hour)) {
		t.Fatal("should not need refresh before NextUpdate")
	}
	if !r.NeedsRefresh(now.Add(25 * time.Hour)) {
		t.Fatal("should need refresh after NextUpdate")
	}
	if !r.NeedsRefresh(now.Add(24 * time.Hour)) {
		t.Fatal("should need refresh exactly at NextUpdate")
	}
}

type errStore struct{}

func (errStore) Save(_ []catalog.ItemRecord, _ Metadata) error {
	return errors.New("disk full")
}

func TestRefreshSurvivesPersistFailure(t *testing.T) {
	cache := NewCache(DefaultTTL)
	r := NewRefresher(sharkFetcher(), cache, errStore{}, DefaultTTL)

	meta, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh should succeed despite persist failure: %v", err)
	}
	if meta == nil || cache.Len() != 3 {
		t.Fatal("cache not populated despite persist failure")
	}
}
