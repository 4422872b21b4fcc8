package pricing

import (
	"strings"

	"gp-tracker/internal/catalog"
)

// Resolver maps free-text item names to prices. Resolution never fails:
// every miss degrades to a 0 price so downstream arithmetic stays defined.
type Resolver struct {
	cache    *Cache
	fallback map[string]int
}

// NewResolver creates a resolver over the given cache and fallback table.
// A nil fallback uses the shipped FallbackPrices table.
func NewResolver(cache *Cache, fallback map[string]int) *Resolver {
	if fallback == nil {
		fallback = FallbackPrices
	}
	return &Resolver{cache: cache, fallback: fallback}
}

// Resolve returns the best-effort price for a user-entered item name.
// Layered policy, first match wins:
//
//  1. exact cache hit with a non-zero price
//  2. fallback table (a cached 0 price means "no trade data", not "free",
//     so the fallback still applies)
//  3. substring scan over cache keys in catalog-sorted order: first key that
//     contains the input, or that the input contains, wins. This tie-break
//     is a compatibility contract — do not "improve" it.
//  4. 0 (unresolved)
func (r *Resolver) Resolve(rawName string) int {
	name := catalog.NormalizeName(rawName)
	if name == "" {
		return 0
	}

	prices, keys := r.cache.snapshot()

	if p, ok := prices[name]; ok && p > 0 {
		return p
	}

	if p, ok := r.fallback[name]; ok {
		return p
	}

	for _, key := range keys {
		if strings.Contains(key, name) || strings.Contains(name, key) {
			return prices[key]
		}
	}

	return 0
}
