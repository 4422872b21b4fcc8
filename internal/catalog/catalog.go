// Package catalog turns raw feed responses into a clean, deterministic
// item catalog for the pricing layer.
package catalog

import (
	"sort"
	"strings"
	"time"

	"gp-tracker/internal/wiki"
)

// ItemRecord is one item's merged metadata + price snapshot. Records are
// immutable once produced by Normalize; a refresh produces a whole new slice.
type ItemRecord struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	NormalizedName    string    `json:"normalizedName"`
	Tradeable         bool      `json:"tradeable"`
	TradeableOnMarket bool      `json:"tradeableOnMarket"`
	Members           bool      `json:"members"`
	BuyLimit          int       `json:"buyLimit"`
	HighAlch          int       `json:"highAlch"`
	LowAlch           int       `json:"lowAlch"`
	Value             int       `json:"value"`
	CurrentPrice      int       `json:"currentPrice"`
	HighPrice         int       `json:"highPrice"`
	LowPrice          int       `json:"lowPrice"`
	LastUpdated       time.Time `json:"lastUpdated"`
}

// NormalizeName derives the canonical lookup key for an item name:
// lowercase, surrounding whitespace trimmed. Keys are not guaranteed unique
// across a catalog; the resolver defines the tie-break.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Normalize merges the metadata catalog with the price snapshot into one
// record per item, keyed by numeric ID. Items absent from the price snapshot
// get zero prices; CurrentPrice is the high price when present, else the low,
// else 0. The result is sorted by display name (byte-wise) so downstream
// indexing is deterministic. Pure: no I/O, total over any well-formed input
// including an empty catalog.
func Normalize(mapping []wiki.MappingEntry, latest map[int]wiki.LatestPrice, now time.Time) []ItemRecord {
	records := make([]ItemRecord, 0, len(mapping))
	for _, m := range mapping {
		p := latest[m.ID] // zero value when absent
		current := p.High
		if current == 0 {
			current = p.Low
		}
		records = append(records, ItemRecord{
			ID:                m.ID,
			Name:              m.Name,
			NormalizedName:    NormalizeName(m.Name),
			Tradeable:         m.Tradeable,
			TradeableOnMarket: m.TradeableOnMarket,
			Members:           m.Members,
			BuyLimit:          m.BuyLimit,
			HighAlch:          m.HighAlch,
			LowAlch:           m.LowAlch,
			Value:             m.Value,
			CurrentPrice:      current,
			HighPrice:         p.High,
			LowPrice:          p.Low,
			LastUpdated:       now,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records
}
